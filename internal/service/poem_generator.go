package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pkoukk/tiktoken-go"
	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"heavytime-server/internal/config"
	"heavytime-server/internal/models"
)

// poemSystemPrompt is the fixed style guide; only the title and photo vary
// per request.
const poemSystemPrompt = `You will be given an image and a title. Write a 4–6 line poem that tells a story.
The style should resemble 夏宇 (Hsia Yu), e.e. cummings, and Chen Chen — experimental, fragmentary, and emotionally charged.

given: bedtime story
return:
Yeah, tell me again/
how you feel it. tell me again how it fills
the chest, fills the head, fills the
lung. Tell me again

given: lets love until we can't
return:
You know that love? that falling-to-your-knee love?
That where'd-the-water-go love? That
hold-me-close-i'll never-leave-i-know-your-favorite
coffee-creamer-love?

given: you have dangerous heartbeats
return:
1. if i love You
(thickness means worlds inhabited by roamingly stern bright faeries
2. if you love
me) distance is mind carefully luminous with innumerable gnomes of complete dream
3. if we love each (shyly)
other, what clouds do or Silently
Flowers resembles beauty
less than our breathing

given: I see your heart in my memory
return:
promise me you won't forget
then I can too
forever remember
tie a knot on the heart
then the beats become butterfly

Return only the poem, remember to include elements or style/vibe from the given image in the poem.`

// PoemGenerator writes a short poem from a photo and a title.
//
//go:generate mockery --name PoemGenerator --output ../mocks --outpkg mocks --case=underscore
type PoemGenerator interface {
	Generate(ctx context.Context, imageURL, title string) (string, error)
}

// openAIPoemGenerator implements PoemGenerator on a vision-capable chat
// completion endpoint.
type openAIPoemGenerator struct {
	client      *openai.Client
	imageClient *http.Client
	logger      *zap.Logger
	model       string
	maxTokens   int
	encoder     *tiktoken.Tiktoken
}

// Compile-time check
var _ PoemGenerator = (*openAIPoemGenerator)(nil)

// NewOpenAIPoemGenerator creates the poem adapter. The base URL is
// configurable so the same client works against OpenRouter-style gateways.
func NewOpenAIPoemGenerator(cfg config.PoemConfig, logger *zap.Logger) PoemGenerator {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	clientConfig.HTTPClient = &http.Client{Timeout: timeout}

	log := logger.Named("PoemGenerator")

	// Token counting is best effort; generation works without it.
	encoder, err := tiktoken.GetEncoding(tiktoken.MODEL_CL100K_BASE)
	if err != nil {
		log.Warn("Failed to load tokenizer, prompt token estimates disabled", zap.Error(err))
		encoder = nil
	}

	return &openAIPoemGenerator{
		client:      openai.NewClientWithConfig(clientConfig),
		imageClient: &http.Client{Timeout: 30 * time.Second},
		logger:      log,
		model:       cfg.Model,
		maxTokens:   cfg.MaxTokens,
		encoder:     encoder,
	}
}

// Generate fetches the photo, embeds it as a base64 data URL and asks the
// vision model for a poem. An empty completion is a failure.
func (g *openAIPoemGenerator) Generate(ctx context.Context, imageURL, title string) (string, error) {
	start := time.Now()
	log := g.logger.With(zap.String("image_url", imageURL), zap.String("title", title))
	log.Info("Generating poem")

	dataURL, err := g.fetchImageAsDataURL(ctx, imageURL)
	if err != nil {
		observeUpstream("poem", start, err)
		log.Error("Failed to fetch source image", zap.Error(err))
		return "", fmt.Errorf("%w: %v", models.ErrPoemGenerationFailed, err)
	}

	if g.encoder != nil {
		promptTokens := len(g.encoder.Encode(poemSystemPrompt+title, nil, nil))
		log.Debug("Estimated prompt tokens (text parts only)", zap.Int("tokens", promptTokens))
	}

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     g.model,
		MaxTokens: g.maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: poemSystemPrompt,
			},
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{
						Type:     openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{URL: dataURL},
					},
					{
						Type: openai.ChatMessagePartTypeText,
						Text: title,
					},
				},
			},
		},
	})
	if err != nil {
		observeUpstream("poem", start, err)
		log.Error("Vision completion failed", zap.Error(err))
		return "", fmt.Errorf("%w: %v", models.ErrPoemGenerationFailed, err)
	}

	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		err = fmt.Errorf("%w: model returned no usable text", models.ErrPoemGenerationFailed)
		observeUpstream("poem", start, err)
		log.Error("Vision completion returned no usable text")
		return "", err
	}
	observeUpstream("poem", start, nil)

	poem := resp.Choices[0].Message.Content
	log.Info("Poem generated",
		zap.Int("poem_len", len(poem)),
		zap.Int("completion_tokens", resp.Usage.CompletionTokens),
	)
	return poem, nil
}

// fetchImageAsDataURL downloads the photo and encodes it for the vision
// request.
func (g *openAIPoemGenerator) fetchImageAsDataURL(ctx context.Context, imageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create image request: %w", err)
	}

	resp, err := g.imageClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to fetch image: status %d", resp.StatusCode)
	}

	imageBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read image body: %w", err)
	}

	mediaType := mediaTypeFromContentType(resp.Header.Get("Content-Type"))
	encoded := base64.StdEncoding.EncodeToString(imageBytes)
	return fmt.Sprintf("data:%s;base64,%s", mediaType, encoded), nil
}

// mediaTypeFromContentType narrows the upstream content type to the media
// types the vision endpoint accepts, defaulting to jpeg.
func mediaTypeFromContentType(contentType string) string {
	switch {
	case strings.Contains(contentType, "png"):
		return "image/png"
	case strings.Contains(contentType, "gif"):
		return "image/gif"
	case strings.Contains(contentType, "webp"):
		return "image/webp"
	default:
		return "image/jpeg"
	}
}
