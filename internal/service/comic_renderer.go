package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"heavytime-server/internal/config"
	"heavytime-server/internal/models"
)

// comicPromptTemplate is the fixed narrative-style prompt; only the poem is
// interpolated.
const comicPromptTemplate = `Create a four-panel comic strip in a simple, consistent manga style.
Use the provided image as the starting background of the story, keeping it exactly as it is—unchanged and realistic.
Introduce a manga-style character or motif into this scene, as if they've stepped out of a manga and into reality.
Continue the story visually across the next three panels, let the character interact with the environment.

Do not include any text, speech bubbles, or sound effects

Use the elements from the following poem as character and narrative inspiration:
%s`

// ComicResult is the outcome of a successful comic rendering call.
type ComicResult struct {
	ComicURL    string
	Description string
	RequestID   string
}

// ComicRenderer turns a source photo and poem into a stylized comic panel.
//
//go:generate mockery --name ComicRenderer --output ../mocks --outpkg mocks --case=underscore
type ComicRenderer interface {
	Render(ctx context.Context, poem, imageURL string) (*ComicResult, error)
}

type comicRequest struct {
	Prompt       string   `json:"prompt"`
	ImageURLs    []string `json:"image_urls"`
	NumImages    int      `json:"num_images"`
	OutputFormat string   `json:"output_format"`
}

type comicResponse struct {
	Images []struct {
		URL string `json:"url"`
	} `json:"images"`
	Description string `json:"description"`
}

// falComicRenderer implements ComicRenderer on the fal image edit model.
type falComicRenderer struct {
	client *falClient
	logger *zap.Logger
	model  string
}

// Compile-time check
var _ ComicRenderer = (*falComicRenderer)(nil)

// NewFalComicRenderer creates the comic rendering adapter.
func NewFalComicRenderer(cfg config.FalConfig, logger *zap.Logger) ComicRenderer {
	return &falComicRenderer{
		client: newFalClient(cfg, logger),
		logger: logger.Named("ComicRenderer"),
		model:  cfg.ComicModel,
	}
}

// Render requests one jpeg output built from the source photo and the poem.
// A response without an image URL is a failure.
func (r *falComicRenderer) Render(ctx context.Context, poem, imageURL string) (*ComicResult, error) {
	start := time.Now()
	log := r.logger.With(zap.String("image_url", imageURL))
	log.Info("Rendering comic panel")

	req := comicRequest{
		Prompt:       fmt.Sprintf(comicPromptTemplate, poem),
		ImageURLs:    []string{imageURL},
		NumImages:    1,
		OutputFormat: "jpeg",
	}

	var resp comicResponse
	requestID, err := r.client.Run(ctx, r.model, req, &resp)
	if err != nil {
		observeUpstream("comic", start, err)
		log.Error("Comic rendering call failed", zap.String("request_id", requestID), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", models.ErrComicGenerationFailed, err)
	}
	if len(resp.Images) == 0 || resp.Images[0].URL == "" {
		err = fmt.Errorf("%w: no comic image in response", models.ErrComicGenerationFailed)
		observeUpstream("comic", start, err)
		log.Error("Comic rendering response has no image URL", zap.String("request_id", requestID))
		return nil, err
	}
	observeUpstream("comic", start, nil)

	log.Info("Comic panel rendered", zap.String("request_id", requestID))
	return &ComicResult{
		ComicURL:    resp.Images[0].URL,
		Description: resp.Description,
		RequestID:   requestID,
	}, nil
}
