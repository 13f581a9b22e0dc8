package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"heavytime-server/internal/config"
	"heavytime-server/internal/models"
)

// AudioResult is the outcome of a successful narration call.
type AudioResult struct {
	AudioURL   string
	DurationMs int64
	RequestID  string
}

// AudioNarrator turns poem text into hosted narration audio.
//
//go:generate mockery --name AudioNarrator --output ../mocks --outpkg mocks --case=underscore
type AudioNarrator interface {
	Narrate(ctx context.Context, text string) (*AudioResult, error)
}

// Fixed voice settings; narration is not caller-configurable.
type voiceSetting struct {
	VoiceID string  `json:"voice_id"`
	Speed   float64 `json:"speed"`
	Vol     float64 `json:"vol"`
	Pitch   int     `json:"pitch"`
}

type speechRequest struct {
	Text         string       `json:"text"`
	VoiceSetting voiceSetting `json:"voice_setting"`
	OutputFormat string       `json:"output_format"`
}

type speechResponse struct {
	Audio struct {
		URL string `json:"url"`
	} `json:"audio"`
	DurationMs int64 `json:"duration_ms"`
}

// falAudioNarrator implements AudioNarrator on the fal speech model.
type falAudioNarrator struct {
	client  *falClient
	logger  *zap.Logger
	model   string
	voiceID string
}

// Compile-time check
var _ AudioNarrator = (*falAudioNarrator)(nil)

// NewFalAudioNarrator creates the narration adapter.
func NewFalAudioNarrator(cfg config.FalConfig, logger *zap.Logger) AudioNarrator {
	return &falAudioNarrator{
		client:  newFalClient(cfg, logger),
		logger:  logger.Named("AudioNarrator"),
		model:   cfg.SpeechModel,
		voiceID: cfg.VoiceID,
	}
}

// Narrate synthesizes speech for the text. A response without an audio URL
// is a failure, not an empty success.
func (n *falAudioNarrator) Narrate(ctx context.Context, text string) (*AudioResult, error) {
	start := time.Now()
	log := n.logger.With(zap.Int("text_len", len(text)))
	log.Info("Generating narration audio")

	req := speechRequest{
		Text: text,
		VoiceSetting: voiceSetting{
			VoiceID: n.voiceID,
			Speed:   1,
			Vol:     1.5,
			Pitch:   0,
		},
		OutputFormat: "url",
	}

	var resp speechResponse
	requestID, err := n.client.Run(ctx, n.model, req, &resp)
	if err != nil {
		observeUpstream("audio", start, err)
		log.Error("Speech synthesis call failed", zap.String("request_id", requestID), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", models.ErrAudioGenerationFailed, err)
	}
	if resp.Audio.URL == "" {
		err = fmt.Errorf("%w: no audio URL in response", models.ErrAudioGenerationFailed)
		observeUpstream("audio", start, err)
		log.Error("Speech synthesis response has no audio URL", zap.String("request_id", requestID))
		return nil, err
	}
	observeUpstream("audio", start, nil)

	log.Info("Narration audio generated",
		zap.String("request_id", requestID),
		zap.Int64("duration_ms", resp.DurationMs),
	)
	return &AudioResult{
		AudioURL:   resp.Audio.URL,
		DurationMs: resp.DurationMs,
		RequestID:  requestID,
	}, nil
}
