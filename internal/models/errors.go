package models

import "errors"

// Application-wide standard errors
var (
	// Resource/DB errors
	ErrStoryNotFound = errors.New("story not found")

	// Upstream generation errors
	ErrPoemGenerationFailed  = errors.New("poem generation failed")
	ErrAudioGenerationFailed = errors.New("audio generation failed")
	ErrComicGenerationFailed = errors.New("comic generation failed")
	ErrImageListingFailed    = errors.New("image listing failed")

	// General request/server errors
	ErrInvalidInput   = errors.New("invalid input data")
	ErrInternalServer = errors.New("internal server error")
)
