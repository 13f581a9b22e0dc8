package interfaces

import (
	"context"

	"github.com/google/uuid"

	"heavytime-server/internal/models"
)

// StoryRepository defines the interface for interacting with story rows.
//
//go:generate mockery --name StoryRepository --output ../mocks --outpkg mocks --case=underscore
type StoryRepository interface {
	// Create inserts a new story row with all derived fields absent and
	// fills in the store-assigned ID and creation timestamp.
	Create(ctx context.Context, story *models.Story) error

	// GetByID returns a single story or models.ErrStoryNotFound.
	GetByID(ctx context.Context, id uuid.UUID) (*models.Story, error)

	// List returns stories newest first, at most limit rows.
	List(ctx context.Context, limit int) ([]*models.Story, error)

	// UpdatePoemText sets poem_text on the row. Set exactly once per story:
	// audio and comic generation both consume it.
	UpdatePoemText(ctx context.Context, id uuid.UUID, poemText string) error

	// UpdatePoemAudio sets poem_audio on the row.
	UpdatePoemAudio(ctx context.Context, id uuid.UUID, audioURL string) error

	// UpdateComicImage sets comic_image on the row.
	UpdateComicImage(ctx context.Context, id uuid.UUID, comicURL string) error
}
