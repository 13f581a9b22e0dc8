package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"heavytime-server/internal/interfaces"
	"heavytime-server/internal/models"
)

const (
	createStoryQuery = `
        INSERT INTO story (title, camera_image)
        VALUES ($1, $2)
        RETURNING id, created_at
    `
	getStoryByIDQuery = `
        SELECT id, title, camera_image, poem_text, poem_audio, comic_image, created_at
        FROM story WHERE id = $1
    `
	listStoriesQuery = `
        SELECT id, title, camera_image, poem_text, poem_audio, comic_image, created_at
        FROM story ORDER BY created_at DESC LIMIT $1
    `
	updatePoemTextQuery   = `UPDATE story SET poem_text = $2 WHERE id = $1`
	updatePoemAudioQuery  = `UPDATE story SET poem_audio = $2 WHERE id = $1`
	updateComicImageQuery = `UPDATE story SET comic_image = $2 WHERE id = $1`
)

// pgStoryRepository implements StoryRepository for PostgreSQL.
type pgStoryRepository struct {
	db     interfaces.DBTX
	logger *zap.Logger
}

// Compile-time check
var _ interfaces.StoryRepository = (*pgStoryRepository)(nil)

// NewPgStoryRepository creates a new story repository.
func NewPgStoryRepository(db interfaces.DBTX, logger *zap.Logger) interfaces.StoryRepository {
	return &pgStoryRepository{
		db:     db,
		logger: logger.Named("PgStoryRepo"),
	}
}

// Create inserts a story row and fills in the generated id and timestamp.
func (r *pgStoryRepository) Create(ctx context.Context, story *models.Story) error {
	logFields := []zap.Field{zap.String("title", story.Title)}
	r.logger.Debug("Creating story row", logFields...)

	err := r.db.QueryRow(ctx, createStoryQuery, story.Title, story.CameraImage).
		Scan(&story.ID, &story.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23514" { // check_violation (empty title)
			r.logger.Warn("Story insert rejected by constraint", append(logFields, zap.String("constraint", pgErr.ConstraintName))...)
			return fmt.Errorf("%w: %s", models.ErrInvalidInput, pgErr.ConstraintName)
		}
		r.logger.Error("Failed to create story row", append(logFields, zap.Error(err))...)
		return fmt.Errorf("failed to create story: %w", err)
	}

	r.logger.Info("Story row created", append(logFields, zap.String("storyID", story.ID.String()))...)
	return nil
}

// GetByID returns a single story.
func (r *pgStoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Story, error) {
	var story models.Story
	err := pgxscan.Get(ctx, r.db, &story, getStoryByIDQuery, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Warn("Story not found", zap.String("storyID", id.String()))
			return nil, models.ErrStoryNotFound
		}
		r.logger.Error("Failed to get story", zap.String("storyID", id.String()), zap.Error(err))
		return nil, fmt.Errorf("failed to get story: %w", err)
	}
	return &story, nil
}

// List returns stories newest first.
func (r *pgStoryRepository) List(ctx context.Context, limit int) ([]*models.Story, error) {
	stories := make([]*models.Story, 0, limit)
	err := pgxscan.Select(ctx, r.db, &stories, listStoriesQuery, limit)
	if err != nil {
		r.logger.Error("Failed to list stories", zap.Int("limit", limit), zap.Error(err))
		return nil, fmt.Errorf("failed to list stories: %w", err)
	}
	return stories, nil
}

// UpdatePoemText sets poem_text on the row.
func (r *pgStoryRepository) UpdatePoemText(ctx context.Context, id uuid.UUID, poemText string) error {
	return r.updateField(ctx, updatePoemTextQuery, id, poemText, "poem_text")
}

// UpdatePoemAudio sets poem_audio on the row.
func (r *pgStoryRepository) UpdatePoemAudio(ctx context.Context, id uuid.UUID, audioURL string) error {
	return r.updateField(ctx, updatePoemAudioQuery, id, audioURL, "poem_audio")
}

// UpdateComicImage sets comic_image on the row.
func (r *pgStoryRepository) UpdateComicImage(ctx context.Context, id uuid.UUID, comicURL string) error {
	return r.updateField(ctx, updateComicImageQuery, id, comicURL, "comic_image")
}

func (r *pgStoryRepository) updateField(ctx context.Context, query string, id uuid.UUID, value, field string) error {
	logFields := []zap.Field{
		zap.String("storyID", id.String()),
		zap.String("field", field),
	}
	r.logger.Debug("Updating story field", logFields...)

	commandTag, err := r.db.Exec(ctx, query, id, value)
	if err != nil {
		r.logger.Error("Failed to update story field", append(logFields, zap.Error(err))...)
		return fmt.Errorf("failed to update story %s: %w", field, err)
	}
	if commandTag.RowsAffected() == 0 {
		r.logger.Warn("Story not found for update", logFields...)
		return models.ErrStoryNotFound
	}

	r.logger.Info("Story field updated", logFields...)
	return nil
}
