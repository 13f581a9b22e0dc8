package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"heavytime-server/internal/interfaces"
	"heavytime-server/internal/models"
)

const defaultListLimit = 50

// StoryService coordinates the story creation workflow and backs the
// gallery/detail reads.
type StoryService interface {
	// CreateStory turns a (photo URL, title) pair into a persisted story
	// with poem, audio and comic artifacts, tolerating failure of the two
	// optional artifacts. It returns once both fan-out branches have
	// finished.
	CreateStory(ctx context.Context, title, photoURL string) (*models.Story, error)
	GetStory(ctx context.Context, id uuid.UUID) (*models.Story, error)
	ListStories(ctx context.Context, limit int) ([]*models.Story, error)
}

// branchOutcome is the tagged result of one fan-out branch. The two
// branches are joined without short-circuiting: one failing never aborts
// the other.
type branchOutcome struct {
	url string
	err error
}

type storyService struct {
	repo     interfaces.StoryRepository
	poems    PoemGenerator
	narrator AudioNarrator
	comics   ComicRenderer
	logger   *zap.Logger
}

// Compile-time check
var _ StoryService = (*storyService)(nil)

// NewStoryService creates the workflow orchestrator.
func NewStoryService(
	repo interfaces.StoryRepository,
	poems PoemGenerator,
	narrator AudioNarrator,
	comics ComicRenderer,
	logger *zap.Logger,
) StoryService {
	return &storyService{
		repo:     repo,
		poems:    poems,
		narrator: narrator,
		comics:   comics,
		logger:   logger.Named("StoryService"),
	}
}

// CreateStory runs the workflow: create row, generate and persist the poem,
// then fan out audio and comic generation. The create and poem steps are
// fatal; the audio and comic branches are best effort. Each invocation
// creates a brand-new row, there is no deduplication of concurrent calls.
func (s *storyService) CreateStory(ctx context.Context, title, photoURL string) (*models.Story, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("%w: title must not be empty", models.ErrInvalidInput)
	}
	if photoURL == "" {
		return nil, fmt.Errorf("%w: photoUrl must not be empty", models.ErrInvalidInput)
	}

	log := s.logger.With(zap.String("title", title), zap.String("photo_url", photoURL))

	// Step 1: the row is the unit of work tracking and must exist before
	// any generation starts.
	story := &models.Story{
		Title:       title,
		CameraImage: photoURL,
	}
	if err := s.repo.Create(ctx, story); err != nil {
		storiesCreatedTotal.WithLabelValues("persistence_failed").Inc()
		return nil, err
	}
	log = log.With(zap.String("story_id", story.ID.String()))

	// Step 2: poem generation is fatal. The row stays behind without any
	// derived fields; there is no compensating delete, so make the orphan
	// visible in the logs.
	poem, err := s.poems.Generate(ctx, photoURL, title)
	if err != nil {
		storiesCreatedTotal.WithLabelValues("poem_failed").Inc()
		log.Warn("Poem generation failed, story row left orphaned with no derived fields", zap.Error(err))
		return nil, err
	}

	// Step 3: audio and comic both consume the persisted poem, so they are
	// never attempted unless this write succeeds.
	if err := s.repo.UpdatePoemText(ctx, story.ID, poem); err != nil {
		storiesCreatedTotal.WithLabelValues("persistence_failed").Inc()
		log.Warn("Failed to persist poem, story row left orphaned", zap.Error(err))
		return nil, err
	}
	story.PoemText = &poem

	// Steps 4-5: fan out narration and comic rendering, join both branches.
	audioOutcome, comicOutcome := s.generateArtifacts(ctx, story.ID, poem, photoURL)

	if audioOutcome.err == nil {
		story.PoemAudio = &audioOutcome.url
	}
	if comicOutcome.err == nil {
		story.ComicImage = &comicOutcome.url
	}

	outcome := "complete"
	if audioOutcome.err != nil || comicOutcome.err != nil {
		outcome = "partial"
	}
	storiesCreatedTotal.WithLabelValues(outcome).Inc()

	log.Info("Story creation workflow finished",
		zap.Bool("has_audio", story.PoemAudio != nil),
		zap.Bool("has_comic", story.ComicImage != nil),
	)
	return story, nil
}

// generateArtifacts runs the two optional branches concurrently and waits
// for both. Each branch logs and swallows its own failures, including
// failures of its persistence update: a poem without narration or
// illustration is still a valid end state.
func (s *storyService) generateArtifacts(ctx context.Context, storyID uuid.UUID, poem, photoURL string) (audio, comic branchOutcome) {
	log := s.logger.With(zap.String("story_id", storyID.String()))

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		result, err := s.narrator.Narrate(ctx, poem)
		if err != nil {
			log.Warn("Audio branch failed, continuing without narration", zap.Error(err))
			audio = branchOutcome{err: err}
			return
		}
		if err := s.repo.UpdatePoemAudio(ctx, storyID, result.AudioURL); err != nil {
			log.Warn("Failed to persist audio URL, continuing", zap.Error(err))
			audio = branchOutcome{err: err}
			return
		}
		audio = branchOutcome{url: result.AudioURL}
	}()

	go func() {
		defer wg.Done()
		result, err := s.comics.Render(ctx, poem, photoURL)
		if err != nil {
			log.Warn("Comic branch failed, continuing without illustration", zap.Error(err))
			comic = branchOutcome{err: err}
			return
		}
		if err := s.repo.UpdateComicImage(ctx, storyID, result.ComicURL); err != nil {
			log.Warn("Failed to persist comic URL, continuing", zap.Error(err))
			comic = branchOutcome{err: err}
			return
		}
		comic = branchOutcome{url: result.ComicURL}
	}()

	wg.Wait()
	return audio, comic
}

// GetStory returns a single story for the detail view.
func (s *storyService) GetStory(ctx context.Context, id uuid.UUID) (*models.Story, error) {
	return s.repo.GetByID(ctx, id)
}

// ListStories returns the gallery list, newest first.
func (s *storyService) ListStories(ctx context.Context, limit int) ([]*models.Story, error) {
	if limit <= 0 || limit > 200 {
		limit = defaultListLimit
	}
	return s.repo.List(ctx, limit)
}
