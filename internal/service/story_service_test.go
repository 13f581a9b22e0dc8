package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"heavytime-server/internal/mocks"
	"heavytime-server/internal/models"
	"heavytime-server/internal/service"
)

func TestCreateStory(t *testing.T) {
	ctx := context.Background()
	title := "Morning"
	photoURL := "https://mypublicbucket.t3.storage.dev/art173/heavytime/2025-11-02/a.jpg"
	poem := "line one\nline two"
	audioURL := "https://x/audio.mp3"
	comicURL := "https://x/comic.jpg"

	newService := func(t *testing.T) (service.StoryService, *mocks.MockStoryRepository, *mocks.MockPoemGenerator, *mocks.MockAudioNarrator, *mocks.MockComicRenderer) {
		repo := mocks.NewMockStoryRepository(t)
		poems := mocks.NewMockPoemGenerator(t)
		narrator := mocks.NewMockAudioNarrator(t)
		comics := mocks.NewMockComicRenderer(t)
		svc := service.NewStoryService(repo, poems, narrator, comics, zap.NewNop())
		return svc, repo, poems, narrator, comics
	}

	t.Run("Successful creation with both artifacts", func(t *testing.T) {
		svc, repo, poems, narrator, comics := newService(t)
		storyID := uuid.New()

		repo.On("Create", ctx, mock.MatchedBy(func(s *models.Story) bool {
			assert.Equal(t, title, s.Title)
			assert.Equal(t, photoURL, s.CameraImage)
			return true
		})).Run(func(args mock.Arguments) {
			args.Get(1).(*models.Story).ID = storyID
		}).Return(nil).Once()

		poems.On("Generate", ctx, photoURL, title).Return(poem, nil).Once()
		repo.On("UpdatePoemText", ctx, storyID, poem).Return(nil).Once()

		narrator.On("Narrate", ctx, poem).Return(&service.AudioResult{AudioURL: audioURL, DurationMs: 4200}, nil).Once()
		repo.On("UpdatePoemAudio", ctx, storyID, audioURL).Return(nil).Once()

		comics.On("Render", ctx, poem, photoURL).Return(&service.ComicResult{ComicURL: comicURL}, nil).Once()
		repo.On("UpdateComicImage", ctx, storyID, comicURL).Return(nil).Once()

		story, err := svc.CreateStory(ctx, title, photoURL)

		assert.NoError(t, err)
		assert.NotNil(t, story)
		assert.Equal(t, storyID, story.ID)
		assert.Equal(t, poem, *story.PoemText)
		assert.Equal(t, audioURL, *story.PoemAudio)
		assert.Equal(t, comicURL, *story.ComicImage)

		repo.AssertExpectations(t)
		poems.AssertExpectations(t)
		narrator.AssertExpectations(t)
		comics.AssertExpectations(t)
	})

	t.Run("Empty title is rejected before any work", func(t *testing.T) {
		svc, repo, poems, _, _ := newService(t)

		story, err := svc.CreateStory(ctx, "   ", photoURL)

		assert.Error(t, err)
		assert.True(t, errors.Is(err, models.ErrInvalidInput))
		assert.Nil(t, story)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		poems.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Empty photo URL is rejected", func(t *testing.T) {
		svc, repo, _, _, _ := newService(t)

		story, err := svc.CreateStory(ctx, title, "")

		assert.Error(t, err)
		assert.True(t, errors.Is(err, models.ErrInvalidInput))
		assert.Nil(t, story)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Create failure stops the workflow", func(t *testing.T) {
		svc, repo, poems, _, _ := newService(t)
		dbErr := errors.New("connection refused")

		repo.On("Create", ctx, mock.Anything).Return(dbErr).Once()

		story, err := svc.CreateStory(ctx, title, photoURL)

		assert.Error(t, err)
		assert.Nil(t, story)
		poems.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything, mock.Anything)
		repo.AssertExpectations(t)
	})

	t.Run("Poem failure is fatal and leaves no derived fields", func(t *testing.T) {
		svc, repo, poems, narrator, comics := newService(t)
		storyID := uuid.New()

		repo.On("Create", ctx, mock.Anything).Run(func(args mock.Arguments) {
			args.Get(1).(*models.Story).ID = storyID
		}).Return(nil).Once()
		poems.On("Generate", ctx, photoURL, title).
			Return("", models.ErrPoemGenerationFailed).Once()

		story, err := svc.CreateStory(ctx, title, photoURL)

		assert.Error(t, err)
		assert.True(t, errors.Is(err, models.ErrPoemGenerationFailed))
		assert.Nil(t, story)
		repo.AssertNotCalled(t, "UpdatePoemText", mock.Anything, mock.Anything, mock.Anything)
		narrator.AssertNotCalled(t, "Narrate", mock.Anything, mock.Anything)
		comics.AssertNotCalled(t, "Render", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Poem persistence failure prevents fan-out", func(t *testing.T) {
		svc, repo, poems, narrator, comics := newService(t)
		storyID := uuid.New()

		repo.On("Create", ctx, mock.Anything).Run(func(args mock.Arguments) {
			args.Get(1).(*models.Story).ID = storyID
		}).Return(nil).Once()
		poems.On("Generate", ctx, photoURL, title).Return(poem, nil).Once()
		repo.On("UpdatePoemText", ctx, storyID, poem).
			Return(errors.New("write failed")).Once()

		story, err := svc.CreateStory(ctx, title, photoURL)

		assert.Error(t, err)
		assert.Nil(t, story)
		narrator.AssertNotCalled(t, "Narrate", mock.Anything, mock.Anything)
		comics.AssertNotCalled(t, "Render", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Audio failure still yields a story with the comic", func(t *testing.T) {
		svc, repo, poems, narrator, comics := newService(t)
		storyID := uuid.New()

		repo.On("Create", ctx, mock.Anything).Run(func(args mock.Arguments) {
			args.Get(1).(*models.Story).ID = storyID
		}).Return(nil).Once()
		poems.On("Generate", ctx, photoURL, title).Return(poem, nil).Once()
		repo.On("UpdatePoemText", ctx, storyID, poem).Return(nil).Once()

		narrator.On("Narrate", ctx, poem).
			Return(nil, models.ErrAudioGenerationFailed).Once()
		comics.On("Render", ctx, poem, photoURL).
			Return(&service.ComicResult{ComicURL: comicURL}, nil).Once()
		repo.On("UpdateComicImage", ctx, storyID, comicURL).Return(nil).Once()

		story, err := svc.CreateStory(ctx, title, photoURL)

		assert.NoError(t, err)
		assert.NotNil(t, story)
		assert.Nil(t, story.PoemAudio)
		assert.Equal(t, comicURL, *story.ComicImage)
		repo.AssertNotCalled(t, "UpdatePoemAudio", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Comic failure still yields a story with the audio", func(t *testing.T) {
		svc, repo, poems, narrator, comics := newService(t)
		storyID := uuid.New()

		repo.On("Create", ctx, mock.Anything).Run(func(args mock.Arguments) {
			args.Get(1).(*models.Story).ID = storyID
		}).Return(nil).Once()
		poems.On("Generate", ctx, photoURL, title).Return(poem, nil).Once()
		repo.On("UpdatePoemText", ctx, storyID, poem).Return(nil).Once()

		narrator.On("Narrate", ctx, poem).
			Return(&service.AudioResult{AudioURL: audioURL}, nil).Once()
		repo.On("UpdatePoemAudio", ctx, storyID, audioURL).Return(nil).Once()
		comics.On("Render", ctx, poem, photoURL).
			Return(nil, models.ErrComicGenerationFailed).Once()

		story, err := svc.CreateStory(ctx, title, photoURL)

		assert.NoError(t, err)
		assert.NotNil(t, story)
		assert.Equal(t, audioURL, *story.PoemAudio)
		assert.Nil(t, story.ComicImage)
		repo.AssertNotCalled(t, "UpdateComicImage", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Both branches failing still yields the poem", func(t *testing.T) {
		svc, repo, poems, narrator, comics := newService(t)
		storyID := uuid.New()

		repo.On("Create", ctx, mock.Anything).Run(func(args mock.Arguments) {
			args.Get(1).(*models.Story).ID = storyID
		}).Return(nil).Once()
		poems.On("Generate", ctx, photoURL, title).Return(poem, nil).Once()
		repo.On("UpdatePoemText", ctx, storyID, poem).Return(nil).Once()

		narrator.On("Narrate", ctx, poem).
			Return(nil, models.ErrAudioGenerationFailed).Once()
		comics.On("Render", ctx, poem, photoURL).
			Return(nil, models.ErrComicGenerationFailed).Once()

		story, err := svc.CreateStory(ctx, title, photoURL)

		assert.NoError(t, err)
		assert.NotNil(t, story)
		assert.Equal(t, poem, *story.PoemText)
		assert.Nil(t, story.PoemAudio)
		assert.Nil(t, story.ComicImage)
	})

	t.Run("Audio persistence failure is swallowed", func(t *testing.T) {
		svc, repo, poems, narrator, comics := newService(t)
		storyID := uuid.New()

		repo.On("Create", ctx, mock.Anything).Run(func(args mock.Arguments) {
			args.Get(1).(*models.Story).ID = storyID
		}).Return(nil).Once()
		poems.On("Generate", ctx, photoURL, title).Return(poem, nil).Once()
		repo.On("UpdatePoemText", ctx, storyID, poem).Return(nil).Once()

		narrator.On("Narrate", ctx, poem).
			Return(&service.AudioResult{AudioURL: audioURL}, nil).Once()
		repo.On("UpdatePoemAudio", ctx, storyID, audioURL).
			Return(errors.New("write failed")).Once()
		comics.On("Render", ctx, poem, photoURL).
			Return(&service.ComicResult{ComicURL: comicURL}, nil).Once()
		repo.On("UpdateComicImage", ctx, storyID, comicURL).Return(nil).Once()

		story, err := svc.CreateStory(ctx, title, photoURL)

		assert.NoError(t, err)
		assert.NotNil(t, story)
		assert.Nil(t, story.PoemAudio)
		assert.Equal(t, comicURL, *story.ComicImage)
	})
}

func TestGetStory(t *testing.T) {
	ctx := context.Background()

	t.Run("Found", func(t *testing.T) {
		repo := mocks.NewMockStoryRepository(t)
		svc := service.NewStoryService(repo, nil, nil, nil, zap.NewNop())
		id := uuid.New()
		expected := &models.Story{ID: id, Title: "Morning"}

		repo.On("GetByID", ctx, id).Return(expected, nil).Once()

		story, err := svc.GetStory(ctx, id)

		assert.NoError(t, err)
		assert.Equal(t, expected, story)
	})

	t.Run("Not found", func(t *testing.T) {
		repo := mocks.NewMockStoryRepository(t)
		svc := service.NewStoryService(repo, nil, nil, nil, zap.NewNop())
		id := uuid.New()

		repo.On("GetByID", ctx, id).Return(nil, models.ErrStoryNotFound).Once()

		story, err := svc.GetStory(ctx, id)

		assert.Error(t, err)
		assert.True(t, errors.Is(err, models.ErrStoryNotFound))
		assert.Nil(t, story)
	})
}

func TestListStories(t *testing.T) {
	ctx := context.Background()

	t.Run("Passes the limit through", func(t *testing.T) {
		repo := mocks.NewMockStoryRepository(t)
		svc := service.NewStoryService(repo, nil, nil, nil, zap.NewNop())

		repo.On("List", ctx, 10).Return([]*models.Story{}, nil).Once()

		stories, err := svc.ListStories(ctx, 10)

		assert.NoError(t, err)
		assert.NotNil(t, stories)
	})

	t.Run("Clamps zero and oversized limits", func(t *testing.T) {
		repo := mocks.NewMockStoryRepository(t)
		svc := service.NewStoryService(repo, nil, nil, nil, zap.NewNop())

		repo.On("List", ctx, 50).Return([]*models.Story{}, nil).Twice()

		_, err := svc.ListStories(ctx, 0)
		assert.NoError(t, err)

		_, err = svc.ListStories(ctx, 1000)
		assert.NoError(t, err)

		repo.AssertExpectations(t)
	})
}
