package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"heavytime-server/internal/models"
	"heavytime-server/internal/service"
	"heavytime-server/internal/storage"
)

// StoryHandler serves the photo browser and story API.
type StoryHandler struct {
	service  service.StoryService
	narrator service.AudioNarrator
	comics   service.ComicRenderer
	poems    service.PoemGenerator
	lister   storage.ImageLister
	logger   *zap.Logger
}

// NewStoryHandler creates the HTTP handler.
func NewStoryHandler(
	svc service.StoryService,
	poems service.PoemGenerator,
	narrator service.AudioNarrator,
	comics service.ComicRenderer,
	lister storage.ImageLister,
	logger *zap.Logger,
) *StoryHandler {
	return &StoryHandler{
		service:  svc,
		poems:    poems,
		narrator: narrator,
		comics:   comics,
		lister:   lister,
		logger:   logger.Named("StoryHandler"),
	}
}

// RegisterRoutes registers all API routes.
func (h *StoryHandler) RegisterRoutes(router *gin.Engine) {
	router.GET("/images/:date", h.listImages)

	router.POST("/generate-poem", h.generatePoem)
	router.POST("/generate-audio", h.generateAudio)
	router.POST("/generate-comic", h.generateComic)

	storiesGroup := router.Group("/stories")
	{
		storiesGroup.POST("", h.createStory)
		storiesGroup.GET("", h.listStories)
		storiesGroup.GET("/:id", h.getStory)
	}
}

// listImages answers the public URLs of the photos taken on one day. A
// failing store is reported in the response envelope but never as a bare
// error: the browser view renders an empty day instead of breaking.
func (h *StoryHandler) listImages(c *gin.Context) {
	date := c.Param("date")
	if _, err := time.Parse("2006-01-02", date); err != nil {
		c.JSON(http.StatusBadRequest, ImagesResponse{
			Error:  "Invalid date, expected YYYY-MM-DD",
			Images: []string{},
			Date:   date,
		})
		return
	}

	images, err := h.lister.ListImages(c.Request.Context(), date)
	if err != nil {
		h.logger.Error("Failed to list images", zap.String("date", date), zap.Error(err))
		c.JSON(http.StatusInternalServerError, ImagesResponse{
			Error:  "Failed to fetch images",
			Images: []string{},
			Date:   date,
		})
		return
	}

	c.JSON(http.StatusOK, ImagesResponse{
		Images: images,
		Date:   date,
		Count:  len(images),
	})
}

func (h *StoryHandler) generatePoem(c *gin.Context) {
	var req GeneratePoemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body", Details: err.Error()})
		return
	}
	if req.ImageURL == "" || req.Title == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Missing imageUrl or title"})
		return
	}

	poem, err := h.poems.Generate(c.Request.Context(), req.ImageURL, req.Title)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, GeneratePoemResponse{Poem: poem, Title: req.Title})
}

func (h *StoryHandler) generateAudio(c *gin.Context) {
	var req GenerateAudioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body", Details: err.Error()})
		return
	}
	if req.Text == "" || req.StoryID == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Missing text or storyId"})
		return
	}

	h.logger.Debug("Generating audio", zap.String("story_id", req.StoryID))
	result, err := h.narrator.Narrate(c.Request.Context(), req.Text)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, GenerateAudioResponse{
		AudioURL:   result.AudioURL,
		DurationMs: result.DurationMs,
		RequestID:  result.RequestID,
	})
}

func (h *StoryHandler) generateComic(c *gin.Context) {
	var req GenerateComicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body", Details: err.Error()})
		return
	}
	if req.Poem == "" || req.ImageURL == "" || req.StoryID == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Missing poem, imageUrl, or storyId"})
		return
	}

	h.logger.Debug("Generating comic", zap.String("story_id", req.StoryID))
	result, err := h.comics.Render(c.Request.Context(), req.Poem, req.ImageURL)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, GenerateComicResponse{
		ComicURL:    result.ComicURL,
		Description: result.Description,
		RequestID:   result.RequestID,
	})
}

// createStory runs the full story creation workflow and returns the
// persisted story, including whichever optional artifacts landed.
func (h *StoryHandler) createStory(c *gin.Context) {
	var req CreateStoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body", Details: err.Error()})
		return
	}
	if req.Title == "" || req.ImageURL == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Missing title or imageUrl"})
		return
	}

	story, err := h.service.CreateStory(c.Request.Context(), req.Title, req.ImageURL)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, story)
}

func (h *StoryHandler) listStories(c *gin.Context) {
	limit := 0
	if rawLimit := c.Query("limit"); rawLimit != "" {
		parsed, err := strconv.Atoi(rawLimit)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Invalid limit"})
			return
		}
		limit = parsed
	}

	stories, err := h.service.ListStories(c.Request.Context(), limit)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, ListStoriesResponse{Stories: stories, Count: len(stories)})
}

func (h *StoryHandler) getStory(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Invalid story id"})
		return
	}

	story, err := h.service.GetStory(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, story)
}
