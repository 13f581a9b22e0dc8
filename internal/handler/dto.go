package handler

import "heavytime-server/internal/models"

// ImagesResponse is the payload for GET /images/:date. On error the
// handler answers the same shape with an empty list and the error field
// set, so the browser view can always render something.
type ImagesResponse struct {
	Images []string `json:"images"`
	Date   string   `json:"date"`
	Count  int      `json:"count"`
	Error  string   `json:"error,omitempty"`
}

// GeneratePoemRequest is the payload for POST /generate-poem.
type GeneratePoemRequest struct {
	ImageURL string `json:"imageUrl"`
	Title    string `json:"title"`
}

// GeneratePoemResponse echoes the title alongside the generated poem.
type GeneratePoemResponse struct {
	Poem  string `json:"poem"`
	Title string `json:"title"`
}

// GenerateAudioRequest is the payload for POST /generate-audio. StoryID is
// validated and logged but not persisted by this endpoint; the caller owns
// the row update.
type GenerateAudioRequest struct {
	Text    string `json:"text"`
	StoryID string `json:"storyId"`
}

// GenerateAudioResponse carries the hosted audio URL and its duration.
type GenerateAudioResponse struct {
	AudioURL   string `json:"audioUrl"`
	DurationMs int64  `json:"durationMs"`
	RequestID  string `json:"requestId"`
}

// GenerateComicRequest is the payload for POST /generate-comic.
type GenerateComicRequest struct {
	Poem     string `json:"poem"`
	ImageURL string `json:"imageUrl"`
	StoryID  string `json:"storyId"`
}

// GenerateComicResponse carries the hosted comic URL.
type GenerateComicResponse struct {
	ComicURL    string `json:"comicUrl"`
	Description string `json:"description"`
	RequestID   string `json:"requestId"`
}

// CreateStoryRequest is the payload for POST /stories, the server-side
// story creation workflow.
type CreateStoryRequest struct {
	Title    string `json:"title"`
	ImageURL string `json:"imageUrl"`
}

// ListStoriesResponse is the payload for GET /stories.
type ListStoriesResponse struct {
	Stories []*models.Story `json:"stories"`
	Count   int             `json:"count"`
}
