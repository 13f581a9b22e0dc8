package models

import (
	"time"

	"github.com/google/uuid"
)

// Story is the persisted record combining a source photo with its generated
// artifacts. poem_audio and comic_image are optional: a story where only one
// (or neither) of them landed is still a valid end state.
type Story struct {
	ID          uuid.UUID `db:"id" json:"id"`
	Title       string    `db:"title" json:"title"`
	CameraImage string    `db:"camera_image" json:"camera_image"`
	PoemText    *string   `db:"poem_text" json:"poem_text"`
	PoemAudio   *string   `db:"poem_audio" json:"poem_audio"`
	ComicImage  *string   `db:"comic_image" json:"comic_image"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}
