package model

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// RequiredEN rejects a bilingual field whose English side is blank. English
// is the canonical language; Kannada falls back to it, never the reverse.
var RequiredEN = validation.By(func(value interface{}) error {
	b, ok := value.(Bilingual)
	if !ok {
		return errors.New("not a bilingual field")
	}
	if b.EN == "" {
		return errors.New("english text is required")
	}
	return nil
})

// Announcement is the singleton popup record shown on the site. One live
// announcement at a time, so it carries no identifier.
type Announcement struct {
	Active      bool      `json:"active"`
	Title       Bilingual `json:"title"`
	Subtitle    Bilingual `json:"subtitle"`
	Description Bilingual `json:"description"`
	Images      []string  `json:"images"`
}

// Validate enforces the pre-commit floor for a merged announcement: images
// may only go live under a record with an English title.
func (a Announcement) Validate() error {
	return validation.ValidateStruct(&a,
		validation.Field(&a.Title, RequiredEN),
	)
}

// News is one article in the newest-first news list. ID is the creation
// timestamp in unix milliseconds, which doubles as list identity.
type News struct {
	ID          int64     `json:"id"`
	Title       Bilingual `json:"title"`
	Description Bilingual `json:"description"`
	Image       string    `json:"image"`
}

func (n News) Validate() error {
	return validation.ValidateStruct(&n,
		validation.Field(&n.ID, validation.Required),
		validation.Field(&n.Title, RequiredEN),
		validation.Field(&n.Image, validation.Required.Error("image is required")),
	)
}

// Notification is one entry in the notices list; FileURL, when present, is
// an absolute URL to a committed attachment.
type Notification struct {
	ID      int64     `json:"id"`
	Title   Bilingual `json:"title"`
	Date    string    `json:"date"`
	FileURL string    `json:"fileUrl"`
}

func (n Notification) Validate() error {
	return validation.ValidateStruct(&n,
		validation.Field(&n.ID, validation.Required),
		validation.Field(&n.Title, RequiredEN),
		validation.Field(&n.Date, validation.Required.Error("date is required")),
	)
}
