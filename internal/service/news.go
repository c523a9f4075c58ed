package service

import (
	"context"
	"errors"
	"sync"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"contentapi/internal/gitstore"
	"contentapi/internal/model"
)

// NewsDraft is a new article as entered by the operator. Blank Kannada
// sides fall back to English when the record is built.
type NewsDraft struct {
	Title       model.Bilingual
	Description model.Bilingual
	Image       model.Upload
}

// Validate runs before anything is uploaded, so a rejected draft leaves no
// orphaned blob behind.
func (d NewsDraft) Validate() error {
	return validation.ValidateStruct(&d,
		validation.Field(&d.Title, model.RequiredEN),
		validation.Field(&d.Image, validation.By(func(interface{}) error {
			if d.Image.Filename == "" || len(d.Image.Data) == 0 {
				return errors.New("image is required")
			}
			return nil
		})),
	)
}

// NewsService manages the newest-first news list. Every mutation is a
// whole-list replacement committed under the version token of the list
// revision it was computed from.
type NewsService interface {
	List(ctx context.Context) ([]model.News, error)
	// Create uploads the image, prepends the new article to a fresh remote
	// snapshot of the list and commits it.
	Create(ctx context.Context, draft NewsDraft) (*model.News, error)
	// Delete removes the article with the given id from a fresh snapshot.
	Delete(ctx context.Context, id int64) error
}

type newsService struct {
	docs documents
	doc  model.Document
	now  func() time.Time
	mu   sync.Mutex
}

// NewNewsService constructs a NewsService over the given store.
func NewNewsService(store gitstore.Store) NewsService {
	return &newsService{
		docs: documents{store: store},
		doc:  model.NewsDocument,
		now:  time.Now,
	}
}

func (s *newsService) List(ctx context.Context) ([]model.News, error) {
	var items []model.News
	if _, err := s.docs.load(ctx, s.doc, &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []model.News{}
	}
	return items, nil
}

func (s *newsService) Create(ctx context.Context, draft NewsDraft) (*model.News, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := draft.Validate(); err != nil {
		return nil, err
	}

	var remote []model.News
	sha, err := s.docs.load(ctx, s.doc, &remote)
	if err != nil {
		return nil, err
	}

	ts := s.now()

	// Image first: the list must never reference a blob that is not stored.
	repoPath, err := s.docs.uploadAsset(ctx, s.doc, draft.Image, "Upload image: "+draft.Image.Filename, ts)
	if err != nil {
		return nil, err
	}

	record := model.News{
		ID:          ts.UnixMilli(),
		Title:       draft.Title.WithFallback(),
		Description: draft.Description.WithFallback(),
		Image:       sitePath(repoPath),
	}
	if err := record.Validate(); err != nil {
		return nil, err
	}

	updated := PrependNews(remote, record)
	if err := s.docs.commit(ctx, s.doc, updated, "Update news data", sha); err != nil {
		return nil, err
	}
	return &record, nil
}

func (s *newsService) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var remote []model.News
	sha, err := s.docs.load(ctx, s.doc, &remote)
	if err != nil {
		return err
	}

	updated, removed := RemoveNewsByID(remote, id)
	if !removed {
		return ErrRecordNotFound
	}
	return s.docs.commit(ctx, s.doc, updated, "Delete news item", sha)
}

// PrependNews returns the list with the new record first; the site renders
// the list in stored order, newest on top.
func PrependNews(list []model.News, record model.News) []model.News {
	return append([]model.News{record}, list...)
}

// RemoveNewsByID filters the record with the given id out of the list.
// List identity is the id alone.
func RemoveNewsByID(list []model.News, id int64) ([]model.News, bool) {
	updated := make([]model.News, 0, len(list))
	removed := false
	for _, n := range list {
		if n.ID == id {
			removed = true
			continue
		}
		updated = append(updated, n)
	}
	return updated, removed
}
