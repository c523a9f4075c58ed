package service

import (
	"context"
	"strings"
	"sync"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"contentapi/internal/gitstore"
	"contentapi/internal/model"
)

// NotificationDraft is a new notice as entered by the operator. File is
// optional; when present it is committed under the document's asset
// directory and referenced by absolute raw-content URL.
type NotificationDraft struct {
	Title model.Bilingual
	Date  string
	File  *model.Upload
}

// Validate runs before the optional file is uploaded.
func (d NotificationDraft) Validate() error {
	return validation.ValidateStruct(&d,
		validation.Field(&d.Title, model.RequiredEN),
		validation.Field(&d.Date, validation.Required.Error("date is required")),
	)
}

// NotificationService manages the notifications list.
type NotificationService interface {
	List(ctx context.Context) ([]model.Notification, error)
	Create(ctx context.Context, draft NotificationDraft) (*model.Notification, error)
	Delete(ctx context.Context, id int64) error
}

type notificationService struct {
	docs documents
	doc  model.Document
	// rawBase is the public raw-content origin; attachments are linked
	// absolutely so the site's router never swallows the path.
	rawBase string
	now     func() time.Time
	mu      sync.Mutex
}

// NewNotificationService constructs a NotificationService. rawBase is the
// raw-content origin for the target repository and branch.
func NewNotificationService(store gitstore.Store, rawBase string) NotificationService {
	return &notificationService{
		docs:    documents{store: store},
		doc:     model.NotificationsDocument,
		rawBase: strings.TrimSuffix(rawBase, "/"),
		now:     time.Now,
	}
}

func (s *notificationService) List(ctx context.Context) ([]model.Notification, error) {
	var items []model.Notification
	if _, err := s.docs.load(ctx, s.doc, &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []model.Notification{}
	}
	return items, nil
}

func (s *notificationService) Create(ctx context.Context, draft NotificationDraft) (*model.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := draft.Validate(); err != nil {
		return nil, err
	}

	var remote []model.Notification
	sha, err := s.docs.load(ctx, s.doc, &remote)
	if err != nil {
		return nil, err
	}

	ts := s.now()

	var fileURL string
	if draft.File != nil {
		repoPath, err := s.docs.uploadAsset(ctx, s.doc, *draft.File, "", ts)
		if err != nil {
			return nil, err
		}
		fileURL = s.rawBase + "/" + repoPath
	}

	record := model.Notification{
		ID:      ts.UnixMilli(),
		Title:   draft.Title.WithFallback(),
		Date:    draft.Date,
		FileURL: fileURL,
	}
	if err := record.Validate(); err != nil {
		return nil, err
	}

	updated := append([]model.Notification{record}, remote...)
	if err := s.docs.commit(ctx, s.doc, updated, "Add notification", sha); err != nil {
		return nil, err
	}
	return &record, nil
}

func (s *notificationService) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var remote []model.Notification
	sha, err := s.docs.load(ctx, s.doc, &remote)
	if err != nil {
		return err
	}

	updated := make([]model.Notification, 0, len(remote))
	removed := false
	for _, n := range remote {
		if n.ID == id {
			removed = true
			continue
		}
		updated = append(updated, n)
	}
	if !removed {
		return ErrRecordNotFound
	}
	return s.docs.commit(ctx, s.doc, updated, "Delete notification", sha)
}
