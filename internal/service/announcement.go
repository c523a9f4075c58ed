package service

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"contentapi/internal/gitstore"
	"contentapi/internal/model"
)

// AnnouncementEdit is the editing session handed to Publish: the text
// fields as the operator left them (blank means "keep the live value"),
// the image paths that survived on screen, and any newly attached images.
type AnnouncementEdit struct {
	Active      bool
	Title       model.Bilingual
	Subtitle    model.Bilingual
	Description model.Bilingual
	// KeepImages lists the already-published image paths the operator did
	// not remove; anything absent here is dropped from the merged record.
	KeepImages []string
	// NewImages are uploaded before the data file is touched.
	NewImages []model.Upload
}

// AnnouncementService manages the singleton popup announcement.
type AnnouncementService interface {
	// Load returns the currently committed announcement.
	Load(ctx context.Context) (*model.Announcement, error)
	// Publish merges the edit against a fresh remote snapshot and commits
	// the result atomically under the snapshot's version token.
	Publish(ctx context.Context, edit AnnouncementEdit) (*model.Announcement, error)
}

type announcementService struct {
	docs documents
	doc  model.Document
	now  func() time.Time

	// One publish per document at a time from this instance; cross-instance
	// races are caught by the version token.
	mu sync.Mutex
}

// NewAnnouncementService constructs an AnnouncementService over the given
// store.
func NewAnnouncementService(store gitstore.Store) AnnouncementService {
	return &announcementService{
		docs: documents{store: store},
		doc:  model.AnnouncementDocument,
		now:  time.Now,
	}
}

func (s *announcementService) Load(ctx context.Context) (*model.Announcement, error) {
	var current model.Announcement
	sha, err := s.docs.load(ctx, s.doc, &current)
	if err != nil {
		return nil, err
	}
	if sha == "" {
		// Never published yet; start the editor from an empty active record.
		current = model.Announcement{Active: true}
	}
	return &current, nil
}

func (s *announcementService) Publish(ctx context.Context, edit AnnouncementEdit) (*model.Announcement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Never trust the snapshot the page was opened with.
	var remote model.Announcement
	sha, err := s.docs.load(ctx, s.doc, &remote)
	if err != nil {
		return nil, err
	}

	uploaded, err := s.uploadImages(ctx, edit.NewImages)
	if err != nil {
		return nil, err
	}

	merged := MergeAnnouncement(edit, remote, uploaded)
	if err := merged.Validate(); err != nil {
		return nil, err
	}

	if err := s.docs.commit(ctx, s.doc, merged, "Update announcement content", sha); err != nil {
		return nil, err
	}
	return &merged, nil
}

// uploadImages commits the new blobs concurrently; they are independent
// creates with no shared version token. All must succeed before the data
// file may reference any of them.
func (s *announcementService) uploadImages(ctx context.Context, ups []model.Upload) ([]string, error) {
	if len(ups) == 0 {
		return nil, nil
	}

	refs := make([]string, len(ups))
	ts := s.now()

	g, gctx := errgroup.WithContext(ctx)
	for i, up := range ups {
		i, up := i, up
		// Spread the timestamps so simultaneous uploads get distinct paths.
		stamp := ts.Add(time.Duration(i) * time.Millisecond)
		g.Go(func() error {
			repoPath, err := s.docs.uploadAsset(gctx, s.doc, up, "Update announcement image", stamp)
			if err != nil {
				return err
			}
			refs[i] = sitePath(repoPath)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return refs, nil
}

// MergeAnnouncement reconciles an edit with the freshly fetched remote
// record. Text merges field-wise with fallback: a non-empty edited side
// wins, a blank one keeps the remote value. The image list is exactly the
// survivors the operator kept plus the newly uploaded paths, so explicit
// removals never reappear.
func MergeAnnouncement(edit AnnouncementEdit, remote model.Announcement, uploaded []string) model.Announcement {
	images := make([]string, 0, len(edit.KeepImages)+len(uploaded))
	images = append(images, edit.KeepImages...)
	images = append(images, uploaded...)

	return model.Announcement{
		Active:      edit.Active,
		Title:       mergeBilingual(edit.Title, remote.Title),
		Subtitle:    mergeBilingual(edit.Subtitle, remote.Subtitle),
		Description: mergeBilingual(edit.Description, remote.Description),
		Images:      images,
	}
}

// mergeBilingual applies the fallback per language side, so an operator
// can retype one translation without blanking the other.
func mergeBilingual(edit, remote model.Bilingual) model.Bilingual {
	merged := remote
	if edit.EN != "" {
		merged.EN = edit.EN
	}
	if edit.KA != "" {
		merged.KA = edit.KA
	}
	return merged
}
