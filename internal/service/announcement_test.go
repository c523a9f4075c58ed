package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"contentapi/internal/codec"
	"contentapi/internal/gitstore"
	"contentapi/internal/gitstore/mocks"
	"contentapi/internal/jsmodule"
	"contentapi/internal/model"
)

func remoteFile(t *testing.T, doc model.Document, v any, sha string) *gitstore.File {
	t.Helper()
	src, err := jsmodule.Serialize(doc.ExportName, v)
	require.NoError(t, err)
	return &gitstore.File{Path: doc.Path, Content: codec.Encode(src), SHA: sha}
}

// decodeCommitted parses the data-file content out of a captured commit.
func decodeCommitted(t *testing.T, req gitstore.CommitRequest, kind jsmodule.Kind, v any) {
	t.Helper()
	text, err := codec.Decode(req.Content)
	require.NoError(t, err)
	require.NoError(t, jsmodule.ParseDocument(text, kind, v))
}

func newAnnouncementService(store gitstore.Store, at time.Time) *announcementService {
	svc := NewAnnouncementService(store).(*announcementService)
	svc.now = func() time.Time { return at }
	return svc
}

func TestAnnouncementPublish_FieldFallbackMerge(t *testing.T) {
	ctx := context.Background()
	doc := model.AnnouncementDocument

	remote := model.Announcement{
		Active:      true,
		Title:       model.Bilingual{EN: "Announcement", KA: "ಘೋಷಣೆ"},
		Subtitle:    model.Bilingual{EN: "Mega Dairy Outline", KA: "ಮೆಗಾ ಡೈರಿ ಯೋಜನೆ"},
		Description: model.Bilingual{EN: "Old description", KA: "ಹಳೆಯ ವಿವರಣೆ"},
		Images:      []string{"/assets/popup-1-old.png"},
	}

	mStore := new(mocks.MockStore)
	mStore.On("Fetch", ctx, doc.Path).Return(remoteFile(t, doc, remote, "T1"), nil)

	var committed gitstore.CommitRequest
	mStore.On("Commit", ctx, mock.MatchedBy(func(req gitstore.CommitRequest) bool {
		committed = req
		return req.Path == doc.Path
	})).Return("T2", nil)

	svc := newAnnouncementService(mStore, time.UnixMilli(5000))

	// The operator retyped the English description, left the subtitle
	// blank, and kept the existing image.
	got, err := svc.Publish(ctx, AnnouncementEdit{
		Active:      true,
		Description: model.Bilingual{EN: "New description"},
		KeepImages:  []string{"/assets/popup-1-old.png"},
	})
	require.NoError(t, err)

	// Blank edited fields fall back to the live values.
	assert.Equal(t, remote.Subtitle, got.Subtitle)
	assert.Equal(t, remote.Title, got.Title)
	// Non-empty edited side wins; the untouched side survives.
	assert.Equal(t, "New description", got.Description.EN)
	assert.Equal(t, "ಹಳೆಯ ವಿವರಣೆ", got.Description.KA)

	// The commit carries the token from the fresh fetch.
	assert.Equal(t, "T1", committed.SHA)
	var stored model.Announcement
	decodeCommitted(t, committed, jsmodule.KindObject, &stored)
	assert.Equal(t, *got, stored)

	mStore.AssertExpectations(t)
}

func TestAnnouncementPublish_UploadBeforeReference(t *testing.T) {
	ctx := context.Background()
	doc := model.AnnouncementDocument

	mStore := new(mocks.MockStore)
	mStore.On("Fetch", ctx, doc.Path).
		Return(remoteFile(t, doc, model.Announcement{Active: true, Title: model.Bilingual{EN: "Announcement"}}, "T1"), nil)

	assetCommitted := false
	mStore.On("Commit", mock.Anything, mock.MatchedBy(func(req gitstore.CommitRequest) bool {
		return req.Path != doc.Path
	})).Run(func(args mock.Arguments) {
		assetCommitted = true
	}).Return("blob-sha", nil)

	var dataCommit gitstore.CommitRequest
	mStore.On("Commit", mock.Anything, mock.MatchedBy(func(req gitstore.CommitRequest) bool {
		if req.Path != doc.Path {
			return false
		}
		dataCommit = req
		// The asset blob must exist before the data file references it.
		return assetCommitted
	})).Return("T2", nil)

	svc := newAnnouncementService(mStore, time.UnixMilli(7000))

	got, err := svc.Publish(ctx, AnnouncementEdit{
		Active:    true,
		NewImages: []model.Upload{{Filename: "new banner.png", Data: []byte{0x89, 0x50}}},
	})
	require.NoError(t, err)

	require.Len(t, got.Images, 1)
	assert.Equal(t, "/assets/popup-7000-new-banner.png", got.Images[0])

	var stored model.Announcement
	decodeCommitted(t, dataCommit, jsmodule.KindObject, &stored)
	assert.Equal(t, got.Images, stored.Images)

	mStore.AssertExpectations(t)
}

func TestAnnouncementPublish_RemovedImagesStayRemoved(t *testing.T) {
	ctx := context.Background()
	doc := model.AnnouncementDocument

	remote := model.Announcement{
		Active: true,
		Title:  model.Bilingual{EN: "Announcement"},
		Images: []string{"/assets/popup-1-a.png", "/assets/popup-2-b.png"},
	}

	mStore := new(mocks.MockStore)
	mStore.On("Fetch", ctx, doc.Path).Return(remoteFile(t, doc, remote, "T1"), nil)
	mStore.On("Commit", mock.Anything, mock.MatchedBy(func(req gitstore.CommitRequest) bool {
		return req.Path != doc.Path
	})).Return("blob-sha", nil)

	var dataCommit gitstore.CommitRequest
	mStore.On("Commit", mock.Anything, mock.MatchedBy(func(req gitstore.CommitRequest) bool {
		if req.Path == doc.Path {
			dataCommit = req
			return true
		}
		return false
	})).Return("T2", nil)

	svc := newAnnouncementService(mStore, time.UnixMilli(9000))

	// The operator removed popup-2-b and attached one new image.
	got, err := svc.Publish(ctx, AnnouncementEdit{
		Active:     true,
		KeepImages: []string{"/assets/popup-1-a.png"},
		NewImages:  []model.Upload{{Filename: "c.png", Data: []byte{1}}},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"/assets/popup-1-a.png", "/assets/popup-9000-c.png"}, got.Images)

	var stored model.Announcement
	decodeCommitted(t, dataCommit, jsmodule.KindObject, &stored)
	assert.NotContains(t, stored.Images, "/assets/popup-2-b.png")
}

func TestAnnouncementPublish_UploadFailureAbortsBeforeDataCommit(t *testing.T) {
	ctx := context.Background()
	doc := model.AnnouncementDocument

	mStore := new(mocks.MockStore)
	mStore.On("Fetch", ctx, doc.Path).
		Return(remoteFile(t, doc, model.Announcement{Active: true, Title: model.Bilingual{EN: "x"}}, "T1"), nil)
	mStore.On("Commit", mock.Anything, mock.MatchedBy(func(req gitstore.CommitRequest) bool {
		return req.Path != doc.Path
	})).Return("", &gitstore.TransportError{StatusCode: 502, Message: "bad gateway"})

	svc := newAnnouncementService(mStore, time.UnixMilli(1000))

	_, err := svc.Publish(ctx, AnnouncementEdit{
		Active:    true,
		NewImages: []model.Upload{{Filename: "a.png", Data: []byte{1}}},
	})

	var uerr *UploadError
	require.ErrorAs(t, err, &uerr)
	// The data file was never touched, so it cannot reference the blob.
	mStore.AssertNotCalled(t, "Commit", mock.Anything, mock.MatchedBy(func(req gitstore.CommitRequest) bool {
		return req.Path == doc.Path
	}))
}

func TestAnnouncementPublish_ConflictSurfaces(t *testing.T) {
	ctx := context.Background()
	doc := model.AnnouncementDocument

	mStore := new(mocks.MockStore)
	mStore.On("Fetch", ctx, doc.Path).
		Return(remoteFile(t, doc, model.Announcement{Active: true, Title: model.Bilingual{EN: "x"}}, "T0"), nil)
	mStore.On("Commit", mock.Anything, mock.Anything).
		Return("", &gitstore.ConflictError{Path: doc.Path, Message: "does not match"})

	svc := newAnnouncementService(mStore, time.UnixMilli(1000))

	_, err := svc.Publish(ctx, AnnouncementEdit{Active: true, Title: model.Bilingual{EN: "y"}})

	var cerr *gitstore.ConflictError
	assert.ErrorAs(t, err, &cerr)
}

func TestAnnouncementPublish_ValidationBlocksCommit(t *testing.T) {
	ctx := context.Background()
	doc := model.AnnouncementDocument

	// No live record and the operator supplied no title.
	mStore := new(mocks.MockStore)
	mStore.On("Fetch", ctx, doc.Path).Return(nil, gitstore.ErrNotFound)

	svc := newAnnouncementService(mStore, time.UnixMilli(1000))

	_, err := svc.Publish(ctx, AnnouncementEdit{Active: true, Subtitle: model.Bilingual{EN: "sub"}})

	var verrs validation.Errors
	assert.ErrorAs(t, err, &verrs)
	mStore.AssertNotCalled(t, "Commit", mock.Anything, mock.Anything)
}

func TestAnnouncementLoad(t *testing.T) {
	ctx := context.Background()
	doc := model.AnnouncementDocument

	t.Run("returns the committed record", func(t *testing.T) {
		remote := model.Announcement{Active: true, Title: model.Bilingual{EN: "Announcement", KA: "ಘೋಷಣೆ"}}
		mStore := new(mocks.MockStore)
		mStore.On("Fetch", ctx, doc.Path).Return(remoteFile(t, doc, remote, "T1"), nil)

		got, err := NewAnnouncementService(mStore).Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, remote, *got)
	})

	t.Run("never published yields an empty active record", func(t *testing.T) {
		mStore := new(mocks.MockStore)
		mStore.On("Fetch", ctx, doc.Path).Return(nil, gitstore.ErrNotFound)

		got, err := NewAnnouncementService(mStore).Load(ctx)
		require.NoError(t, err)
		assert.True(t, got.Active)
		assert.Empty(t, got.Images)
	})

	t.Run("transport failure propagates", func(t *testing.T) {
		mStore := new(mocks.MockStore)
		mStore.On("Fetch", ctx, doc.Path).Return(nil, &gitstore.TransportError{StatusCode: 500, Message: "boom"})

		_, err := NewAnnouncementService(mStore).Load(ctx)
		var terr *gitstore.TransportError
		assert.ErrorAs(t, err, &terr)
	})
}
