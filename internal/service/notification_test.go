package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"contentapi/internal/gitstore"
	"contentapi/internal/gitstore/mocks"
	"contentapi/internal/jsmodule"
	"contentapi/internal/model"
)

const testRawBase = "https://raw.githubusercontent.com/owner/site/main"

func newNotificationService(store gitstore.Store, at time.Time) *notificationService {
	svc := NewNotificationService(store, testRawBase).(*notificationService)
	svc.now = func() time.Time { return at }
	return svc
}

func TestNotificationCreate_WithAttachment(t *testing.T) {
	ctx := context.Background()
	doc := model.NotificationsDocument

	mStore := new(mocks.MockStore)
	mStore.On("Fetch", ctx, doc.Path).Return(remoteFile(t, doc, []model.Notification{{ID: 900, Title: model.Bilingual{EN: "Old", KA: "Old"}, Date: "2026-01-01"}}, "T1"), nil)

	fileCommitted := false
	mStore.On("Commit", ctx, mock.MatchedBy(func(req gitstore.CommitRequest) bool {
		return req.Path == "public/pdfs/notif-1000-tender-doc.pdf"
	})).Run(func(mock.Arguments) { fileCommitted = true }).Return("blob-sha", nil)

	var dataCommit gitstore.CommitRequest
	mStore.On("Commit", ctx, mock.MatchedBy(func(req gitstore.CommitRequest) bool {
		if req.Path != doc.Path {
			return false
		}
		dataCommit = req
		return fileCommitted
	})).Return("T2", nil)

	svc := newNotificationService(mStore, time.UnixMilli(1000))

	record, err := svc.Create(ctx, NotificationDraft{
		Title: model.Bilingual{EN: "Tender notice"},
		Date:  "2026-08-31",
		File:  &model.Upload{Filename: "tender doc.pdf", Data: []byte("%PDF-")},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1000), record.ID)
	// Attachments are linked by absolute raw-content URL.
	assert.Equal(t, testRawBase+"/public/pdfs/notif-1000-tender-doc.pdf", record.FileURL)
	assert.Equal(t, "Tender notice", record.Title.KA)

	assert.Equal(t, "T1", dataCommit.SHA)
	var stored []model.Notification
	decodeCommitted(t, dataCommit, jsmodule.KindArray, &stored)
	require.Len(t, stored, 2)
	assert.Equal(t, int64(1000), stored[0].ID)
	assert.Equal(t, int64(900), stored[1].ID)

	mStore.AssertExpectations(t)
}

func TestNotificationCreate_WithoutAttachment(t *testing.T) {
	ctx := context.Background()
	doc := model.NotificationsDocument

	mStore := new(mocks.MockStore)
	mStore.On("Fetch", ctx, doc.Path).Return(remoteFile(t, doc, []model.Notification{}, "T1"), nil)

	var dataCommit gitstore.CommitRequest
	mStore.On("Commit", ctx, mock.MatchedBy(func(req gitstore.CommitRequest) bool {
		dataCommit = req
		return req.Path == doc.Path
	})).Return("T2", nil)

	svc := newNotificationService(mStore, time.UnixMilli(3000))

	record, err := svc.Create(ctx, NotificationDraft{
		Title: model.Bilingual{EN: "Holiday", KA: "ರಜೆ"},
		Date:  "2026-10-02",
	})
	require.NoError(t, err)
	assert.Empty(t, record.FileURL)

	var stored []model.Notification
	decodeCommitted(t, dataCommit, jsmodule.KindArray, &stored)
	require.Len(t, stored, 1)
	assert.Equal(t, "ರಜೆ", stored[0].Title.KA)
}

func TestNotificationCreate_RequiresTitleAndDate(t *testing.T) {
	ctx := context.Background()

	mStore := new(mocks.MockStore)
	svc := newNotificationService(mStore, time.UnixMilli(1000))

	_, err := svc.Create(ctx, NotificationDraft{Title: model.Bilingual{EN: "No date"}})

	var verrs validation.Errors
	assert.ErrorAs(t, err, &verrs)
	mStore.AssertNotCalled(t, "Fetch", mock.Anything, mock.Anything)
	mStore.AssertNotCalled(t, "Commit", mock.Anything, mock.Anything)
}

func TestNotificationDelete(t *testing.T) {
	ctx := context.Background()
	doc := model.NotificationsDocument

	remote := []model.Notification{
		{ID: 1000, Title: model.Bilingual{EN: "a", KA: "a"}, Date: "2026-01-01"},
		{ID: 900, Title: model.Bilingual{EN: "b", KA: "b"}, Date: "2026-01-02"},
	}

	t.Run("removes by id", func(t *testing.T) {
		mStore := new(mocks.MockStore)
		mStore.On("Fetch", ctx, doc.Path).Return(remoteFile(t, doc, remote, "T1"), nil)

		var dataCommit gitstore.CommitRequest
		mStore.On("Commit", ctx, mock.MatchedBy(func(req gitstore.CommitRequest) bool {
			dataCommit = req
			return req.Path == doc.Path
		})).Return("T2", nil)

		svc := newNotificationService(mStore, time.UnixMilli(5000))
		require.NoError(t, svc.Delete(ctx, 1000))

		var stored []model.Notification
		decodeCommitted(t, dataCommit, jsmodule.KindArray, &stored)
		require.Len(t, stored, 1)
		assert.Equal(t, int64(900), stored[0].ID)
	})

	t.Run("unknown id", func(t *testing.T) {
		mStore := new(mocks.MockStore)
		mStore.On("Fetch", ctx, doc.Path).Return(remoteFile(t, doc, remote, "T1"), nil)

		svc := newNotificationService(mStore, time.UnixMilli(5000))
		assert.ErrorIs(t, svc.Delete(ctx, 7), ErrRecordNotFound)
		mStore.AssertNotCalled(t, "Commit", mock.Anything, mock.Anything)
	})
}

func TestAssetFileName(t *testing.T) {
	ts := time.UnixMilli(1234)

	tests := []struct {
		name     string
		prefix   string
		original string
		want     string
	}{
		{"with prefix", "notif", "tender doc.pdf", "notif-1234-tender-doc.pdf"},
		{"without prefix", "", "dairy opening.png", "1234-dairy-opening.png"},
		{"collapses whitespace runs", "popup", "a   b\tc.png", "popup-1234-a-b-c.png"},
		{"strips directories", "", "../../etc/passwd", "1234-passwd"},
		{"windows path separators", "", `C:\photos\cow barn.jpg`, "1234-cow-barn.jpg"},
		{"empty name falls back", "notif", "", "notif-1234-file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, assetFileName(tt.prefix, tt.original, ts))
		})
	}
}
