package service

// Package service holds the merge-and-publish orchestrators. Every publish
// follows the same discipline: fetch the document fresh, upload any new
// asset blobs first, merge the edit against the fetched state, validate,
// and commit the data file with the version token obtained by the fetch.
// Nothing durable is mutated outside that ordered commit sequence, so a
// failure at any step leaves at worst an orphaned (never referenced) asset.

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strconv"
	"strings"
	"time"

	"contentapi/internal/codec"
	"contentapi/internal/gitstore"
	"contentapi/internal/jsmodule"
	"contentapi/internal/model"
)

// ErrRecordNotFound reports a delete aimed at a list id that is not in the
// freshly fetched remote list.
var ErrRecordNotFound = errors.New("record not found")

// UploadError wraps an asset commit failure. The data file is never
// touched after one of these: a record must not reference a blob that was
// not actually stored.
type UploadError struct {
	Path string
	Err  error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("upload asset %s: %v", e.Path, e.Err)
}

func (e *UploadError) Unwrap() error { return e.Err }

// documents wraps a Store with the decode/parse/serialize plumbing shared
// by all three content types.
type documents struct {
	store gitstore.Store
}

// load fetches doc fresh, decodes the transport encoding and parses the
// embedded literal into v. It returns the version token to commit against.
// A missing document yields an empty token and leaves v at its zero value,
// which turns the eventual commit into a create.
func (d documents) load(ctx context.Context, doc model.Document, v any) (sha string, err error) {
	file, err := d.store.Fetch(ctx, doc.Path)
	if err != nil {
		if errors.Is(err, gitstore.ErrNotFound) {
			return "", nil
		}
		return "", err
	}

	text, err := codec.Decode(file.Content)
	if err != nil {
		return "", fmt.Errorf("decode %s: %w", doc.Path, err)
	}
	if err := jsmodule.ParseDocument(text, doc.Kind, v); err != nil {
		return "", fmt.Errorf("parse %s: %w", doc.Path, err)
	}
	return file.SHA, nil
}

// commit serializes v back into module source and writes it with the
// version token from the load. A stale token surfaces as a
// *gitstore.ConflictError; no automatic re-merge is attempted, because
// re-merging over an unseen concurrent edit risks losing it.
func (d documents) commit(ctx context.Context, doc model.Document, v any, message, sha string) error {
	src, err := jsmodule.Serialize(doc.ExportName, v)
	if err != nil {
		return err
	}
	_, err = d.store.Commit(ctx, gitstore.CommitRequest{
		Path:    doc.Path,
		Content: codec.Encode(src),
		Message: message,
		SHA:     sha,
	})
	return err
}

// uploadAsset commits one new blob under the document's asset directory
// and returns the generated repository path. The commit carries no version
// token: the path is collision-resistant, so this is always a fresh create
// and no conflict is possible.
func (d documents) uploadAsset(ctx context.Context, doc model.Document, up model.Upload, message string, ts time.Time) (string, error) {
	name := assetFileName(doc.AssetPrefix, up.Filename, ts)
	repoPath := doc.AssetDir + "/" + name
	if message == "" {
		message = "Upload " + name
	}

	_, err := d.store.Commit(ctx, gitstore.CommitRequest{
		Path:    repoPath,
		Content: codec.EncodeBytes(up.Data),
		Message: message,
	})
	if err != nil {
		return "", &UploadError{Path: repoPath, Err: err}
	}
	return repoPath, nil
}

// sitePath converts a committed asset path to the reference stored in
// records: the site serves public/ from its root.
func sitePath(repoPath string) string {
	return strings.TrimPrefix(repoPath, "public")
}

// assetFileName synthesizes a collision-resistant file name from the
// upload timestamp and a sanitized original name.
func assetFileName(prefix, original string, ts time.Time) string {
	base := path.Base(strings.ReplaceAll(original, "\\", "/"))
	base = strings.Join(strings.Fields(base), "-")
	if base == "" || base == "." || base == "/" {
		base = "file"
	}

	stamp := strconv.FormatInt(ts.UnixMilli(), 10)
	if prefix != "" {
		return prefix + "-" + stamp + "-" + base
	}
	return stamp + "-" + base
}
