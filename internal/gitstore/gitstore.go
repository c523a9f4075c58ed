package gitstore

// Package gitstore is the client for the Git-hosting repository-contents
// API that holds the live website. The repository is the single source of
// truth: every durable mutation in this system is a file commit issued
// through this package.

import (
	"context"
	"errors"
	"fmt"
)

// File is the current committed state of one repository file. Content is
// the transport-encoded (base64) body exactly as the API returned it; SHA
// is the opaque version token used for optimistic concurrency.
type File struct {
	Path    string
	Content string
	SHA     string
}

// CommitRequest describes a single-file commit. Content must already be
// transport-encoded. SHA carries the version token of the revision the
// caller read; leave it empty to create a file that must not exist yet.
type CommitRequest struct {
	Path    string
	Content string
	Message string
	SHA     string
}

// Store is the remote file accessor. Implementations must bypass any
// caching between client and store: repository content can change between
// an admin's page load and their publish, and a stale read would reopen
// the concurrency hole the SHA check exists to close.
type Store interface {
	// Fetch returns the current committed content and version token for
	// path, or ErrNotFound when the file is absent on the target branch.
	Fetch(ctx context.Context, path string) (*File, error)

	// Commit writes req and returns the new version token. When req.SHA is
	// set and no longer matches the live revision, the store rejects the
	// write and a *ConflictError is returned.
	Commit(ctx context.Context, req CommitRequest) (string, error)

	// Ping verifies the repository is reachable with the configured
	// credentials.
	Ping(ctx context.Context) error
}

// ErrNotFound reports that the requested file does not exist on the
// target branch. Callers must distinguish this from transport failure.
var ErrNotFound = errors.New("file not found in repository")

// TransportError is any non-2xx store response that is not a not-found or
// a version conflict: auth failures, rate limits, upstream outages.
type TransportError struct {
	StatusCode int
	Message    string
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("repository API error (status %d): %s", e.StatusCode, e.Message)
}

// ConflictError reports that a commit was rejected because the supplied
// version token no longer matches the live revision: another editor
// published since this one loaded. The edit was not applied; the caller
// must reload and redo it rather than re-merge blindly.
type ConflictError struct {
	Path    string
	Message string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("commit to %s rejected, the file changed since it was loaded: %s", e.Path, e.Message)
}
