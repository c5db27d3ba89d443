package ports

import (
	"context"
	"io"
)

// AudioStorage reads captured audio objects from the cloud bucket the
// ingestion pipeline writes to. Objects are keyed by owning user and a
// content id; this application only ever reads them.
type AudioStorage interface {
	// Open streams the audio object for (userID, contentID).
	Open(ctx context.Context, userID, contentID string) (rc io.ReadCloser, contentType string, err error)
}
