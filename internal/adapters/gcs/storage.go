// Package gcs reads captured audio objects from the Cloud Storage
// bucket the ingestion pipeline writes to. Objects live under
// audio/<userID>/<contentID>. This side of the system only ever
// reads; uploads and bucket provisioning belong to the pipeline.
// Credential configuration is documented in docs/storage.md.
package gcs

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"lectern/internal/domain"
	"lectern/internal/ports"
)

const readScope = "https://www.googleapis.com/auth/devstorage.read_only"

type Config struct {
	Bucket string
	// CredentialsFile is a path to a service-account JSON key.
	CredentialsFile string
	// CredentialsJSON is the key itself, for environments where a
	// file cannot be mounted. Takes precedence over the file.
	CredentialsJSON string
}

type Storage struct {
	bucket string
	client *http.Client
}

var _ ports.AudioStorage = (*Storage)(nil)

// New builds an authorized storage reader. Without explicit
// credentials it falls back to application-default credentials.
func New(ctx context.Context, cfg Config) (*Storage, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("storage bucket is required")
	}

	var jsonData []byte
	switch {
	case cfg.CredentialsJSON != "":
		jsonData = []byte(cfg.CredentialsJSON)
	case cfg.CredentialsFile != "":
		data, err := os.ReadFile(cfg.CredentialsFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read credentials file %s: %w", cfg.CredentialsFile, err)
		}
		jsonData = data
	}

	var client *http.Client
	if jsonData != nil {
		creds, err := google.CredentialsFromJSON(ctx, jsonData, readScope)
		if err != nil {
			return nil, fmt.Errorf("failed to parse service-account credentials: %w", err)
		}
		client = oauth2.NewClient(ctx, creds.TokenSource)
	} else {
		creds, err := google.FindDefaultCredentials(ctx, readScope)
		if err != nil {
			return nil, fmt.Errorf("no storage credentials configured and no default credentials found: %w", err)
		}
		client = oauth2.NewClient(ctx, creds.TokenSource)
	}

	return &Storage{bucket: cfg.Bucket, client: client}, nil
}

// ObjectName is the bucket path for a user's audio object.
func ObjectName(userID, contentID string) string {
	return fmt.Sprintf("audio/%s/%s", userID, contentID)
}

// Open streams the audio object for (userID, contentID).
func (s *Storage) Open(ctx context.Context, userID, contentID string) (io.ReadCloser, string, error) {
	object := ObjectName(userID, contentID)
	u := fmt.Sprintf("https://storage.googleapis.com/storage/v1/b/%s/o/%s?alt=media",
		url.PathEscape(s.bucket), url.PathEscape(object))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, "", err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("failed to fetch %s: %w", object, err)
	}
	if resp.StatusCode == http.StatusNotFound {
		resp.Body.Close()
		return nil, "", domain.ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, "", fmt.Errorf("storage returned %d for %s", resp.StatusCode, object)
	}
	return resp.Body, resp.Header.Get("Content-Type"), nil
}
