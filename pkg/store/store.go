// Package store persists layout documents for the CLI and the HTTP server.
//
// A [Record] wraps a document's JSON (as written by pkg/io) with an ID, an
// optional name and timestamps. Four backends implement [Store]:
//
//   - memory: process-local, for tests and ephemeral servers
//   - file: one JSON file per document under a directory
//   - redis: documents as string keys plus an index set
//   - mongo: one collection document per record
//
// [Open] builds the backend selected by a [Config] and wraps it so every
// load, save and delete is reported to the store hooks in pkg/observability.
//
// Missing documents are reported as errors matching both [ErrNotFound]
// (errors.Is) and the DOCUMENT_NOT_FOUND code.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"slices"
	"time"

	"github.com/google/uuid"

	errs "github.com/matzehuels/mosaic/pkg/errors"
)

// ErrNotFound is returned when a document does not exist.
var ErrNotFound = errors.New("document not found")

// Record is a stored document.
type Record struct {
	ID        string          `json:"id"`
	Name      string          `json:"name,omitempty"`
	Data      json.RawMessage `json:"data"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// Store is the interface for document storage backends.
type Store interface {
	// Get returns the record with the given ID.
	Get(ctx context.Context, id string) (*Record, error)

	// Put creates or replaces a record. An empty ID is filled with [NewID];
	// timestamps are maintained by the store.
	Put(ctx context.Context, rec *Record) error

	// Delete removes a record.
	Delete(ctx context.Context, id string) error

	// List returns all records, most recently updated first.
	List(ctx context.Context) ([]*Record, error)

	// Close releases backend resources.
	Close() error
}

// NewID returns a fresh document ID.
func NewID() string {
	return uuid.NewString()
}

func notFound(id string) error {
	return errs.Wrap(errs.ErrCodeDocumentNotFound, ErrNotFound, "document %s", id)
}

func storeError(err error, format string, args ...any) error {
	return errs.Wrap(errs.ErrCodeStore, err, format, args...)
}

// prepare validates rec and stamps it for writing.
func prepare(rec *Record, now time.Time) error {
	if rec.ID == "" {
		rec.ID = NewID()
	}
	if err := errs.ValidateDocumentID(rec.ID); err != nil {
		return err
	}
	if !json.Valid(rec.Data) {
		return errs.New(errs.ErrCodeInvalidDocument, "document %s: data is not valid JSON", rec.ID)
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = now
	}
	rec.UpdatedAt = now
	return nil
}

func (r *Record) clone() *Record {
	cp := *r
	cp.Data = append(json.RawMessage(nil), r.Data...)
	return &cp
}

// sortRecords orders records by update time, newest first, then by ID.
func sortRecords(recs []*Record) {
	slices.SortFunc(recs, func(a, b *Record) int {
		if c := b.UpdatedAt.Compare(a.UpdatedAt); c != 0 {
			return c
		}
		if a.ID < b.ID {
			return -1
		}
		if a.ID > b.ID {
			return 1
		}
		return 0
	})
}
