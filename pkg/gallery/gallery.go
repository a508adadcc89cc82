// Package gallery stores metadata about completed renders.
//
// A gallery record describes one render: the prompt, the options hash,
// the derived palette, and timestamps. The image bytes themselves live
// in the artifact cache; the gallery only keeps what is needed to list
// past renders and re-run them.
//
// Two backends are provided: MongoStore for server deployments and
// MemoryStore for tests and single-process use.
package gallery

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// DefaultListLimit bounds List calls that pass limit <= 0.
const DefaultListLimit = 50

// MaxListLimit is the hard ceiling for List page sizes.
const MaxListLimit = 500

// Record describes one completed render.
type Record struct {
	// ID is a UUID assigned when the record is created.
	ID string `json:"id" bson:"_id"`

	// Prompt is the raw prompt text.
	Prompt string `json:"prompt" bson:"prompt"`

	// Mode is the render mode (flow or emotion).
	Mode string `json:"mode" bson:"mode"`

	// OptionsHash is the content hash of the full pipeline options,
	// sufficient to reproduce the render together with the prompt.
	OptionsHash string `json:"options_hash" bson:"options_hash"`

	// Palette holds the derived colors as #rrggbb strings.
	Palette []string `json:"palette" bson:"palette"`

	// Dominant is the dominant emotion, empty for neutral prompts.
	Dominant string `json:"dominant,omitempty" bson:"dominant,omitempty"`

	// PNGBytes is the size of the rendered image.
	PNGBytes int `json:"png_bytes" bson:"png_bytes"`

	// CreatedAt is the record creation time in UTC.
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// NewRecord creates a record with a fresh UUID and the current time.
func NewRecord(prompt, mode string) Record {
	return Record{
		ID:        uuid.NewString(),
		Prompt:    prompt,
		Mode:      mode,
		CreatedAt: time.Now().UTC(),
	}
}

// Store is the interface implemented by gallery backends.
type Store interface {
	// Put inserts a record. Inserting an existing ID is an error.
	Put(ctx context.Context, rec Record) error

	// Get retrieves a record by ID.
	Get(ctx context.Context, id string) (Record, error)

	// List returns the most recent records, newest first.
	// limit <= 0 uses DefaultListLimit.
	List(ctx context.Context, limit int) ([]Record, error)

	// Delete removes a record by ID. Deleting a missing ID is an error.
	Delete(ctx context.Context, id string) error

	// Close releases backend resources.
	Close(ctx context.Context) error
}

// clampLimit normalizes a List page size.
func clampLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	if limit > MaxListLimit {
		return MaxListLimit
	}
	return limit
}
