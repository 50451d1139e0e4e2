// Package memory provides process-lifetime implementations of the facerelay
// repositories.
package memory

import (
	"context"
	"sync"

	"github.com/sagarc03/facerelay"
)

// History is an append-only upload history held in memory. It grows without
// bound for the life of the process.
type History struct {
	mu      sync.RWMutex
	records []facerelay.UploadRecord
}

// NewHistory returns an empty History.
func NewHistory() *History {
	return &History{}
}

// Append adds rec as the newest record.
func (h *History) Append(ctx context.Context, rec facerelay.UploadRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if rec.FileLocation != nil {
		location := *rec.FileLocation
		rec.FileLocation = &location
	}

	h.mu.Lock()
	h.records = append(h.records, rec)
	h.mu.Unlock()

	return nil
}

// Latest returns the last appended record. Returns facerelay.ErrNotFound if
// the history is empty.
func (h *History) Latest(ctx context.Context) (facerelay.UploadRecord, error) {
	if err := ctx.Err(); err != nil {
		return facerelay.UploadRecord{}, err
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	if len(h.records) == 0 {
		return facerelay.UploadRecord{}, facerelay.ErrNotFound
	}

	rec := h.records[len(h.records)-1]
	if rec.FileLocation != nil {
		location := *rec.FileLocation
		rec.FileLocation = &location
	}
	return rec, nil
}

// Len returns the number of stored records.
func (h *History) Len(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.records), nil
}
