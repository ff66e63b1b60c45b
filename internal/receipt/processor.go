package receipt

import (
	"context"
	"log/slog"
)

// Result is the outcome of processing one receipt image. Exactly one of Data
// and Error is set.
type Result struct {
	Success bool           `json:"success"`
	Data    *ProcessedBill `json:"data,omitempty"`
	Error   string         `json:"error,omitempty"`

	// Cached reports whether the extraction was served from the cache.
	Cached bool `json:"cached"`
}

// Processor runs extraction and mapping with an optional cache in front.
type Processor struct {
	extractor Extractor
	cache     *Cache
}

// NewProcessor creates a processor. extractor may be nil, in which case every
// request fails with ErrNotConfigured. cache may be nil.
func NewProcessor(extractor Extractor, cache *Cache) *Processor {
	return &Processor{extractor: extractor, cache: cache}
}

// Configured reports whether an extractor is available.
func (p *Processor) Configured() bool {
	return p != nil && p.extractor != nil
}

// Process extracts and maps a receipt. Failures are reported in the Result,
// never as a panic; cache errors are logged and otherwise ignored.
func (p *Processor) Process(ctx context.Context, image []byte, mimeType string) Result {
	if len(image) == 0 {
		return Result{Error: ErrEmptyImage.Error()}
	}
	if !p.Configured() {
		return Result{Error: ErrNotConfigured.Error()}
	}

	data, hit, err := p.cache.Get(ctx, image)
	if err != nil {
		slog.Warn("scan cache read failed", "error", err)
	}
	if !hit {
		data, err = p.extractor.Extract(ctx, image, mimeType)
		if err != nil {
			slog.Error("receipt extraction failed", "mime_type", mimeType, "bytes", len(image), "error", err)
			return Result{Error: err.Error()}
		}
		if err := p.cache.Set(ctx, image, data); err != nil {
			slog.Warn("scan cache write failed", "error", err)
		}
	}

	processed := Map(data)
	slog.Debug("receipt processed",
		"merchant", processed.MerchantName.Original,
		"items", len(processed.Items),
		"adjustments", len(processed.Adjustments),
		"currency", processed.Currency,
		"cached", hit,
	)
	return Result{Success: true, Data: &processed, Cached: hit}
}
