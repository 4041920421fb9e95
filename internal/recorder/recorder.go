package recorder

import (
	"context"
	"errors"
	"time"

	"PivotBoard/internal/model"
)

var (
	// ErrNotInitialized is returned when the store is used before InitStorage.
	ErrNotInitialized = errors.New("recorder: storage not initialized")

	// ErrNotFound is returned by GetInfo for an unknown symbol.
	ErrNotFound = errors.New("recorder: not found")
)

// Recorder persists daily price history and company metadata.
type Recorder interface {
	// InitStorage creates the schema. It must be called once before any other method.
	InitStorage(ctx context.Context) error
	// SaveBars upserts bars keyed by (symbol, date).
	SaveBars(ctx context.Context, symbol string, bars []model.PriceBar) error
	// LoadBars returns the stored bars in ascending date order.
	// A zero from or to leaves that end of the range open.
	LoadBars(ctx context.Context, symbol string, from, to time.Time) ([]model.PriceBar, error)
	SaveInfo(ctx context.Context, info *model.StockInfo) error
	GetInfo(ctx context.Context, symbol string) (*model.StockInfo, error)
	Close() error
}
