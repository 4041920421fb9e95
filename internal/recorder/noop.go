package recorder

import (
	"context"
	"time"

	"PivotBoard/internal/model"
)

// NoopRecorder is a no-op implementation used when SQLite is not configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) InitStorage(_ context.Context) error { return nil }
func (n *NoopRecorder) SaveBars(_ context.Context, _ string, _ []model.PriceBar) error {
	return nil
}
func (n *NoopRecorder) LoadBars(_ context.Context, _ string, _, _ time.Time) ([]model.PriceBar, error) {
	return nil, nil
}
func (n *NoopRecorder) SaveInfo(_ context.Context, _ *model.StockInfo) error { return nil }
func (n *NoopRecorder) GetInfo(_ context.Context, _ string) (*model.StockInfo, error) {
	return nil, ErrNotFound
}
func (n *NoopRecorder) Close() error { return nil }
