package recorder

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"PivotBoard/internal/model"
)

func newTestRecorder(t *testing.T) *SQLiteRecorder {
	t.Helper()
	r, err := NewSQLiteRecorder(filepath.Join(t.TempDir(), "stock_data.db"))
	require.NoError(t, err)
	t.Cleanup(func() { r.Close() })
	return r
}

func day(d int) time.Time {
	return time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, d)
}

func TestSQLiteRecorder_RequiresInit(t *testing.T) {
	r := newTestRecorder(t)
	ctx := context.Background()

	assert.ErrorIs(t, r.SaveBars(ctx, "TCS.NS", []model.PriceBar{{Time: day(0), Close: 1}}), ErrNotInitialized)
	_, err := r.LoadBars(ctx, "TCS.NS", time.Time{}, time.Time{})
	assert.ErrorIs(t, err, ErrNotInitialized)
	assert.ErrorIs(t, r.SaveInfo(ctx, &model.StockInfo{Symbol: "TCS.NS"}), ErrNotInitialized)
	_, err = r.GetInfo(ctx, "TCS.NS")
	assert.ErrorIs(t, err, ErrNotInitialized)
}

func TestSQLiteRecorder_BarsUpsertAndRange(t *testing.T) {
	r := newTestRecorder(t)
	ctx := context.Background()
	require.NoError(t, r.InitStorage(ctx))
	require.NoError(t, r.InitStorage(ctx))

	bars := []model.PriceBar{
		{Time: day(2), Open: 12, High: 13, Low: 11, Close: 12.5, Volume: 300},
		{Time: day(0), Open: 10, High: 11, Low: 9, Close: 10.5, Volume: 100},
		{Time: day(1), Open: 11, High: 12, Low: 10, Close: 11.5, Volume: 200},
	}
	require.NoError(t, r.SaveBars(ctx, "TCS.NS", bars))
	require.NoError(t, r.SaveBars(ctx, "INFY.NS", bars[:1]))

	// second save of the same day replaces it
	require.NoError(t, r.SaveBars(ctx, "TCS.NS", []model.PriceBar{
		{Time: day(1).Add(9 * time.Hour), Open: 11, High: 12.2, Low: 10, Close: 12, Volume: 250},
	}))

	got, err := r.LoadBars(ctx, "TCS.NS", time.Time{}, time.Time{})
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.True(t, got[0].Time.Equal(day(0)))
	assert.True(t, got[2].Time.Equal(day(2)))
	assert.Equal(t, 12.0, got[1].Close)
	assert.Equal(t, int64(250), got[1].Volume)

	ranged, err := r.LoadBars(ctx, "TCS.NS", day(1), day(1))
	require.NoError(t, err)
	require.Len(t, ranged, 1)
	assert.Equal(t, 12.2, ranged[0].High)

	none, err := r.LoadBars(ctx, "WIPRO.NS", time.Time{}, time.Time{})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestSQLiteRecorder_Info(t *testing.T) {
	r := newTestRecorder(t)
	ctx := context.Background()
	require.NoError(t, r.InitStorage(ctx))

	_, err := r.GetInfo(ctx, "TCS.NS")
	assert.ErrorIs(t, err, ErrNotFound)

	info := &model.StockInfo{
		Symbol:      "TCS.NS",
		CompanyName: "Tata Consultancy Services",
		Sector:      "Technology",
		MarketCap:   1.4e13,
		Exchange:    "NSI",
		Currency:    "INR",
		LastUpdated: day(3),
	}
	require.NoError(t, r.SaveInfo(ctx, info))

	info.Sector = "Information Technology"
	require.NoError(t, r.SaveInfo(ctx, info))

	got, err := r.GetInfo(ctx, "TCS.NS")
	require.NoError(t, err)
	assert.Equal(t, "Tata Consultancy Services", got.CompanyName)
	assert.Equal(t, "Information Technology", got.Sector)
	assert.Equal(t, 1.4e13, got.MarketCap)
	assert.True(t, got.LastUpdated.Equal(day(3)))
}

func TestNoopRecorder(t *testing.T) {
	var r Recorder = NewNoopRecorder()
	ctx := context.Background()
	require.NoError(t, r.InitStorage(ctx))
	require.NoError(t, r.SaveBars(ctx, "X", nil))
	bars, err := r.LoadBars(ctx, "X", time.Time{}, time.Time{})
	assert.NoError(t, err)
	assert.Nil(t, bars)
	_, err = r.GetInfo(ctx, "X")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, r.Close())
}
