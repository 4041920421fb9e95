package calculator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"PivotBoard/internal/model"
)

func TestCalculatePivotPoints_ClassicLevels(t *testing.T) {
	bars := []model.PriceBar{
		bar(0, 120, 80, 95),
		bar(1, 110, 90, 100),
	}
	lv, err := CalculatePivotPoints(bars)
	require.NoError(t, err)

	want := model.PivotLevels{
		Pivot: 100,
		R1:    110, R2: 120, R3: 130, R4: 150,
		S1: 90, S2: 80, S3: 70, S4: 50,
	}
	assert.Equal(t, want, lv)
}

func TestCalculatePivotPoints_Empty(t *testing.T) {
	_, err := CalculatePivotPoints(nil)
	assert.ErrorIs(t, err, ErrInsufficientData)
}

func TestPivotFromBar_RoundsToTwoDecimals(t *testing.T) {
	lv := PivotFromBar(bar(0, 101.37, 99.11, 100.05))
	// pivot = 300.53 / 3 = 100.17666...
	assert.Equal(t, 100.18, lv.Pivot)
	// r1 = 2*100.17666 - 99.11 = 101.24333...
	assert.Equal(t, 101.24, lv.R1)
	// s1 = 2*100.17666 - 101.37 = 98.98333...
	assert.Equal(t, 98.98, lv.S1)
}

func TestPivotLevels_Ordering(t *testing.T) {
	lv := PivotFromBar(bar(0, 1520.4, 1488.15, 1502.9))
	assert.Less(t, lv.S4, lv.S3)
	assert.Less(t, lv.S3, lv.S2)
	assert.Less(t, lv.S2, lv.S1)
	assert.Less(t, lv.S1, lv.Pivot)
	assert.Less(t, lv.Pivot, lv.R1)
	assert.Less(t, lv.R1, lv.R2)
	assert.Less(t, lv.R2, lv.R3)
	assert.Less(t, lv.R3, lv.R4)
}
