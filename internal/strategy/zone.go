package strategy

import "PivotBoard/internal/model"

// zoneBounds lists each zone with the level it sits below, lowest first.
func zoneBounds(lv model.PivotLevels) []struct {
	Below float64
	Zone  model.Zone
} {
	return []struct {
		Below float64
		Zone  model.Zone
	}{
		{lv.S4, model.ZoneBelowS4},
		{lv.S3, model.ZoneS4S3},
		{lv.S2, model.ZoneS3S2},
		{lv.S1, model.ZoneS2S1},
		{lv.Pivot, model.ZoneS1P},
		{lv.R1, model.ZonePR1},
		{lv.R2, model.ZoneR1R2},
		{lv.R3, model.ZoneR2R3},
		{lv.R4, model.ZoneR3R4},
	}
}

// ZoneOf maps a price to the band between two adjacent pivot levels.
// A price exactly on a level belongs to the zone above it.
func ZoneOf(price float64, lv model.PivotLevels) model.Zone {
	for _, b := range zoneBounds(lv) {
		if price < b.Below {
			return b.Zone
		}
	}
	return model.ZoneAboveR4
}

// NearestLevels returns the closest support at or below price and the closest
// resistance above it. ok is false on the side where price is outside all levels.
func NearestLevels(price float64, lv model.PivotLevels) (support float64, supportOK bool, resistance float64, resistanceOK bool) {
	levels := []float64{lv.S4, lv.S3, lv.S2, lv.S1, lv.Pivot, lv.R1, lv.R2, lv.R3, lv.R4}
	for _, l := range levels {
		if l <= price {
			support, supportOK = l, true
			continue
		}
		resistance, resistanceOK = l, true
		break
	}
	return support, supportOK, resistance, resistanceOK
}
