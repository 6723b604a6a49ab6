package question

import "strings"

// Band is a difficulty band. Values outside the three bands never leave this
// package: ParseBand and Step both clamp.
type Band string

const (
	BandEasy   Band = "easy"
	BandMedium Band = "medium"
	BandHard   Band = "hard"
)

var bandOrder = []Band{BandEasy, BandMedium, BandHard}

// ParseBand maps a string to a Band, defaulting to easy.
func ParseBand(s string) Band {
	switch Band(strings.ToLower(strings.TrimSpace(s))) {
	case BandMedium:
		return BandMedium
	case BandHard:
		return BandHard
	default:
		return BandEasy
	}
}

// Valid reports whether b is one of the three bands.
func (b Band) Valid() bool {
	return b == BandEasy || b == BandMedium || b == BandHard
}

func (b Band) index() int {
	for i, v := range bandOrder {
		if v == b {
			return i
		}
	}
	return 0
}

// Step moves delta bands up (positive) or down (negative), clamped to easy..hard.
func (b Band) Step(delta int) Band {
	i := b.index() + delta
	if i < 0 {
		i = 0
	}
	if i >= len(bandOrder) {
		i = len(bandOrder) - 1
	}
	return bandOrder[i]
}

// Distance returns the absolute number of steps between two bands.
func (b Band) Distance(other Band) int {
	d := b.index() - other.index()
	if d < 0 {
		return -d
	}
	return d
}
