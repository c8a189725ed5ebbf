// Package quant derives the 8×8 quantisation table used for every block
// of every plane in one compression run.
package quant

import (
	"fmt"
	"math"
	"strings"
)

// Table holds positive divisors indexed [u][v]. Every entry is >= 1.
type Table [8][8]int

// Base is the standard JPEG luminance matrix (ITU-T T.81, Annex K.1).
// It is used for chroma planes too; there is no separate chroma table.
var Base = Table{
	{16, 11, 10, 16, 24, 40, 51, 61},
	{12, 12, 14, 19, 26, 58, 60, 55},
	{14, 13, 16, 24, 40, 57, 69, 56},
	{14, 17, 22, 29, 51, 87, 80, 62},
	{18, 22, 37, 56, 68, 109, 103, 77},
	{24, 35, 55, 64, 81, 104, 113, 92},
	{49, 64, 78, 87, 103, 121, 120, 101},
	{72, 92, 95, 98, 112, 100, 103, 99},
}

// Strategy selects how a distortion factor maps to a table scale.
type Strategy int

const (
	// Linear scales Base by 1 + 20c, from 1x at c=0 to 21x at c=1.
	Linear Strategy = iota
	// Quality uses the libjpeg quality curve on q = 100(1-c), q clamped
	// to [1,100]: scale = (q<50 ? 5000/q : 200-2q) / 100.
	Quality
	// Unit ignores the factor and uses 1 everywhere.
	Unit
)

var strategyNames = map[Strategy]string{
	Linear:  "linear",
	Quality: "quality",
	Unit:    "unit",
}

func (s Strategy) String() string {
	if n, ok := strategyNames[s]; ok {
		return n
	}
	return fmt.Sprintf("Strategy(%d)", int(s))
}

// ParseStrategy is the inverse of String, case-insensitive.
func ParseStrategy(name string) (Strategy, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for s, n := range strategyNames {
		if n == name {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown quantisation strategy %q", name)
}

// Scale returns the multiplier applied to Base for factor c in [0,1].
func Scale(c float64, s Strategy) float64 {
	switch s {
	case Quality:
		q := math.Min(math.Max(100*(1-c), 1), 100)
		if q < 50 {
			return 5000 / q / 100
		}
		return (200 - 2*q) / 100
	case Unit:
		return 0
	}
	return 1 + 20*c
}

// Build returns the table for factor c: max(1, floor(base*scale)) per entry.
func Build(c float64, s Strategy) Table {
	scale := Scale(c, s)
	var t Table
	for u := range Base {
		for v := range Base[u] {
			t[u][v] = max(1, int(math.Floor(float64(Base[u][v])*scale)))
		}
	}
	return t
}

// String renders the table as eight right-aligned rows.
func (t Table) String() string {
	var sb strings.Builder
	for _, row := range t {
		for v, e := range row {
			if v > 0 {
				sb.WriteByte(' ')
			}
			fmt.Fprintf(&sb, "%5d", e)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
