package logic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pagedeck/internal/domain"
)

func TestFixedTapResolvesLabelCentres(t *testing.T) {
	const w, m = 111.0, 15.0
	g := Geometry{Mode: domain.LayoutFixedWidth, ItemCount: 8, ViewportWidth: 320, ItemWidth: w, Margin: m, MenuHeight: 34}

	for i := 0; i < g.ItemCount; i++ {
		x := m + w/2 + float64(i)*(w+m)
		got, ok := ResolveTap(g, x, 10)
		assert.True(t, ok, "index %d", i)
		assert.Equal(t, i, got)
	}
}

func TestFixedTapLeftOfFirstLabelIsNone(t *testing.T) {
	g := Geometry{Mode: domain.LayoutFixedWidth, ItemCount: 3, ViewportWidth: 320, ItemWidth: 111, Margin: 15, MenuHeight: 34}

	_, ok := ResolveTap(g, 7, 5)
	assert.False(t, ok)

	got, ok := ResolveTap(g, 7.5, 5)
	assert.True(t, ok)
	assert.Equal(t, 0, got)
}

func TestCenteredTapAccountsForStartingMargin(t *testing.T) {
	g := Geometry{Mode: domain.LayoutCentered, ItemCount: 2, ViewportWidth: 100, ItemWidth: 20, Margin: 4, MenuHeight: 2}

	_, ok := ResolveTap(g, 10, 0)
	assert.False(t, ok)

	got, ok := ResolveTap(g, g.ItemRect(1).X+1, 0)
	assert.True(t, ok)
	assert.Equal(t, 1, got)
}

func TestTapOutsideMenuOrBeyondLastLabel(t *testing.T) {
	g := Geometry{Mode: domain.LayoutFixedWidth, ItemCount: 2, ViewportWidth: 320, ItemWidth: 111, Margin: 15, MenuHeight: 34}

	_, ok := ResolveTap(g, 50, 34)
	assert.False(t, ok, "below menu")
	_, ok = ResolveTap(g, -1, 3)
	assert.False(t, ok, "negative x")
	_, ok = ResolveTap(g, 15+2*126+10, 3)
	assert.False(t, ok, "right of last label")
}

func TestSegmentedTap(t *testing.T) {
	g := Geometry{Mode: domain.LayoutSegmented, ItemCount: 4, ViewportWidth: 80, MenuHeight: 2}

	cases := map[float64]int{0: 0, 19.9: 0, 20: 1, 59: 2, 79: 3}
	for x, want := range cases {
		got, ok := ResolveTap(g, x, 1)
		assert.True(t, ok)
		assert.Equal(t, want, got, "x=%v", x)
	}

	_, ok := ResolveTap(g, 80, 1)
	assert.False(t, ok)
}

func TestTextFittedTap(t *testing.T) {
	g := Geometry{
		Mode:       domain.LayoutTextFitted,
		ItemCount:  3,
		ItemWidths: []float64{5, 10, 3},
		Margin:     2,
		MenuHeight: 2,
	}
	// label 0: [0, 8), label 1: [8, 20), label 2: [20, 25)
	tests := []struct {
		x    float64
		want int
		ok   bool
	}{
		{0, 0, true},
		{7.9, 0, true},
		{8, 1, true},
		{19.5, 1, true},
		{20, 2, true},
		{24, 2, true},
		{25, 0, false},
	}
	for _, tt := range tests {
		got, ok := ResolveTap(g, tt.x, 0)
		assert.Equal(t, tt.ok, ok, "x=%v", tt.x)
		if tt.ok {
			assert.Equal(t, tt.want, got, "x=%v", tt.x)
		}
	}
}

func TestTextFittedTapCoversEveryLabelCell(t *testing.T) {
	layouts := map[string][]float64{
		"equal":  {6, 6, 6, 6, 6, 6},
		"mixed":  {3, 12, 1, 7, 9, 4},
		"single": {5},
	}
	for name, widths := range layouts {
		for _, margin := range []float64{0, 1, 2, 3} {
			g := Geometry{
				Mode:       domain.LayoutTextFitted,
				ItemCount:  len(widths),
				ItemWidths: widths,
				Margin:     margin,
				MenuHeight: 1,
			}
			for i := 0; i < g.ItemCount; i++ {
				r := g.ItemRect(i)
				for x := r.X; x < r.X+r.Width; x++ {
					got, ok := ResolveTap(g, x, 0)
					require.True(t, ok, "%s m=%v: label %d x=%v", name, margin, i, x)
					assert.Equal(t, i, got, "%s m=%v: label %d rect [%v,%v) x=%v", name, margin, i, r.X, r.X+r.Width, x)
				}
			}
		}
	}
}

func TestTapWithNoItems(t *testing.T) {
	_, ok := ResolveTap(Geometry{Mode: domain.LayoutSegmented, ViewportWidth: 80, MenuHeight: 2}, 3, 0)
	assert.False(t, ok)
}
