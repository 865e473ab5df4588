package indicator

import (
	"testing"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pagedeck/internal/domain"
	"pagedeck/internal/ui/logic"
)

func testColors(t *testing.T) Colors {
	sel, err := colorful.Hex("#007aff")
	require.NoError(t, err)
	unsel, err := colorful.Hex("#8e8e93")
	require.NoError(t, err)
	return Colors{Selected: sel, Unselected: unsel}
}

func testGeometry() logic.Geometry {
	return logic.Geometry{
		Mode:            domain.LayoutFixedWidth,
		ItemCount:       4,
		ViewportWidth:   80,
		ItemWidth:       10,
		Margin:          2,
		MenuHeight:      2,
		IndicatorHeight: 1,
	}
}

func TestStartsUnderFirstLabel(t *testing.T) {
	s := NewService(testGeometry(), testColors(t), 0, 0)

	assert.False(t, s.Animating())
	assert.Equal(t, testGeometry().IndicatorRect(0), s.Rect())
	assert.Equal(t, "#007aff", s.LabelColor(0))
	assert.Equal(t, "#8e8e93", s.LabelColor(1))
}

func TestMoveConvergesWithinDuration(t *testing.T) {
	g := testGeometry()
	s := NewService(g, testColors(t), 150*time.Millisecond, 60)

	s.Move(2, 0)
	require.True(t, s.Animating())

	frames := 0
	for s.Step() {
		frames++
		require.Less(t, frames, 20, "transition did not finish")
	}
	assert.Equal(t, 8, frames, "9 frames at 60fps, the last one reports done")
	assert.Equal(t, g.IndicatorRect(2), s.Rect())
	assert.Equal(t, "#007aff", s.LabelColor(2))
	assert.Equal(t, "#8e8e93", s.LabelColor(0))
	assert.Equal(t, 2, s.Current())
}

func TestColoursBlendDuringTransition(t *testing.T) {
	s := NewService(testGeometry(), testColors(t), 150*time.Millisecond, 60)
	s.Move(1, 0)
	s.Step()

	mid0 := s.LabelColor(0)
	mid1 := s.LabelColor(1)
	assert.NotEqual(t, "#007aff", mid0)
	assert.NotEqual(t, "#8e8e93", mid0)
	assert.NotEqual(t, "#007aff", mid1)
	assert.Equal(t, "#8e8e93", s.LabelColor(3))

	r := s.Rect()
	assert.Greater(t, r.X, testGeometry().IndicatorRect(0).X)
	assert.Less(t, r.X, testGeometry().IndicatorRect(1).X)
}

func TestMoveIgnoresOutOfRange(t *testing.T) {
	s := NewService(testGeometry(), testColors(t), 0, 0)
	s.Move(4, 0)
	s.Move(-1, 0)
	assert.False(t, s.Animating())
	assert.Equal(t, 0, s.Current())
}

func TestMoveToRestingLabelIsNoop(t *testing.T) {
	s := NewService(testGeometry(), testColors(t), 0, 0)
	s.Move(0, 0)
	assert.False(t, s.Animating())
	assert.False(t, s.Step())
}

func TestJumpAfterGeometryChange(t *testing.T) {
	s := NewService(testGeometry(), testColors(t), 0, 0)
	g := testGeometry()
	g.Mode = domain.LayoutSegmented
	s.SetGeometry(g)
	s.Jump(3)

	assert.Equal(t, domain.Rect{X: 60, Y: 1, Width: 20, Height: 1}, s.Rect())
	assert.Equal(t, time.Second/60, s.FrameInterval())
}
