package coordinator

import (
	"errors"
	"fmt"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-runewidth"

	"pagedeck/internal/domain"
)

// Measurer measures label text for the text-fitted layout
type Measurer interface {
	Measure(text string) float64
}

// MeasurerFunc adapts a function to Measurer
type MeasurerFunc func(text string) float64

func (f MeasurerFunc) Measure(text string) float64 { return f(text) }

// RuneWidthMeasurer measures labels in terminal cells
var RuneWidthMeasurer = MeasurerFunc(func(text string) float64 {
	return float64(runewidth.StringWidth(text))
})

// SeparatorConfig describes the dividers drawn between segmented labels
type SeparatorConfig struct {
	Enabled bool
	Width   float64
	Color   string
}

// Options is the construction-time configuration of the carousel
type Options struct {
	PageCount       int
	Titles          []string // empty titles fall back to "Menu N"
	Layout          domain.LayoutMode
	ItemWidth       float64
	Measurer        Measurer
	Margin          float64
	MenuHeight      float64
	IndicatorHeight float64

	SelectedColor   string
	UnselectedColor string
	IndicatorColor  string
	Separator       SeparatorConfig

	AnimationDuration time.Duration
	IndicatorFPS      int
	Bounce            bool
	Centered          bool

	ViewportWidth  float64
	ViewportHeight float64
	Orientation    domain.Orientation

	Debug bool
}

// DefaultOptions returns options for pageCount fixed-width labels
func DefaultOptions(pageCount int) Options {
	return Options{
		PageCount:         pageCount,
		Layout:            domain.LayoutFixedWidth,
		ItemWidth:         111,
		Margin:            15,
		MenuHeight:        34,
		IndicatorHeight:   3,
		SelectedColor:     "#ffffff",
		UnselectedColor:   "#666666",
		IndicatorColor:    "#ffffff",
		Separator:         SeparatorConfig{Width: 1, Color: "#808080"},
		AnimationDuration: 500 * time.Millisecond,
		Bounce:            true,
	}
}

// EffectiveLayout folds the centered flag into the layout mode
func (o Options) EffectiveLayout() domain.LayoutMode {
	if o.Centered && o.Layout == domain.LayoutFixedWidth {
		return domain.LayoutCentered
	}
	return o.Layout
}

// Validate rejects option combinations that have no safe runtime fallback
func (o Options) Validate() error {
	var errs []error

	if o.PageCount <= 0 {
		errs = append(errs, domain.ErrNoPages)
	}
	if len(o.Titles) > 0 && len(o.Titles) != o.PageCount {
		errs = append(errs, fmt.Errorf("%d titles for %d pages", len(o.Titles), o.PageCount))
	}

	switch o.EffectiveLayout() {
	case domain.LayoutTextFitted:
		if o.Measurer == nil {
			errs = append(errs, domain.ErrMissingMeasurer)
		}
	case domain.LayoutFixedWidth, domain.LayoutCentered:
		if o.ItemWidth <= 0 {
			errs = append(errs, fmt.Errorf("item width must be positive, got %v", o.ItemWidth))
		}
	case domain.LayoutSegmented:
	default:
		errs = append(errs, fmt.Errorf("%w: %v", domain.ErrUnknownLayout, o.Layout))
	}

	if o.Margin < 0 {
		errs = append(errs, fmt.Errorf("margin must not be negative, got %v", o.Margin))
	}
	if o.MenuHeight <= 0 {
		errs = append(errs, fmt.Errorf("menu height must be positive, got %v", o.MenuHeight))
	}
	if o.IndicatorHeight < 0 || o.IndicatorHeight > o.MenuHeight {
		errs = append(errs, fmt.Errorf("indicator height %v does not fit menu height %v", o.IndicatorHeight, o.MenuHeight))
	}
	if o.AnimationDuration <= 0 {
		errs = append(errs, fmt.Errorf("animation duration must be positive, got %v", o.AnimationDuration))
	}
	if o.ViewportWidth < 0 || o.ViewportHeight < 0 {
		errs = append(errs, fmt.Errorf("viewport %vx%v is negative", o.ViewportWidth, o.ViewportHeight))
	}

	for name, value := range map[string]string{
		"selected":   o.SelectedColor,
		"unselected": o.UnselectedColor,
		"indicator":  o.IndicatorColor,
		"separator":  o.Separator.Color,
	} {
		if value == "" {
			continue
		}
		if _, err := colorful.Hex(value); err != nil {
			errs = append(errs, fmt.Errorf("%s colour %q: %w", name, value, err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", domain.ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}

func parseColor(value, fallback string) colorful.Color {
	if c, err := colorful.Hex(value); err == nil {
		return c
	}
	c, _ := colorful.Hex(fallback)
	return c
}
