package views

// Layout places the menu, content and chrome rows on screen
type Layout struct {
	MenuTop       int
	LabelRows     int
	IndicatorRows int
	HairlineRows  int
	ContentTop    int
	ContentRows   int
	StatusRow     int
	HelpRows      int
}

// MenuRows is the total height of the menu bar
func (l Layout) MenuRows() int {
	return l.LabelRows + l.IndicatorRows + l.HairlineRows
}

// InMenu reports whether screen row y hits the menu bar
func (l Layout) InMenu(y int) bool {
	return y >= l.MenuTop && y < l.MenuTop+l.MenuRows()
}

// InContent reports whether screen row y hits the content track
func (l Layout) InContent(y int) bool {
	return y >= l.ContentTop && y < l.ContentTop+l.ContentRows
}

// ComputeLayout splits height into menu, content, status and help rows.
// The hairline always sits between the menu and the content.
func ComputeLayout(height, labelRows, indicatorRows int, hairline, atBottom bool, helpRows int) Layout {
	l := Layout{
		LabelRows:     labelRows,
		IndicatorRows: indicatorRows,
		HelpRows:      helpRows,
	}
	if hairline {
		l.HairlineRows = 1
	}

	l.ContentRows = height - l.MenuRows() - 1 - helpRows
	if l.ContentRows < 1 {
		l.ContentRows = 1
	}

	if atBottom {
		l.ContentTop = 0
		l.MenuTop = l.ContentRows
	} else {
		l.MenuTop = 0
		l.ContentTop = l.MenuRows()
	}
	l.StatusRow = l.ContentRows + l.MenuRows()
	return l
}
