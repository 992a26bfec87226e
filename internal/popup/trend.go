// Package popup builds the popup HTML bound to map features.
package popup

import (
	"fmt"

	"github.com/closed-loop/citymap/internal/choropleth"
)

// Direction is the glyph of a trend indicator.
type Direction string

// Trend glyphs. There is no neutral state: an unchanged rate is shown as a
// decrease.
const (
	Increase        Direction = "↑"
	DecreaseOrEqual Direction = "↓"
)

// Trend colors.
const (
	WarningColor choropleth.ColorToken = "red"
	SuccessColor choropleth.ColorToken = "green"
)

// TrendIndicator compares one metric across two reporting years.
type TrendIndicator struct {
	Direction Direction             `json:"direction"`
	Color     choropleth.ColorToken `json:"color"`
}

// Trend returns Increase in WarningColor when curr > prev, otherwise
// DecreaseOrEqual in SuccessColor.
func Trend(prev, curr float64) TrendIndicator {
	if curr > prev {
		return TrendIndicator{Direction: Increase, Color: WarningColor}
	}
	return TrendIndicator{Direction: DecreaseOrEqual, Color: SuccessColor}
}

// HTML renders the indicator as a colored span.
func (t TrendIndicator) HTML() string {
	return fmt.Sprintf(`<span style="color: %s;">%s</span>`, t.Color, t.Direction)
}

// TrendHTML is shorthand for Trend(prev, curr).HTML().
func TrendHTML(prev, curr float64) string {
	return Trend(prev, curr).HTML()
}
