// Package choropleth maps crime rates to the discrete fill colors of the crime layer.
package choropleth

import "fmt"

// ColorToken is a CSS hex color used as a polygon fill.
type ColorToken string

// Bucket is one rate range of the scale. A rate belongs to the bucket with the
// highest Threshold it strictly exceeds.
type Bucket struct {
	Threshold float64    `json:"threshold" yaml:"threshold"`
	Color     ColorToken `json:"color" yaml:"color"`
}

// BaseColor is returned for rates that exceed no threshold, including NaN and
// negative values.
const BaseColor ColorToken = "#FFEDA0"

// buckets is ordered from the highest threshold down.
var buckets = []Bucket{
	{Threshold: 1500, Color: "#800026"},
	{Threshold: 1100, Color: "#BD0026"},
	{Threshold: 900, Color: "#E31A1C"},
	{Threshold: 700, Color: "#FC4E2A"},
	{Threshold: 500, Color: "#FD8D3C"},
	{Threshold: 300, Color: "#FEB24C"},
	{Threshold: 100, Color: "#FED976"},
}

// ColorFor returns the fill color for a rate per 100k residents.
func ColorFor(rate float64) ColorToken {
	for _, b := range buckets {
		if rate > b.Threshold {
			return b.Color
		}
	}
	return BaseColor
}

// Buckets returns all eight buckets in ascending order, starting with the base
// bucket at threshold 0.
func Buckets() []Bucket {
	out := make([]Bucket, 0, len(buckets)+1)
	out = append(out, Bucket{Threshold: 0, Color: BaseColor})
	for i := len(buckets) - 1; i >= 0; i-- {
		out = append(out, buckets[i])
	}
	return out
}

// LegendEntry is one row of the map legend.
type LegendEntry struct {
	Grade float64    `json:"grade" yaml:"grade"`
	Label string     `json:"label" yaml:"label"`
	Color ColorToken `json:"color" yaml:"color"`
}

// Legend returns one entry per bucket, lowest first. Each entry is colored by
// probing the scale just above its grade, so the legend can never disagree
// with ColorFor.
func Legend() []LegendEntry {
	bs := Buckets()
	entries := make([]LegendEntry, 0, len(bs))
	for i, b := range bs {
		label := fmt.Sprintf("%g+", b.Threshold)
		if i+1 < len(bs) {
			label = fmt.Sprintf("%g–%g", b.Threshold, bs[i+1].Threshold)
		}
		entries = append(entries, LegendEntry{
			Grade: b.Threshold,
			Label: label,
			Color: ColorFor(b.Threshold + 1),
		})
	}
	return entries
}
