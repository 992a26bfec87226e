package layer

import (
	"errors"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom/encoding/geojson"

	"github.com/closed-loop/citymap/internal/choropleth"
	"github.com/closed-loop/citymap/internal/model"
	"github.com/closed-loop/citymap/internal/popup"
)

// Style is the Leaflet path style of a crime polygon.
type Style struct {
	FillColor   choropleth.ColorToken `json:"fillColor"`
	Color       string                `json:"color"`
	Weight      int                   `json:"weight"`
	FillOpacity float64               `json:"fillOpacity"`
}

// Icon is the Leaflet marker icon of a school or park.
type Icon struct {
	URL         string `json:"iconUrl"`
	Size        [2]int `json:"iconSize"`
	Anchor      [2]int `json:"iconAnchor"`
	PopupAnchor [2]int `json:"popupAnchor"`
}

var (
	schoolIcon = Icon{
		URL:         "https://cdn.jsdelivr.net/npm/@tabler/icons@2.47.0/icons/school.svg",
		Size:        [2]int{20, 20},
		Anchor:      [2]int{16, 32},
		PopupAnchor: [2]int{0, -32},
	}
	parkIcon = Icon{
		URL:         "https://cdn.jsdelivr.net/npm/bootstrap-icons@1.7.2/icons/tree-fill.svg",
		Size:        [2]int{20, 20},
		Anchor:      [2]int{16, 32},
		PopupAnchor: [2]int{0, -32},
	}
)

// CrimeStyle styles a neighbourhood by its current assault rate.
func CrimeStyle(area model.CrimeArea) Style {
	return Style{
		FillColor:   choropleth.ColorFor(area.Rate(model.Assault).Current),
		Color:       "black",
		Weight:      1,
		FillOpacity: 0.44,
	}
}

// Rendered feature property keys read by the map page.
const (
	PropName  = "name"
	PropPopup = "popup"
	PropStyle = "style"
	PropIcon  = "icon"
)

var errNullFeature = eris.New("null feature")

// RenderCrime renders every neighbourhood of every collection into one layer.
func RenderCrime(collections []*geojson.FeatureCollection) ([]*geojson.Feature, error) {
	var out []*geojson.Feature
	for ci, fc := range collections {
		if fc == nil {
			continue
		}
		for fi, f := range fc.Features {
			if f == nil {
				return nil, formatError(Crime, ci, fi, errNullFeature)
			}
			area, err := model.ParseCrimeArea(f.Properties)
			if err != nil {
				return nil, formatError(Crime, ci, fi, err)
			}
			out = append(out, &geojson.Feature{
				ID:       f.ID,
				Geometry: f.Geometry,
				Properties: map[string]any{
					PropName:  area.Name,
					PropPopup: popup.CrimePopup(area),
					PropStyle: CrimeStyle(area),
				},
			})
		}
	}
	return out, nil
}

// RenderSchools renders school markers.
func RenderSchools(fc *geojson.FeatureCollection) ([]*geojson.Feature, error) {
	return renderMarkers(Schools, fc, schoolIcon, func(p model.Properties) (string, string, error) {
		s, err := model.ParseSchool(p)
		if err != nil {
			return "", "", err
		}
		return s.Name, popup.SchoolPopup(s), nil
	})
}

// RenderParks renders park markers.
func RenderParks(fc *geojson.FeatureCollection) ([]*geojson.Feature, error) {
	return renderMarkers(Parks, fc, parkIcon, func(p model.Properties) (string, string, error) {
		pk, err := model.ParsePark(p)
		if err != nil {
			return "", "", err
		}
		return pk.Name, popup.ParkPopup(pk), nil
	})
}

func renderMarkers(kind Kind, fc *geojson.FeatureCollection, icon Icon, build func(model.Properties) (string, string, error)) ([]*geojson.Feature, error) {
	if fc == nil {
		return nil, nil
	}
	out := make([]*geojson.Feature, 0, len(fc.Features))
	for i, f := range fc.Features {
		if f == nil {
			return nil, formatError(kind, 0, i, errNullFeature)
		}
		name, content, err := build(f.Properties)
		if err != nil {
			return nil, formatError(kind, 0, i, err)
		}
		out = append(out, &geojson.Feature{
			ID:       f.ID,
			Geometry: f.Geometry,
			Properties: map[string]any{
				PropName:  name,
				PropPopup: content,
				PropIcon:  icon,
			},
		})
	}
	return out, nil
}

func formatError(kind Kind, collection, feature int, err error) *FormatError {
	fe := &FormatError{Layer: kind, Collection: collection, Feature: feature, Err: err}
	var pe *model.PropertyError
	if errors.As(err, &pe) {
		fe.Key = pe.Key
	}
	return fe
}
