// Package layer owns the map's overlay layers: it fetches the three datasets,
// renders their features into styled, popup-bearing GeoJSON, and keeps the
// result in containers owned by a Controller.
package layer

import (
	"sync"
	"time"

	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
)

// Kind identifies one overlay layer.
type Kind string

// Overlay layers, in layer-control order.
const (
	Schools Kind = "schools"
	Parks   Kind = "parks"
	Crime   Kind = "crime"
)

// Kinds lists every layer in layer-control order.
var Kinds = []Kind{Schools, Parks, Crime}

// Endpoint returns the data endpoint path serving the layer's GeoJSON.
func (k Kind) Endpoint() string {
	switch k {
	case Schools:
		return "/schooldata"
	case Parks:
		return "/parksdata"
	case Crime:
		return "/crimedata"
	}
	return ""
}

// Title is the label shown in the layer control.
func (k Kind) Title() string {
	switch k {
	case Schools:
		return "Schools"
	case Parks:
		return "Parks"
	case Crime:
		return "Crime"
	}
	return string(k)
}

// DefaultVisible reports whether the layer is switched on when the map opens.
func (k Kind) DefaultVisible() bool { return k == Crime }

// Layer is one overlay's rendered content.
type Layer struct {
	Kind     Kind
	Features []*geojson.Feature
	Bounds   *geom.Bounds
	Err      error
	LoadedAt time.Time
}

// Controller owns the three layer containers. Load tasks write through it and
// HTTP handlers read snapshots from it.
type Controller struct {
	mu     sync.RWMutex
	layers map[Kind]*Layer
	loadID string
}

// NewController returns a controller with every layer empty.
func NewController() *Controller {
	c := &Controller{layers: make(map[Kind]*Layer, len(Kinds))}
	for _, k := range Kinds {
		c.layers[k] = &Layer{Kind: k}
	}
	return c
}

// Set replaces a layer's features and clears its error.
func (c *Controller) Set(kind Kind, features []*geojson.Feature) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.layers[kind] = &Layer{
		Kind:     kind,
		Features: features,
		Bounds:   extent(features),
		LoadedAt: time.Now(),
	}
}

// Fail empties a layer and records why.
func (c *Controller) Fail(kind Kind, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.layers[kind] = &Layer{Kind: kind, Err: err, LoadedAt: time.Now()}
}

// Layer returns a copy of one layer.
func (c *Controller) Layer(kind Kind) Layer {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if l, ok := c.layers[kind]; ok {
		return *l
	}
	return Layer{Kind: kind}
}

func (c *Controller) setLoadID(id string) {
	c.mu.Lock()
	c.loadID = id
	c.mu.Unlock()
}

// View is the JSON document handed to the browser.
type View struct {
	LoadID string      `json:"load_id,omitempty"`
	Layers []LayerView `json:"layers"`
}

// LayerView is one layer as the browser renders it.
type LayerView struct {
	Name     Kind                       `json:"name"`
	Title    string                     `json:"title"`
	Visible  bool                       `json:"visible"`
	Error    string                     `json:"error,omitempty"`
	Features *geojson.FeatureCollection `json:"features"`
}

// View snapshots every layer in layer-control order.
func (c *Controller) View() View {
	c.mu.RLock()
	defer c.mu.RUnlock()

	v := View{LoadID: c.loadID, Layers: make([]LayerView, 0, len(Kinds))}
	for _, k := range Kinds {
		l := c.layers[k]
		fc := &geojson.FeatureCollection{Features: l.Features}
		if fc.Features == nil {
			fc.Features = []*geojson.Feature{}
		}
		if l.Bounds != nil && !l.Bounds.IsEmpty() {
			fc.BBox = l.Bounds
		}
		lv := LayerView{
			Name:     k,
			Title:    k.Title(),
			Visible:  k.DefaultVisible(),
			Features: fc,
		}
		if l.Err != nil {
			lv.Error = l.Err.Error()
		}
		v.Layers = append(v.Layers, lv)
	}
	return v
}

func extent(features []*geojson.Feature) *geom.Bounds {
	b := geom.NewBounds(geom.XY)
	for _, f := range features {
		if f.Geometry != nil {
			b.Extend(f.Geometry)
		}
	}
	return b
}
