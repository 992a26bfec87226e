package layer

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/closed-loop/citymap/internal/model"
)

// crimeFeatureJSON returns a square neighbourhood with every category's
// rates set to (prev, curr) and ASSAULT_RATE_2023 set to assault.
func crimeFeatureJSON(name string, prev, curr, assault float64) string {
	props := map[string]any{
		model.KeyAreaName:   name,
		model.KeyPopulation: 100,
	}
	for _, c := range model.Categories {
		props[c.RateKey(model.PreviousYear)] = prev
		props[c.RateKey(model.CurrentYear)] = curr
	}
	props[model.Assault.RateKey(model.CurrentYear)] = assault

	p, _ := json.Marshal(props)
	return fmt.Sprintf(`{"type":"Feature","geometry":{"type":"Polygon","coordinates":[[[-79.4,43.6],[-79.3,43.6],[-79.3,43.7],[-79.4,43.7],[-79.4,43.6]]]},"properties":%s}`, p)
}

func collectionJSON(features ...string) string {
	return `{"type":"FeatureCollection","features":[` + strings.Join(features, ",") + `]}`
}

const schoolsJSON = `{"type":"FeatureCollection","features":[
	{"type":"Feature","geometry":{"type":"Point","coordinates":[-79.38,43.66]},"properties":{"NAME":"Jarvis CI","SCHOOL_TYPE_DESC":"Secondary","schooltype":"SEC"}},
	{"type":"Feature","geometry":{"type":"Point","coordinates":[-79.41,43.67]},"properties":{"NAME":"Huron Street PS","SCHOOL_TYPE_DESC":"Elementary"}}
]}`

const parksJSON = `{"type":"FeatureCollection","features":[
	{"type":"Feature","geometry":{"type":"Point","coordinates":[-79.46,43.64]},"properties":{"ASSET_NAME":"High Park","AMENITIES":"Zoo, Pool"}}
]}`
