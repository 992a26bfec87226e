package layer

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKind(t *testing.T) {
	assert.Equal(t, "/schooldata", Schools.Endpoint())
	assert.Equal(t, "/parksdata", Parks.Endpoint())
	assert.Equal(t, "/crimedata", Crime.Endpoint())
	assert.Empty(t, Kind("roads").Endpoint())

	assert.Equal(t, "Crime", Crime.Title())
	assert.True(t, Crime.DefaultVisible())
	assert.False(t, Schools.DefaultVisible())
	assert.False(t, Parks.DefaultVisible())
}

func TestController_EmptyView(t *testing.T) {
	v := NewController().View()
	require.Len(t, v.Layers, 3)

	data, err := json.Marshal(v)
	require.NoError(t, err)

	var decoded struct {
		Layers []struct {
			Name     string `json:"name"`
			Visible  bool   `json:"visible"`
			Features struct {
				Type     string            `json:"type"`
				Features []json.RawMessage `json:"features"`
			} `json:"features"`
		} `json:"layers"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "schools", decoded.Layers[0].Name)
	assert.Equal(t, "FeatureCollection", decoded.Layers[2].Features.Type)
	assert.True(t, decoded.Layers[2].Visible)
	assert.Empty(t, decoded.Layers[2].Features.Features)
}

func TestController_ViewCarriesErrors(t *testing.T) {
	c := NewController()
	c.Fail(Schools, &FetchError{Layer: Schools, Endpoint: "/schooldata", Err: errors.New("timeout")})

	v := c.View()
	assert.Equal(t, "fetch schools layer from /schooldata: timeout", v.Layers[0].Error)
	assert.Empty(t, v.Layers[1].Error)
}

func TestController_SetComputesBounds(t *testing.T) {
	fc := decodeFC(t, schoolsJSON)
	c := NewController()
	c.Set(Schools, fc.Features)

	l := c.Layer(Schools)
	require.NotNil(t, l.Bounds)
	assert.InDelta(t, -79.41, l.Bounds.Min(0), 1e-9)
	assert.InDelta(t, -79.38, l.Bounds.Max(0), 1e-9)
	assert.False(t, l.LoadedAt.IsZero())

	data, err := json.Marshal(c.View())
	require.NoError(t, err)
	assert.Contains(t, string(data), `"bbox"`)
}

func TestErrorMessages(t *testing.T) {
	fetchErr := &FetchError{Layer: Crime, Endpoint: "/crimedata", StatusCode: 503, Err: errors.New("retries exhausted")}
	assert.Equal(t, "fetch crime layer from /crimedata: status 503: retries exhausted", fetchErr.Error())

	formatErr := &FormatError{Layer: Crime, Collection: -1, Feature: -1, Err: errors.New("bad json")}
	assert.Equal(t, "decode crime layer: bad json", formatErr.Error())

	assert.Equal(t, "internal", Classify(errors.New("x")))
	assert.Empty(t, Classify(nil))
}
