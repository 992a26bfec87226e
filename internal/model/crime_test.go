package model

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func crimeProps(prev, curr float64) Properties {
	p := Properties{
		KeyAreaName:   "Annex",
		KeyPopulation: 31000.0,
	}
	for _, c := range Categories {
		p[c.RateKey(PreviousYear)] = prev
		p[c.RateKey(CurrentYear)] = curr
	}
	return p
}

func TestCategories(t *testing.T) {
	require.Len(t, Categories, 9)
	assert.Equal(t, Assault, Categories[0])
	assert.Equal(t, TheftOver, Categories[8])
}

func TestRateKey(t *testing.T) {
	assert.Equal(t, "ASSAULT_RATE_2023", Assault.RateKey(CurrentYear))
	assert.Equal(t, "THEFTFROMMV_RATE_2022", TheftFromMV.RateKey(PreviousYear))
}

func TestParseCrimeArea(t *testing.T) {
	area, err := ParseCrimeArea(crimeProps(10, 20))
	require.NoError(t, err)

	assert.Equal(t, "Annex", area.Name)
	assert.InDelta(t, 31000, area.Population, 0.001)
	require.Len(t, area.Rates, 9)
	for _, c := range Categories {
		assert.Equal(t, RatePair{Previous: 10, Current: 20}, area.Rate(c))
	}
}

func TestParseCrimeArea_NumericStrings(t *testing.T) {
	p := crimeProps(1, 2)
	p[KeyPopulation] = "12,500"
	p[Homicide.RateKey(CurrentYear)] = " 3.25 "

	area, err := ParseCrimeArea(p)
	require.NoError(t, err)
	assert.InDelta(t, 12500, area.Population, 0.001)
	assert.InDelta(t, 3.25, area.Rate(Homicide).Current, 0.0001)
}

func TestParseCrimeArea_JSONNumber(t *testing.T) {
	p := crimeProps(1, 2)
	p[Robbery.RateKey(PreviousYear)] = json.Number("44.5")

	area, err := ParseCrimeArea(p)
	require.NoError(t, err)
	assert.InDelta(t, 44.5, area.Rate(Robbery).Previous, 0.0001)
}

func TestParseCrimeArea_Errors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(Properties)
		wantKey string
	}{
		{"missing name", func(p Properties) { delete(p, KeyAreaName) }, KeyAreaName},
		{"blank name", func(p Properties) { p[KeyAreaName] = "  " }, KeyAreaName},
		{"null population", func(p Properties) { p[KeyPopulation] = nil }, KeyPopulation},
		{"missing rate", func(p Properties) { delete(p, "SHOOTING_RATE_2022") }, "SHOOTING_RATE_2022"},
		{"non-numeric rate", func(p Properties) { p["BIKETHEFT_RATE_2023"] = "n/a" }, "BIKETHEFT_RATE_2023"},
		{"wrong type", func(p Properties) { p["ASSAULT_RATE_2023"] = []any{1} }, "ASSAULT_RATE_2023"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := crimeProps(1, 2)
			tt.mutate(p)

			_, err := ParseCrimeArea(p)
			require.Error(t, err)

			var pe *PropertyError
			require.True(t, errors.As(err, &pe))
			assert.Equal(t, tt.wantKey, pe.Key)
		})
	}
}
