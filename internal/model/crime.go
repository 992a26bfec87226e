package model

import "fmt"

// Category is a crime category as it appears in the property key prefix.
type Category string

// Crime categories reported per neighbourhood.
const (
	Assault     Category = "ASSAULT"
	AutoTheft   Category = "AUTOTHEFT"
	BikeTheft   Category = "BIKETHEFT"
	BreakEnter  Category = "BREAKENTER"
	Homicide    Category = "HOMICIDE"
	Robbery     Category = "ROBBERY"
	Shooting    Category = "SHOOTING"
	TheftFromMV Category = "THEFTFROMMV"
	TheftOver   Category = "THEFTOVER"
)

// Categories lists every category in popup display order.
var Categories = []Category{
	Assault, AutoTheft, BikeTheft, BreakEnter, Homicide,
	Robbery, Shooting, TheftFromMV, TheftOver,
}

// Reporting years compared by the trend indicator.
const (
	PreviousYear = 2022
	CurrentYear  = 2023
)

// Property keys of neighbourhood features.
const (
	KeyAreaName   = "AREA_NAME"
	KeyPopulation = "POPULATION_2023"
)

// RateKey returns the property key holding the category's rate for year,
// e.g. ASSAULT_RATE_2023.
func (c Category) RateKey(year int) string {
	return fmt.Sprintf("%s_RATE_%d", c, year)
}

// RatePair holds one category's rate per 100k residents for both years.
type RatePair struct {
	Previous float64 `json:"previous"`
	Current  float64 `json:"current"`
}

// CrimeArea is a neighbourhood polygon's crime statistics.
type CrimeArea struct {
	Name       string                `json:"name"`
	Population float64               `json:"population"`
	Rates      map[Category]RatePair `json:"rates"`
}

// Rate returns the rates for c. Areas built by ParseCrimeArea always carry
// every category.
func (a CrimeArea) Rate(c Category) RatePair {
	return a.Rates[c]
}

// ParseCrimeArea builds a CrimeArea from feature properties. Every category
// must carry both years' rates.
func ParseCrimeArea(props Properties) (CrimeArea, error) {
	name, err := props.RequiredString(KeyAreaName)
	if err != nil {
		return CrimeArea{}, err
	}
	pop, err := props.Number(KeyPopulation)
	if err != nil {
		return CrimeArea{}, err
	}

	area := CrimeArea{
		Name:       name,
		Population: pop,
		Rates:      make(map[Category]RatePair, len(Categories)),
	}
	for _, c := range Categories {
		prev, err := props.Number(c.RateKey(PreviousYear))
		if err != nil {
			return CrimeArea{}, err
		}
		curr, err := props.Number(c.RateKey(CurrentYear))
		if err != nil {
			return CrimeArea{}, err
		}
		area.Rates[c] = RatePair{Previous: prev, Current: curr}
	}
	return area, nil
}
