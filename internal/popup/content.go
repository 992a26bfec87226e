package popup

import (
	"fmt"
	"html"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/closed-loop/citymap/internal/model"
)

var printer = message.NewPrinter(language.English)

// CrimePopup renders the neighbourhood header followed by one line per crime
// category with its current rate and trend.
func CrimePopup(area model.CrimeArea) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<h3>%s</h3><p>Population %d: %s</p>",
		html.EscapeString(area.Name), model.CurrentYear, formatPopulation(area.Population))

	for _, c := range model.Categories {
		r := area.Rate(c)
		fmt.Fprintf(&b, "<p>%s Rate %d: %s %s</p>",
			c, model.CurrentYear, formatRate(r.Current), TrendHTML(r.Previous, r.Current))
	}
	return b.String()
}

// SchoolPopup renders the school name and type.
func SchoolPopup(s model.School) string {
	return fmt.Sprintf("Name: %s<br>Type: %s",
		html.EscapeString(s.Name), html.EscapeString(s.DisplayType()))
}

// ParkPopup renders the park name and amenities.
func ParkPopup(p model.Park) string {
	amenities := p.Amenities
	if amenities == "" {
		amenities = model.NotAvailable
	}
	return fmt.Sprintf("Park Name: %s<br>Amenities: %s",
		html.EscapeString(p.Name), html.EscapeString(amenities))
}

func formatPopulation(pop float64) string {
	return printer.Sprintf("%v", number.Decimal(pop, number.MaxFractionDigits(2)))
}

func formatRate(rate float64) string {
	return strconv.FormatFloat(rate, 'f', -1, 64)
}
