// Package locale formats the widget date header.
// Locale tags are matched with x/text so "pt", "pt-PT" or "en-GB" fall back
// to the closest supported table.
package locale

import (
	"fmt"
	"time"
	_ "time/tzdata"

	"golang.org/x/text/language"
)

type table struct {
	weekdays [7]string
	months   [12]string
	layout   func(weekday string, day int, month string, year int) string
}

var supported = []language.Tag{
	language.BrazilianPortuguese,
	language.English,
	language.Spanish,
}

var tables = []table{
	{
		weekdays: [7]string{"domingo", "segunda-feira", "terça-feira", "quarta-feira", "quinta-feira", "sexta-feira", "sábado"},
		months:   [12]string{"janeiro", "fevereiro", "março", "abril", "maio", "junho", "julho", "agosto", "setembro", "outubro", "novembro", "dezembro"},
		layout: func(wd string, d int, m string, y int) string {
			return fmt.Sprintf("%s, %02d de %s de %d", wd, d, m, y)
		},
	},
	{
		weekdays: [7]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"},
		months:   [12]string{"January", "February", "March", "April", "May", "June", "July", "August", "September", "October", "November", "December"},
		layout: func(wd string, d int, m string, y int) string {
			return fmt.Sprintf("%s, %s %02d, %d", wd, m, d, y)
		},
	},
	{
		weekdays: [7]string{"domingo", "lunes", "martes", "miércoles", "jueves", "viernes", "sábado"},
		months:   [12]string{"enero", "febrero", "marzo", "abril", "mayo", "junio", "julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre"},
		layout: func(wd string, d int, m string, y int) string {
			return fmt.Sprintf("%s, %02d de %s de %d", wd, d, m, y)
		},
	},
}

var matcher = language.NewMatcher(supported)

// Match returns the supported tag closest to the given locale string.
func Match(locale string) language.Tag {
	return supported[index(locale)]
}

func index(locale string) int {
	tag, err := language.Parse(locale)
	if err != nil {
		return 0
	}
	_, idx, conf := matcher.Match(tag)
	if conf == language.No {
		return 0
	}
	return idx
}

// FormatDate renders t as a long date ("domingo, 18 de outubro de 2026").
func FormatDate(t time.Time, locale string) string {
	tb := tables[index(locale)]
	return tb.layout(tb.weekdays[t.Weekday()], t.Day(), tb.months[t.Month()-1], t.Year())
}

// In converts t to the named IANA zone. An empty or unknown zone keeps t as is.
func In(t time.Time, zone string) time.Time {
	if zone == "" {
		return t
	}
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return t
	}
	return t.In(loc)
}
