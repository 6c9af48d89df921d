package locale

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"
)

func TestFormatDate(t *testing.T) {
	d := time.Date(2026, time.October, 18, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, "domingo, 18 de outubro de 2026", FormatDate(d, "pt-BR"))
	assert.Equal(t, "Sunday, October 18, 2026", FormatDate(d, "en-US"))
	assert.Equal(t, "domingo, 18 de octubre de 2026", FormatDate(d, "es"))
	assert.Equal(t, "sábado, 07 de março de 2026", FormatDate(time.Date(2026, time.March, 7, 0, 0, 0, 0, time.UTC), "pt-BR"))
}

func TestMatchFallsBack(t *testing.T) {
	assert.Equal(t, language.BrazilianPortuguese, Match("not a tag!"))
	assert.Equal(t, language.English, Match("en-GB"))
}

func TestIn(t *testing.T) {
	d := time.Date(2026, time.October, 18, 1, 0, 0, 0, time.UTC)
	sp := In(d, "America/Sao_Paulo")
	assert.Equal(t, 17, sp.Day())
	assert.Equal(t, d, In(d, "Nowhere/Unknown"))
}
