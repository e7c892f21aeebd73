package pubgen

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/language"
)

var spanishMonths = [...]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

// FormatDate renders t as a long date in the language of locale. Languages
// without a table fall back to English.
func FormatDate(t time.Time, locale string) string {
	base, _ := language.Make(locale).Base()
	switch base.String() {
	case "es":
		return fmt.Sprintf("%d de %s de %d", t.Day(), spanishMonths[t.Month()-1], t.Year())
	default:
		return t.Format("January 2, 2006")
	}
}

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// parseDate reads a front matter date. Values without a zone are UTC.
func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
}
