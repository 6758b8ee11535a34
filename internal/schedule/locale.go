package schedule

import (
	"fmt"
	"strings"
)

const (
	LocaleSpanish = "es"
	LocaleEnglish = "en"

	// holidayWord is the note used for holidays registered without a name
	holidayWord = "Holiday"
)

var spanishNames = map[string]string{
	"Monday":    "Lunes",
	"Tuesday":   "Martes",
	"Wednesday": "Miércoles",
	"Thursday":  "Jueves",
	"Friday":    "Viernes",
	"Saturday":  "Sábado",
	"Sunday":    "Domingo",

	"January":   "Enero",
	"February":  "Febrero",
	"March":     "Marzo",
	"April":     "Abril",
	"May":       "Mayo",
	"June":      "Junio",
	"July":      "Julio",
	"August":    "Agosto",
	"September": "Septiembre",
	"October":   "Octubre",
	"November":  "Noviembre",
	"December":  "Diciembre",

	holidayWord: "Feriado",
}

// Translator maps English weekday and month names to the target locale.
// Names missing from the table pass through unchanged.
type Translator struct {
	locale string
	names  map[string]string // lower-case English name -> target name
}

// NewTranslator builds the table for locale and applies overrides on top.
// Override keys are English names in any case.
func NewTranslator(locale string, overrides map[string]string) (*Translator, error) {
	t := &Translator{
		locale: strings.ToLower(locale),
		names:  make(map[string]string),
	}

	switch t.locale {
	case LocaleSpanish, "":
		t.locale = LocaleSpanish
		for en, es := range spanishNames {
			t.names[strings.ToLower(en)] = es
		}
	case LocaleEnglish:
	default:
		return nil, fmt.Errorf("unsupported locale %q (want %q or %q)", locale, LocaleSpanish, LocaleEnglish)
	}

	for en, target := range overrides {
		t.names[strings.ToLower(en)] = target
	}

	return t, nil
}

// Locale returns the target locale code
func (t *Translator) Locale() string {
	return t.locale
}

// Translate returns the target-locale name for an English weekday or month name
func (t *Translator) Translate(name string) string {
	if translated, ok := t.names[strings.ToLower(name)]; ok {
		return translated
	}
	return name
}

// english finds the English name for a target-locale name, case-insensitively
func (t *Translator) english(name string) (string, bool) {
	for en, target := range t.names {
		if strings.EqualFold(target, name) {
			return en, true
		}
	}
	return "", false
}
