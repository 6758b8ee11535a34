package holiday

import (
	"fmt"
	"strings"
	"time"

	"github.com/rickar/cal/v2"
	"github.com/rickar/cal/v2/us"
)

// Builtin resolves holidays from a fixed public-holiday calendar
type Builtin struct {
	calendar *cal.BusinessCalendar
	observed bool
}

// NewBuiltin builds the calendar for a country code; only "us" is bundled.
// With observed set, a holiday moved off a weekend is reported on the observed day.
func NewBuiltin(country string, observed bool) (*Builtin, error) {
	calendar := cal.NewBusinessCalendar()

	switch strings.ToLower(country) {
	case "us":
		calendar.AddHoliday(
			us.NewYear,
			us.MlkDay,
			us.PresidentsDay,
			us.MemorialDay,
			us.Juneteenth,
			us.IndependenceDay,
			us.LaborDay,
			us.ColumbusDay,
			us.VeteransDay,
			us.ThanksgivingDay,
			us.ChristmasDay,
		)
	default:
		return nil, fmt.Errorf("no builtin holiday calendar for country %q", country)
	}

	return &Builtin{calendar: calendar, observed: observed}, nil
}

// Resolve never fails
func (b *Builtin) Resolve(date time.Time) (Lookup, error) {
	actual, observed, h := b.calendar.IsHoliday(date)

	if h == nil {
		return notHoliday(date), nil
	}
	if !actual && !(b.observed && observed) {
		return notHoliday(date), nil
	}

	return holidayLookup(date, CleanLabel(h.Name)), nil
}
