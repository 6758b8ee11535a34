package schedule

import (
	"time"

	"github.com/username/class-schedule/internal/holiday"
	"github.com/username/class-schedule/pkg/dateutil"
	"go.uber.org/zap"
)

// Request describes one schedule to generate
type Request struct {
	Weekdays    WeekdaySet
	Start       time.Time
	End         time.Time // exclusive
	RepeatMonth bool      // show the month on every row instead of only when it changes
}

// Row is one line of the schedule: a numbered session or an unnumbered holiday
type Row struct {
	Date    time.Time
	Number  int // 0 for holidays
	Month   string
	Day     int
	Weekday string
	Note    string
}

// IsHoliday reports whether the row is a skipped holiday
func (r Row) IsHoliday() bool {
	return r.Number == 0
}

// Schedule is the generator output
type Schedule struct {
	Rows []Row

	// Unresolved lists dates whose holiday lookup failed; they were counted as sessions
	Unresolved []time.Time
}

// Sessions returns the number of numbered rows
func (s *Schedule) Sessions() int {
	count := 0
	for _, row := range s.Rows {
		if !row.IsHoliday() {
			count++
		}
	}
	return count
}

// Holidays returns the number of holiday rows
func (s *Schedule) Holidays() int {
	return len(s.Rows) - s.Sessions()
}

// Generator walks a date range and builds schedule rows
type Generator struct {
	resolver   holiday.Resolver
	translator *Translator
	logger     *zap.Logger
}

// NewGenerator creates a new Generator. A nil resolver treats every date as a regular day.
func NewGenerator(resolver holiday.Resolver, translator *Translator, logger *zap.Logger) *Generator {
	return &Generator{
		resolver:   resolver,
		translator: translator,
		logger:     logger,
	}
}

// Generate builds the schedule for req. A range with Start >= End yields no rows.
func (g *Generator) Generate(req Request) *Schedule {
	result := &Schedule{
		Rows:       []Row{},
		Unresolved: []time.Time{},
	}

	var (
		counter   = 1
		lastMonth time.Time
		haveLast  bool
	)

	for _, date := range dateutil.Days(req.Start, req.End) {
		if !req.Weekdays.Contains(date.Weekday()) {
			continue
		}

		monthLabel := ""
		if req.RepeatMonth || !haveLast || !dateutil.IsSameMonth(date, lastMonth) {
			monthLabel = g.translator.Translate(date.Month().String())
		}
		lastMonth = date
		haveLast = true

		row := Row{
			Date:    date,
			Month:   monthLabel,
			Day:     date.Day(),
			Weekday: g.translator.Translate(date.Weekday().String()),
		}

		if lookup := g.lookup(date, result); lookup.IsHoliday() {
			row.Note = lookup.Label
			if row.Note == "" {
				row.Note = g.translator.Translate(holidayWord)
			}
		} else {
			row.Number = counter
			counter++
		}

		result.Rows = append(result.Rows, row)
	}

	g.logger.Info("Schedule generated",
		zap.String("from", dateutil.FormatDate(req.Start)),
		zap.String("to", dateutil.FormatDate(req.End)),
		zap.Strings("weekdays", req.Weekdays.Names()),
		zap.Int("rows", len(result.Rows)),
		zap.Int("sessions", result.Sessions()),
		zap.Int("unresolved", len(result.Unresolved)))

	return result
}

// lookup resolves one date; a failed lookup counts as a regular day
func (g *Generator) lookup(date time.Time, result *Schedule) holiday.Lookup {
	if g.resolver == nil {
		return holiday.Lookup{Date: date, Status: holiday.StatusNotHoliday}
	}

	lookup, err := g.resolver.Resolve(date)
	if err != nil {
		g.logger.Warn("Holiday lookup failed, treating date as a regular session",
			zap.String("date", dateutil.FormatDate(date)),
			zap.Error(err))
		result.Unresolved = append(result.Unresolved, date)
		return holiday.Lookup{Date: date, Status: holiday.StatusUnknown}
	}

	return lookup
}
