package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/username/class-schedule/internal/schedule"
)

const (
	FormatOrg    = "org"
	FormatPretty = "pretty"
	FormatCSV    = "csv"
	FormatJSON   = "json"
)

// Formats lists the supported output formats
var Formats = []string{FormatOrg, FormatPretty, FormatCSV, FormatJSON}

// Columns holds the header labels, in output order
type Columns struct {
	Number  string `mapstructure:"number"`
	Month   string `mapstructure:"month"`
	Day     string `mapstructure:"day"`
	Weekday string `mapstructure:"weekday"`
	Note    string `mapstructure:"note"`
}

// DefaultColumns are the Spanish header labels
var DefaultColumns = Columns{
	Number:  "N°",
	Month:   "Mes",
	Day:     "Día",
	Weekday: "Día semana",
	Note:    "Tema",
}

// Renderer writes schedule rows in one output format
type Renderer interface {
	Render(w io.Writer, rows []schedule.Row) error
}

// New returns the renderer for format. Empty header labels fall back to DefaultColumns.
func New(format string, columns Columns) (Renderer, error) {
	columns = columns.withDefaults()

	switch strings.ToLower(format) {
	case FormatOrg, "":
		return &OrgTable{Columns: columns}, nil
	case FormatPretty:
		return &PrettyTable{Columns: columns}, nil
	case FormatCSV:
		return &CSV{}, nil
	case FormatJSON:
		return &JSON{}, nil
	default:
		return nil, fmt.Errorf("unknown output format %q (want one of %s)", format, strings.Join(Formats, ", "))
	}
}

func (c Columns) withDefaults() Columns {
	if c.Number == "" {
		c.Number = DefaultColumns.Number
	}
	if c.Month == "" {
		c.Month = DefaultColumns.Month
	}
	if c.Day == "" {
		c.Day = DefaultColumns.Day
	}
	if c.Weekday == "" {
		c.Weekday = DefaultColumns.Weekday
	}
	if c.Note == "" {
		c.Note = DefaultColumns.Note
	}
	return c
}

func (c Columns) headers() []string {
	return []string{c.Number, c.Month, c.Day, c.Weekday, c.Note}
}

// cells flattens a row into column order; holidays get a blank number
func cells(row schedule.Row) []string {
	number := ""
	if !row.IsHoliday() {
		number = strconv.Itoa(row.Number)
	}

	return []string{number, row.Month, strconv.Itoa(row.Day), row.Weekday, row.Note}
}
