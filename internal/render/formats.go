package render

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/gocarina/gocsv"
	"github.com/username/class-schedule/internal/schedule"
	"github.com/username/class-schedule/pkg/dateutil"
)

// PrettyTable renders a boxed table for terminals
type PrettyTable struct {
	Columns Columns
}

// Render writes the table
func (p *PrettyTable) Render(w io.Writer, rows []schedule.Row) error {
	headerStyle := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)
	holidayStyle := cellStyle.Faint(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		Headers(p.Columns.headers()...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case row >= 0 && row < len(rows) && rows[row].IsHoliday():
				return holidayStyle
			default:
				return cellStyle
			}
		})

	for _, row := range rows {
		t.Row(cells(row)...)
	}

	_, err := fmt.Fprintln(w, t.Render())
	return err
}

type csvRow struct {
	Number  string `csv:"number"`
	Date    string `csv:"date"`
	Month   string `csv:"month"`
	Day     int    `csv:"day"`
	Weekday string `csv:"weekday"`
	Note    string `csv:"note"`
}

// CSV renders rows as CSV with a fixed machine-readable header
type CSV struct{}

// Render writes the CSV document
func (c *CSV) Render(w io.Writer, rows []schedule.Row) error {
	records := make([]*csvRow, 0, len(rows))
	for _, row := range rows {
		line := cells(row)
		records = append(records, &csvRow{
			Number:  line[0],
			Date:    dateutil.FormatDate(row.Date),
			Month:   row.Month,
			Day:     row.Day,
			Weekday: row.Weekday,
			Note:    row.Note,
		})
	}

	if err := gocsv.Marshal(records, w); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}
	return nil
}

type jsonRow struct {
	Number  int    `json:"number,omitempty"`
	Date    string `json:"date"`
	Month   string `json:"month"`
	Day     int    `json:"day"`
	Weekday string `json:"weekday"`
	Note    string `json:"note,omitempty"`
	Holiday bool   `json:"holiday"`
}

// JSON renders rows as an indented JSON array
type JSON struct{}

// Render writes the JSON document
func (j *JSON) Render(w io.Writer, rows []schedule.Row) error {
	records := make([]jsonRow, 0, len(rows))
	for _, row := range rows {
		records = append(records, jsonRow{
			Number:  row.Number,
			Date:    dateutil.FormatDate(row.Date),
			Month:   row.Month,
			Day:     row.Day,
			Weekday: row.Weekday,
			Note:    row.Note,
			Holiday: row.IsHoliday(),
		})
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(records); err != nil {
		return fmt.Errorf("failed to write json: %w", err)
	}
	return nil
}
