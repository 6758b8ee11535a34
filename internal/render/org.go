package render

import (
	"bufio"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/username/class-schedule/internal/schedule"
)

// OrgTable renders an aligned pipe table readable by org-mode and markdown:
//
//	| N° | Mes   | Día | Día semana | Tema |
//	|----+-------+-----+------------+------|
//	|  1 | Marzo |   4 | Lunes      |      |
type OrgTable struct {
	Columns Columns
}

// number and day columns are right aligned
var rightAligned = []bool{true, false, true, false, false}

// Render writes the table
func (o *OrgTable) Render(w io.Writer, rows []schedule.Row) error {
	table := [][]string{o.Columns.headers()}
	for _, row := range rows {
		table = append(table, cells(row))
	}

	widths := make([]int, len(table[0]))
	for _, line := range table {
		for i, cell := range line {
			if width := runewidth.StringWidth(cell); width > widths[i] {
				widths[i] = width
			}
		}
	}

	bw := bufio.NewWriter(w)
	for i, line := range table {
		writeLine(bw, line, widths)
		if i == 0 {
			writeSeparator(bw, widths)
		}
	}

	return bw.Flush()
}

func writeLine(w *bufio.Writer, line []string, widths []int) {
	w.WriteString("|")
	for i, cell := range line {
		w.WriteString(" ")
		// Headers stay left aligned
		if rightAligned[i] && isNumber(cell) {
			w.WriteString(runewidth.FillLeft(cell, widths[i]))
		} else {
			w.WriteString(runewidth.FillRight(cell, widths[i]))
		}
		w.WriteString(" |")
	}
	w.WriteString("\n")
}

func writeSeparator(w *bufio.Writer, widths []int) {
	segments := make([]string, len(widths))
	for i, width := range widths {
		segments[i] = strings.Repeat("-", width+2)
	}
	w.WriteString("|" + strings.Join(segments, "+") + "|\n")
}

func isNumber(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
