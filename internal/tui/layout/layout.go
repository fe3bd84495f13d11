// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

// Package layout computes the package grid geometry and page math.
package layout

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
)

// Grid constants. ReservedRows must equal the rows rendered around the
// grid: one header line and the eight footer lines.
const (
	Columns      = 5
	HeaderRows   = 1
	FooterRows   = 8
	ReservedRows = HeaderRows + FooterRows

	// MarkerWidth is the per-cell overhead: cursor, space, "[x]", space,
	// upgradable marker, space, and the cell separator.
	MarkerWidth = 9

	FallbackRows = 24
	FallbackCols = 80
)

// Geometry is the terminal size in character cells.
type Geometry struct {
	Rows int
	Cols int
}

// Fallback returns the 24x80 geometry used when the real size is unknown.
func Fallback() Geometry {
	return Geometry{Rows: FallbackRows, Cols: FallbackCols}
}

// OrFallback returns g, or the fallback when g has no usable size.
func (g Geometry) OrFallback() Geometry {
	if g.Rows <= 0 || g.Cols <= 0 {
		return Fallback()
	}

	return g
}

// Probe queries the terminal behind fd. A failed query or a zero width
// yields the fallback geometry.
func Probe(fd int) Geometry {
	cols, rows, err := term.GetSize(fd)
	if err != nil || cols == 0 {
		return Fallback()
	}

	return Geometry{Rows: rows, Cols: cols}.OrFallback()
}

// Fits reports whether the header, one grid row and the footer fit.
func (g Geometry) Fits() bool {
	return g.OrFallback().Rows > ReservedRows
}

// PageSize returns the number of grid cells on one page, at least one row.
func (g Geometry) PageSize() int {
	return g.PageSizeWith(0)
}

// PageSizeWith returns the page size when the footer needs extra rows.
func (g Geometry) PageSizeWith(extra int) int {
	return max(1, g.OrFallback().Rows-ReservedRows-max(0, extra)) * Columns
}

// SpareRows returns how many rows the footer may grow by while one grid
// row stays visible.
func (g Geometry) SpareRows() int {
	return max(0, g.OrFallback().Rows-ReservedRows-1)
}

// ColumnWidth returns the width available to a name inside one cell.
func (g Geometry) ColumnWidth() int {
	return max(1, g.OrFallback().Cols/Columns-MarkerWidth)
}

// Page describes the slice of the displayed list shown on screen.
type Page struct {
	Index int // zero based
	Count int // total pages, at least 1
	Start int // first displayed index, inclusive
	End   int // last displayed index, exclusive
}

// PageFor derives the page containing cursor.
func PageFor(cursor, pageSize, n int) Page {
	if pageSize < 1 {
		pageSize = 1
	}

	index := 0
	if cursor > 0 {
		index = cursor / pageSize
	}

	start := min(index*pageSize, n)

	return Page{
		Index: index,
		Count: max(1, (n+pageSize-1)/pageSize),
		Start: start,
		End:   min(start+pageSize, n),
	}
}

// Cell renders one grid cell: "> [x] * name", with the name truncated or
// padded to width display columns.
func Cell(name string, width int, cursor, selected, upgradable bool) string {
	var b strings.Builder

	b.WriteString(mark(cursor, ">"))
	b.WriteByte(' ')

	if selected {
		b.WriteString("[x]")
	} else {
		b.WriteString("[ ]")
	}

	b.WriteByte(' ')
	b.WriteString(mark(upgradable, "*"))
	b.WriteByte(' ')
	b.WriteString(Fit(name, width))

	return b.String()
}

// Fit hard-truncates s to width display columns and pads it to exactly
// that width.
func Fit(s string, width int) string {
	if width < 1 {
		return ""
	}

	return runewidth.FillRight(runewidth.Truncate(s, width, ""), width)
}

// Wrap breaks s into lines of width display columns, each padded to
// exactly that width. Nothing is dropped unless a single character is
// wider than width.
func Wrap(s string, width int) []string {
	if width < 1 {
		return nil
	}

	var (
		lines []string
		line  strings.Builder
		used  int
	)

	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if used > 0 && used+w > width {
			lines = append(lines, Fit(line.String(), width))
			line.Reset()

			used = 0
		}

		line.WriteRune(r)
		used += w
	}

	return append(lines, Fit(line.String(), width))
}

// WrapRows returns the number of lines Wrap produces for s.
func WrapRows(s string, width int) int {
	if width < 1 || runewidth.StringWidth(s) <= width {
		return 1
	}

	return len(Wrap(s, width))
}

func mark(on bool, symbol string) string {
	if on {
		return symbol
	}

	return " "
}
