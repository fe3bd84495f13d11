// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package layout_test

import (
	"os"
	"testing"

	"github.com/janderssonse/appman/internal/tui/layout"
	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProbe_FailedQueryFallsBack(t *testing.T) {
	t.Parallel()

	reader, writer, err := os.Pipe()
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = reader.Close()
		_ = writer.Close()
	})

	geometry := layout.Probe(int(reader.Fd()))

	assert.Equal(t, layout.Geometry{Rows: 24, Cols: 80}, geometry)
	assert.Equal(t, 75, geometry.PageSize(), "(24-9) rows of 5 columns")
	assert.Equal(t, 7, geometry.ColumnWidth())
}

func TestGeometry_PageSize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		geometry layout.Geometry
		want     int
	}{
		{"typical terminal", layout.Geometry{Rows: 50, Cols: 200}, 41 * 5},
		{"unknown size", layout.Geometry{}, 75},
		{"zero columns", layout.Geometry{Rows: 40, Cols: 0}, 75},
		{"tiny terminal keeps one row", layout.Geometry{Rows: 5, Cols: 80}, 5},
		{"exactly reserved rows", layout.Geometry{Rows: 9, Cols: 80}, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, tt.geometry.PageSize())
		})
	}
}

func TestGeometry_ColumnWidth(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 31, layout.Geometry{Rows: 24, Cols: 200}.ColumnWidth())
	assert.Equal(t, 1, layout.Geometry{Rows: 24, Cols: 20}.ColumnWidth(), "never below one")
}

func TestGeometry_RowsFitTerminal(t *testing.T) {
	t.Parallel()

	for _, cols := range []int{50, 80, 81, 132, 200} {
		geometry := layout.Geometry{Rows: 24, Cols: cols}
		width := geometry.ColumnWidth()

		cell := layout.Cell("name", width, false, false, false)
		rowWidth := layout.Columns*runewidth.StringWidth(cell) + layout.Columns - 1

		assert.LessOrEqual(t, rowWidth, cols, "cols %d", cols)
	}
}

func TestPageFor_Invariant(t *testing.T) {
	t.Parallel()

	for _, pageSize := range []int{1, 5, 7, 75} {
		for n := 0; n < 160; n += 13 {
			for cursor := range max(n, 1) {
				page := layout.PageFor(cursor, pageSize, n)

				require.LessOrEqual(t, page.Index*pageSize, cursor)
				require.Less(t, cursor, (page.Index+1)*pageSize)
				require.GreaterOrEqual(t, page.Count, 1)
				require.LessOrEqual(t, page.End, n)
			}
		}
	}
}

func TestPageFor_Bounds(t *testing.T) {
	t.Parallel()

	page := layout.PageFor(80, 75, 100)

	assert.Equal(t, layout.Page{Index: 1, Count: 2, Start: 75, End: 100}, page)
	assert.Equal(t, layout.Page{Index: 0, Count: 1, Start: 0, End: 0}, layout.PageFor(0, 75, 0))
}

func TestCell(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		pkg       string
		width     int
		cursor    bool
		selected  bool
		updatable bool
		want      string
	}{
		{"plain", "vim", 5, false, false, false, "  [ ]   vim  "},
		{"all markers", "curl", 4, true, true, true, "> [x] * curl"},
		{"truncated", "libreoffice-core", 6, false, false, true, "  [ ] * libreo"},
		{"wide runes", "日本語パッケージ", 5, false, true, false, "  [x]   日本 "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := layout.Cell(tt.pkg, tt.width, tt.cursor, tt.selected, tt.updatable)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, layout.MarkerWidth-1+tt.width, runewidth.StringWidth(got))
		})
	}
}

func TestGeometry_Fits(t *testing.T) {
	t.Parallel()

	assert.False(t, layout.Geometry{Rows: 5, Cols: 80}.Fits())
	assert.False(t, layout.Geometry{Rows: layout.ReservedRows, Cols: 80}.Fits())
	assert.True(t, layout.Geometry{Rows: layout.ReservedRows + 1, Cols: 80}.Fits())
	assert.True(t, layout.Geometry{}.Fits(), "unknown size uses the fallback")
}

func TestGeometry_PageSizeWith(t *testing.T) {
	t.Parallel()

	geometry := layout.Geometry{Rows: 24, Cols: 80}

	assert.Equal(t, 70, geometry.PageSizeWith(1))
	assert.Equal(t, 75, geometry.PageSizeWith(-3), "negative extra is ignored")
	assert.Equal(t, 5, geometry.PageSizeWith(50), "one row always remains")
	assert.Equal(t, 14, geometry.SpareRows())
	assert.Equal(t, 0, layout.Geometry{Rows: 10, Cols: 80}.SpareRows())
}

func TestWrap(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		text  string
		width int
		want  []string
	}{
		{"fits", "vim", 5, []string{"vim  "}},
		{"exact", "abcde", 5, []string{"abcde"}},
		{"two lines", "abcdefg", 5, []string{"abcde", "fg   "}},
		{"wide runes", "日本語パ", 5, []string{"日本 ", "語パ "}},
		{"no width", "vim", 0, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := layout.Wrap(tt.text, tt.width)
			assert.Equal(t, tt.want, got)

			if tt.width > 0 {
				assert.Equal(t, len(got), layout.WrapRows(tt.text, tt.width))
			}
		})
	}
}
