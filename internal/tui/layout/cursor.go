// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package layout

// Cursor movement over a displayed list of n entries laid out row-major in
// Columns columns. Every function returns the new position and whether it
// moved; a move that would leave [0, n) is refused. With n == 0 nothing
// moves.

// Down moves one row down.
func Down(cursor, n int) (int, bool) {
	if cursor+Columns < n {
		return cursor + Columns, true
	}

	return cursor, false
}

// Up moves one row up.
func Up(cursor int) (int, bool) {
	if cursor >= Columns {
		return cursor - Columns, true
	}

	return cursor, false
}

// Left moves one cell back.
func Left(cursor int) (int, bool) {
	if cursor > 0 {
		return cursor - 1, true
	}

	return cursor, false
}

// Right moves one cell forward.
func Right(cursor, n int) (int, bool) {
	if cursor < n-1 {
		return cursor + 1, true
	}

	return cursor, false
}

// NextPage moves to the first entry of the next page if it has entries.
func NextPage(cursor, pageSize, n int) (int, bool) {
	next := (cursor/pageSize + 1) * pageSize
	if next < n {
		return next, true
	}

	return cursor, false
}

// PrevPage moves to the first entry of the previous page.
func PrevPage(cursor, pageSize int) (int, bool) {
	page := cursor / pageSize
	if page > 0 {
		return (page - 1) * pageSize, true
	}

	return cursor, false
}

// Clamp brings cursor into [0, n), or 0 for an empty list.
func Clamp(cursor, n int) int {
	if n <= 0 || cursor < 0 {
		return 0
	}

	return min(cursor, n-1)
}
