package engine

import (
	"fmt"
	"strconv"
	"strings"
)

// MaxColumn and MaxRow are the grid dimensions from §6.4: ZZZ and
// 999,999,998 respectively.
const (
	MaxColumn int64 = 18277
	MaxRow    int64 = 999999998
)

// invalidIndex is the sentinel "invalid" column/row produced when a
// relative reference resolves negative or past the grid extents (§4.4).
const invalidIndex int64 = -1

// CellRef is a cell reference as described in §4.4: a pair of signed
// 64-bit (absolute-flag, offset) components, resolved against a frame.
type CellRef struct {
	ColAbsolute bool
	ColRef      int64
	RowAbsolute bool
	RowRef      int64
}

// Resolve computes the target (col, row) against the given frame
// (here_col, here_row). A negative or out-of-range result resolves to
// the invalid sentinel and must raise on access (§4.4).
func (r CellRef) Resolve(hereCol, hereRow int64) (col, row int64, ok bool) {
	if r.ColAbsolute {
		col = r.ColRef
	} else {
		col = hereCol + r.ColRef
	}
	if r.RowAbsolute {
		row = r.RowRef
	} else {
		row = hereRow + r.RowRef
	}
	if col < 0 || col > MaxColumn || row < 0 || row > MaxRow {
		return invalidIndex, invalidIndex, false
	}
	return col, row, true
}

func (r CellRef) String() string {
	colPart := "+"
	if r.ColAbsolute {
		colPart = "$"
	}
	rowPart := "+"
	if r.RowAbsolute {
		rowPart = "$"
	}
	return fmt.Sprintf("%s%d%s%d", colPart, r.ColRef, rowPart, r.RowRef)
}

func compareCellRef(a, b CellRef) int {
	switch {
	case a.ColAbsolute != b.ColAbsolute:
		return boolCmp(a.ColAbsolute, b.ColAbsolute)
	case a.ColRef != b.ColRef:
		return int64Cmp(a.ColRef, b.ColRef)
	case a.RowAbsolute != b.RowAbsolute:
		return boolCmp(a.RowAbsolute, b.RowAbsolute)
	default:
		return int64Cmp(a.RowRef, b.RowRef)
	}
}

func boolCmp(a, b bool) int {
	if a == b {
		return 0
	}
	if !a {
		return -1
	}
	return 1
}

func int64Cmp(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// CellRangeRef is a pair of corner CellRefs (§4.4).
type CellRangeRef struct {
	Start CellRef
	End   CellRef
}

func (r CellRangeRef) String() string {
	return r.Start.String() + ":" + r.End.String()
}

func compareCellRange(a, b CellRangeRef) int {
	if c := compareCellRef(a.Start, b.Start); c != 0 {
		return c
	}
	return compareCellRef(a.End, b.End)
}

// Expand resolves a CellRangeRef against a frame into the ordered
// sequence of concrete (col,row) pairs it covers, traversing
// column-major when colMajor is true and row-major otherwise, always
// ascending on both axes. The corners need not be given
// top-left/bottom-right; Expand normalizes them, so the order in which
// the corners are written does not affect the traversal order.
func (r CellRangeRef) Expand(hereCol, hereRow int64, colMajor bool) ([][2]int64, error) {
	sc, sr, ok1 := r.Start.Resolve(hereCol, hereRow)
	ec, er, ok2 := r.End.Resolve(hereCol, hereRow)
	if !ok1 || !ok2 {
		return nil, NewEvalError(ErrorCodeRef, "")
	}
	if sc > ec {
		sc, ec = ec, sc
	}
	if sr > er {
		sr, er = er, sr
	}
	var cells [][2]int64
	if colMajor {
		for col := sc; col <= ec; col++ {
			for row := sr; row <= er; row++ {
				cells = append(cells, [2]int64{col, row})
			}
		}
	} else {
		for row := sr; row <= er; row++ {
			for col := sc; col <= ec; col++ {
				cells = append(cells, [2]int64{col, row})
			}
		}
	}
	return cells, nil
}

// ColumnLetters encodes a 0-based column index into its A1-style letters
// (A..Z, AA..ZZ, AAA..ZZZ), per §4.4.
func ColumnLetters(col int64) (string, error) {
	if col < 0 || col > MaxColumn {
		return "", NewEvalError(ErrorCodeRef, "column out of range")
	}
	var letters []byte
	col++ // switch to 1-based for the bijective base-26 algorithm
	for col > 0 {
		col--
		letters = append([]byte{byte('A' + col%26)}, letters...)
		col /= 26
	}
	return string(letters), nil
}

// clearLowercaseBit uppercases an ASCII letter by clearing bit 0x20, the
// mask-based approach §4.4 calls for ("decoder tolerates mixed case via
// a clear-lowercase-bit operation").
func clearLowercaseBit(ch byte) byte {
	if ch >= 'a' && ch <= 'z' {
		return ch &^ 0x20
	}
	return ch
}

// ParseColumnLetters decodes A1-style column letters (case-insensitive)
// into a 0-based column index.
func ParseColumnLetters(s string) (int64, error) {
	if s == "" {
		return 0, NewEvalError(ErrorCodeRef, "empty column")
	}
	var col int64
	for i := 0; i < len(s); i++ {
		ch := clearLowercaseBit(s[i])
		if ch < 'A' || ch > 'Z' {
			return 0, NewEvalError(ErrorCodeRef, "invalid column letters: "+s)
		}
		col = col*26 + int64(ch-'A') + 1
	}
	col--
	if col < 0 || col > MaxColumn {
		return 0, NewEvalError(ErrorCodeRef, "column out of range")
	}
	return col, nil
}

// ParseA1 splits an A1-style address ("AB123") into 0-based (col, row).
// A1 strings use 1-based row numbering; the engine is 0-based internally
// (§4.4).
func ParseA1(s string) (col, row int64, err error) {
	i := 0
	for i < len(s) {
		ch := clearLowercaseBit(s[i])
		if ch < 'A' || ch > 'Z' {
			break
		}
		i++
	}
	if i == 0 || i == len(s) {
		return 0, 0, NewEvalError(ErrorCodeRef, "invalid cell reference: "+s)
	}
	col, err = ParseColumnLetters(s[:i])
	if err != nil {
		return 0, 0, err
	}
	rowNum, err := strconv.ParseInt(s[i:], 10, 64)
	if err != nil || rowNum < 1 {
		return 0, 0, NewEvalError(ErrorCodeRef, "invalid row number: "+s[i:])
	}
	row = rowNum - 1
	if row > MaxRow {
		return 0, 0, NewEvalError(ErrorCodeRef, "row out of range")
	}
	return col, row, nil
}

// FormatA1 renders a 0-based (col, row) pair back into an A1-style
// string.
func FormatA1(col, row int64) (string, error) {
	letters, err := ColumnLetters(col)
	if err != nil {
		return "", err
	}
	if row < 0 || row > MaxRow {
		return "", NewEvalError(ErrorCodeRef, "row out of range")
	}
	return strings.ToUpper(letters) + strconv.FormatInt(row+1, 10), nil
}
