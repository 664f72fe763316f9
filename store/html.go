// Package store implements the HTML-like persisted file format (§6.3):
// each column is a <tr>, each cell a <td>, formulas marked with a
// leading '=' and label text (or an ERROR cell's last computed value)
// with a leading '<', with a
// harden/soften escape pass so stored text survives a round trip.
// Grounded on original_source/OddsAndEnds/SaveFile.cpp's SaveFile/
// LoadFile pair.
package store

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/decicalc/engine"
)

const (
	htmlHeader = "<html><head><style>td { border: 1px solid black; }</style></head><body><table>"
	htmlFooter = "</table></body></html>"

	// htmlHeaderWithLibs is the alternate header SaveFile.cpp writes when
	// the sheet carries a non-empty library set: the <table> tag is
	// deferred until after a run of <b>NAME</b><p>BODY</p> preamble lines.
	htmlHeaderWithLibs = "<html><head><style>td { border: 1px solid black; }</style></head><body>"
	tableMarker        = "<table>"
)

// harden escapes the four characters that would otherwise corrupt the
// HTML-ish grammar: '&', '<', '>', and embedded newlines (as a private
// "&sect;" sentinel, matching the original's entity table exactly).
func harden(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", "\n", "&sect;")
	return r.Replace(s)
}

// soften reverses harden, applied in the opposite order so "&amp;"
// doesn't get double-unescaped into something harden never produced.
func soften(s string) string {
	s = strings.ReplaceAll(s, "&sect;", "\n")
	s = strings.ReplaceAll(s, "&gt;", ">")
	s = strings.ReplaceAll(s, "&lt;", "<")
	s = strings.ReplaceAll(s, "&amp;", "&")
	return s
}

// Save writes sheet to w in the persisted HTML-like format (§6.3). The
// trim step (dropping trailing empty cells and columns) operates on a
// read-only scan of sheet, never mutating the live engine state (see
// DESIGN.md's Open Question decision on max_row).
func Save(w io.Writer, sheet *engine.Sheet) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintln(bw, htmlHeader); err != nil {
		return err
	}

	lastCol := trimmedColumnCount(sheet)
	for col := int64(0); col < lastCol; col++ {
		width := sheet.ColumnWidth(col)
		if width == engine.DefColumnWidth {
			fmt.Fprint(bw, "   <tr>")
		} else {
			fmt.Fprintf(bw, "   <tr width=\"%d\">", width)
		}

		lastRow := trimmedColumnLen(sheet, col)
		if lastRow == 0 {
			fmt.Fprint(bw, "<td />")
		}
		for row := int64(0); row < lastRow; row++ {
			writeCell(bw, sheet.GetCellAt(col, row))
		}
		fmt.Fprintln(bw, "</tr>")
	}

	if _, err := fmt.Fprintln(bw, htmlFooter); err != nil {
		return err
	}
	return bw.Flush()
}

func writeCell(bw *bufio.Writer, cell *engine.Cell) {
	switch {
	case cell == nil:
		fmt.Fprint(bw, "<td />")
	case cell.Type == engine.CellKindValue && cell.Value == nil:
		fmt.Fprintf(bw, "<td>=%s</td>", harden(cell.CurrentInput))
	case cell.Type == engine.CellKindValue:
		fmt.Fprintf(bw, "<td>=%s</td>", harden(cell.Value.String()))
	case cell.Type == engine.CellKindLabel:
		fmt.Fprintf(bw, "<td>&lt;%s</td>", harden(cell.CurrentInput))
	default:
		toPrint := ""
		if cell.HasPreviousValue() {
			toPrint = cell.PreviousValue.String()
		}
		fmt.Fprintf(bw, "<td>&lt;%s</td>", harden(toPrint))
	}
}

// trimmedColumnCount finds the last non-empty column without mutating
// sheet, matching SaveFile.cpp's trailing-empty-column trim.
func trimmedColumnCount(sheet *engine.Sheet) int64 {
	n := sheet.ColumnCount()
	for n > 0 && trimmedColumnLen(sheet, n-1) == 0 {
		n--
	}
	return n
}

// trimmedColumnLen finds the last non-nil cell in col without mutating
// sheet, matching SaveFile.cpp's per-column trailing-empty-cell trim.
func trimmedColumnLen(sheet *engine.Sheet, col int64) int64 {
	n := sheet.ColumnLen(col)
	for n > 0 && sheet.GetCellAt(col, n-1) == nil {
		n--
	}
	return n
}

// Load reads a persisted sheet from r, producing a fresh Sheet. On a
// format mismatch it returns a Sheet with a single LABEL cell at A1
// carrying a diagnostic message, matching LoadFile.cpp's
// fail-soft-into-the-grid behavior.
func Load(r io.Reader) (*engine.Sheet, error) {
	sheet := engine.NewSheet()
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	if !scanner.Scan() {
		return failSheet(sheet, "failed to read file: empty input"), nil
	}
	header := strings.TrimSuffix(scanner.Text(), "\r")
	switch header {
	case htmlHeader:
		// <table> already consumed as part of the header line.
	case htmlHeaderWithLibs:
		// A libraries preamble may follow: zero or more <b>NAME</b><p>BODY</p>
		// lines (not modeled here — this engine carries no library concept)
		// before the literal "<table>" marker line, matching
		// LoadFile.cpp's scan-forward-to-<table> behavior.
		found := false
		for scanner.Scan() {
			line := strings.TrimSuffix(scanner.Text(), "\r")
			if line == tableMarker {
				found = true
				break
			}
		}
		if !found {
			return failSheet(sheet, "failed to read file: missing <table> after libraries preamble"), nil
		}
	default:
		return failSheet(sheet, "failed to read file: unrecognized header"), nil
	}

	col := int64(0)
	for scanner.Scan() {
		line := strings.TrimSuffix(scanner.Text(), "\r")
		if line == htmlFooter {
			return sheet, nil
		}
		parseColumnLine(sheet, col, line)
		col++
	}
	if err := scanner.Err(); err != nil {
		return sheet, err
	}
	return sheet, nil
}

func failSheet(sheet *engine.Sheet, message string) *engine.Sheet {
	cell := sheet.InitCellAt(0, 0)
	cell.Type = engine.CellKindLabel
	cell.CurrentInput = message
	return sheet
}

func parseColumnLine(sheet *engine.Sheet, col int64, line string) {
	start := strings.Index(line, "<tr>")
	rest := line
	if start >= 0 {
		rest = line[start+len("<tr>"):]
	} else if start = strings.Index(line, "<tr "); start >= 0 {
		if w, ok := parseWidthAttr(line[start:]); ok {
			sheet.SetColumnWidth(col, w)
		}
		tagEnd := strings.Index(line[start:], ">")
		if tagEnd < 0 {
			return
		}
		rest = line[start+tagEnd+1:]
	} else {
		return
	}

	row := int64(0)
	for len(rest) > 0 {
		switch {
		case strings.HasPrefix(rest, "</tr>"):
			return
		case strings.HasPrefix(rest, "<td />"):
			rest = rest[len("<td />"):]
			row++
		case strings.HasPrefix(rest, "<td>"):
			rest = rest[len("<td>"):]
			end := strings.Index(rest, "</td>")
			if end < 0 {
				return
			}
			content := soften(rest[:end])
			rest = rest[end+len("</td>"):]
			setLoadedCell(sheet, col, row, content)
			row++
		default:
			next := strings.IndexByte(rest, '<')
			if next <= 0 {
				return
			}
			rest = rest[next:]
		}
	}
}

func parseWidthAttr(s string) (int, bool) {
	const marker = "width=\""
	i := strings.Index(s, marker)
	if i < 0 {
		return 0, false
	}
	s = s[i+len(marker):]
	end := strings.IndexByte(s, '"')
	if end < 0 {
		return 0, false
	}
	w, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return w, true
}

func setLoadedCell(sheet *engine.Sheet, col, row int64, content string) {
	if content == "" {
		return
	}
	cell := sheet.InitCellAt(col, row)
	switch content[0] {
	case '=':
		cell.Type = engine.CellKindValue
		cell.CurrentInput = content[1:]
	case '<':
		cell.Type = engine.CellKindLabel
		cell.CurrentInput = content[1:]
	default:
		cell.Type = engine.CellKindLabel
		cell.CurrentInput = content
	}
}
