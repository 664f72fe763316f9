package store

import (
	"strings"
	"testing"

	"github.com/decicalc/engine"
)

func TestHardenSoftenRoundTrip(t *testing.T) {
	cases := []string{
		"plain text",
		"a & b",
		"<tag>",
		"line one\nline two",
		"mix & <match>\nend",
	}
	for _, c := range cases {
		got := soften(harden(c))
		if got != c {
			t.Errorf("harden/soften round trip: got %q, want %q", got, c)
		}
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	sheet := engine.NewSheet()

	labelCell := sheet.InitCellAt(0, 0)
	labelCell.Type = engine.CellKindLabel
	labelCell.CurrentInput = "Revenue & Costs"

	formulaCell := sheet.InitCellAt(1, 0)
	formulaCell.Type = engine.CellKindValue
	formulaCell.CurrentInput = "A1&\"!\""

	sheet.SetColumnWidth(1, 20)

	var buf strings.Builder
	if err := Save(&buf, sheet); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(strings.NewReader(buf.String()))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	got := loaded.GetCellAt(0, 0)
	if got == nil || got.Type != engine.CellKindLabel || got.CurrentInput != "Revenue & Costs" {
		t.Fatalf("label cell round trip mismatch: %+v", got)
	}

	got = loaded.GetCellAt(1, 0)
	if got == nil || got.Type != engine.CellKindValue || got.CurrentInput != "A1&\"!\"" {
		t.Fatalf("formula cell round trip mismatch: %+v", got)
	}

	if w := loaded.ColumnWidth(1); w != 20 {
		t.Errorf("column width round trip: got %d, want 20", w)
	}
}

func TestLoadSkipsLibrariesPreamble(t *testing.T) {
	var doc strings.Builder
	doc.WriteString(htmlHeaderWithLibs + "\n")
	doc.WriteString("<b>mathlib</b><p>function double(x) x * 2 end</p>\n")
	doc.WriteString(tableMarker + "\n")
	doc.WriteString("   <tr><td>=5</td></tr>\n")
	doc.WriteString(htmlFooter + "\n")

	loaded, err := Load(strings.NewReader(doc.String()))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	got := loaded.GetCellAt(0, 0)
	if got == nil || got.Type != engine.CellKindValue || got.CurrentInput != "5" {
		t.Fatalf("cell after libraries preamble mismatch: %+v", got)
	}
}

func TestLoadRejectsBadHeader(t *testing.T) {
	loaded, err := Load(strings.NewReader("not an expected header\n"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	cell := loaded.GetCellAt(0, 0)
	if cell == nil || cell.Type != engine.CellKindLabel {
		t.Fatalf("expected a diagnostic label cell, got %+v", cell)
	}
}
