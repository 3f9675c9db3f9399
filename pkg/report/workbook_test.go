package report

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/cugur1978/Get-Gene-Copies/pkg/annotation"
	"github.com/cugur1978/Get-Gene-Copies/pkg/model"
)

func sampleTable() *model.GeneTable {
	table := model.NewGeneTable()
	table.AddFile("alpha.gbk",
		annotation.Counts{"dnaA": 2},
		annotation.Products{"dnaA": {"replication initiator": true}})
	table.AddFile("beta.gbk",
		annotation.Counts{"dnaA": 3, "ftsZ": 2},
		annotation.Products{"ftsZ": {"cell division protein": true}})
	return table
}

func TestWriteWorkbook(t *testing.T) {

	path := filepath.Join(t.TempDir(), "gene_counts.xlsx")
	if err := WriteWorkbook(path, sampleTable()); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("Failed to reopen workbook: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) != 2 || sheets[0] != CountsSheet || sheets[1] != ProductsSheet {
		t.Fatalf("Expect sheets [%s %s] but got %v", CountsSheet, ProductsSheet, sheets)
	}

	cell := func(sheet, ref string) string {
		v, err := f.GetCellValue(sheet, ref)
		if err != nil {
			t.Fatalf("Failed to read %s!%s: %v", sheet, ref, err)
		}
		return v
	}

	if cell(CountsSheet, "A1") != "gene" || cell(CountsSheet, "B1") != "alpha.gbk" || cell(CountsSheet, "C1") != "beta.gbk" {
		t.Errorf("Count header wrong")
	}
	if cell(CountsSheet, "A2") != "dnaA" || cell(CountsSheet, "B2") != "2" || cell(CountsSheet, "C2") != "3" {
		t.Errorf("dnaA row wrong: %s %s %s",
			cell(CountsSheet, "A2"), cell(CountsSheet, "B2"), cell(CountsSheet, "C2"))
	}
	// ftsZ has no copies in alpha, the cell still spells out the zero.
	if cell(CountsSheet, "A3") != "ftsZ" || cell(CountsSheet, "B3") != "0" || cell(CountsSheet, "C3") != "2" {
		t.Errorf("ftsZ row wrong: %s %s %s",
			cell(CountsSheet, "A3"), cell(CountsSheet, "B3"), cell(CountsSheet, "C3"))
	}

	if cell(ProductsSheet, "A1") != "gene" || cell(ProductsSheet, "B1") != "products" {
		t.Errorf("Product header wrong")
	}
	if cell(ProductsSheet, "A2") != "dnaA" || cell(ProductsSheet, "B2") != "replication initiator" {
		t.Errorf("dnaA products wrong: %s", cell(ProductsSheet, "B2"))
	}
	if cell(ProductsSheet, "A3") != "ftsZ" || cell(ProductsSheet, "B3") != "cell division protein" {
		t.Errorf("ftsZ products wrong: %s", cell(ProductsSheet, "B3"))
	}
}

func TestWriteWorkbookBadPath(t *testing.T) {

	blocker := filepath.Join(t.TempDir(), "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0644); err != nil {
		t.Fatalf("Failed to write blocker file: %v", err)
	}

	if err := WriteWorkbook(filepath.Join(blocker, "out.xlsx"), sampleTable()); err == nil {
		t.Errorf("Expect an error when the parent path is a file")
	}
}
