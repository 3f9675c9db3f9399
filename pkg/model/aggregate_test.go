package model

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap/zapcore"

	"github.com/cugur1978/Get-Gene-Copies/logger"
	"github.com/cugur1978/Get-Gene-Copies/pkg/annotation"
)

func TestMain(m *testing.M) {
	// Aggregation logs as it goes, so the tests need a live logger.
	if err := logger.InitLogger(zapcore.ErrorLevel); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func writeGenome(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write fixture %s: %v", name, err)
	}
}

func TestCollectDirectory(t *testing.T) {

	genomeA := `     CDS             1..300
                     /gene="dnaA_1"
                     /product="replication initiator"

     CDS             400..700
                     /gene="dnaA_2"
`
	genomeB := `     CDS             1..300
                     /gene="ftsZ_1"
     CDS             400..700
                     /gene="ftsZ_2"
     CDS             800..1100
                     /gene="dnaA"
`

	dir := t.TempDir()
	writeGenome(t, dir, "beta.gbk", genomeB)
	writeGenome(t, dir, "alpha.gbk", genomeA)
	writeGenome(t, dir, "notes.txt", "not an annotation file")
	if err := os.Mkdir(filepath.Join(dir, "archive.gbk"), 0755); err != nil {
		t.Fatalf("Failed to create subdirectory: %v", err)
	}

	table, err := CollectDirectory(dir, ".gbk", "CDS")
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}

	if len(table.Genomes) != 2 {
		t.Fatalf("Expect 2 genome columns but got %v", table.Genomes)
	}
	if table.Genomes[0] != "alpha.gbk" || table.Genomes[1] != "beta.gbk" {
		t.Errorf("Columns should follow sorted filename order, got %v", table.Genomes)
	}

	if got := table.Count("dnaA", "alpha.gbk"); got != 2 {
		t.Errorf("Expect 2 copies of dnaA in alpha.gbk but got %d", got)
	}
	// Single-copy dnaA in beta was dropped during the per-file scan.
	if got := table.Count("dnaA", "beta.gbk"); got != 0 {
		t.Errorf("Expect 0 copies of dnaA in beta.gbk but got %d", got)
	}
	if got := table.Count("ftsZ", "beta.gbk"); got != 2 {
		t.Errorf("Expect 2 copies of ftsZ in beta.gbk but got %d", got)
	}

	genes := table.Genes()
	if len(genes) != 2 || genes[0] != "dnaA" || genes[1] != "ftsZ" {
		t.Errorf("Expect sorted genes [dnaA ftsZ] but got %v", genes)
	}

	descs := table.Descriptions("dnaA")
	if len(descs) != 1 || descs[0] != "replication initiator" {
		t.Errorf("Expect dnaA product but got %v", descs)
	}
}

func TestCollectDirectoryMissing(t *testing.T) {

	_, err := CollectDirectory(filepath.Join(t.TempDir(), "no_such_dir"), ".gbk", "CDS")
	if err == nil {
		t.Errorf("Expect an error for a missing directory")
	}
}

func TestAddFileKeepsEmptyColumn(t *testing.T) {

	table := NewGeneTable()
	table.AddFile("broken.gbk", annotation.Counts{}, annotation.Products{})

	if len(table.Genomes) != 1 || table.Genomes[0] != "broken.gbk" {
		t.Errorf("An empty scan should still add its column, got %v", table.Genomes)
	}
	if len(table.Genes()) != 0 {
		t.Errorf("Expect no genes but got %v", table.Genes())
	}
}

func TestDescriptionsSorted(t *testing.T) {

	table := NewGeneTable()
	table.AddFile("one.gbk",
		annotation.Counts{"dnaA": 2},
		annotation.Products{"dnaA": {"zeta subunit": true, "alpha subunit": true}})

	descs := table.Descriptions("dnaA")
	if len(descs) != 2 || descs[0] != "alpha subunit" || descs[1] != "zeta subunit" {
		t.Errorf("Expect sorted descriptions but got %v", descs)
	}
}

func TestProfileMatrix(t *testing.T) {

	table := NewGeneTable()
	table.AddFile("x.gbk", annotation.Counts{"dnaA": 2}, nil)
	table.AddFile("y.gbk", annotation.Counts{"dnaA": 3, "ftsZ": 2}, nil)

	m := table.ProfileMatrix()
	r, c := m.Dims()
	if r != 2 || c != 2 {
		t.Fatalf("Expect a 2x2 matrix but got %dx%d", r, c)
	}
	if m.At(0, 0) != 2 || m.At(1, 0) != 3 {
		t.Errorf("dnaA column wrong: %v %v", m.At(0, 0), m.At(1, 0))
	}
	if m.At(0, 1) != 0 || m.At(1, 1) != 2 {
		t.Errorf("ftsZ column wrong: %v %v", m.At(0, 1), m.At(1, 1))
	}

	if empty := NewGeneTable().ProfileMatrix(); empty != nil {
		t.Errorf("Empty table should give a nil matrix")
	}
}
