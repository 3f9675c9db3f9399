package model

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cugur1978/Get-Gene-Copies/logger"
	"github.com/cugur1978/Get-Gene-Copies/pkg/annotation"
	"go.uber.org/zap"
)

// AddFile folds one genome's scan results into the table. The genome gets a
// column even when the scan came back empty, so a broken file still shows up
// as all zeros instead of silently vanishing from the report.
func (t *GeneTable) AddFile(genome string, counts annotation.Counts, products annotation.Products) {
	t.Genomes = append(t.Genomes, genome)

	for gene, n := range counts {
		perGenome, ok := t.Counts[gene]
		if !ok {
			perGenome = make(map[string]int)
			t.Counts[gene] = perGenome
		}
		perGenome[genome] = n
	}

	for gene, descs := range products {
		set, ok := t.Products[gene]
		if !ok {
			set = make(map[string]bool)
			t.Products[gene] = set
		}
		for d := range descs {
			set[d] = true
		}
	}
}

// CollectDirectory scans every annotation file in dir (sorted filename
// order, so column order is stable) and folds the per-file results into one
// GeneTable. A file that cannot be read is logged and contributes an empty
// column; only an unreadable directory is an error.
func CollectDirectory(dir, ext, marker string) (*GeneTable, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read annotation directory: %w", err)
	}

	table := NewGeneTable()
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ext) {
			continue
		}

		counts, products, scanErr := annotation.ScanFile(filepath.Join(dir, entry.Name()), marker)
		if scanErr != nil {
			logger.Warn("Skipping unreadable annotation file",
				zap.String("file", entry.Name()),
				zap.Error(scanErr))
		}

		table.AddFile(entry.Name(), counts, products)
	}

	logger.Info("Aggregated annotation files",
		zap.String("dir", dir),
		zap.Int("genomes", len(table.Genomes)),
		zap.Int("paralog_genes", len(table.Counts)))

	return table, nil
}
