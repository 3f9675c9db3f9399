package model

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// GeneStat summarizes one gene's copy counts across every genome column.
type GeneStat struct {
	Gene      string
	Mean      float64
	StdDev    float64
	Universal bool // more than zero copies in every single genome
}

// RankParalogs computes per-gene mean and sample standard deviation of the
// copy counts, ranks by descending mean and cuts to at most n genes. The
// sort is stable, so ties at the cutoff keep their gene-name order.
func (t *GeneTable) RankParalogs(n int) []GeneStat {
	genes := t.Genes()
	stats := make([]GeneStat, 0, len(genes))

	for _, gene := range genes {
		row := t.CountRow(gene)
		if len(row) == 0 {
			continue
		}

		sd := 0.0
		if len(row) > 1 {
			sd = stat.StdDev(row, nil)
		}

		universal := true
		for _, c := range row {
			if c == 0 {
				universal = false
				break
			}
		}

		stats = append(stats, GeneStat{
			Gene:      gene,
			Mean:      stat.Mean(row, nil),
			StdDev:    sd,
			Universal: universal,
		})
	}

	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].Mean > stats[j].Mean
	})

	if len(stats) > n {
		stats = stats[:n]
	}
	return stats
}
