package model

import (
	"sort"

	"gonum.org/v1/gonum/mat"
)

// CountTable maps base gene name -> genome file -> copy count. Only genes
// with more than one copy in at least one genome ever enter the table;
// absent cells mean zero copies.
type CountTable map[string]map[string]int

// ProductCatalog maps base gene name -> distinct product descriptions,
// unioned across all scanned genomes.
type ProductCatalog map[string]map[string]bool

// GeneTable is the whole aggregate of one run: the genome column order plus
// the count table and product catalog built from every annotation file.
type GeneTable struct {
	Genomes  []string // column order, one entry per scanned file
	Counts   CountTable
	Products ProductCatalog
}

func NewGeneTable() *GeneTable {
	return &GeneTable{
		Counts:   CountTable{},
		Products: ProductCatalog{},
	}
}

// Genes returns the sorted union of all genes in the table. Sorting keys
// here (rather than relying on scan order) keeps row order identical
// between runs no matter how the files were enumerated.
func (t *GeneTable) Genes() []string {
	seen := make(map[string]bool, len(t.Counts))
	for g := range t.Counts {
		seen[g] = true
	}
	for g := range t.Products {
		seen[g] = true
	}

	genes := make([]string, 0, len(seen))
	for g := range seen {
		genes = append(genes, g)
	}
	sort.Strings(genes)
	return genes
}

// Count returns the copy count for one cell, zero when absent.
func (t *GeneTable) Count(gene, genome string) int {
	return t.Counts[gene][genome]
}

// CountRow returns one gene's counts across all genomes in column order.
func (t *GeneTable) CountRow(gene string) []float64 {
	row := make([]float64, len(t.Genomes))
	for i, genome := range t.Genomes {
		row[i] = float64(t.Count(gene, genome))
	}
	return row
}

// Descriptions returns a gene's product set as a sorted slice, so joined
// output is byte-identical between runs.
func (t *GeneTable) Descriptions(gene string) []string {
	set := t.Products[gene]
	descs := make([]string, 0, len(set))
	for d := range set {
		descs = append(descs, d)
	}
	sort.Strings(descs)
	return descs
}

// ProfileMatrix builds the genomes x genes count matrix (rows follow
// Genomes, columns follow Genes, missing cells are zero). Returns nil when
// there is nothing to put in it.
func (t *GeneTable) ProfileMatrix() *mat.Dense {
	genes := t.Genes()
	if len(t.Genomes) == 0 || len(genes) == 0 {
		return nil
	}

	m := mat.NewDense(len(t.Genomes), len(genes), nil)
	for i, genome := range t.Genomes {
		for j, gene := range genes {
			m.Set(i, j, float64(t.Count(gene, genome)))
		}
	}
	return m
}
