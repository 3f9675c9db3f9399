package db

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/cugur1978/Get-Gene-Copies/pkg/model"
)

// The artifact mirrors the workbook sheets, so results can be queried
// instead of eyeballed. A zero count is implied by a missing row.
const schemaSQL = `
CREATE TABLE IF NOT EXISTS gene_counts (
	gene_id   TEXT NOT NULL,
	genome_id TEXT NOT NULL,
	copies    INTEGER NOT NULL,
	PRIMARY KEY (gene_id, genome_id)
);
CREATE TABLE IF NOT EXISTS gene_products (
	gene_id  TEXT NOT NULL PRIMARY KEY,
	products TEXT NOT NULL
);
`

// ExportTable writes the aggregate into sqldb in a single transaction,
// replacing rows left over from an earlier export.
func ExportTable(sqldb *sql.DB, table *model.GeneTable) error {
	if _, err := sqldb.Exec(schemaSQL); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	tx, err := sqldb.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	countStmt, err := tx.Prepare(`INSERT OR REPLACE INTO gene_counts (gene_id, genome_id, copies) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer countStmt.Close()

	productStmt, err := tx.Prepare(`INSERT OR REPLACE INTO gene_products (gene_id, products) VALUES (?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer productStmt.Close()

	for _, gene := range table.Genes() {
		for _, genome := range table.Genomes {
			copies := table.Count(gene, genome)
			if copies == 0 {
				continue
			}
			if _, err := countStmt.Exec(gene, genome, copies); err != nil {
				return fmt.Errorf("failed to insert count for %s: %w", gene, err)
			}
		}
		if _, err := productStmt.Exec(gene, strings.Join(table.Descriptions(gene), "; ")); err != nil {
			return fmt.Errorf("failed to insert products for %s: %w", gene, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit export: %w", err)
	}
	return nil
}
