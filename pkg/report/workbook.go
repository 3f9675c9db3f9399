package report

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/cugur1978/Get-Gene-Copies/internal/util"
	"github.com/cugur1978/Get-Gene-Copies/pkg/model"
)

const (
	// CountsSheet holds one row per paralogous gene and one column per genome.
	CountsSheet = "Paralog Gene Counts"
	// ProductsSheet holds the product annotations collected for each gene.
	ProductsSheet = "Gene Products"
)

// WriteWorkbook writes the two report sheets to an xlsx file. The caller
// treats any error as fatal for the run.
func WriteWorkbook(path string, table *model.GeneTable) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", CountsSheet); err != nil {
		return fmt.Errorf("failed to set up workbook: %w", err)
	}
	if _, err := f.NewSheet(ProductsSheet); err != nil {
		return fmt.Errorf("failed to set up workbook: %w", err)
	}

	genes := table.Genes()

	header := make([]interface{}, 0, len(table.Genomes)+1)
	header = append(header, "gene")
	for _, genome := range table.Genomes {
		header = append(header, genome)
	}
	if err := setRow(f, CountsSheet, 1, header); err != nil {
		return err
	}
	for i, gene := range genes {
		row := make([]interface{}, 0, len(table.Genomes)+1)
		row = append(row, gene)
		for _, genome := range table.Genomes {
			row = append(row, table.Count(gene, genome))
		}
		if err := setRow(f, CountsSheet, i+2, row); err != nil {
			return err
		}
	}

	if err := setRow(f, ProductsSheet, 1, []interface{}{"gene", "products"}); err != nil {
		return err
	}
	for i, gene := range genes {
		products := strings.Join(table.Descriptions(gene), "; ")
		if err := setRow(f, ProductsSheet, i+2, []interface{}{gene, products}); err != nil {
			return err
		}
	}

	if err := util.EnsureParentDir(path); err != nil {
		return err
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("failed to address row %d: %w", row, err)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("failed to fill sheet %q: %w", sheet, err)
	}
	return nil
}
