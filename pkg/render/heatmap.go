package render

import (
	"errors"
	"fmt"
	"math"
	"os"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgsvg"

	"github.com/cugur1978/Get-Gene-Copies/internal/util"
	"github.com/cugur1978/Get-Gene-Copies/pkg/linkage"
	"github.com/cugur1978/Get-Gene-Copies/pkg/model"
)

// ErrEmptyTable is returned when there is nothing to draw.
var ErrEmptyTable = errors.New("no paralog counts to plot")

// orderedGrid exposes the genome-by-gene count matrix to the heat map
// plotter, with rows permuted into clustering order.
type orderedGrid struct {
	m    *mat.Dense
	rows []int
}

func (g orderedGrid) Dims() (c, r int) {
	rows, cols := g.m.Dims()
	return cols, rows
}

func (g orderedGrid) Z(c, r int) float64 { return g.m.At(g.rows[r], c) }
func (g orderedGrid) X(c int) float64    { return float64(c) }
func (g orderedGrid) Y(r int) float64    { return float64(r) }

// RenderHeatmap clusters genomes by their paralog profiles and draws the
// count matrix as a heat map with a shared-scale color bar on the right.
func RenderHeatmap(path string, table *model.GeneTable, width, height float64) error {
	m := table.ProfileMatrix()
	if m == nil {
		return ErrEmptyTable
	}

	order := linkage.Ward(m).LeafOrder()
	names := make([]string, len(order))
	for i, idx := range order {
		names[i] = table.Genomes[idx]
	}

	// Fix the color range before sampling the palette. A single-valued
	// matrix still needs a non-empty range.
	lo, hi := mat.Min(m), mat.Max(m)
	if hi == lo {
		hi = lo + 1
	}
	cm := Reversed(moreland.Kindlmann())
	cm.SetMin(lo)
	cm.SetMax(hi)

	hm := plotter.NewHeatMap(orderedGrid{m: m, rows: order}, cm.Palette(255))

	p := plot.New()
	p.Title.Text = "Paralog gene copies per genome"
	p.Add(hm)
	p.NominalY(names...)
	p.NominalX(table.Genes()...)
	p.X.Tick.Label.Rotation = math.Pi / 2
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Tick.Label.YAlign = draw.YCenter

	// The color bar shares the heat map's range.
	cbP := plot.New()
	cbP.Add(&plotter.ColorBar{ColorMap: cm, Vertical: true})
	cbP.HideX()
	cbP.Y.Label.Text = "gene copies"

	w := vg.Length(width) * vg.Inch
	h := vg.Length(height) * vg.Inch
	canvas := vgsvg.New(w, h)
	dc := draw.New(canvas)
	p.Draw(draw.Crop(dc, 0, -w/6, 0, 0))
	cbP.Draw(draw.Crop(dc, w-w/8, 0, 0, 0))

	if err := util.EnsureParentDir(path); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create heatmap file: %w", err)
	}
	if _, err := canvas.WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to write heatmap: %w", err)
	}
	return f.Close()
}
