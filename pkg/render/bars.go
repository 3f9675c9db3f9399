package render

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/cugur1978/Get-Gene-Copies/internal/util"
	"github.com/cugur1978/Get-Gene-Copies/pkg/model"
)

var (
	universalColor = color.RGBA{R: 0x2c, G: 0x7f, B: 0xb8, A: 0xff}
	partialColor   = color.RGBA{R: 0xfd, G: 0x8d, B: 0x3c, A: 0xff}
)

// meanErrors feeds the error bar plotter. Bars sit at x = index, so the
// error bars use the same coordinates.
type meanErrors []model.GeneStat

func (m meanErrors) Len() int                    { return len(m) }
func (m meanErrors) XY(i int) (float64, float64) { return float64(i), m[i].Mean }
func (m meanErrors) YError(i int) (float64, float64) {
	return m[i].StdDev, m[i].StdDev
}

// RenderTopGenes draws the ranked paralog chart: mean copies per gene with
// one standard deviation error bars. Genes present in every genome and
// genes missing from some genomes get their own color and legend entry.
func RenderTopGenes(path string, stats []model.GeneStat, width, height float64) error {
	if len(stats) == 0 {
		return ErrEmptyTable
	}

	names := make([]string, len(stats))
	universal := make(plotter.Values, len(stats))
	partial := make(plotter.Values, len(stats))
	for i, s := range stats {
		names[i] = s.Gene
		if s.Universal {
			universal[i] = s.Mean
		} else {
			partial[i] = s.Mean
		}
	}

	barWidth := vg.Length(width) * vg.Inch / vg.Length(2*len(stats))
	universalBars, err := plotter.NewBarChart(universal, barWidth)
	if err != nil {
		return fmt.Errorf("failed to build bar chart: %w", err)
	}
	partialBars, err := plotter.NewBarChart(partial, barWidth)
	if err != nil {
		return fmt.Errorf("failed to build bar chart: %w", err)
	}
	universalBars.Color = universalColor
	partialBars.Color = partialColor
	universalBars.LineStyle.Width = 0
	partialBars.LineStyle.Width = 0

	errBars, err := plotter.NewYErrorBars(meanErrors(stats))
	if err != nil {
		return fmt.Errorf("failed to build error bars: %w", err)
	}

	p := plot.New()
	p.Title.Text = "Most duplicated genes"
	p.Y.Label.Text = "mean gene copies"
	p.Add(universalBars, partialBars, errBars)
	p.Legend.Add("in all genomes", universalBars)
	p.Legend.Add("missing in some genomes", partialBars)
	p.Legend.Top = true
	p.NominalX(names...)
	p.X.Tick.Label.Rotation = math.Pi / 2
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Tick.Label.YAlign = draw.YCenter

	if err := util.EnsureParentDir(path); err != nil {
		return err
	}
	if err := p.Save(vg.Length(width)*vg.Inch, vg.Length(height)*vg.Inch, path); err != nil {
		return fmt.Errorf("failed to write bar chart: %w", err)
	}
	return nil
}
