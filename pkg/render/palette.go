package render

import (
	"image/color"

	"gonum.org/v1/plot/palette"
)

// reversedMap flips a color map end for end, so the highest counts pick up
// the dark end of a perceptually-uniform scale.
type reversedMap struct {
	palette.ColorMap
}

// Reversed wraps a color map with its scale inverted.
func Reversed(cm palette.ColorMap) palette.ColorMap {
	return &reversedMap{ColorMap: cm}
}

func (r *reversedMap) At(v float64) (color.Color, error) {
	return r.ColorMap.At(r.Max() + r.Min() - v)
}

func (r *reversedMap) Palette(n int) palette.Palette {
	colors := r.ColorMap.Palette(n).Colors()
	rev := make([]color.Color, len(colors))
	for i, c := range colors {
		rev[len(colors)-1-i] = c
	}
	return reversedPalette(rev)
}

type reversedPalette []color.Color

func (p reversedPalette) Colors() []color.Color { return p }
