package linkage

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Node is one agglomeration step. Leaves are numbered 0..n-1 and the cluster
// formed by merge i gets id n+i, the usual linkage-matrix convention.
type Node struct {
	Left   int
	Right  int
	Height float64
	Size   int
}

// Tree is the full agglomeration of n observations: n-1 merges in the order
// they happened.
type Tree struct {
	Leaves int
	Merges []Node
}

// Ward clusters the rows of m bottom-up under Ward's minimum-variance
// criterion: Euclidean metric, squared distances carried through the
// Lance-Williams update. Heights are reported on the distance scale, so
// they are monotone non-decreasing across merges.
func Ward(m *mat.Dense) *Tree {
	if m == nil {
		return &Tree{}
	}

	n, cols := m.Dims()
	t := &Tree{Leaves: n}
	if n < 2 {
		return t
	}

	total := 2*n - 1
	d2 := make([][]float64, total)
	for i := range d2 {
		d2[i] = make([]float64, total)
	}
	size := make([]int, total)
	active := make([]bool, total)

	for i := 0; i < n; i++ {
		size[i] = 1
		active[i] = true
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			s := 0.0
			for c := 0; c < cols; c++ {
				d := m.At(i, c) - m.At(j, c)
				s += d * d
			}
			d2[i][j], d2[j][i] = s, s
		}
	}

	for step := 0; step < n-1; step++ {
		limit := n + step
		bi, bj := -1, -1
		best := math.Inf(1)
		for i := 0; i < limit; i++ {
			if !active[i] {
				continue
			}
			for j := i + 1; j < limit; j++ {
				if !active[j] {
					continue
				}
				if d2[i][j] < best {
					bi, bj, best = i, j, d2[i][j]
				}
			}
		}

		id := n + step
		merged := size[bi] + size[bj]
		t.Merges = append(t.Merges, Node{
			Left:   bi,
			Right:  bj,
			Height: math.Sqrt(best),
			Size:   merged,
		})

		for k := 0; k < id; k++ {
			if !active[k] || k == bi || k == bj {
				continue
			}
			ni, nj, nk := float64(size[bi]), float64(size[bj]), float64(size[k])
			v := ((ni+nk)*d2[bi][k] + (nj+nk)*d2[bj][k] - nk*best) / (ni + nj + nk)
			d2[id][k], d2[k][id] = v, v
		}

		size[id] = merged
		active[bi], active[bj] = false, false
		active[id] = true
	}

	return t
}

// LeafOrder returns the dendrogram's left-to-right leaf permutation: the
// depth-first walk of the final merge, left subtree before right.
func (t *Tree) LeafOrder() []int {
	order := make([]int, 0, t.Leaves)
	if t.Leaves == 0 {
		return order
	}
	if len(t.Merges) == 0 {
		for i := 0; i < t.Leaves; i++ {
			order = append(order, i)
		}
		return order
	}

	var walk func(id int)
	walk = func(id int) {
		if id < t.Leaves {
			order = append(order, id)
			return
		}
		node := t.Merges[id-t.Leaves]
		walk(node.Left)
		walk(node.Right)
	}
	walk(t.Leaves + len(t.Merges) - 1)
	return order
}
