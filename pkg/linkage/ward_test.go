package linkage

import (
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestWardPairsCloseRows(t *testing.T) {

	// Two tight pairs far apart. The pairs must merge first.
	m := mat.NewDense(4, 2, []float64{
		0, 0,
		0.1, 0,
		10, 10,
		10.1, 10,
	})

	tree := Ward(m)
	if tree.Leaves != 4 || len(tree.Merges) != 3 {
		t.Fatalf("Expect 3 merges over 4 leaves but got %d over %d", len(tree.Merges), tree.Leaves)
	}

	first := tree.Merges[0]
	if first.Left != 0 || first.Right != 1 {
		t.Errorf("Expect leaves 0 and 1 to merge first but got %d and %d", first.Left, first.Right)
	}
	second := tree.Merges[1]
	if second.Left != 2 || second.Right != 3 {
		t.Errorf("Expect leaves 2 and 3 to merge second but got %d and %d", second.Left, second.Right)
	}

	for i := 1; i < len(tree.Merges); i++ {
		if tree.Merges[i].Height < tree.Merges[i-1].Height {
			t.Errorf("Merge heights must not decrease: %v", tree.Merges)
		}
	}
	if root := tree.Merges[2]; root.Size != 4 {
		t.Errorf("Expect the final cluster to hold all 4 leaves but got %d", root.Size)
	}

	order := tree.LeafOrder()
	want := []int{0, 1, 2, 3}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("Expect leaf order %v but got %v", want, order)
		}
	}
}

func TestWardDegenerate(t *testing.T) {

	empty := Ward(nil)
	if empty.Leaves != 0 || len(empty.LeafOrder()) != 0 {
		t.Errorf("A nil matrix should give an empty tree, got %+v", empty)
	}

	single := Ward(mat.NewDense(1, 3, []float64{1, 2, 3}))
	if single.Leaves != 1 || len(single.Merges) != 0 {
		t.Errorf("One row cannot merge, got %+v", single)
	}
	if order := single.LeafOrder(); len(order) != 1 || order[0] != 0 {
		t.Errorf("Expect leaf order [0] but got %v", order)
	}
}

func TestLeafOrderIsPermutation(t *testing.T) {

	m := mat.NewDense(5, 3, []float64{
		2, 0, 1,
		0, 3, 0,
		5, 5, 5,
		2, 1, 1,
		0, 0, 4,
	})

	order := Ward(m).LeafOrder()
	if len(order) != 5 {
		t.Fatalf("Expect 5 leaves but got %v", order)
	}
	seen := make(map[int]bool)
	for _, leaf := range order {
		if leaf < 0 || leaf >= 5 || seen[leaf] {
			t.Fatalf("Leaf order is not a permutation: %v", order)
		}
		seen[leaf] = true
	}
}
