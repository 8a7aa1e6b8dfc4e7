package cube

import (
	"fmt"
)

// gatherStep reorders one axis of an operand tensor by advanced indexing.
// The axis is in the coordinate space of the operand after its transpose.
type gatherStep struct {
	axis    int
	indices []int
}

// sidePlan shapes one operand: a permutation of its own axes, gathers
// realigning paired axes, and positions (in output coordinates) where
// length-1 dimensions are inserted for axes unique to the other operand.
type sidePlan struct {
	perm    []int
	gathers []gatherStep
	expand  []int
}

// plan is the pure descriptor produced by align and consumed by the kernel.
// It depends only on the two axis lists and is deterministic.
type plan struct {
	out   Axes
	shape []int
	left  sidePlan
	right sidePlan
}

// align matches the axes of two operands by name, resolves each pair's
// labels, and computes the output axis list plus the shaping plan for both
// tensors. The output order is every left axis in left order (paired axes
// contributing their resolved version), followed by every axis unique to
// the right operand in right order.
func align(a, b Axes) (*plan, error) {
	pairOf := make([]int, len(a))
	pairedB := make([]bool, len(b))
	for i, ax := range a {
		j := b.Find(ax.Name())
		pairOf[i] = j
		if j >= 0 {
			pairedB[j] = true
		}
	}

	p := &plan{
		out: make(Axes, 0, len(a)+len(b)),
		left: sidePlan{
			perm: identityPerm(len(a)),
		},
	}
	rightPerm := make([]int, 0, len(b))

	for i, ax := range a {
		j := pairOf[i]
		if j < 0 {
			p.out = append(p.out, ax)
			p.right.expand = append(p.right.expand, len(p.out)-1)
			continue
		}
		resolved, leftIdx, rightIdx, err := resolvePair(ax, b[j])
		if err != nil {
			return nil, err
		}
		p.out = append(p.out, resolved)
		if leftIdx != nil {
			p.left.gathers = append(p.left.gathers, gatherStep{axis: i, indices: leftIdx})
		}
		if rightIdx != nil {
			p.right.gathers = append(p.right.gathers, gatherStep{axis: len(rightPerm), indices: rightIdx})
		}
		rightPerm = append(rightPerm, j)
	}
	for j, bx := range b {
		if !pairedB[j] {
			p.out = append(p.out, bx)
			p.left.expand = append(p.left.expand, len(p.out)-1)
			rightPerm = append(rightPerm, j)
		}
	}
	p.right.perm = rightPerm

	p.shape = make([]int, len(p.out))
	for i, ax := range p.out {
		p.shape[i] = ax.Len()
	}
	return p, nil
}

// resolvePair reconciles two axes sharing a name, per variant:
//
//	Index–Index:   same label multiset; left order wins, right is permuted.
//	Index–Series:  right labels must be a subset; left gathers by them.
//	Series–Index:  left labels must be a subset; right gathers by them.
//	Series–Series: identical label sequences; no realignment.
//
// A nil gather means identity.
func resolvePair(a, b *Axis) (resolved *Axis, leftIdx, rightIdx []int, err error) {
	switch {
	case a.IsIndex() && b.IsIndex():
		if a.Len() != b.Len() {
			return nil, nil, nil, incompatible(a, b, "label sets differ in size")
		}
		idx, perr := b.Positions(a.labels)
		if perr != nil {
			return nil, nil, nil, incompatible(a, b, "label sets differ")
		}
		return a, nil, dropIdentity(idx), nil
	case a.IsIndex() && !b.IsIndex():
		idx, perr := a.Positions(b.labels)
		if perr != nil {
			return nil, nil, nil, incompatible(a, b, "series labels are not a subset of the index")
		}
		return b, dropIdentity(idx), nil, nil
	case !a.IsIndex() && b.IsIndex():
		idx, perr := b.Positions(a.labels)
		if perr != nil {
			return nil, nil, nil, incompatible(a, b, "series labels are not a subset of the index")
		}
		return a, nil, dropIdentity(idx), nil
	default:
		if !a.labels.Equal(b.labels) {
			return nil, nil, nil, incompatible(a, b, "series labels differ")
		}
		return a, nil, nil, nil
	}
}

func incompatible(a, b *Axis, reason string) error {
	return fmt.Errorf("cube: axis %q (%s vs %s): %s: %w", a.Name(), a.Kind(), b.Kind(), reason, ErrIncompatibleAxes)
}

// dropIdentity returns nil for an identity index vector so the kernel can
// skip the gather.
func dropIdentity(idx []int) []int {
	for i, p := range idx {
		if i != p {
			return idx
		}
	}
	return nil
}

func identityPerm(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}
