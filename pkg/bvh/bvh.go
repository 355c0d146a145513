// Package bvh implements the bounding-volume hierarchy acceleration
// structure: a surface-area-heuristic build and a generic traversal
// that the scene package drives with its own closest-hit reducer.
package bvh

import (
	"math"
	"sort"

	"github.com/df07/go-path-tracer/pkg/core"
)

// PrimitiveRef is an opaque index into whatever primitive list the
// caller is building a BVH over; the BVH itself never looks at the
// referenced primitive, only at the AABB supplied alongside it at
// build time.
type PrimitiveRef int

// Entry pairs a primitive reference with its precomputed world-space
// AABB, the BVH build's only input.
type Entry struct {
	Ref  PrimitiveRef
	AABB core.AABB
}

// node is a BVH node stored in a flat, index-child array. Leaf nodes
// carry a single primitive; Binary nodes carry indices of their two
// children within the same array.
type node struct {
	aabb      core.AABB
	primitive PrimitiveRef
	isLeaf    bool
	left      int
	right     int
}

// BVH is a bounding-volume hierarchy over a fixed set of primitives,
// built once and never mutated during a render.
type BVH struct {
	nodes []node
}

// Empty reports whether the BVH has no primitives.
func (b *BVH) Empty() bool {
	return len(b.nodes) == 0
}

// Bounds returns the world-space bounding box of the whole BVH (the
// root node's AABB), the union of every leaf's AABB per the data
// model's invariant.
func (b *BVH) Bounds() core.AABB {
	if b.Empty() {
		return core.AABB{}
	}
	return b.nodes[0].aabb
}

// Build constructs a BVH from entries using bucketed surface-area-
// heuristic cost estimation. entries is consumed (sorted
// and partitioned in place); callers that need the original order
// preserved should pass a copy.
func Build(entries []Entry) *BVH {
	if len(entries) == 0 {
		return &BVH{}
	}

	var nodes []node
	buildRec(entries, &nodes)
	reverse(nodes)

	return &BVH{nodes: nodes}
}

// buildRec builds depth-first, post-order: a node's children are
// always appended to the array before the node itself, so after a
// final reversal the root lands at index 0 and every child index
// (originally "how many nodes were built before me") becomes
// len-old_index-1, a valid forward-looking index into the reversed
// array.
func buildRec(entries []Entry, nodes *[]node) int {
	if len(entries) == 0 {
		panic("bvh: buildRec called with no entries")
	}

	if len(entries) == 1 {
		i := len(*nodes)
		*nodes = append(*nodes, node{
			aabb:      entries[0].AABB,
			primitive: entries[0].Ref,
			isLeaf:    true,
		})
		return i
	}

	total := unionAABB(entries)
	axis, dividingLine, ok := chooseSplit(entries, total)
	if !ok {
		// Degenerate input (all centroids coincident): fall back to a
		// median split on whatever axis is longest so the partition
		// invariant (neither half empty) still holds.
		axis = total.LongestAxis()
		sortByCentroid(entries, axis)
		mid := len(entries) / 2
		return buildBinary(entries[:mid], entries[mid:], nodes)
	}

	sortByCentroid(entries, axis)
	splitAt := sort.Search(len(entries), func(i int) bool {
		return centroidComponent(entries[i].AABB, axis) >= dividingLine
	})
	// The bucket cost evaluation guarantees a non-trivial split, but
	// guard the boundary explicitly so degenerate bucket geometry never
	// produces an empty partition.
	if splitAt == 0 {
		splitAt = 1
	}
	if splitAt == len(entries) {
		splitAt = len(entries) - 1
	}

	return buildBinary(entries[:splitAt], entries[splitAt:], nodes)
}

func buildBinary(left, right []Entry, nodes *[]node) int {
	l := buildRec(left, nodes)
	r := buildRec(right, nodes)

	aabb := core.Merged((*nodes)[l].aabb, (*nodes)[r].aabb)
	i := len(*nodes)
	*nodes = append(*nodes, node{aabb: aabb, left: l, right: r})
	return i
}

func unionAABB(entries []Entry) core.AABB {
	total := entries[0].AABB
	for _, e := range entries[1:] {
		total = total.Union(e.AABB)
	}
	return total
}

func centroidComponent(b core.AABB, axis int) core.F {
	c := b.Centroid()
	switch axis {
	case 0:
		return c.X
	case 1:
		return c.Y
	default:
		return c.Z
	}
}

func sortByCentroid(entries []Entry, axis int) {
	sort.Slice(entries, func(i, j int) bool {
		return centroidComponent(entries[i].AABB, axis) < centroidComponent(entries[j].AABB, axis)
	})
}

// bucket accumulates the primitives whose centroid falls within one
// equal-width slice of the chosen axis's centroid range.
type bucket struct {
	count int
	aabb  core.AABB
	has   bool
}

func (bk *bucket) add(b core.AABB) {
	if !bk.has {
		bk.aabb = b
		bk.has = true
	} else {
		bk.aabb = bk.aabb.Union(b)
	}
	bk.count++
}

// chooseSplit picks the axis with the largest centroid extent (ties
// broken X>Y>Z) and, within that axis, the bucket boundary minimizing
// the SAH cost estimate. ok is false when every centroid on the chosen
// axis coincides (no boundary can separate anything).
func chooseSplit(entries []Entry, total core.AABB) (axis int, dividingLine core.F, ok bool) {
	axis = longestCentroidAxis(entries)

	lo, hi := centroidRange(entries, axis)
	if hi <= lo {
		return 0, 0, false
	}

	numBuckets := max(1, 2*ceilLog2(len(entries)))
	buckets := make([]bucket, numBuckets)
	bucketEdge := func(i int) core.F {
		return lo + (hi-lo)*core.F(i)/core.F(numBuckets)
	}

	for _, e := range entries {
		c := centroidComponent(e.AABB, axis)
		bi := int((c - lo) / (hi - lo) * core.F(numBuckets))
		if bi >= numBuckets {
			bi = numBuckets - 1
		}
		if bi < 0 {
			bi = 0
		}
		buckets[bi].add(e.AABB)
	}

	totalSA := total.SurfaceArea()
	if totalSA <= 0 {
		return 0, 0, false
	}

	bestCost := math.Inf(1)
	bestSplit := -1

	for i := 1; i < numBuckets; i++ {
		var left, right bucket
		leftEmpty, rightEmpty := true, true
		for b := 0; b < i; b++ {
			if buckets[b].has {
				if leftEmpty {
					left = buckets[b]
					leftEmpty = false
				} else {
					left.count += buckets[b].count
					left.aabb = left.aabb.Union(buckets[b].aabb)
				}
			}
		}
		for b := i; b < numBuckets; b++ {
			if buckets[b].has {
				if rightEmpty {
					right = buckets[b]
					rightEmpty = false
				} else {
					right.count += buckets[b].count
					right.aabb = right.aabb.Union(buckets[b].aabb)
				}
			}
		}
		if leftEmpty || rightEmpty {
			continue
		}

		cost := 0.125 + (core.F(left.count)*left.aabb.SurfaceArea()+core.F(right.count)*right.aabb.SurfaceArea())/totalSA
		if cost < bestCost {
			bestCost = cost
			bestSplit = i
		}
	}

	if bestSplit < 0 {
		return 0, 0, false
	}

	return axis, bucketEdge(bestSplit), true
}

func longestCentroidAxis(entries []Entry) int {
	min0, max0 := centroidRange(entries, 0)
	min1, max1 := centroidRange(entries, 1)
	min2, max2 := centroidRange(entries, 2)

	ext0, ext1, ext2 := max0-min0, max1-min1, max2-min2
	if ext0 >= ext1 && ext0 >= ext2 {
		return 0
	}
	if ext1 >= ext2 {
		return 1
	}
	return 2
}

func centroidRange(entries []Entry, axis int) (lo, hi core.F) {
	lo = centroidComponent(entries[0].AABB, axis)
	hi = lo
	for _, e := range entries[1:] {
		c := centroidComponent(e.AABB, axis)
		lo = math.Min(lo, c)
		hi = math.Max(hi, c)
	}
	return lo, hi
}

func ceilLog2(n int) int {
	if n <= 1 {
		return 0
	}
	return int(math.Ceil(math.Log2(core.F(n))))
}

// reverse reverses the node array in place and rewrites every Binary
// node's child indices from "count built before me" to the
// corresponding index in the reversed array, so the root ends up at
// index 0 with every child index still pointing forward correctly.
func reverse(nodes []node) {
	n := len(nodes)
	for i := range nodes {
		if !nodes[i].isLeaf {
			nodes[i].left = n - nodes[i].left - 1
			nodes[i].right = n - nodes[i].right - 1
		}
	}
	for i, j := 0, n-1; i < j; i, j = i+1, j-1 {
		nodes[i], nodes[j] = nodes[j], nodes[i]
	}
}

// FindIntersection traverses the BVH, calling find at each leaf and
// combine to reduce the results of both children of a hit internal
// node. Both children of any hit node are always visited -- no
// first-hit early-out, by design: closest-hit correctness matters more
// here than raw traversal speed.
func FindIntersection[O any](b *BVH, ray core.Ray, find func(core.Ray, PrimitiveRef) (O, bool), combine func(O, O) O, tMin, tMax core.F) (O, bool) {
	var zero O
	if b.Empty() {
		return zero, false
	}
	return findRec(b.nodes, 0, ray, find, combine, tMin, tMax)
}

func findRec[O any](nodes []node, i int, ray core.Ray, find func(core.Ray, PrimitiveRef) (O, bool), combine func(O, O) O, tMin, tMax core.F) (O, bool) {
	n := nodes[i]
	var zero O

	if n.isLeaf {
		return find(ray, n.primitive)
	}

	if !n.aabb.IntersectsRay(ray, tMin, tMax) {
		return zero, false
	}

	l, lok := findRec(nodes, n.left, ray, find, combine, tMin, tMax)
	r, rok := findRec(nodes, n.right, ray, find, combine, tMin, tMax)

	switch {
	case lok && rok:
		return combine(l, r), true
	case lok:
		return l, true
	case rok:
		return r, true
	default:
		return zero, false
	}
}
