package bvh

import remath "render-engine/math"

const (
	sahBins        = 12
	traversalCost  = 1.0
	intersectCost  = 1.0
	maxStackDepth  = 64
)

// Node is a BVH node: a bounding box plus the leftFirst/triCount encoding
// from spec §3. Interior iff TriCount == 0 (LeftFirst is the left child
// index, the right child is LeftFirst+1). Leaf iff TriCount > 0 (LeftFirst
// is the first triangle index in the leaf's contiguous range).
type Node struct {
	Box       AABB
	LeftFirst uint32
	TriCount  uint32
}

// IsLeaf reports whether this node is a leaf (references a triangle range).
func (n Node) IsLeaf() bool { return n.TriCount > 0 }

// BVH is a built hierarchy plus the triangle index permutation produced
// during build. Nodes[0] is always the root.
type BVH struct {
	Nodes []Node
	// Order is the permutation of original triangle indices such that leaf
	// ranges [LeftFirst, LeftFirst+TriCount) are contiguous in this order.
	// Callers that want leaves to directly index their own triangle arrays
	// must reorder those arrays by Order themselves after Build returns.
	Order []uint32

	nodesUsed int
}

// Build constructs a binned-SAH BVH over the given per-triangle boxes. The
// builder allocates the worst-case 2N-1 node slots, seeds the root with the
// full triangle range, and recursively subdivides using 12-bin SAH splits
// swept in O(K) per axis via two prefix passes.
func Build(boxes []AABB) *BVH {
	n := len(boxes)
	if n == 0 {
		return &BVH{Nodes: []Node{{Box: EmptyAABB()}}, Order: nil, nodesUsed: 1}
	}

	centroids := make([]remath.Vec3, n)
	for i, b := range boxes {
		centroids[i] = b.Centroid()
	}

	order := make([]uint32, n)
	for i := range order {
		order[i] = uint32(i)
	}

	nodeCap := 2*n - 1
	if nodeCap < 1 {
		nodeCap = 1
	}
	b := &BVH{
		Nodes:     make([]Node, nodeCap),
		Order:     order,
		nodesUsed: 1,
	}

	root := &b.Nodes[0]
	root.LeftFirst = 0
	root.TriCount = uint32(n)
	b.updateNodeBounds(0, boxes, centroids)
	b.subdivide(0, boxes, centroids)

	b.Nodes = b.Nodes[:b.nodesUsed]
	return b
}

func (b *BVH) updateNodeBounds(nodeIdx int, boxes []AABB, centroids []remath.Vec3) {
	node := &b.Nodes[nodeIdx]
	box := EmptyAABB()
	first := int(node.LeftFirst)
	for i := 0; i < int(node.TriCount); i++ {
		box = box.GrowBox(boxes[b.Order[first+i]])
	}
	node.Box = box
}

type bin struct {
	box   AABB
	count int
}

// findBestSplitPlane scans all three axes with 12 equal-width bins each,
// returning the minimizing axis/position/cost. axis is -1 if every axis has
// zero centroid extent (fully degenerate node — caller must make a leaf).
func (b *BVH) findBestSplitPlane(nodeIdx int, boxes []AABB, centroids []remath.Vec3) (axis int, splitPos float32, bestCost float32) {
	node := &b.Nodes[nodeIdx]
	first := int(node.LeftFirst)
	count := int(node.TriCount)

	axis = -1
	bestCost = float32(1e30)

	for a := 0; a < 3; a++ {
		boundsMin := float32(1e30)
		boundsMax := float32(-1e30)
		for i := 0; i < count; i++ {
			c := axisComponent(centroids[b.Order[first+i]], a)
			if c < boundsMin {
				boundsMin = c
			}
			if c > boundsMax {
				boundsMax = c
			}
		}
		if boundsMin == boundsMax {
			continue
		}

		var bins [sahBins]bin
		for i := range bins {
			bins[i].box = EmptyAABB()
		}
		scale := float32(sahBins) / (boundsMax - boundsMin)
		for i := 0; i < count; i++ {
			triIdx := b.Order[first+i]
			c := axisComponent(centroids[triIdx], a)
			binIdx := int((c - boundsMin) * scale)
			if binIdx >= sahBins {
				binIdx = sahBins - 1
			}
			if binIdx < 0 {
				binIdx = 0
			}
			bins[binIdx].count++
			bins[binIdx].box = bins[binIdx].box.GrowBox(boxes[triIdx])
		}

		var leftCount, rightCount [sahBins - 1]int
		var leftArea, rightArea [sahBins - 1]float32

		leftBox := EmptyAABB()
		leftSum := 0
		for i := 0; i < sahBins-1; i++ {
			leftSum += bins[i].count
			leftBox = leftBox.GrowBox(bins[i].box)
			leftCount[i] = leftSum
			leftArea[i] = leftBox.SurfaceArea()
		}
		rightBox := EmptyAABB()
		rightSum := 0
		for i := sahBins - 1; i >= 1; i-- {
			rightSum += bins[i].count
			rightBox = rightBox.GrowBox(bins[i].box)
			rightCount[i-1] = rightSum
			rightArea[i-1] = rightBox.SurfaceArea()
		}

		binWidth := (boundsMax - boundsMin) / float32(sahBins)
		for i := 0; i < sahBins-1; i++ {
			cost := traversalCost + intersectCost*(leftArea[i]*float32(leftCount[i])+rightArea[i]*float32(rightCount[i]))/parentArea(node)
			if cost < bestCost {
				bestCost = cost
				axis = a
				splitPos = boundsMin + binWidth*float32(i+1)
			}
		}
	}
	return axis, splitPos, bestCost
}

// parentArea implements the SAH cost's A_parent denominator using the
// subdividing node's own box area, matching the per-node cost ratio
// described in spec §4.2.
func parentArea(node *Node) float32 {
	a := node.Box.SurfaceArea()
	if a <= 0 {
		return 1
	}
	return a
}

func axisComponent(v remath.Vec3, axis int) float32 {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

func (b *BVH) subdivide(nodeIdx int, boxes []AABB, centroids []remath.Vec3) {
	node := &b.Nodes[nodeIdx]
	if node.TriCount <= 2 {
		return // too few triangles to usefully split further
	}

	axis, splitPos, bestCost := b.findBestSplitPlane(nodeIdx, boxes, centroids)
	leafCost := float32(node.TriCount) * intersectCost
	if axis < 0 || bestCost >= leafCost {
		return // stays a leaf
	}

	first := int(node.LeftFirst)
	count := int(node.TriCount)
	i := first
	j := first + count - 1
	for i <= j {
		if axisComponent(centroids[b.Order[i]], axis) < splitPos {
			i++
		} else {
			b.Order[i], b.Order[j] = b.Order[j], b.Order[i]
			j--
		}
	}
	leftCount := i - first
	if leftCount == 0 || leftCount == count {
		return // degenerate partition — keep as leaf
	}

	leftIdx := b.nodesUsed
	rightIdx := b.nodesUsed + 1
	b.nodesUsed += 2

	b.Nodes[leftIdx] = Node{LeftFirst: uint32(first), TriCount: uint32(leftCount)}
	b.Nodes[rightIdx] = Node{LeftFirst: uint32(i), TriCount: uint32(count - leftCount)}

	node = &b.Nodes[nodeIdx] // re-fetch: append-free fixed slice, pointer stable, but be defensive
	node.LeftFirst = uint32(leftIdx)
	node.TriCount = 0

	b.updateNodeBounds(leftIdx, boxes, centroids)
	b.updateNodeBounds(rightIdx, boxes, centroids)
	b.subdivide(leftIdx, boxes, centroids)
	b.subdivide(rightIdx, boxes, centroids)
}
