package bvh

import "unsafe"

// Stats holds the BVH diagnostics exposed through the driver's
// accumulation read-out (spec §6): node count, memory footprint, the root
// bounding box, and an SAH cost figure useful as a regression guard.
type Stats struct {
	NodeCount   int
	MemoryBytes int
	RootBox     AABB
	SAHCost     float32
}

// Stats computes the BVH diagnostics. SAHCost is
// (sum over leaves of area*triCount*I + sum over interior of area*T) / rootArea.
func (b *BVH) Stats() Stats {
	rootArea := b.Nodes[0].Box.SurfaceArea()
	if rootArea <= 0 {
		rootArea = 1
	}

	var cost float32
	for i := range b.Nodes {
		n := &b.Nodes[i]
		area := n.Box.SurfaceArea()
		if n.IsLeaf() {
			cost += area * float32(n.TriCount) * intersectCost
		} else {
			cost += area * traversalCost
		}
	}

	return Stats{
		NodeCount:   len(b.Nodes),
		MemoryBytes: len(b.Nodes)*int(unsafe.Sizeof(Node{})) + len(b.Order)*4,
		RootBox:     b.Nodes[0].Box,
		SAHCost:     cost / rootArea,
	}
}
