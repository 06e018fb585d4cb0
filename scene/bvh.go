package scene

import (
	"time"

	"github.com/chewxy/math32"

	"github.com/lapidary/lustre/log"
	"github.com/lapidary/lustre/types"
)

// Leaves hold at most this many triangles.
const maxLeafTriangles uint32 = 2

// A BVH node. Nodes are stored in a flat arena and children are addressed
// by index: TriangleCount == 0 marks an internal node whose left child is
// at LeftOrFirst and whose right child is always at LeftOrFirst+1.
// TriangleCount > 0 marks a leaf covering the contiguous range
// [LeftOrFirst, LeftOrFirst+TriangleCount) of the triangle index
// permutation.
type BvhNode struct {
	Min types.Vec3
	Max types.Vec3

	LeftOrFirst   uint32
	TriangleCount uint32
}

func (n *BvhNode) isLeaf() bool {
	return n.TriangleCount > 0
}

// Bounding volume hierarchy over a triangle set. The tree is built once
// and is immutable afterwards, so it can be shared read-only by any
// number of concurrent workers.
type Bvh struct {
	triangles []Triangle

	// Permutation of triangle indices; leaves reference contiguous
	// subranges of it.
	triIndex []uint32

	nodes     []BvhNode
	nodeCount uint32

	stats BvhStats
}

// Statistics collected while building a BVH.
type BvhStats struct {
	Triangles int
	Nodes     int
	Leafs     int
	MaxDepth  int
}

type bvhBuilder struct {
	logger log.Logger
	bvh    *Bvh
}

// Construct a BVH over the given triangle slice. The builder repeatedly
// bisects the widest box axis at its midpoint; 2n+1 nodes is the exact
// upper bound for that scheme. Midpoint splits are cheaper than SAH
// scoring and good enough for the compact, convex meshes this renderer
// targets.
func BuildBvh(triangles []Triangle) *Bvh {
	n := uint32(len(triangles))

	bvh := &Bvh{
		triangles: triangles,
		triIndex:  make([]uint32, n),
		nodes:     make([]BvhNode, 2*n+1),
		nodeCount: 1,
		stats:     BvhStats{Triangles: int(n)},
	}
	for i := range bvh.triIndex {
		bvh.triIndex[i] = uint32(i)
	}
	if n == 0 {
		return bvh
	}

	builder := &bvhBuilder{
		logger: log.New("bvh"),
		bvh:    bvh,
	}

	start := time.Now()
	bvh.stats.Nodes = 1
	bvh.nodes[0].TriangleCount = n
	builder.updateBounds(0)
	builder.subdivide(0, 0)
	builder.logger.Debugf(
		"built tree in %d ms: %d triangles, %d nodes, %d leafs, max depth %d",
		time.Since(start).Nanoseconds()/1e6,
		bvh.stats.Triangles, bvh.stats.Nodes, bvh.stats.Leafs, bvh.stats.MaxDepth,
	)
	return bvh
}

// Get build statistics.
func (b *Bvh) Stats() BvhStats {
	return b.stats
}

// Recompute a node's AABB as the union of the vertices of all triangles
// in its range. Degenerate axes get expanded so flat geometry still
// produces a non-empty slab interval.
func (builder *bvhBuilder) updateBounds(nodeIndex uint32) {
	b := builder.bvh
	node := &b.nodes[nodeIndex]

	min := types.Splat(math32.MaxFloat32)
	max := types.Splat(-math32.MaxFloat32)
	for i := uint32(0); i < node.TriangleCount; i++ {
		tri := &b.triangles[b.triIndex[node.LeftOrFirst+i]]
		min = types.MinVec3(min, types.MinVec3(tri.V0, types.MinVec3(tri.V1, tri.V2)))
		max = types.MaxVec3(max, types.MaxVec3(tri.V0, types.MaxVec3(tri.V1, tri.V2)))
	}

	box := NewBoundingBox(min, max)
	node.Min = box.Min
	node.Max = box.Max
}

// Recursively split a node until its range is small enough to keep as a
// leaf or a split fails to separate the triangles.
func (builder *bvhBuilder) subdivide(nodeIndex uint32, depth int) {
	b := builder.bvh
	if depth > b.stats.MaxDepth {
		b.stats.MaxDepth = depth
	}

	node := b.nodes[nodeIndex]
	if node.TriangleCount <= maxLeafTriangles {
		b.stats.Leafs++
		return
	}

	// Split the widest axis at the midpoint of its extent. Ties keep the
	// lower axis index.
	extent := node.Max.Sub(node.Min)
	axis := 0
	if extent[1] > extent[0] {
		axis = 1
	}
	if extent[2] > extent[axis] {
		axis = 2
	}
	split := node.Min[axis] + 0.5*extent[axis]

	// Two-pointer in-place partition of the node's index range:
	// triangles whose centroid lies below the split plane end up on the
	// left. Not stable, O(k) for k triangles.
	i := int(node.LeftOrFirst)
	j := i + int(node.TriangleCount) - 1
	for i <= j {
		tri := &b.triangles[b.triIndex[i]]
		if tri.Centroid()[axis] < split {
			i++
		} else {
			b.triIndex[i], b.triIndex[j] = b.triIndex[j], b.triIndex[i]
			j--
		}
	}

	// An empty side means the centroids are clustered on the split plane;
	// keep the node as a leaf rather than recursing forever.
	leftCount := uint32(i) - node.LeftOrFirst
	if leftCount == 0 || leftCount == node.TriangleCount {
		b.stats.Leafs++
		return
	}

	// Allocate the children from the next two free slots, left first.
	// This is what guarantees that the right child sits at left+1.
	left := b.nodeCount
	right := left + 1
	b.nodeCount += 2
	b.stats.Nodes += 2

	b.nodes[left].LeftOrFirst = node.LeftOrFirst
	b.nodes[left].TriangleCount = leftCount
	b.nodes[right].LeftOrFirst = uint32(i)
	b.nodes[right].TriangleCount = node.TriangleCount - leftCount

	b.nodes[nodeIndex].LeftOrFirst = left
	b.nodes[nodeIndex].TriangleCount = 0

	builder.updateBounds(left)
	builder.updateBounds(right)
	builder.subdivide(left, depth+1)
	builder.subdivide(right, depth+1)
}

// Intersect returns the nearest triangle hit at a distance > minDist.
// The result is identical to a linear scan over all triangles.
func (b *Bvh) Intersect(r Ray, minDist float32) (HitInfo, bool) {
	if len(b.triangles) == 0 {
		return HitInfo{}, false
	}

	best := HitInfo{Distance: math32.Inf(1)}
	if !b.intersectNode(0, r, minDist, &best) {
		return HitInfo{}, false
	}
	return best, true
}

func (b *Bvh) intersectNode(nodeIndex uint32, r Ray, minDist float32, best *HitInfo) bool {
	node := &b.nodes[nodeIndex]

	// Skip the subtree if the ray misses the node box or enters it
	// beyond the best hit found so far.
	entry, hit := BoundingBox{Min: node.Min, Max: node.Max}.Intersect(r)
	if !hit || entry > best.Distance {
		return false
	}

	if node.isLeaf() {
		found := false
		for i := uint32(0); i < node.TriangleCount; i++ {
			tri := &b.triangles[b.triIndex[node.LeftOrFirst+i]]
			if info, ok := tri.Intersect(r, minDist); ok && info.Distance < best.Distance {
				*best = info
				found = true
			}
		}
		return found
	}

	foundLeft := b.intersectNode(node.LeftOrFirst, r, minDist, best)
	foundRight := b.intersectNode(node.LeftOrFirst+1, r, minDist, best)
	return foundLeft || foundRight
}
