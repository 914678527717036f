package phys2d

import (
	"sort"
)

type BroadphaseAddPairCallback func(userDataA interface{}, userDataB interface{})

type Pair struct {
	ProxyIdA int
	ProxyIdB int
}

const E_nullProxy = -1

/// A collision partition. Proxy AABBs are kept in the partition's local
/// frame; Xf places the partition in the world. For the root partition
/// Xf is the identity, for grid partitions it follows the grid body.
type Broadphase struct {
	Xf Transform

	Tree DynamicTree

	ProxyCount int

	MoveBuffer   []int
	MoveCapacity int
	MoveCount    int

	PairBuffer   []Pair
	PairCapacity int
	PairCount    int

	QueryProxyId int
}

type PairByLessThan []Pair

func (a PairByLessThan) Len() int      { return len(a) }
func (a PairByLessThan) Swap(i, j int) { a[i], a[j] = a[j], a[i] }
func (a PairByLessThan) Less(i, j int) bool {
	return PairLessThan(a[i], a[j])
}

/// This is used to sort pairs.
func PairLessThan(pair1 Pair, pair2 Pair) bool {
	if pair1.ProxyIdA < pair2.ProxyIdA {
		return true
	}

	if pair1.ProxyIdA == pair2.ProxyIdA {
		return pair1.ProxyIdB < pair2.ProxyIdB
	}

	return false
}

func MakeBroadphase() Broadphase {

	pairCapacity := 16
	moveCapacity := 16

	tree := MakeDynamicTree()

	bp := Broadphase{
		Tree:       tree,
		ProxyCount: 0,

		PairCapacity: pairCapacity,
		PairCount:    0,
		PairBuffer:   make([]Pair, pairCapacity),

		MoveCapacity: moveCapacity,
		MoveCount:    0,
		MoveBuffer:   make([]int, moveCapacity),
	}
	bp.Xf.SetIdentity()

	return bp
}

func NewBroadphase() *Broadphase {
	res := MakeBroadphase()
	return &res
}

func (bp Broadphase) GetUserData(proxyId int) interface{} {
	return bp.Tree.GetUserData(proxyId)
}

func (bp Broadphase) TestOverlap(proxyIdA int, proxyIdB int) bool {
	return TestOverlapBoundingBoxes(
		bp.Tree.GetFatAABB(proxyIdA),
		bp.Tree.GetFatAABB(proxyIdB),
	)
}

func (bp Broadphase) GetFatAABB(proxyId int) AABB {
	return bp.Tree.GetFatAABB(proxyId)
}

/// Get a proxy's fat AABB in world coordinates. Partitions with different
/// transforms can only be compared through this frame.
func (bp Broadphase) GetFatAABBWorld(proxyId int) AABB {
	return TransformAABB(bp.Xf, bp.Tree.GetFatAABB(proxyId))
}

/// Convert a world-frame AABB to the tightest enclosing box in this
/// partition's local frame.
func (bp Broadphase) LocalAABB(worldAABB AABB) AABB {
	return InvTransformAABB(bp.Xf, worldAABB)
}

func (bp Broadphase) GetProxyCount() int {
	return bp.ProxyCount
}

func (bp Broadphase) GetTreeHeight() int {
	return bp.Tree.GetHeight()
}

func (bp Broadphase) GetTreeBalance() int {
	return bp.Tree.GetMaxBalance()
}

func (bp Broadphase) GetTreeQuality() float64 {
	return bp.Tree.GetAreaRatio()
}

func (bp *Broadphase) CreateProxy(aabb AABB, userData interface{}) int {
	proxyId := bp.Tree.CreateProxy(aabb, userData)
	bp.ProxyCount++
	bp.BufferMove(proxyId)
	return proxyId
}

func (bp *Broadphase) DestroyProxy(proxyId int) {
	bp.UnBufferMove(proxyId)
	bp.ProxyCount--
	bp.Tree.DestroyProxy(proxyId)
}

func (bp *Broadphase) MoveProxy(proxyId int, aabb AABB, displacement Vec2) {
	buffer := bp.Tree.MoveProxy(proxyId, aabb, displacement)
	if buffer {
		bp.BufferMove(proxyId)
	}
}

/// Call to trigger a re-pairing of the proxy on the next update.
/// The proxy does not need to have moved.
func (bp *Broadphase) TouchProxy(proxyId int) {
	bp.BufferMove(proxyId)
}

func (bp *Broadphase) BufferMove(proxyId int) {
	if bp.MoveCount == bp.MoveCapacity {
		bp.MoveBuffer = append(bp.MoveBuffer, make([]int, bp.MoveCapacity)...)
		bp.MoveCapacity *= 2
	}

	bp.MoveBuffer[bp.MoveCount] = proxyId
	bp.MoveCount++
}

func (bp *Broadphase) UnBufferMove(proxyId int) {
	for i := 0; i < bp.MoveCount; i++ {
		if bp.MoveBuffer[i] == proxyId {
			bp.MoveBuffer[i] = E_nullProxy
		}
	}
}

// This is called from DynamicTree.Query when we are gathering pairs.
func (bp *Broadphase) QueryCallback(proxyId int) bool {

	// A proxy cannot form a pair with itself.
	if proxyId == bp.QueryProxyId {
		return true
	}

	// Grow the pair buffer as needed.
	if bp.PairCount == bp.PairCapacity {
		bp.PairBuffer = append(bp.PairBuffer, make([]Pair, bp.PairCapacity)...)
		bp.PairCapacity *= 2
	}

	bp.PairBuffer[bp.PairCount].ProxyIdA = MinInt(proxyId, bp.QueryProxyId)
	bp.PairBuffer[bp.PairCount].ProxyIdB = MaxInt(proxyId, bp.QueryProxyId)
	bp.PairCount++

	return true
}

func (bp *Broadphase) UpdatePairs(addPairCallback BroadphaseAddPairCallback) {
	// Reset pair buffer
	bp.PairCount = 0

	// Perform tree queries for all moving proxies.
	for i := 0; i < bp.MoveCount; i++ {
		bp.QueryProxyId = bp.MoveBuffer[i]
		if bp.QueryProxyId == E_nullProxy {
			continue
		}

		// We have to query the tree with the fat AABB so that
		// we don't fail to create a pair that may touch later.
		fatAABB := bp.Tree.GetFatAABB(bp.QueryProxyId)

		// Query tree, create pairs and add them pair buffer.
		bp.Tree.Query(bp.QueryCallback, fatAABB)
	}

	// Reset move buffer
	bp.MoveCount = 0

	// Sort the pair buffer to expose duplicates.
	sort.Sort(PairByLessThan(bp.PairBuffer[:bp.PairCount]))

	// Send the pairs back to the client.
	i := 0
	for i < bp.PairCount {
		primaryPair := bp.PairBuffer[i]
		userDataA := bp.Tree.GetUserData(primaryPair.ProxyIdA)
		userDataB := bp.Tree.GetUserData(primaryPair.ProxyIdB)

		addPairCallback(userDataA, userDataB)
		i++

		// Skip any duplicate pairs.
		for i < bp.PairCount {
			pair := bp.PairBuffer[i]
			if pair.ProxyIdA != primaryPair.ProxyIdA || pair.ProxyIdB != primaryPair.ProxyIdB {
				break
			}
			i++
		}
	}
}

func (bp *Broadphase) Query(callback TreeQueryCallback, aabb AABB) {
	bp.Tree.Query(callback, aabb)
}

/// Query with an AABB given in world coordinates.
func (bp *Broadphase) QueryWorld(callback TreeQueryCallback, worldAABB AABB) {
	bp.Tree.Query(callback, bp.LocalAABB(worldAABB))
}

func (bp *Broadphase) RayCast(callback TreeRayCastCallback, input RayCastInput) {
	bp.Tree.RayCast(callback, input)
}
