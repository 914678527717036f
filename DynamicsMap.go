package phys2d

/// A spatial map: an isolated collision space holding bodies. Bodies on
/// different maps never pair.
///
/// A map always has a root partition whose frame is the world frame. A
/// body may additionally be promoted to a grid, which gives it a partition
/// of its own whose frame follows the body; other bodies can then live in
/// that partition. Proxy boxes are stored in partition-local coordinates,
/// so a grid carrying many fixtures can rotate without rebuilding its tree.
/// Pairs spanning two partitions are found by mapping the fat boxes of
/// moved proxies into the shared world frame and querying the other
/// partitions there.
type PhysicsMap struct {
	World *World

	Root *Broadphase

	// Root first, then grids in creation order.
	Partitions []*Broadphase

	Bodies map[*Body]bool
}

func NewPhysicsMap(world *World) *PhysicsMap {
	m := &PhysicsMap{
		World:  world,
		Root:   NewBroadphase(),
		Bodies: make(map[*Body]bool),
	}

	m.Partitions = append(m.Partitions, m.Root)

	return m
}

func (m PhysicsMap) GetBodyCount() int {
	return len(m.Bodies)
}

/// Places the body on this map, in the root partition. A body already on
/// another map is removed from it first.
func (m *PhysicsMap) AddBody(body *Body) {
	if body.Map == m {
		return
	}

	if body.Map != nil {
		body.Map.RemoveBody(body)
	}

	body.Map = m
	m.Bodies[body] = true

	body.Broadphase = m.Root
	if (body.Flags & Body_Flags.E_canCollideFlag) != 0 {
		localXf := TransformMulT(m.Root.Xf, body.Xf)
		for f := body.FixtureList; f != nil; f = f.Next {
			f.CreateProxies(m.Root, localXf)
		}
	}
}

/// Places the body in the partition carried by the given grid body.
func (m *PhysicsMap) AddBodyToGrid(body *Body, grid *Body) {
	Assert(grid.Grid != nil)

	if body.Map != m {
		m.AddBody(body)
	}

	m.MoveBodyToPartition(body, grid.Grid)
}

/// Takes the body off this map. Its contacts can no longer meet their
/// other half, so they are torn down immediately rather than waiting for
/// the next candidate pass.
func (m *PhysicsMap) RemoveBody(body *Body) {
	if body.Map != m {
		return
	}

	if body.Grid != nil {
		m.DestroyGrid(body)
	}

	ce := body.ContactList
	for ce != nil {
		ce0 := ce
		ce = ce.Next
		m.World.ContactManager.Destroy(ce0.Contact)
	}
	body.ContactList = nil

	if body.Broadphase != nil && (body.Flags&Body_Flags.E_canCollideFlag) != 0 {
		for f := body.FixtureList; f != nil; f = f.Next {
			f.DestroyProxies(body.Broadphase)
		}
	}

	body.Broadphase = nil
	body.Map = nil
	delete(m.Bodies, body)
}

/// Promotes a body to a grid, creating the partition other bodies can be
/// placed in. The body's own fixtures stay in its current partition.
func (m *PhysicsMap) CreateGrid(body *Body) *Broadphase {
	Assert(body.Map == m)

	if body.Grid != nil {
		return body.Grid
	}

	grid := NewBroadphase()
	grid.Xf = body.Xf
	body.Grid = grid
	m.Partitions = append(m.Partitions, grid)

	return grid
}

/// Demotes a grid body. Occupants of its partition are moved back to the
/// root partition; their contacts survive since the pair is still on this
/// map.
func (m *PhysicsMap) DestroyGrid(body *Body) {
	grid := body.Grid
	if grid == nil {
		return
	}

	for other := range m.Bodies {
		if other.Broadphase == grid {
			m.MoveBodyToPartition(other, m.Root)
		}
	}

	for i, bp := range m.Partitions {
		if bp == grid {
			m.Partitions = append(m.Partitions[:i], m.Partitions[i+1:]...)
			break
		}
	}

	body.Grid = nil
}

/// Moves the body's proxies into another partition of the same map. The
/// body keeps its world transform; only the frame the boxes are cached in
/// changes.
func (m *PhysicsMap) MoveBodyToPartition(body *Body, bp *Broadphase) {
	if body.Broadphase == bp {
		return
	}

	canCollide := (body.Flags & Body_Flags.E_canCollideFlag) != 0

	if body.Broadphase != nil && canCollide {
		for f := body.FixtureList; f != nil; f = f.Next {
			f.DestroyProxies(body.Broadphase)
		}
	}

	body.Broadphase = bp

	if bp != nil && canCollide {
		localXf := TransformMulT(bp.Xf, body.Xf)
		for f := body.FixtureList; f != nil; f = f.Next {
			f.CreateProxies(bp, localXf)
		}
	}
}

/// Follows a moved grid body: updates the partition frame and refreshes
/// the occupants' cached boxes, which are stale in the new frame. The
/// occupants keep their world positions; the grid slides under them.
func (m *PhysicsMap) SynchronizeGrid(body *Body) {
	grid := body.Grid
	if grid == nil {
		return
	}

	grid.Xf = body.Xf

	for other := range m.Bodies {
		if other.Broadphase == grid && other != body {
			other.SynchronizeFixtures()
		}
	}
}

/// Feeds every new candidate pair on this map to the contact manager.
/// Same-partition pairs come from each partition's move buffer; pairs
/// spanning partitions are found by querying the other partitions with the
/// world-frame boxes of moved proxies. Duplicate discoveries collapse in
/// the manager's pair check.
func (m *PhysicsMap) FindNewContacts(manager *ContactManager) {

	pairCallback := func(userDataA interface{}, userDataB interface{}) {
		proxyA := userDataA.(*FixtureProxy)
		proxyB := userDataB.(*FixtureProxy)

		// Mask/layer filtering runs up front; every other filter is on
		// the contact manager.
		if ShouldCollideFilters(proxyA.Fixture.Filter, proxyB.Fixture.Filter) == false {
			return
		}

		manager.AddPair(userDataA, userDataB)
	}

	// Cross-partition pairs first: the per-partition pass below consumes
	// the move buffers.
	if len(m.Partitions) > 1 {
		for _, bp := range m.Partitions {
			for i := 0; i < bp.MoveCount; i++ {
				proxyId := bp.MoveBuffer[i]
				if proxyId == E_nullProxy {
					continue
				}

				worldAabb := bp.GetFatAABBWorld(proxyId)
				userData := bp.GetUserData(proxyId)

				for _, other := range m.Partitions {
					if other == bp {
						continue
					}

					other.QueryWorld(func(otherId int) bool {
						pairCallback(userData, other.GetUserData(otherId))
						return true
					}, worldAabb)
				}
			}
		}
	}

	for _, bp := range m.Partitions {
		bp.UpdatePairs(pairCallback)
	}
}

/// Query the map for all fixtures whose fat boxes potentially overlap the
/// provided box, given in world coordinates. Every partition is visited.
func (m *PhysicsMap) QueryAABB(callback WorldQueryCallback, aabb AABB) {
	keepGoing := true

	for _, bp := range m.Partitions {
		if keepGoing == false {
			break
		}

		bp.QueryWorld(func(proxyId int) bool {
			proxy := bp.GetUserData(proxyId).(*FixtureProxy)
			keepGoing = callback(proxy.Fixture)
			return keepGoing
		}, aabb)
	}
}

/// Ray-cast the map against all fixtures in the path of the ray, partition
/// by partition. The points are in world coordinates; your callback
/// controls clipping. Hits arrive in tree order, not by distance, so a
/// closest-hit callback should track its own best fraction.
func (m *PhysicsMap) RayCast(callback WorldRayCastCallback, point1 Vec2, point2 Vec2) {

	for _, bp := range m.Partitions {
		partition := bp

		wrapper := func(input RayCastInput, nodeId int) float64 {
			userData := partition.GetUserData(nodeId)
			proxy := userData.(*FixtureProxy)
			fixture := proxy.Fixture
			index := proxy.ChildIndex

			// The fixture test runs against the body's world transform,
			// so hand it the world-frame ray.
			worldInput := MakeRayCastInput()
			worldInput.P1 = point1
			worldInput.P2 = point2
			worldInput.MaxFraction = input.MaxFraction

			output := MakeRayCastOutput()
			hit := fixture.RayCast(&output, worldInput, index)

			if hit {
				fraction := output.Fraction
				point := Vec2Add(Vec2MulScalar(1.0-fraction, point1), Vec2MulScalar(fraction, point2))
				return callback(fixture, point, output.Normal, fraction)
			}

			return input.MaxFraction
		}

		input := MakeRayCastInput()
		input.P1 = TransformVec2MulT(bp.Xf, point1)
		input.P2 = TransformVec2MulT(bp.Xf, point2)
		input.MaxFraction = 1.0

		bp.RayCast(wrapper, input)
	}
}
