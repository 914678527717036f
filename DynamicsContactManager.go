package phys2d

// Delegate of World.
type ContactManager struct {
	Pool ContactPool

	// Registry of live contacts, appended at the tail so traversal and
	// the notifications derived from it replay registration order.
	ContactList  *Contact
	ContactTail  *Contact
	ContactCount int

	Bus *EventBus

	// Reused across steps to avoid churn.
	Worklist []*Contact
	Results  []ContactUpdateResult
}

func MakeContactManager(bus *EventBus) ContactManager {
	return ContactManager{
		Pool:         MakeContactPool(),
		ContactList:  nil,
		ContactTail:  nil,
		ContactCount: 0,
		Bus:          bus,
	}
}

func (mgr ContactManager) GetContactList() *Contact {
	return mgr.ContactList
}

func (mgr ContactManager) GetContactCount() int {
	return mgr.ContactCount
}

/// The pairing filters applied to a candidate or re-validated pair, in
/// order: body types and joint overrides, then the owner veto. A's owner
/// is asked first; when it cancels, B's owner is never asked.
func (mgr *ContactManager) ShouldCollide(fixtureA *Fixture, fixtureB *Fixture) bool {
	bodyA := fixtureA.GetBody()
	bodyB := fixtureB.GetBody()

	if bodyB.ShouldCollide(bodyA) == false {
		return false
	}

	prevent := PreventCollideEvent{OurFixture: fixtureA, OtherFixture: fixtureB}
	mgr.Bus.RaisePreventCollide(bodyA, &prevent)
	if prevent.Cancelled {
		return false
	}

	prevent = PreventCollideEvent{OurFixture: fixtureB, OtherFixture: fixtureA}
	mgr.Bus.RaisePreventCollide(bodyB, &prevent)
	if prevent.Cancelled {
		return false
	}

	return true
}

// Broad-phase callback.
func (mgr *ContactManager) AddPair(proxyUserDataA interface{}, proxyUserDataB interface{}) {

	proxyA := proxyUserDataA.(*FixtureProxy)
	proxyB := proxyUserDataB.(*FixtureProxy)

	fixtureA := proxyA.Fixture
	fixtureB := proxyB.Fixture

	indexA := proxyA.ChildIndex
	indexB := proxyB.ChildIndex

	bodyA := fixtureA.GetBody()
	bodyB := fixtureB.GetBody()

	// Are the fixtures on the same body?
	if bodyA == bodyB {
		return
	}

	// At most one contact per fixture pair.
	if _, ok := fixtureA.Contacts[fixtureB]; ok {
		return
	}

	if mgr.ShouldCollide(fixtureA, fixtureB) == false {
		return
	}

	// Call the factory.
	c := ContactCreate(&mgr.Pool, fixtureA, indexA, fixtureB, indexB)

	// Contact creation may swap fixtures.
	fixtureA = c.GetFixtureA()
	fixtureB = c.GetFixtureB()
	bodyA = fixtureA.GetBody()
	bodyB = fixtureB.GetBody()

	if bodyA.IsGrid() && bodyB.IsGrid() {
		c.Flags |= Contact_Flags.E_gridFlag
	}

	// Append to the registry tail.
	c.Prev = mgr.ContactTail
	c.Next = nil
	if mgr.ContactTail != nil {
		mgr.ContactTail.Next = c
	} else {
		mgr.ContactList = c
	}
	mgr.ContactTail = c

	// Connect to body A.
	c.NodeA.Contact = c
	c.NodeA.Other = bodyB

	c.NodeA.Prev = nil
	c.NodeA.Next = bodyA.ContactList
	if bodyA.ContactList != nil {
		bodyA.ContactList.Prev = &c.NodeA
	}
	bodyA.ContactList = &c.NodeA

	// Connect to body B.
	c.NodeB.Contact = c
	c.NodeB.Other = bodyA

	c.NodeB.Prev = nil
	c.NodeB.Next = bodyB.ContactList
	if bodyB.ContactList != nil {
		bodyB.ContactList.Prev = &c.NodeB
	}
	bodyB.ContactList = &c.NodeB

	// Index by fixture pair on both sides.
	fixtureA.Contacts[fixtureB] = c
	fixtureB.Contacts[fixtureA] = c

	mgr.ContactCount++
}

func (mgr *ContactManager) Destroy(c *Contact) {

	fixtureA := c.GetFixtureA()
	fixtureB := c.GetFixtureB()
	bodyA := fixtureA.GetBody()
	bodyB := fixtureB.GetBody()

	// A touching contact always announces its end, even when it is torn
	// down outside the update pass.
	if c.IsTouching() {
		endA := EndCollideEvent{OurFixture: fixtureA, OtherFixture: fixtureB}
		mgr.Bus.RaiseEndCollide(bodyA, &endA)

		endB := EndCollideEvent{OurFixture: fixtureB, OtherFixture: fixtureA}
		mgr.Bus.RaiseEndCollide(bodyB, &endB)
	}

	// Removing a supporting contact may free a body to move again.
	if c.Manifold.PointCount > 0 && c.IsHard() {
		if bodyA.CanCollide() {
			bodyA.SetAwake(true)
		}
		if bodyB.CanCollide() {
			bodyB.SetAwake(true)
		}
	}

	// Remove from the registry.
	if c.Prev != nil {
		c.Prev.Next = c.Next
	} else {
		mgr.ContactList = c.Next
	}

	if c.Next != nil {
		c.Next.Prev = c.Prev
	} else {
		mgr.ContactTail = c.Prev
	}

	// Remove from body A.
	if c.NodeA.Prev != nil {
		c.NodeA.Prev.Next = c.NodeA.Next
	}

	if c.NodeA.Next != nil {
		c.NodeA.Next.Prev = c.NodeA.Prev
	}

	if &c.NodeA == bodyA.ContactList {
		bodyA.ContactList = c.NodeA.Next
	}

	// Remove from body B.
	if c.NodeB.Prev != nil {
		c.NodeB.Prev.Next = c.NodeB.Next
	}

	if c.NodeB.Next != nil {
		c.NodeB.Next.Prev = c.NodeB.Prev
	}

	if &c.NodeB == bodyB.ContactList {
		bodyB.ContactList = c.NodeB.Next
	}

	// Drop the fixture pair index.
	delete(fixtureA.Contacts, fixtureB)
	delete(fixtureB.Contacts, fixtureA)

	mgr.ContactCount--
	mgr.Pool.Release(c)
}

/// The per-step candidate pass. Walks the registry in registration order,
/// destroys contacts whose pair is no longer valid, collects the rest into
/// the worklist and hands it to the update engine.
func (mgr *ContactManager) Collide() {

	worklist := mgr.Worklist[:0]

	c := mgr.ContactList
	for c != nil {
		fixtureA := c.GetFixtureA()
		fixtureB := c.GetFixtureB()
		indexA := c.GetChildIndexA()
		indexB := c.GetChildIndexB()
		bodyA := fixtureA.GetBody()
		bodyB := fixtureB.GetBody()

		if bodyA.CanCollide() == false || bodyB.CanCollide() == false {
			cNuke := c
			c = cNuke.GetNext()
			mgr.Destroy(cNuke)
			continue
		}

		// Is this contact flagged for filtering?
		if (c.Flags & Contact_Flags.E_filterFlag) != 0 {

			if ShouldCollideFilters(fixtureA.Filter, fixtureB.Filter) == false ||
				mgr.ShouldCollide(fixtureA, fixtureB) == false {
				cNuke := c
				c = cNuke.GetNext()
				mgr.Destroy(cNuke)
				continue
			}

			// Clear the filtering flag.
			c.Flags &= ^Contact_Flags.E_filterFlag
		}

		// The bodies must share a spatial map.
		if bodyA.Map == nil || bodyA.Map != bodyB.Map {
			cNuke := c
			c = cNuke.GetNext()
			mgr.Destroy(cNuke)
			continue
		}

		activeA := bodyA.IsAwake() && bodyA.Type != BodyType.E_staticBody
		activeB := bodyB.IsAwake() && bodyB.Type != BodyType.E_staticBody

		// At least one body must be awake and it must be dynamic or kinematic.
		if activeA == false && activeB == false {
			c = c.GetNext()
			continue
		}

		// Grid pairs carry fat boxes covering the whole grid; compare the
		// exact shape boxes instead.
		if (c.Flags & Contact_Flags.E_gridFlag) != 0 {
			var aabbA AABB
			fixtureA.GetShape().ComputeAABB(&aabbA, bodyA.GetTransform(), indexA)

			var aabbB AABB
			fixtureB.GetShape().ComputeAABB(&aabbB, bodyB.GetTransform(), indexB)

			if TestOverlapBoundingBoxes(aabbA, aabbB) == false {
				cNuke := c
				c = cNuke.GetNext()
				mgr.Destroy(cNuke)
				continue
			}

			c.Flags &= ^Contact_Flags.E_islandExemptFlag
			worklist = append(worklist, c)
			c = c.GetNext()
			continue
		}

		// Compare the cached fat boxes, mapped into world space when the
		// fixtures live in different partitions.
		bpA := bodyA.Broadphase
		bpB := bodyB.Broadphase
		proxyIdA := fixtureA.Proxies[indexA].ProxyId
		proxyIdB := fixtureB.Proxies[indexB].ProxyId

		var overlap bool
		if bpA == bpB {
			overlap = TestOverlapBoundingBoxes(bpA.GetFatAABB(proxyIdA), bpB.GetFatAABB(proxyIdB))
		} else {
			overlap = TestOverlapBoundingBoxes(bpA.GetFatAABBWorld(proxyIdA), bpB.GetFatAABBWorld(proxyIdB))
		}

		// Here we destroy contacts that cease to overlap in the broad-phase.
		if overlap == false {
			cNuke := c
			c = cNuke.GetNext()
			mgr.Destroy(cNuke)
			continue
		}

		c.Flags &= ^Contact_Flags.E_islandExemptFlag
		worklist = append(worklist, c)
		c = c.GetNext()
	}

	mgr.Worklist = worklist
	mgr.UpdateContacts(worklist)
}
