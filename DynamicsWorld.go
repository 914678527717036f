package phys2d

/// Called for each fixture found in a query box.
/// Return false to terminate the query.
type WorldQueryCallback func(fixture *Fixture) bool

/// Called for each fixture found in the query. You control how the ray cast
/// proceeds by returning a float:
/// return -1: ignore this fixture and continue
/// return 0: terminate the ray cast
/// return fraction: clip the ray to this point
/// return 1: don't clip the ray and continue
type WorldRayCastCallback func(fixture *Fixture, point Vec2, normal Vec2, fraction float64) float64

/// The world holds the bodies and joints, the maps they are placed on, the
/// contact manager and the event bus. Stepping the world advances contact
/// state once; moving bodies between steps is up to the caller.
type World struct {
	ContactManager ContactManager

	Bus *EventBus

	BodyList  *Body
	BodyCount int

	JointList  *Joint
	JointCount int

	Maps []*PhysicsMap
}

func MakeWorld() World {
	bus := NewEventBus()

	return World{
		ContactManager: MakeContactManager(bus),
		Bus:            bus,
	}
}

func NewWorld() *World {
	res := MakeWorld()
	return &res
}

func (world World) GetBodyList() *Body {
	return world.BodyList
}

func (world World) GetBodyCount() int {
	return world.BodyCount
}

func (world World) GetJointList() *Joint {
	return world.JointList
}

func (world World) GetJointCount() int {
	return world.JointCount
}

func (world World) GetContactList() *Contact {
	return world.ContactManager.ContactList
}

func (world World) GetContactCount() int {
	return world.ContactManager.ContactCount
}

func (world World) GetEventBus() *EventBus {
	return world.Bus
}

func (world *World) CreateMap() *PhysicsMap {
	m := NewPhysicsMap(world)
	world.Maps = append(world.Maps, m)
	return m
}

func (world *World) DestroyMap(m *PhysicsMap) {
	for b := world.BodyList; b != nil; b = b.GetNext() {
		if b.Map == m {
			m.RemoveBody(b)
		}
	}

	for i, other := range world.Maps {
		if other == m {
			world.Maps = append(world.Maps[:i], world.Maps[i+1:]...)
			break
		}
	}
}

/// Creates a body from the definition. The body is not placed on any map;
/// use PhysicsMap.AddBody for that.
func (world *World) CreateBody(def *BodyDef) *Body {
	b := NewBody(def, world)

	// Add to world doubly linked list.
	b.Prev = nil
	b.Next = world.BodyList
	if world.BodyList != nil {
		world.BodyList.Prev = b
	}
	world.BodyList = b
	world.BodyCount++

	return b
}

func (world *World) DestroyBody(b *Body) {
	Assert(world.BodyCount > 0)

	// Delete the attached joints.
	je := b.JointList
	for je != nil {
		je0 := je
		je = je.Next

		world.DestroyJoint(je0.Joint)

		b.JointList = je
	}
	b.JointList = nil

	// Delete the attached contacts.
	ce := b.ContactList
	for ce != nil {
		ce0 := ce
		ce = ce.Next
		world.ContactManager.Destroy(ce0.Contact)
	}
	b.ContactList = nil

	// Delete the attached fixtures. This destroys broad-phase proxies.
	f := b.FixtureList
	for f != nil {
		f0 := f
		f = f.Next

		if b.Broadphase != nil {
			f0.DestroyProxies(b.Broadphase)
		}
		f0.Destroy()

		b.FixtureList = f
		b.FixtureCount -= 1
	}

	b.FixtureList = nil
	b.FixtureCount = 0

	if b.Map != nil {
		b.Map.RemoveBody(b)
	}

	// Nothing may keep addressing the dead body through the bus.
	world.Bus.UnsubscribeBody(b)

	// Remove world body list.
	if b.Prev != nil {
		b.Prev.Next = b.Next
	}

	if b.Next != nil {
		b.Next.Prev = b.Prev
	}

	if b == world.BodyList {
		world.BodyList = b.Next
	}

	world.BodyCount--
}

func (world *World) CreateJoint(def *JointDef) *Joint {

	j := NewJoint(def)

	// Connect to the world list.
	j.Prev = nil
	j.Next = world.JointList
	if world.JointList != nil {
		world.JointList.Prev = j
	}
	world.JointList = j
	world.JointCount++

	// Connect to the bodies' doubly linked lists.
	j.EdgeA.Joint = j
	j.EdgeA.Other = j.BodyB
	j.EdgeA.Prev = nil
	j.EdgeA.Next = j.BodyA.JointList
	if j.BodyA.JointList != nil {
		j.BodyA.JointList.Prev = j.EdgeA
	}
	j.BodyA.JointList = j.EdgeA

	j.EdgeB.Joint = j
	j.EdgeB.Other = j.BodyA
	j.EdgeB.Prev = nil
	j.EdgeB.Next = j.BodyB.JointList
	if j.BodyB.JointList != nil {
		j.BodyB.JointList.Prev = j.EdgeB
	}
	j.BodyB.JointList = j.EdgeB

	bodyA := def.BodyA
	bodyB := def.BodyB

	// If the joint prevents collisions, then flag any contacts for filtering.
	if def.CollideConnected == false {
		edge := bodyB.GetContactList()
		for edge != nil {
			if edge.Other == bodyA {
				// Flag the contact for filtering at the next time step (where either
				// body is awake).
				edge.Contact.FlagForFiltering()
			}

			edge = edge.Next
		}
	}

	// Note: creating a joint doesn't wake the bodies.

	return j
}

func (world *World) DestroyJoint(j *Joint) {

	collideConnected := j.CollideConnected

	// Remove from the doubly linked list.
	if j.Prev != nil {
		j.Prev.Next = j.Next
	}

	if j.Next != nil {
		j.Next.Prev = j.Prev
	}

	if j == world.JointList {
		world.JointList = j.Next
	}

	// Disconnect from island graph.
	bodyA := j.BodyA
	bodyB := j.BodyB

	// Wake up connected bodies.
	bodyA.SetAwake(true)
	bodyB.SetAwake(true)

	// Remove from body 1.
	if j.EdgeA.Prev != nil {
		j.EdgeA.Prev.Next = j.EdgeA.Next
	}

	if j.EdgeA.Next != nil {
		j.EdgeA.Next.Prev = j.EdgeA.Prev
	}

	if j.EdgeA == bodyA.JointList {
		bodyA.JointList = j.EdgeA.Next
	}

	j.EdgeA.Prev = nil
	j.EdgeA.Next = nil

	// Remove from body 2
	if j.EdgeB.Prev != nil {
		j.EdgeB.Prev.Next = j.EdgeB.Next
	}

	if j.EdgeB.Next != nil {
		j.EdgeB.Next.Prev = j.EdgeB.Prev
	}

	if j.EdgeB == bodyB.JointList {
		bodyB.JointList = j.EdgeB.Next
	}

	j.EdgeB.Prev = nil
	j.EdgeB.Next = nil

	Assert(world.JointCount > 0)
	world.JointCount--

	// If the joint prevents collisions, then flag any contacts for filtering.
	if collideConnected == false {
		edge := bodyB.GetContactList()
		for edge != nil {
			if edge.Other == bodyA {
				// Flag the contact for filtering at the next time step (where either
				// body is awake).
				edge.Contact.FlagForFiltering()
			}

			edge = edge.Next
		}
	}
}

/// Query the world for all fixtures whose cached boxes potentially
/// overlap the provided box, across every map. The box is in world
/// coordinates.
func (world *World) QueryAABB(callback WorldQueryCallback, aabb AABB) {
	keepGoing := true

	for _, m := range world.Maps {
		if keepGoing == false {
			break
		}

		m.QueryAABB(func(fixture *Fixture) bool {
			keepGoing = callback(fixture)
			return keepGoing
		}, aabb)
	}
}

/// Ray-cast the world against all fixtures in the path of the ray, map by
/// map. The points are in world coordinates.
func (world *World) RayCast(callback WorldRayCastCallback, point1 Vec2, point2 Vec2) {
	for _, m := range world.Maps {
		m.RayCast(callback, point1, point2)
	}
}

/// Advances contact state once: pairs new broad-phase overlaps, prunes
/// pairs that can no longer meet, updates every active manifold and emits
/// the collision events. Bodies are never moved here.
func (world *World) Step() {

	// Pair anything that moved or appeared since the last step.
	for _, m := range world.Maps {
		m.FindNewContacts(&world.ContactManager)
	}

	// Update contacts. This is where some contacts are destroyed.
	world.ContactManager.Collide()
}
