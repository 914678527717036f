package phys2d

import (
	"math"
)

/// Friction mixing law. The idea is to allow either fixture to drive the friction to zero.
/// For example, anything slides on ice.
func MixFriction(friction1, friction2 float64) float64 {
	return math.Sqrt(friction1 * friction2)
}

/// Restitution mixing law. The idea is allow for anything to bounce off an inelastic surface.
/// For example, a superball bounces on anything.
func MixRestitution(restitution1, restitution2 float64) float64 {
	if restitution1 > restitution2 {
		return restitution1
	}

	return restitution2
}

/// The narrow-phase algorithm a contact dispatches to, fixed at creation
/// from the canonical shape-kind pair. The chain tags exist so chain pairs
/// are representable, but their evaluation is not implemented.
var ContactType = struct {
	E_notSupported     uint8
	E_circles          uint8
	E_polygonAndCircle uint8
	E_polygons         uint8
	E_edgeAndCircle    uint8
	E_edgeAndPolygon   uint8
	E_chainAndCircle   uint8
	E_chainAndPolygon  uint8
}{
	E_notSupported:     0,
	E_circles:          1,
	E_polygonAndCircle: 2,
	E_polygons:         3,
	E_edgeAndCircle:    4,
	E_edgeAndPolygon:   5,
	E_chainAndCircle:   6,
	E_chainAndPolygon:  7,
}

/// A contact edge is used to connect bodies and contacts together
/// in a contact graph where each body is a node and each contact
/// is an edge. A contact edge belongs to a doubly linked list
/// maintained in each attached body. Each contact has two contact
/// nodes, one for each attached body.
type ContactEdge struct {
	Other   *Body        ///< provides quick access to the other body attached.
	Contact *Contact     ///< the contact
	Prev    *ContactEdge ///< the previous contact edge in the body's contact list
	Next    *ContactEdge ///< the next contact edge in the body's contact list
}

var Contact_Flags = struct {
	// Set when the shapes are touching.
	E_touchingFlag uint32

	// This contact can be disabled (by user)
	E_enabledFlag uint32

	// This contact needs filtering because a fixture filter was changed.
	E_filterFlag uint32

	// Both bodies carry a grid partition; overlap is checked against the
	// exact shape boxes instead of the huge fat boxes.
	E_gridFlag uint32

	// This contact is skipped when islands are built.
	E_islandExemptFlag uint32
}{
	E_touchingFlag:     0x0001,
	E_enabledFlag:      0x0002,
	E_filterFlag:       0x0004,
	E_gridFlag:         0x0008,
	E_islandExemptFlag: 0x0010,
}

/// The touching transition computed by an update, derived from the previous
/// and the current touching state. Never stored on the contact.
var ContactStatus = struct {
	E_noContact     uint8
	E_startTouching uint8
	E_touching      uint8
	E_endTouching   uint8
}{
	E_noContact:     0,
	E_startTouching: 1,
	E_touching:      2,
	E_endTouching:   3,
}

// The table mapping a canonical shape-kind pair to its algorithm tag.
// Cells left at E_notSupported are pairs that can never collide.
var s_registers [][]uint8
var s_initialized = false

/// The class manages contact between two shapes. A contact exists for each overlapping
/// AABB in the broad-phase (except if filtered). Therefore a contact object may exist
/// that has no contact points.
type Contact struct {
	Type uint8

	Flags uint32

	// Registry pointers.
	Prev *Contact
	Next *Contact

	// Nodes for connecting bodies.
	NodeA ContactEdge
	NodeB ContactEdge

	FixtureA *Fixture
	FixtureB *Fixture

	ChildIndexA int
	ChildIndexB int

	Manifold Manifold

	Friction     float64
	Restitution  float64
	TangentSpeed float64

	// Slot in the owning pool's arena.
	PoolIndex int
}

func (contact *Contact) GetManifold() *Manifold {
	return &contact.Manifold
}

func (contact *Contact) GetWorldManifold(worldManifold *WorldManifold) {
	bodyA := contact.FixtureA.GetBody()
	bodyB := contact.FixtureB.GetBody()
	shapeA := contact.FixtureA.GetShape()
	shapeB := contact.FixtureB.GetShape()

	worldManifold.Initialize(&contact.Manifold, bodyA.GetTransform(), shapeA.GetRadius(), bodyB.GetTransform(), shapeB.GetRadius())
}

/// The first manifold point in world coordinates, or the zero vector when
/// the manifold is empty.
func (contact *Contact) GetWorldPoint() Vec2 {
	if contact.Manifold.PointCount == 0 {
		return MakeVec2(0, 0)
	}

	var worldManifold WorldManifold
	contact.GetWorldManifold(&worldManifold)
	return worldManifold.Points[0]
}

func (contact Contact) GetType() uint8 {
	return contact.Type
}

func (contact Contact) GetFixtureA() *Fixture {
	return contact.FixtureA
}

func (contact Contact) GetFixtureB() *Fixture {
	return contact.FixtureB
}

func (contact Contact) GetChildIndexA() int {
	return contact.ChildIndexA
}

func (contact Contact) GetChildIndexB() int {
	return contact.ChildIndexB
}

func (contact Contact) GetNext() *Contact {
	return contact.Next
}

func (contact Contact) GetPrev() *Contact {
	return contact.Prev
}

func (contact Contact) GetFriction() float64 {
	return contact.Friction
}

func (contact *Contact) SetFriction(friction float64) {
	contact.Friction = friction
}

func (contact *Contact) ResetFriction() {
	contact.Friction = MixFriction(contact.FixtureA.Friction, contact.FixtureB.Friction)
}

func (contact Contact) GetRestitution() float64 {
	return contact.Restitution
}

func (contact *Contact) SetRestitution(restitution float64) {
	contact.Restitution = restitution
}

func (contact *Contact) ResetRestitution() {
	contact.Restitution = MixRestitution(contact.FixtureA.Restitution, contact.FixtureB.Restitution)
}

func (contact Contact) GetTangentSpeed() float64 {
	return contact.TangentSpeed
}

func (contact *Contact) SetTangentSpeed(speed float64) {
	contact.TangentSpeed = speed
}

func (contact *Contact) SetEnabled(flag bool) {
	if flag {
		contact.Flags |= Contact_Flags.E_enabledFlag
	} else {
		contact.Flags &= ^Contact_Flags.E_enabledFlag
	}
}

func (contact Contact) IsEnabled() bool {
	return (contact.Flags & Contact_Flags.E_enabledFlag) == Contact_Flags.E_enabledFlag
}

func (contact Contact) IsTouching() bool {
	return (contact.Flags & Contact_Flags.E_touchingFlag) == Contact_Flags.E_touchingFlag
}

/// A contact is hard when both fixtures are solid, non-sensor shapes. Only
/// hard contacts produce manifold points for the solver; everything else
/// reduces to a boolean overlap.
func (contact Contact) IsHard() bool {
	return contact.FixtureA.Hard && contact.FixtureA.Sensor == false &&
		contact.FixtureB.Hard && contact.FixtureB.Sensor == false
}

func (contact *Contact) FlagForFiltering() {
	contact.Flags |= Contact_Flags.E_filterFlag
}

func ContactInitializeRegisters() {
	s_registers = make([][]uint8, Shape_Type.E_typeCount)
	for i := 0; i < int(Shape_Type.E_typeCount); i++ {
		s_registers[i] = make([]uint8, Shape_Type.E_typeCount)
	}

	AddType(ContactType.E_circles, Shape_Type.E_circle, Shape_Type.E_circle)
	AddType(ContactType.E_polygonAndCircle, Shape_Type.E_polygon, Shape_Type.E_circle)
	AddType(ContactType.E_polygons, Shape_Type.E_polygon, Shape_Type.E_polygon)
	AddType(ContactType.E_edgeAndCircle, Shape_Type.E_edge, Shape_Type.E_circle)
	AddType(ContactType.E_edgeAndPolygon, Shape_Type.E_edge, Shape_Type.E_polygon)
	AddType(ContactType.E_chainAndCircle, Shape_Type.E_chain, Shape_Type.E_circle)
	AddType(ContactType.E_chainAndPolygon, Shape_Type.E_chain, Shape_Type.E_polygon)
}

func AddType(tag uint8, type1 uint8, type2 uint8) {
	Assert(type1 < Shape_Type.E_typeCount)
	Assert(type2 < Shape_Type.E_typeCount)

	s_registers[type1][type2] = tag
	s_registers[type2][type1] = tag
}

/// Creates a contact for a fixture pair from the pool. Operand order is
/// fixed here and never re-derived: the higher shape kind becomes A, except
/// an edge paired with a polygon keeps the edge as A because the
/// edge/polygon algorithm only supports that orientation.
func ContactCreate(pool *ContactPool, fixtureA *Fixture, indexA int, fixtureB *Fixture, indexB int) *Contact {

	if s_initialized == false {
		ContactInitializeRegisters()
		s_initialized = true
	}

	typeA := fixtureA.GetType()
	typeB := fixtureB.GetType()

	Assert(typeA < Shape_Type.E_typeCount)
	Assert(typeB < Shape_Type.E_typeCount)

	swap := false
	if typeA == Shape_Type.E_polygon && typeB == Shape_Type.E_edge {
		swap = true
	} else if typeA < typeB && !(typeA == Shape_Type.E_edge && typeB == Shape_Type.E_polygon) {
		swap = true
	}

	if swap {
		fixtureA, fixtureB = fixtureB, fixtureA
		indexA, indexB = indexB, indexA
		typeA, typeB = typeB, typeA
	}

	tag := s_registers[typeA][typeB]

	// Edge and edge or chain and chain pairs never collide.
	Assert(tag != ContactType.E_notSupported)

	contact := pool.Acquire()

	contact.Type = tag
	contact.Flags = Contact_Flags.E_enabledFlag

	contact.FixtureA = fixtureA
	contact.FixtureB = fixtureB

	contact.ChildIndexA = indexA
	contact.ChildIndexB = indexB

	contact.Manifold.PointCount = 0

	contact.Friction = MixFriction(fixtureA.Friction, fixtureB.Friction)
	contact.Restitution = MixRestitution(fixtureA.Restitution, fixtureB.Restitution)
	contact.TangentSpeed = 0.0

	return contact
}

/// Runs the narrow-phase algorithm selected at creation, writing into the
/// given manifold. Chain collision is declared in the dispatch table but
/// not implemented; reaching it is a programming error.
func (contact *Contact) Evaluate(manifold *Manifold, xfA Transform, xfB Transform) {
	switch contact.Type {
	case ContactType.E_circles:
		CollideCircles(
			manifold,
			contact.FixtureA.GetShape().(*CircleShape), xfA,
			contact.FixtureB.GetShape().(*CircleShape), xfB,
		)
	case ContactType.E_polygonAndCircle:
		CollidePolygonAndCircle(
			manifold,
			contact.FixtureA.GetShape().(*PolygonShape), xfA,
			contact.FixtureB.GetShape().(*CircleShape), xfB,
		)
	case ContactType.E_polygons:
		CollidePolygons(
			manifold,
			contact.FixtureA.GetShape().(*PolygonShape), xfA,
			contact.FixtureB.GetShape().(*PolygonShape), xfB,
		)
	case ContactType.E_edgeAndCircle:
		CollideEdgeAndCircle(
			manifold,
			contact.FixtureA.GetShape().(*EdgeShape), xfA,
			contact.FixtureB.GetShape().(*CircleShape), xfB,
		)
	case ContactType.E_edgeAndPolygon:
		CollideEdgeAndPolygon(
			manifold,
			contact.FixtureA.GetShape().(*EdgeShape), xfA,
			contact.FixtureB.GetShape().(*PolygonShape), xfB,
		)
	case ContactType.E_chainAndCircle:
		Assert(false)
	case ContactType.E_chainAndPolygon:
		Assert(false)
	default:
		Assert(false)
	}
}

// Update the contact manifold and touching status and report the touching
// transition. Waking the bodies is left to the caller so updates can run
// in parallel; nothing outside this contact is written here.
// Note: do not assume the fixture AABBs are overlapping or are valid.
func (contact *Contact) Update(xfA Transform, xfB Transform) (uint8, bool) {
	oldManifold := contact.Manifold

	// Re-enable this contact.
	contact.Flags |= Contact_Flags.E_enabledFlag

	touching := false
	wasTouching := (contact.Flags & Contact_Flags.E_touchingFlag) == Contact_Flags.E_touchingFlag

	sensor := contact.IsHard() == false

	if sensor {
		var overlap Manifold
		contact.Evaluate(&overlap, xfA, xfB)
		touching = overlap.PointCount > 0

		// Sensors don't generate manifolds.
		contact.Manifold.PointCount = 0
	} else {
		contact.Evaluate(&contact.Manifold, xfA, xfB)
		touching = contact.Manifold.PointCount > 0

		// Match old contact ids to new contact ids and copy the
		// stored impulses to warm start the solver.
		for i := 0; i < contact.Manifold.PointCount; i++ {
			mp2 := &contact.Manifold.Points[i]
			mp2.NormalImpulse = 0.0
			mp2.TangentImpulse = 0.0
			id2 := mp2.Id

			for j := 0; j < oldManifold.PointCount; j++ {
				mp1 := &oldManifold.Points[j]

				if mp1.Id.Key() == id2.Key() {
					mp2.NormalImpulse = mp1.NormalImpulse
					mp2.TangentImpulse = mp1.TangentImpulse
					break
				}
			}
		}
	}

	if touching {
		contact.Flags |= Contact_Flags.E_touchingFlag
	} else {
		contact.Flags &= ^Contact_Flags.E_touchingFlag
	}

	wake := touching != wasTouching && sensor == false

	var status uint8
	switch {
	case touching && wasTouching == false:
		status = ContactStatus.E_startTouching
	case touching:
		status = ContactStatus.E_touching
	case wasTouching:
		status = ContactStatus.E_endTouching
	default:
		status = ContactStatus.E_noContact
	}

	return status, wake
}
