package phys2d

/// The body type, stored as flags so related types can be tested in one mask.
/// static: never moves, never wakes for contact purposes
/// kinematic: moved directly by the user, ignores impulses
/// kinematicController: user-steered mover (e.g. a character); collides with
/// anything except another kinematicController
/// dynamic: fully simulated
var BodyType = struct {
	E_staticBody              uint8
	E_kinematicBody           uint8
	E_kinematicControllerBody uint8
	E_dynamicBody             uint8
}{
	E_staticBody:              0x01,
	E_kinematicBody:           0x02,
	E_kinematicControllerBody: 0x04,
	E_dynamicBody:             0x08,
}

/// A body definition holds all the data needed to construct a rigid body.
/// You can safely re-use body definitions. Shapes are added to a body after construction.
type BodyDef struct {

	/// The body type: static, kinematic, kinematicController, or dynamic.
	Type uint8

	/// The world position of the body. Avoid creating bodies at the origin
	/// since this can lead to many overlapping shapes.
	Position Vec2

	/// The world angle of the body in radians.
	Angle float64

	/// The linear velocity of the body's origin in world co-ordinates.
	LinearVelocity Vec2

	/// The angular velocity of the body.
	AngularVelocity float64

	/// Is this body initially awake or sleeping?
	Awake bool

	/// Does this body start out collidable?
	CanCollide bool

	/// Use this to store application specific body data.
	UserData interface{}
}

/// This constructor sets the body definition default values.
func MakeBodyDef() BodyDef {
	return BodyDef{
		UserData:        nil,
		Position:        MakeVec2(0, 0),
		Angle:           0.0,
		LinearVelocity:  MakeVec2(0, 0),
		AngularVelocity: 0.0,
		Awake:           true,
		Type:            BodyType.E_staticBody,
		CanCollide:      true,
	}
}

func NewBodyDef() *BodyDef {
	res := MakeBodyDef()
	return &res
}

var Body_Flags = struct {
	E_awakeFlag      uint32
	E_canCollideFlag uint32
}{
	E_awakeFlag:      0x0001,
	E_canCollideFlag: 0x0002,
}

type Body struct {
	Type uint8

	Flags uint32

	Xf Transform // the body origin transform, in world coordinates

	LinearVelocity  Vec2
	AngularVelocity float64

	World *World
	Prev  *Body
	Next  *Body

	/// The spatial map this body currently belongs to, or nil.
	Map *PhysicsMap

	/// The partition holding this body's proxies, or nil.
	Broadphase *Broadphase

	/// Non-nil when this body carries a grid partition of its own.
	Grid *Broadphase

	FixtureList  *Fixture // linked list
	FixtureCount int

	JointList   *JointEdge   // linked list
	ContactList *ContactEdge // linked list

	UserData interface{}
}

func NewBody(bd *BodyDef, world *World) *Body {
	Assert(bd.Position.IsValid())
	Assert(bd.LinearVelocity.IsValid())
	Assert(IsValid(bd.Angle))
	Assert(IsValid(bd.AngularVelocity))

	body := &Body{}

	body.Flags = 0

	if bd.Awake {
		body.Flags |= Body_Flags.E_awakeFlag
	}

	if bd.CanCollide {
		body.Flags |= Body_Flags.E_canCollideFlag
	}

	body.World = world

	body.Xf.P = bd.Position
	body.Xf.Q.Set(bd.Angle)

	body.JointList = nil
	body.ContactList = nil
	body.Prev = nil
	body.Next = nil

	body.LinearVelocity = bd.LinearVelocity
	body.AngularVelocity = bd.AngularVelocity

	body.Type = bd.Type

	body.UserData = bd.UserData

	body.FixtureList = nil
	body.FixtureCount = 0

	return body
}

func (body Body) GetType() uint8 {
	return body.Type
}

func (body Body) GetTransform() Transform {
	return body.Xf
}

func (body Body) GetPosition() Vec2 {
	return body.Xf.P
}

func (body Body) GetAngle() float64 {
	return body.Xf.Q.GetAngle()
}

func (body Body) GetWorldPoint(localPoint Vec2) Vec2 {
	return TransformVec2Mul(body.Xf, localPoint)
}

func (body Body) GetWorldVector(localVector Vec2) Vec2 {
	return RotVec2Mul(body.Xf.Q, localVector)
}

func (body Body) GetLocalPoint(worldPoint Vec2) Vec2 {
	return TransformVec2MulT(body.Xf, worldPoint)
}

func (body Body) GetLocalVector(worldVector Vec2) Vec2 {
	return RotVec2MulT(body.Xf.Q, worldVector)
}

func (body *Body) SetLinearVelocity(v Vec2) {
	if body.Type == BodyType.E_staticBody {
		return
	}

	if Vec2Dot(v, v) > 0.0 {
		body.SetAwake(true)
	}

	body.LinearVelocity = v
}

func (body Body) GetLinearVelocity() Vec2 {
	return body.LinearVelocity
}

func (body *Body) SetAngularVelocity(w float64) {
	if body.Type == BodyType.E_staticBody {
		return
	}

	if w*w > 0.0 {
		body.SetAwake(true)
	}

	body.AngularVelocity = w
}

func (body Body) GetAngularVelocity() float64 {
	return body.AngularVelocity
}

func (body *Body) SetAwake(flag bool) {
	if flag {
		body.Flags |= Body_Flags.E_awakeFlag
	} else {
		body.Flags &= ^Body_Flags.E_awakeFlag
		body.LinearVelocity.SetZero()
		body.AngularVelocity = 0.0
	}
}

func (body Body) IsAwake() bool {
	return (body.Flags & Body_Flags.E_awakeFlag) == Body_Flags.E_awakeFlag
}

/// A body can collide when it is enabled for collision and has at least
/// one fixture to collide with.
func (body Body) CanCollide() bool {
	return (body.Flags&Body_Flags.E_canCollideFlag) != 0 && body.FixtureCount > 0
}

func (body Body) IsGrid() bool {
	return body.Grid != nil
}

func (body Body) GetFixtureList() *Fixture {
	return body.FixtureList
}

func (body Body) GetJointList() *JointEdge {
	return body.JointList
}

/// Get the list of all contacts attached to this body.
/// @warning this list changes during the time step and you may
/// miss some collisions if you don't subscribe to collide events.
func (body Body) GetContactList() *ContactEdge {
	return body.ContactList
}

func (body Body) GetNext() *Body {
	return body.Next
}

func (body *Body) SetUserData(data interface{}) {
	body.UserData = data
}

func (body Body) GetUserData() interface{} {
	return body.UserData
}

func (body Body) GetWorld() *World {
	return body.World
}

func (body Body) GetMap() *PhysicsMap {
	return body.Map
}

func (body *Body) SetType(bodytype uint8) {

	if body.Type == bodytype {
		return
	}

	body.Type = bodytype

	if body.Type == BodyType.E_staticBody {
		body.LinearVelocity.SetZero()
		body.AngularVelocity = 0.0
	}

	body.SetAwake(true)

	// Delete the attached contacts.
	ce := body.ContactList
	for ce != nil {
		ce0 := ce
		ce = ce.Next
		body.World.ContactManager.Destroy(ce0.Contact)
	}

	body.ContactList = nil

	// Touch the proxies so that new contacts will be created (when appropriate)
	if body.Broadphase != nil {
		for f := body.FixtureList; f != nil; f = f.Next {
			proxyCount := f.ProxyCount
			for i := 0; i < proxyCount; i++ {
				body.Broadphase.TouchProxy(f.Proxies[i].ProxyId)
			}
		}
	}
}

func (body *Body) CreateFixtureFromDef(def *FixtureDef) *Fixture {

	fixture := NewFixture()
	fixture.Create(body, def)

	if (body.Flags&Body_Flags.E_canCollideFlag) != 0 && body.Broadphase != nil {
		localXf := TransformMulT(body.Broadphase.Xf, body.Xf)
		fixture.CreateProxies(body.Broadphase, localXf)
	}

	fixture.Next = body.FixtureList
	body.FixtureList = fixture
	body.FixtureCount++

	fixture.Body = body

	// The fresh proxies sit in the move buffer, so the pair pass picks the
	// fixture up on the next step.

	return fixture
}

func (body *Body) CreateFixture(shape ShapeInterface) *Fixture {

	def := MakeFixtureDef()
	def.Shape = shape

	return body.CreateFixtureFromDef(&def)
}

func (body *Body) DestroyFixture(fixture *Fixture) {

	if fixture == nil {
		return
	}

	Assert(fixture.Body == body)

	// Remove the fixture from this body's singly linked list.
	Assert(body.FixtureCount > 0)
	node := &body.FixtureList
	found := false
	for *node != nil {
		if *node == fixture {
			*node = fixture.Next
			found = true
			break
		}

		node = &(*node).Next
	}

	// You tried to remove a shape that is not attached to this body.
	Assert(found)

	// Destroy any contacts associated with the fixture.
	edge := body.ContactList
	for edge != nil {
		c := edge.Contact
		edge = edge.Next

		fixtureA := c.GetFixtureA()
		fixtureB := c.GetFixtureB()

		if fixture == fixtureA || fixture == fixtureB {
			// This destroys the contact and removes it from
			// this body's contact list.
			body.World.ContactManager.Destroy(c)
		}
	}

	if (body.Flags&Body_Flags.E_canCollideFlag) != 0 && body.Broadphase != nil {
		fixture.DestroyProxies(body.Broadphase)
	}

	fixture.Body = nil
	fixture.Next = nil
	fixture.Destroy()

	body.FixtureCount--
}

/// Whether contacts between this body and other should exist at all.
/// Pairs where neither side can respond to a collision are skipped,
/// as are pairs suppressed by a connecting joint.
func (body Body) ShouldCollide(other *Body) bool {

	// Two resting bodies can never usefully collide. A kinematic
	// controller still collides with static and kinematic bodies.
	resting := BodyType.E_staticBody | BodyType.E_kinematicBody
	if (body.Type&resting) != 0 && (other.Type&resting) != 0 {
		return false
	}

	if body.Type == BodyType.E_kinematicControllerBody && other.Type == BodyType.E_kinematicControllerBody {
		return false
	}

	// Does a joint prevent collision?
	for jn := body.JointList; jn != nil; jn = jn.Next {
		if jn.Other == other {
			if jn.Joint.IsCollideConnected() == false {
				return false
			}
		}
	}

	return true
}

func (body *Body) SetTransform(position Vec2, angle float64) {

	body.Xf.Q.Set(angle)
	body.Xf.P = position

	if body.Grid != nil && body.Map != nil {
		body.Map.SynchronizeGrid(body)
	}

	body.SynchronizeFixtures()
}

func (body *Body) SynchronizeFixtures() {
	if body.Broadphase == nil {
		return
	}

	localXf := TransformMulT(body.Broadphase.Xf, body.Xf)
	for f := body.FixtureList; f != nil; f = f.Next {
		f.Synchronize(body.Broadphase, localXf, localXf)
	}
}

func (body *Body) SetCanCollide(flag bool) {

	if flag == ((body.Flags & Body_Flags.E_canCollideFlag) != 0) {
		return
	}

	if flag {
		body.Flags |= Body_Flags.E_canCollideFlag

		// Create all proxies.
		if body.Broadphase != nil {
			localXf := TransformMulT(body.Broadphase.Xf, body.Xf)
			for f := body.FixtureList; f != nil; f = f.Next {
				f.CreateProxies(body.Broadphase, localXf)
			}
		}

		// Contacts are created the next time step.
	} else {
		body.Flags &= ^Body_Flags.E_canCollideFlag

		// Destroy all proxies.
		if body.Broadphase != nil {
			for f := body.FixtureList; f != nil; f = f.Next {
				f.DestroyProxies(body.Broadphase)
			}
		}

		// Destroy the attached contacts.
		ce := body.ContactList
		for ce != nil {
			ce0 := ce
			ce = ce.Next
			body.World.ContactManager.Destroy(ce0.Contact)
		}

		body.ContactList = nil
	}
}
