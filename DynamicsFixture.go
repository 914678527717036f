package phys2d

/// This holds contact filtering data.
type Filter struct {
	/// The collision layer bits. This states the categories this fixture occupies.
	Layer uint32

	/// The collision mask bits. This states the categories this fixture
	/// collides with.
	Mask uint32
}

func MakeFilter() Filter {
	return Filter{
		Layer: 0x00000001,
		Mask:  0xFFFFFFFF,
	}
}

/// Two fixtures are allowed to pair when either mask accepts the other's
/// layer. A fixture with an empty mask can still be collided with.
func ShouldCollideFilters(filterA Filter, filterB Filter) bool {
	return (filterA.Mask&filterB.Layer) != 0 || (filterB.Mask&filterA.Layer) != 0
}

/// A fixture definition is used to create a fixture. This class defines an
/// abstract fixture definition. You can reuse fixture definitions safely.
type FixtureDef struct {

	/// The shape, this must be set. The shape will be cloned, so you
	/// can create the shape on the stack.
	Shape ShapeInterface

	/// Use this to store application specific fixture data.
	UserData interface{}

	/// The friction coefficient, usually in the range [0,1].
	Friction float64

	/// The restitution (elasticity) usually in the range [0,1].
	Restitution float64

	/// A sensor shape collects contact information but never generates a collision
	/// response.
	IsSensor bool

	/// A hard fixture is solid. Contacts where either fixture is non-hard
	/// only report overlap and never yield solvable contact points.
	Hard bool

	/// Contact filtering data.
	Filter Filter
}

/// The constructor sets the default fixture definition values.
func MakeFixtureDef() FixtureDef {
	return FixtureDef{
		Shape:       nil,
		UserData:    nil,
		Friction:    0.2,
		Restitution: 0.0,
		IsSensor:    false,
		Hard:        true,
		Filter:      MakeFilter(),
	}
}

/// This proxy is used internally to connect fixtures to the broad-phase.
/// The AABB is kept in the frame of the partition holding the proxy.
type FixtureProxy struct {
	Aabb       AABB
	Fixture    *Fixture
	ChildIndex int
	ProxyId    int
}

/// A fixture is used to attach a shape to a body for collision detection. A fixture
/// inherits its transform from its parent. Fixtures hold additional non-geometric data
/// such as friction, collision filters, etc.
/// Fixtures are created via Body.CreateFixture.
/// @warning you cannot reuse fixtures.
type Fixture struct {
	Next *Fixture
	Body *Body

	Shape ShapeInterface

	Friction    float64
	Restitution float64

	Proxies    []FixtureProxy
	ProxyCount int

	Filter Filter

	Sensor bool
	Hard   bool

	/// Live contacts keyed by the other fixture. There is at most one
	/// contact per fixture pair.
	Contacts map[*Fixture]*Contact

	UserData interface{}
}

func MakeFixture() Fixture {
	return Fixture{
		UserData:   nil,
		Body:       nil,
		Next:       nil,
		Proxies:    nil,
		ProxyCount: 0,
		Shape:      nil,
		Filter:     MakeFilter(),
		Hard:       true,
	}
}

func NewFixture() *Fixture {
	res := MakeFixture()
	return &res
}

func (fix Fixture) GetType() uint8 {
	return fix.Shape.GetType()
}

func (fix Fixture) GetShape() ShapeInterface {
	return fix.Shape
}

func (fix Fixture) IsSensor() bool {
	return fix.Sensor
}

func (fix Fixture) IsHard() bool {
	return fix.Hard
}

func (fix Fixture) GetFilterData() Filter {
	return fix.Filter
}

func (fix Fixture) GetUserData() interface{} {
	return fix.UserData
}

func (fix *Fixture) SetUserData(data interface{}) {
	fix.UserData = data
}

func (fix Fixture) GetBody() *Body {
	return fix.Body
}

func (fix Fixture) GetNext() *Fixture {
	return fix.Next
}

func (fix Fixture) GetFriction() float64 {
	return fix.Friction
}

func (fix *Fixture) SetFriction(friction float64) {
	fix.Friction = friction
}

func (fix Fixture) GetRestitution() float64 {
	return fix.Restitution
}

func (fix *Fixture) SetRestitution(restitution float64) {
	fix.Restitution = restitution
}

func (fix Fixture) TestPoint(p Vec2) bool {
	return fix.Shape.TestPoint(fix.Body.GetTransform(), p)
}

func (fix Fixture) RayCast(output *RayCastOutput, input RayCastInput, childIndex int) bool {
	return fix.Shape.RayCast(output, input, fix.Body.GetTransform(), childIndex)
}

/// Get the fixture's AABB, in partition-local coordinates. This AABB may be enlarged
/// and/or stale. If you need a more accurate AABB, compute it using the shape and
/// the body transform.
func (fix Fixture) GetAABB(childIndex int) AABB {
	Assert(0 <= childIndex && childIndex < fix.ProxyCount)
	return fix.Proxies[childIndex].Aabb
}

func (fix *Fixture) Create(body *Body, def *FixtureDef) {
	fix.UserData = def.UserData
	fix.Friction = def.Friction
	fix.Restitution = def.Restitution

	fix.Body = body
	fix.Next = nil

	fix.Filter = def.Filter

	fix.Sensor = def.IsSensor
	fix.Hard = def.Hard

	fix.Shape = def.Shape.Clone()

	fix.Contacts = make(map[*Fixture]*Contact)

	// Reserve proxy space
	childCount := fix.Shape.GetChildCount()
	fix.Proxies = make([]FixtureProxy, childCount)

	for i := 0; i < childCount; i++ {
		fix.Proxies[i].Fixture = nil
		fix.Proxies[i].ProxyId = E_nullProxy
	}
	fix.ProxyCount = 0
}

func (fix *Fixture) Destroy() {

	// The proxies and contacts must be destroyed before calling this.
	Assert(fix.ProxyCount == 0)
	Assert(len(fix.Contacts) == 0)

	fix.Proxies = nil
	fix.Contacts = nil
	fix.Shape = nil
}

/// Create proxies in a partition. xf must be the body transform expressed
/// in the partition's frame.
func (fix *Fixture) CreateProxies(broadPhase *Broadphase, xf Transform) {
	Assert(fix.ProxyCount == 0)

	fix.ProxyCount = fix.Shape.GetChildCount()

	for i := 0; i < fix.ProxyCount; i++ {
		proxy := &fix.Proxies[i]
		fix.Shape.ComputeAABB(&proxy.Aabb, xf, i)
		proxy.ProxyId = broadPhase.CreateProxy(proxy.Aabb, proxy)
		proxy.Fixture = fix
		proxy.ChildIndex = i
	}
}

func (fix *Fixture) DestroyProxies(broadPhase *Broadphase) {
	// Destroy proxies in the broad-phase.
	for i := 0; i < fix.ProxyCount; i++ {
		proxy := &fix.Proxies[i]
		broadPhase.DestroyProxy(proxy.ProxyId)
		proxy.ProxyId = E_nullProxy
	}

	fix.ProxyCount = 0
}

func (fix *Fixture) Synchronize(broadPhase *Broadphase, transform1 Transform, transform2 Transform) {

	if fix.ProxyCount == 0 {
		return
	}

	for i := 0; i < fix.ProxyCount; i++ {

		proxy := &fix.Proxies[i]

		// Compute an AABB that covers the swept shape (may miss some rotation effect).
		aabb1 := MakeAABB()
		aabb2 := MakeAABB()
		fix.Shape.ComputeAABB(&aabb1, transform1, proxy.ChildIndex)
		fix.Shape.ComputeAABB(&aabb2, transform2, proxy.ChildIndex)

		proxy.Aabb.CombineTwoInPlace(aabb1, aabb2)

		displacement := Vec2Sub(transform2.P, transform1.P)

		broadPhase.MoveProxy(proxy.ProxyId, proxy.Aabb, displacement)
	}
}

func (fix *Fixture) SetFilterData(filter Filter) {
	fix.Filter = filter
	fix.Refilter()
}

/// Flag every contact on this fixture for re-filtering and re-pair the
/// proxies. Call after changing the filter data.
func (fix *Fixture) Refilter() {

	if fix.Body == nil {
		return
	}

	// Flag associated contacts for filtering.
	edge := fix.Body.GetContactList()
	for edge != nil {
		contact := edge.Contact
		fixtureA := contact.GetFixtureA()
		fixtureB := contact.GetFixtureB()
		if fixtureA == fix || fixtureB == fix {
			contact.FlagForFiltering()
		}

		edge = edge.Next
	}

	broadPhase := fix.Body.Broadphase

	if broadPhase == nil {
		return
	}

	// Touch each proxy so that new pairs may be created
	for i := 0; i < fix.ProxyCount; i++ {
		broadPhase.TouchProxy(fix.Proxies[i].ProxyId)
	}
}

func (fix *Fixture) SetSensor(sensor bool) {
	if sensor != fix.Sensor {
		fix.Body.SetAwake(true)
		fix.Sensor = sensor
	}
}

func (fix *Fixture) SetHard(hard bool) {
	if hard != fix.Hard {
		fix.Body.SetAwake(true)
		fix.Hard = hard
	}
}
