package phys2d_test

import (
	"math"
	"testing"

	"github.com/lapatison/phys2d"
)

func makeTestWorld() (*phys2d.World, *phys2d.PhysicsMap) {
	world := phys2d.NewWorld()
	m := world.CreateMap()
	return world, m
}

func makeBody(world *phys2d.World, m *phys2d.PhysicsMap, bodyType uint8, x float64, y float64) *phys2d.Body {
	bd := phys2d.MakeBodyDef()
	bd.Type = bodyType
	bd.Position.Set(x, y)

	body := world.CreateBody(&bd)
	if m != nil {
		m.AddBody(body)
	}

	return body
}

func addCircleFixture(body *phys2d.Body, radius float64) *phys2d.Fixture {
	shape := phys2d.MakeCircleShape()
	shape.Radius = radius
	return body.CreateFixture(&shape)
}

func addBoxFixture(body *phys2d.Body, hx float64, hy float64) *phys2d.Fixture {
	shape := phys2d.MakePolygonShape()
	shape.SetAsBox(hx, hy)
	return body.CreateFixture(&shape)
}

func addEdgeFixture(body *phys2d.Body, v1 phys2d.Vec2, v2 phys2d.Vec2) *phys2d.Fixture {
	shape := phys2d.MakeEdgeShape()
	shape.Set(v1, v2)
	return body.CreateFixture(&shape)
}

func addChainFixture(body *phys2d.Body, vertices []phys2d.Vec2) *phys2d.Fixture {
	shape := phys2d.MakeChainShape()
	shape.CreateChain(vertices, len(vertices))
	return body.CreateFixture(&shape)
}

func xfAt(x float64, y float64) phys2d.Transform {
	return phys2d.MakeTransformByPositionAndRotation(
		phys2d.MakeVec2(x, y), phys2d.MakeRotFromAngle(0.0),
	)
}

func TestContactPoolRoundTrip(t *testing.T) {
	pool := phys2d.NewContactPool()

	if pool.GetCapacity() != phys2d.ContactPoolPrewarm {
		t.Fatalf("fresh pool capacity: got %v, want %v", pool.GetCapacity(), phys2d.ContactPoolPrewarm)
	}
	if pool.GetFreeCount() != pool.GetCapacity() {
		t.Fatalf("fresh pool free count: got %v, want %v", pool.GetFreeCount(), pool.GetCapacity())
	}

	// Drain the prewarmed records and force one growth.
	records := make(map[*phys2d.Contact]bool)
	for i := 0; i < phys2d.ContactPoolPrewarm+1; i++ {
		c := pool.Acquire()
		if records[c] {
			t.Fatalf("pool handed out the same record twice")
		}
		records[c] = true
	}

	if pool.GetCapacity() != phys2d.ContactPoolPrewarm+1 {
		t.Fatalf("grown pool capacity: got %v, want %v", pool.GetCapacity(), phys2d.ContactPoolPrewarm+1)
	}
	if pool.GetFreeCount() != 0 {
		t.Fatalf("drained pool free count: got %v, want 0", pool.GetFreeCount())
	}

	for c := range records {
		pool.Release(c)
	}
	if pool.GetFreeCount() != pool.GetCapacity() {
		t.Fatalf("refilled pool free count: got %v, want %v", pool.GetFreeCount(), pool.GetCapacity())
	}
}

func TestContactPoolReleaseClearsRecord(t *testing.T) {
	world, _ := makeTestWorld()

	bodyA := makeBody(world, nil, phys2d.BodyType.E_dynamicBody, 0.0, 0.0)
	bodyB := makeBody(world, nil, phys2d.BodyType.E_dynamicBody, 10.0, 0.0)

	fixtureA := addCircleFixture(bodyA, 0.5)
	fixtureB := addCircleFixture(bodyB, 0.5)

	pool := phys2d.NewContactPool()
	c := phys2d.ContactCreate(pool, fixtureA, 0, fixtureB, 0)

	// Dirty the record the way a lived-in contact would be.
	c.Manifold.PointCount = 1
	c.Manifold.Points[0].NormalImpulse = 2.0
	c.SetTangentSpeed(1.5)

	pool.Release(c)

	if c.GetFixtureA() != nil || c.GetFixtureB() != nil {
		t.Fatalf("released record still references fixtures")
	}
	if c.GetManifold().PointCount != 0 {
		t.Fatalf("released record keeps manifold points: %v", c.GetManifold().PointCount)
	}
	if c.GetFriction() != 0.0 || c.GetRestitution() != 0.0 || c.GetTangentSpeed() != 0.0 {
		t.Fatalf("released record keeps material values")
	}

	// The freed slot is handed out first.
	if pool.Acquire() != c {
		t.Fatalf("freed record was not reused first")
	}
}

func TestContactCreateCanonicalOrder(t *testing.T) {
	world, _ := makeTestWorld()

	circleBody := makeBody(world, nil, phys2d.BodyType.E_staticBody, 0.0, 0.0)
	polyBody := makeBody(world, nil, phys2d.BodyType.E_staticBody, 10.0, 0.0)
	edgeBody := makeBody(world, nil, phys2d.BodyType.E_staticBody, 20.0, 0.0)

	circleFix := addCircleFixture(circleBody, 0.5)
	polyFix := addBoxFixture(polyBody, 0.5, 0.5)
	edgeFix := addEdgeFixture(edgeBody, phys2d.MakeVec2(-1.0, 0.0), phys2d.MakeVec2(1.0, 0.0))

	pool := phys2d.NewContactPool()

	tests := []struct {
		name  string
		first *phys2d.Fixture
		other *phys2d.Fixture
		wantA *phys2d.Fixture
		tag   uint8
	}{
		{"circle vs polygon", circleFix, polyFix, polyFix, phys2d.ContactType.E_polygonAndCircle},
		{"polygon vs circle", polyFix, circleFix, polyFix, phys2d.ContactType.E_polygonAndCircle},
		{"circle vs edge", circleFix, edgeFix, edgeFix, phys2d.ContactType.E_edgeAndCircle},
		{"edge vs circle", edgeFix, circleFix, edgeFix, phys2d.ContactType.E_edgeAndCircle},
		// The edge keeps slot A in both incoming orders.
		{"edge vs polygon", edgeFix, polyFix, edgeFix, phys2d.ContactType.E_edgeAndPolygon},
		{"polygon vs edge", polyFix, edgeFix, edgeFix, phys2d.ContactType.E_edgeAndPolygon},
	}

	for _, tt := range tests {
		c := phys2d.ContactCreate(pool, tt.first, 0, tt.other, 0)
		if c.GetFixtureA() != tt.wantA {
			t.Errorf("%v: wrong fixture in slot A", tt.name)
		}
		if c.GetType() != tt.tag {
			t.Errorf("%v: algorithm tag: got %v, want %v", tt.name, c.GetType(), tt.tag)
		}
		pool.Release(c)
	}
}

func TestContactCreateChainOrderAndChildIndices(t *testing.T) {
	world, _ := makeTestWorld()

	chainBody := makeBody(world, nil, phys2d.BodyType.E_staticBody, 0.0, 0.0)
	circleBody := makeBody(world, nil, phys2d.BodyType.E_staticBody, 10.0, 0.0)

	chainFix := addChainFixture(chainBody, []phys2d.Vec2{
		phys2d.MakeVec2(0.0, 0.0),
		phys2d.MakeVec2(1.0, 0.0),
		phys2d.MakeVec2(2.0, 0.0),
		phys2d.MakeVec2(3.0, 0.0),
		phys2d.MakeVec2(4.0, 0.0),
	})
	circleFix := addCircleFixture(circleBody, 0.5)

	pool := phys2d.NewContactPool()

	c := phys2d.ContactCreate(pool, chainFix, 2, circleFix, 0)
	if c.GetFixtureA() != chainFix || c.GetChildIndexA() != 2 {
		t.Fatalf("chain vs circle: chain must hold slot A with its child index")
	}
	if c.GetType() != phys2d.ContactType.E_chainAndCircle {
		t.Fatalf("chain vs circle tag: got %v", c.GetType())
	}
	pool.Release(c)

	// Reordering must carry the child index along with the fixture.
	c = phys2d.ContactCreate(pool, circleFix, 0, chainFix, 3)
	if c.GetFixtureA() != chainFix || c.GetChildIndexA() != 3 {
		t.Fatalf("circle vs chain: chain must be swapped into slot A with child index 3")
	}
	if c.GetFixtureB() != circleFix || c.GetChildIndexB() != 0 {
		t.Fatalf("circle vs chain: circle must land in slot B")
	}
	pool.Release(c)
}

func TestContactMaterialMixing(t *testing.T) {
	world, _ := makeTestWorld()

	bodyA := makeBody(world, nil, phys2d.BodyType.E_dynamicBody, 0.0, 0.0)
	bodyB := makeBody(world, nil, phys2d.BodyType.E_dynamicBody, 10.0, 0.0)

	defA := phys2d.MakeFixtureDef()
	shapeA := phys2d.MakeCircleShape()
	shapeA.Radius = 0.5
	defA.Shape = &shapeA
	defA.Friction = 0.4
	defA.Restitution = 0.2
	fixtureA := bodyA.CreateFixtureFromDef(&defA)

	defB := phys2d.MakeFixtureDef()
	shapeB := phys2d.MakeCircleShape()
	shapeB.Radius = 0.5
	defB.Shape = &shapeB
	defB.Friction = 0.9
	defB.Restitution = 0.7
	fixtureB := bodyB.CreateFixtureFromDef(&defB)

	pool := phys2d.NewContactPool()

	c1 := phys2d.ContactCreate(pool, fixtureA, 0, fixtureB, 0)
	c2 := phys2d.ContactCreate(pool, fixtureB, 0, fixtureA, 0)

	wantFriction := math.Sqrt(0.4 * 0.9)
	if math.Abs(c1.GetFriction()-wantFriction) > 1e-12 {
		t.Fatalf("mixed friction: got %v, want %v", c1.GetFriction(), wantFriction)
	}
	if c1.GetRestitution() != 0.7 {
		t.Fatalf("mixed restitution: got %v, want 0.7", c1.GetRestitution())
	}

	// Mixing must not depend on operand order.
	if c1.GetFriction() != c2.GetFriction() || c1.GetRestitution() != c2.GetRestitution() {
		t.Fatalf("mixing depends on operand order")
	}

	// Overrides hold until reset.
	c1.SetFriction(0.05)
	c1.SetRestitution(0.95)
	c1.ResetFriction()
	c1.ResetRestitution()
	if c1.GetFriction() != c2.GetFriction() || c1.GetRestitution() != c2.GetRestitution() {
		t.Fatalf("reset did not restore the mixed values")
	}
}

func TestContactTouchingSequence(t *testing.T) {
	world, _ := makeTestWorld()

	bodyA := makeBody(world, nil, phys2d.BodyType.E_dynamicBody, 0.0, 0.0)
	bodyB := makeBody(world, nil, phys2d.BodyType.E_dynamicBody, 10.0, 0.0)

	fixtureA := addCircleFixture(bodyA, 0.5)
	fixtureB := addCircleFixture(bodyB, 0.5)

	pool := phys2d.NewContactPool()
	c := phys2d.ContactCreate(pool, fixtureA, 0, fixtureB, 0)

	near := xfAt(0.6, 0.0)
	far := xfAt(5.0, 0.0)
	origin := xfAt(0.0, 0.0)

	type step struct {
		xfB        phys2d.Transform
		wantStatus uint8
		wantWake   bool
	}
	steps := []step{
		{near, phys2d.ContactStatus.E_startTouching, true},
		{near, phys2d.ContactStatus.E_touching, false},
		{near, phys2d.ContactStatus.E_touching, false},
		{far, phys2d.ContactStatus.E_endTouching, true},
		{far, phys2d.ContactStatus.E_noContact, false},
	}

	for i, s := range steps {
		status, wake := c.Update(origin, s.xfB)
		if status != s.wantStatus {
			t.Fatalf("update %v: status got %v, want %v", i, status, s.wantStatus)
		}
		if wake != s.wantWake {
			t.Fatalf("update %v: wake got %v, want %v", i, wake, s.wantWake)
		}
	}

	if c.IsTouching() {
		t.Fatalf("contact still touching after separation")
	}
}

func TestContactSensorOverlapKeepsEmptyManifold(t *testing.T) {
	world, _ := makeTestWorld()

	bodyA := makeBody(world, nil, phys2d.BodyType.E_dynamicBody, 0.0, 0.0)
	bodyB := makeBody(world, nil, phys2d.BodyType.E_dynamicBody, 10.0, 0.0)

	def := phys2d.MakeFixtureDef()
	shape := phys2d.MakeCircleShape()
	shape.Radius = 0.5
	def.Shape = &shape
	def.IsSensor = true
	fixtureA := bodyA.CreateFixtureFromDef(&def)

	fixtureB := addCircleFixture(bodyB, 0.5)

	pool := phys2d.NewContactPool()
	c := phys2d.ContactCreate(pool, fixtureA, 0, fixtureB, 0)

	status, wake := c.Update(xfAt(0.0, 0.0), xfAt(0.6, 0.0))
	if status != phys2d.ContactStatus.E_startTouching {
		t.Fatalf("sensor overlap status: got %v", status)
	}
	if wake {
		t.Fatalf("sensor overlap must not request a wake")
	}
	if c.GetManifold().PointCount != 0 {
		t.Fatalf("sensor contact stored manifold points: %v", c.GetManifold().PointCount)
	}
	if c.IsTouching() == false {
		t.Fatalf("sensor overlap must still mark the contact touching")
	}

	status, wake = c.Update(xfAt(0.0, 0.0), xfAt(5.0, 0.0))
	if status != phys2d.ContactStatus.E_endTouching || wake {
		t.Fatalf("sensor separation: status %v wake %v", status, wake)
	}
}

func TestContactSoftFixtureActsAsSensor(t *testing.T) {
	world, _ := makeTestWorld()

	bodyA := makeBody(world, nil, phys2d.BodyType.E_dynamicBody, 0.0, 0.0)
	bodyB := makeBody(world, nil, phys2d.BodyType.E_dynamicBody, 10.0, 0.0)

	def := phys2d.MakeFixtureDef()
	shape := phys2d.MakeCircleShape()
	shape.Radius = 0.5
	def.Shape = &shape
	def.Hard = false
	fixtureA := bodyA.CreateFixtureFromDef(&def)

	fixtureB := addCircleFixture(bodyB, 0.5)

	pool := phys2d.NewContactPool()
	c := phys2d.ContactCreate(pool, fixtureA, 0, fixtureB, 0)

	if c.IsHard() {
		t.Fatalf("a soft fixture must make the whole contact soft")
	}

	_, wake := c.Update(xfAt(0.0, 0.0), xfAt(0.6, 0.0))
	if wake || c.GetManifold().PointCount != 0 {
		t.Fatalf("soft contact behaved like a hard one")
	}
}

func TestContactWarmStartImpulseCarryOver(t *testing.T) {
	world, _ := makeTestWorld()

	bodyA := makeBody(world, nil, phys2d.BodyType.E_dynamicBody, 0.0, 0.0)
	bodyB := makeBody(world, nil, phys2d.BodyType.E_dynamicBody, 10.0, 0.0)

	fixtureA := addCircleFixture(bodyA, 0.5)
	fixtureB := addCircleFixture(bodyB, 0.5)

	pool := phys2d.NewContactPool()
	c := phys2d.ContactCreate(pool, fixtureA, 0, fixtureB, 0)

	origin := xfAt(0.0, 0.0)
	near := xfAt(0.6, 0.0)

	c.Update(origin, near)
	if c.GetManifold().PointCount != 1 {
		t.Fatalf("expected one contact point, got %v", c.GetManifold().PointCount)
	}
	if c.GetManifold().Points[0].NormalImpulse != 0.0 {
		t.Fatalf("fresh point must start with a zero impulse")
	}

	// Stored impulses follow the point id across updates.
	c.Manifold.Points[0].NormalImpulse = 1.5
	c.Manifold.Points[0].TangentImpulse = -0.25

	c.Update(origin, near)
	if c.Manifold.Points[0].NormalImpulse != 1.5 || c.Manifold.Points[0].TangentImpulse != -0.25 {
		t.Fatalf("impulses were not carried over: %v %v",
			c.Manifold.Points[0].NormalImpulse, c.Manifold.Points[0].TangentImpulse)
	}

	// Once the pair separates the stored impulses are gone for good.
	c.Update(origin, xfAt(5.0, 0.0))
	c.Update(origin, near)
	if c.Manifold.Points[0].NormalImpulse != 0.0 || c.Manifold.Points[0].TangentImpulse != 0.0 {
		t.Fatalf("impulses survived a separation")
	}
}

func TestContactUpdateForcesEnabled(t *testing.T) {
	world, _ := makeTestWorld()

	bodyA := makeBody(world, nil, phys2d.BodyType.E_dynamicBody, 0.0, 0.0)
	bodyB := makeBody(world, nil, phys2d.BodyType.E_dynamicBody, 10.0, 0.0)

	fixtureA := addCircleFixture(bodyA, 0.5)
	fixtureB := addCircleFixture(bodyB, 0.5)

	pool := phys2d.NewContactPool()
	c := phys2d.ContactCreate(pool, fixtureA, 0, fixtureB, 0)

	c.SetEnabled(false)
	if c.IsEnabled() {
		t.Fatalf("SetEnabled(false) had no effect")
	}

	c.Update(xfAt(0.0, 0.0), xfAt(0.6, 0.0))
	if c.IsEnabled() == false {
		t.Fatalf("an update must re-enable the contact")
	}
}

func TestContactWorldPoint(t *testing.T) {
	world, _ := makeTestWorld()

	bodyA := makeBody(world, nil, phys2d.BodyType.E_dynamicBody, 0.0, 0.0)
	bodyB := makeBody(world, nil, phys2d.BodyType.E_dynamicBody, 0.6, 0.0)

	fixtureA := addCircleFixture(bodyA, 0.5)
	fixtureB := addCircleFixture(bodyB, 0.5)

	pool := phys2d.NewContactPool()
	c := phys2d.ContactCreate(pool, fixtureA, 0, fixtureB, 0)

	p := c.GetWorldPoint()
	if p.X != 0.0 || p.Y != 0.0 {
		t.Fatalf("empty manifold must map to the zero point, got %v", p)
	}

	c.Update(bodyA.GetTransform(), bodyB.GetTransform())

	p = c.GetWorldPoint()
	if math.Abs(p.X-0.3) > 1e-9 || math.Abs(p.Y) > 1e-9 {
		t.Fatalf("world point: got (%v, %v), want (0.3, 0)", p.X, p.Y)
	}
}
