package phys2d_test

import (
	"math"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/lapatison/phys2d"
)

// Builds a scene with enough pairs to cross the parallel update threshold.
// Pairs are spaced far apart so each contact is independent, with mixed
// shape kinds, offsets and rotations so the manifolds differ.
func buildBatchScene() *phys2d.World {
	world, m := makeTestWorld()

	n := phys2d.MinContactsForParallel + 22
	for i := 0; i < n; i++ {
		x := float64(i) * 10.0
		gap := 0.4 + 0.05*float64(i%8)
		angle := 0.1 * float64(i%7)

		switch i % 4 {
		case 0:
			a := makeBody(world, m, phys2d.BodyType.E_dynamicBody, x, 0.0)
			b := makeBody(world, m, phys2d.BodyType.E_dynamicBody, x+gap, 0.0)
			addCircleFixture(a, 0.5)
			addCircleFixture(b, 0.5)
		case 1:
			a := makeBody(world, m, phys2d.BodyType.E_dynamicBody, x, 0.0)
			b := makeBody(world, m, phys2d.BodyType.E_dynamicBody, x+gap, 0.3)
			b.SetTransform(b.GetPosition(), angle)
			addBoxFixture(a, 0.5, 0.5)
			addBoxFixture(b, 0.4, 0.4)
		case 2:
			a := makeBody(world, m, phys2d.BodyType.E_dynamicBody, x, 0.0)
			b := makeBody(world, m, phys2d.BodyType.E_dynamicBody, x+gap, 0.1)
			addBoxFixture(a, 0.5, 0.5)
			addCircleFixture(b, 0.5)
		case 3:
			a := makeBody(world, m, phys2d.BodyType.E_staticBody, x, 0.0)
			b := makeBody(world, m, phys2d.BodyType.E_dynamicBody, x+gap-0.4, 0.3)
			addEdgeFixture(a, phys2d.MakeVec2(-1.0, 0.0), phys2d.MakeVec2(1.0, 0.0))
			addCircleFixture(b, 0.5)
		}
	}

	return world
}

func collectManifolds(world *phys2d.World) []string {
	dumps := []string{}
	for c := world.GetContactList(); c != nil; c = c.GetNext() {
		dumps = append(dumps, spew.Sdump(*c.GetManifold()))
	}
	return dumps
}

func TestBatchParallelUpdateIsDeterministic(t *testing.T) {
	w1 := buildBatchScene()
	w2 := buildBatchScene()

	w1.Step()
	w2.Step()

	if w1.GetContactCount() != w2.GetContactCount() {
		t.Fatalf("contact counts diverge: %v vs %v", w1.GetContactCount(), w2.GetContactCount())
	}
	if w1.GetContactCount() <= phys2d.MinContactsForParallel {
		t.Fatalf("scene too small to cross the parallel threshold: %v", w1.GetContactCount())
	}

	m1 := collectManifolds(w1)
	m2 := collectManifolds(w2)
	for i := range m1 {
		if m1[i] != m2[i] {
			t.Fatalf("contact %v manifolds diverge between identical runs:\n%s\nvs:\n%s", i, m1[i], m2[i])
		}
	}

	// A second pass over settled contacts must stay deterministic too.
	w1.Step()
	w2.Step()

	m1 = collectManifolds(w1)
	m2 = collectManifolds(w2)
	for i := range m1 {
		if m1[i] != m2[i] {
			t.Fatalf("contact %v manifolds diverge on the second step:\n%s\nvs:\n%s", i, m1[i], m2[i])
		}
	}
}

func TestBatchParallelMatchesSequential(t *testing.T) {
	parallel := buildBatchScene()
	parallel.Step()

	// Drive an identical scene through the one-contact-at-a-time path.
	sequential := buildBatchScene()
	for _, sm := range sequential.Maps {
		sm.FindNewContacts(&sequential.ContactManager)
	}
	for c := sequential.GetContactList(); c != nil; c = c.GetNext() {
		var slot phys2d.ContactUpdateResult
		phys2d.UpdateContact(c, &slot)
	}

	if parallel.GetContactCount() != sequential.GetContactCount() {
		t.Fatalf("contact counts diverge: %v vs %v", parallel.GetContactCount(), sequential.GetContactCount())
	}

	mp := collectManifolds(parallel)
	ms := collectManifolds(sequential)
	for i := range mp {
		if mp[i] != ms[i] {
			t.Fatalf("contact %v: parallel and sequential manifolds diverge:\n%s\nvs:\n%s", i, mp[i], ms[i])
		}
	}

	cp := parallel.GetContactList()
	cs := sequential.GetContactList()
	for cp != nil && cs != nil {
		if cp.IsTouching() != cs.IsTouching() {
			t.Fatalf("touching state diverges between parallel and sequential paths")
		}
		cp = cp.GetNext()
		cs = cs.GetNext()
	}
}

func TestBatchStartEventCarriesWorldPoint(t *testing.T) {
	world, m := makeTestWorld()

	bodyA := makeBody(world, m, phys2d.BodyType.E_dynamicBody, 0.0, 0.0)
	bodyB := makeBody(world, m, phys2d.BodyType.E_dynamicBody, 0.6, 0.0)
	addCircleFixture(bodyA, 0.5)
	addCircleFixture(bodyB, 0.5)

	points := []phys2d.Vec2{}
	record := func(body *phys2d.Body) {
		world.GetEventBus().SubscribeStartCollide(body, func(e *phys2d.StartCollideEvent) {
			points = append(points, e.WorldPoint)
		})
	}
	record(bodyA)
	record(bodyB)

	world.Step()

	if len(points) != 2 {
		t.Fatalf("start notifications: got %v, want 2", len(points))
	}
	for _, p := range points {
		if math.Abs(p.X-0.3) > 1e-9 || math.Abs(p.Y) > 1e-9 {
			t.Fatalf("start event point: got (%v, %v), want (0.3, 0)", p.X, p.Y)
		}
	}
}

func TestBatchSensorStartEventHasZeroPoint(t *testing.T) {
	world, m := makeTestWorld()

	bodyA := makeBody(world, m, phys2d.BodyType.E_dynamicBody, 0.0, 0.0)
	bodyB := makeBody(world, m, phys2d.BodyType.E_dynamicBody, 0.6, 0.0)

	def := phys2d.MakeFixtureDef()
	shape := phys2d.MakeCircleShape()
	shape.Radius = 0.5
	def.Shape = &shape
	def.IsSensor = true
	bodyA.CreateFixtureFromDef(&def)
	addCircleFixture(bodyB, 0.5)

	var got phys2d.Vec2
	fired := false
	world.GetEventBus().SubscribeStartCollide(bodyA, func(e *phys2d.StartCollideEvent) {
		got = e.WorldPoint
		fired = true
	})

	world.Step()

	if fired == false {
		t.Fatalf("sensor overlap did not raise a start notification")
	}
	if got.X != 0.0 || got.Y != 0.0 {
		t.Fatalf("sensor start point must be the zero vector, got (%v, %v)", got.X, got.Y)
	}
}

func TestBatchEndNotificationSkipsTornDownContact(t *testing.T) {
	world, m := makeTestWorld()

	a1 := makeBody(world, m, phys2d.BodyType.E_dynamicBody, 0.0, 0.0)
	b1 := makeBody(world, m, phys2d.BodyType.E_dynamicBody, 0.6, 0.0)
	addCircleFixture(a1, 0.5)
	addCircleFixture(b1, 0.5)

	a2 := makeBody(world, m, phys2d.BodyType.E_dynamicBody, 100.0, 0.0)
	b2 := makeBody(world, m, phys2d.BodyType.E_dynamicBody, 100.6, 0.0)
	addCircleFixture(a2, 0.5)
	fix2 := addCircleFixture(b2, 0.5)

	world.Step()
	if world.GetContactCount() != 2 {
		t.Fatalf("expected two touching pairs, got %v", world.GetContactCount())
	}

	ends := []string{}
	bus := world.GetEventBus()
	bus.SubscribeEndCollide(a1, func(e *phys2d.EndCollideEvent) {
		ends = append(ends, "a1")
		// Tearing down the second pair mid-pass leaves its already
		// recorded end notification pointing at a recycled record.
		b2.DestroyFixture(fix2)
	})
	bus.SubscribeEndCollide(b1, func(e *phys2d.EndCollideEvent) { ends = append(ends, "b1") })
	bus.SubscribeEndCollide(a2, func(e *phys2d.EndCollideEvent) { ends = append(ends, "a2") })
	bus.SubscribeEndCollide(b2, func(e *phys2d.EndCollideEvent) { ends = append(ends, "b2") })

	// Separate both pairs while keeping the fat boxes overlapping, so both
	// run through the update pass rather than the broad-phase teardown.
	b1.SetTransform(phys2d.MakeVec2(1.05, 0.0), 0.0)
	b2.SetTransform(phys2d.MakeVec2(101.05, 0.0), 0.0)

	world.Step()

	if len(ends) != 2 || ends[0] != "a1" || ends[1] != "b1" {
		t.Fatalf("end notifications: got %v, want [a1 b1]", ends)
	}

	// The first pair merely separated; only the second was torn down.
	if world.GetContactCount() != 1 {
		t.Fatalf("contact count after the pass: got %v, want 1", world.GetContactCount())
	}
}
