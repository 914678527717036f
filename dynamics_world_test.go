package phys2d_test

import (
	"math"
	"testing"

	"github.com/lapatison/phys2d"
)

func TestWorldBodyListOrder(t *testing.T) {
	world, _ := makeTestWorld()

	first := makeBody(world, nil, phys2d.BodyType.E_staticBody, 0.0, 0.0)
	second := makeBody(world, nil, phys2d.BodyType.E_staticBody, 1.0, 0.0)

	if world.GetBodyCount() != 2 {
		t.Fatalf("body count: got %v, want 2", world.GetBodyCount())
	}

	// Newest first, like the fixture list on a body.
	if world.GetBodyList() != second || world.GetBodyList().GetNext() != first {
		t.Fatalf("body list does not lead with the newest body")
	}
}

func TestWorldDestroyBody(t *testing.T) {
	world, m := makeTestWorld()

	bodyA := makeBody(world, m, phys2d.BodyType.E_dynamicBody, 0.0, 0.0)
	bodyB := makeBody(world, m, phys2d.BodyType.E_dynamicBody, 0.5, 0.0)
	addCircleFixture(bodyA, 0.5)
	addCircleFixture(bodyB, 0.5)

	anchor := makeBody(world, m, phys2d.BodyType.E_staticBody, 5.0, 0.0)

	jd := phys2d.MakeJointDef()
	jd.BodyA = bodyB
	jd.BodyB = anchor
	jd.CollideConnected = true
	world.CreateJoint(&jd)

	world.Step()
	if world.GetContactCount() != 1 {
		t.Fatalf("pair did not form")
	}

	ends := 0
	world.GetEventBus().SubscribeEndCollide(bodyA, func(e *phys2d.EndCollideEvent) { ends++ })
	world.GetEventBus().SubscribeEndCollide(bodyB, func(e *phys2d.EndCollideEvent) { ends++ })

	world.DestroyBody(bodyB)

	if world.GetBodyCount() != 2 {
		t.Fatalf("body count after destroy: got %v, want 2", world.GetBodyCount())
	}
	if world.GetContactCount() != 0 {
		t.Fatalf("contact survived its body")
	}
	if ends != 2 {
		t.Fatalf("body teardown skipped the end notifications: %v", ends)
	}
	if world.GetJointCount() != 0 {
		t.Fatalf("joint survived its body")
	}
	if anchor.GetJointList() != nil {
		t.Fatalf("the other body still holds a joint edge")
	}
	if m.GetBodyCount() != 2 {
		t.Fatalf("map body count after destroy: got %v, want 2", m.GetBodyCount())
	}

	world.Step()
	if world.GetContactCount() != 0 {
		t.Fatalf("destroyed body paired up")
	}
}

func TestWorldJointLifecycle(t *testing.T) {
	world, _ := makeTestWorld()

	bodyA := makeBody(world, nil, phys2d.BodyType.E_dynamicBody, 0.0, 0.0)
	bodyB := makeBody(world, nil, phys2d.BodyType.E_dynamicBody, 1.0, 0.0)

	jd := phys2d.MakeJointDef()
	jd.BodyA = bodyA
	jd.BodyB = bodyB
	joint := world.CreateJoint(&jd)

	if world.GetJointCount() != 1 {
		t.Fatalf("joint count: got %v, want 1", world.GetJointCount())
	}
	if bodyA.GetJointList() == nil || bodyA.GetJointList().Other != bodyB {
		t.Fatalf("joint edge missing on body A")
	}
	if bodyB.GetJointList() == nil || bodyB.GetJointList().Other != bodyA {
		t.Fatalf("joint edge missing on body B")
	}

	bodyA.SetAwake(false)
	bodyB.SetAwake(false)

	world.DestroyJoint(joint)

	if world.GetJointCount() != 0 {
		t.Fatalf("joint count after destroy: %v", world.GetJointCount())
	}
	if bodyA.GetJointList() != nil || bodyB.GetJointList() != nil {
		t.Fatalf("joint edges left behind")
	}

	// Losing a constraint frees the bodies to move.
	if bodyA.IsAwake() == false || bodyB.IsAwake() == false {
		t.Fatalf("bodies were not woken by the joint teardown")
	}
}

func TestWorldDestroyMapStripsBodies(t *testing.T) {
	world := phys2d.NewWorld()
	m := world.CreateMap()

	bodyA := makeBody(world, m, phys2d.BodyType.E_dynamicBody, 0.0, 0.0)
	bodyB := makeBody(world, m, phys2d.BodyType.E_dynamicBody, 0.5, 0.0)
	addCircleFixture(bodyA, 0.5)
	addCircleFixture(bodyB, 0.5)

	world.Step()
	if world.GetContactCount() != 1 {
		t.Fatalf("pair did not form")
	}

	world.DestroyMap(m)

	if len(world.Maps) != 0 {
		t.Fatalf("map list after destroy: %v entries", len(world.Maps))
	}
	if bodyA.GetMap() != nil || bodyB.GetMap() != nil {
		t.Fatalf("bodies still point at the destroyed map")
	}
	if world.GetContactCount() != 0 {
		t.Fatalf("contacts survived their map")
	}

	// The bodies themselves live on, just out of any collision space.
	if world.GetBodyCount() != 2 {
		t.Fatalf("bodies were destroyed with the map")
	}

	world.Step()
	if world.GetContactCount() != 0 {
		t.Fatalf("mapless bodies paired up")
	}
}

func TestWorldQueryAndRayCast(t *testing.T) {
	world, m := makeTestWorld()

	near := makeBody(world, m, phys2d.BodyType.E_staticBody, 0.0, 0.0)
	nearFix := addCircleFixture(near, 0.5)

	far := makeBody(world, m, phys2d.BodyType.E_staticBody, 5.0, 0.0)
	farFix := addCircleFixture(far, 0.5)

	found := []*phys2d.Fixture{}
	world.QueryAABB(func(fixture *phys2d.Fixture) bool {
		found = append(found, fixture)
		return true
	}, boxAround(0.0, 0.0, 1.0))

	if len(found) != 1 || found[0] != nearFix {
		t.Fatalf("query around the origin: got %v fixtures", len(found))
	}

	// Returning false stops the query after the first fixture.
	visited := 0
	world.QueryAABB(func(fixture *phys2d.Fixture) bool {
		visited++
		return false
	}, boxAround(2.5, 0.0, 3.5))

	if visited != 1 {
		t.Fatalf("terminated query visited %v fixtures", visited)
	}

	// An unclipped ray reports every fixture on its path.
	fractions := map[*phys2d.Fixture]float64{}
	world.RayCast(func(fixture *phys2d.Fixture, point phys2d.Vec2, normal phys2d.Vec2, fraction float64) float64 {
		fractions[fixture] = fraction
		return 1.0
	}, phys2d.MakeVec2(-2.0, 0.0), phys2d.MakeVec2(10.0, 0.0))

	if len(fractions) != 2 {
		t.Fatalf("ray hits: got %v, want 2", len(fractions))
	}
	if math.Abs(fractions[nearFix]-0.125) > 1e-9 {
		t.Fatalf("near hit fraction: got %v, want 0.125", fractions[nearFix])
	}
	if math.Abs(fractions[farFix]-6.5/12.0) > 1e-9 {
		t.Fatalf("far hit fraction: got %v, want %v", fractions[farFix], 6.5/12.0)
	}
}
