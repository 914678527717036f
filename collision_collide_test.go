package phys2d_test

import (
	"math"
	"testing"

	"github.com/lapatison/phys2d"
)

func TestCollideCircles(t *testing.T) {
	circleA := phys2d.MakeCircleShape()
	circleA.Radius = 0.5
	circleB := phys2d.MakeCircleShape()
	circleB.Radius = 0.5

	var manifold phys2d.Manifold
	phys2d.CollideCircles(&manifold, &circleA, xfAt(0.0, 0.0), &circleB, xfAt(0.6, 0.0))

	if manifold.PointCount != 1 {
		t.Fatalf("overlapping circles: got %v points", manifold.PointCount)
	}
	if manifold.Type != phys2d.Manifold_Type.E_circles {
		t.Fatalf("manifold type: got %v", manifold.Type)
	}
	if manifold.LocalPoint != circleA.P {
		t.Fatalf("manifold local point is not circle A's center")
	}

	phys2d.CollideCircles(&manifold, &circleA, xfAt(0.0, 0.0), &circleB, xfAt(2.0, 0.0))
	if manifold.PointCount != 0 {
		t.Fatalf("separated circles: got %v points", manifold.PointCount)
	}
}

func TestCollidePolygonAndCircle(t *testing.T) {
	box := phys2d.MakePolygonShape()
	box.SetAsBox(1.0, 1.0)
	circle := phys2d.MakeCircleShape()
	circle.Radius = 0.5

	var manifold phys2d.Manifold

	// Circle center just outside the right face.
	phys2d.CollidePolygonAndCircle(&manifold, &box, xfAt(0.0, 0.0), &circle, xfAt(1.2, 0.0))
	if manifold.PointCount != 1 {
		t.Fatalf("face contact: got %v points", manifold.PointCount)
	}
	if manifold.Type != phys2d.Manifold_Type.E_faceA {
		t.Fatalf("face contact type: got %v", manifold.Type)
	}

	// Circle center inside the box.
	phys2d.CollidePolygonAndCircle(&manifold, &box, xfAt(0.0, 0.0), &circle, xfAt(0.5, 0.0))
	if manifold.PointCount != 1 {
		t.Fatalf("deep contact: got %v points", manifold.PointCount)
	}

	phys2d.CollidePolygonAndCircle(&manifold, &box, xfAt(0.0, 0.0), &circle, xfAt(3.0, 0.0))
	if manifold.PointCount != 0 {
		t.Fatalf("separated pair: got %v points", manifold.PointCount)
	}
}

func TestCollidePolygons(t *testing.T) {
	boxA := phys2d.MakePolygonShape()
	boxA.SetAsBox(1.0, 1.0)
	boxB := phys2d.MakePolygonShape()
	boxB.SetAsBox(1.0, 1.0)

	var manifold phys2d.Manifold
	phys2d.CollidePolygons(&manifold, &boxA, xfAt(0.0, 0.0), &boxB, xfAt(1.8, 0.0))

	if manifold.PointCount != 2 {
		t.Fatalf("overlapping boxes: got %v points", manifold.PointCount)
	}
	if manifold.Points[0].Id.Key() == manifold.Points[1].Id.Key() {
		t.Fatalf("manifold points share an id")
	}

	phys2d.CollidePolygons(&manifold, &boxA, xfAt(0.0, 0.0), &boxB, xfAt(5.0, 0.0))
	if manifold.PointCount != 0 {
		t.Fatalf("separated boxes: got %v points", manifold.PointCount)
	}
}

func TestCollideEdgeAndCircle(t *testing.T) {
	edge := phys2d.MakeEdgeShape()
	edge.Set(phys2d.MakeVec2(-1.0, 0.0), phys2d.MakeVec2(1.0, 0.0))
	circle := phys2d.MakeCircleShape()
	circle.Radius = 0.5

	var manifold phys2d.Manifold

	// Above the middle of the edge.
	phys2d.CollideEdgeAndCircle(&manifold, &edge, xfAt(0.0, 0.0), &circle, xfAt(0.0, 0.3))
	if manifold.PointCount != 1 {
		t.Fatalf("face region: got %v points", manifold.PointCount)
	}
	if manifold.Type != phys2d.Manifold_Type.E_faceA {
		t.Fatalf("face region type: got %v", manifold.Type)
	}

	// Past the second vertex: the vertex owns the contact.
	phys2d.CollideEdgeAndCircle(&manifold, &edge, xfAt(0.0, 0.0), &circle, xfAt(1.2, 0.3))
	if manifold.PointCount != 1 {
		t.Fatalf("vertex region: got %v points", manifold.PointCount)
	}
	if manifold.Type != phys2d.Manifold_Type.E_circles {
		t.Fatalf("vertex region type: got %v", manifold.Type)
	}

	phys2d.CollideEdgeAndCircle(&manifold, &edge, xfAt(0.0, 0.0), &circle, xfAt(0.0, 2.0))
	if manifold.PointCount != 0 {
		t.Fatalf("separated pair: got %v points", manifold.PointCount)
	}
}

func TestCollideEdgeAndPolygon(t *testing.T) {
	edge := phys2d.MakeEdgeShape()
	edge.Set(phys2d.MakeVec2(-1.0, 0.0), phys2d.MakeVec2(1.0, 0.0))
	box := phys2d.MakePolygonShape()
	box.SetAsBox(0.5, 0.5)

	var manifold phys2d.Manifold

	// Box resting flat on the edge.
	phys2d.CollideEdgeAndPolygon(&manifold, &edge, xfAt(0.0, 0.0), &box, xfAt(0.0, 0.45))
	if manifold.PointCount != 2 {
		t.Fatalf("resting box: got %v points", manifold.PointCount)
	}

	phys2d.CollideEdgeAndPolygon(&manifold, &edge, xfAt(0.0, 0.0), &box, xfAt(0.0, 3.0))
	if manifold.PointCount != 0 {
		t.Fatalf("separated pair: got %v points", manifold.PointCount)
	}
}

func TestClipSegmentToLine(t *testing.T) {
	vIn := make([]phys2d.ClipVertex, 2)
	vIn[0].V = phys2d.MakeVec2(-1.0, 0.0)
	vIn[1].V = phys2d.MakeVec2(1.0, 0.0)

	vOut := make([]phys2d.ClipVertex, 2)
	n := phys2d.ClipSegmentToLine(vOut, vIn, phys2d.MakeVec2(1.0, 0.0), 0.5, 0)

	if n != 2 {
		t.Fatalf("clip count: got %v, want 2", n)
	}
	if vOut[0].V != vIn[0].V {
		t.Fatalf("the inside point must pass through unchanged")
	}
	if math.Abs(vOut[1].V.X-0.5) > 1e-12 || math.Abs(vOut[1].V.Y) > 1e-12 {
		t.Fatalf("clipped point: got (%v, %v), want (0.5, 0)", vOut[1].V.X, vOut[1].V.Y)
	}

	// Both points beyond the plane: nothing survives.
	vIn[0].V = phys2d.MakeVec2(2.0, 0.0)
	vIn[1].V = phys2d.MakeVec2(3.0, 0.0)
	n = phys2d.ClipSegmentToLine(vOut, vIn, phys2d.MakeVec2(1.0, 0.0), 0.5, 0)
	if n != 0 {
		t.Fatalf("clip count for outside segment: got %v, want 0", n)
	}
}

func TestAABBBasics(t *testing.T) {
	a := phys2d.MakeAABB()
	a.LowerBound = phys2d.MakeVec2(-1.0, -1.0)
	a.UpperBound = phys2d.MakeVec2(1.0, 1.0)

	if a.IsValid() == false {
		t.Fatalf("well-formed box reports invalid")
	}

	center := a.GetCenter()
	if center.X != 0.0 || center.Y != 0.0 {
		t.Fatalf("center: got %v", center)
	}
	extents := a.GetExtents()
	if extents.X != 1.0 || extents.Y != 1.0 {
		t.Fatalf("extents: got %v", extents)
	}
	if a.GetPerimeter() != 8.0 {
		t.Fatalf("perimeter: got %v", a.GetPerimeter())
	}

	b := phys2d.MakeAABB()
	b.LowerBound = phys2d.MakeVec2(0.5, 0.5)
	b.UpperBound = phys2d.MakeVec2(2.0, 2.0)

	if phys2d.TestOverlapBoundingBoxes(a, b) == false {
		t.Fatalf("overlapping boxes report disjoint")
	}

	c := phys2d.MakeAABB()
	c.LowerBound = phys2d.MakeVec2(5.0, 5.0)
	c.UpperBound = phys2d.MakeVec2(6.0, 6.0)
	if phys2d.TestOverlapBoundingBoxes(a, c) {
		t.Fatalf("disjoint boxes report overlapping")
	}

	a.CombineInPlace(b)
	if a.Contains(b) == false {
		t.Fatalf("combined box does not contain its input")
	}
	if a.LowerBound.X != -1.0 || a.UpperBound.X != 2.0 {
		t.Fatalf("combined bounds: got %v %v", a.LowerBound, a.UpperBound)
	}
}

func TestAABBRayCast(t *testing.T) {
	box := phys2d.MakeAABB()
	box.LowerBound = phys2d.MakeVec2(1.0, -1.0)
	box.UpperBound = phys2d.MakeVec2(3.0, 1.0)

	input := phys2d.MakeRayCastInput()
	input.P1 = phys2d.MakeVec2(0.0, 0.0)
	input.P2 = phys2d.MakeVec2(4.0, 0.0)
	input.MaxFraction = 1.0

	output := phys2d.MakeRayCastOutput()
	if box.RayCast(&output, input) == false {
		t.Fatalf("ray through the box missed")
	}
	if math.Abs(output.Fraction-0.25) > 1e-12 {
		t.Fatalf("hit fraction: got %v, want 0.25", output.Fraction)
	}
	if output.Normal.X != -1.0 || output.Normal.Y != 0.0 {
		t.Fatalf("hit normal: got %v", output.Normal)
	}

	input.P2 = phys2d.MakeVec2(0.0, 4.0)
	if box.RayCast(&output, input) {
		t.Fatalf("ray past the box hit")
	}
}

func TestTransformAABBIsConservative(t *testing.T) {
	box := phys2d.MakeAABB()
	box.LowerBound = phys2d.MakeVec2(-1.0, -0.5)
	box.UpperBound = phys2d.MakeVec2(1.0, 0.5)

	xf := phys2d.MakeTransformByPositionAndRotation(
		phys2d.MakeVec2(3.0, 4.0), phys2d.MakeRotFromAngle(0.7),
	)

	world := phys2d.TransformAABB(xf, box)

	// The center maps exactly; the box around it only grows.
	wantCenter := phys2d.TransformVec2Mul(xf, box.GetCenter())
	gotCenter := world.GetCenter()
	if math.Abs(gotCenter.X-wantCenter.X) > 1e-9 || math.Abs(gotCenter.Y-wantCenter.Y) > 1e-9 {
		t.Fatalf("transformed center: got %v, want %v", gotCenter, wantCenter)
	}

	back := phys2d.InvTransformAABB(xf, world)
	if back.Contains(box) == false {
		t.Fatalf("round-tripped box no longer covers the original")
	}
}

func TestShapeRayCasts(t *testing.T) {
	input := phys2d.MakeRayCastInput()
	input.P1 = phys2d.MakeVec2(-3.0, 0.0)
	input.P2 = phys2d.MakeVec2(3.0, 0.0)
	input.MaxFraction = 1.0
	output := phys2d.MakeRayCastOutput()

	circle := phys2d.MakeCircleShape()
	circle.Radius = 1.0
	if circle.RayCast(&output, input, xfAt(0.0, 0.0), 0) == false {
		t.Fatalf("ray missed the circle")
	}
	if math.Abs(output.Fraction-1.0/3.0) > 1e-9 {
		t.Fatalf("circle hit fraction: got %v", output.Fraction)
	}

	box := phys2d.MakePolygonShape()
	box.SetAsBox(1.0, 1.0)
	if box.RayCast(&output, input, xfAt(0.0, 0.0), 0) == false {
		t.Fatalf("ray missed the box")
	}
	if math.Abs(output.Fraction-1.0/3.0) > 1e-9 {
		t.Fatalf("box hit fraction: got %v", output.Fraction)
	}

	edge := phys2d.MakeEdgeShape()
	edge.Set(phys2d.MakeVec2(0.0, -1.0), phys2d.MakeVec2(0.0, 1.0))
	if edge.RayCast(&output, input, xfAt(0.0, 0.0), 0) == false {
		t.Fatalf("ray missed the edge")
	}
	if math.Abs(output.Fraction-0.5) > 1e-9 {
		t.Fatalf("edge hit fraction: got %v", output.Fraction)
	}
}

func TestPolygonSetOrdersVertices(t *testing.T) {
	// Convex hull construction must not depend on the input order.
	verts := []phys2d.Vec2{
		{X: 1.0, Y: 1.0},
		{X: -1.0, Y: -1.0},
		{X: 1.0, Y: -1.0},
		{X: -1.0, Y: 1.0},
	}

	poly := phys2d.MakePolygonShape()
	poly.Set(verts, len(verts))

	if poly.Count != 4 {
		t.Fatalf("hull vertex count: got %v, want 4", poly.Count)
	}
	if poly.Validate() == false {
		t.Fatalf("hull is not convex")
	}
	if math.Abs(poly.Centroid.X) > 1e-12 || math.Abs(poly.Centroid.Y) > 1e-12 {
		t.Fatalf("centroid: got %v", poly.Centroid)
	}
}

func TestChainShapeChildren(t *testing.T) {
	verts := []phys2d.Vec2{
		{X: 0.0, Y: 0.0},
		{X: 1.0, Y: 0.0},
		{X: 2.0, Y: 0.5},
		{X: 3.0, Y: 0.5},
	}

	chain := phys2d.MakeChainShape()
	chain.CreateChain(verts, len(verts))
	if chain.GetChildCount() != 3 {
		t.Fatalf("open chain children: got %v, want 3", chain.GetChildCount())
	}

	// A middle segment knows both neighbours.
	edge := phys2d.MakeEdgeShape()
	chain.GetChildEdge(&edge, 1)
	if edge.Vertex1 != verts[1] || edge.Vertex2 != verts[2] {
		t.Fatalf("child edge vertices are wrong")
	}
	if edge.HasVertex0 == false || edge.HasVertex3 == false {
		t.Fatalf("middle child must know both adjacent vertices")
	}

	// The first segment has no previous neighbour.
	chain.GetChildEdge(&edge, 0)
	if edge.HasVertex0 {
		t.Fatalf("first child claims a previous vertex")
	}

	loop := phys2d.MakeChainShape()
	loop.CreateLoop(verts, len(verts))
	if loop.GetChildCount() != 4 {
		t.Fatalf("loop children: got %v, want 4", loop.GetChildCount())
	}
}

func TestShapePointContainment(t *testing.T) {
	circle := phys2d.MakeCircleShape()
	circle.Radius = 1.0
	if circle.TestPoint(xfAt(2.0, 0.0), phys2d.MakeVec2(2.5, 0.0)) == false {
		t.Fatalf("point inside the circle not found")
	}
	if circle.TestPoint(xfAt(2.0, 0.0), phys2d.MakeVec2(4.0, 0.0)) {
		t.Fatalf("point outside the circle reported inside")
	}

	box := phys2d.MakePolygonShape()
	box.SetAsBox(1.0, 1.0)
	if box.TestPoint(xfAt(0.0, 0.0), phys2d.MakeVec2(0.5, 0.5)) == false {
		t.Fatalf("point inside the box not found")
	}
	if box.TestPoint(xfAt(0.0, 0.0), phys2d.MakeVec2(1.5, 0.0)) {
		t.Fatalf("point outside the box reported inside")
	}

	// Edges have no interior.
	edge := phys2d.MakeEdgeShape()
	edge.Set(phys2d.MakeVec2(-1.0, 0.0), phys2d.MakeVec2(1.0, 0.0))
	if edge.TestPoint(xfAt(0.0, 0.0), phys2d.MakeVec2(0.0, 0.0)) {
		t.Fatalf("edge claims to contain a point")
	}
}
