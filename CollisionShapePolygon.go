package phys2d

/// A convex polygon. It is assumed that the interior of the polygon is to
/// the left of each edge.
/// Polygons have a maximum number of vertices equal to MaxPolygonVertices.
/// In most cases you should not need many vertices for a convex polygon.
type PolygonShape struct {
	Shape

	Centroid Vec2
	Vertices [MaxPolygonVertices]Vec2
	Normals  [MaxPolygonVertices]Vec2
	Count    int
}

func MakePolygonShape() PolygonShape {
	return PolygonShape{
		Shape: Shape{
			Type:   Shape_Type.E_polygon,
			Radius: PolygonRadius,
		},
		Centroid: MakeVec2(0, 0),
		Count:    0,
	}
}

func NewPolygonShape() *PolygonShape {
	res := MakePolygonShape()
	return &res
}

func (poly PolygonShape) Clone() ShapeInterface {
	clone := NewPolygonShape()
	clone.Radius = poly.Radius
	clone.Centroid = poly.Centroid
	clone.Vertices = poly.Vertices
	clone.Normals = poly.Normals
	clone.Count = poly.Count
	return clone
}

func (poly PolygonShape) GetChildCount() int {
	return 1
}

/// Build vertices to represent an axis-aligned box centered on the local origin.
/// @param hx the half-width.
/// @param hy the half-height.
func (poly *PolygonShape) SetAsBox(hx float64, hy float64) {
	poly.Count = 4
	poly.Vertices[0].Set(-hx, -hy)
	poly.Vertices[1].Set(hx, -hy)
	poly.Vertices[2].Set(hx, hy)
	poly.Vertices[3].Set(-hx, hy)
	poly.Normals[0].Set(0.0, -1.0)
	poly.Normals[1].Set(1.0, 0.0)
	poly.Normals[2].Set(0.0, 1.0)
	poly.Normals[3].Set(-1.0, 0.0)
	poly.Centroid.SetZero()
}

/// Build vertices to represent an oriented box.
/// @param hx the half-width.
/// @param hy the half-height.
/// @param center the center of the box in local coordinates.
/// @param angle the rotation of the box in local coordinates.
func (poly *PolygonShape) SetAsBoxFromCenterAndAngle(hx float64, hy float64, center Vec2, angle float64) {
	poly.SetAsBox(hx, hy)
	poly.Centroid = center

	xf := MakeTransformByPositionAndRotation(center, MakeRotFromAngle(angle))

	// Transform vertices and normals.
	for i := 0; i < poly.Count; i++ {
		poly.Vertices[i] = TransformVec2Mul(xf, poly.Vertices[i])
		poly.Normals[i] = RotVec2Mul(xf.Q, poly.Normals[i])
	}
}

func ComputeCentroid(vs []Vec2, count int) Vec2 {
	Assert(count >= 3)

	c := MakeVec2(0, 0)
	area := 0.0

	// pRef is the reference point for forming triangles.
	// Its location does not change the result (except for rounding error).
	pRef := MakeVec2(0, 0)

	inv3 := 1.0 / 3.0

	for i := 0; i < count; i++ {
		// Triangle vertices.
		p1 := pRef
		p2 := vs[i]
		p3 := MakeVec2(0, 0)
		if i+1 < count {
			p3 = vs[i+1]
		} else {
			p3 = vs[0]
		}

		e1 := Vec2Sub(p2, p1)
		e2 := Vec2Sub(p3, p1)

		D := Vec2Cross(e1, e2)

		triangleArea := 0.5 * D
		area += triangleArea

		// Area weighted centroid
		c.OperatorPlusInplace(Vec2MulScalar(triangleArea*inv3, Vec2Add(Vec2Add(p1, p2), p3)))
	}

	// Centroid
	Assert(area > Epsilon)
	c.OperatorScalarMulInplace(1.0 / area)
	return c
}

/// Create a convex hull from the given array of local points.
/// The count must be in the range [3, MaxPolygonVertices].
/// @warning the points may be re-ordered, even if they form a convex polygon
/// @warning collinear points are handled but not removed. Collinear points
/// may lead to poor stacking behavior.
func (poly *PolygonShape) Set(vertices []Vec2, count int) {

	Assert(3 <= count && count <= MaxPolygonVertices)

	if count < 3 {
		poly.SetAsBox(1.0, 1.0)
		return
	}

	n := MinInt(count, MaxPolygonVertices)

	// Perform welding and copy vertices into local buffer.
	ps := make([]Vec2, 0, MaxPolygonVertices)
	for i := 0; i < n; i++ {
		v := vertices[i]

		unique := true
		for j := 0; j < len(ps); j++ {
			if Vec2DistanceSquared(v, ps[j]) < ((0.5 * LinearSlop) * (0.5 * LinearSlop)) {
				unique = false
				break
			}
		}

		if unique {
			ps = append(ps, v)
		}
	}

	n = len(ps)
	if n < 3 {
		// Polygon is degenerate.
		Assert(false)
		poly.SetAsBox(1.0, 1.0)
		return
	}

	// Create the convex hull using the Gift wrapping algorithm
	// http://en.wikipedia.org/wiki/Gift_wrapping_algorithm

	// Find the right most point on the hull
	i0 := 0
	x0 := ps[0].X
	for i := 1; i < n; i++ {
		x := ps[i].X
		if x > x0 || (x == x0 && ps[i].Y < ps[i0].Y) {
			i0 = i
			x0 = x
		}
	}

	hull := make([]int, MaxPolygonVertices)
	m := 0
	ih := i0

	for {
		hull[m] = ih
		m++

		ie := 0
		for j := 1; j < n; j++ {
			if ie == ih {
				ie = j
				continue
			}

			r := Vec2Sub(ps[ie], ps[hull[m-1]])
			v := Vec2Sub(ps[j], ps[hull[m-1]])
			c := Vec2Cross(r, v)
			if c < 0.0 {
				ie = j
			}

			// Collinearity check
			if c == 0.0 && v.LengthSquared() > r.LengthSquared() {
				ie = j
			}
		}

		ih = ie
		if ie == i0 {
			break
		}
	}

	if m < 3 {
		// Polygon is degenerate.
		Assert(false)
		poly.SetAsBox(1.0, 1.0)
		return
	}

	poly.Count = m

	// Copy vertices.
	for i := 0; i < m; i++ {
		poly.Vertices[i] = ps[hull[i]]
	}

	// Compute normals. Ensure the edges have non-zero length.
	for i := 0; i < m; i++ {
		i1 := i
		i2 := 0
		if i+1 < m {
			i2 = i + 1
		}

		edge := Vec2Sub(poly.Vertices[i2], poly.Vertices[i1])
		Assert(edge.LengthSquared() > Epsilon*Epsilon)
		poly.Normals[i] = Vec2CrossVectorScalar(edge, 1.0)
		poly.Normals[i].Normalize()
	}

	// Compute the polygon centroid.
	poly.Centroid = ComputeCentroid(poly.Vertices[:], m)
}

func (poly PolygonShape) TestPoint(xf Transform, p Vec2) bool {
	pLocal := RotVec2MulT(xf.Q, Vec2Sub(p, xf.P))

	for i := 0; i < poly.Count; i++ {
		dot := Vec2Dot(poly.Normals[i], Vec2Sub(pLocal, poly.Vertices[i]))
		if dot > 0.0 {
			return false
		}
	}

	return true
}

func (poly PolygonShape) RayCast(output *RayCastOutput, input RayCastInput, xf Transform, childIndex int) bool {

	// Put the ray into the polygon's frame of reference.
	p1 := RotVec2MulT(xf.Q, Vec2Sub(input.P1, xf.P))
	p2 := RotVec2MulT(xf.Q, Vec2Sub(input.P2, xf.P))
	d := Vec2Sub(p2, p1)

	lower := 0.0
	upper := input.MaxFraction

	index := -1

	for i := 0; i < poly.Count; i++ {
		// p = p1 + a * d
		// dot(normal, p - v) = 0
		// dot(normal, p1 - v) + a * dot(normal, d) = 0
		numerator := Vec2Dot(poly.Normals[i], Vec2Sub(poly.Vertices[i], p1))
		denominator := Vec2Dot(poly.Normals[i], d)

		if denominator == 0.0 {
			if numerator < 0.0 {
				return false
			}
		} else {
			// Note: we want this predicate without division:
			// lower < numerator / denominator, where denominator < 0
			// Since denominator < 0, we have to flip the inequality:
			// lower < numerator / denominator <==> denominator * lower > numerator.
			if denominator < 0.0 && numerator < lower*denominator {
				// Increase lower.
				// The segment enters this half-space.
				lower = numerator / denominator
				index = i
			} else if denominator > 0.0 && numerator < upper*denominator {
				// Decrease upper.
				// The segment exits this half-space.
				upper = numerator / denominator
			}
		}

		if upper < lower {
			return false
		}
	}

	Assert(0.0 <= lower && lower <= input.MaxFraction)

	if index >= 0 {
		output.Fraction = lower
		output.Normal = RotVec2Mul(xf.Q, poly.Normals[index])
		return true
	}

	return false
}

func (poly PolygonShape) ComputeAABB(aabb *AABB, xf Transform, childIndex int) {

	lower := TransformVec2Mul(xf, poly.Vertices[0])
	upper := lower

	for i := 1; i < poly.Count; i++ {
		v := TransformVec2Mul(xf, poly.Vertices[i])
		lower = Vec2Min(lower, v)
		upper = Vec2Max(upper, v)
	}

	r := MakeVec2(poly.Radius, poly.Radius)
	aabb.LowerBound = Vec2Sub(lower, r)
	aabb.UpperBound = Vec2Add(upper, r)
}

/// Validate convexity. This is a very time consuming operation.
/// @returns true if valid
func (poly PolygonShape) Validate() bool {
	for i := 0; i < poly.Count; i++ {
		i1 := i
		i2 := 0
		if i < poly.Count-1 {
			i2 = i1 + 1
		}

		p := poly.Vertices[i1]
		e := Vec2Sub(poly.Vertices[i2], p)

		for j := 0; j < poly.Count; j++ {
			if j == i1 || j == i2 {
				continue
			}

			v := Vec2Sub(poly.Vertices[j], p)
			c := Vec2Cross(e, v)
			if c < 0.0 {
				return false
			}
		}
	}

	return true
}
