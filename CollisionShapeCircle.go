package phys2d

import (
	"math"
)

type CircleShape struct {
	Shape
	/// Position, relative to the owning body's origin.
	P Vec2
}

func MakeCircleShape() CircleShape {
	return CircleShape{
		Shape: Shape{
			Type:   Shape_Type.E_circle,
			Radius: 0.0,
		},
		P: MakeVec2(0, 0),
	}
}

func NewCircleShape() *CircleShape {
	res := MakeCircleShape()
	return &res
}

func (shape CircleShape) Clone() ShapeInterface {
	clone := NewCircleShape()
	clone.Radius = shape.Radius
	clone.P = shape.P
	return clone
}

func (shape CircleShape) GetChildCount() int {
	return 1
}

func (shape CircleShape) TestPoint(transform Transform, p Vec2) bool {
	center := Vec2Add(transform.P, RotVec2Mul(transform.Q, shape.P))
	d := Vec2Sub(p, center)
	return Vec2Dot(d, d) <= shape.Radius*shape.Radius
}

// Collision Detection in Interactive 3D Environments by Gino van den Bergen
// From Section 3.1.2
// x = s + a * r
// norm(x) = radius
func (shape CircleShape) RayCast(output *RayCastOutput, input RayCastInput, transform Transform, childIndex int) bool {

	position := Vec2Add(transform.P, RotVec2Mul(transform.Q, shape.P))
	s := Vec2Sub(input.P1, position)
	b := s.LengthSquared() - shape.Radius*shape.Radius

	// Solve quadratic equation.
	r := Vec2Sub(input.P2, input.P1)
	c := Vec2Dot(s, r)
	rr := r.LengthSquared()
	sigma := c*c - rr*b

	// Check for negative discriminant and short segment.
	if sigma < 0.0 || rr < Epsilon {
		return false
	}

	// Find the point of intersection of the line with the circle.
	a := -(c + math.Sqrt(sigma))

	// Is the intersection point on the segment?
	if 0.0 <= a && a <= input.MaxFraction*rr {
		a /= rr
		output.Fraction = a
		output.Normal = Vec2Add(s, Vec2MulScalar(a, r))
		output.Normal.Normalize()
		return true
	}

	return false
}

func (shape CircleShape) ComputeAABB(aabb *AABB, transform Transform, childIndex int) {
	p := Vec2Add(transform.P, RotVec2Mul(transform.Q, shape.P))
	aabb.LowerBound.Set(p.X-shape.Radius, p.Y-shape.Radius)
	aabb.UpperBound.Set(p.X+shape.Radius, p.Y+shape.Radius)
}
