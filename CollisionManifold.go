package phys2d

import (
	"math"
)

var ContactFeature_Type = struct {
	E_vertex uint8
	E_face   uint8
}{
	E_vertex: 0,
	E_face:   1,
}

/// The features that intersect to form the contact point
/// This must be 4 bytes or less.
type ContactFeature struct {
	IndexA uint8 ///< Feature index on shapeA
	IndexB uint8 ///< Feature index on shapeB
	TypeA  uint8 ///< The feature type on shapeA
	TypeB  uint8 ///< The feature type on shapeB
}

func MakeContactFeature() ContactFeature {
	return ContactFeature{}
}

/// Contact ids correlate the "same" contact point across manifold updates,
/// which is what makes warm starting possible.
type ContactID ContactFeature

///< Used to quickly compare contact ids.
func (v ContactID) Key() uint32 {
	var key uint32 = 0
	key |= uint32(v.IndexA)
	key |= uint32(v.IndexB) << 8
	key |= uint32(v.TypeA) << 16
	key |= uint32(v.TypeB) << 24
	return key
}

func (v *ContactID) SetKey(key uint32) {
	(*v).IndexA = uint8(key & 0xFF)
	(*v).IndexB = byte(key >> 8 & 0xFF)
	(*v).TypeA = byte(key >> 16 & 0xFF)
	(*v).TypeB = byte(key >> 24 & 0xFF)
}

/// A manifold point is a contact point belonging to a contact
/// manifold. It holds details related to the geometry and dynamics
/// of the contact points.
/// The local point usage depends on the manifold type:
/// -e_circles: the local center of circleB
/// -e_faceA: the local center of cirlceB or the clip point of polygonB
/// -e_faceB: the clip point of polygonA
/// This structure is stored across time steps, so we keep it small.
/// Note: the impulses are used for internal caching and may not
/// provide reliable contact forces, especially for high speed collisions.
type ManifoldPoint struct {
	LocalPoint     Vec2      ///< usage depends on manifold type
	NormalImpulse  float64   ///< the non-penetration impulse
	TangentImpulse float64   ///< the friction impulse
	Id             ContactID ///< uniquely identifies a contact point between two shapes
}

/// A manifold for two touching convex shapes.
/// Two kinds of contact are supported:
/// - clip point versus plane with radius
/// - point versus point with radius (circles)
/// The local point usage depends on the manifold type:
/// -e_circles: the local center of circleA
/// -e_faceA: the center of faceA
/// -e_faceB: the center of faceB
/// Similarly the local normal usage:
/// -e_circles: not used
/// -e_faceA: the normal on polygonA
/// -e_faceB: the normal on polygonB
/// We store contacts in this way so that position correction can
/// account for movement, which is critical for continuous physics.
/// All contact scenarios must be expressed in one of these types.
/// This structure is stored across time steps, so we keep it small.

var Manifold_Type = struct {
	E_circles uint8
	E_faceA   uint8
	E_faceB   uint8
}{
	E_circles: 0,
	E_faceA:   1,
	E_faceB:   2,
}

type Manifold struct {
	Points      [MaxManifoldPoints]ManifoldPoint ///< the points of contact
	LocalNormal Vec2                             ///< not use for Type::e_points
	LocalPoint  Vec2                             ///< usage depends on manifold type
	Type        uint8                            // Manifold_Type
	PointCount  int                              ///< the number of manifold points
}

func NewManifold() *Manifold {
	return &Manifold{}
}

/// This is used to compute the current state of a contact manifold.
type WorldManifold struct {
	Normal      Vec2                       ///< world vector pointing from A to B
	Points      [MaxManifoldPoints]Vec2    ///< world contact point (point of intersection)
	Separations [MaxManifoldPoints]float64 ///< a negative value indicates overlap, in meters
}

func MakeWorldManifold() WorldManifold {
	return WorldManifold{}
}

/// Used for computing contact manifolds.
type ClipVertex struct {
	V  Vec2
	Id ContactID
}

/// Ray-cast input data. The ray extends from p1 to p1 + maxFraction * (p2 - p1).
type RayCastInput struct {
	P1, P2      Vec2
	MaxFraction float64
}

func MakeRayCastInput() RayCastInput {
	return RayCastInput{
		P1:          MakeVec2(0, 0),
		P2:          MakeVec2(0, 0),
		MaxFraction: 0,
	}
}

func NewRayCastInput() *RayCastInput {
	res := MakeRayCastInput()
	return &res
}

/// Ray-cast output data. The ray hits at p1 + fraction * (p2 - p1), where p1 and p2
/// come from RayCastInput.
type RayCastOutput struct {
	Normal   Vec2
	Fraction float64
}

func MakeRayCastOutput() RayCastOutput {
	return RayCastOutput{
		Normal:   MakeVec2(0, 0),
		Fraction: 0,
	}
}

/// An axis aligned bounding box.
type AABB struct {
	LowerBound Vec2 ///< the lower vertex
	UpperBound Vec2 ///< the upper vertex
}

func MakeAABB() AABB {
	return AABB{
		LowerBound: MakeVec2(0, 0),
		UpperBound: MakeVec2(0, 0),
	}
}

func NewAABB() *AABB {
	res := MakeAABB()
	return &res
}

/// Get the center of the AABB.
func (bb AABB) GetCenter() Vec2 {
	return Vec2MulScalar(
		0.5,
		Vec2Add(bb.LowerBound, bb.UpperBound),
	)
}

/// Get the extents of the AABB (half-widths).
func (bb AABB) GetExtents() Vec2 {
	return Vec2MulScalar(
		0.5,
		Vec2Sub(bb.UpperBound, bb.LowerBound),
	)
}

/// Get the perimeter length
func (bb AABB) GetPerimeter() float64 {
	wx := bb.UpperBound.X - bb.LowerBound.X
	wy := bb.UpperBound.Y - bb.LowerBound.Y
	return 2.0 * (wx + wy)
}

/// Combine an AABB into this one.
func (bb *AABB) CombineInPlace(aabb AABB) {
	bb.LowerBound = Vec2Min(bb.LowerBound, aabb.LowerBound)
	bb.UpperBound = Vec2Max(bb.UpperBound, aabb.UpperBound)
}

/// Combine two AABBs into this one.
func (bb *AABB) CombineTwoInPlace(aabb1, aabb2 AABB) {
	bb.LowerBound = Vec2Min(aabb1.LowerBound, aabb2.LowerBound)
	bb.UpperBound = Vec2Max(aabb1.UpperBound, aabb2.UpperBound)
}

/// Does this aabb contain the provided AABB.
func (bb AABB) Contains(aabb AABB) bool {

	return (bb.LowerBound.X <= aabb.LowerBound.X &&
		bb.LowerBound.Y <= aabb.LowerBound.Y &&
		aabb.UpperBound.X <= bb.UpperBound.X &&
		aabb.UpperBound.Y <= bb.UpperBound.Y)
}

func (bb AABB) IsValid() bool {
	d := Vec2Sub(bb.UpperBound, bb.LowerBound)
	valid := d.X >= 0.0 && d.Y >= 0.0
	valid = valid && bb.LowerBound.IsValid() && bb.UpperBound.IsValid()
	return valid
}

func TestOverlapBoundingBoxes(a, b AABB) bool {

	d1 := Vec2Sub(b.LowerBound, a.UpperBound)
	d2 := Vec2Sub(a.LowerBound, b.UpperBound)

	if d1.X > 0.0 || d1.Y > 0.0 {
		return false
	}

	if d2.X > 0.0 || d2.Y > 0.0 {
		return false
	}

	return true
}

/// Compute the tightest AABB enclosing this box after applying a transform.
/// Used to compare boxes kept by different partitions in a shared world frame.
func TransformAABB(T Transform, bb AABB) AABB {
	center := TransformVec2Mul(T, bb.GetCenter())

	extents := bb.GetExtents()
	absC := math.Abs(T.Q.C)
	absS := math.Abs(T.Q.S)
	worldExtents := MakeVec2(
		absC*extents.X+absS*extents.Y,
		absS*extents.X+absC*extents.Y,
	)

	return AABB{
		LowerBound: Vec2Sub(center, worldExtents),
		UpperBound: Vec2Add(center, worldExtents),
	}
}

/// Compute the tightest AABB enclosing this box after applying the inverse
/// of a transform.
func InvTransformAABB(T Transform, bb AABB) AABB {
	center := TransformVec2MulT(T, bb.GetCenter())

	// The absolute rotation matrix is symmetric, so the extents expand
	// the same way as under the forward rotation.
	extents := bb.GetExtents()
	absC := math.Abs(T.Q.C)
	absS := math.Abs(T.Q.S)
	localExtents := MakeVec2(
		absC*extents.X+absS*extents.Y,
		absS*extents.X+absC*extents.Y,
	)

	return AABB{
		LowerBound: Vec2Sub(center, localExtents),
		UpperBound: Vec2Add(center, localExtents),
	}
}

func (wm *WorldManifold) Initialize(manifold *Manifold, xfA Transform, radiusA float64, xfB Transform, radiusB float64) {
	if manifold.PointCount == 0 {
		return
	}

	switch manifold.Type {
	case Manifold_Type.E_circles:
		{
			wm.Normal.Set(1.0, 0.0)
			pointA := TransformVec2Mul(xfA, manifold.LocalPoint)
			pointB := TransformVec2Mul(xfB, manifold.Points[0].LocalPoint)
			if Vec2DistanceSquared(pointA, pointB) > Epsilon*Epsilon {
				wm.Normal = Vec2Sub(pointB, pointA)
				wm.Normal.Normalize()
			}

			cA := Vec2Add(pointA, Vec2MulScalar(radiusA, wm.Normal))
			cB := Vec2Sub(pointB, Vec2MulScalar(radiusB, wm.Normal))

			wm.Points[0] = Vec2MulScalar(0.5, Vec2Add(cA, cB))
			wm.Separations[0] = Vec2Dot(Vec2Sub(cB, cA), wm.Normal)
		}

	case Manifold_Type.E_faceA:
		{
			wm.Normal = RotVec2Mul(xfA.Q, manifold.LocalNormal)
			planePoint := TransformVec2Mul(xfA, manifold.LocalPoint)

			for i := 0; i < manifold.PointCount; i++ {
				clipPoint := TransformVec2Mul(xfB, manifold.Points[i].LocalPoint)
				cA := Vec2Add(
					clipPoint,
					Vec2MulScalar(
						radiusA-Vec2Dot(
							Vec2Sub(clipPoint, planePoint),
							wm.Normal,
						),
						wm.Normal,
					),
				)
				cB := Vec2Sub(clipPoint, Vec2MulScalar(radiusB, wm.Normal))
				wm.Points[i] = Vec2MulScalar(0.5, Vec2Add(cA, cB))
				wm.Separations[i] = Vec2Dot(
					Vec2Sub(cB, cA),
					wm.Normal,
				)
			}
		}

	case Manifold_Type.E_faceB:
		{
			wm.Normal = RotVec2Mul(xfB.Q, manifold.LocalNormal)
			planePoint := TransformVec2Mul(xfB, manifold.LocalPoint)

			for i := 0; i < manifold.PointCount; i++ {
				clipPoint := TransformVec2Mul(xfA, manifold.Points[i].LocalPoint)
				cB := Vec2Add(clipPoint, Vec2MulScalar(
					radiusB-Vec2Dot(
						Vec2Sub(clipPoint, planePoint),
						wm.Normal,
					), wm.Normal,
				))
				cA := Vec2Sub(clipPoint, Vec2MulScalar(radiusA, wm.Normal))
				wm.Points[i] = Vec2MulScalar(0.5, Vec2Add(cA, cB))
				wm.Separations[i] = Vec2Dot(
					Vec2Sub(cA, cB),
					wm.Normal,
				)
			}

			// Ensure normal points from A to B.
			wm.Normal = wm.Normal.OperatorNegate()
		}
	}
}

// From Real-time Collision Detection, p179.
func (bb AABB) RayCast(output *RayCastOutput, input RayCastInput) bool {
	tmin := -MaxFloat
	tmax := MaxFloat

	p := input.P1
	d := Vec2Sub(input.P2, input.P1)

	normal := MakeVec2(0, 0)

	for i := 0; i < 2; i++ {
		var pI, lowerI, upperI, dI float64
		if i == 0 {
			pI, lowerI, upperI, dI = p.X, bb.LowerBound.X, bb.UpperBound.X, d.X
		} else {
			pI, lowerI, upperI, dI = p.Y, bb.LowerBound.Y, bb.UpperBound.Y, d.Y
		}

		if math.Abs(dI) < Epsilon {
			// Parallel.
			if pI < lowerI || upperI < pI {
				return false
			}
		} else {
			inv_d := 1.0 / dI
			t1 := (lowerI - pI) * inv_d
			t2 := (upperI - pI) * inv_d

			// Sign of the normal vector.
			s := -1.0

			if t1 > t2 {
				t1, t2 = t2, t1
				s = 1.0
			}

			// Push the min up
			if t1 > tmin {
				normal.SetZero()
				if i == 0 {
					normal.X = s
				} else {
					normal.Y = s
				}
				tmin = t1
			}

			// Pull the max down
			tmax = math.Min(tmax, t2)

			if tmin > tmax {
				return false
			}
		}
	}

	// Does the ray start inside the box?
	// Does the ray intersect beyond the max fraction?
	if tmin < 0.0 || input.MaxFraction < tmin {
		return false
	}

	// Intersection.
	output.Fraction = tmin
	output.Normal = normal
	return true
}

// Sutherland-Hodgman clipping.
func ClipSegmentToLine(vOut []ClipVertex, vIn []ClipVertex, normal Vec2, offset float64, vertexIndexA int) int {

	// Start with no output points
	numOut := 0

	// Calculate the distance of end points to the line
	distance0 := Vec2Dot(normal, vIn[0].V) - offset
	distance1 := Vec2Dot(normal, vIn[1].V) - offset

	// If the points are behind the plane
	if distance0 <= 0.0 {
		vOut[numOut] = vIn[0]
		numOut++
	}

	if distance1 <= 0.0 {
		vOut[numOut] = vIn[1]
		numOut++
	}

	// If the points are on different sides of the plane
	if distance0*distance1 < 0.0 {
		// Find intersection point of edge and plane
		interp := distance0 / (distance0 - distance1)
		vOut[numOut].V = Vec2Add(
			vIn[0].V,
			Vec2MulScalar(interp, Vec2Sub(vIn[1].V, vIn[0].V)),
		)

		// VertexA is hitting edgeB.
		vOut[numOut].Id.IndexA = uint8(vertexIndexA)
		vOut[numOut].Id.IndexB = vIn[0].Id.IndexB
		vOut[numOut].Id.TypeA = ContactFeature_Type.E_vertex
		vOut[numOut].Id.TypeB = ContactFeature_Type.E_face
		numOut++
	}

	return numOut
}
