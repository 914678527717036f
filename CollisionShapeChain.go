package phys2d

/// A chain shape is a free form sequence of line segments.
/// The chain has two-sided collision, so you can use inside and outside collision.
/// Therefore, you may use any winding order.
/// Since there may be many vertices, they are allocated on the memory heap.
/// Connectivity information is used to create smooth collisions.
/// @warning the chain will not collide properly if there are self-intersections.
type ChainShape struct {
	Shape

	/// The vertices. Owned by this class.
	Vertices []Vec2

	/// The vertex count.
	Count int

	PrevVertex, NextVertex       Vec2
	HasPrevVertex, HasNextVertex bool
}

func MakeChainShape() ChainShape {
	return ChainShape{
		Shape: Shape{
			Type:   Shape_Type.E_chain,
			Radius: PolygonRadius,
		},
	}
}

func NewChainShape() *ChainShape {
	res := MakeChainShape()
	return &res
}

func (chain *ChainShape) Clear() {
	chain.Vertices = nil
	chain.Count = 0
}

/// Create a loop. This automatically adjusts connectivity.
/// @param vertices an array of vertices, these are copied
/// @param count the vertex count
func (chain *ChainShape) CreateLoop(vertices []Vec2, count int) {

	Assert(chain.Vertices == nil && chain.Count == 0)
	Assert(count >= 3)

	if count < 3 {
		return
	}

	for i := 1; i < count; i++ {
		// If the code crashes here, it means your vertices are too close together.
		Assert(Vec2DistanceSquared(vertices[i-1], vertices[i]) > LinearSlop*LinearSlop)
	}

	chain.Count = count + 1
	chain.Vertices = make([]Vec2, chain.Count)
	copy(chain.Vertices, vertices)
	chain.Vertices[count] = chain.Vertices[0]
	chain.PrevVertex = chain.Vertices[chain.Count-2]
	chain.NextVertex = chain.Vertices[1]
	chain.HasPrevVertex = true
	chain.HasNextVertex = true
}

/// Create a chain with isolated end vertices.
/// @param vertices an array of vertices, these are copied
/// @param count the vertex count
func (chain *ChainShape) CreateChain(vertices []Vec2, count int) {

	Assert(chain.Vertices == nil && chain.Count == 0)
	Assert(count >= 2)

	for i := 1; i < count; i++ {
		// If the code crashes here, it means your vertices are too close together.
		Assert(Vec2DistanceSquared(vertices[i-1], vertices[i]) > LinearSlop*LinearSlop)
	}

	chain.Count = count
	chain.Vertices = make([]Vec2, count)
	copy(chain.Vertices, vertices)

	chain.HasPrevVertex = false
	chain.HasNextVertex = false

	chain.PrevVertex.SetZero()
	chain.NextVertex.SetZero()
}

/// Establish connectivity to a vertex that precedes the first vertex.
/// Don't call this for loops.
func (chain *ChainShape) SetPrevVertex(prevVertex Vec2) {
	chain.PrevVertex = prevVertex
	chain.HasPrevVertex = true
}

/// Establish connectivity to a vertex that follows the last vertex.
/// Don't call this for loops.
func (chain *ChainShape) SetNextVertex(nextVertex Vec2) {
	chain.NextVertex = nextVertex
	chain.HasNextVertex = true
}

func (chain ChainShape) Clone() ShapeInterface {
	clone := NewChainShape()
	clone.CreateChain(chain.Vertices, chain.Count)
	clone.PrevVertex = chain.PrevVertex
	clone.NextVertex = chain.NextVertex
	clone.HasPrevVertex = chain.HasPrevVertex
	clone.HasNextVertex = chain.HasNextVertex
	return clone
}

/// An edge per segment.
func (chain ChainShape) GetChildCount() int {
	return chain.Count - 1
}

/// Get a child edge, with adjacency taken from the neighbouring segments.
func (chain ChainShape) GetChildEdge(edge *EdgeShape, index int) {
	Assert(0 <= index && index < chain.Count-1)

	edge.Type = Shape_Type.E_edge
	edge.Radius = chain.Radius

	edge.Vertex1 = chain.Vertices[index+0]
	edge.Vertex2 = chain.Vertices[index+1]

	if index > 0 {
		edge.Vertex0 = chain.Vertices[index-1]
		edge.HasVertex0 = true
	} else {
		edge.Vertex0 = chain.PrevVertex
		edge.HasVertex0 = chain.HasPrevVertex
	}

	if index < chain.Count-2 {
		edge.Vertex3 = chain.Vertices[index+2]
		edge.HasVertex3 = true
	} else {
		edge.Vertex3 = chain.NextVertex
		edge.HasVertex3 = chain.HasNextVertex
	}
}

/// This always return false.
func (chain ChainShape) TestPoint(xf Transform, p Vec2) bool {
	return false
}

func (chain ChainShape) RayCast(output *RayCastOutput, input RayCastInput, xf Transform, childIndex int) bool {
	Assert(childIndex < chain.Count)

	edgeShape := MakeEdgeShape()

	i1 := childIndex
	i2 := childIndex + 1
	if i2 == chain.Count {
		i2 = 0
	}

	edgeShape.Vertex1 = chain.Vertices[i1]
	edgeShape.Vertex2 = chain.Vertices[i2]

	return edgeShape.RayCast(output, input, xf, 0)
}

func (chain ChainShape) ComputeAABB(aabb *AABB, xf Transform, childIndex int) {
	Assert(childIndex < chain.Count)

	i1 := childIndex
	i2 := childIndex + 1
	if i2 == chain.Count {
		i2 = 0
	}

	v1 := TransformVec2Mul(xf, chain.Vertices[i1])
	v2 := TransformVec2Mul(xf, chain.Vertices[i2])

	aabb.LowerBound = Vec2Min(v1, v2)
	aabb.UpperBound = Vec2Max(v1, v2)
}
