package phys2d

/// A joint edge is used to connect bodies and joints together
/// in a joint graph where each body is a node and each joint
/// is an edge. A joint edge belongs to a doubly linked list
/// maintained in each attached body. Each joint has two joint
/// nodes, one for each attached body.
type JointEdge struct {
	Other *Body      ///< provides quick access to the other body attached.
	Joint *Joint     ///< the joint
	Prev  *JointEdge ///< the previous joint edge in the body's joint list
	Next  *JointEdge ///< the next joint edge in the body's joint list
}

/// Joint definitions are used to construct joints.
type JointDef struct {

	/// Use this to attach application specific data to your joints.
	UserData interface{}

	/// The first attached body.
	BodyA *Body

	/// The second attached body.
	BodyB *Body

	/// Set this flag to true if the attached bodies should collide.
	CollideConnected bool
}

func MakeJointDef() JointDef {
	res := JointDef{}
	res.UserData = nil
	res.BodyA = nil
	res.BodyB = nil
	res.CollideConnected = false

	return res
}

/// A joint constrains two bodies together. The constraint itself is resolved
/// outside this library; here a joint only contributes connectivity and the
/// collide-connected rule used when filtering contacts.
type Joint struct {
	Prev             *Joint
	Next             *Joint
	EdgeA            *JointEdge
	EdgeB            *JointEdge
	BodyA            *Body
	BodyB            *Body
	CollideConnected bool
	UserData         interface{}
}

func NewJoint(def *JointDef) *Joint {
	Assert(def.BodyA != def.BodyB)

	res := Joint{}
	res.Prev = nil
	res.Next = nil
	res.BodyA = def.BodyA
	res.BodyB = def.BodyB
	res.EdgeA = &JointEdge{}
	res.EdgeB = &JointEdge{}
	res.CollideConnected = def.CollideConnected
	res.UserData = def.UserData

	return &res
}

func (j Joint) GetBodyA() *Body {
	return j.BodyA
}

func (j Joint) GetBodyB() *Body {
	return j.BodyB
}

func (j Joint) GetNext() *Joint {
	return j.Next
}

func (j Joint) GetUserData() interface{} {
	return j.UserData
}

func (j *Joint) SetUserData(data interface{}) {
	j.UserData = data
}

/// Short-cut function to determine if either body is inactive.
func (j Joint) IsActive() bool {
	return j.BodyA.CanCollide() && j.BodyB.CanCollide()
}

func (j Joint) IsCollideConnected() bool {
	return j.CollideConnected
}
