package phys2d

/// A recycling store for contact records: a growable arena of records plus
/// a stack of free slot indices. Acquire pops a slot, release clears the
/// record and pushes its slot back. Acquire never fails; when the stack
/// runs dry the arena grows. Records keep a stable address for their whole
/// lifetime, so fixtures and bodies may hold plain pointers into the pool.
type ContactPool struct {
	Arena []*Contact
	Free  *IndexStack
}

func MakeContactPool() ContactPool {
	pool := ContactPool{
		Arena: make([]*Contact, 0, ContactPoolPrewarm),
		Free:  NewIndexStack(ContactPoolPrewarm),
	}

	for i := 0; i < ContactPoolPrewarm; i++ {
		pool.Arena = append(pool.Arena, &Contact{PoolIndex: i})
		pool.Free.Push(i)
	}

	return pool
}

func NewContactPool() *ContactPool {
	res := MakeContactPool()
	return &res
}

func (pool *ContactPool) Acquire() *Contact {
	index := pool.Free.Pop()

	if index == -1 {
		index = len(pool.Arena)
		pool.Arena = append(pool.Arena, &Contact{PoolIndex: index})
	}

	return pool.Arena[index]
}

/// Clears the record and returns its slot to the free stack. The caller is
/// responsible for unlinking the contact from all fixture and body
/// back-references first.
func (pool *ContactPool) Release(contact *Contact) {
	contact.Type = ContactType.E_notSupported
	contact.Flags = 0
	contact.Prev = nil
	contact.Next = nil
	contact.NodeA = ContactEdge{}
	contact.NodeB = ContactEdge{}
	contact.FixtureA = nil
	contact.FixtureB = nil
	contact.ChildIndexA = 0
	contact.ChildIndexB = 0
	contact.Manifold.PointCount = 0
	contact.Friction = 0.0
	contact.Restitution = 0.0
	contact.TangentSpeed = 0.0

	pool.Free.Push(contact.PoolIndex)
}

/// The number of records the arena holds, free or live.
func (pool ContactPool) GetCapacity() int {
	return len(pool.Arena)
}

func (pool ContactPool) GetFreeCount() int {
	return pool.Free.GetCount()
}
