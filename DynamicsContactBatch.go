package phys2d

import (
	"sync"
)

/// Per-worklist-slot output of one narrow-phase update. Slots are disjoint
/// between workers, so a batch writes them without any locking.
type ContactUpdateResult struct {
	Status     uint8
	Wake       bool
	WorldPoint Vec2
}

/// Updates one contact and records the outcome in its slot. Writes only
/// contact-owned state and the slot; body state is read, never written.
func UpdateContact(c *Contact, slot *ContactUpdateResult) {
	xfA := c.GetFixtureA().GetBody().GetTransform()
	xfB := c.GetFixtureB().GetBody().GetTransform()

	status, wake := c.Update(xfA, xfB)

	slot.Status = status
	slot.Wake = wake

	if status == ContactStatus.E_startTouching {
		slot.WorldPoint = c.GetWorldPoint()
	}
}

/// Runs the narrow-phase update over the worklist and replays the results.
/// Large worklists fan out in fixed-size chunks; the geometric work is the
/// only parallel part. Everything that touches shared state, waking first
/// and then the notifications, runs sequentially in worklist order.
func (mgr *ContactManager) UpdateContacts(worklist []*Contact) {

	count := len(worklist)

	if cap(mgr.Results) < count {
		mgr.Results = make([]ContactUpdateResult, count)
	}
	results := mgr.Results[:count]

	if count > MinContactsForParallel {
		var wg sync.WaitGroup

		for start := 0; start < count; start += ContactsPerChunk {
			end := start + ContactsPerChunk
			if end > count {
				end = count
			}

			wg.Add(1)
			go func(contacts []*Contact, slots []ContactUpdateResult) {
				for i := range contacts {
					UpdateContact(contacts[i], &slots[i])
				}
				wg.Done()
			}(worklist[start:end], results[start:end])
		}

		wg.Wait()
	} else {
		for i := range worklist {
			UpdateContact(worklist[i], &results[i])
		}
	}

	// Waking mutates shared island state and must never run inside the
	// parallel phase.
	for i := range worklist {
		if results[i].Wake {
			c := worklist[i]
			c.GetFixtureA().GetBody().SetAwake(true)
			c.GetFixtureB().GetBody().SetAwake(true)
		}
	}

	for i := range worklist {
		c := worklist[i]

		switch results[i].Status {
		case ContactStatus.E_startTouching:
			fixtureA := c.GetFixtureA()
			fixtureB := c.GetFixtureB()

			startA := StartCollideEvent{OurFixture: fixtureA, OtherFixture: fixtureB, WorldPoint: results[i].WorldPoint}
			mgr.Bus.RaiseStartCollide(fixtureA.GetBody(), &startA)

			startB := StartCollideEvent{OurFixture: fixtureB, OtherFixture: fixtureA, WorldPoint: results[i].WorldPoint}
			mgr.Bus.RaiseStartCollide(fixtureB.GetBody(), &startB)

		case ContactStatus.E_endTouching:
			fixtureA := c.GetFixtureA()
			fixtureB := c.GetFixtureB()

			// A handler earlier in this pass may already have torn the
			// contact down.
			if fixtureA == nil || fixtureB == nil {
				continue
			}

			endA := EndCollideEvent{OurFixture: fixtureA, OtherFixture: fixtureB}
			mgr.Bus.RaiseEndCollide(fixtureA.GetBody(), &endA)

			endB := EndCollideEvent{OurFixture: fixtureB, OtherFixture: fixtureA}
			mgr.Bus.RaiseEndCollide(fixtureB.GetBody(), &endB)

		case ContactStatus.E_touching, ContactStatus.E_noContact:
			// No notification.

		default:
			Assert(false)
		}
	}
}
