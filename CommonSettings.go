package phys2d

import "math"

func Assert(a bool) {
	if !a {
		panic("Assert")
	}
}

const MaxFloat = math.MaxFloat64
const Epsilon = math.SmallestNonzeroFloat64
const Pi = math.Pi

/// @file
/// Global tuning constants based on meters-kilograms-seconds (MKS) units.
///

// Collision

/// The maximum number of contact points between two convex shapes. Do
/// not change this value.
const MaxManifoldPoints = 2

/// The maximum number of vertices on a convex polygon.
const MaxPolygonVertices = 8

/// This is used to fatten AABBs in the dynamic tree. This allows proxies
/// to move by a small amount without triggering a tree adjustment.
/// This is in meters.
const AabbExtension = 0.1

/// This is used to fatten AABBs in the dynamic tree. This is used to predict
/// the future position based on the current displacement.
/// This is a dimensionless multiplier.
const AabbMultiplier = 2.0

/// A small length used as a collision and constraint tolerance. Usually it is
/// chosen to be numerically significant, but visually insignificant.
const LinearSlop = 0.005

/// A small angle used as a collision and constraint tolerance. Usually it is
/// chosen to be numerically significant, but visually insignificant.
const AngularSlop = (2.0 / 180.0 * Pi)

/// The radius of the polygon/edge shape skin. This should not be modified.
/// Making it larger may create artifacts for vertex collision.
const PolygonRadius = (2.0 * LinearSlop)

// Contacts

/// The number of contact records the pool allocates up front. Pairing bursts
/// below this size never touch the allocator.
const ContactPoolPrewarm = 128

/// Worklists at or below this size are updated on the calling goroutine;
/// larger worklists fan out across workers.
const MinContactsForParallel = 128

/// The number of contacts each worker takes per chunk during a parallel
/// narrow-phase update.
const ContactsPerChunk = 32
