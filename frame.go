package roadgeom

import (
	"github.com/golang/geo/r3"
)

// RigidTransform maps a segment's local frame to world coordinates: a
// rotation by the start heading about the z axis followed by a translation
// to the start point.
type RigidTransform struct {
	Origin  r3.Vector
	Heading float64

	toWorld Affine
	toLocal Affine
}

// NewRigidTransform returns the frame whose origin is origin and whose x
// axis points along heading.
func NewRigidTransform(origin r3.Vector, heading float64) RigidTransform {
	aff := Translate(Vec(origin.X, origin.Y)).Mul(Rotate(heading))
	return RigidTransform{
		Origin:  origin,
		Heading: heading,
		toWorld: aff,
		toLocal: aff.Invert(),
	}
}

// ToWorld maps a local point into world coordinates.
func (rt RigidTransform) ToWorld(v r3.Vector) r3.Vector {
	pt := PtFromVector(v).Transform(rt.toWorld)
	return pt.Vector(v.Z + rt.Origin.Z)
}

// ToLocal maps a world point into the local frame.
func (rt RigidTransform) ToLocal(v r3.Vector) r3.Vector {
	pt := PtFromVector(v).Transform(rt.toLocal)
	return pt.Vector(v.Z - rt.Origin.Z)
}

// HeadingToWorld converts a heading relative to the frame into a world
// heading.
func (rt RigidTransform) HeadingToWorld(h float64) float64 {
	return rt.Heading + h
}
