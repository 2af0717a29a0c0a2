// Package geom provides the minimal vector and bounding-box math shared by
// the spatial index and object manager. It plays the role of the "math
// collaborator" described by the object index: the rest of this module only
// ever depends on Vec3f and AABB3f through value semantics.
package geom

import "fmt"

// Vec3f is a 3D single-precision world-space point or offset.
type Vec3f struct {
	X, Y, Z float32
}

// Sub returns v - other.
func (v Vec3f) Sub(other Vec3f) Vec3f {
	return Vec3f{X: v.X - other.X, Y: v.Y - other.Y, Z: v.Z - other.Z}
}

// Add returns v + other.
func (v Vec3f) Add(other Vec3f) Vec3f {
	return Vec3f{X: v.X + other.X, Y: v.Y + other.Y, Z: v.Z + other.Z}
}

// SqDist returns the squared Euclidean distance between v and other.
func (v Vec3f) SqDist(other Vec3f) float32 {
	d := v.Sub(other)
	return d.X*d.X + d.Y*d.Y + d.Z*d.Z
}

// Axis returns the component of v for axis 0 (X), 1 (Y) or 2 (Z).
func (v Vec3f) Axis(axis int) float32 {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	case 2:
		return v.Z
	default:
		panic(fmt.Sprintf("geom: invalid axis %d", axis))
	}
}

func (v Vec3f) String() string {
	return fmt.Sprintf("(%g, %g, %g)", v.X, v.Y, v.Z)
}
