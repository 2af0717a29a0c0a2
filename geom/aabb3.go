package geom

// AABB3f is an axis-aligned bounding box in world space.
type AABB3f struct {
	Min, Max Vec3f
}

// FromCenterRadius builds the AABB enclosing a sphere of the given radius
// centered at c — the shape every radius query reduces to before it is
// handed to the spatial map.
func FromCenterRadius(c Vec3f, radius float32) AABB3f {
	offset := Vec3f{X: radius, Y: radius, Z: radius}
	return AABB3f{Min: c.Sub(offset), Max: c.Add(offset)}
}

// Contains reports whether p lies within the box, inclusive of Min and
// exclusive of Max on every axis — the half-open convention that makes
// adjacent query boxes partition space without double-counting a point
// sitting exactly on a shared face.
func (b AABB3f) Contains(p Vec3f) bool {
	return p.X >= b.Min.X && p.X < b.Max.X &&
		p.Y >= b.Min.Y && p.Y < b.Max.Y &&
		p.Z >= b.Min.Z && p.Z < b.Max.Z
}

// Expand returns a copy of b grown by amount on every face.
func (b AABB3f) Expand(amount float32) AABB3f {
	offset := Vec3f{X: amount, Y: amount, Z: amount}
	return AABB3f{Min: b.Min.Sub(offset), Max: b.Max.Add(offset)}
}

// ClosestPoint returns the point within b nearest to p — used by the radius
// query's cell-AABB classification to compute the minimum squared distance
// from a query center to a cell's bounds.
func (b AABB3f) ClosestPoint(p Vec3f) Vec3f {
	return Vec3f{
		X: clampf(p.X, b.Min.X, b.Max.X),
		Y: clampf(p.Y, b.Min.Y, b.Max.Y),
		Z: clampf(p.Z, b.Min.Z, b.Max.Z),
	}
}

// FarthestPoint returns the point on b farthest from p — the complementary
// half of the cell-AABB classification (the "entirely inside sphere" test
// needs the farthest corner, not the closest one).
func (b AABB3f) FarthestPoint(p Vec3f) Vec3f {
	return Vec3f{
		X: farthestf(p.X, b.Min.X, b.Max.X),
		Y: farthestf(p.Y, b.Min.Y, b.Max.Y),
		Z: farthestf(p.Z, b.Min.Z, b.Max.Z),
	}
}

func clampf(v, min, max float32) float32 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func farthestf(v, min, max float32) float32 {
	if v-min > max-v {
		return min
	}
	return max
}
