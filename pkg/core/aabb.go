package core

import "math"

// AABB is an axis-aligned bounding box with the invariant Min[a] <=
// Max[a] for every axis a.
type AABB struct {
	Min Vec3
	Max Vec3
}

// NewAABB creates an AABB from min and max corners. Callers that can't
// guarantee Min <= Max per axis should use NewAABBFromPoints instead.
func NewAABB(min, max Vec3) AABB {
	return AABB{Min: min, Max: max}
}

// NewAABBFromPoints creates the tightest AABB containing all the given
// points, so the Min<=Max invariant holds regardless of input order.
func NewAABBFromPoints(points ...Vec3) AABB {
	if len(points) == 0 {
		return AABB{}
	}

	min := points[0]
	max := points[0]

	for _, p := range points[1:] {
		min.X = math.Min(min.X, p.X)
		min.Y = math.Min(min.Y, p.Y)
		min.Z = math.Min(min.Z, p.Z)

		max.X = math.Max(max.X, p.X)
		max.Y = math.Max(max.Y, p.Y)
		max.Z = math.Max(max.Z, p.Z)
	}

	return AABB{Min: min, Max: max}
}

// Merged returns an AABB that bounds both a and b.
func Merged(a, b AABB) AABB {
	return NewAABBFromPoints(a.Min, a.Max, b.Min, b.Max)
}

// Union returns an AABB that bounds this AABB and another.
func (aabb AABB) Union(other AABB) AABB {
	return Merged(aabb, other)
}

// Contains reports whether p lies within the box (inclusive).
func (aabb AABB) Contains(p Vec3) bool {
	return p.X >= aabb.Min.X && p.X <= aabb.Max.X &&
		p.Y >= aabb.Min.Y && p.Y <= aabb.Max.Y &&
		p.Z >= aabb.Min.Z && p.Z <= aabb.Max.Z
}

// Centroid returns the center point of the box.
func (aabb AABB) Centroid() Vec3 {
	return aabb.Min.Add(aabb.Max).Multiply(0.5)
}

// Diagonal returns the extent of the box along each axis.
func (aabb AABB) Diagonal() Vec3 {
	return aabb.Max.Subtract(aabb.Min)
}

// SurfaceArea returns 2*(dx*dy + dx*dz + dy*dz).
func (aabb AABB) SurfaceArea() F {
	d := aabb.Diagonal()
	return 2.0 * (d.X*d.Y + d.X*d.Z + d.Y*d.Z)
}

// LongestAxis returns the axis (0=X, 1=Y, 2=Z) with the largest extent,
// with ties broken X > Y > Z.
func (aabb AABB) LongestAxis() int {
	d := aabb.Diagonal()
	if d.X >= d.Y && d.X >= d.Z {
		return 0
	}
	if d.Y >= d.Z {
		return 1
	}
	return 2
}

func (aabb AABB) axis(a int) (min, max F) {
	switch a {
	case 0:
		return aabb.Min.X, aabb.Max.X
	case 1:
		return aabb.Min.Y, aabb.Max.Y
	default:
		return aabb.Min.Z, aabb.Max.Z
	}
}

func component(v Vec3, a int) F {
	switch a {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

// IntersectsRay performs the slab test. A flat axis (Min==Max) is
// skipped rather than producing NaN through 0/0 division -- it is
// treated as always-intersecting on that axis, constrained only by the
// other two.
func (aabb AABB) IntersectsRay(r Ray, tMin, tMax F) bool {
	for a := 0; a < 3; a++ {
		lo, hi := aabb.axis(a)
		if lo == hi {
			continue
		}

		dir := component(r.Direction, a)
		origin := component(r.Origin, a)

		invD := 1.0 / dir
		t0 := (lo - origin) * invD
		t1 := (hi - origin) * invD
		if invD < 0 {
			t0, t1 = t1, t0
		}

		if t0 > tMin {
			tMin = t0
		}
		if t1 < tMax {
			tMax = t1
		}
		if tMax <= tMin {
			return false
		}
	}

	return true
}
