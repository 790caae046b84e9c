package physics

import rl "github.com/gen2brain/raylib-go/raylib"

// parallelEpsilon is the smallest |n·d| treated as a real plane crossing.
const parallelEpsilon = 1e-6

// RayPlane intersects a ray with the infinite plane through point with the
// given normal. Only hits in front of the ray origin count.
func RayPlane(ray rl.Ray, point, normal rl.Vector3) (float32, bool) {
	direction := rl.Vector3Normalize(ray.Direction)
	denom := rl.Vector3DotProduct(normal, direction)
	if abs(denom) < parallelEpsilon {
		return 0, false
	}

	t := rl.Vector3DotProduct(rl.Vector3Subtract(point, ray.Position), normal) / denom
	if t < 0 {
		return 0, false
	}
	return t, true
}

// RayAABB returns the distance along the ray to the first face of box.
// A ray starting inside the box reports the exit face.
func RayAABB(ray rl.Ray, box AABB, maxDistance float32) (float32, bool) {
	origin := ray.Position
	direction := rl.Vector3Normalize(ray.Direction)

	tmin := float32(-1e30)
	tmax := float32(1e30)

	slabs := [3][4]float32{
		{origin.X, direction.X, box.Min.X, box.Max.X},
		{origin.Y, direction.Y, box.Min.Y, box.Max.Y},
		{origin.Z, direction.Z, box.Min.Z, box.Max.Z},
	}

	for _, s := range slabs {
		o, d, lo, hi := s[0], s[1], s[2], s[3]
		if d == 0 {
			if o < lo || o > hi {
				return 0, false
			}
			continue
		}
		t1 := (lo - o) / d
		t2 := (hi - o) / d
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin = t1
		}
		if t2 < tmax {
			tmax = t2
		}
		if tmin > tmax {
			return 0, false
		}
	}

	if tmax < 0 || tmin > maxDistance {
		return 0, false
	}

	t := tmin
	if t < 0 {
		t = tmax
	}
	if t > maxDistance {
		return 0, false
	}
	return t, true
}

// PointAlong returns origin + normalized(direction) * t.
func PointAlong(ray rl.Ray, t float32) rl.Vector3 {
	return rl.Vector3Add(ray.Position, rl.Vector3Scale(rl.Vector3Normalize(ray.Direction), t))
}
