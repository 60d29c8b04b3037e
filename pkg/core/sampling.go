package core

import "math/rand"

// RandomInUnitSphere generates a random point inside the unit sphere by
// rejection sampling. The zero vector is rejected along with points outside
// the sphere so the result can always be normalized.
func RandomInUnitSphere(random *rand.Rand) Vec3 {
	for {
		// Random point in the [-1,1]³ cube
		p := Vec3{
			X: 2*random.Float64() - 1,
			Y: 2*random.Float64() - 1,
			Z: 2*random.Float64() - 1,
		}
		if lenSq := p.LengthSquared(); lenSq > 0 && lenSq < 1.0 {
			return p
		}
	}
}

// RandomUnitVector generates a uniformly distributed unit vector
func RandomUnitVector(random *rand.Rand) Vec3 {
	return RandomInUnitSphere(random).Normalize()
}

// RandomInUnitDisk generates a random point in the unit disk on the xy plane,
// used to sample ray origins on the defocus disk
func RandomInUnitDisk(random *rand.Rand) Vec3 {
	for {
		p := Vec3{
			X: 2*random.Float64() - 1,
			Y: 2*random.Float64() - 1,
		}
		if p.LengthSquared() < 1.0 {
			return p
		}
	}
}
