package material

import (
	"math/rand"

	"github.com/df07/go-weekend-raytracer/pkg/core"
)

// Material interface for surfaces that can scatter rays
type Material interface {
	// Scatter decides how a ray continues after hitting the surface.
	// The bool result is false when the ray is absorbed, which terminates
	// the light path.
	Scatter(rayIn core.Ray, hit HitRecord, random *rand.Rand) (ScatterResult, bool)
}

// ScatterResult contains the result of material scattering
type ScatterResult struct {
	Scattered   core.Ray  // The outgoing ray
	Attenuation core.Vec3 // Color attenuation carried by the outgoing ray
}

// HitRecord contains information about a ray-object intersection.
// It is produced fresh per intersection query and read by the scattering
// step; it is not retained across bounces.
type HitRecord struct {
	Point     core.Vec3 // Point of intersection
	Normal    core.Vec3 // Surface normal, always oriented against the ray
	T         float64   // Parameter t along the ray
	FrontFace bool      // Whether the ray hit the outward-facing side
	Material  Material  // Material of the hit object
}

// SetFaceNormal sets the normal vector and determines front/back face.
// The stored normal always satisfies dot(ray.Direction, Normal) <= 0.
func (h *HitRecord) SetFaceNormal(ray core.Ray, outwardNormal core.Vec3) {
	h.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	if h.FrontFace {
		h.Normal = outwardNormal
	} else {
		h.Normal = outwardNormal.Multiply(-1)
	}
}
