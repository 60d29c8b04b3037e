package material

import (
	"math/rand"
	"testing"

	"github.com/df07/go-weekend-raytracer/pkg/core"
)

func TestLambertian_AlwaysScatters(t *testing.T) {
	mat := NewLambertian(core.NewVec3(0.5, 0.5, 0.5))
	random := rand.New(rand.NewSource(42))

	hit := HitRecord{
		Point:     core.NewVec3(0, 0, -1),
		Normal:    core.NewVec3(0, 0, 1),
		T:         1.0,
		FrontFace: true,
		Material:  mat,
	}
	rayIn := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))

	for i := 0; i < 1000; i++ {
		scatter, didScatter := mat.Scatter(rayIn, hit, random)
		if !didScatter {
			t.Fatal("Lambertian should never absorb")
		}
		if scatter.Attenuation != mat.Albedo {
			t.Fatalf("Expected attenuation %v, got %v", mat.Albedo, scatter.Attenuation)
		}
		if scatter.Scattered.Origin != hit.Point {
			t.Fatalf("Scattered ray should originate at the hit point, got %v", scatter.Scattered.Origin)
		}
		if scatter.Scattered.Direction.NearZero() {
			t.Fatal("Scatter direction should never be degenerate")
		}
	}
}

func TestLambertian_ScatterDirectionDistribution(t *testing.T) {
	mat := NewLambertian(core.NewVec3(0.8, 0.8, 0.8))
	random := rand.New(rand.NewSource(42))

	normal := core.NewVec3(0, 1, 0)
	hit := HitRecord{
		Point:     core.NewVec3(0, 0, 0),
		Normal:    normal,
		T:         1.0,
		FrontFace: true,
		Material:  mat,
	}
	rayIn := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0))

	for i := 0; i < 1000; i++ {
		scatter, _ := mat.Scatter(rayIn, hit, random)

		// Direction is normal + unit vector, so it lies within the unit
		// sphere centered on the normal tip and always points above the
		// surface or tangent to it
		offset := scatter.Scattered.Direction.Subtract(normal)
		if offset.Length() > 1.0+1e-12 {
			t.Fatalf("Direction %v too far from normal tip", scatter.Scattered.Direction)
		}
	}
}
