package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-weekend-raytracer/pkg/core"
)

func TestHittableList_Empty(t *testing.T) {
	list := NewHittableList()
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))

	if _, isHit := list.Hit(ray, 0.001, math.Inf(1)); isHit {
		t.Error("Empty list should never hit")
	}
}

func TestHittableList_NearestHitWins(t *testing.T) {
	near := NewSphere(core.NewVec3(0, 0, -2), 0.5, testMaterial())
	far := NewSphere(core.NewVec3(0, 0, -5), 0.5, testMaterial())

	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))

	tests := []struct {
		name   string
		shapes []Shape
	}{
		{"near first", []Shape{near, far}},
		{"far first", []Shape{far, near}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list := NewHittableList(tt.shapes...)

			hit, isHit := list.Hit(ray, 0.001, math.Inf(1))
			if !isHit {
				t.Fatal("Expected hit")
			}
			if math.Abs(hit.T-1.5) > 1e-9 {
				t.Errorf("Expected nearest hit at t=1.5, got t=%f", hit.T)
			}
		})
	}
}

func TestHittableList_OverlappingSpheres(t *testing.T) {
	// Two overlapping spheres along one ray: the strictly smaller t wins
	a := NewSphere(core.NewVec3(0, 0, -2), 1.0, testMaterial())
	b := NewSphere(core.NewVec3(0, 0, -2.5), 1.0, testMaterial())
	list := NewHittableList(a, b)

	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))

	hit, isHit := list.Hit(ray, 0.001, math.Inf(1))
	if !isHit {
		t.Fatal("Expected hit")
	}
	// Sphere a's near surface is at t=1, b's at t=1.5
	if math.Abs(hit.T-1.0) > 1e-9 {
		t.Errorf("Expected overlapping hit at t=1, got t=%f", hit.T)
	}
}

func TestHittableList_RespectsBounds(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, -2), 0.5, testMaterial())
	list := NewHittableList(sphere)
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))

	if _, isHit := list.Hit(ray, 0.001, 1.0); isHit {
		t.Error("Expected miss when tMax excludes the sphere")
	}
}
