package scene

import (
	"testing"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/geometry"
	"github.com/df07/go-weekend-raytracer/pkg/renderer"
)

func TestMergeCameraConfig(t *testing.T) {
	base := renderer.CameraConfig{
		Center:        core.NewVec3(0, 0, 1),
		LookAt:        core.NewVec3(0, 0, -1),
		Up:            core.NewVec3(0, 1, 0),
		Width:         400,
		AspectRatio:   16.0 / 9.0,
		VFov:          40.0,
		DefocusAngle:  0.5,
		FocusDistance: 2.0,
	}

	t.Run("empty override keeps base", func(t *testing.T) {
		if got := MergeCameraConfig(base, renderer.CameraConfig{}); got != base {
			t.Errorf("Expected base config unchanged, got %+v", got)
		}
	})

	t.Run("partial override", func(t *testing.T) {
		got := MergeCameraConfig(base, renderer.CameraConfig{Width: 800, VFov: 90})
		if got.Width != 800 || got.VFov != 90 {
			t.Errorf("Override fields not applied: %+v", got)
		}
		if got.Center != base.Center || got.AspectRatio != base.AspectRatio {
			t.Errorf("Base fields not preserved: %+v", got)
		}
	})
}

func TestNewSimpleScene(t *testing.T) {
	s, err := NewSimpleScene()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if s.GetCamera() == nil {
		t.Fatal("Scene should have a camera")
	}
	if len(s.World.Shapes) != 5 {
		t.Errorf("Expected 5 shapes (ground + three spheres + glass shell), got %d", len(s.World.Shapes))
	}

	top, bottom := s.GetBackgroundColors()
	if top != skyTop || bottom != skyBottom {
		t.Errorf("Unexpected background colors: %v, %v", top, bottom)
	}
}

func TestNewSimpleScene_InvalidOverride(t *testing.T) {
	_, err := NewSimpleScene(renderer.CameraConfig{Width: -5})
	if err == nil {
		t.Error("Expected camera error for negative width override")
	}
}

func TestNewCoverScene(t *testing.T) {
	s, err := NewCoverScene()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	// Ground + up to 22x22 small spheres + three feature spheres
	n := len(s.World.Shapes)
	if n < 400 || n > 1+22*22+3 {
		t.Errorf("Unexpected shape count %d", n)
	}

	if s.CameraConfig.DefocusAngle <= 0 {
		t.Error("Cover scene should enable depth of field")
	}

	// Small spheres keep clear of the metal feature sphere
	clearance := core.NewVec3(4, 0.2, 0)
	for _, shape := range s.World.Shapes {
		sphere, ok := shape.(*geometry.Sphere)
		if !ok || sphere.Radius != 0.2 {
			continue
		}
		if sphere.Center.Subtract(clearance).Length() <= 0.9 {
			t.Errorf("Small sphere at %v overlaps the feature sphere zone", sphere.Center)
		}
	}
}

func TestNewCoverScene_Deterministic(t *testing.T) {
	a, err := NewCoverScene()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	b, err := NewCoverScene()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(a.World.Shapes) != len(b.World.Shapes) {
		t.Fatalf("Scene layout not deterministic: %d vs %d shapes",
			len(a.World.Shapes), len(b.World.Shapes))
	}

	for i := range a.World.Shapes {
		sa, aok := a.World.Shapes[i].(*geometry.Sphere)
		sb, bok := b.World.Shapes[i].(*geometry.Sphere)
		if !aok || !bok {
			t.Fatalf("Shape %d is not a sphere", i)
		}
		if sa.Center != sb.Center || sa.Radius != sb.Radius {
			t.Fatalf("Sphere %d differs between builds: %+v vs %+v", i, sa, sb)
		}
	}
}
