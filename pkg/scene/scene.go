package scene

import (
	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/geometry"
	"github.com/df07/go-weekend-raytracer/pkg/renderer"
)

// Scene aggregates everything needed to render: camera, geometry, sky
// colors, and the per-scene sampling defaults. It is shared read-only
// across all render workers.
type Scene struct {
	Camera         *renderer.Camera
	CameraConfig   renderer.CameraConfig
	World          *geometry.HittableList
	SamplingConfig renderer.SamplingConfig
	TopColor       core.Vec3
	BottomColor    core.Vec3
}

// GetCamera implements renderer.Scene
func (s *Scene) GetCamera() *renderer.Camera {
	return s.Camera
}

// GetBackgroundColors implements renderer.Scene
func (s *Scene) GetBackgroundColors() (core.Vec3, core.Vec3) {
	return s.TopColor, s.BottomColor
}

// GetWorld implements renderer.Scene
func (s *Scene) GetWorld() *geometry.HittableList {
	return s.World
}

// MergeCameraConfig overlays non-zero override fields onto a base config
func MergeCameraConfig(base, override renderer.CameraConfig) renderer.CameraConfig {
	merged := base

	if override.Center != (core.Vec3{}) {
		merged.Center = override.Center
	}
	if override.LookAt != (core.Vec3{}) {
		merged.LookAt = override.LookAt
	}
	if override.Up != (core.Vec3{}) {
		merged.Up = override.Up
	}
	if override.Width != 0 {
		merged.Width = override.Width
	}
	if override.AspectRatio != 0 {
		merged.AspectRatio = override.AspectRatio
	}
	if override.VFov != 0 {
		merged.VFov = override.VFov
	}
	if override.DefocusAngle != 0 {
		merged.DefocusAngle = override.DefocusAngle
	}
	if override.FocusDistance != 0 {
		merged.FocusDistance = override.FocusDistance
	}

	return merged
}
