package renderer

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/df07/go-weekend-raytracer/pkg/core"
)

// CameraConfig contains the user-facing camera parameters
type CameraConfig struct {
	Center        core.Vec3 // Look-from point
	LookAt        core.Vec3 // Point the camera is aimed at
	Up            core.Vec3 // World-up hint for the camera basis
	Width         int       // Image width in pixels
	AspectRatio   float64   // Width / height
	VFov          float64   // Vertical field of view in degrees
	DefocusAngle  float64   // Aperture cone angle in degrees, 0 disables depth of field
	FocusDistance float64   // Distance from Center to the plane of perfect focus
}

// Camera generates rays for rendering. All viewport geometry is derived
// once at construction and immutable afterwards.
type Camera struct {
	config       CameraConfig
	width        int
	height       int
	pixel00      core.Vec3 // World-space center of pixel (0,0)
	pixelDeltaU  core.Vec3 // Step between horizontally adjacent pixels
	pixelDeltaV  core.Vec3 // Step between vertically adjacent pixels
	defocusDiskU core.Vec3 // Defocus disk horizontal basis vector
	defocusDiskV core.Vec3 // Defocus disk vertical basis vector
}

// NewCamera derives the viewport geometry from the config. Degenerate
// configurations fail here rather than propagating NaNs into the render.
func NewCamera(config CameraConfig) (*Camera, error) {
	if config.Width <= 0 {
		return nil, fmt.Errorf("camera width must be positive, got %d", config.Width)
	}
	if config.AspectRatio <= 0 {
		return nil, fmt.Errorf("camera aspect ratio must be positive, got %f", config.AspectRatio)
	}
	if config.VFov <= 0 || config.VFov >= 180 {
		return nil, fmt.Errorf("camera vertical fov must be in (0, 180) degrees, got %f", config.VFov)
	}
	if config.FocusDistance <= 0 {
		return nil, fmt.Errorf("camera focus distance must be positive, got %f", config.FocusDistance)
	}
	if config.DefocusAngle < 0 {
		return nil, fmt.Errorf("camera defocus angle must not be negative, got %f", config.DefocusAngle)
	}

	view := config.Center.Subtract(config.LookAt)
	if view.NearZero() {
		return nil, fmt.Errorf("camera look-from and look-at must differ, both are %v", config.Center)
	}
	if config.Up.NearZero() {
		return nil, fmt.Errorf("camera up vector must not be zero")
	}

	height := int(float64(config.Width) / config.AspectRatio)
	if height < 1 {
		height = 1
	}

	// Orthonormal camera basis: w points from the target back toward the
	// camera, u is camera-right, v is camera-up
	w := view.Normalize()
	uCross := config.Up.Cross(w)
	if uCross.NearZero() {
		return nil, fmt.Errorf("camera up vector %v is parallel to the view direction", config.Up)
	}
	u := uCross.Normalize()
	v := w.Cross(u)

	// Viewport dimensions at the focus plane
	theta := config.VFov * math.Pi / 180.0
	viewportHeight := 2.0 * config.FocusDistance * math.Tan(theta/2)
	viewportWidth := viewportHeight * (float64(config.Width) / float64(height))

	// Viewport edge vectors and per-pixel steps; v points down the image
	viewportU := u.Multiply(viewportWidth)
	viewportV := v.Negate().Multiply(viewportHeight)
	pixelDeltaU := viewportU.Multiply(1.0 / float64(config.Width))
	pixelDeltaV := viewportV.Multiply(1.0 / float64(height))

	// Upper-left pixel center, half a pixel step in from the viewport corner
	viewportUpperLeft := config.Center.
		Subtract(w.Multiply(config.FocusDistance)).
		Subtract(viewportU.Multiply(0.5)).
		Subtract(viewportV.Multiply(0.5))
	pixel00 := viewportUpperLeft.Add(pixelDeltaU.Add(pixelDeltaV).Multiply(0.5))

	// Defocus disk basis, scaled by the aperture radius at the focus plane
	defocusRadius := config.FocusDistance * math.Tan(config.DefocusAngle*math.Pi/180.0/2)
	defocusDiskU := u.Multiply(defocusRadius)
	defocusDiskV := v.Multiply(defocusRadius)

	return &Camera{
		config:       config,
		width:        config.Width,
		height:       height,
		pixel00:      pixel00,
		pixelDeltaU:  pixelDeltaU,
		pixelDeltaV:  pixelDeltaV,
		defocusDiskU: defocusDiskU,
		defocusDiskV: defocusDiskV,
	}, nil
}

// Width returns the image width in pixels
func (c *Camera) Width() int {
	return c.width
}

// Height returns the image height in pixels, derived from the aspect ratio
func (c *Camera) Height() int {
	return c.height
}

// GetRay generates a sample ray through pixel (i, j) with antialiasing
// jitter of up to half a pixel step in each direction. When depth of field
// is enabled the origin is sampled on the defocus disk instead of the
// camera center.
func (c *Camera) GetRay(i, j int, random *rand.Rand) core.Ray {
	pixelCenter := c.pixel00.
		Add(c.pixelDeltaU.Multiply(float64(i))).
		Add(c.pixelDeltaV.Multiply(float64(j)))

	pixelSample := pixelCenter.
		Add(c.pixelDeltaU.Multiply(random.Float64() - 0.5)).
		Add(c.pixelDeltaV.Multiply(random.Float64() - 0.5))

	origin := c.config.Center
	if c.config.DefocusAngle > 0 {
		p := core.RandomInUnitDisk(random)
		origin = origin.
			Add(c.defocusDiskU.Multiply(p.X)).
			Add(c.defocusDiskV.Multiply(p.Y))
	}

	return core.NewRay(origin, pixelSample.Subtract(origin))
}
