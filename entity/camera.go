package entity

import (
	"math"

	"github.com/milk9111/pawbs/common"
	"github.com/milk9111/pawbs/prefabs"
)

// Camera follows a world point and keeps the view inside the world.
type Camera struct {
	PosX float64
	PosY float64

	screenW int
	screenH int
	zoom    float64

	// smoothing factor (0..1). higher -> faster follow. e.g. 0.15
	smooth float64
	// world bounds in pixels (0 means unbounded)
	worldW float64
	worldH float64
}

// NewCamera creates a camera for the given logical screen size.
func NewCamera(screenW, screenH int, spec prefabs.CameraSpec) *Camera {
	spec = spec.WithDefaults()
	return &Camera{
		PosX:    float64(screenW) / 2.0,
		PosY:    float64(screenH) / 2.0,
		screenW: screenW,
		screenH: screenH,
		zoom:    spec.Zoom,
		smooth:  spec.Smoothness,
	}
}

// Apply hot-reloads zoom and smoothing.
func (c *Camera) Apply(spec prefabs.CameraSpec) {
	spec = spec.WithDefaults()
	c.zoom = spec.Zoom
	c.smooth = spec.Smoothness
}

// SetWorldBounds sets the world pixel dimensions for clamping camera position.
func (c *Camera) SetWorldBounds(w, h float64) {
	c.worldW = w
	c.worldH = h
}

// ViewTopLeft returns the world-space top-left of the current view.
func (c *Camera) ViewTopLeft() (float64, float64) {
	viewW, viewH := c.ViewSize()
	return c.PosX - viewW/2.0, c.PosY - viewH/2.0
}

// Zoom is the world-to-screen scale. Non-positive values mean 1.
func (c *Camera) Zoom() float64 {
	if c.zoom <= 0 {
		return 1
	}
	return c.zoom
}

// Update moves the camera toward the target. Call once per fixed update.
func (c *Camera) Update(targetX, targetY float64) {
	if c.smooth <= 0 {
		c.PosX = targetX
		c.PosY = targetY
	} else {
		c.PosX = common.Lerp(c.PosX, targetX, c.smooth)
		c.PosY = common.Lerp(c.PosY, targetY, c.smooth)
	}
	c.constrain()
}

// SnapTo places the camera without smoothing, e.g. after a respawn.
func (c *Camera) SnapTo(x, y float64) {
	c.PosX = x
	c.PosY = y
	c.constrain()
}

// ViewSize returns the world-space size of the visible area.
func (c *Camera) ViewSize() (float64, float64) {
	zoom := c.Zoom()
	return float64(c.screenW) / zoom, float64(c.screenH) / zoom
}

// constrain snaps to the 1/zoom grid and clamps to world bounds. A world
// smaller than the view is centered.
func (c *Camera) constrain() {
	if c.zoom != 0 {
		c.PosX = math.Round(c.PosX*c.zoom) / c.zoom
		c.PosY = math.Round(c.PosY*c.zoom) / c.zoom
	}

	viewW, viewH := c.ViewSize()
	c.PosX = clampAxis(c.PosX, viewW/2.0, c.worldW)
	c.PosY = clampAxis(c.PosY, viewH/2.0, c.worldH)
}

func clampAxis(pos, half, world float64) float64 {
	if world <= 0 {
		return pos
	}
	lo, hi := half, world-half
	if hi < lo {
		return world / 2.0
	}
	return common.Clamp(pos, lo, hi)
}
