// Package camera animates the rendered viewport toward the latest camera
// directive, independent of render cadence.
package camera

import (
	"math"
	"sync"

	"github.com/antonpk1/excalidraw-mcp-app/geometry"
	"github.com/antonpk1/excalidraw-mcp-app/scene"
)

const (
	// DefaultDamping is the fraction of the remaining distance covered per
	// tick. Exponential smoothing, not a fixed-duration tween: big jumps
	// decelerate the same way small ones do.
	DefaultDamping = 0.03

	// DefaultEpsilon is the aggregate remaining distance below which the
	// animation settles and scheduling stops.
	DefaultEpsilon = 0.1

	// AspectRatio is the width/height ratio viewports are corrected to
	// before being projected to the renderer.
	AspectRatio = 4.0 / 3.0
)

// Scheduler queues a single future frame callback and returns a cancel
// func. The host UI's frame scheduler drives the animation; the controller
// only reschedules while there is distance left to cover, so there is no
// perpetually running idle loop.
type Scheduler interface {
	Schedule(tick func()) (cancel func())
}

// Controller holds the animated (currently rendered) and target viewports,
// both unset until the first camera directive arrives.
type Controller struct {
	mu       sync.Mutex
	sched    Scheduler
	apply    func(scene.Viewport)
	damping  float64
	epsilon  float64
	animated *scene.Viewport
	target   *scene.Viewport
	cancel   func()
}

// New returns a controller that projects viewports through apply. apply
// receives the aspect-corrected viewport each tick.
func New(sched Scheduler, apply func(scene.Viewport)) *Controller {
	return &Controller{
		sched:   sched,
		apply:   apply,
		damping: DefaultDamping,
		epsilon: DefaultEpsilon,
	}
}

// SetTarget replaces the animation target. The first camera snaps
// immediately with no animation; afterwards the animated viewport keeps
// smoothing from wherever it currently is — a retarget mid-flight never
// hard-resets.
func (c *Controller) SetTarget(v scene.Viewport) {
	c.mu.Lock()
	t := v
	c.target = &t
	if c.animated == nil {
		a := v
		c.animated = &a
		projected := c.projectedLocked()
		c.mu.Unlock()
		c.apply(projected)
		return
	}
	c.ensureScheduledLocked()
	c.mu.Unlock()
}

// Tick advances the animated viewport one damping step toward the target
// and re-applies it. It reports whether the animation still has distance
// left to cover.
func (c *Controller) Tick() bool {
	c.mu.Lock()
	if c.animated == nil || c.target == nil {
		c.mu.Unlock()
		return false
	}
	c.animated.X += (c.target.X - c.animated.X) * c.damping
	c.animated.Y += (c.target.Y - c.animated.Y) * c.damping
	c.animated.Width += (c.target.Width - c.animated.Width) * c.damping
	c.animated.Height += (c.target.Height - c.animated.Height) * c.damping
	remaining := math.Abs(c.target.X-c.animated.X) +
		math.Abs(c.target.Y-c.animated.Y) +
		math.Abs(c.target.Width-c.animated.Width) +
		math.Abs(c.target.Height-c.animated.Height)
	projected := c.projectedLocked()
	c.mu.Unlock()
	c.apply(projected)
	return remaining > c.epsilon
}

// Stop cancels any pending frame. Safe to call repeatedly and at any point
// (e.g. on unmount); a later SetTarget restarts scheduling cleanly.
func (c *Controller) Stop() {
	c.mu.Lock()
	cancel := c.cancel
	c.cancel = nil
	c.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

// Animated returns a copy of the current animated viewport, or false before
// the first camera directive.
func (c *Controller) Animated() (scene.Viewport, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.animated == nil {
		return scene.Viewport{}, false
	}
	return *c.animated, true
}

// Target returns a copy of the current target viewport, or false if unset.
func (c *Controller) Target() (scene.Viewport, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.target == nil {
		return scene.Viewport{}, false
	}
	return *c.target, true
}

// Scheduling reports whether a frame callback is currently pending.
func (c *Controller) Scheduling() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cancel != nil
}

func (c *Controller) ensureScheduledLocked() {
	if c.cancel != nil || c.sched == nil {
		return
	}
	c.cancel = c.sched.Schedule(c.frame)
}

func (c *Controller) frame() {
	c.mu.Lock()
	c.cancel = nil
	c.mu.Unlock()
	if c.Tick() {
		c.mu.Lock()
		c.ensureScheduledLocked()
		c.mu.Unlock()
	}
}

// projectedLocked corrects the animated viewport to the nearest
// 4:3-compatible box, expanding the smaller dimension.
func (c *Controller) projectedLocked() scene.Viewport {
	r := geometry.ExpandToAspect(geometry.Rect{
		X: c.animated.X, Y: c.animated.Y,
		Width: c.animated.Width, Height: c.animated.Height,
	}, AspectRatio)
	return scene.Viewport{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height}
}
