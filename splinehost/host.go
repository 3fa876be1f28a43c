/*
Package splinehost keeps a Catmull-Rom spline up to date for a frame-based
consumer, e.g. a renderer or a visualizer.

A Host owns a list of anchors (control points placed in world space) and
the samples most recently generated from them. Samples are regenerated
either synchronously with Generate, or spread across several frames with
GenerateAsync, where every call to Tick advances the generation by at most
one frame budget. Consumers register an OnSamples listener and receive a
snapshot for every partial and every completed generation.

A Host is not safe for concurrent use; all methods are expected to be
called from the frame loop.
*/
package splinehost

import (
	"github.com/npillmayer/crspline"
	"github.com/npillmayer/crspline/budget"
	"github.com/npillmayer/crspline/catmull"
	"github.com/npillmayer/crspline/polygon"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'crspline.host'
func tracer() tracing.Trace {
	return tracing.Select("crspline.host")
}

// Snapshot is a view of generated samples. Final is false for the partial
// results of an asynchronous generation. A snapshot's samples are valid
// until the next call to Generate.
type Snapshot struct {
	Samples []catmull.SamplePoint
	Final   bool
}

type generation = budget.Task[[]catmull.SamplePoint, catmull.SamplePoint]

// Host generates spline samples from anchors, either at once or across
// frames.
type Host struct {
	Config    Config
	Anchors   []Anchor
	OnSamples func(Snapshot) // optional listener
	Clock     budget.Clock   // nil means wall clock

	controlPoints []crspline.Vec3
	samples       []catmull.SamplePoint
	task          *generation
	frames        int
	stats         budget.Stats
}

// New creates a host for a scene.
func New(scene *Scene) *Host {
	if scene == nil {
		return &Host{Config: Default()}
	}
	return &Host{Config: scene.Config, Anchors: scene.Anchors}
}

func (h *Host) updateControlPoints() {
	h.controlPoints = h.controlPoints[:0]
	for _, a := range h.Anchors {
		h.controlPoints = append(h.controlPoints, a.World())
	}
}

// Generate regenerates the samples synchronously, re-using the storage of
// the previous samples. A running asynchronous generation is abandoned
// first.
func (h *Host) Generate() error {
	if err := h.Config.Validate(); err != nil {
		return err
	}
	h.abandon()
	h.updateControlPoints()
	samples, err := catmull.GenerateInto(h.samples, h.controlPoints, h.Config.ClosedLoop, h.Config.Resolution)
	if err != nil {
		return err
	}
	h.publish(samples, true)
	return nil
}

// GenerateAsync starts regenerating the samples across frames. Any previous
// asynchronous generation is abandoned. The first frame budget is spent
// right away, subsequent ones by calls to Tick. Until the generation
// completes, Samples returns the partial results.
func (h *Host) GenerateAsync() error {
	if err := h.Config.Validate(); err != nil {
		return err
	}
	h.abandon()
	h.updateControlPoints()
	cfg := h.Config
	seq, err := catmull.Evaluate(h.controlPoints, cfg.ClosedLoop, cfg.Resolution)
	if err != nil {
		return err
	}
	initial := make([]catmull.SamplePoint, 0, catmull.ComputeLength(len(h.controlPoints), cfg.ClosedLoop, cfg.Resolution))
	task, err := budget.Run(initial, seq, appendSample,
		func(acc []catmull.SamplePoint) error {
			h.publish(acc, false)
			return nil
		},
		func(acc []catmull.SamplePoint) error {
			h.publish(acc, true)
			return nil
		},
		cfg.FrameBudget, budget.WithClock(h.Clock), budget.WithName("spline"))
	if err != nil {
		return err
	}
	h.task = task
	return h.step()
}

func appendSample(acc []catmull.SamplePoint, sp catmull.SamplePoint) ([]catmull.SamplePoint, error) {
	return append(acc, sp), nil
}

// Tick advances the host by one frame: it regenerates synchronously if
// configured to do so for every frame, and otherwise resumes a running
// asynchronous generation for one frame budget.
func (h *Host) Tick() error {
	h.frames++
	if h.Config.RegenerateEveryTick {
		return h.Generate()
	}
	return h.step()
}

func (h *Host) step() error {
	task := h.task
	if task == nil {
		return nil
	}
	status, err := task.Step()
	h.stats = task.Stats()
	if err != nil || status == budget.Completed {
		h.task = nil
	}
	return err
}

func (h *Host) abandon() {
	if h.task != nil {
		h.task.Abandon()
		h.stats = h.task.Stats()
		h.task = nil
		tracer().Debugf("abandoned running generation")
	}
}

func (h *Host) publish(samples []catmull.SamplePoint, final bool) {
	h.samples = samples
	if h.Config.Debug {
		if final {
			tracer().Infof("generated %d spline samples", len(samples))
		} else {
			tracer().Infof("generated %d spline samples so far", len(samples))
		}
	}
	if h.OnSamples != nil {
		h.OnSamples(Snapshot{Samples: samples, Final: final})
	}
}

// IsGeneratingAsync is true while an asynchronous generation is running.
func (h *Host) IsGeneratingAsync() bool {
	return h.task != nil
}

// ControlPoints returns the world positions of the anchors as of the last
// generation.
func (h *Host) ControlPoints() []crspline.Vec3 {
	return h.controlPoints
}

// Samples returns the most recent samples, possibly partial.
func (h *Host) Samples() []catmull.SamplePoint {
	return h.samples
}

// Footprint returns the projection of the most recent samples onto the
// ground plane.
func (h *Host) Footprint() *polygon.Polygon {
	return polygon.Footprint(h.samples)
}

// Frames returns the number of calls to Tick.
func (h *Host) Frames() int {
	return h.frames
}

// Stats returns the progress counters of the most recent asynchronous
// generation.
func (h *Host) Stats() budget.Stats {
	return h.stats
}
