package configurator

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/xglobaltents/3D-App/internal/engine/geometry"
	"github.com/xglobaltents/3D-App/internal/engine/instance"
	"github.com/xglobaltents/3D-App/internal/engine/mesh"
	"github.com/xglobaltents/3D-App/internal/logger"
	"github.com/xglobaltents/3D-App/internal/tent"
	"github.com/xglobaltents/3D-App/pkg/math"
)

// State is the lifecycle state of a part controller.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateFitting
	StatePlacing
	StateReady
	StateAborted
	StateDisposed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateFitting:
		return "fitting"
	case StatePlacing:
		return "placing"
	case StateReady:
		return "ready"
	case StateAborted:
		return "aborted"
	case StateDisposed:
		return "disposed"
	}
	return "unknown"
}

// TemplateLoader is the cache dependency of a controller. *assets.Manager
// implements it.
type TemplateLoader interface {
	Load(ctx context.Context, sceneID, folder, file string) ([]*mesh.Mesh, error)
}

// Result is the output of one completed controller run: CPU-side instance
// batches plus the serializable transforms that produced them.
type Result struct {
	Part       string
	Batches    []*instance.Batch
	Transforms []instance.Transform
}

// Controller runs the load → fit → place pipeline for one part. A newer
// Apply supersedes any in-flight run: the stale run's context is canceled,
// its allocations are dropped, and its completion never fires.
type Controller struct {
	part    PartSpec
	loader  TemplateLoader
	fitter  *geometry.Fitter
	sceneID string

	// onLoading is signaled true on entering the busy span and false on
	// leaving it. Aggregated externally into a spinner refcount.
	onLoading func(bool)

	// onReady delivers the result of a completed (non-superseded) run.
	onReady func(Result)

	mu         sync.Mutex
	state      State
	gen        int
	cancel     context.CancelFunc
	result     *Result
	lastFitKey string
}

// NewController creates an idle controller for one part.
func NewController(part PartSpec, loader TemplateLoader, fitter *geometry.Fitter, sceneID string, onLoading func(bool), onReady func(Result)) *Controller {
	return &Controller{
		part:      part,
		loader:    loader,
		fitter:    fitter,
		sceneID:   sceneID,
		onLoading: onLoading,
		onReady:   onReady,
		state:     StateIdle,
	}
}

// State returns the current lifecycle state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Result returns the latest completed result, or nil.
func (c *Controller) Result() *Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.result
}

// Apply starts a run for the given inputs, superseding any run in flight.
func (c *Controller) Apply(spec *tent.Specification, numBays int) {
	c.mu.Lock()
	if c.state == StateDisposed {
		c.mu.Unlock()
		return
	}

	if c.cancel != nil {
		c.cancel()
	}
	// Measurements keyed by the old specification are no longer valid.
	if c.lastFitKey != "" {
		c.fitter.Invalidate(c.lastFitKey)
	}
	c.lastFitKey = c.part.fitKey(spec)

	c.gen++
	gen := c.gen
	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	c.state = StateLoading
	c.mu.Unlock()

	c.signalLoading(true)
	go c.run(ctx, gen, spec, numBays)
}

// Dispose tears the controller down: cancels any outstanding load and drops
// emitted batches and clones. Terminal.
func (c *Controller) Dispose() {
	c.mu.Lock()
	if c.state == StateDisposed {
		c.mu.Unlock()
		return
	}
	c.state = StateDisposed
	c.result = nil
	if c.cancel != nil {
		// The in-flight run notices the cancellation and balances its own
		// loading signal on the way out.
		c.cancel()
		c.cancel = nil
	}
	c.mu.Unlock()
}

func (c *Controller) run(ctx context.Context, gen int, spec *tent.Specification, numBays int) {
	meshes, err := c.loader.Load(ctx, c.sceneID, c.part.Folder, c.part.File)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			c.finishAborted(gen)
			return
		}
		logger.Error("part load failed",
			zap.String("part", c.part.Name),
			zap.Error(err),
		)
		c.finishIdle(gen)
		return
	}
	if len(meshes) == 0 {
		// Soft failure: the asset imported but carries no geometry.
		logger.Warn("part asset has no geometry",
			zap.String("part", c.part.Name),
			zap.String("folder", c.part.Folder),
			zap.String("file", c.part.File),
		)
		c.finishIdle(gen)
		return
	}

	if !c.advance(gen, StateFitting) {
		c.finishAborted(gen)
		return
	}

	fitted := c.fit(meshes, spec)

	if ctx.Err() != nil || !c.advance(gen, StatePlacing) {
		c.finishAborted(gen)
		return
	}

	transforms := c.part.plan(spec, numBays)
	batches := c.emit(fitted, transforms)

	c.finishReady(gen, Result{
		Part:       c.part.Name,
		Batches:    batches,
		Transforms: transforms,
	})
}

// fit normalizes orientation, measures bounds and scales the clones onto the
// specification's target dimensions. Order matters: normalize, then measure,
// then scale.
func (c *Controller) fit(meshes []*mesh.Mesh, spec *tent.Specification) []*mesh.Mesh {
	if c.part.ZUpSource {
		rot := geometry.ZUpToYUp()
		for _, m := range meshes {
			geometry.FlattenOrientation(m, rot)
		}
	}

	bounds := c.fitter.MeasureCached(c.part.fitKey(spec), meshes, math.Identity())
	raw := bounds.Size()
	target := c.part.targetSize(spec)

	var scale [3]float32
	if c.part.UniformFit {
		f := geometry.UniformScale(raw, target, geometry.AxisX)
		scale = [3]float32{f, f, f}
	} else {
		scale = geometry.AxisScale(raw, target)
	}

	scaleMat := math.Scale(scale[0], scale[1], scale[2])
	for _, m := range meshes {
		m.Transform(scaleMat)
	}

	if c.part.Miter {
		params := spec.MiterFor(c.part.Profile, geometry.DefaultMiterOptions())
		for _, m := range meshes {
			geometry.ApplyMiterCut(m, params.Slope, 1, geometry.DefaultMiterOptions())
		}
	}
	return meshes
}

// emit splits transforms into plain and mirrored halves and builds one batch
// per template mesh (two when a mirrored clone is required). Each batch is
// one instanced draw call. Mirroring happens after fitting, so a mitered
// template's cut is carried over as its exact reflection.
func (c *Controller) emit(meshes []*mesh.Mesh, transforms []instance.Transform) []*instance.Batch {
	if len(transforms) == 0 {
		return nil
	}

	var plain, mirrored []instance.Transform
	for _, t := range transforms {
		if t.Mirrored && c.part.Mirror {
			mirrored = append(mirrored, t)
		} else {
			plain = append(plain, t)
		}
	}

	var batches []*instance.Batch
	for _, m := range meshes {
		if b := instance.NewBatch(m, plain); b != nil {
			batches = append(batches, b)
		}
		if len(mirrored) > 0 {
			mm := geometry.MirrorX(m)
			if b := instance.NewBatch(mm, mirrored); b != nil {
				batches = append(batches, b)
			}
		}
	}
	return batches
}

// advance moves to next only if this run is still current.
func (c *Controller) advance(gen int, next State) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gen != gen || c.state == StateDisposed {
		return false
	}
	c.state = next
	return true
}

// Every run balances its Apply-time loading signal with exactly one false
// signal on termination, whether it completes, fails, aborts or is
// superseded. finishReady/finishIdle/finishAborted are the only exits.

func (c *Controller) finishReady(gen int, res Result) {
	c.mu.Lock()
	if c.gen != gen || c.state == StateDisposed {
		// Superseded between placing and completion: drop everything; the
		// stale result never reaches onReady.
		c.mu.Unlock()
		c.signalLoading(false)
		return
	}
	c.state = StateReady
	c.result = &res
	onReady := c.onReady
	c.mu.Unlock()

	c.signalLoading(false)
	if onReady != nil {
		onReady(res)
	}
	logger.Debug("part ready",
		zap.String("part", c.part.Name),
		zap.Int("batches", len(res.Batches)),
		zap.Int("instances", len(res.Transforms)),
	)
}

func (c *Controller) finishIdle(gen int) {
	c.mu.Lock()
	if c.gen == gen && c.state != StateDisposed {
		c.state = StateIdle
		c.result = nil
	}
	c.mu.Unlock()
	c.signalLoading(false)
}

// finishAborted records a canceled or superseded run. Everything the run
// allocated is local and dropped with it; its completion callback never
// fires.
func (c *Controller) finishAborted(gen int) {
	c.mu.Lock()
	if c.gen == gen && c.state != StateDisposed {
		c.state = StateAborted
	}
	c.mu.Unlock()
	c.signalLoading(false)
	logger.Debug("part run aborted", zap.String("part", c.part.Name))
}

func (c *Controller) signalLoading(busy bool) {
	if c.onLoading != nil {
		c.onLoading(busy)
	}
}
