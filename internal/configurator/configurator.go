package configurator

import (
	"sync"

	"go.uber.org/zap"

	"github.com/xglobaltents/3D-App/internal/engine/geometry"
	"github.com/xglobaltents/3D-App/internal/engine/instance"
	"github.com/xglobaltents/3D-App/internal/logger"
	"github.com/xglobaltents/3D-App/internal/tent"
)

// Configurator owns one controller per logical part and re-runs the affected
// controllers whenever the specification or bay count changes. Part failures
// stay local: one part failing to load leaves the others untouched.
type Configurator struct {
	sceneID string
	fitter  *geometry.Fitter

	controllers []*Controller

	mu        sync.Mutex
	spec      *tent.Specification
	numBays   int
	loadCount int
	onLoading func(bool) // fires on busy edge transitions

	resultsMu sync.Mutex
	results   map[string]Result
	dirty     bool
}

// New creates a configurator for the given parts. onLoading, when non-nil,
// receives true when the first part enters its busy span and false when the
// last one leaves it.
func New(sceneID string, loader TemplateLoader, parts []PartSpec, onLoading func(bool)) *Configurator {
	c := &Configurator{
		sceneID:   sceneID,
		fitter:    geometry.NewFitter(),
		onLoading: onLoading,
		results:   make(map[string]Result),
	}
	for _, p := range parts {
		part := p
		c.controllers = append(c.controllers, NewController(
			part, loader, c.fitter, sceneID,
			c.partLoading,
			c.partReady,
		))
	}
	return c
}

// Apply re-runs every part for the new inputs. Safe to call at slider rate;
// superseded runs abort and clean up after themselves.
func (c *Configurator) Apply(spec *tent.Specification, numBays int) {
	if err := spec.Validate(); err != nil {
		logger.Error("rejecting degenerate specification", zap.Error(err))
		return
	}
	if numBays < 1 {
		logger.Warn("rejecting bay count", zap.Int("num_bays", numBays))
		return
	}

	c.mu.Lock()
	c.spec = spec
	c.numBays = numBays
	c.mu.Unlock()

	logger.Info("applying configuration",
		zap.String("variant", spec.Name),
		zap.Int("num_bays", numBays),
	)
	for _, ctrl := range c.controllers {
		ctrl.Apply(spec, numBays)
	}
}

// Batches returns the current instance batches of every ready part, and
// whether the set changed since the last call. The renderer polls this once
// per frame and re-uploads only on change.
func (c *Configurator) Batches() (batches []*instance.Batch, changed bool) {
	c.resultsMu.Lock()
	defer c.resultsMu.Unlock()
	for _, res := range c.results {
		batches = append(batches, res.Batches...)
	}
	changed = c.dirty
	c.dirty = false
	return batches, changed
}

// Snapshot returns the serializable per-part transforms of the current
// configuration, for saved-configuration files.
func (c *Configurator) Snapshot() (variant string, numBays int, parts map[string][]instance.Transform) {
	c.mu.Lock()
	if c.spec != nil {
		variant = c.spec.Name
	}
	numBays = c.numBays
	c.mu.Unlock()

	parts = make(map[string][]instance.Transform)
	c.resultsMu.Lock()
	for name, res := range c.results {
		parts[name] = append([]instance.Transform(nil), res.Transforms...)
	}
	c.resultsMu.Unlock()
	return variant, numBays, parts
}

// Busy reports whether any part is inside its load/fit/place span.
func (c *Configurator) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loadCount > 0
}

// Dispose tears down every controller and drops all results.
func (c *Configurator) Dispose() {
	for _, ctrl := range c.controllers {
		ctrl.Dispose()
	}
	c.resultsMu.Lock()
	c.results = make(map[string]Result)
	c.dirty = true
	c.resultsMu.Unlock()
}

func (c *Configurator) partLoading(busy bool) {
	c.mu.Lock()
	var edge, state bool
	if busy {
		c.loadCount++
		edge = c.loadCount == 1
		state = true
	} else {
		c.loadCount--
		edge = c.loadCount == 0
	}
	cb := c.onLoading
	c.mu.Unlock()

	if edge && cb != nil {
		cb(state)
	}
}

func (c *Configurator) partReady(res Result) {
	c.resultsMu.Lock()
	c.results[res.Part] = res
	c.dirty = true
	c.resultsMu.Unlock()
}
