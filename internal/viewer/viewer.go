// Package viewer implements the interactive configurator loop: window,
// camera, input handling and frame rendering.
package viewer

import (
	"fmt"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/xglobaltents/3D-App/internal/assets"
	"github.com/xglobaltents/3D-App/internal/config"
	"github.com/xglobaltents/3D-App/internal/configurator"
	"github.com/xglobaltents/3D-App/internal/engine/camera"
	"github.com/xglobaltents/3D-App/internal/engine/input"
	"github.com/xglobaltents/3D-App/internal/engine/lighting"
	"github.com/xglobaltents/3D-App/internal/engine/scene"
	"github.com/xglobaltents/3D-App/internal/engine/window"
	"github.com/xglobaltents/3D-App/internal/logger"
	"github.com/xglobaltents/3D-App/internal/tent"
	"github.com/xglobaltents/3D-App/pkg/math"
)

const sceneID = "tent-configurator"

// MinBays and MaxBays bound the interactive bay count.
const (
	MinBays = 1
	MaxBays = 20
)

// Viewer is the interactive configurator application.
type Viewer struct {
	cfg     *config.Config
	running bool

	window *window.Window
	input  *input.Input
	scene  *scene.Scene
	camera *camera.OrbitCamera

	catalog      *tent.Catalog
	assets       *assets.Manager
	configurator *configurator.Configurator

	spec    *tent.Specification
	numBays int
	envName string

	dragging bool
	lastX    int
	lastY    int
	fitted   bool
}

// New creates the window, GL context, scene and configurator.
func New(cfg *config.Config) (*Viewer, error) {
	v := &Viewer{
		cfg:     cfg,
		numBays: cfg.Viewer.NumBays,
		envName: cfg.Viewer.Environment,
	}

	var err error
	v.window, err = window.New(window.Config{
		Title:      "Tent Configurator",
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("create window: %w", err)
	}

	// GL function pointers need a current context, so this comes after
	// window creation.
	if err := gl.Init(); err != nil {
		v.window.Close()
		return nil, fmt.Errorf("initialize OpenGL: %w", err)
	}
	logger.Info("OpenGL initialized", zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))))

	v.scene, err = scene.NewScene(sceneID, lighting.Preset(v.envName))
	if err != nil {
		v.window.Close()
		return nil, fmt.Errorf("create scene: %w", err)
	}

	v.catalog, err = loadCatalog(cfg.Assets.Catalog)
	if err != nil {
		v.scene.Destroy()
		v.window.Close()
		return nil, err
	}

	v.spec, err = v.catalog.Get(cfg.Viewer.Variant)
	if err != nil {
		v.scene.Destroy()
		v.window.Close()
		return nil, err
	}

	v.assets = assets.NewManager(cfg.Assets.Root)
	parts := configurator.DefaultParts(cfg.Viewer.TentType, cfg.Viewer.Variant)
	v.configurator = configurator.New(sceneID, v.assets, parts, v.onLoading)

	v.input = input.New()
	v.camera = camera.NewOrbitCamera()

	return v, nil
}

func loadCatalog(path string) (*tent.Catalog, error) {
	if path == "" {
		return tent.DefaultCatalog(), nil
	}
	cat, err := tent.LoadCatalog(path)
	if err != nil {
		return nil, fmt.Errorf("load catalog %s: %w", path, err)
	}
	return cat, nil
}

func (v *Viewer) onLoading(busy bool) {
	if busy {
		v.window.SetTitle("Tent Configurator (loading...)")
	} else {
		v.window.SetTitle("Tent Configurator")
	}
}

// Run applies the initial configuration and enters the frame loop.
func (v *Viewer) Run() error {
	v.running = true
	v.configurator.Apply(v.spec, v.numBays)

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	logger.Info("starting viewer loop",
		zap.String("variant", v.spec.Name),
		zap.Int("bays", v.numBays),
	)

	for v.running {
		now := time.Now()
		dt := now.Sub(lastTime).Seconds()
		lastTime = now

		if v.input.Update() {
			v.running = false
			break
		}
		v.handleEvents()

		v.update()
		v.render()
		v.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			if v.cfg.Viewer.ShowFPS {
				logger.Sugar.Debugf("fps=%d dt=%.2fms draws=%d",
					frameCount, dt*1000, v.scene.DrawCalls())
			}
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

func (v *Viewer) handleEvents() {
	for _, event := range v.input.Events() {
		switch event.Type {
		case input.EventWindowResize:
			gl.Viewport(0, 0, int32(event.Width), int32(event.Height))

		case input.EventKeyDown:
			v.handleKey(event.Key)

		case input.EventMouseDown:
			if event.Button == sdl.BUTTON_LEFT {
				v.dragging = true
				v.lastX = event.MouseX
				v.lastY = event.MouseY
			}
			if event.Button == sdl.BUTTON_RIGHT {
				v.focusOnPoint(event.MouseX, event.MouseY)
			}

		case input.EventMouseUp:
			if event.Button == sdl.BUTTON_LEFT {
				v.dragging = false
			}

		case input.EventMouseMove:
			if v.dragging {
				v.camera.HandleDrag(
					float32(event.MouseX-v.lastX),
					float32(event.MouseY-v.lastY),
				)
				v.lastX = event.MouseX
				v.lastY = event.MouseY
			}

		case input.EventMouseWheel:
			v.camera.HandleZoom(float32(event.WheelY))
		}
	}
}

func (v *Viewer) handleKey(key sdl.Scancode) {
	switch key {
	case sdl.SCANCODE_ESCAPE:
		v.running = false

	case sdl.SCANCODE_EQUALS, sdl.SCANCODE_KP_PLUS:
		v.setBays(v.numBays + 1)

	case sdl.SCANCODE_MINUS, sdl.SCANCODE_KP_MINUS:
		v.setBays(v.numBays - 1)

	case sdl.SCANCODE_E:
		v.cycleEnvironment()

	case sdl.SCANCODE_F:
		v.fitCamera()

	case sdl.SCANCODE_F5:
		v.saveConfiguration()
	}
}

func (v *Viewer) setBays(n int) {
	if n < MinBays || n > MaxBays || n == v.numBays {
		return
	}
	v.numBays = n
	logger.Info("bay count changed", zap.Int("bays", n))
	v.configurator.Apply(v.spec, v.numBays)
}

// cycleEnvironment advances through the lighting presets in a fixed order.
func (v *Viewer) cycleEnvironment() {
	order := []string{"day", "dusk", "night"}
	for i, name := range order {
		if name == v.envName {
			v.envName = order[(i+1)%len(order)]
			break
		}
	}
	v.scene.Env = lighting.Preset(v.envName)
	logger.Info("environment changed", zap.String("preset", v.envName))
}

func (v *Viewer) fitCamera() {
	b := v.scene.Bounds()
	v.camera.FitToBounds(b.Min[0], b.Min[1], b.Min[2], b.Max[0], b.Max[1], b.Max[2])
}

// focusOnPoint re-centers the orbit camera on the clicked ground position.
func (v *Viewer) focusOnPoint(mx, my int) {
	vp, ok := v.viewProjection()
	if !ok {
		return
	}
	width, height := v.window.Size()
	ndcX := 2*float32(mx)/float32(width) - 1
	ndcY := 1 - 2*float32(my)/float32(height)

	if p, hit := camera.GroundPoint(vp, ndcX, ndcY); hit {
		v.camera.SetCenter(p.X, p.Y, p.Z)
	}
}

func (v *Viewer) saveConfiguration() {
	variant, numBays, parts := v.configurator.Snapshot()
	sc := &config.SavedConfiguration{
		Name:    fmt.Sprintf("%s-%dbay", variant, numBays),
		Variant: variant,
		NumBays: numBays,
		Parts:   parts,
	}
	if err := config.SaveConfiguration(sc); err != nil {
		logger.Error("save configuration failed", zap.Error(err))
		return
	}
	logger.Info("configuration saved", zap.String("name", sc.Name))
}

// update pulls finished configurator results onto the GL thread.
func (v *Viewer) update() {
	batches, changed := v.configurator.Batches()
	if !changed {
		return
	}
	v.scene.SetBatches(batches)
	logger.Debug("scene batches updated",
		zap.Int("batches", len(batches)),
		zap.Int("drawCalls", v.scene.DrawCalls()),
	)

	if !v.fitted && len(batches) > 0 {
		v.fitCamera()
		v.fitted = true
	}
}

func (v *Viewer) viewProjection() (math.Mat4, bool) {
	width, height := v.window.Size()
	if height == 0 {
		return math.Mat4{}, false
	}
	aspect := float32(width) / float32(height)
	proj := math.Perspective(math.Radians(45), aspect, 0.1, 1000.0)
	return proj.Mul(v.camera.ViewMatrix()), true
}

func (v *Viewer) render() {
	env := v.scene.Env
	gl.ClearColor(env.Clear[0], env.Clear[1], env.Clear[2], 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	gl.Enable(gl.DEPTH_TEST)

	viewProj, ok := v.viewProjection()
	if !ok {
		return
	}
	v.scene.Render(viewProj)
}

// Close persists the session settings, then disposes the configurator, GPU
// resources and window.
func (v *Viewer) Close() {
	if v.cfg != nil {
		v.cfg.Viewer.NumBays = v.numBays
		v.cfg.Viewer.Environment = v.envName
		if err := v.cfg.Save(); err != nil {
			logger.Warn("persist settings failed", zap.Error(err))
		}
	}
	if v.configurator != nil {
		v.configurator.Dispose()
	}
	if v.scene != nil {
		v.scene.Destroy()
	}
	if v.window != nil {
		v.window.Close()
	}
}
