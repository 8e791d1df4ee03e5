package main

import (
	"context"
	"fmt"
	"image"
	"math/rand/v2"
	"time"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/spf13/cobra"
	"github.com/taigrr/facet/pkg/math3d"
	"github.com/taigrr/facet/pkg/render"
	"github.com/taigrr/facet/pkg/scene"
)

// action is a viewer command bound to a key.
type action int

const (
	actionNone action = iota
	actionQuit
	actionOutline
	actionBackfaces
	actionSphereTest
	actionAxes
	actionImpulse
	actionReset
	actionZoomIn
	actionZoomOut
	actionPitchUp
	actionPitchDown
	actionYawLeft
	actionYawRight
)

const (
	zoomStep    = 0.5
	nudge       = 0.05
	impulseSize = 0.3
)

func actionFor(ev uv.KeyPressEvent) action {
	switch {
	case ev.MatchString("escape", "q", "ctrl+c"):
		return actionQuit
	case ev.MatchString("o"):
		return actionOutline
	case ev.MatchString("b"):
		return actionBackfaces
	case ev.MatchString("s"):
		return actionSphereTest
	case ev.MatchString("a"):
		return actionAxes
	case ev.MatchString("space"):
		return actionImpulse
	case ev.MatchString("r"):
		return actionReset
	case ev.MatchString("+", "="):
		return actionZoomIn
	case ev.MatchString("-", "_"):
		return actionZoomOut
	case ev.MatchString("up", "k"):
		return actionPitchUp
	case ev.MatchString("down", "j"):
		return actionPitchDown
	case ev.MatchString("left", "h"):
		return actionYawLeft
	case ev.MatchString("right", "l"):
		return actionYawRight
	}
	return actionNone
}

// viewer owns everything the interactive loop touches. It is only used from
// the loop goroutine.
type viewer struct {
	scene    *scene.Scene
	home     render.Camera
	renderer *render.Renderer
	canvas   *render.Canvas
	depth    *render.DepthBuffer
	spin     *spin
	axes     bool
}

func newViewer(s *scene.Scene, fps int) *viewer {
	v := &viewer{spin: newSpin(fps)}
	v.setScene(s)
	return v
}

// setScene swaps in a freshly loaded scene, keeping the spin and canvas.
func (v *viewer) setScene(s *scene.Scene) {
	v.scene = s
	v.home = *s.Camera
	v.renderer = render.NewRenderer(s.Config)
}

// resize allocates a canvas for a terminal of w x h cells.
func (v *viewer) resize(w, h int) {
	cw, ch := render.TerminalCanvasSize(w, h)
	v.canvas = render.NewCanvas(cw, ch)
	v.depth = render.NewDepthBuffer(cw, ch)
}

func (v *viewer) apply(a action) (quit bool) {
	cfg := &v.renderer.Config
	cam := v.scene.Camera

	switch a {
	case actionQuit:
		return true
	case actionOutline:
		cfg.Outline = !cfg.Outline
	case actionBackfaces:
		cfg.DisableBackfaceCulling = !cfg.DisableBackfaceCulling
	case actionSphereTest:
		if cfg.SphereTest == render.SphereTestSquaredRadius {
			cfg.SphereTest = render.SphereTestRadius
		} else {
			cfg.SphereTest = render.SphereTestSquaredRadius
		}
	case actionAxes:
		v.axes = !v.axes
	case actionImpulse:
		v.spin.impulse((rand.Float64()-0.5)*impulseSize, (rand.Float64()-0.5)*impulseSize)
	case actionReset:
		v.spin.reset()
		*cam = v.home
	case actionZoomIn:
		cam.MoveForward(zoomStep)
	case actionZoomOut:
		cam.MoveForward(-zoomStep)
	case actionPitchUp:
		v.spin.impulse(-nudge, 0)
	case actionPitchDown:
		v.spin.impulse(nudge, 0)
	case actionYawLeft:
		v.spin.impulse(0, nudge)
	case actionYawRight:
		v.spin.impulse(0, -nudge)
	}
	return false
}

// frame advances the spin and renders one frame into the canvas.
func (v *viewer) frame() {
	v.spin.step()

	rot := v.spin.rotation()
	instances := make([]*render.Instance, 0, len(v.scene.Instances))
	for _, inst := range v.scene.Instances {
		instances = append(instances, inst.Rotated(rot))
	}

	v.canvas.Clear(v.scene.Background)
	v.depth.Clear()
	v.renderer.RenderScene(v.canvas, v.scene.Camera, instances, v.depth)
	if v.axes {
		v.renderer.DrawAxes(v.canvas, v.scene.Camera, math3d.Zero3(), 1.5)
	}
}

func newViewCmd() *cobra.Command {
	var (
		rf    renderFlags
		fps   int
		watch bool
	)

	cmd := &cobra.Command{
		Use:   "view [scene]",
		Short: "View a scene live in the terminal",
		Long: "View a scene in the terminal using half-block cells.\n\n" +
			"Keys: arrows/hjkl spin, space random spin, +/- zoom, r reset,\n" +
			"o outline, b back-face culling, s sphere test, a axes, q/esc quit.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var path string
			if len(args) > 0 {
				path = args[0]
			}
			if watch && path == "" {
				return fmt.Errorf("--watch needs a scene file")
			}
			s, err := loadScene(path)
			if err != nil {
				return err
			}
			rf.apply(cmd, s)

			var reloads <-chan reload
			if watch {
				ch := make(chan reload, 1)
				// Flags override every reloaded scene, not just the first.
				apply := func(s *scene.Scene) { rf.apply(cmd, s) }
				if err := watchScene(cmd.Context(), path, apply, ch); err != nil {
					return err
				}
				reloads = ch
			}

			return runViewer(cmd.Context(), newViewer(s, fps), fps, reloads)
		},
	}

	rf.register(cmd)
	cmd.Flags().IntVar(&fps, "fps", 30, "target frames per second")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "reload the scene when the file changes")
	return cmd
}

// runViewer drives the terminal until ctx is done or the user quits. Input,
// reloads and frame ticks are all handled on this goroutine.
func runViewer(ctx context.Context, v *viewer, fps int, reloads <-chan reload) error {
	term := uv.DefaultTerminal()

	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}
	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}
	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)
	defer func() {
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}()

	v.resize(width, height)

	ticker := time.NewTicker(time.Second / time.Duration(max(fps, 1)))
	defer ticker.Stop()

	events := term.Events()
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev := <-events:
			switch ev := ev.(type) {
			case uv.WindowSizeEvent:
				width, height = ev.Width, ev.Height
				term.Erase()
				term.Resize(width, height)
				v.resize(width, height)
			case uv.KeyPressEvent:
				if v.apply(actionFor(ev)) {
					return nil
				}
			}

		case r := <-reloads:
			if r.err != nil {
				render.Logger().Warn("scene reload failed", "err", r.err)
				continue
			}
			v.setScene(r.scene)

		case <-ticker.C:
			v.frame()
			v.canvas.Draw(term, uv.Rectangle(image.Rect(0, 0, width, height)))
			if err := term.Display(); err != nil {
				return fmt.Errorf("display: %w", err)
			}
		}
	}
}
