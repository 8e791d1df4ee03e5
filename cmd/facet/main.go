// facet - flat-shaded software rasterizer
// Renders scene files to PNG or views them live in the terminal.
//
// Usage:
//
//	facet render scene.toml -o frame.png --frames 36 --scale 2
//	facet view scene.yaml --watch
//
// Without a scene file both commands show the debug cube.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
	"github.com/taigrr/facet/pkg/math3d"
	"github.com/taigrr/facet/pkg/models"
	"github.com/taigrr/facet/pkg/render"
	"github.com/taigrr/facet/pkg/scene"
)

var version = "dev"

// renderFlags are shared by every subcommand that builds a frame.
type renderFlags struct {
	outline    bool
	noCull     bool
	sphereTest render.SphereTest
	fov        float64
	width      int
	height     int
}

func (f *renderFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.outline, "outline", false, "draw darkened triangle outlines")
	cmd.Flags().BoolVar(&f.noCull, "no-cull", false, "disable back-face culling")
	cmd.Flags().TextVar(&f.sphereTest, "sphere-test", render.SphereTestSquaredRadius, "bounding sphere test: squared-radius or radius")
	cmd.Flags().Float64Var(&f.fov, "fov", 0, "field of view in degrees (overrides the scene)")
	cmd.Flags().IntVar(&f.width, "width", 0, "canvas width in pixels (overrides the scene)")
	cmd.Flags().IntVar(&f.height, "height", 0, "canvas height in pixels (overrides the scene)")
}

// apply overrides scene settings with flags the user set explicitly.
func (f *renderFlags) apply(cmd *cobra.Command, s *scene.Scene) {
	flags := cmd.Flags()
	if flags.Changed("outline") {
		s.Config.Outline = f.outline
	}
	if flags.Changed("no-cull") {
		s.Config.DisableBackfaceCulling = f.noCull
	}
	if flags.Changed("sphere-test") {
		s.Config.SphereTest = f.sphereTest
	}
	if f.fov > 0 {
		s.Camera.SetFOV(math3d.Radians(f.fov))
	}
	if f.width > 0 {
		s.Width = f.width
	}
	if f.height > 0 {
		s.Height = f.height
	}
}

// loadScene loads path, or builds the debug cube scene when path is empty.
func loadScene(path string) (*scene.Scene, error) {
	if path != "" {
		return scene.Load(path)
	}
	cube := models.Cube(2)
	return &scene.Scene{
		Width:      scene.DefaultWidth,
		Height:     scene.DefaultHeight,
		Background: render.RGB(16, 16, 24),
		Camera:     render.NewCamera(math3d.V3(0, 0, -5), math3d.Identity()),
		Config:     render.DefaultConfig(),
		Models:     map[string]*models.Model{cube.Name: cube},
		Instances: []*render.Instance{
			render.NewInstance(cube, math3d.Zero3(),
				math3d.RotateX(math3d.Radians(-30)).Mul(math3d.RotateY(math3d.Radians(45))), 1),
		},
	}, nil
}

func newRootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:   "facet",
		Short: "Flat-shaded software rasterizer",
		Long:  "facet renders scenes of convex triangle models with frustum clipping, back-face culling and a depth buffer.",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelWarn
			if verbose {
				level = slog.LevelDebug
			}
			render.SetLogger(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))
		},
		SilenceUsage: true,
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log per-frame statistics to stderr")

	root.AddCommand(newRenderCmd(), newViewCmd())
	return root
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := fang.Execute(ctx, newRootCmd(), fang.WithVersion(version)); err != nil {
		os.Exit(1)
	}
}
