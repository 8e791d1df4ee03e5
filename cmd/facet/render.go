package main

import (
	"context"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"
	"github.com/taigrr/facet/pkg/render"
	"github.com/taigrr/facet/pkg/scene"
	"golang.org/x/sync/errgroup"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4"))
	keyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888")).Width(22)
	valueStyle = lipgloss.NewStyle().Bold(true)
	pathStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575"))
)

func newRenderCmd() *cobra.Command {
	var (
		rf     renderFlags
		out    string
		frames int
		scale  int
		jobs   int
	)

	cmd := &cobra.Command{
		Use:   "render [scene]",
		Short: "Render a scene to PNG",
		Long: "Render a TOML or YAML scene to a PNG file. With --frames N the instances " +
			"turn a full revolution about Y over N frames, rendered concurrently.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var path string
			if len(args) > 0 {
				path = args[0]
			}
			s, err := loadScene(path)
			if err != nil {
				return err
			}
			rf.apply(cmd, s)

			if frames < 1 {
				return fmt.Errorf("--frames must be at least 1, got %d", frames)
			}
			start := time.Now()
			stats, written, err := renderFrames(cmd.Context(), s, out, frames, scale, jobs)
			if err != nil {
				return err
			}
			printSummary(cmd.OutOrStdout(), s, stats, written, time.Since(start))
			return nil
		},
	}

	rf.register(cmd)
	cmd.Flags().StringVarP(&out, "output", "o", "facet.png", "output file; frame numbers are inserted before the extension, or use a %d verb")
	cmd.Flags().IntVarP(&frames, "frames", "n", 1, "number of turntable frames")
	cmd.Flags().IntVar(&scale, "scale", 1, "integer upscale factor for the PNG")
	cmd.Flags().IntVarP(&jobs, "jobs", "j", runtime.NumCPU(), "frames rendered in parallel")
	return cmd
}

// framePath returns the output path of frame i.
func framePath(out string, i, frames int) string {
	if frames == 1 {
		return out
	}
	if strings.Contains(out, "%") {
		return fmt.Sprintf(out, i)
	}
	ext := filepath.Ext(out)
	return fmt.Sprintf("%s-%03d%s", strings.TrimSuffix(out, ext), i, ext)
}

// renderFrames renders every turntable frame with its own renderer, canvas
// and camera copy, and returns the summed statistics.
func renderFrames(ctx context.Context, s *scene.Scene, out string, frames, scale, jobs int) (render.RenderStats, []string, error) {
	stats := make([]render.RenderStats, frames)
	written := make([]string, frames)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(jobs, 1))
	for i := range frames {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			cam := *s.Camera
			angle := 2 * math.Pi * float64(i) / float64(frames)
			c := s.NewCanvas()
			r := render.NewRenderer(s.Config)
			r.Render(c, &cam, s.Frame(angle))
			stats[i] = r.Stats

			path := framePath(out, i, frames)
			if err := c.SavePNG(path, scale); err != nil {
				return fmt.Errorf("frame %d: %w", i, err)
			}
			written[i] = path
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return render.RenderStats{}, nil, err
	}

	var total render.RenderStats
	for _, st := range stats {
		total.Add(st)
	}
	return total, written, nil
}

func printSummary(w io.Writer, s *scene.Scene, stats render.RenderStats, written []string, elapsed time.Duration) {
	row := func(k string, v any) string {
		return lipgloss.JoinHorizontal(lipgloss.Top, keyStyle.Render(k), valueStyle.Render(fmt.Sprint(v)))
	}

	rows := []string{
		titleStyle.Render("facet render"),
		row("canvas", fmt.Sprintf("%dx%d", s.Width, s.Height)),
		row("frames", len(written)),
		row("instances tested", stats.InstancesTested),
		row("instances culled", stats.InstancesCulled),
		row("triangles clipped", stats.TrianglesClipped),
		row("triangles back-faced", stats.TrianglesBackfaced),
		row("triangles drawn", stats.TrianglesDrawn),
		row("elapsed", elapsed.Round(time.Millisecond)),
	}
	if len(written) == 1 {
		rows = append(rows, row("output", pathStyle.Render(written[0])))
	} else if len(written) > 1 {
		rows = append(rows, row("output", pathStyle.Render(written[0]+" .. "+filepath.Base(written[len(written)-1]))))
	}

	fmt.Fprintln(w, lipgloss.JoinVertical(lipgloss.Left, rows...))
}
