package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFramePath(t *testing.T) {
	tests := []struct {
		out    string
		i, n   int
		expect string
	}{
		{"out.png", 0, 1, "out.png"},
		{"out.png", 3, 10, "out-003.png"},
		{"dir/spin.png", 12, 36, "dir/spin-012.png"},
		{"f_%02d.png", 7, 9, "f_07.png"},
	}

	for _, tc := range tests {
		t.Run(tc.expect, func(t *testing.T) {
			assert.Equal(t, tc.expect, framePath(tc.out, tc.i, tc.n))
		})
	}
}

func TestRenderFramesDebugCube(t *testing.T) {
	s, err := loadScene("")
	require.NoError(t, err)
	s.Width, s.Height = 48, 32

	out := filepath.Join(t.TempDir(), "cube.png")
	stats, written, err := renderFrames(context.Background(), s, out, 4, 2, 2)
	require.NoError(t, err)

	require.Len(t, written, 4)
	for _, p := range written {
		_, err := os.Stat(p)
		assert.NoError(t, err, p)
	}
	assert.Equal(t, 4, stats.InstancesTested)
	assert.Positive(t, stats.TrianglesDrawn)

	var buf bytes.Buffer
	printSummary(&buf, s, stats, written, 0)
	assert.Contains(t, buf.String(), "triangles drawn")
}

func TestRenderCommand(t *testing.T) {
	dir := t.TempDir()
	scenePath := filepath.Join(dir, "scene.yaml")
	require.NoError(t, os.WriteFile(scenePath, []byte(`
canvas: {width: 40, height: 30}
models:
  - shape: cube
instances:
  - model: cube
    rotation: [20, 30, 0]
`), 0o644))

	out := filepath.Join(dir, "out.png")
	root := newRootCmd()
	var stdout bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"render", scenePath, "-o", out, "--outline", "--sphere-test", "radius"})
	require.NoError(t, root.ExecuteContext(context.Background()))

	_, err := os.Stat(out)
	assert.NoError(t, err)
	assert.Contains(t, stdout.String(), "facet render")
}

func TestRenderCommandRejectsBadSphereTest(t *testing.T) {
	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"render", "--sphere-test", "cone", "-o", filepath.Join(t.TempDir(), "x.png")})
	assert.Error(t, root.ExecuteContext(context.Background()))
}
