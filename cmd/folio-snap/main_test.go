package main

import (
	"context"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"folio/internal/config"
	"folio/stage/surfaces"
)

func TestParseTimes(t *testing.T) {
	got, err := parseTimes("0, 1.5,3")
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1.5, 3}, got)

	_, err = parseTimes("x")
	assert.Error(t, err)
	_, err = parseTimes("-1")
	assert.Error(t, err)
	_, err = parseTimes(" , ")
	assert.Error(t, err)
}

func TestSnapWritesEveryCard(t *testing.T) {
	cfg := config.Default()
	dir := t.TempDir()

	files, err := snap(context.Background(), cfg, options{
		Out:    dir,
		Times:  []float64{0, 2},
		Scenes: []string{surfaces.Projects, surfaces.Contact},
		Width:  64,
		Height: 48,
		Scale:  2,
		Jobs:   2,
	})
	require.NoError(t, err)
	require.Len(t, files, (len(cfg.Projects.Titles)+1)*2)
	assert.Equal(t, filepath.Join(dir, "projects-0_000.000.png"), files[0])

	f, err := os.Open(files[len(files)-1])
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 128, img.Bounds().Dx())
	assert.Equal(t, 96, img.Bounds().Dy())
}

func TestSnapUnknownScene(t *testing.T) {
	_, err := snap(context.Background(), config.Default(), options{
		Out:    t.TempDir(),
		Times:  []float64{0},
		Scenes: []string{"nope"},
		Width:  8,
		Height: 8,
	})
	assert.ErrorIs(t, err, surfaces.ErrUnknown)
}
