// Command folio-snap renders the page's 3D scenes at fixed instants into PNG files.
package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"golang.org/x/image/draw"
	"golang.org/x/sync/errgroup"

	"folio/internal/config"
	"folio/stage"
	"folio/stage/raster"
	"folio/stage/surfaces"
)

type options struct {
	Out    string
	Times  []float64
	Scenes []string
	Width  int
	Height int
	Scale  float64
	Jobs   int
}

type job struct {
	scene string
	index int
	t     float64
}

func (j job) file(dir string) string {
	name := j.scene
	if j.scene == surfaces.Projects {
		name = fmt.Sprintf("%s-%d", j.scene, j.index)
	}
	return filepath.Join(dir, fmt.Sprintf("%s_%07.3f.png", name, j.t))
}

func main() {
	var (
		opts     options
		times    string
		scenes   string
		cfgPath  string
		logLevel string
	)
	flag.StringVar(&opts.Out, "out", "snaps", "Output directory.")
	flag.StringVar(&times, "t", "0", "Comma-separated elapsed seconds to render.")
	flag.StringVar(&scenes, "scene", "all", "Comma-separated scene names, or all.")
	flag.IntVar(&opts.Width, "w", 640, "Render width in pixels.")
	flag.IntVar(&opts.Height, "h", 400, "Render height in pixels.")
	flag.Float64Var(&opts.Scale, "scale", 1, "Resample the rendered image by this factor.")
	flag.IntVar(&opts.Jobs, "j", runtime.NumCPU(), "Parallel renders.")
	flag.StringVar(&cfgPath, "config", "", "YAML config file.")
	flag.StringVar(&logLevel, "log-level", "warn", "Log level.")
	flag.Parse()

	var level slog.Level
	if err := level.UnmarshalText([]byte(logLevel)); err != nil {
		fail(fmt.Errorf("log level: %w", err))
	}
	stage.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	var err error
	if opts.Times, err = parseTimes(times); err != nil {
		fail(err)
	}
	opts.Scenes = surfaces.Names()
	if scenes != "all" {
		opts.Scenes = strings.Split(scenes, ",")
	}

	cfg := config.Default()
	if cfgPath != "" {
		if cfg, err = config.Load(cfgPath); err != nil {
			fail(err)
		}
	}

	files, err := snap(context.Background(), cfg, opts)
	if err != nil {
		fail(err)
	}
	for _, f := range files {
		fmt.Println(f)
	}
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, "folio-snap:", err)
	os.Exit(1)
}

func parseTimes(s string) ([]float64, error) {
	var out []float64
	for _, f := range strings.Split(s, ",") {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		t, err := strconv.ParseFloat(f, 64)
		if err != nil || t < 0 {
			return nil, fmt.Errorf("invalid time %q", f)
		}
		out = append(out, t)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no times given")
	}
	return out, nil
}

// snap renders every (scene, time) pair concurrently and returns the written files in
// job order.
func snap(ctx context.Context, cfg *config.Config, opts options) ([]string, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("invalid size %dx%d", opts.Width, opts.Height)
	}
	if opts.Scale <= 0 {
		opts.Scale = 1
	}
	if err := os.MkdirAll(opts.Out, 0o755); err != nil {
		return nil, err
	}

	var jobs []job
	for _, name := range opts.Scenes {
		n := 1
		if name == surfaces.Projects {
			n = len(cfg.Projects.Titles)
		}
		for i := range n {
			for _, t := range opts.Times {
				jobs = append(jobs, job{scene: name, index: i, t: t})
			}
		}
	}

	files := make([]string, len(jobs))
	g, ctx := errgroup.WithContext(ctx)
	if opts.Jobs > 0 {
		g.SetLimit(opts.Jobs)
	}
	for i, j := range jobs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			path := j.file(opts.Out)
			if err := render(cfg, j, opts, path); err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			files[i] = path
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return files, nil
}

func render(cfg *config.Config, j job, opts options, path string) error {
	sc, err := surfaces.Build(j.scene, cfg, j.index)
	if err != nil {
		return err
	}
	defer sc.Release()

	target := raster.NewRGBATarget(opts.Width, opts.Height)
	sc.Tick(j.t)
	sc.Render(target)

	var img image.Image = target.Img
	if opts.Scale != 1 {
		w := max(int(float64(opts.Width)*opts.Scale), 1)
		h := max(int(float64(opts.Height)*opts.Scale), 1)
		dst := image.NewRGBA(image.Rect(0, 0, w, h))
		draw.CatmullRom.Scale(dst, dst.Bounds(), target.Img, target.Img.Bounds(), draw.Src, nil)
		img = dst
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
