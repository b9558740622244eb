package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/df07/go-interactive-pathtracer/pkg/core"
	"github.com/df07/go-interactive-pathtracer/pkg/renderer"
	"github.com/df07/go-interactive-pathtracer/pkg/scene"
)

// options holds the parsed command line
type options struct {
	sceneID     string
	resolution  renderer.Resolution
	samples     uint
	focal       float64
	minDistance float64
	workers     int
	seed        int64
	poll        time.Duration
	frames      int
	help        bool
}

func parseOptions(args []string, output io.Writer) (options, error) {
	defaults := renderer.DefaultRenderParams()

	fs := flag.NewFlagSet("pathtracer", flag.ContinueOnError)
	fs.SetOutput(output)

	var opts options
	var resolution string
	fs.StringVar(&opts.sceneID, "scene", "default", "Scene to render (see -help for the list)")
	fs.StringVar(&resolution, "resolution", defaults.Resolution.String(), "Output resolution as WxH")
	fs.UintVar(&opts.samples, "samples", uint(defaults.SamplesPerPixel), "Samples per pixel")
	fs.Float64Var(&opts.focal, "focal", defaults.FocalLength, "Camera focal length")
	fs.Float64Var(&opts.minDistance, "min-distance", defaults.MinRayDistance, "Minimum ray hit distance")
	fs.IntVar(&opts.workers, "workers", 0, "Row workers (0 = physical CPU cores)")
	fs.Int64Var(&opts.seed, "seed", 0, "Random seed (0 = fresh noise every frame)")
	fs.DurationVar(&opts.poll, "poll", 16*time.Millisecond, "Interval between Render calls, one display refresh")
	fs.IntVar(&opts.frames, "frames", 1, "Frames to render back to back")
	fs.BoolVar(&opts.help, "help", false, "Show help information")

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if opts.help {
		return opts, nil
	}

	res, err := renderer.ParseResolution(resolution)
	if err != nil {
		return options{}, err
	}
	opts.resolution = res

	if opts.samples > 0xffff {
		return options{}, fmt.Errorf("samples must be at most %d, got %d", 0xffff, opts.samples)
	}
	if opts.frames < 1 {
		return options{}, fmt.Errorf("frames must be at least 1, got %d", opts.frames)
	}
	if opts.poll <= 0 {
		return options{}, fmt.Errorf("poll interval must be positive, got %v", opts.poll)
	}
	return opts, nil
}

// renderParams turns options into validated render parameters
func (o options) renderParams() (renderer.RenderParams, error) {
	params := renderer.DefaultRenderParams()
	params.Resolution = o.resolution
	params.SamplesPerPixel = uint16(o.samples)
	params.FocalLength = o.focal
	params.MinRayDistance = o.minDistance
	return params, params.Validate()
}

func printHelp(w io.Writer) {
	fmt.Fprintln(w, "Interactive Path Tracer")
	fmt.Fprintln(w, "Usage: pathtracer [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Available scenes:")
	for _, info := range scene.ListScenes() {
		fmt.Fprintf(w, "  %-12s %s\n", info.ID, info.Description)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Available resolutions:")
	for _, res := range renderer.AvailableResolutions() {
		fmt.Fprintf(w, "  %s\n", res)
	}
}

// run drives the renderer the way a display loop would: one Render call per
// tick, never blocking between them
func run(opts options) error {
	s, err := scene.Lookup(opts.sceneID)
	if err != nil {
		return err
	}
	params, err := opts.renderParams()
	if err != nil {
		return err
	}

	host := probeHost()
	host.log()
	host.checkFrameBuffer(params.Resolution)

	config := renderer.DefaultWorkerConfig()
	config.NumWorkers = host.rowWorkers(opts.workers)
	config.Seed = opts.seed

	r := renderer.NewRenderer(config)
	defer r.Close()

	log.Printf("Rendering scene %q (%d objects) at %s with %d samples/pixel",
		opts.sceneID, s.GetPrimitiveCount(), params.Resolution, params.SamplesPerPixel)

	ticker := time.NewTicker(opts.poll)
	defer ticker.Stop()

	var last *renderer.Frame
	lastReported := -10
	for done := 0; done < opts.frames; {
		if err := r.Render(params, s); err != nil {
			if errors.Is(err, core.ErrRendererUnavailable) {
				return err
			}
			log.Printf("Frame %d failed: %v", done+1, err)
			done++
			continue
		}

		if frame := r.Frame(); frame != nil && frame != last {
			last = frame
			done++
			reportFrame(done, frame)
			lastReported = -10
		} else if percent := int(r.Progress() * 100); percent/10 != lastReported/10 {
			log.Printf("Progress: %d%%", percent)
			lastReported = percent
		}

		<-ticker.C
	}

	return r.Close()
}

func reportFrame(n int, frame *renderer.Frame) {
	stats := frame.Stats
	log.Printf("Frame %d: %s in %v (%d samples over %d rows, %d workers, seed %d)",
		n, frame.Resolution(), stats.Elapsed.Round(time.Millisecond),
		stats.TotalSamples, stats.Rows, stats.Workers, stats.Seed)
	log.Printf("Frame %d: average luminance %.4f", n, renderer.CalculateAverageLuminance(frame.RGBA()))
}

func main() {
	opts, err := parseOptions(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			printHelp(os.Stdout)
			return
		}
		log.Printf("Invalid arguments: %v", err)
		os.Exit(2)
	}
	if opts.help {
		printHelp(os.Stdout)
		return
	}

	if err := run(opts); err != nil {
		log.Printf("Error: %v", err)
		os.Exit(1)
	}
}
