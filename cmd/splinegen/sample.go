package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/npillmayer/crspline/catmull"
	"github.com/npillmayer/crspline/polygon"
	"github.com/npillmayer/crspline/splinehost"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	accentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#00AAFF")).Bold(true)
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666"))
	boxStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

type sampleOptions struct {
	scene  string
	async  bool
	fps    int
	format string
	quiet  bool
}

func newSampleCmd() *cobra.Command {
	opts := sampleOptions{}
	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Sample the spline of a scene",
		Long: `Sample loads a scene file, generates the spline through its anchors and
prints the samples. With --async, generation is spread across frames at the
given frame rate, spending at most the scene's frame budget per frame.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSample(cmd, opts)
		},
	}
	cmd.Flags().StringVarP(&opts.scene, "scene", "s", "", "Scene file (YAML, required)")
	cmd.Flags().BoolVar(&opts.async, "async", false, "Generate across frames")
	cmd.Flags().IntVar(&opts.fps, "fps", 60, "Frames per second for --async")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "text", "Output format (text, yaml)")
	cmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "Print samples only")
	cmd.MarkFlagRequired("scene")
	return cmd
}

func runSample(cmd *cobra.Command, opts sampleOptions) error {
	if opts.format != "text" && opts.format != "yaml" {
		return fmt.Errorf("unknown output format %q", opts.format)
	}
	if opts.fps <= 0 {
		return fmt.Errorf("frame rate must be > 0, got %d", opts.fps)
	}
	f, err := os.Open(opts.scene)
	if err != nil {
		return err
	}
	scene, err := splinehost.LoadScene(f)
	f.Close()
	if err != nil {
		return fmt.Errorf("%s: %w", opts.scene, err)
	}
	host := splinehost.New(scene)
	start := time.Now()
	if opts.async {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		err = generateAsync(ctx, host, opts, cmd.ErrOrStderr())
	} else {
		err = host.Generate()
	}
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	out := cmd.OutOrStdout()
	if err := writeSamples(out, host.Samples(), opts.format); err != nil {
		return err
	}
	if !opts.quiet {
		fmt.Fprintln(cmd.ErrOrStderr(), summary(host, elapsed))
	}
	return nil
}

func generateAsync(ctx context.Context, host *splinehost.Host, opts sampleOptions, w io.Writer) error {
	cfg := host.Config
	total := catmull.ComputeLength(len(host.Anchors), cfg.ClosedLoop, cfg.Resolution)
	var bar *progressbar.ProgressBar
	if !opts.quiet {
		bar = progressbar.NewOptions(total,
			progressbar.OptionSetWriter(w),
			progressbar.OptionSetDescription("sampling"),
			progressbar.OptionSetWidth(40),
			progressbar.OptionShowCount(),
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer:        "█",
				SaucerHead:    "█",
				SaucerPadding: "░",
				BarStart:      "",
				BarEnd:        "",
			}),
			progressbar.OptionClearOnFinish(),
		)
		host.OnSamples = func(s splinehost.Snapshot) {
			bar.Set(len(s.Samples))
			if s.Final {
				bar.Finish()
			}
		}
	}
	ticker := time.NewTicker(time.Second / time.Duration(opts.fps))
	defer ticker.Stop()
	if err := host.GenerateAsync(); err != nil {
		return err
	}
	for host.IsGeneratingAsync() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
		if err := host.Tick(); err != nil {
			return err
		}
	}
	return nil
}

type sampleDoc struct {
	Position [3]float64 `yaml:"position,flow"`
	Tangent  [3]float64 `yaml:"tangent,flow"`
	Normal   [3]float64 `yaml:"normal,flow"`
}

func writeSamples(w io.Writer, samples []catmull.SamplePoint, format string) error {
	if format == "text" {
		_, err := io.WriteString(w, catmull.SamplesString(samples))
		return err
	}
	docs := make([]sampleDoc, len(samples))
	for i, sp := range samples {
		docs[i] = sampleDoc{
			Position: [3]float64{sp.Position.X, sp.Position.Y, sp.Position.Z},
			Tangent:  [3]float64{sp.Tangent.X, sp.Tangent.Y, sp.Tangent.Z},
			Normal:   [3]float64{sp.Normal.X, sp.Normal.Y, sp.Normal.Z},
		}
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(map[string]any{"samples": docs}); err != nil {
		return err
	}
	return enc.Close()
}

func summary(host *splinehost.Host, elapsed time.Duration) string {
	line := func(label string, value any) string {
		return fmt.Sprintf("%s %s", mutedStyle.Render(fmt.Sprintf("%-10s", label)),
			accentStyle.Render(fmt.Sprint(value)))
	}
	fp := host.Footprint()
	bb := fp.BoundingBox()
	lines := []string{
		line("samples", len(host.Samples())),
		line("anchors", len(host.ControlPoints())),
		line("frames", host.Frames()),
		line("time", elapsed.Round(time.Microsecond)),
		line("bounds", fmt.Sprintf("%s .. %s",
			polygon.AsString(polygon.NullPolygon().Knot(bb.Min)),
			polygon.AsString(polygon.NullPolygon().Knot(bb.Max)))),
	}
	if fp.IsCycle() {
		lines = append(lines, line("area", fmt.Sprintf("%.4g", fp.SignedArea())))
	}
	return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
