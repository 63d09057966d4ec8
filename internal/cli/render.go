package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/stepviz/pkg/render"
	"github.com/matzehuels/stepviz/pkg/trace"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	input   inputFlags
	output  string   // output file, base path for several formats, or directory with --all
	formats []string // svg, dot, png, pdf
	step    int      // events applied before drawing; negative means the whole trace
	all     bool     // one file per step
}

// renderCommand creates the "render" command.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	opts := renderOpts{step: -1}

	cmd := &cobra.Command{
		Use:   "render <algorithm>",
		Short: "Render a trace step to SVG, DOT, PNG or PDF",
		Long: `Record an algorithm run and draw the state after a given step.

Trees and graphs are drawn node-link style, arrays as a row of cells. PNG and
PDF output need rsvg-convert on the PATH.`,
		Example: `  stepviz render bstOperations --param operation=insert --param value=65 -o bst.svg
  stepviz render quickSort --values 5,1,4,2 --step 8 --format svg,png
  stepviz render bfs --all -o frames/`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: c.completeAlgorithms,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := validateFormats(opts.formats); err != nil {
				return err
			}
			return c.runRender(cmd, args[0], &opts)
		},
	}

	opts.input.register(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file, base path (several formats) or directory (--all)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), dot, png, pdf (comma-separated)")
	cmd.Flags().IntVar(&opts.step, "step", opts.step, "number of events applied before drawing (default: all)")
	cmd.Flags().BoolVar(&opts.all, "all", false, "render every step into a directory")

	return cmd
}

// parseFormats parses the --format flag. If empty, defaults to ["svg"].
func parseFormats(s string) []string {
	if s == "" {
		return []string{render.FormatSVG}
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.ToLower(strings.TrimSpace(f)); f != "" && !slices.Contains(out, f) {
			out = append(out, f)
		}
	}
	return out
}

// validateFormats checks that all requested formats are supported.
func validateFormats(formats []string) error {
	for _, f := range formats {
		if !slices.Contains(render.Formats, f) {
			return fmt.Errorf("invalid format: %s (must be one of %s)", f, strings.Join(render.Formats, ", "))
		}
	}
	return nil
}

// basePath strips a known format extension from output, or derives a name
// from the algorithm ID when output is empty.
func basePath(output, id string) string {
	if output == "" {
		return id
	}
	ext := filepath.Ext(output)
	if slices.Contains(render.Formats, strings.TrimPrefix(ext, ".")) {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

func (c *CLI) runRender(cmd *cobra.Command, id string, opts *renderOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	runner := c.newRunner(ctx, opts.input.noCache)
	defer runner.Cache.Close()

	d, t, _, err := c.record(ctx, runner, id, &opts.input)
	if err != nil {
		return userError(err)
	}

	if opts.all {
		dir := opts.output
		if dir == "" {
			dir = d.ID
		}
		return renderAll(ctx, cmd, runner, t, dir, opts.formats)
	}

	at := opts.step
	if at < 0 || at > t.Len() {
		at = t.Len()
	}
	logger.Infof("Rendering %s at step %d/%d", d.ID, at, t.Len())

	base := basePath(opts.output, d.ID)
	w := cmd.OutOrStdout()
	for _, format := range opts.formats {
		path := base + "." + format
		if len(opts.formats) == 1 && opts.output != "" {
			path = opts.output
		}
		if err := renderStep(ctx, runner, t, at, format, path); err != nil {
			return err
		}
		printFile(w, path)
	}
	return nil
}

// renderStep draws one step in one format and writes it to path.
func renderStep(ctx context.Context, runner *trace.Runner, t *trace.Trace, at int, format, path string) error {
	data, hit, err := runner.Artifact(ctx, t, at, format, func() ([]byte, error) {
		return render.Draw(ctx, trace.StateAt(t, at), format)
	})
	if err != nil {
		return err
	}
	loggerFromContext(ctx).Debug("rendered", "step", at, "format", format, "bytes", len(data), "cached", hit)

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}

// renderAll writes one file per step and format into dir, rendering in
// parallel.
func renderAll(ctx context.Context, cmd *cobra.Command, runner *trace.Runner, t *trace.Trace, dir string, formats []string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	spinner := newSpinnerWithContext(ctx, cmd.ErrOrStderr(), fmt.Sprintf("Rendering %d steps...", t.Len()+1))
	spinner.Start()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	width := len(fmt.Sprint(t.Len()))
	for at := 0; at <= t.Len(); at++ {
		for _, format := range formats {
			path := filepath.Join(dir, fmt.Sprintf("step-%0*d.%s", width, at, format))
			g.Go(func() error {
				return renderStep(gctx, runner, t, at, format, path)
			})
		}
	}
	if err := g.Wait(); err != nil {
		spinner.StopWithError(err.Error())
		return err
	}
	spinner.StopWithSuccess(fmt.Sprintf("Rendered %d steps", t.Len()+1))
	printFile(cmd.OutOrStdout(), dir)
	return nil
}
