package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/stepviz/pkg/catalog"
	"github.com/matzehuels/stepviz/pkg/errors"
	"github.com/matzehuels/stepviz/pkg/render/term"
	"github.com/matzehuels/stepviz/pkg/step"
	"github.com/matzehuels/stepviz/pkg/trace"
)

// inputFlags holds the input and parameter flags shared by run, play and
// render. With no input flags the descriptor's sample is used.
type inputFlags struct {
	values  string
	edges   string
	text    string
	params  []string
	noCache bool
}

func (f *inputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.values, "values", "", `array or level-order tree values, e.g. "5,3,8" or "1,2,null,4"`)
	cmd.Flags().StringVar(&f.edges, "edges", "", `graph edges, e.g. "0-1,1-2"`)
	cmd.Flags().StringVar(&f.text, "text", "", "input text for string algorithms")
	cmd.Flags().StringArrayVarP(&f.params, "param", "p", nil, "algorithm parameter as key=value (repeatable)")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable the trace cache")
}

func (f *inputFlags) empty() bool {
	return f.values == "" && f.edges == "" && f.text == ""
}

// build parses the flags into input and parameters for d.
func (f *inputFlags) build(d *catalog.Descriptor) (catalog.Input, catalog.Params, error) {
	var params catalog.Params
	for _, a := range f.params {
		key, value, err := errors.ParseAssignment(a)
		if err != nil {
			return catalog.Input{}, nil, err
		}
		if params == nil {
			params = catalog.Params{}
		}
		params[key] = value
	}

	if f.empty() {
		if params == nil {
			params = d.SampleParams.Clone()
		}
		return d.Sample.Clone(), params, nil
	}

	in := catalog.Input{Text: f.text}
	if f.values != "" {
		values, err := errors.ParseValues(f.values)
		if err != nil {
			return in, nil, err
		}
		in.Values = values
	}
	if f.edges != "" {
		edges, err := errors.ParseEdges(f.edges)
		if err != nil {
			return in, nil, err
		}
		in.Edges = edges
	}
	return in, params, nil
}

// record resolves the algorithm, parses the flags and records the trace
// through runner.
func (c *CLI) record(ctx context.Context, runner *trace.Runner, id string, f *inputFlags) (*catalog.Descriptor, *trace.Trace, bool, error) {
	d, err := c.descriptor(id)
	if err != nil {
		return nil, nil, false, err
	}
	in, params, err := f.build(d)
	if err != nil {
		return d, nil, false, err
	}

	prog := newProgress(loggerFromContext(ctx))
	t, hit, err := runner.Run(ctx, d, in, params)
	if err != nil {
		return d, nil, false, err
	}
	prog.done("Recorded trace", "algorithm", d.ID, "events", t.Len(), "cached", hit)
	return d, t, hit, nil
}

// runCommand creates the "run" command.
func (c *CLI) runCommand() *cobra.Command {
	var (
		flags  inputFlags
		format string
	)

	cmd := &cobra.Command{
		Use:   "run <algorithm>",
		Short: "Run an algorithm and print its step trace",
		Long: `Run an algorithm on the given input and print every step it takes.

Without input flags the algorithm's sample input is used. Invalid input is
rejected with the validator's message before anything runs.`,
		Example: `  stepviz run bubbleSort --values 5,1,4,2
  stepviz run binarySearch --values 1,3,5,7,9 --param target=7
  stepviz run bfs --values 0,1,2,3 --edges 0-1,0-2,2-3 --param start=0
  stepviz run palindromeCheck --text racecar --format json`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: c.completeAlgorithms,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			runner := c.newRunner(ctx, flags.noCache)
			defer runner.Cache.Close()

			_, t, hit, err := c.record(ctx, runner, args[0], &flags)
			if err != nil {
				return userError(err)
			}

			w := cmd.OutOrStdout()
			switch strings.ToLower(format) {
			case formatJSON:
				data, err := trace.Marshal(t)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(w, string(data))
				return err
			case formatText, "":
				printTrace(w, t)
				printStats(w, t.Len(), hit)
				return nil
			default:
				return errors.New(errors.ErrCodeInvalidFormat, "unknown output format %q (want text or json)", format)
			}
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&format, "format", "f", formatText, "output format: text or json")
	return cmd
}

// printTrace prints one numbered line per event, then the result.
func printTrace(w io.Writer, t *trace.Trace) {
	width := len(fmt.Sprint(t.Len()))
	for i, ev := range t.Events {
		if ev.Kind == step.KindResult {
			continue
		}
		fmt.Fprintf(w, "%s %s\n", StyleDim.Render(fmt.Sprintf("%*d", width, i+1)), ev.String())
	}
	if res, ok := t.Result(); ok {
		printSuccess(w, "%s", term.Result(res))
	}
}

// messageError prints as the bare user message while keeping the coded
// error in the chain.
type messageError struct{ err error }

func (e messageError) Error() string { return errors.UserMessage(e.err) }
func (e messageError) Unwrap() error { return e.err }

// userError makes input and parameter errors print verbatim, without the
// code prefix.
func userError(err error) error {
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidParam:
		return messageError{err}
	}
	return err
}
