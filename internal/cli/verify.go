package cli

import (
	"context"
	"fmt"
	"reflect"
	"runtime"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/stepviz/pkg/catalog"
	"github.com/matzehuels/stepviz/pkg/render/term"
	"github.com/matzehuels/stepviz/pkg/trace"
)

// verifyResult is the outcome for one algorithm.
type verifyResult struct {
	ID     string
	Events int
	Result string
	Err    error
}

// verifyCommand creates the "verify" command.
func (c *CLI) verifyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify [algorithm...]",
		Short: "Run every sample input and check the trace invariants",
		Long: `Run each algorithm on its sample input twice and check that:

  - the run validates and terminates with exactly one result
  - every index-bearing event stays within the input
  - both runs produce identical traces
  - the trace survives a JSON round trip`,
		ValidArgsFunction: func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
			return c.registry.IDs(), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			descs := c.registry.List()
			if len(args) > 0 {
				descs = descs[:0:0]
				for _, id := range args {
					d, err := c.descriptor(id)
					if err != nil {
						return err
					}
					descs = append(descs, d)
				}
			}

			results, err := verifyAll(cmd.Context(), descs, c.Config.Limits)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintln(w, verifyTable(results))
			failed := 0
			for _, r := range results {
				if r.Err != nil {
					failed++
				}
			}
			if failed > 0 {
				printError(w, "%d of %d algorithms failed", failed, len(results))
				return fmt.Errorf("verify: %d failures", failed)
			}
			printSuccess(w, "All %d algorithms verified", len(results))
			return nil
		},
	}
	return cmd
}

// verifyAll checks descriptors concurrently. Per-algorithm failures land in
// the results; only cancellation is returned as an error.
func verifyAll(ctx context.Context, descs []*catalog.Descriptor, lim catalog.Limits) ([]verifyResult, error) {
	results := make([]verifyResult, len(descs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, d := range descs {
		g.Go(func() error {
			results[i] = verifyOne(gctx, d, lim)
			return gctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func verifyOne(ctx context.Context, d *catalog.Descriptor, lim catalog.Limits) verifyResult {
	res := verifyResult{ID: d.ID}

	first, err := trace.Record(ctx, d, d.Sample, d.SampleParams, lim)
	if err != nil {
		res.Err = err
		return res
	}
	res.Events = first.Len()
	if ev, ok := first.Result(); ok {
		res.Result = term.Result(ev)
	}

	second, err := trace.Record(ctx, d, d.Sample, d.SampleParams, lim)
	if err != nil {
		res.Err = fmt.Errorf("second run: %w", err)
		return res
	}
	if !reflect.DeepEqual(first.Events, second.Events) {
		res.Err = fmt.Errorf("runs differ: %d vs %d events", first.Len(), second.Len())
		return res
	}

	data, err := trace.Marshal(first)
	if err != nil {
		res.Err = fmt.Errorf("marshal: %w", err)
		return res
	}
	back, err := trace.Unmarshal(data)
	if err != nil {
		res.Err = fmt.Errorf("unmarshal: %w", err)
		return res
	}
	if back.Len() != first.Len() {
		res.Err = fmt.Errorf("round trip kept %d of %d events", back.Len(), first.Len())
	}
	return res
}

func verifyTable(results []verifyResult) string {
	rows := make([][]string, len(results))
	for i, r := range results {
		status := iconSuccess
		detail := r.Result
		if r.Err != nil {
			status = iconError
			detail = r.Err.Error()
		}
		rows[i] = []string{status, r.ID, fmt.Sprint(r.Events), detail}
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Algorithm", "Events", "Result").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			base := lipgloss.NewStyle().Padding(0, 1)
			if row == -1 {
				return styleHeader.Padding(0, 1)
			}
			if row >= len(results) {
				return base
			}
			if col == 0 || col == 3 {
				if results[row].Err != nil {
					return base.Foreground(colorRed)
				}
				if col == 0 {
					return base.Foreground(colorGreen)
				}
			}
			return base.Foreground(colorGray)
		}).
		Render()
}
