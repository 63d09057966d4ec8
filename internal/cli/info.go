package cli

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/stepviz/pkg/catalog"
	"github.com/matzehuels/stepviz/pkg/render/term"
)

// infoCommand creates the "info" command.
func (c *CLI) infoCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "info <algorithm>",
		Short: "Describe an algorithm: complexity, parameters and pseudocode",
		Example: `  stepviz info quickSort
  stepviz info bstOperations --format yaml`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: c.completeAlgorithms,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := c.descriptor(args[0])
			if err != nil {
				return err
			}
			return writeFormatted(cmd, format, d.Info(), func() string {
				return infoText(d)
			})
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatText, "output format: text, json or yaml")
	return cmd
}

func infoText(d *catalog.Descriptor) string {
	var b bytes.Buffer
	fmt.Fprintln(&b, StyleTitle.Render(d.Name)+" "+StyleDim.Render("("+d.ID+")"))
	printKeyValue(&b, "Category", string(d.Category))
	printKeyValue(&b, "Difficulty", string(d.Difficulty))
	cx := d.Complexity
	printKeyValue(&b, "Time", fmt.Sprintf("best %s · average %s · worst %s", cx.Best, cx.Average, cx.Worst))
	printKeyValue(&b, "Space", cx.Space)
	if d.Description != "" {
		fmt.Fprintln(&b)
		fmt.Fprintln(&b, d.Description)
	}

	if len(d.Params) > 0 {
		fmt.Fprintln(&b)
		fmt.Fprintln(&b, styleHeader.Render("Parameters"))
		for _, p := range d.Params {
			printKeyValue(&b, "  "+p.ID, paramText(p))
		}
	}

	if len(d.Pseudocode) > 0 {
		fmt.Fprintln(&b)
		fmt.Fprintln(&b, styleHeader.Render("Pseudocode"))
		fmt.Fprintln(&b, term.Pseudocode(d, nil))
	}

	fmt.Fprintln(&b)
	printKeyValue(&b, "Sample", sampleText(d))
	fmt.Fprintln(&b)
	printNextStep(&b, "Step through it", "stepviz play "+d.ID)
	return strings.TrimRight(b.String(), "\n")
}

func paramText(p catalog.Param) string {
	var parts []string
	switch p.Type {
	case catalog.ParamNumber:
		rng := ""
		if p.Min != nil && p.Max != nil {
			rng = fmt.Sprintf(" in [%d, %d]", *p.Min, *p.Max)
		}
		parts = append(parts, "number"+rng)
	case catalog.ParamSelect:
		parts = append(parts, strings.Join(p.Options, "|"))
	}
	parts = append(parts, fmt.Sprintf("default %v", p.Default))
	if p.Depends != nil {
		parts = append(parts, fmt.Sprintf("when %s=%s", p.Depends.ParamID, strings.Join(p.Depends.Values, "|")))
	}
	return p.Label + ": " + strings.Join(parts, ", ")
}

// sampleText formats the sample input as the flags "run" accepts.
func sampleText(d *catalog.Descriptor) string {
	var flags []string
	in := d.Sample
	if len(in.Values) > 0 {
		vals := make([]string, len(in.Values))
		for i, v := range in.Values {
			vals[i] = fmt.Sprint(v)
		}
		flags = append(flags, "--values "+strings.Join(vals, ","))
	}
	if len(in.Edges) > 0 {
		edges := make([]string, len(in.Edges))
		for i, e := range in.Edges {
			edges[i] = fmt.Sprintf("%d-%d", e[0], e[1])
		}
		flags = append(flags, "--edges "+strings.Join(edges, ","))
	}
	if in.Text != "" {
		flags = append(flags, fmt.Sprintf("--text %q", in.Text))
	}
	for _, p := range d.Params {
		if v, ok := d.SampleParams[p.ID]; ok {
			flags = append(flags, fmt.Sprintf("--param %s=%v", p.ID, v))
		}
	}
	return strings.Join(flags, " ")
}
