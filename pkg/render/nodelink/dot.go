// Package nodelink draws trace states as Graphviz diagrams.
//
// Trees and graphs come from the latest auxiliary snapshot; array and text
// algorithms become a single row of cells with indices and pointer labels
// underneath. Node fill follows the mark role, so the picture for step N
// matches what the terminal player shows for the same step.
//
//	dot := nodelink.FromState(trace.StateAt(tr, n))
//	svg, err := nodelink.RenderSVG(ctx, dot)
package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/stepviz/pkg/step"
	"github.com/matzehuels/stepviz/pkg/trace"
)

// Fills maps each role to its node fill color.
var Fills = map[step.Role]string{
	step.RoleCurrent:    "#ffd54f",
	step.RoleVisited:    "#90caf9",
	step.RoleFound:      "#81c784",
	step.RoleEliminated: "#e0e0e0",
	step.RoleSorted:     "#a5d6a7",
	step.RoleWindow:     "#ce93d8",
	step.RoleAncestor:   "#ffab91",
	step.RoleComparing:  "#fff59d",
	step.RoleDeleted:    "#ef9a9a",
}

const (
	fillDefault = "white"
	fillCompare = "#fff59d"
	fillSwap    = "#ffcc80"
)

func fill(r step.Role) string {
	if c, ok := Fills[r]; ok {
		return c
	}
	return fillDefault
}

// ToDOT converts a tree or graph snapshot to DOT. Table and stack snapshots
// become a row of cells.
func ToDOT(s *step.Snapshot) string {
	switch s.Kind {
	case step.StructureTree:
		return treeDOT(s)
	case step.StructureGraph:
		return graphDOT(s)
	}
	return cellsDOT(s.Cells, s.Marked, s.Status)
}

// FromState picks the diagram for a trace state: the latest snapshot when
// there is one, otherwise the array or text row.
func FromState(s trace.State) string {
	if s.Snapshot != nil {
		return ToDOT(s.Snapshot)
	}
	return arrayDOT(s)
}

func header(buf *bytes.Buffer, kind, status string) {
	fmt.Fprintf(buf, "%s G {\n", kind)
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, fontname=\"Helvetica\", fontsize=16];\n")
	if status != "" {
		fmt.Fprintf(buf, "  label=%q;\n  labelloc=b;\n  fontname=\"Helvetica\";\n", status)
	}
	buf.WriteString("\n")
}

func treeDOT(s *step.Snapshot) string {
	var buf bytes.Buffer
	header(&buf, "digraph", s.Status)
	buf.WriteString("  ordering=out;\n  edge [arrowhead=none];\n\n")

	byID := make(map[int]step.Node, len(s.Nodes))
	for _, n := range s.Nodes {
		byID[n.ID] = n
	}
	for _, n := range s.Nodes {
		fmt.Fprintf(&buf, "  n%d [label=\"%d\", fillcolor=%q];\n", n.ID, n.Value, fill(n.Role))
	}
	buf.WriteString("\n")

	// An invisible placeholder keeps a lone right child on the right.
	for _, n := range s.Nodes {
		left, hasLeft := byID[n.Left]
		right, hasRight := byID[n.Right]
		if !hasLeft && !hasRight {
			continue
		}
		if hasLeft {
			fmt.Fprintf(&buf, "  n%d -> n%d;\n", n.ID, left.ID)
		} else {
			fmt.Fprintf(&buf, "  nil%d [style=invis, label=\"\"];\n  n%d -> nil%d [style=invis];\n", n.ID, n.ID, n.ID)
		}
		if hasRight {
			fmt.Fprintf(&buf, "  n%d -> n%d;\n", n.ID, right.ID)
		} else {
			fmt.Fprintf(&buf, "  nil%d [style=invis, label=\"\"];\n  n%d -> nil%d [style=invis];\n", n.ID, n.ID, n.ID)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func graphDOT(s *step.Snapshot) string {
	var buf bytes.Buffer
	header(&buf, "graph", s.Status)
	buf.WriteString("  layout=neato;\n  overlap=false;\n  splines=true;\n\n")

	for _, n := range s.Nodes {
		fmt.Fprintf(&buf, "  n%d [label=\"%d\", fillcolor=%q];\n", n.ID, n.Value, fill(n.Role))
	}
	buf.WriteString("\n")
	for _, e := range s.Edges {
		attrs := ""
		if e.Role != step.RoleNone {
			attrs = fmt.Sprintf(" [color=%q, penwidth=3]", fill(e.Role))
		}
		fmt.Fprintf(&buf, "  n%d -- n%d%s;\n", e.From, e.To, attrs)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func arrayDOT(s trace.State) string {
	cells := make([]string, 0, len(s.Values))
	for _, v := range s.Values {
		cells = append(cells, strconv.Itoa(v))
	}
	if len(cells) == 0 {
		for _, r := range s.Text {
			cells = append(cells, string(r))
		}
	}

	fills := make([]string, len(cells))
	for i := range cells {
		fills[i] = fill(s.Role(i))
	}
	for _, i := range s.Comparing {
		if i < len(fills) {
			fills[i] = fillCompare
		}
	}
	for _, i := range s.Swapped {
		if i < len(fills) {
			fills[i] = fillSwap
		}
	}

	labels := make([]string, len(cells))
	for _, l := range s.Labels {
		if l.Index >= 0 && l.Index < len(labels) {
			if labels[l.Index] != "" {
				labels[l.Index] += ","
			}
			labels[l.Index] += l.Name
		}
	}

	return rowDOT(cells, fills, labels, s.Message)
}

func cellsDOT(cells []string, marked []int, status string) string {
	fills := make([]string, len(cells))
	for i := range fills {
		fills[i] = fillDefault
	}
	for _, i := range marked {
		if i >= 0 && i < len(fills) {
			fills[i] = fill(step.RoleCurrent)
		}
	}
	return rowDOT(cells, fills, nil, status)
}

// rowDOT draws cells as one HTML-like table with an index row and an
// optional pointer row.
func rowDOT(cells, fills, labels []string, status string) string {
	var buf bytes.Buffer
	header(&buf, "digraph", status)

	buf.WriteString("  row [shape=plaintext, style=\"\", label=<\n")
	buf.WriteString("    <table border=\"0\" cellborder=\"1\" cellspacing=\"0\" cellpadding=\"8\">\n      <tr>")
	for i, c := range cells {
		fmt.Fprintf(&buf, "<td bgcolor=%q>%s</td>", fills[i], html.EscapeString(c))
	}
	buf.WriteString("</tr>\n      <tr>")
	for i := range cells {
		fmt.Fprintf(&buf, "<td border=\"0\"><font point-size=\"10\" color=\"gray40\">%d</font></td>", i)
	}
	buf.WriteString("</tr>\n")
	if strings.Join(labels, "") != "" {
		buf.WriteString("      <tr>")
		for _, l := range labels {
			fmt.Fprintf(&buf, "<td border=\"0\"><font point-size=\"11\">%s</font></td>", html.EscapeString(l))
		}
		buf.WriteString("</tr>\n")
	}
	buf.WriteString("    </table>\n  >];\n}\n")
	return buf.String()
}

// RenderSVG renders DOT source to SVG using the embedded Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gvMu.Lock()
	defer gvMu.Unlock()

	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

// gvMu serializes graphviz use; parsing goes through a package-level
// instance.
var gvMu sync.Mutex

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's pt-sized root element with one that
// scales to its container.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}
	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}
	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
