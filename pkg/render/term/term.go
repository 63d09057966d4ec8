// Package term draws trace states for the terminal with lipgloss.
package term

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/stepviz/pkg/catalog"
	"github.com/matzehuels/stepviz/pkg/step"
	"github.com/matzehuels/stepviz/pkg/trace"
)

var roleColors = map[step.Role]lipgloss.Color{
	step.RoleCurrent:    lipgloss.Color("220"),
	step.RoleVisited:    lipgloss.Color("75"),
	step.RoleFound:      lipgloss.Color("35"),
	step.RoleEliminated: lipgloss.Color("240"),
	step.RoleSorted:     lipgloss.Color("36"),
	step.RoleWindow:     lipgloss.Color("141"),
	step.RoleAncestor:   lipgloss.Color("209"),
	step.RoleComparing:  lipgloss.Color("228"),
	step.RoleDeleted:    lipgloss.Color("167"),
}

var (
	styleCell    = lipgloss.NewStyle().Padding(0, 1).Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240"))
	styleIndex   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Align(lipgloss.Center)
	styleLabel   = lipgloss.NewStyle().Foreground(lipgloss.Color("75")).Align(lipgloss.Center)
	styleCompare = lipgloss.Color("228")
	styleSwap    = lipgloss.Color("209")
	styleDim     = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	styleMessage = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	styleResult  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("35"))
	styleLine    = lipgloss.NewStyle().Foreground(lipgloss.Color("36")).Bold(true)
)

// cellColor returns the border color for position i, preferring the
// transient compare and swap highlights over the persistent role.
func cellColor(s trace.State, i int) (lipgloss.Color, bool) {
	for _, j := range s.Swapped {
		if j == i {
			return styleSwap, true
		}
	}
	for _, j := range s.Comparing {
		if j == i {
			return styleCompare, true
		}
	}
	c, ok := roleColors[s.Role(i)]
	return c, ok
}

// Array draws the values (or text runes) as boxed cells with indices and
// pointer labels underneath.
func Array(s trace.State) string {
	cells := make([]string, 0, len(s.Values))
	for _, v := range s.Values {
		cells = append(cells, strconv.Itoa(v))
	}
	if len(cells) == 0 {
		for _, r := range s.Text {
			cells = append(cells, string(r))
		}
	}
	if len(cells) == 0 {
		return ""
	}

	width := 1
	for _, c := range cells {
		width = max(width, lipgloss.Width(c))
	}

	labels := make([][]string, len(cells))
	for _, l := range s.Labels {
		if l.Index >= 0 && l.Index < len(cells) {
			labels[l.Index] = append(labels[l.Index], l.Name)
		}
	}

	columns := make([]string, len(cells))
	for i, c := range cells {
		style := styleCell.Width(width + 2).Align(lipgloss.Center)
		if color, ok := cellColor(s, i); ok {
			style = style.BorderForeground(color).Foreground(color)
		}
		box := style.Render(c)
		w := lipgloss.Width(box)
		col := []string{box, styleIndex.Width(w).Render(strconv.Itoa(i))}
		if len(labels[i]) > 0 {
			col = append(col, styleLabel.Width(w).Render(strings.Join(labels[i], ",")))
		}
		columns[i] = lipgloss.JoinVertical(lipgloss.Center, col...)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, columns...)
}

// Snapshot draws an auxiliary structure: trees sideways, graphs as an
// adjacency list, tables and stacks as a cell row.
func Snapshot(snap *step.Snapshot) string {
	if snap == nil {
		return ""
	}
	var b strings.Builder
	switch snap.Kind {
	case step.StructureTree:
		byID := make(map[int]step.Node, len(snap.Nodes))
		for _, n := range snap.Nodes {
			byID[n.ID] = n
		}
		if len(byID) == 0 {
			b.WriteString(styleDim.Render("(empty tree)"))
		} else {
			drawTree(&b, byID, snap.Root, "", true, true)
		}
	case step.StructureGraph:
		adj := map[int][]int{}
		for _, e := range snap.Edges {
			adj[e.From] = append(adj[e.From], e.To)
			adj[e.To] = append(adj[e.To], e.From)
		}
		for _, n := range snap.Nodes {
			nbrs := adj[n.ID]
			sort.Ints(nbrs)
			parts := make([]string, len(nbrs))
			for i, m := range nbrs {
				parts[i] = strconv.Itoa(m)
			}
			fmt.Fprintf(&b, "%s %s %s\n", node(n), styleDim.Render("→"), strings.Join(parts, " "))
		}
	default:
		marked := map[int]bool{}
		for _, i := range snap.Marked {
			marked[i] = true
		}
		parts := make([]string, len(snap.Cells))
		for i, c := range snap.Cells {
			if marked[i] {
				parts[i] = lipgloss.NewStyle().Foreground(roleColors[step.RoleCurrent]).Render("[" + c + "]")
			} else {
				parts[i] = "[" + c + "]"
			}
		}
		b.WriteString(strings.Join(parts, " "))
	}
	out := strings.TrimRight(b.String(), "\n")
	if len(snap.Order) > 0 {
		parts := make([]string, len(snap.Order))
		for i, v := range snap.Order {
			parts[i] = strconv.Itoa(v)
		}
		out += "\n" + styleDim.Render("order: ") + strings.Join(parts, " ")
	}
	if snap.Status != "" {
		out += "\n" + styleDim.Render(snap.Status)
	}
	return out
}

func node(n step.Node) string {
	label := strconv.Itoa(n.Value)
	if c, ok := roleColors[n.Role]; ok {
		return lipgloss.NewStyle().Foreground(c).Bold(true).Render(label)
	}
	return label
}

// drawTree prints the right subtree above and the left below each node, so
// the output reads as the tree rotated a quarter turn.
func drawTree(b *strings.Builder, nodes map[int]step.Node, id int, prefix string, isRoot, isRight bool) {
	n, ok := nodes[id]
	if !ok {
		return
	}
	childPrefix := func(up bool) string {
		if isRoot {
			return prefix + "    "
		}
		if up == isRight {
			return prefix + "    "
		}
		return prefix + "│   "
	}
	drawTree(b, nodes, n.Right, childPrefix(true), false, true)

	branch := ""
	if !isRoot {
		if isRight {
			branch = "┌── "
		} else {
			branch = "└── "
		}
	}
	b.WriteString(styleDim.Render(prefix+branch) + node(n) + "\n")

	drawTree(b, nodes, n.Left, childPrefix(false), false, false)
}

// Status renders the pointer variables, latest message and, once reached,
// the result.
func Status(s trace.State) string {
	var lines []string
	if len(s.Vars) > 0 {
		parts := make([]string, len(s.Vars))
		for i, v := range s.Vars {
			parts[i] = styleDim.Render(v.Name+"=") + v.Value
		}
		lines = append(lines, strings.Join(parts, "  "))
	}
	if s.Caption != "" {
		lines = append(lines, styleDim.Render(s.Caption))
	}
	if s.Message != "" {
		lines = append(lines, styleMessage.Render(s.Message))
	}
	if s.Result != nil {
		lines = append(lines, styleResult.Render(Result(*s.Result)))
	}
	return strings.Join(lines, "\n")
}

// Result formats a result event for display.
func Result(ev step.Event) string {
	switch ev.ResultKind {
	case step.ResultSearch:
		if n, ok := ev.Value.(int); ok && n < 0 {
			if ev.Label == "" || ev.Label == "not found" {
				return "not found"
			}
			return fmt.Sprintf("%s: not found", ev.Label)
		}
	case step.ResultIndices, step.ResultArray:
		if ns, ok := ev.Value.([]int); ok {
			parts := make([]string, len(ns))
			for i, n := range ns {
				parts[i] = strconv.Itoa(n)
			}
			return fmt.Sprintf("%s: [%s]", ev.Label, strings.Join(parts, ", "))
		}
	}
	return fmt.Sprintf("%s: %v", ev.Label, ev.Value)
}

// Pseudocode renders the descriptor's pseudocode with highlighted lines.
func Pseudocode(d *catalog.Descriptor, lines []int) string {
	hot := map[int]bool{}
	for _, l := range lines {
		hot[l] = true
	}
	out := make([]string, len(d.Pseudocode))
	for i, text := range d.Pseudocode {
		num := fmt.Sprintf("%2d ", i+1)
		if hot[i+1] {
			out[i] = styleLine.Render(num + "▸ " + text)
		} else {
			out[i] = styleDim.Render(num+"  ") + text
		}
	}
	return strings.Join(out, "\n")
}

// Frame combines the structure, status and pseudocode for one step.
func Frame(d *catalog.Descriptor, s trace.State) string {
	var parts []string
	if s.Snapshot != nil {
		parts = append(parts, Snapshot(s.Snapshot))
	}
	if arr := Array(s); arr != "" && (s.Snapshot == nil || d.Category != catalog.CategoryTrees) {
		parts = append(parts, arr)
	}
	if status := Status(s); status != "" {
		parts = append(parts, status)
	}
	if len(d.Pseudocode) > 0 {
		parts = append(parts, Pseudocode(d, s.Lines))
	}
	return strings.Join(parts, "\n\n")
}
