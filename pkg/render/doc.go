// Package render turns trace states into pictures.
//
// Node-link output (trees, graphs, arrays as a row of cells) is produced as
// Graphviz DOT by the [nodelink] subpackage and rendered in-process to SVG.
// [ToPDF] and [ToPNG] convert that SVG with the external rsvg-convert tool.
// Terminal output for the CLI and the player lives in [term].
//
//	state := trace.StateAt(tr, 12)
//	svg, err := nodelink.RenderSVG(ctx, nodelink.FromState(state))
//	png, err := render.ToPNG(svg, 2.0)
//
// [nodelink]: github.com/matzehuels/stepviz/pkg/render/nodelink
// [term]: github.com/matzehuels/stepviz/pkg/render/term
package render
