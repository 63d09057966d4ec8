package sorting

import (
	"github.com/matzehuels/stepviz/pkg/catalog"
)

// Descriptors lists the sorting algorithms in display order.
var Descriptors = []*catalog.Descriptor{
	BubbleSort,
	SelectionSort,
	InsertionSort,
	QuickSort,
}

var sample = catalog.Input{Values: []int{29, 10, 14, 37, 13, 5, 42, 21}}

var quadratic = catalog.Complexity{Best: "O(n²)", Average: "O(n²)", Worst: "O(n²)", Space: "O(1)"}
