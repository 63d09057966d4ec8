// Package text provides producers over text input. Positions are rune
// indices into the input text.
package text

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/matzehuels/stepviz/pkg/catalog"
	"github.com/matzehuels/stepviz/pkg/step"
)

// Descriptors lists the string algorithms in display order.
var Descriptors = []*catalog.Descriptor{
	PalindromeCheck,
	CharFrequency,
}

// Palindrome comparison modes.
const (
	ModeExact   = "exact"
	ModeLetters = "letters"
)

// PalindromeCheck walks two pointers inward. In letters mode it skips
// anything that is not a letter or digit and ignores case.
var PalindromeCheck = &catalog.Descriptor{
	ID:          "palindromeCheck",
	Name:        "Palindrome Check",
	Category:    catalog.CategoryStrings,
	Difficulty:  catalog.Beginner,
	Complexity:  catalog.Complexity{Best: "O(1)", Average: "O(n)", Worst: "O(n)", Space: "O(1)"},
	Description: "Compares characters from both ends towards the middle and stops at the first mismatch.",
	Pseudocode: []string{
		"left = 0; right = n - 1",
		"while left < right:",
		"  skip ignored characters",
		"  if s[left] != s[right]: return false",
		"  left = left + 1; right = right - 1",
		"return true",
	},
	Params: []catalog.Param{
		catalog.Select("mode", "Compare", ModeExact, ModeExact, ModeLetters),
	},
	Validate:     catalog.TextInput(),
	Run:          palindromeCheck,
	Sample:       catalog.Input{Text: "A man, a plan, a canal: Panama"},
	SampleParams: catalog.Params{"mode": ModeLetters},
}

func palindromeCheck(in catalog.Input, p catalog.Params) step.Seq {
	letters := p.String("mode", ModeExact) == ModeLetters
	return func(yield func(step.Event) bool) {
		e := step.NewEmitter(yield)
		s := []rune(in.Text)
		keep := func(r rune) bool { return !letters || unicode.IsLetter(r) || unicode.IsDigit(r) }
		fold := func(r rune) rune {
			if letters {
				return unicode.ToLower(r)
			}
			return r
		}

		left, right := 0, len(s)-1
		if !e.Emit(step.Info(fmt.Sprintf("Checking %q", in.Text)), step.Highlight(1)) {
			return
		}
		for left < right {
			for left < right && !keep(s[left]) {
				if !e.Emit(step.Highlight(3), step.Mark(step.RoleEliminated, left)) {
					return
				}
				left++
			}
			for left < right && !keep(s[right]) {
				if !e.Emit(step.Highlight(3), step.Mark(step.RoleEliminated, right)) {
					return
				}
				right--
			}
			if left >= right {
				break
			}
			a, b := fold(s[left]), fold(s[right])
			if !e.Emit(
				step.Highlight(2, 4),
				step.Pointer([]step.Label{step.L("left", left), step.L("right", right)}, []step.Var{step.V("s[left]", string(a)), step.V("s[right]", string(b))}, ""),
				step.Compare(left, right, step.Rel(int(a), int(b))),
			) {
				return
			}
			if a != b {
				if !e.Emit(step.Mark(step.RoleEliminated, left, right)) {
					return
				}
				e.Finish(fmt.Sprintf("%q and %q differ, not a palindrome", a, b), step.ResultBoolean, false, "not a palindrome")
				return
			}
			if !e.Emit(step.Highlight(5), step.Mark(step.RoleFound, left, right)) {
				return
			}
			left++
			right--
		}
		if !e.Emit(step.Highlight(6)) {
			return
		}
		e.Finish("Every pair matched", step.ResultBoolean, true, "palindrome")
	}
}

// CharFrequency counts each character in one pass. The result lists counts
// in order of first appearance, e.g. "h:1 e:1 l:2 o:1".
var CharFrequency = &catalog.Descriptor{
	ID:          "charFrequency",
	Name:        "Character Frequency",
	Category:    catalog.CategoryStrings,
	Difficulty:  catalog.Beginner,
	Complexity:  catalog.Complexity{Best: "O(n)", Average: "O(n)", Worst: "O(n)", Space: "O(k)"},
	Description: "Counts characters with a hash map in a single left-to-right pass.",
	Pseudocode: []string{
		"counts = {}",
		"for each c in s:",
		"  counts[c] = counts[c] + 1",
		"return counts",
	},
	Validate: catalog.TextInput(),
	Run:      charFrequency,
	Sample:   catalog.Input{Text: "hello world"},
}

func charFrequency(in catalog.Input, _ catalog.Params) step.Seq {
	return func(yield func(step.Event) bool) {
		e := step.NewEmitter(yield)
		counts := map[rune]int{}
		var seen []rune
		cells := func() []string {
			out := make([]string, len(seen))
			for i, r := range seen {
				out[i] = fmt.Sprintf("%s:%d", display(r), counts[r])
			}
			return out
		}

		if !e.Emit(step.Info(fmt.Sprintf("Counting characters of %q", in.Text)), step.Highlight(1)) {
			return
		}
		for i, r := range []rune(in.Text) {
			if counts[r] == 0 {
				seen = append(seen, r)
			}
			counts[r]++
			if !e.Emit(
				step.Highlight(2, 3),
				step.Visit(i),
				step.Vars(step.V("c", display(r)), step.V("count", counts[r])),
				step.Auxiliary(step.Snapshot{Kind: step.StructureTable, Root: step.NoNode, Cells: cells(), Status: fmt.Sprintf("%s seen %d times", display(r), counts[r])}),
			) {
				return
			}
		}
		if !e.Emit(step.Highlight(4)) {
			return
		}
		e.Finish(fmt.Sprintf("%d distinct characters", len(seen)), step.ResultText, strings.Join(cells(), " "), "counts")
	}
}

// display makes whitespace visible in counts.
func display(r rune) string {
	if r == ' ' {
		return "␣"
	}
	return string(r)
}
