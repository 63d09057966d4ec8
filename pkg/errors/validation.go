package errors

import (
	"strconv"
	"strings"
	"unicode"
)

// Sentinel is the value that marks an absent child in level-order tree input.
const Sentinel = -1

// maxInputLength bounds raw input text before any parsing happens.
const maxInputLength = 1024

// ParseValues parses a comma- or whitespace-separated list of integers, as
// typed into the array editor. The tokens "null", "nil", "_" and "x" are
// accepted as [Sentinel] so tree input can be written as "1, 2, 3, null, 5".
//
// Validation rules:
//   - Text cannot exceed 1024 characters
//   - No control characters other than whitespace
//   - Every token must be an integer or a sentinel token
func ParseValues(text string) ([]int, error) {
	if len(text) > maxInputLength {
		return nil, New(ErrCodeInvalidInput, "input too long (max %d characters)", maxInputLength)
	}
	for _, r := range text {
		if unicode.IsControl(r) && !unicode.IsSpace(r) {
			return nil, New(ErrCodeInvalidInput, "input contains invalid control characters")
		}
	}

	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == ';' || unicode.IsSpace(r)
	})
	values := make([]int, 0, len(fields))
	for _, f := range fields {
		switch strings.ToLower(f) {
		case "null", "nil", "_", "x":
			values = append(values, Sentinel)
			continue
		}
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, New(ErrCodeInvalidInput, "%q is not a number", f)
		}
		values = append(values, n)
	}
	return values, nil
}

// ParseEdges parses an edge list such as "0-1, 1-2, 2-0" into pairs.
func ParseEdges(text string) ([][2]int, error) {
	if len(text) > maxInputLength {
		return nil, New(ErrCodeInvalidInput, "edge list too long (max %d characters)", maxInputLength)
	}
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == ';' || unicode.IsSpace(r)
	})
	edges := make([][2]int, 0, len(fields))
	for _, f := range fields {
		a, b, ok := strings.Cut(f, "-")
		if !ok {
			return nil, New(ErrCodeInvalidInput, "edge %q must look like from-to", f)
		}
		from, err := strconv.Atoi(a)
		if err != nil {
			return nil, New(ErrCodeInvalidInput, "edge %q: %q is not a node id", f, a)
		}
		to, err := strconv.Atoi(b)
		if err != nil {
			return nil, New(ErrCodeInvalidInput, "edge %q: %q is not a node id", f, b)
		}
		edges = append(edges, [2]int{from, to})
	}
	return edges, nil
}

// ParseAssignment splits a "key=value" parameter flag.
func ParseAssignment(s string) (string, string, error) {
	key, value, ok := strings.Cut(s, "=")
	key = strings.TrimSpace(key)
	if !ok || key == "" {
		return "", "", New(ErrCodeInvalidParam, "parameter %q must look like key=value", s)
	}
	for _, r := range key {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
			return "", "", New(ErrCodeInvalidParam, "parameter name %q contains invalid characters", key)
		}
	}
	return key, strings.TrimSpace(value), nil
}
