// Package snapshot parses forge gas snapshot files and pivots the benchmark
// results into a per-collection table.
package snapshot

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const (
	// marker identifies gas benchmark records among arbitrary snapshot lines.
	marker = "GasBench"

	gasToken  = "gas: "
	delimiter = "__"
)

// Table maps collection name -> test name -> measured gas.
type Table map[string]map[string]int64

// ParseError reports a line that matched the benchmark marker but did not
// have the expected structure. The raw line is kept for diagnosis.
type ParseError struct {
	Line   string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("malformed gas snapshot line (%s): %q", e.Reason, e.Line)
}

// Reporter aggregates gas benchmark lines into a Table.
type Reporter struct {
	adjust       map[string]bool
	intrinsicGas int64
	notes        io.Writer
}

// NewReporter returns a Reporter that amortizes intrinsic gas for mint<n>
// tests of the given collections. Adjustment notes are written to notes;
// pass nil to discard them.
func NewReporter(adjust []string, intrinsicGas int64, notes io.Writer) *Reporter {
	set := make(map[string]bool, len(adjust))
	for _, c := range adjust {
		set[c] = true
	}
	return &Reporter{adjust: set, intrinsicGas: intrinsicGas, notes: notes}
}

// Parse reads snapshot lines and aggregates every benchmark record.
// Lines without the marker are skipped. A matched line that cannot be
// tokenized returns a *ParseError; later records overwrite earlier ones
// for the same (collection, test) pair.
func (r *Reporter) Parse(rd io.Reader) (Table, map[string]bool, error) {
	table := make(Table)
	tests := make(map[string]bool)

	scanner := bufio.NewScanner(rd)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.Contains(line, marker) {
			continue
		}

		// GasBench:test__solmateErc721__ownerOf() (gas: 8036)
		tokens := strings.Split(line, delimiter)
		if len(tokens) < 3 {
			return nil, nil, &ParseError{Line: line, Reason: "expected at least 3 segments"}
		}
		collection := tokens[1]
		descriptor := tokens[2]

		test := descriptor
		if i := strings.IndexByte(descriptor, '('); i >= 0 {
			test = descriptor[:i]
		}

		gas, err := parseGas(descriptor)
		if err != nil {
			return nil, nil, &ParseError{Line: line, Reason: err.Error()}
		}

		if r.adjust[collection] && strings.HasPrefix(test, "mint") {
			n, err := strconv.ParseInt(strings.TrimPrefix(test, "mint"), 10, 64)
			if err != nil {
				return nil, nil, &ParseError{Line: line, Reason: "non-numeric mint count"}
			}
			gas += (n - 1) * r.intrinsicGas
			if r.notes != nil {
				fmt.Fprintf(r.notes, "adjusted gas for %s %s to %d\n", collection, test, gas)
			}
		}

		if table[collection] == nil {
			table[collection] = make(map[string]int64)
		}
		table[collection][test] = gas
		tests[test] = true
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	return table, tests, nil
}

func parseGas(descriptor string) (int64, error) {
	i := strings.Index(descriptor, gasToken)
	if i < 0 {
		return 0, fmt.Errorf("missing %q token", gasToken)
	}
	raw := strings.TrimSpace(descriptor[i+len(gasToken):])
	raw = strings.TrimSpace(strings.TrimSuffix(raw, ")"))

	gas, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("non-numeric gas value %q", raw)
	}
	if gas < 0 {
		return 0, fmt.Errorf("negative gas value %q", raw)
	}
	return gas, nil
}
