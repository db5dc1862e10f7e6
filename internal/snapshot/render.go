package snapshot

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
)

// Render writes the pivoted table: one row per collection, one column per
// test name, tab separated. Collections and test columns are both sorted
// ascending, and cells without a measurement print "-", so the output is
// byte-identical across runs on the same input.
func (r *Reporter) Render(w io.Writer, table Table, tests map[string]bool) error {
	columns := make([]string, 0, len(tests))
	for test := range tests {
		columns = append(columns, test)
	}
	sort.Strings(columns)

	collections := make([]string, 0, len(table))
	for collection := range table {
		collections = append(collections, collection)
	}
	sort.Strings(collections)

	if _, err := fmt.Fprintf(w, "collection\t%s\n", strings.Join(columns, "\t")); err != nil {
		return err
	}

	row := make([]string, 0, len(columns)+1)
	for _, collection := range collections {
		row = row[:0]
		row = append(row, collection)
		for _, test := range columns {
			if gas, ok := table[collection][test]; ok {
				row = append(row, strconv.FormatInt(gas, 10))
			} else {
				row = append(row, "-")
			}
		}
		if _, err := fmt.Fprintln(w, strings.Join(row, "\t")); err != nil {
			return err
		}
	}
	return nil
}
