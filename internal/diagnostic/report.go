package diagnostic

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// Remediation is printed after the unmappable type listing.
const Remediation = "Map each type by adding it to `aliases` in the config file, " +
	"by declaring it in a scanned or registered package, " +
	"or by giving it a counterpart in the schema's primitive catalogue."

var (
	errorStyle   = color.New(color.FgRed, color.Bold)
	warningStyle = color.New(color.FgYellow)
	declStyle    = color.New(color.Bold)
	hintStyle    = color.New(color.FgCyan)
)

// Group is the unmappable fields of one declaration.
type Group struct {
	Declaration string
	Fields      []Diagnostic
}

// GroupByDeclaration groups unmappable type errors by declaration, keeping
// the order in which declarations were first reported.
func GroupByDeclaration(diags []Diagnostic) []Group {
	var groups []Group

	index := make(map[string]int)

	for _, d := range diags {
		i, ok := index[d.Declaration]
		if !ok {
			i = len(groups)
			index[d.Declaration] = i
			groups = append(groups, Group{Declaration: d.Declaration})
		}

		groups[i].Fields = append(groups[i].Fields, d)
	}

	return groups
}

// Report writes the failure report of a run: unmappable types grouped by
// declaration, then the other errors, then warnings.
func Report(w io.Writer, diags Diagnostics) {
	unmappable := diags.Unmappable()

	if len(unmappable) > 0 {
		groups := GroupByDeclaration(unmappable)

		errorStyle.Fprintf(w, "error: %d unmappable %s in %d %s\n",
			len(unmappable), plural(len(unmappable), "type", "types"),
			len(groups), plural(len(groups), "declaration", "declarations"))

		for _, g := range groups {
			declStyle.Fprintf(w, "%s\n", g.Declaration)

			for _, d := range g.Fields {
				fmt.Fprintf(w, "  - %s: %s\n", d.Field, d.TypeName)

				if len(d.Suggestions) > 0 {
					hintStyle.Fprintf(w, "    did you mean %s?\n", strings.Join(d.Suggestions, ", "))
				}
			}
		}

		fmt.Fprintf(w, "\n%s\n", Remediation)
	}

	for _, d := range diags.Errors {
		if d.Code == CodeUnmappableType {
			continue
		}

		errorStyle.Fprintf(w, "error: %s\n", d.String())
	}

	for _, d := range diags.Warnings {
		warningStyle.Fprintf(w, "warning: %s\n", d.String())
	}
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}

	return many
}
