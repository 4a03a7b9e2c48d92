package analyze

import (
	"go/ast"
	"strings"
)

// directivePrefix introduces machine-readable comments such as
// "//schema:ignore" or "//schema:alias epic".
const directivePrefix = "//schema:"

// docInfo is what a comment group tells the extractor.
type docInfo struct {
	Summary string            // first plain line
	Text    string            // all plain lines joined with spaces
	Params  map[string]string // @param <Field> <text>
	Alias   string            // //schema:alias or @alias
	Ignore  bool              // //schema:ignore or @ignore
}

// parseDoc reads doc and trailing comment groups. Directives and @tag lines
// never end up in Summary or Text.
func parseDoc(groups ...*ast.CommentGroup) docInfo {
	var info docInfo

	var text []string

	for _, g := range groups {
		if g == nil {
			continue
		}

		for _, c := range g.List {
			if rest, ok := strings.CutPrefix(c.Text, directivePrefix); ok {
				info.applyDirective(rest)
				continue
			}

			for _, line := range commentLines(c.Text) {
				if strings.HasPrefix(line, "@") {
					info.applyTag(line[1:])
					continue
				}

				if line == "" {
					continue
				}

				if info.Summary == "" {
					info.Summary = line
				}

				text = append(text, line)
			}
		}
	}

	info.Text = strings.Join(text, " ")

	return info
}

func (d *docInfo) applyDirective(s string) {
	name, arg, _ := strings.Cut(strings.TrimSpace(s), " ")
	switch name {
	case "ignore":
		d.Ignore = true
	case "alias":
		d.Alias = strings.TrimSpace(arg)
	}
}

func (d *docInfo) applyTag(s string) {
	name, arg, _ := strings.Cut(strings.TrimSpace(s), " ")
	arg = strings.TrimSpace(arg)

	switch name {
	case "ignore":
		d.Ignore = true
	case "alias":
		d.Alias = arg
	case "param":
		field, text, _ := strings.Cut(arg, " ")
		if field == "" {
			return
		}

		if d.Params == nil {
			d.Params = make(map[string]string)
		}

		d.Params[field] = strings.TrimSpace(text)
	}
}

// commentLines strips comment markers and returns trimmed lines.
// Toolchain directives like //go:generate or //nolint:xyz yield nothing.
func commentLines(raw string) []string {
	if body, ok := strings.CutPrefix(raw, "//"); ok {
		if isToolDirective(body) {
			return nil
		}

		return []string{strings.TrimSpace(body)}
	}

	body := strings.TrimSuffix(strings.TrimPrefix(raw, "/*"), "*/")

	lines := strings.Split(body, "\n")
	for i, l := range lines {
		l = strings.TrimSpace(l)
		l = strings.TrimSpace(strings.TrimPrefix(l, "*"))
		lines[i] = l
	}

	return lines
}

// isToolDirective reports whether a line comment body has the
// "name:args" form Go reserves for tools (no space after the slashes).
func isToolDirective(body string) bool {
	name, _, ok := strings.Cut(body, ":")
	if !ok || name == "" {
		return false
	}

	for _, r := range name {
		if !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9') {
			return false
		}
	}

	return true
}
