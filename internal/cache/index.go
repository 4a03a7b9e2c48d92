package cache

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"schema-generator/internal/diagnostic"
	"schema-generator/internal/gen"
)

// Entry is one reusable block of the previous document.
type Entry struct {
	Name string
	Kind string // gen.KeywordBean or gen.KeywordEnum
	Hash string
	Text string // header line through closing brace line, newline terminated
}

// Index maps schema names to the entries of the previous document.
type Index struct {
	entries map[string]Entry
	order   []string
}

// Empty returns an index without entries.
func Empty() *Index {
	return &Index{entries: make(map[string]Entry)}
}

// Len returns the number of entries.
func (x *Index) Len() int {
	return len(x.order)
}

// Names returns the entry names in document order.
func (x *Index) Names() []string {
	return x.order
}

// Entry returns the entry recorded for name.
func (x *Index) Entry(name string) (Entry, bool) {
	e, ok := x.entries[name]
	return e, ok
}

// Lookup returns the cached text of name if it was generated from the same
// hash.
func (x *Index) Lookup(name, hash string) (string, bool) {
	e, ok := x.entries[name]
	if !ok || hash == "" || e.Hash != hash {
		return "", false
	}

	return e.Text, true
}

// CorruptError describes why a document could not be indexed.
type CorruptError struct {
	Line   int
	Reason string
}

func (e *CorruptError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Reason)
}

func corrupt(line int, format string, args ...any) error {
	return &CorruptError{Line: line, Reason: fmt.Sprintf(format, args...)}
}

// Load reads the document at path. A missing document, or force, yields an
// empty index. A malformed one yields an empty index and an info diagnostic.
func Load(path string, force bool, diags *diagnostic.Diagnostics) (*Index, error) {
	if force || path == "" {
		return Empty(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Empty(), nil
		}

		return nil, fmt.Errorf("reading previous schema: %w", err)
	}

	idx, err := Parse(data)
	if err != nil {
		diags.AddInfo(diagnostic.CodeCacheCorrupt,
			fmt.Sprintf("previous schema %s is ignored: %v", path, err), "", "")

		return Empty(), nil
	}

	return idx, nil
}

// Parse indexes a document.
func Parse(data []byte) (*Index, error) {
	lines := strings.SplitAfter(string(data), "\n")
	idx := Empty()

	i := skipBlank(lines, 0)
	if i == len(lines) {
		return nil, corrupt(1, "empty document")
	}

	head := strings.TrimSpace(lines[i])
	if _, rest, err := keywordName(head, gen.KeywordModule); err != nil || rest != "{" {
		return nil, corrupt(i+1, "missing module header")
	}

	var hash string

	for i++; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])

		switch {
		case line == "":
			continue

		case line == "}":
			if hash != "" {
				return nil, corrupt(i+1, "hash marker without block")
			}

			if j := skipBlank(lines, i+1); j != len(lines) {
				return nil, corrupt(j+1, "content after module")
			}

			return idx, nil

		case strings.HasPrefix(line, gen.HashPrefix):
			if hash != "" {
				return nil, corrupt(i+1, "hash marker without block")
			}

			hash = strings.TrimPrefix(line, gen.HashPrefix)
			if hash == "" {
				return nil, corrupt(i+1, "empty hash")
			}

		default:
			entry, end, err := parseBlock(lines, i)
			if err != nil {
				return nil, err
			}

			if hash != "" {
				entry.Hash = hash
				idx.add(entry)
			}

			hash = ""
			i = end
		}
	}

	return nil, corrupt(len(lines), "unterminated module")
}

// parseBlock reads the bean or enum block starting at lines[start] and
// returns it with the index of its closing line.
func parseBlock(lines []string, start int) (Entry, int, error) {
	header := strings.TrimSpace(lines[start])

	kind := gen.KeywordBean
	if strings.HasPrefix(header, gen.KeywordEnum+" ") {
		kind = gen.KeywordEnum
	}

	name, rest, err := keywordName(header, kind)
	if err != nil {
		return Entry{}, 0, corrupt(start+1, "%v", err)
	}

	if !strings.HasSuffix(rest, "{") {
		return Entry{}, 0, corrupt(start+1, "block %s does not open", name)
	}

	for i := start + 1; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])

		switch {
		case line == "}":
			text := strings.Join(lines[start:i+1], "")
			if !strings.HasSuffix(text, "\n") {
				text += "\n"
			}

			return Entry{Name: name, Kind: kind, Text: text}, i, nil

		case line == "":
			continue

		case strings.HasPrefix(line, gen.KeywordBean+" "),
			strings.HasPrefix(line, gen.KeywordEnum+" "),
			strings.HasPrefix(line, gen.HashPrefix):
			return Entry{}, 0, corrupt(i+1, "unterminated block %s", name)

		default:
			member := gen.KeywordVar
			if kind == gen.KeywordEnum {
				member = gen.KeywordItem
			}

			if _, _, err := keywordName(line, member); err != nil {
				return Entry{}, 0, corrupt(i+1, "%s: %v", name, err)
			}
		}
	}

	return Entry{}, 0, corrupt(len(lines), "unterminated block %s", name)
}

// keywordName splits `keyword "name" rest`.
func keywordName(line, keyword string) (name, rest string, err error) {
	after, ok := strings.CutPrefix(line, keyword+" ")
	if !ok {
		return "", "", fmt.Errorf("expected %s", keyword)
	}

	quoted, err := strconv.QuotedPrefix(after)
	if err != nil {
		return "", "", fmt.Errorf("bad %s name: %w", keyword, err)
	}

	name, err = strconv.Unquote(quoted)
	if err != nil {
		return "", "", fmt.Errorf("bad %s name: %w", keyword, err)
	}

	return name, strings.TrimSpace(after[len(quoted):]), nil
}

func skipBlank(lines []string, i int) int {
	for i < len(lines) && strings.TrimSpace(lines[i]) == "" {
		i++
	}

	return i
}

func (x *Index) add(e Entry) {
	if _, ok := x.entries[e.Name]; !ok {
		x.order = append(x.order, e.Name)
	}

	x.entries[e.Name] = e
}
