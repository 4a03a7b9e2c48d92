package gen

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"text/template"
)

// Grammar pieces shared with the cache parser.
const (
	Indent     = "  "
	HashPrefix = "// hash:"

	KeywordModule = "module"
	KeywordBean   = "bean"
	KeywordEnum   = "enum"
	KeywordVar    = "var"
	KeywordItem   = "item"
)

// Var is one field of a bean.
type Var struct {
	Name    string
	Type    string // complete type string, suffix and tags included
	Comment string
}

// Bean is a rendered record.
type Bean struct {
	Name    string
	Parent  string
	Comment string
	Vars    []Var
}

// Item is one enum member. Value is a schema literal: a quoted string or a
// bare integer.
type Item struct {
	Name  string
	Value string
	Alias string
}

// Enum is a rendered enumeration.
type Enum struct {
	Name    string
	Comment string
	Items   []Item
}

var funcs = template.FuncMap{
	"quote": strconv.Quote,
}

var beanTemplate = template.Must(template.New("bean").Funcs(funcs).Parse(
	`  bean {{quote .Name}}{{if .Parent}} parent={{quote .Parent}}{{end}}{{if .Comment}} comment={{quote .Comment}}{{end}} {
{{range .Vars}}    var {{quote .Name}} type={{quote .Type}}{{if .Comment}} comment={{quote .Comment}}{{end}}
{{end}}  }
`))

var enumTemplate = template.Must(template.New("enum").Funcs(funcs).Parse(
	`  enum {{quote .Name}}{{if .Comment}} comment={{quote .Comment}}{{end}} {
{{range .Items}}    item {{quote .Name}} value={{.Value}}{{if .Alias}} alias={{quote .Alias}}{{end}}
{{end}}  }
`))

// RenderBean renders the block of a bean, from its header line through its
// closing brace.
func RenderBean(b Bean) (string, error) {
	var buf bytes.Buffer
	if err := beanTemplate.Execute(&buf, b); err != nil {
		return "", fmt.Errorf("rendering bean %s: %w", b.Name, err)
	}

	return buf.String(), nil
}

// RenderEnum renders the block of an enum.
func RenderEnum(e Enum) (string, error) {
	var buf bytes.Buffer
	if err := enumTemplate.Execute(&buf, e); err != nil {
		return "", fmt.Errorf("rendering enum %s: %w", e.Name, err)
	}

	return buf.String(), nil
}

// Entry is one block of a document.
type Entry struct {
	Name   string
	Hash   string
	Text   string // rendered or cached block
	Cached bool   // Text was taken from the previous document
}

// Document is the complete schema of one module.
type Document struct {
	Module  string
	Entries []Entry
}

// NewDocument creates an empty document for module.
func NewDocument(module string) *Document {
	return &Document{Module: module}
}

// Add appends an entry.
func (d *Document) Add(e Entry) {
	d.Entries = append(d.Entries, e)
}

// Bytes serializes the document.
func (d *Document) Bytes() []byte {
	var sb strings.Builder

	sb.WriteString(KeywordModule + " " + strconv.Quote(d.Module) + " {\n")

	for _, e := range d.Entries {
		if e.Hash != "" {
			sb.WriteString(Indent + HashPrefix + e.Hash + "\n")
		}

		sb.WriteString(e.Text)

		if !strings.HasSuffix(e.Text, "\n") {
			sb.WriteByte('\n')
		}
	}

	sb.WriteString("}\n")

	return []byte(sb.String())
}
