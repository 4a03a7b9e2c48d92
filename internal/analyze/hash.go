package analyze

import (
	"fmt"
	"go/token"
	"os"

	"github.com/cespare/xxhash/v2"
)

// span is a byte range of one source file.
type span struct {
	file       string
	start, end int
}

// spanOf converts a position range into a byte span.
func (a *Analyzer) spanOf(from, to token.Pos) span {
	start := a.fset.Position(from)
	end := a.fset.Position(to)

	return span{file: start.Filename, start: start.Offset, end: end.Offset}
}

// source returns the contents of a file, reading it at most once per run.
func (a *Analyzer) source(file string) ([]byte, error) {
	if data, ok := a.sources[file]; ok {
		return data, nil
	}

	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("reading source %s: %w", file, err)
	}

	a.sources[file] = data

	return data, nil
}

// contentHash digests the schema name and the exact text of every span.
// The name takes part because a rename at registration changes the output
// without touching the source.
func (a *Analyzer) contentHash(name string, spans []span) (string, error) {
	h := xxhash.New()
	_, _ = h.WriteString(name)
	_, _ = h.Write([]byte{0})

	for _, s := range spans {
		data, err := a.source(s.file)
		if err != nil {
			return "", err
		}

		if s.start < 0 || s.end > len(data) || s.start > s.end {
			return "", fmt.Errorf("span %d:%d out of range in %s", s.start, s.end, s.file)
		}

		_, _ = h.Write(data[s.start:s.end])
		_, _ = h.Write([]byte{0})
	}

	return fmt.Sprintf("%016x", h.Sum64()), nil
}
