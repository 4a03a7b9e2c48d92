package plan

import "fmt"

// MissingInputError is returned when the run has nothing to read.
type MissingInputError struct {
	Kind string // "input directory" or "registration file"; empty when none was given
	Path string
}

func (e *MissingInputError) Error() string {
	if e.Kind == "" {
		return "no input: set an input directory or a registration file"
	}

	return fmt.Sprintf("%s %s does not exist", e.Kind, e.Path)
}
