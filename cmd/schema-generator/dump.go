package main

import (
	"fmt"
	"io"

	"github.com/davecgh/go-spew/spew"

	"schema-generator/internal/analyze"
	"schema-generator/internal/config"
)

var dumpConfig = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

// dumpDeclarations prints the extracted model of every emitted declaration.
func dumpDeclarations(w io.Writer, set *analyze.DeclarationSet) {
	for _, d := range set.Emitted() {
		dumpConfig.Fdump(w, d.Detached())
	}
}

// dumpSettings prints the configuration of the run, flags applied, as YAML.
func dumpSettings(w io.Writer, cfg *config.Config) error {
	data, err := config.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	_, err = w.Write(data)

	return err
}
