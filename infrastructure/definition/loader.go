package definition

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"pageobject/application/pageobject"
	"pageobject/domain/entities"
)

// fileDefinition is the on-disk shape of one definition node. Props are
// runtime closures and cannot be expressed in a file; files describe
// the tree shape and rely on the built-in default properties.
type fileDefinition struct {
	Scope         string                     `yaml:"scope"`
	ResetScope    bool                       `yaml:"resetScope"`
	At            *int                       `yaml:"at"`
	TestContainer string                     `yaml:"testContainer"`
	Children      map[string]*fileDefinition `yaml:"children"`
}

// Load - reads a page-object definition from a YAML file
func Load(path string) (*pageobject.Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read definition file: %w", err)
	}
	def, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return def, nil
}

// Parse - decodes a page-object definition from YAML. Unknown keys are
// rejected; in particular the reserved key "context" cannot appear in
// a file, because execution contexts are runtime objects.
func Parse(data []byte) (*pageobject.Definition, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var fd fileDefinition
	if err := dec.Decode(&fd); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty definition", entities.ErrInvalidDefinition)
		}
		return nil, fmt.Errorf("%w: %v", entities.ErrInvalidDefinition, err)
	}

	return convert(&fd), nil
}

// convert - maps the file shape onto the builder's definition type
func convert(fd *fileDefinition) *pageobject.Definition {
	def := &pageobject.Definition{
		Scope:         fd.Scope,
		ResetScope:    fd.ResetScope,
		At:            fd.At,
		TestContainer: fd.TestContainer,
	}
	if len(fd.Children) > 0 {
		def.Children = make(map[string]*pageobject.Definition, len(fd.Children))
		for key, child := range fd.Children {
			if child == nil {
				child = &fileDefinition{}
			}
			def.Children[key] = convert(child)
		}
	}
	return def
}
