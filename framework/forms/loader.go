package forms

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"

	"gopkg.in/yaml.v3"

	"github.com/km-arc/formguard/framework/validation"
)

// schemaFile is the YAML layout of a schema:
//
//	name: signup
//	title: Create an account
//	events: input
//	inputs: [email, password, confirm, newsletter]
//	fields:
//	  - name: password
//	    rules: required|minLen:8
//	    sync: confirm
//	  - name: confirm
//	    rules: required|confirm:password
type schemaFile struct {
	Name   string      `yaml:"name"`
	Title  string      `yaml:"title"`
	Events string      `yaml:"events"`
	Inputs []string    `yaml:"inputs"`
	Fields []fieldFile `yaml:"fields"`
}

type fieldFile struct {
	Name  string `yaml:"name"`
	Rules string `yaml:"rules"`
	Sync  string `yaml:"sync"`
}

// ParseSchema decodes one YAML schema. Unknown keys are rejected.
func ParseSchema(data []byte) (Schema, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var f schemaFile
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return Schema{}, fmt.Errorf("%w: empty document", ErrFailedToParseSchema)
		}
		return Schema{}, errors.Join(ErrFailedToParseSchema, err)
	}

	s := Schema{
		Name:   f.Name,
		Title:  f.Title,
		Inputs: f.Inputs,
		Events: validation.EventsMode(f.Events),
		Fields: make([]validation.Field, 0, len(f.Fields)),
	}
	for _, ff := range f.Fields {
		s.Fields = append(s.Fields, validation.Field{Name: ff.Name, Rules: ff.Rules, Sync: ff.Sync})
	}
	return s, s.Validate()
}

// LoadSchemas parses every file of fsys matching pattern, in lexical order.
//
//	schemas, err := forms.LoadSchemas(os.DirFS("./forms"), "*.yaml")
func LoadSchemas(fsys fs.FS, pattern string) ([]Schema, error) {
	names, err := fs.Glob(fsys, pattern)
	if err != nil {
		return nil, errors.Join(ErrFailedToReadSchema, err)
	}

	schemas := make([]Schema, 0, len(names))
	for _, name := range names {
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, errors.Join(ErrFailedToReadSchema, err))
		}
		s, err := ParseSchema(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		schemas = append(schemas, s)
	}
	return schemas, nil
}
