// Copyright 2026 SpecForm Authors
// Use of this source code is governed by the project license.

// Package specfile loads spec definitions from YAML documents, so schemas
// can live next to the prompts that use them instead of in code.
//
// A document mirrors the construction API one to one:
//
//	name: book-report
//	key_namespace: report
//	refs:
//	  - name: author
//	    fields:
//	      - identifier: name
//	        type: string
//	        cardinality: one
//	        description: The author's full name
//	fields:
//	  - identifier: books.title
//	    type: string
//	    cardinality: many
//	    description: Title of one book
//
// Construction validation is identical to building the spec in Go; a bad
// document fails with the same spec errors.
package specfile

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/BaSui01/specform/spec"
)

type specDoc struct {
	Name         string     `yaml:"name"`
	KeyNamespace string     `yaml:"key_namespace"`
	Refs         []specDoc  `yaml:"refs"`
	Fields       []fieldDoc `yaml:"fields"`
}

type fieldDoc struct {
	Identifier  string            `yaml:"identifier"`
	Type        string            `yaml:"type"`
	Cardinality string            `yaml:"cardinality"`
	Description string            `yaml:"description"`
	Optional    bool              `yaml:"optional"`
	Humanize    bool              `yaml:"humanize"`
	Enum        map[string]string `yaml:"enum"`
	Ref         *refDoc           `yaml:"ref"`
}

type refDoc struct {
	Target  string   `yaml:"target"`
	Targets []string `yaml:"targets"`
}

// Load parses a YAML spec document and builds the validated spec.
func Load(data []byte) (*spec.Spec, error) {
	var doc specDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse spec document: %w", err)
	}
	return buildSpec(doc)
}

// LoadFile reads and parses a YAML spec file.
func LoadFile(path string) (*spec.Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read spec file: %w", err)
	}
	s, err := Load(data)
	if err != nil {
		return nil, fmt.Errorf("load spec file %s: %w", path, err)
	}
	return s, nil
}

func buildSpec(doc specDoc) (*spec.Spec, error) {
	refs := make([]*spec.Spec, 0, len(doc.Refs))
	for _, refDoc := range doc.Refs {
		ref, err := buildSpec(refDoc)
		if err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}

	fields := make([]spec.Field, 0, len(doc.Fields))
	for _, fd := range doc.Fields {
		opts := spec.FieldOptions{
			Identifier:  fd.Identifier,
			Type:        fd.Type,
			Cardinality: spec.Cardinality(fd.Cardinality),
			Description: fd.Description,
			Optional:    fd.Optional,
			Humanize:    fd.Humanize,
			Enum:        fd.Enum,
		}
		if fd.Ref != nil {
			if len(fd.Ref.Targets) > 0 {
				opts.Ref = spec.RefToAny(fd.Ref.Targets...)
			} else if fd.Ref.Target != "" {
				opts.Ref = spec.RefTo(fd.Ref.Target)
			}
		}
		f, err := spec.NewField(opts)
		if err != nil {
			return nil, err
		}
		fields = append(fields, f)
	}

	return spec.New(doc.Name, spec.Options{Refs: refs, KeyNamespace: doc.KeyNamespace}, fields...)
}
