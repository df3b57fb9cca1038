package core

import (
	"bytes"
	"fmt"
	"io/fs"

	"github.com/jacoelho/xsd"
	xsderrors "github.com/jacoelho/xsd/errors"
)

// DocumentValidator turns raw bytes into a schema-conformant Document.
// Failures are returned as *ImportError.
type DocumentValidator interface {
	Validate(data []byte) (*Document, error)
}

// SchemaValidator validates documents against one compiled XSD schema.
// It is safe for concurrent use; the compiled schema is never mutated.
type SchemaValidator struct {
	schema   *xsd.Schema
	location string
}

// LoadSchemaValidator compiles the schema at location inside fsys.
func LoadSchemaValidator(fsys fs.FS, location string) (*SchemaValidator, error) {
	schema, err := xsd.LoadWithOptions(fsys, location, xsd.NewLoadOptions())
	if err != nil {
		return nil, fmt.Errorf("load schema %s: %w", location, err)
	}
	return &SchemaValidator{schema: schema, location: location}, nil
}

// Location returns the schema file the validator was compiled from.
func (v *SchemaValidator) Location() string {
	return v.location
}

// Validate parses data and checks it against the schema in a single pass.
//
// Bytes that are not well-formed XML yield a KindMalformedInput error without
// diagnostics. A well-formed document with violations yields a
// KindSchemaViolation error listing every violation found.
func (v *SchemaValidator) Validate(data []byte) (*Document, error) {
	doc, err := ParseDocument(data)
	if err != nil {
		return nil, malformedInput(err)
	}

	err = v.schema.Validate(bytes.NewReader(data))
	if err == nil {
		return doc, nil
	}

	violations, ok := xsderrors.AsValidations(err)
	if !ok {
		return nil, malformedInput(err)
	}

	diags := make([]Diagnostic, 0, len(violations))
	for _, violation := range violations {
		if isParseFailure(violation.Code) {
			return nil, malformedInput(&violation)
		}
		diags = append(diags, newDiagnostic(violation))
	}
	if len(diags) == 0 {
		return nil, malformedInput(err)
	}
	return nil, schemaViolation(diags)
}
