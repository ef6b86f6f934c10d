// Package jsonschema validates structured extraction responses against the
// business record JSON Schema before decoding them.
package jsonschema

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/fwojciec/bizextract"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed record.schema.json
var recordSchema []byte

const schemaURL = "record.schema.json"

// Ensure Decoder implements bizextract.RecordDecoder at compile time.
var _ bizextract.RecordDecoder = (*Decoder)(nil)

// Decoder decodes service responses into business records, rejecting any
// response that does not conform to the record schema.
// Decoder is safe for concurrent use.
type Decoder struct {
	schema *jsonschema.Schema
}

// NewDecoder compiles the embedded record schema.
func NewDecoder() (*Decoder, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(schemaURL, bytes.NewReader(recordSchema)); err != nil {
		return nil, fmt.Errorf("failed to load record schema: %w", err)
	}
	schema, err := compiler.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("failed to compile record schema: %w", err)
	}
	return &Decoder{schema: schema}, nil
}

// Decode validates data against the record schema and decodes it.
func (d *Decoder) Decode(data []byte) (*bizextract.BusinessRecord, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, bizextract.Errorf(bizextract.EINVALID, "response is not valid JSON: %v", err)
	}
	if err := d.schema.Validate(doc); err != nil {
		return nil, bizextract.Errorf(bizextract.EINVALID, "response does not match record schema: %v", err)
	}
	return bizextract.DecodeRecord(data)
}

// RecordSchema returns a fresh copy of the record JSON Schema as a
// generic map, suitable for passing to services that accept a schema.
func RecordSchema() map[string]any {
	var schema map[string]any
	if err := json.Unmarshal(recordSchema, &schema); err != nil {
		panic(fmt.Sprintf("jsonschema: embedded record schema is invalid: %v", err))
	}
	return schema
}
