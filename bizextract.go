// Package bizextract turns the crawled pages of a single business website
// into one structured business record that a form or database can consume
// without any field mapping.
//
// This package contains domain types, interfaces and the pure parts of the
// pipeline (content packing and prompt composition) following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., gemini/, openai/, jsonschema/).
package bizextract
