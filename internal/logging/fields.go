// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
// Using constants prevents typos and enables IDE autocomplete.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldInput      = "input"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"

	// Configuration fields.
	FieldFlavor     = "flavor"
	FieldType       = "type"
	FieldStandalone = "standalone"
	FieldConfig     = "config"

	// Render statistics fields.
	FieldNodes      = "nodes"
	FieldBytes      = "bytes"
	FieldMetaCount  = "meta"
	FieldInputBytes = "input_bytes"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
