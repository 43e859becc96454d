package logging

// Field name constants for structured logging.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldInput      = "input"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"
	FieldConfig     = "config"

	// Conversion fields.
	FieldFormat   = "format"
	FieldSmart    = "smart"
	FieldSafe     = "safe"
	FieldJobs     = "jobs"
	FieldDryRun   = "dry_run"
	FieldLines    = "lines"
	FieldBlock    = "block"
	FieldInline   = "inline"
	FieldRender   = "render"
	FieldDuration = "duration"

	// Statistics fields.
	FieldFilesDiscovered = "files_discovered"
	FieldFilesConverted  = "files_converted"
	FieldFilesUnchanged  = "files_unchanged"
	FieldFilesFailed     = "files_failed"
	FieldBytesIn         = "bytes_in"
	FieldBytesOut        = "bytes_out"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
