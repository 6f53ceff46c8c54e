package importer

import "fmt"

// Failure codes surfaced by the pipeline. All are scoped to a single file or
// product group; none aborts a multi-file run.
const (
	CodeMissingRequiredColumn = "MISSING_REQUIRED_COLUMN"
	CodeEmptyAfterFiltering   = "EMPTY_AFTER_FILTERING"
	CodeFileReadError         = "FILE_READ_ERROR"
	CodeProductAssemblyError  = "PRODUCT_ASSEMBLY_ERROR"
)

// MissingRequiredColumnError is returned when no header matches any synonym
// for a required semantic field. Fatal for the file only.
type MissingRequiredColumnError struct {
	Field    string
	Filename string
}

func (e *MissingRequiredColumnError) Error() string {
	return fmt.Sprintf("missing required %s column in %s", e.Field, e.Filename)
}

// EmptyAfterFilteringError is returned when every row of a file was dropped
// by title filtering. Not a run-level error; the file just has no output.
type EmptyAfterFilteringError struct {
	Filename string
}

func (e *EmptyAfterFilteringError) Error() string {
	return fmt.Sprintf("no valid products in %s after filtering", e.Filename)
}

// FileReadError wraps an I/O or parse failure for one file
type FileReadError struct {
	Filename string
	Err      error
}

func (e *FileReadError) Error() string {
	return fmt.Sprintf("failed to read %s: %v", e.Filename, e.Err)
}

func (e *FileReadError) Unwrap() error { return e.Err }

// ProductAssemblyError wraps a failure to assemble one product group. The
// pipeline logs it and continues with the remaining groups.
type ProductAssemblyError struct {
	Title    string
	Filename string
	Err      error
}

func (e *ProductAssemblyError) Error() string {
	return fmt.Sprintf("failed to assemble product %q from %s: %v", e.Title, e.Filename, e.Err)
}

func (e *ProductAssemblyError) Unwrap() error { return e.Err }
