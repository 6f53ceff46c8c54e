package models

// FileResult is the outcome of processing one catalog file. Purely a return
// value; it carries no references into other files' data.
type FileResult struct {
	Filename      string            `json:"filename"`
	Products      []ProductRecord   `json:"products"`
	ColumnMapping map[string]string `json:"columnMapping"`
	TotalRows     int               `json:"totalRows"`
}

// ImportAction describes what the catalog API did with a product
type ImportAction string

const (
	ImportActionCreated ImportAction = "created"
	ImportActionUpdated ImportAction = "updated"
	ImportActionSkipped ImportAction = "skipped"
	ImportActionFailed  ImportAction = "failed"
)

// ProductImportResult records the outcome of upserting a single product
type ProductImportResult struct {
	Title   string       `json:"title"`
	SKUs    []string     `json:"skus,omitempty"`
	Action  ImportAction `json:"action"`
	Error   string       `json:"error,omitempty"`
	File    string       `json:"file"`
	Remote  string       `json:"remoteId,omitempty"`
}

// FileImportResult aggregates per-product outcomes for one file
type FileImportResult struct {
	Filename      string                `json:"filename"`
	TotalProducts int                   `json:"totalProducts"`
	CreatedCount  int                   `json:"createdCount"`
	UpdatedCount  int                   `json:"updatedCount"`
	SkippedCount  int                   `json:"skippedCount"`
	FailedCount   int                   `json:"failedCount"`
	Products      []ProductImportResult `json:"products,omitempty"`
}

// RunResult is the end-of-run report across all files
type RunResult struct {
	RunID          string             `json:"runId"`
	FilesProcessed int                `json:"filesProcessed"`
	FilesSkipped   int                `json:"filesSkipped"`
	TotalProducts  int                `json:"totalProducts"`
	CreatedCount   int                `json:"createdCount"`
	UpdatedCount   int                `json:"updatedCount"`
	SkippedCount   int                `json:"skippedCount"`
	FailedCount    int                `json:"failedCount"`
	FileResults    []FileImportResult `json:"fileResults"`
	ProcessingMs   int64              `json:"processingMs"`
}
