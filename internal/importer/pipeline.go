package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	"catalog-importer/internal/models"
)

// Pipeline reads one catalog file at a time and produces normalized product
// records. Single-threaded, no state shared between files.
type Pipeline struct {
	defaults Defaults
	logger   *logrus.Entry
}

// NewPipeline creates a pipeline with the configured variant defaults
func NewPipeline(defs Defaults, logger *logrus.Logger) *Pipeline {
	return &Pipeline{
		defaults: defs,
		logger:   logrus.NewEntry(logger).WithField("component", "pipeline"),
	}
}

// Process runs the full transform for one file: parse, filter invalid rows,
// detect columns, group rows by product identity, and assemble one product
// per group. Failures are scoped to this file; assembly failures are scoped
// to their group.
func (p *Pipeline) Process(path string) (*models.FileResult, error) {
	filename := filepath.Base(path)
	log := p.logger.WithField("file", filename)

	headers, records, err := p.readFile(path)
	if err != nil {
		return nil, &FileReadError{Filename: filename, Err: err}
	}
	log.WithField("rows", len(records)).Info("Loaded catalog file")

	mapping, err := DetectColumns(headers, filename, log)
	if err != nil {
		return nil, err
	}

	rows := make([]Row, 0, len(records))
	for _, record := range records {
		row := NewRow(record, mapping)
		if !validTitle(row) {
			continue
		}
		rows = append(rows, row)
	}
	if dropped := len(records) - len(rows); dropped > 0 {
		log.WithField("dropped", dropped).Info("Filtered out invalid rows")
	}

	if len(rows) == 0 {
		return nil, &EmptyAfterFilteringError{Filename: filename}
	}

	groups, order := groupByIdentity(rows)

	products := make([]models.ProductRecord, 0, len(order))
	for _, key := range order {
		group := groups[key]
		product, err := AssembleProduct(group, filename, p.defaults)
		if err != nil {
			title := group[0].FieldOr(FieldTitle, key)
			assemblyErr := &ProductAssemblyError{Title: title, Filename: filename, Err: err}
			log.WithField("product", title).WithError(assemblyErr).Error("Skipping product group")
			continue
		}
		products = append(products, *product)
	}

	return &models.FileResult{
		Filename:      filename,
		Products:      products,
		ColumnMapping: mapping.ToMap(),
		TotalRows:     len(rows),
	}, nil
}

// validTitle drops rows whose title is missing, blank, or comment-marked
func validTitle(row Row) bool {
	title, ok := row.Field(FieldTitle)
	if !ok {
		return false
	}
	return !strings.HasPrefix(title, "#")
}

// groupByIdentity buckets rows by product identity, preserving the order in
// which each identity was first encountered. The identity is the explicit
// handle column when present and non-empty, else the normalized title.
func groupByIdentity(rows []Row) (map[string][]Row, []string) {
	groups := make(map[string][]Row)
	order := make([]string, 0)
	for _, row := range rows {
		key := row.FieldOr(FieldHandle, "")
		if key == "" {
			key = row.FieldOr(FieldTitle, "")
		}
		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}
		groups[key] = append(groups[key], row)
	}
	return groups, order
}

// readFile parses a CSV or XLSX file into a header list and row maps keyed
// by source column name. Header case is preserved; column matching is
// case-sensitive.
func (p *Pipeline) readFile(path string) ([]string, []map[string]string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return readXLSX(path)
	default:
		return readCSV(path)
	}
}

func readCSV(path string) ([]string, []map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	headers, err := reader.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	for i := range headers {
		headers[i] = strings.TrimSpace(headers[i])
	}

	var rows []map[string]string
	for lineNum := 2; ; lineNum++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("error reading line %d: %w", lineNum, err)
		}

		row := make(map[string]string, len(headers))
		for i, value := range record {
			if i < len(headers) {
				row[headers[i]] = value
			}
		}
		rows = append(rows, row)
	}

	return headers, rows, nil
}

func readXLSX(path string) ([]string, []map[string]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, fmt.Errorf("no sheets found in Excel file")
	}
	sheetName := sheets[0]
	for _, name := range sheets {
		if strings.EqualFold(name, "Products") {
			sheetName = name
			break
		}
	}

	excelRows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read sheet: %w", err)
	}
	if len(excelRows) == 0 {
		return nil, nil, fmt.Errorf("sheet %s has no header row", sheetName)
	}

	headers := excelRows[0]
	for i := range headers {
		headers[i] = strings.TrimSpace(headers[i])
	}

	var rows []map[string]string
	for _, excelRow := range excelRows[1:] {
		row := make(map[string]string, len(headers))
		for i, value := range excelRow {
			if i < len(headers) {
				row[headers[i]] = value
			}
		}
		rows = append(rows, row)
	}

	return headers, rows, nil
}
