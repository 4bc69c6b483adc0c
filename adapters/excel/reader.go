package excel

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"goexplore/adapters/coercer"
	"goexplore/domain/core"
	"goexplore/domain/dataset"
	"goexplore/internal"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"
)

// Supported file types
const (
	FileTypeCSV  = "csv"
	FileTypeXLSX = "xlsx"
	FileTypeXLS  = "xls"
)

// DataReader handles reading Excel and CSV files into a table
type DataReader struct {
	filePath string
	fileType string
	config   ReaderConfig
	coercer  *coercer.TypeCoercer
	logger   *internal.Logger
}

// Option customizes a DataReader
type Option func(*DataReader)

// WithConfig replaces the reader configuration
func WithConfig(cfg ReaderConfig) Option {
	return func(r *DataReader) { r.config = cfg }
}

// WithLogger routes reader diagnostics to logger
func WithLogger(logger *internal.Logger) Option {
	return func(r *DataReader) { r.logger = logger }
}

// FileType returns the lower-cased extension of path without the dot
func FileType(path string) string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
}

// IsSupported reports whether the extension of path can be loaded
func IsSupported(path string) bool {
	switch FileType(path) {
	case FileTypeCSV, FileTypeXLSX, FileTypeXLS:
		return true
	}
	return false
}

// NewDataReader creates a new data reader that handles both Excel and CSV files
func NewDataReader(filePath string, opts ...Option) *DataReader {
	r := &DataReader{
		filePath: filePath,
		fileType: FileType(filePath),
		config:   DefaultReaderConfig(),
		logger:   internal.DefaultLogger,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.coercer = coercer.NewTypeCoercer(r.config.CoercionConfig)
	return r
}

// LoadData reads the file at path into a table using default settings
func LoadData(path string, opts ...Option) (*dataset.Table, error) {
	return NewDataReader(path, opts...).ReadTable()
}

// ReadTable reads the file into a table. The first row is the header.
func (r *DataReader) ReadTable() (*dataset.Table, error) {
	r.logger.Debug("[DataReader] Starting to read %s file: %s", r.fileType, r.filePath)

	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, core.NewFileNotFoundError(r.filePath)
	}

	var (
		rows [][]string
		err  error
	)
	switch r.fileType {
	case FileTypeCSV:
		rows, err = r.readCSVRows()
	case FileTypeXLSX:
		rows, err = r.readExcelRows()
	case FileTypeXLS:
		rows, err = r.readXLSRows()
	default:
		return nil, core.NewUnsupportedFormatError(r.filePath)
	}
	if err != nil {
		return nil, err
	}

	return r.processRows(rows)
}

// readCSVRows reads all CSV records
func (r *DataReader) readCSVRows() ([][]string, error) {
	file, err := os.Open(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	if r.config.CSVDelimiter != 0 {
		reader.Comma = r.config.CSVDelimiter
	}

	readStart := time.Now()
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read CSV file: %v", core.ErrMalformedTable, err)
	}
	r.logger.Debug("[DataReader] CSV file read in %.2fms (%d rows)", float64(time.Since(readStart).Nanoseconds())/1e6, len(rows))

	return rows, nil
}

// readExcelRows reads the configured sheet (first sheet by default) of an xlsx workbook
func (r *DataReader) readExcelRows() ([][]string, error) {
	startTime := time.Now()
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open Excel file: %v", core.ErrMalformedTable, err)
	}
	defer f.Close()
	r.logger.Debug("[DataReader] Excel file opened in %.2fms", float64(time.Since(startTime).Nanoseconds())/1e6)

	sheet := r.config.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("%w: workbook has no sheets", core.ErrMalformedTable)
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read sheet %q: %v", core.ErrMalformedTable, sheet, err)
	}
	r.logger.Debug("[DataReader] Sheet %s read (%d rows)", sheet, len(rows))

	return rows, nil
}

// readXLSRows reads a legacy BIFF workbook
func (r *DataReader) readXLSRows() ([][]string, error) {
	wb, err := xls.Open(r.filePath, "utf-8")
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open XLS file: %v", core.ErrMalformedTable, err)
	}

	var sheet *xls.WorkSheet
	for i := 0; i < wb.NumSheets(); i++ {
		s := wb.GetSheet(i)
		if s == nil {
			continue
		}
		if r.config.Sheet == "" || s.Name == r.config.Sheet {
			sheet = s
			break
		}
	}
	if sheet == nil {
		return nil, fmt.Errorf("%w: sheet %q not found", core.ErrMalformedTable, r.config.Sheet)
	}

	rows := make([][]string, 0, int(sheet.MaxRow)+1)
	for i := 0; i <= int(sheet.MaxRow); i++ {
		row := sheet.Row(i)
		if row == nil {
			rows = append(rows, nil)
			continue
		}
		cells := make([]string, row.LastCol())
		for j := row.FirstCol(); j < row.LastCol(); j++ {
			cells[j] = row.Col(j)
		}
		rows = append(rows, cells)
	}
	r.logger.Debug("[DataReader] XLS sheet %s read (%d rows)", sheet.Name, len(rows))

	return rows, nil
}

// processRows converts raw string rows into a typed table
func (r *DataReader) processRows(rows [][]string) (*dataset.Table, error) {
	rows = dropBlankRows(rows)
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %s has no header row", core.ErrMalformedTable, r.filePath)
	}

	headers := uniqueHeaders(rows[0])
	data := rows[1:]

	columns := make([][]string, len(headers))
	for i := range columns {
		columns[i] = make([]string, len(data))
	}
	for i, row := range data {
		if len(row) > len(headers) {
			if !allBlank(row[len(headers):]) {
				return nil, fmt.Errorf("%w: row %d has %d fields, header has %d", core.ErrMalformedTable, i+2, len(row), len(headers))
			}
		}
		for j := range headers {
			if j < len(row) {
				columns[j][i] = row[j]
			}
		}
	}

	typed := make([][]dataset.Value, len(headers))
	for j, raw := range columns {
		typed[j] = r.coercer.CoerceColumn(raw)
	}

	cells := make([][]dataset.Value, len(data))
	for i := range data {
		row := make([]dataset.Value, len(headers))
		for j := range headers {
			row[j] = typed[j][i]
		}
		cells[i] = row
	}

	r.logger.Info("[DataReader] %s file processed (%d columns, %d rows)", strings.ToUpper(r.fileType), len(headers), len(data))

	return dataset.NewTable(headers, cells)
}

// uniqueHeaders trims header cells, drops a leading byte order mark, names
// blank ones "Unnamed: i" and suffixes repeats as name.1, name.2, ...
func uniqueHeaders(raw []string) []string {
	headers := make([]string, len(raw))
	seen := make(map[string]int, len(raw))
	taken := make(map[string]bool, len(raw))

	for i, h := range raw {
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		name := strings.TrimSpace(h)
		if name == "" {
			name = fmt.Sprintf("Unnamed: %d", i)
		}
		base := name
		for taken[name] {
			seen[base]++
			name = fmt.Sprintf("%s.%d", base, seen[base])
		}
		taken[name] = true
		headers[i] = name
	}
	return headers
}

func dropBlankRows(rows [][]string) [][]string {
	out := rows[:0:0]
	for _, row := range rows {
		if !allBlank(row) {
			out = append(out, row)
		}
	}
	return out
}

func allBlank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
