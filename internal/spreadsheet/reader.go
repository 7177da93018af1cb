package spreadsheet

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Lixing-Zhang/shop-admin/backend/internal/models"
	"github.com/Lixing-Zhang/shop-admin/backend/internal/pipeline"
	"github.com/xuri/excelize/v2"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrNoRows            = errors.New("no rows found in file")
	ErrMissingNameColumn = errors.New("header row has no name column")
)

// Row is a parsed product together with its 1-based position in the file
type Row struct {
	Line    int
	Product models.ProductInput
}

var byteOrderMark = []byte{0xEF, 0xBB, 0xBF}

// ReadProducts parses an .xlsx or .csv file into product inputs.
// The first non-empty row is the header; columns are matched to the
// recognized product fields case-insensitively and everything else is
// ignored. Rows that cannot be converted are reported, not fatal.
func ReadProducts(filename string, data []byte) ([]Row, []models.RowError, error) {
	rows, err := readRows(filename, data)
	if err != nil {
		return nil, nil, err
	}

	headerIdx := -1
	for i, row := range rows {
		if !isEmptyRow(row) {
			headerIdx = i
			break
		}
	}
	if headerIdx < 0 {
		return nil, nil, ErrNoRows
	}

	columns := make(map[int]pipeline.Field)
	hasName := false
	for i, header := range rows[headerIdx] {
		f, ok := pipeline.Lookup(strings.ToLower(strings.TrimSpace(header)))
		if !ok {
			continue
		}
		columns[i] = f
		if f.Name == "name" {
			hasName = true
		}
	}
	if !hasName {
		return nil, nil, ErrMissingNameColumn
	}

	var (
		products  []Row
		rowErrors []models.RowError
	)
	for i := headerIdx + 1; i < len(rows); i++ {
		if isEmptyRow(rows[i]) {
			continue
		}
		p, err := parseRow(rows[i], columns)
		if err != nil {
			rowErrors = append(rowErrors, models.RowError{Row: i + 1, Message: err.Error()})
			continue
		}
		products = append(products, Row{Line: i + 1, Product: p})
	}

	return products, rowErrors, nil
}

func readRows(filename string, data []byte) ([][]string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return readCSV(data)
	case ".xlsx", ".xlsm":
		return readExcel(data)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(filename))
	}
}

func readCSV(data []byte) ([][]string, error) {
	reader := bufio.NewReader(bytes.NewReader(data))
	if prefix, err := reader.Peek(len(byteOrderMark)); err == nil && bytes.Equal(prefix, byteOrderMark) {
		_, _ = reader.Discard(len(byteOrderMark))
	}

	r := csv.NewReader(reader)
	r.TrimLeadingSpace = true
	r.FieldsPerRecord = -1

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}
	return rows, nil
}

func readExcel(data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open xlsx: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("excel file has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read rows from xlsx: %w", err)
	}
	return rows, nil
}

func parseRow(row []string, columns map[int]pipeline.Field) (models.ProductInput, error) {
	var p models.ProductInput
	for i, f := range columns {
		if i >= len(row) {
			continue
		}
		value := strings.TrimSpace(row[i])
		if value == "" {
			continue
		}

		switch f.Kind {
		case pipeline.KindNumeric:
			n, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return models.ProductInput{}, fmt.Errorf("%s: not a %s", f.Name, f.Kind)
			}
			setNumeric(&p, f.Name, n)
		default:
			setText(&p, f.Name, value)
		}
	}

	if p.Name == "" {
		return models.ProductInput{}, errors.New("name: required")
	}
	return p, nil
}

func setNumeric(p *models.ProductInput, field string, v float64) {
	switch field {
	case "price":
		p.Price = &v
	case "amount":
		p.Amount = &v
	}
}

func setText(p *models.ProductInput, field, v string) {
	switch field {
	case "name":
		p.Name = v
	case "description":
		p.Description = &v
	case "unit":
		p.Unit = &v
	}
}

func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
