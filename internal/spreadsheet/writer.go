package spreadsheet

import (
	"fmt"
	"io"

	"github.com/Lixing-Zhang/shop-admin/backend/internal/pipeline"
	"github.com/xuri/excelize/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ReportSheet is the name of the worksheet written by WriteReport
const ReportSheet = "Report"

// ReportColumns lists the report columns in output order
var ReportColumns = []string{"_id", "name", "price", "amount", "unit", pipeline.ReportTotalField}

// WriteReport renders report documents as an xlsx workbook
func WriteReport(w io.Writer, docs []bson.M) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", ReportSheet); err != nil {
		return fmt.Errorf("failed to name report sheet: %w", err)
	}

	header := make([]interface{}, len(ReportColumns))
	for i, c := range ReportColumns {
		header[i] = c
	}
	if err := f.SetSheetRow(ReportSheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write report header: %w", err)
	}

	for i, doc := range docs {
		row := make([]interface{}, len(ReportColumns))
		for j, c := range ReportColumns {
			row[j] = cellValue(doc[c])
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(ReportSheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write report row %d: %w", i+2, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write xlsx: %w", err)
	}
	return nil
}

func cellValue(v interface{}) interface{} {
	switch t := v.(type) {
	case nil:
		return ""
	case primitive.ObjectID:
		return t.Hex()
	case primitive.Decimal128:
		return t.String()
	default:
		return t
	}
}
