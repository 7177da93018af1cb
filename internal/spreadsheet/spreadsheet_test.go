package spreadsheet

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// buildWorkbook writes rows into the first sheet of a fresh workbook
func buildWorkbook(t *testing.T, rows [][]interface{}) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("failed to compute cell name: %v", err)
		}
		r := row
		if err := f.SetSheetRow("Sheet1", cell, &r); err != nil {
			t.Fatalf("failed to write row: %v", err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("failed to write workbook: %v", err)
	}
	return buf.Bytes()
}

func TestReadProducts_Excel(t *testing.T) {
	data := buildWorkbook(t, [][]interface{}{
		{"Name", "Price", "Amount", "Unit", "Colour"},
		{"Apple", 1.25, 10, "kg", "red"},
		{"Banana", 0.5, 20, "kg", "yellow"},
	})

	products, rowErrors, err := ReadProducts("stock.xlsx", data)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if len(rowErrors) != 0 {
		t.Fatalf("expected no row errors, got: %v", rowErrors)
	}
	if len(products) != 2 {
		t.Fatalf("expected 2 products, got %d", len(products))
	}

	if products[0].Line != 2 {
		t.Errorf("expected Apple on line 2, got %d", products[0].Line)
	}

	apple := products[0].Product
	if apple.Name != "Apple" {
		t.Errorf("expected name Apple, got %s", apple.Name)
	}
	if apple.Price == nil || *apple.Price != 1.25 {
		t.Errorf("expected price 1.25, got %v", apple.Price)
	}
	if apple.Amount == nil || *apple.Amount != 10 {
		t.Errorf("expected amount 10, got %v", apple.Amount)
	}
	if apple.Unit == nil || *apple.Unit != "kg" {
		t.Errorf("expected unit kg, got %v", apple.Unit)
	}
	if apple.Description != nil {
		t.Errorf("expected no description, got %v", *apple.Description)
	}
}

func TestReadProducts_CSV(t *testing.T) {
	data := append([]byte{0xEF, 0xBB, 0xBF}, []byte("name,price,description\nPear,2.10,green\nPlum,abc,purple\n,3,no name\n")...)

	products, rowErrors, err := ReadProducts("stock.csv", data)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if len(products) != 1 || products[0].Product.Name != "Pear" {
		t.Fatalf("expected only Pear to import, got %+v", products)
	}

	if len(rowErrors) != 2 {
		t.Fatalf("expected 2 row errors, got %d", len(rowErrors))
	}
	if rowErrors[0].Row != 3 || rowErrors[0].Message != "price: not a number" {
		t.Errorf("unexpected first row error: %+v", rowErrors[0])
	}
	if rowErrors[1].Row != 4 || rowErrors[1].Message != "name: required" {
		t.Errorf("unexpected second row error: %+v", rowErrors[1])
	}
}

func TestReadProducts_Errors(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		data     []byte
		wantErr  error
	}{
		{"unsupported extension", "stock.pdf", []byte("x"), ErrUnsupportedFormat},
		{"empty csv", "stock.csv", []byte("\n\n"), ErrNoRows},
		{"missing name column", "stock.csv", []byte("price,unit\n1,kg\n"), ErrMissingNameColumn},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ReadProducts(tt.filename, tt.data)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestWriteReport(t *testing.T) {
	id := primitive.NewObjectID()
	docs := []bson.M{
		{"_id": id, "name": "Apple", "price": 1.25, "amount": int32(10), "unit": "kg", "total": 12.5},
		{"_id": primitive.NewObjectID(), "name": "Salt"},
	}

	var buf bytes.Buffer
	if err := WriteReport(&buf, docs); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("failed to open written report: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(ReportSheet)
	if err != nil {
		t.Fatalf("failed to read report rows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header and 2 rows, got %d rows", len(rows))
	}

	want := []string{id.Hex(), "Apple", "1.25", "10", "kg", "12.5"}
	for i, cell := range want {
		if rows[1][i] != cell {
			t.Errorf("row 2 column %d = %q, want %q", i+1, rows[1][i], cell)
		}
	}
	if rows[0][len(ReportColumns)-1] != "total" {
		t.Errorf("expected last header to be total, got %q", rows[0][len(ReportColumns)-1])
	}
}

func TestLoadFiles(t *testing.T) {
	tmpDir := t.TempDir()

	file1 := filepath.Join(tmpDir, "a.csv")
	file2 := filepath.Join(tmpDir, "b.csv")
	if err := os.WriteFile(file1, []byte("name\nApple\n"), 0644); err != nil {
		t.Fatalf("failed to create test file 1: %v", err)
	}
	if err := os.WriteFile(file2, []byte("name\nBanana\n"), 0644); err != nil {
		t.Fatalf("failed to create test file 2: %v", err)
	}

	t.Run("keeps input order", func(t *testing.T) {
		files, err := LoadFiles(context.Background(), []string{file2, file1})
		if err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}
		if files[0].Path != file2 || files[1].Path != file1 {
			t.Errorf("unexpected order: %s, %s", files[0].Path, files[1].Path)
		}
		if string(files[1].Data) != "name\nApple\n" {
			t.Errorf("unexpected content: %q", files[1].Data)
		}
	})

	t.Run("missing file fails", func(t *testing.T) {
		_, err := LoadFiles(context.Background(), []string{file1, filepath.Join(tmpDir, "missing.csv")})
		if err == nil {
			t.Fatal("expected error for missing file")
		}
	})

	t.Run("no files", func(t *testing.T) {
		if _, err := LoadFiles(context.Background(), nil); err == nil {
			t.Fatal("expected error for empty path list")
		}
	})
}
