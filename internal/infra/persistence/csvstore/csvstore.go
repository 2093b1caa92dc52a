// Package csvstore reads the parcel-number input file and writes one CSV
// file per scraped window. A window file is flushed in full before the
// next window starts, which is what makes an interrupted run resumable
// from that window's offset.
package csvstore

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"auditorcrawler/internal/domain/entity"
)

const (
	// ParcelColumn is the identifier-bearing column of the input file.
	ParcelColumn = "Parcel"

	windowFileFormat = "housing_data_%d.csv"
)

// LoadParcelNumbers reads the parcel identifier list, preserving file
// order. The file must have a header row containing a Parcel column.
func LoadParcelNumbers(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open parcel numbers file: %w", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read parcel numbers file: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("parcel numbers file %s has no header row", path)
	}

	col := -1
	for i, name := range rows[0] {
		if name == ParcelColumn {
			col = i
			break
		}
	}
	if col < 0 {
		return nil, fmt.Errorf("parcel numbers file %s has no %q column", path, ParcelColumn)
	}

	parcelNumbers := make([]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if col >= len(row) || row[col] == "" {
			continue
		}
		parcelNumbers = append(parcelNumbers, row[col])
	}
	return parcelNumbers, nil
}

// WriteParcelNumbers writes the discovered identifier list in the format
// LoadParcelNumbers reads back.
func WriteParcelNumbers(path string, parcelNumbers []string) error {
	rows := make([][]string, 0, len(parcelNumbers)+1)
	rows = append(rows, []string{ParcelColumn})
	for _, pn := range parcelNumbers {
		rows = append(rows, []string{pn})
	}
	return writeAll(path, rows)
}

// WindowWriter writes one output file per window under a fixed directory.
type WindowWriter struct {
	dir string
}

func NewWindowWriter(dir string) *WindowWriter {
	return &WindowWriter{dir: dir}
}

// WriteWindow writes the window's records to a file named by the window's
// start offset, header row first, and returns the file path.
func (w *WindowWriter) WriteWindow(offset int, records []*entity.ParcelRecord) (string, error) {
	rows := make([][]string, 0, len(records)+1)
	rows = append(rows, entity.CSVHeader())
	for _, record := range records {
		rows = append(rows, record.CSVRow())
	}

	path := filepath.Join(w.dir, fmt.Sprintf(windowFileFormat, offset))
	if err := writeAll(path, rows); err != nil {
		return "", err
	}
	return path, nil
}

func writeAll(path string, rows [][]string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output directory for %s: %w", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	// WriteAll flushes before returning
	if err := csv.NewWriter(f).WriteAll(rows); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}
