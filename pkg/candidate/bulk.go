package candidate

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Row is one data row of a bulk upload. Line is 1-based and excludes the header.
type Row struct {
	Line      int
	Name      string
	Email     string
	ResumeURL string
}

var (
	nameHeaders   = []string{"candidate name", "name"}
	emailHeaders  = []string{"candidate email", "email"}
	resumeHeaders = []string{"resume link", "resume url", "link", "resume_url"}
)

// SupportedBulk reports whether the uploaded file is a bulk sheet.
func SupportedBulk(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv", ".xlsx":
		return true
	}
	return false
}

// ParseBulk reads rows from a .csv or .xlsx file. Only the header row is
// validated here; row-level problems are reported per row by the use case.
func ParseBulk(filename string, data []byte) ([]Row, error) {
	var records [][]string
	var err error
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		records, err = readCSV(data)
	case ".xlsx":
		records, err = readXLSX(data)
	default:
		return nil, errors.New("unsupported bulk format: only csv and xlsx are allowed")
	}
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, errors.New("file is empty")
	}

	header := make(map[string]int, len(records[0]))
	for i, h := range records[0] {
		header[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}
	nameCol := lookup(header, nameHeaders)
	emailCol := lookup(header, emailHeaders)
	resumeCol := lookup(header, resumeHeaders)
	if emailCol < 0 {
		return nil, errors.New("missing email column")
	}

	rows := make([]Row, 0, len(records)-1)
	for i, rec := range records[1:] {
		if blank(rec) {
			continue
		}
		rows = append(rows, Row{
			Line:      i + 1,
			Name:      cell(rec, nameCol),
			Email:     cell(rec, emailCol),
			ResumeURL: cell(rec, resumeCol),
		})
	}
	return rows, nil
}

func readCSV(data []byte) ([][]string, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	var out [][]string
	for {
		rec, err := r.Read()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		out = append(out, rec)
	}
}

func readXLSX(data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read xlsx rows: %w", err)
	}
	return rows, nil
}

func lookup(header map[string]int, names []string) int {
	for _, n := range names {
		if i, ok := header[n]; ok {
			return i
		}
	}
	return -1
}

func cell(rec []string, i int) string {
	if i < 0 || i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

func blank(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
