/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Datagrid Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    https://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package csvimport decodes CSV data into typed records.
package csvimport

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

var (
	// ErrEmptyCSV is returned when the input has no header row
	ErrEmptyCSV = errors.New("CSV file is empty")
	// ErrMissingColumn is returned when a required header is absent
	ErrMissingColumn = errors.New("missing required column")
)

// ImportOptions configures CSV import behavior
type ImportOptions struct {
	// Delimiter is the field delimiter (defaults to comma)
	Delimiter rune
	// Required lists header names that must be present
	Required []string
}

// DefaultOptions returns default import options
func DefaultOptions() ImportOptions {
	return ImportOptions{
		Delimiter: ',',
	}
}

// Row is one data row, addressed by header name.
type Row struct {
	Line   int // 1-based line in the input, header included
	header map[string]int
	fields []string
}

// Get returns the trimmed value of a column, or "" if the row is short
// or the column does not exist.
func (r Row) Get(name string) string {
	i, ok := r.header[name]
	if !ok || i >= len(r.fields) {
		return ""
	}
	return strings.TrimSpace(r.fields[i])
}

// Int parses a column as a base 10 integer. Empty values are 0.
func (r Row) Int(name string) (int64, error) {
	value := r.Get(name)
	if value == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("line %d, column %q: %w", r.Line, name, err)
	}
	return n, nil
}

// Float parses a column as float64. Empty values are 0.
func (r Row) Float(name string) (float64, error) {
	value := r.Get(name)
	if value == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("line %d, column %q: %w", r.Line, name, err)
	}
	return f, nil
}

// ImportFromFile imports a CSV file with a header row
func ImportFromFile[T any](filepath string, options ImportOptions, decode func(Row) (T, error)) ([]T, error) {
	file, err := os.Open(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return ImportFromReader(file, options, decode)
}

// ImportFromReader reads CSV data with a header row and decodes every
// data row with decode. The first decode error aborts the import.
func ImportFromReader[T any](reader io.Reader, options ImportOptions, decode func(Row) (T, error)) ([]T, error) {
	csvReader := csv.NewReader(reader)
	if options.Delimiter != 0 {
		csvReader.Comma = options.Delimiter
	}
	// Short rows are allowed; Get returns "" for missing fields
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, ErrEmptyCSV
	}

	header := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		header[strings.TrimSpace(name)] = i
	}
	for _, name := range options.Required {
		if _, ok := header[name]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrMissingColumn, name)
		}
	}

	result := make([]T, 0, len(records)-1)
	for i, fields := range records[1:] {
		rec, err := decode(Row{Line: i + 2, header: header, fields: fields})
		if err != nil {
			return nil, err
		}
		result = append(result, rec)
	}
	return result, nil
}
