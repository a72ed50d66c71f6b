package dataset

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/banshee-data/survival.report/internal/fsutil"
	"github.com/banshee-data/survival.report/internal/httputil"
	"github.com/banshee-data/survival.report/internal/monitoring"
)

// Fetch downloads a CSV from url and parses it into a Table.
func Fetch(ctx context.Context, client httputil.HTTPClient, url string) (*Table, error) {
	body, err := httputil.Fetch(ctx, client, url)
	if err != nil {
		return nil, fmt.Errorf("fetch dataset: %w", err)
	}
	t, err := Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", url, err)
	}
	monitoring.Logf("loaded %d rows x %d columns from %s (%d bytes)", t.NumRows(), t.NumCols(), url, len(body))
	return t, nil
}

// LoadFile parses a CSV already on disk.
func LoadFile(fs fsutil.FileSystem, path string) (*Table, error) {
	data, err := fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}
	t, err := Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	monitoring.Logf("loaded %d rows x %d columns from %s", t.NumRows(), t.NumCols(), path)
	return t, nil
}

// Parse reads a header row followed by data rows and infers each column's
// Kind. A column is Numeric when every non-missing cell parses as a float.
func Parse(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	raw := make([][]string, len(header))
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		for j, cell := range rec {
			raw[j] = append(raw[j], cell)
		}
	}

	cols := make([]*Column, len(header))
	for j, name := range header {
		cols[j] = buildColumn(strings.TrimSpace(name), raw[j])
	}
	return NewTable(cols...)
}

func buildColumn(name string, cells []string) *Column {
	valid := make([]bool, len(cells))
	nums := make([]float64, len(cells))
	numeric := true
	for i, s := range cells {
		if IsMissing(s) {
			continue
		}
		valid[i] = true
		if !numeric {
			continue
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			numeric = false
			continue
		}
		nums[i] = v
	}

	if numeric {
		return &Column{Name: name, Kind: Numeric, Nums: nums, Valid: valid}
	}
	strs := make([]string, len(cells))
	for i, s := range cells {
		if valid[i] {
			strs[i] = s
		}
	}
	return &Column{Name: name, Kind: Categorical, Strs: strs, Valid: valid}
}
