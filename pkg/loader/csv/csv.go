package csv

import (
	"bytes"
	"context"
	"encoding/csv"
	"io"
	"slices"
	"strings"
	"sync"

	"github.com/OFFIS-RIT/peoplegraph/pkg/common"
	"github.com/OFFIS-RIT/peoplegraph/pkg/errors"
	"github.com/OFFIS-RIT/peoplegraph/pkg/loader"
	"github.com/OFFIS-RIT/peoplegraph/pkg/logger"

	"golang.org/x/sync/singleflight"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CSVDatasetLoader loads a dataset file through a base loader and parses it
// into rows of named fields.
type CSVDatasetLoader struct {
	loader loader.DatasetLoader

	cache   map[string][]common.Row
	cacheMu sync.RWMutex
	group   singleflight.Group
}

// NewCSVDatasetLoader creates a new CSVDatasetLoader with the given base loader.
func NewCSVDatasetLoader(loader loader.DatasetLoader) *CSVDatasetLoader {
	return &CSVDatasetLoader{
		loader: loader,
		cache:  make(map[string][]common.Row),
	}
}

// GetFileBytes returns the raw file content from the base loader.
func (l *CSVDatasetLoader) GetFileBytes(ctx context.Context, file loader.DatasetFile) ([]byte, error) {
	return l.loader.GetFileBytes(ctx, file)
}

// GetRows retrieves and parses the dataset. Every failure is an ErrData.
func (l *CSVDatasetLoader) GetRows(ctx context.Context, file loader.DatasetFile) ([]common.Row, error) {
	key := loader.CacheKey(file)

	l.cacheMu.RLock()
	if cached, ok := l.cache[key]; ok {
		l.cacheMu.RUnlock()
		return cached, nil
	}
	l.cacheMu.RUnlock()

	result, err, _ := l.group.Do(key, func() (any, error) {
		l.cacheMu.RLock()
		if cached, ok := l.cache[key]; ok {
			l.cacheMu.RUnlock()
			return cached, nil
		}
		l.cacheMu.RUnlock()

		content, err := l.loader.GetFileBytes(ctx, file)
		if err != nil {
			return nil, errors.WrapData(err, "failed to read dataset "+file.FilePath)
		}

		rows, err := ParseRows(content)
		if err != nil {
			return nil, err
		}
		logger.Debug("Parsed dataset", "file", file.FilePath, "rows", len(rows))

		l.cacheMu.Lock()
		l.cache[key] = rows
		l.cacheMu.Unlock()

		return rows, nil
	})
	if err != nil {
		return nil, err
	}

	return result.([]common.Row), nil
}

// ParseRows parses CSV content into rows keyed by header name. Header
// names are trimmed and lower-cased, cell values are trimmed. Blank lines
// are skipped and short records leave the missing columns empty.
//
// The header must contain every column in common.RequiredColumns; extra
// columns are kept.
func ParseRows(content []byte) ([]common.Row, error) {
	content = bytes.TrimPrefix(content, utf8BOM)

	reader := csv.NewReader(bytes.NewReader(content))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, errors.DataErrorf("CSV file is empty or contains no valid data")
	}
	if err != nil {
		return nil, errors.WrapData(err, "failed to read CSV header")
	}

	columns := make([]string, len(header))
	for i, h := range header {
		columns[i] = strings.ToLower(strings.TrimSpace(h))
	}
	if err := checkColumns(columns); err != nil {
		return nil, err
	}

	var rows []common.Row
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.WrapData(err, "failed to read CSV record")
		}
		if isBlank(record) {
			continue
		}

		row := make(common.Row, len(columns))
		for i, col := range columns {
			if i < len(record) {
				row[col] = strings.TrimSpace(record[i])
			} else {
				row[col] = ""
			}
		}
		rows = append(rows, row)
	}

	return rows, nil
}

func checkColumns(columns []string) error {
	var missing []string
	for _, required := range common.RequiredColumns {
		if !slices.Contains(columns, required) {
			missing = append(missing, required)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return errors.WithDetailf(
		errors.DataErrorf(
			"Invalid CSV columns. Got: %v. Expected: %v",
			columns, common.RequiredColumns,
		),
		"missing columns: %v", missing,
	)
}

func isBlank(record []string) bool {
	for _, field := range record {
		if strings.TrimSpace(field) != "" {
			return false
		}
	}
	return true
}
