// Package source opens the configured reminder source.
package source

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"fjacquet/planned-spending/internal/book"
	"fjacquet/planned-spending/internal/logging"
	"fjacquet/planned-spending/internal/planning"
	"fjacquet/planned-spending/internal/source/csvsource"
	"fjacquet/planned-spending/internal/source/yamlsource"
	"fjacquet/planned-spending/internal/store"
)

// Source types accepted by Open.
const (
	TypeYAML   = yamlsource.SourceName
	TypeCSV    = csvsource.SourceName
	TypeSQLite = store.SourceName
)

// Types lists the accepted source types.
var Types = []string{TypeYAML, TypeCSV, TypeSQLite}

// Source is a reminder source that may hold resources.
type Source interface {
	planning.ReminderSource
	io.Closer
}

type bookSource struct {
	*book.Book
}

func (bookSource) Close() error { return nil }

// Open opens the source of the given type at path. An empty type is inferred
// from the file extension.
func Open(ctx context.Context, sourceType, path string, logger logging.Logger) (Source, error) {
	if sourceType == "" {
		sourceType = InferType(path)
	}
	logger.Debug("Opening reminder source",
		logging.F(logging.FieldSource, sourceType),
		logging.F(logging.FieldFile, path))

	switch strings.ToLower(sourceType) {
	case TypeYAML:
		b, err := yamlsource.Load(path, logger)
		if err != nil {
			return nil, err
		}
		return bookSource{b}, nil
	case TypeCSV:
		b, err := csvsource.Load(path, logger)
		if err != nil {
			return nil, err
		}
		return bookSource{b}, nil
	case TypeSQLite:
		s, err := store.Open(ctx, path, logger)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown source type %q (expected one of %s)", sourceType, strings.Join(Types, ", "))
	}
}

// LoadBook reads a YAML or CSV file into a book, for import into the store.
func LoadBook(sourceType, path string, logger logging.Logger) (*book.Book, error) {
	if sourceType == "" {
		sourceType = InferType(path)
	}
	switch strings.ToLower(sourceType) {
	case TypeYAML:
		return yamlsource.Load(path, logger)
	case TypeCSV:
		return csvsource.Load(path, logger)
	default:
		return nil, fmt.Errorf("cannot import from source type %q", sourceType)
	}
}

// InferType guesses the source type from the extension of path, defaulting to YAML.
func InferType(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return TypeCSV
	case ".db", ".sqlite", ".sqlite3":
		return TypeSQLite
	default:
		return TypeYAML
	}
}
