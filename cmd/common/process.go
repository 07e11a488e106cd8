// Package common contains shared functionality for command handlers
package common

import (
	"context"
	"fmt"
	"io"

	"fjacquet/planned-spending/internal/book"
	"fjacquet/planned-spending/internal/fileutils"
	"fjacquet/planned-spending/internal/logging"
	"fjacquet/planned-spending/internal/source"
)

// BookSaver persists a reminder book.
type BookSaver interface {
	SaveBook(ctx context.Context, b *book.Book) error
}

// ImportBook loads the YAML or CSV book at input and saves it with saver.
// It returns the number of reminders imported.
func ImportBook(ctx context.Context, saver BookSaver, sourceType, input string, log logging.Logger) (int, error) {
	if input == "" {
		return 0, fmt.Errorf("no input book given")
	}

	b, err := source.LoadBook(sourceType, input, log)
	if err != nil {
		return 0, fmt.Errorf("error loading book: %w", err)
	}

	if err := saver.SaveBook(ctx, b); err != nil {
		return 0, fmt.Errorf("error saving book: %w", err)
	}

	log.Info("Import completed successfully",
		logging.F(logging.FieldFile, input),
		logging.F(logging.FieldCount, len(b.Reminders)))
	return len(b.Reminders), nil
}

// OpenOutput returns fallback when path is empty or "-", otherwise a newly created file.
// The returned close function must always be called.
func OpenOutput(fallback io.Writer, path string) (io.Writer, func() error, error) {
	if path == "" || path == "-" {
		return fallback, func() error { return nil }, nil
	}
	f, err := fileutils.CreateFile(path)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}
