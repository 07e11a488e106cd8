// Package yamlsource loads a reminder book from a YAML file.
package yamlsource

import (
	"bytes"
	"errors"
	"io"

	"fjacquet/planned-spending/internal/book"
	"fjacquet/planned-spending/internal/fileutils"
	"fjacquet/planned-spending/internal/logging"
	"fjacquet/planned-spending/internal/planerror"

	"gopkg.in/yaml.v3"
)

// SourceName identifies this source in errors and configuration.
const SourceName = "yaml"

// Load reads and validates the book at path. Relative paths are looked up as
// described by fileutils.FindFile.
func Load(path string, logger logging.Logger) (*book.Book, error) {
	resolved, err := fileutils.FindFile(path)
	if err != nil {
		return nil, &planerror.SourceError{Source: SourceName, Path: path, Reason: "file not found", Err: err}
	}

	logger.Debug("Loading reminder book", logging.F(logging.FieldFile, resolved))
	data, err := fileutils.ReadFile(resolved)
	if err != nil {
		return nil, &planerror.SourceError{Source: SourceName, Path: resolved, Reason: "cannot read file", Err: err}
	}

	b, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, &planerror.SourceError{Source: SourceName, Path: resolved, Reason: "invalid book", Err: err}
	}

	logger.Info("Loaded reminder book",
		logging.F(logging.FieldFile, resolved),
		logging.F(logging.FieldCount, len(b.Reminders)))
	return b, nil
}

// Decode parses a YAML book from r and validates it. Unknown keys are rejected.
func Decode(r io.Reader) (*book.Book, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var b book.Book
	if err := dec.Decode(&b); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return &b, nil
}

// Encode writes b as YAML to w.
func Encode(w io.Writer, b *book.Book) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(b); err != nil {
		return err
	}
	return enc.Close()
}
