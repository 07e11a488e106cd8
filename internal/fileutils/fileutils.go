// Package fileutils provides the file operations shared by the book sources, the store and the report output.
package fileutils

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// AppDirName is the per-user directory searched for books, under $HOME/.config.
const AppDirName = "planned-spending"

// FileExists checks if a file exists and is not a directory
func FileExists(filePath string) bool {
	info, err := os.Stat(filePath)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// DirectoryExists checks if a directory exists
func DirectoryExists(dirPath string) bool {
	info, err := os.Stat(dirPath)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// EnsureDirectoryExists creates a directory if it doesn't exist
func EnsureDirectoryExists(dirPath string) error {
	if !DirectoryExists(dirPath) {
		if err := os.MkdirAll(dirPath, 0750); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	return nil
}

// FindFile looks for filename as given, then under ./data, then under
// $HOME/.config/planned-spending. Absolute paths are only checked as given.
func FindFile(filename string) (string, error) {
	if filename == "" {
		return "", errors.New("empty file name")
	}
	if filepath.IsAbs(filename) {
		if FileExists(filename) {
			return filename, nil
		}
		return "", os.ErrNotExist
	}

	locations := []string{
		filename,
		filepath.Join("data", filename),
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		locations = append(locations, filepath.Join(homeDir, ".config", AppDirName, filename))
	}

	for _, location := range locations {
		if FileExists(location) {
			return location, nil
		}
	}
	return "", os.ErrNotExist
}

// ReadFile reads the entire contents of a file and returns it as a byte slice
func ReadFile(filePath string) ([]byte, error) {
	if !FileExists(filePath) {
		return nil, fmt.Errorf("file does not exist: %s", filePath)
	}

	data, err := os.ReadFile(filePath) // #nosec G304 -- path chosen by the user
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	return data, nil
}

// CreateFile creates or truncates a file for writing
// and creates any parent directories if needed.
func CreateFile(filePath string) (*os.File, error) {
	dir := filepath.Dir(filePath)
	if err := EnsureDirectoryExists(dir); err != nil {
		return nil, err
	}

	file, err := os.Create(filePath) // #nosec G304 -- path chosen by the user
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}

	return file, nil
}
