// Package storage persists ordered entity lists as pretty-printed JSON arrays,
// one file per collection. Every save rewrites the whole file.
package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const (
	filePerm = 0644
	dirPerm  = 0755
	// TmpSuffix is appended to a file name while its next snapshot is staged
	TmpSuffix = ".tmp"
)

// Encodable is implemented by entities that write themselves as one JSON
// array element.
type Encodable interface {
	json.Marshaler
}

// Decodable constrains PT to a pointer to T that reads itself from one JSON
// array element.
type Decodable[T any] interface {
	*T
	json.Unmarshaler
}

// Load reads the list stored at path.
// A missing file is created empty and yields an empty list (first run).
// An empty or whitespace-only file yields an empty list.
// Anything else must be a JSON array whose elements decode as T, otherwise
// a *ParseError is returned and the file is left as it is.
func Load[T any, PT Decodable[T]](path string) ([]T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if err := bootstrap(path); err != nil {
				return nil, err
			}
			return []T{}, nil
		}
		return nil, ioError("read", path, err)
	}
	return Decode[T, PT](path, data)
}

// Decode parses data as a list of T. path is only used in errors.
func Decode[T any, PT Decodable[T]](path string, data []byte) ([]T, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return []T{}, nil
	}

	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, &ParseError{Path: path, Index: -1, Err: err}
	}
	// null decodes into a nil slice without error
	if raws == nil {
		return nil, &ParseError{Path: path, Index: -1, Err: errNotArray}
	}

	items := make([]T, len(raws))
	for i, raw := range raws {
		if err := PT(&items[i]).UnmarshalJSON(raw); err != nil {
			return nil, &ParseError{Path: path, Index: i, Err: err}
		}
	}
	return items, nil
}

// Encode renders items as an indented JSON array followed by a newline.
func Encode[T Encodable](items []T) ([]byte, error) {
	raws := make([]json.RawMessage, 0, len(items))
	for i, item := range items {
		raw, err := item.MarshalJSON()
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		raws = append(raws, raw)
	}

	data, err := json.MarshalIndent(raws, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// Save overwrites the file at path with items.
// The snapshot is written to a temporary file first and renamed into place,
// so a failed save leaves the previous file intact.
func Save[T Encodable](path string, items []T) error {
	staged, err := Stage(path, items)
	if err != nil {
		return err
	}
	return staged.Commit()
}

// StagedFile is a snapshot written next to its target but not yet renamed
// into place.
type StagedFile struct {
	Path    string
	TmpPath string
}

// Stage writes items to path+TmpSuffix without touching path itself.
// Call Commit to move the snapshot into place or Discard to drop it.
func Stage[T Encodable](path string, items []T) (*StagedFile, error) {
	data, err := Encode(items)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", path, err)
	}

	if err := os.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return nil, ioError("create directory for", path, err)
	}

	tmpPath := path + TmpSuffix
	file, err := os.OpenFile(tmpPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, filePerm)
	if err != nil {
		return nil, ioError("create", tmpPath, err)
	}

	if _, err := file.Write(data); err != nil {
		_ = file.Close()
		_ = os.Remove(tmpPath)
		return nil, ioError("write", tmpPath, err)
	}

	// Close temp file before rename
	if err := file.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return nil, ioError("write", tmpPath, err)
	}

	return &StagedFile{Path: path, TmpPath: tmpPath}, nil
}

// Commit renames the staged snapshot over its target.
func (s *StagedFile) Commit() error {
	if err := os.Rename(s.TmpPath, s.Path); err != nil {
		_ = os.Remove(s.TmpPath)
		return ioError("rename", s.TmpPath, err)
	}
	return nil
}

// Discard removes the staged snapshot.
func (s *StagedFile) Discard() {
	_ = os.Remove(s.TmpPath)
}

// bootstrap creates an empty file at path, and its directory if needed.
func bootstrap(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return ioError("create directory for", path, err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY, filePerm)
	if err != nil {
		return ioError("create", path, err)
	}
	if err := file.Close(); err != nil {
		return ioError("create", path, err)
	}
	return nil
}
