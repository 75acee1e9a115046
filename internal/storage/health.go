package storage

import (
	"errors"
	"os"
)

// FileHealth describes the state of one collection file on disk.
type FileHealth struct {
	Path     string
	Exists   bool
	Size     int64       // bytes
	Elements int         // number of decoded elements when the file parses
	Problem  *ParseError // set when the content does not decode
}

// Healthy reports whether the file is absent or decodes cleanly.
func (h FileHealth) Healthy() bool {
	return h.Problem == nil
}

// Inspect checks the file at path without creating or modifying it.
// Only I/O failures are returned as errors; content problems are reported
// in FileHealth.Problem.
func Inspect[T any, PT Decodable[T]](path string) (FileHealth, error) {
	health := FileHealth{Path: path}

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return health, nil
		}
		return health, ioError("stat", path, err)
	}
	health.Exists = true
	health.Size = info.Size()

	data, err := os.ReadFile(path)
	if err != nil {
		return health, ioError("read", path, err)
	}

	items, err := Decode[T, PT](path, data)
	if err != nil {
		var perr *ParseError
		if errors.As(err, &perr) {
			health.Problem = perr
			return health, nil
		}
		return health, err
	}
	health.Elements = len(items)
	return health, nil
}
