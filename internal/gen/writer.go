package gen

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// File permission constants.
const (
	filePerm = 0o644
)

// WriteResult reports what WriteFiles did.
type WriteResult struct {
	Written   []string
	Unchanged []string
	Removed   []string
}

type action int

const (
	actionSkip action = iota // nothing on disk, nothing to write
	actionKeep               // content on disk is current
	actionWrite
	actionRemove
)

// inspect compares a generated file with what is on disk.
func inspect(file GeneratedFile) (action, error) {
	if file.Path == "" {
		return actionSkip, fmt.Errorf("package %s: no output path", file.Package)
	}

	existing, err := os.ReadFile(file.Path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return actionSkip, fmt.Errorf("reading file %s: %w", file.Path, err)
	}

	switch {
	case file.Content == nil && IsGenerated(existing):
		return actionRemove, nil
	case file.Content == nil:
		return actionSkip, nil
	case existing != nil && bytes.Equal(existing, file.Content):
		return actionKeep, nil
	default:
		return actionWrite, nil
	}
}

// WriteFiles writes generated files next to their package sources. Files
// whose content did not change are left untouched. Files without content
// are removed, but only when they carry the generated header.
func WriteFiles(files []GeneratedFile) (*WriteResult, error) {
	res := &WriteResult{}

	for _, file := range files {
		act, err := inspect(file)
		if err != nil {
			return nil, err
		}

		switch act {
		case actionKeep:
			res.Unchanged = append(res.Unchanged, file.Path)

		case actionRemove:
			if err := os.Remove(file.Path); err != nil {
				return nil, fmt.Errorf("removing file %s: %w", file.Path, err)
			}

			res.Removed = append(res.Removed, file.Path)

		case actionWrite:
			if err := os.WriteFile(file.Path, file.Content, filePerm); err != nil {
				return nil, fmt.Errorf("writing file %s: %w", file.Path, err)
			}

			res.Written = append(res.Written, file.Path)
		}
	}

	return res, nil
}

// Stale returns the paths WriteFiles would write or remove.
func Stale(files []GeneratedFile) ([]string, error) {
	var out []string

	for _, file := range files {
		act, err := inspect(file)
		if err != nil {
			return nil, err
		}

		if act == actionWrite || act == actionRemove {
			out = append(out, file.Path)
		}
	}

	return out, nil
}

// IsGenerated reports whether content starts with the generated header.
func IsGenerated(content []byte) bool {
	return bytes.HasPrefix(content, []byte("// "+HeaderComment))
}
