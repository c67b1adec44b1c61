package gen

import (
	"os"
	"path/filepath"

	"github.com/dave/jennifer/jen"
)

// unformattedSuffix keeps the sidecar out of the Go build.
const unformattedSuffix = ".unformatted"

// writeDebugUnformatted renders f without gofmt and writes it next to the
// intended output, so that the code which failed to format can be read. It
// is best effort and returns the sidecar path on success.
func writeDebugUnformatted(f *jen.File, outPath string) (string, error) {
	if outPath == "" {
		return "", nil
	}

	f.NoFormat = true
	defer func() { f.NoFormat = false }()

	p := outPath + unformattedSuffix
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return "", err
	}

	if err := f.Save(p); err != nil {
		return "", err
	}

	return p, nil
}
