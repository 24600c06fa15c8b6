// Package loader reads corpus source files into chapters. Two source
// formats are supported: the native JSON corpus and the Tanzil XML pair
// (text document plus metadata document). Either may be xz-compressed.
//
// The loader only decodes; structural validation happens when the decoded
// chapters are handed to corpus.NewStore, which rejects any corpus that
// violates the canonical-order invariants.
package loader

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ulikunitz/xz"

	"github.com/whoisashraf/quran-api/core/corpus"
	"github.com/whoisashraf/quran-api/core/errors"
)

// Load reads a corpus file, decompressing and decoding according to the
// file name. Supported: .json and .json.xz.
func Load(path string) ([]*corpus.Chapter, error) {
	switch ext(path) {
	case ".json":
		r, closeFn, err := open(path)
		if err != nil {
			return nil, err
		}
		defer closeFn()
		return decodeJSON(r, path)
	default:
		return nil, errors.NewCorpus(path, fmt.Errorf("unsupported corpus format %q", ext(path)))
	}
}

// LoadStore loads a corpus file and builds the validated store from it.
func LoadStore(path string) (*corpus.Store, error) {
	chapters, err := Load(path)
	if err != nil {
		return nil, err
	}
	return corpus.NewStore(chapters)
}

// ext returns the format extension with any trailing .xz stripped.
func ext(path string) string {
	return filepath.Ext(strings.TrimSuffix(path, ".xz"))
}

// open opens a source file, transparently wrapping xz-compressed files.
// The returned close function must be called when reading is done.
func open(path string) (io.Reader, func(), error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, errors.NewCorpus(path, err)
	}

	if strings.HasSuffix(path, ".xz") {
		xzReader, err := xz.NewReader(file)
		if err != nil {
			file.Close()
			return nil, nil, errors.NewCorpus(path, fmt.Errorf("opening xz stream: %w", err))
		}
		return xzReader, func() { file.Close() }, nil
	}

	return file, func() { file.Close() }, nil
}
