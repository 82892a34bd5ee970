package parser

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/KaramelBytes/statloom-cli/internal/table"
)

// StdinName is the file name that reads the table from standard input.
const StdinName = "-"

// Options controls how a table is read.
type Options struct {
	// Delimiter for delimited text. If 0, it is sniffed from the first line.
	Delimiter rune
	// MaxRows limits data rows read; 0 means unlimited.
	MaxRows int
}

// Loader defines a table reader implementation.
type Loader interface {
	CanParse(filename string) bool
	Parse(r io.Reader, opt Options) (table.Table, error)
}

var registry []Loader

// Register adds a loader implementation to the registry.
func Register(l Loader) {
	registry = append(registry, l)
}

// ParseFile selects a loader based on filename and reads the table. The name
// "-" reads from standard input.
func ParseFile(path string, opt Options) (table.Table, error) {
	if path == StdinName {
		return Parse(os.Stdin, path, opt)
	}
	f, err := os.Open(path)
	if err != nil {
		return table.Table{}, fmt.Errorf("open %s: %w", filepath.Base(path), err)
	}
	defer f.Close()
	return Parse(f, path, opt)
}

// Parse reads a table from r using the loader registered for name.
func Parse(r io.Reader, name string, opt Options) (table.Table, error) {
	for _, l := range registry {
		if l.CanParse(name) {
			return l.Parse(r, opt)
		}
	}
	return table.Table{}, fmt.Errorf("%w: %s", ErrUnsupported, filepath.Ext(name))
}

func init() {
	// Register default loaders
	Register(delimitedLoader{})
}

// ErrUnsupported indicates a format is not supported yet.
var ErrUnsupported = errors.New("unsupported table format")
