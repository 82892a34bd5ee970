package parser

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/KaramelBytes/statloom-cli/internal/table"
)

// delimitedExts are handled by the delimited loader; "" covers extensionless
// files and standard input.
var delimitedExts = map[string]bool{
	"":     true,
	".csv": true,
	".tsv": true,
	".txt": true,
	".dat": true,
}

type delimitedLoader struct{}

func (delimitedLoader) CanParse(filename string) bool {
	if filename == StdinName {
		return true
	}
	return delimitedExts[strings.ToLower(filepath.Ext(filename))]
}

func (delimitedLoader) Parse(r io.Reader, opt Options) (table.Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return table.Table{}, fmt.Errorf("read input: %w", err)
	}
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))

	cr := csv.NewReader(bytes.NewReader(data))
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.LazyQuotes = true
	cr.Comma = opt.Delimiter
	if cr.Comma == 0 {
		cr.Comma = SniffDelimiter(data)
	}

	// Read header
	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return table.Table{}, nil
		}
		return table.Table{}, fmt.Errorf("read header: %w", err)
	}
	header = append([]string(nil), header...)

	var records [][]string
	for opt.MaxRows <= 0 || len(records) < opt.MaxRows {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return table.Table{}, fmt.Errorf("read row %d: %w", len(records)+1, err)
		}
		if blank(rec) {
			continue
		}
		records = append(records, rec)
	}
	return table.FromRecords(header, records), nil
}

// SniffDelimiter picks the most frequent of tab, semicolon, pipe and comma on
// the first non-empty line, defaulting to comma.
func SniffDelimiter(data []byte) rune {
	line := firstLine(data)
	best, bestN := ',', strings.Count(line, ",")
	for _, d := range []rune{'\t', ';', '|'} {
		if n := strings.Count(line, string(d)); n > bestN {
			best, bestN = d, n
		}
	}
	return best
}

// ParseDelimiter converts a configured delimiter to a rune. Empty and "auto"
// mean sniffing (0); "tab" and `\t` mean a tab.
func ParseDelimiter(s string) (rune, error) {
	switch strings.ToLower(s) {
	case "", "auto":
		return 0, nil
	case "tab", `\t`, "\t":
		return '\t', nil
	}
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("delimiter must be a single character, got %q", s)
	}
	d, _ := utf8.DecodeRuneInString(s)
	if d == '"' || d == '\r' || d == '\n' || d == utf8.RuneError {
		return 0, fmt.Errorf("invalid delimiter %q", s)
	}
	return d, nil
}

func firstLine(data []byte) string {
	rest := string(data)
	for rest != "" {
		var line string
		line, rest, _ = strings.Cut(rest, "\n")
		if strings.TrimSpace(line) != "" {
			return line
		}
	}
	return ""
}

func blank(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
