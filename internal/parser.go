package internal

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// Parser reads an import file into subscription records
type Parser interface {
	Parse(path string) ([]ImportRecord, error)
}

// ParserFunc is a function that implements Parser
type ParserFunc func(path string) ([]ImportRecord, error)

func (f ParserFunc) Parse(path string) ([]ImportRecord, error) {
	return f(path)
}

// parsers is the registry of available import formats
var parsers = map[string]Parser{}

// RegisterParser registers a parser under a format name
func RegisterParser(name string, p Parser) {
	parsers[name] = p
}

// GetParser returns the parser for the given format
func GetParser(format string) (Parser, error) {
	p, ok := parsers[format]
	if !ok {
		return nil, fmt.Errorf("unknown import format: %s (available: %v)", format, AvailableFormats())
	}
	return p, nil
}

// AvailableFormats returns the registered format names, sorted
func AvailableFormats() []string {
	var formats []string
	for name := range parsers {
		formats = append(formats, name)
	}
	sort.Strings(formats)
	return formats
}

// IsKnownParser returns true if the name is a registered format
func IsKnownParser(name string) bool {
	_, ok := parsers[name]
	return ok
}

// ParseFileArg splits a file argument that may carry a format prefix.
// Example: "csv:subs.txt" → ("csv", "subs.txt")
// Example: "subs.json" → ("", "subs.json")
// Example: "C:\data\subs.csv" → ("", "C:\data\subs.csv") // Windows path
func ParseFileArg(arg string) (format, path string) {
	idx := strings.Index(arg, ":")
	if idx == -1 {
		return "", arg
	}
	prefix := arg[:idx]
	if IsKnownParser(prefix) {
		return prefix, arg[idx+1:]
	}
	return "", arg
}

// FormatForPath guesses the format from the file extension
func FormatForPath(path string) (string, error) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if IsKnownParser(ext) {
		return ext, nil
	}
	return "", fmt.Errorf("cannot infer import format from %q, use a format prefix (available: %v)", path, AvailableFormats())
}

// ReadImportFile resolves the format of arg (prefix, then extension) and parses it
func ReadImportFile(arg string) ([]ImportRecord, error) {
	format, path := ParseFileArg(arg)
	if format == "" {
		var err error
		if format, err = FormatForPath(path); err != nil {
			return nil, err
		}
	}
	p, err := GetParser(format)
	if err != nil {
		return nil, err
	}
	records, err := p.Parse(path)
	if err != nil {
		return nil, fmt.Errorf("parsing %s as %s: %w", path, format, err)
	}
	return records, nil
}
