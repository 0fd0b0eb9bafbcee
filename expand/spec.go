package expand

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"qexec.io/core"
)

type SourceKind int

const (
	LiteralSource SourceKind = iota
	ListSource
	RangeSource
	FileSource
	ColumnSource
	GlobSource
)

func (k SourceKind) String() string {
	switch k {
	case LiteralSource:
		return "literal"
	case ListSource:
		return "list"
	case RangeSource:
		return "range"
	case FileSource:
		return "file"
	case ColumnSource:
		return "df"
	case GlobSource:
		return "glob"
	default:
		return "unknown"
	}
}

// Value spec prefixes, tested in this order.
const (
	filePrefix   = "file:"
	columnPrefix = "df:"
	globPrefix   = "glob:"
)

var rangePattern = regexp.MustCompile(`^(-?\d+)(?:\.\.|:)(-?\d+)$`)

// ValueSpec is a parsed value specification. Only the fields that belong to
// Kind are set.
type ValueSpec struct {
	Kind SourceKind
	// Text is the literal value or the comma separated list.
	Text    string
	Path    string
	Column  string
	Pattern string
	Start   int
	End     int
}

// ParseValueSpec classifies a raw token. Unbracketed tokens are literals.
func ParseValueSpec(raw string) (ValueSpec, error) {
	tok := strings.TrimSpace(raw)
	if !isBracketed(tok) {
		return ValueSpec{Kind: LiteralSource, Text: tok}, nil
	}
	inner := strings.TrimSpace(tok[len(openBracket) : len(tok)-len(closeBracket)])

	switch {
	case strings.HasPrefix(inner, filePrefix):
		return ValueSpec{
			Kind: FileSource,
			Path: strings.TrimSpace(strings.TrimPrefix(inner, filePrefix)),
		}, nil
	case strings.HasPrefix(inner, columnPrefix):
		parts := strings.Split(inner, ":")
		if len(parts) != 3 || parts[1] == "" || strings.TrimSpace(parts[2]) == "" {
			return ValueSpec{}, resolutionErrorf(nil,
				"Malformed df: prefix. Expected df:<column>:<path>, got '%s'.", inner)
		}
		return ValueSpec{
			Kind:   ColumnSource,
			Column: parts[1],
			Path:   strings.TrimSpace(parts[2]),
		}, nil
	case strings.HasPrefix(inner, globPrefix):
		return ValueSpec{
			Kind:    GlobSource,
			Pattern: strings.TrimSpace(strings.TrimPrefix(inner, globPrefix)),
		}, nil
	}

	if m := rangePattern.FindStringSubmatch(inner); m != nil {
		start, serr := strconv.Atoi(m[1])
		end, eerr := strconv.Atoi(m[2])
		if serr != nil || eerr != nil {
			return ValueSpec{}, resolutionErrorf(nil, "Invalid range '%s'.", inner)
		}
		return ValueSpec{Kind: RangeSource, Start: start, End: end}, nil
	}

	return ValueSpec{Kind: ListSource, Text: inner}, nil
}

// Values resolves the spec against the filesystem where needed.
func (v ValueSpec) Values() ([]string, error) {
	switch v.Kind {
	case LiteralSource:
		return []string{v.Text}, nil
	case ListSource:
		return splitList(v.Text), nil
	case RangeSource:
		return intRange(v.Start, v.End), nil
	case FileSource:
		return fileLines(v.Path)
	case ColumnSource:
		return csvColumn(v.Column, v.Path)
	case GlobSource:
		return globMatches(v.Pattern)
	}
	return nil, resolutionErrorf(nil, "Unknown value source %d.", int(v.Kind))
}

// ExpandValue parses and resolves a single raw value spec.
func ExpandValue(raw string) ([]string, error) {
	spec, err := ParseValueSpec(raw)
	if err != nil {
		return nil, err
	}
	return spec.Values()
}

func splitList(text string) []string {
	values := []string{}
	for _, piece := range strings.Split(text, ",") {
		if piece = strings.TrimSpace(piece); piece != "" {
			values = append(values, piece)
		}
	}
	return values
}

func intRange(start, end int) []string {
	step := 1
	if start > end {
		step = -1
	}
	values := []string{}
	for i := start; ; i += step {
		values = append(values, strconv.Itoa(i))
		if i == end {
			break
		}
	}
	return values
}

func fileLines(path string) ([]string, error) {
	if !core.FileExist(path) {
		return nil, resolutionErrorf(nil, "Specified file does not exist: %s", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, resolutionErrorf(err, "Cannot read file %s: %v", path, err)
	}
	values := []string{}
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(strings.TrimRight(line, "\r"))
		if line != "" {
			values = append(values, line)
		}
	}
	return values, nil
}

const utf8BOM = "\ufeff"

func csvColumn(column, path string) ([]string, error) {
	if !core.FileExist(path) {
		return nil, resolutionErrorf(nil, "Specified CSV file does not exist: %s", path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, resolutionErrorf(err, "Cannot read CSV file %s: %v", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, resolutionErrorf(err, "Cannot parse CSV file %s: %v", path, err)
	}

	index := -1
	if len(records) > 0 {
		header := records[0]
		for i, name := range header {
			if i == 0 {
				name = strings.TrimPrefix(name, utf8BOM)
			}
			if strings.TrimRight(name, "\r") == column {
				index = i
				break
			}
		}
	}
	if index < 0 {
		return nil, resolutionErrorf(nil, "Column '%s' not found in CSV file: %s", column, path)
	}

	values := []string{}
	for _, row := range records[1:] {
		// short rows read as empty and are dropped below
		value := ""
		if index < len(row) {
			value = row[index]
		}
		value = strings.TrimSpace(strings.TrimRight(value, "\r"))
		if value != "" {
			values = append(values, value)
		}
	}
	return values, nil
}

func globMatches(pattern string) ([]string, error) {
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, resolutionErrorf(err, "Invalid glob pattern '%s': %v", pattern, err)
	}
	if len(matches) == 0 {
		return nil, resolutionErrorf(nil, "No files match the glob pattern '%s'.", pattern)
	}
	sort.Strings(matches)
	return matches, nil
}
