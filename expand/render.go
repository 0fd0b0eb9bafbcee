package expand

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"
	"unicode/utf8"
)

// Quote wraps s in single quotes for a POSIX shell. Embedded single quotes
// are written as '\''.
func Quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// Render joins the base command and a token tuple with single spaces.
// Empty tokens are dropped.
func Render(base string, tuple []string, quote bool) string {
	parts := make([]string, 0, len(tuple)+1)
	for _, tok := range append([]string{base}, tuple...) {
		if tok == "" {
			continue
		}
		if quote {
			tok = Quote(tok)
		}
		parts = append(parts, tok)
	}
	return strings.Join(parts, " ")
}

// Write emits commands as plain lines or as a one line JSON array. JSON
// strings cannot carry arbitrary bytes, so a command that is not valid UTF-8
// is a resolution error in JSON mode. Nothing is written on error.
func Write(w io.Writer, commands []string, format Format) error {
	if commands == nil {
		commands = []string{}
	}

	var buf bytes.Buffer
	switch format {
	case JSON:
		for _, command := range commands {
			if !utf8.ValidString(command) {
				return resolutionErrorf(nil, "Command is not valid UTF-8 and cannot be written as JSON: %q", command)
			}
		}
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		if err := enc.Encode(commands); err != nil {
			return err
		}
	default:
		for _, command := range commands {
			buf.WriteString(command)
			buf.WriteByte('\n')
		}
	}
	_, err := w.Write(buf.Bytes())
	return err
}
