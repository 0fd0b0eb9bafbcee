package expand

import "strings"

type Mode int

const (
	Cartesian Mode = iota
	Linked
)

func (m Mode) String() string {
	if m == Linked {
		return "linked"
	}
	return "cartesian"
}

type Format int

const (
	Plain Format = iota
	JSON
)

type OutputSpec struct {
	Format Format `json:"format"`
	Quote  bool   `json:"quote"`
}

// Option is a named flag together with its unresolved value spec.
type Option struct {
	Name string `json:"name"`
	Spec string `json:"spec"`
}

// Invocation is the parsed token stream. It is built once by Parse and
// passed by value to the later stages.
type Invocation struct {
	Base       string     `json:"base"`
	Mode       Mode       `json:"mode"`
	Output     OutputSpec `json:"output"`
	Help       bool       `json:"help"`
	Options    []Option   `json:"options"`
	Positional []string   `json:"positional"`
}

const (
	LinkFlag     = "--link"
	QuoteFlag    = "--quote"
	JSONFlag     = "--json"
	HelpFlag     = "-h"
	LongHelpFlag = "--help"
	flagPrefix   = "-"
	openBracket  = "["
	closeBracket = "]"
)

// Parse splits tokens into the base command, named options and positional
// value specs. A help flag anywhere wins over every other check.
func Parse(tokens []string) (Invocation, error) {
	for _, tok := range tokens {
		if tok == HelpFlag || tok == LongHelpFlag {
			return Invocation{Help: true}, nil
		}
	}

	var inv Invocation
	haveBase := false
	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]
		switch tok {
		case LinkFlag:
			inv.Mode = Linked
			continue
		case QuoteFlag:
			inv.Output.Quote = true
			continue
		case JSONFlag:
			inv.Output.Format = JSON
			continue
		}

		if strings.HasPrefix(tok, flagPrefix) {
			if i+1 >= len(tokens) {
				return Invocation{}, usageErrorf("Missing value for option '%s'.", tok)
			}
			next := tokens[i+1]
			if strings.HasPrefix(next, flagPrefix) && !isBracketed(next) {
				return Invocation{}, usageErrorf("Missing value for option '%s'.", tok)
			}
			inv.Options = append(inv.Options, Option{Name: tok, Spec: next})
			i++
			continue
		}

		if !haveBase {
			inv.Base = tok
			haveBase = true
			continue
		}
		inv.Positional = append(inv.Positional, tok)
	}

	if strings.TrimSpace(inv.Base) == "" {
		return Invocation{}, usageErrorf("No base command provided.")
	}
	return inv, nil
}

func isBracketed(tok string) bool {
	t := strings.TrimSpace(tok)
	return len(t) >= 2 && strings.HasPrefix(t, openBracket) && strings.HasSuffix(t, closeBracket)
}
