package config

import (
	"fmt"
	"os"
	"strings"
	"unicode"

	"github.com/eworm-de/keepalived/internal/errors"
	"github.com/eworm-de/keepalived/internal/log"
)

// Block-structured directives that belong to other configuration scopes.
// The loader skips them wholesale; their grammar lives elsewhere.
var skippedBlocks = map[string]bool{
	"vrrp_instance":        true,
	"vrrp_sync_group":      true,
	"vrrp_script":          true,
	"virtual_server":       true,
	"virtual_server_group": true,
	"static_ipaddress":     true,
	"static_routes":        true,
	"static_rules":         true,
}

// Load reads a configuration file and tokenizes it into directive lines.
func Load(path string) ([]Line, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewConfigError(fmt.Sprintf("failed to read %s", path), err)
	}

	lines, err := Tokenize(string(content))
	if err != nil {
		return nil, errors.NewParseError(fmt.Sprintf("failed to tokenize %s", path), err)
	}

	log.Debugf("Tokenized %d directive line(s) from %s", len(lines), path)
	return lines, nil
}

// Tokenize splits configuration text into directive lines. Words are
// whitespace-delimited, double quotes group words into one token, and `#`
// or `!` start a comment running to end of line. A `global_defs { ... }`
// block is spliced into the stream; a `{ ... }` block after any other
// global directive is attached to it as a value block.
func Tokenize(src string) ([]Line, error) {
	var raw [][]string
	for n, text := range strings.Split(src, "\n") {
		tokens, err := splitTokens(text)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", n+1, err)
		}
		raw = append(raw, tokens)
	}
	return structure(raw)
}

// splitTokens performs shell-like word splitting of one line.
func splitTokens(text string) ([]string, error) {
	var tokens []string
	var cur strings.Builder
	inToken := false
	quoted := false

	flush := func() {
		if inToken {
			tokens = append(tokens, cur.String())
			cur.Reset()
			inToken = false
		}
	}

	for _, r := range text {
		switch {
		case quoted:
			if r == '"' {
				quoted = false
				flush()
			} else {
				cur.WriteRune(r)
			}
		case r == '"':
			flush()
			quoted = true
			inToken = true
		case unicode.IsSpace(r):
			flush()
		case (r == '#' || r == '!') && !inToken:
			flush()
			return tokens, nil
		default:
			cur.WriteRune(r)
			inToken = true
		}
	}
	if quoted {
		return nil, fmt.Errorf("unterminated quoted string")
	}
	flush()
	return tokens, nil
}

// structure resolves `{ ... }` blocks in a list of raw token lines.
func structure(raw [][]string) ([]Line, error) {
	var out []Line
	for i := 0; i < len(raw); i++ {
		tokens := raw[i]
		if len(tokens) == 0 {
			continue
		}

		brace := -1
		for j, tok := range tokens {
			if tok == "{" {
				brace = j
				break
			}
		}
		if brace == -1 {
			out = append(out, Line{Tokens: TokenLine(tokens)})
			continue
		}

		directive := tokens[0]
		switch {
		case directive == "global_defs":
			inner, next, err := collectBlockLines(raw, i, brace)
			if err != nil {
				return nil, err
			}
			spliced, err := structure(inner)
			if err != nil {
				return nil, err
			}
			out = append(out, spliced...)
			i = next
		case skippedBlocks[directive]:
			_, next, err := collectBlockLines(raw, i, brace)
			if err != nil {
				return nil, err
			}
			log.Debugf("Skipping %s block (not a global directive)", directive)
			i = next
		default:
			inner, next, err := collectBlockLines(raw, i, brace)
			if err != nil {
				return nil, err
			}
			var entries []string
			for _, line := range inner {
				entries = append(entries, line...)
			}
			out = append(out, Line{Tokens: TokenLine(tokens[:brace]), Block: entries})
			i = next
		}
	}
	return out, nil
}

// collectBlockLines gathers the token lines inside a block opened at
// raw[start][brace]. It returns the inner lines and the index of the line
// holding the matching close brace.
func collectBlockLines(raw [][]string, start, brace int) ([][]string, int, error) {
	var inner [][]string
	depth := 1

	appendTokens := func(tokens []string) bool {
		var line []string
		for _, tok := range tokens {
			switch tok {
			case "{":
				depth++
				line = append(line, tok)
			case "}":
				depth--
				if depth == 0 {
					if len(line) > 0 {
						inner = append(inner, line)
					}
					return true
				}
				line = append(line, tok)
			default:
				line = append(line, tok)
			}
		}
		if len(line) > 0 {
			inner = append(inner, line)
		}
		return false
	}

	if appendTokens(raw[start][brace+1:]) {
		return inner, start, nil
	}
	for i := start + 1; i < len(raw); i++ {
		if appendTokens(raw[i]) {
			return inner, i, nil
		}
	}
	return nil, 0, fmt.Errorf("unterminated block started by %q", strings.Join(raw[start], " "))
}
