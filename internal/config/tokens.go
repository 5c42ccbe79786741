package config

// TokenLine is a read-only view of the whitespace-delimited tokens forming
// one directive occurrence. Token 0 is the directive name; tokens 1..N are
// its arguments. A TokenLine is only valid for the duration of the handler
// invocation it is passed to.
type TokenLine []string

// Len returns the number of tokens on the line.
func (l TokenLine) Len() int {
	return len(l)
}

// At returns token i, or "" when i is out of range. Handlers use this for
// structural arity checks instead of indexing the slice directly.
func (l TokenLine) At(i int) string {
	if i < 0 || i >= len(l) {
		return ""
	}
	return l[i]
}

// Directive returns the directive name (token 0), or "" for an empty line.
func (l TokenLine) Directive() string {
	return l.At(0)
}

// IsLast reports whether i is the index of the last token on the line.
func (l TokenLine) IsLast(i int) bool {
	return i == len(l)-1
}

// Line is one tokenized configuration statement. Block carries the entries
// of a `{ ... }` value block following the directive (nil when absent), in
// input order.
type Line struct {
	Tokens TokenLine
	Block  []string
}
