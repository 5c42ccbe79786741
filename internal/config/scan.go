package config

// subOptions maps recognized sub-keywords of a multi-option directive to
// their value appliers. An applier validates and applies one value token;
// it emits its own diagnostic on failure, so a failed sub-option never
// aborts the scan for the remaining ones.
type subOptions map[string]func(value string)

// scanSubOptions scans line tokens from index start for `keyword value`
// pairs in arbitrary order. A recognized keyword consumes its value token
// (cursor advances by 2) whether the value validates or not. A recognized
// keyword at end of line has no value to consume: the scan stops there. An
// unrecognized keyword is skipped (cursor advances by 1), since it cannot
// be known whether a value was intended for it.
func (p *Parser) scanSubOptions(line Line, start int, directive string, opts subOptions) {
	for i := start; i < line.Tokens.Len(); {
		key := line.Tokens.At(i)
		apply, known := opts[key]
		if !known {
			p.diagf("Unknown option %s specified for %s", key, directive)
			i++
			continue
		}
		if line.Tokens.IsLast(i) {
			p.diagf("No value specified for %s %s - ignoring", directive, key)
			return
		}
		apply(line.Tokens.At(i + 1))
		i += 2
	}
}
