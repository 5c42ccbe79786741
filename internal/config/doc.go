// Package config implements parsing and validation of the keepalived
// global configuration.
//
// A configuration file is tokenized into directive lines, the global_defs
// block is flattened, and each line is dispatched by its first token to a
// registered handler. Handlers validate their arguments and mutate a
// single GlobalConfig. A bad directive never aborts the pass: the handler
// records a diagnostic, leaves the affected field in a well-defined state
// (usually its previous value) and parsing continues with the next line.
//
// # Components
//
//   - Lexer: shell-like tokenizer with quoting, comments and block structure
//   - Parser: keyword registry and dispatch, built from a Features value
//   - Handlers: one function per directive, grouped by subsystem
//   - Validation: post-parse cross-field consistency checks
//
// # Example Usage
//
// Parsing a configuration file:
//
//	lines, err := config.Load("/etc/keepalived/keepalived.conf")
//	if err != nil {
//	    log.Fatalf("%v", err)
//	}
//	parser := config.NewParser(config.ParserOptions{Features: config.AllFeatures()})
//	cfg := parser.ParseAll(lines)
//	for _, diag := range parser.Diagnostics() {
//	    log.Warnf("%s", diag)
//	}
//
// Reloading keeps the set-once fields of the previous configuration:
//
//	parser := config.NewParser(config.ParserOptions{
//	    Features: config.AllFeatures(),
//	    Reload:   true,
//	    Previous: cfg,
//	})
//
// The keyword registry is static for a given Features value: directives of
// a disabled subsystem are unknown words, not silently ignored ones.
package config
