// Package ui provides semantic text formatting for lockbox CLI output.
//
// Formatters carry meaning, not just color: a secret name is a
// Highlight, a suggested command is Code, a path is a Path. When color
// is unavailable (NO_COLOR, dumb terminal, piped output) each formatter
// degrades to a plain-text decoration so the meaning survives:
//
//	ui.Code.Sprint("lockbox init")  // yellow, or `lockbox init`
//	ui.Highlight.Sprint("MyPwd")    // cyan, or 'MyPwd'
//
// Secret values are never passed through a formatter; only names,
// paths, and commands appear in CLI output.
package ui
