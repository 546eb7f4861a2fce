// Package cli turns command-line arguments into an app.Config. It owns the
// flag set, resolves the automatic preview choice and reports invalid input
// as an ExitError carrying the process exit code.
package cli
