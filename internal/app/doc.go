// Package app contains the core application logic. It wires the program
// loader, the module registry, the code generator and the simulator into
// one run, decoupled from any specific entrypoint like a CLI.
package app
