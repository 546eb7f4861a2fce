// Package registry maps the stable string keys used in programs ("color",
// "loop", "comment", "test") to the compiled module implementations.
//
// Modules add themselves during application startup through the Module
// interface. The registry is then validated and used to resolve raw module
// lists, both at the top level of a program and inside composite modules
// such as Loop. Unknown keys are reported as "not found" by Lookup and as a
// descriptive error by ParseModules; resolution never panics.
package registry
