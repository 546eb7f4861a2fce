// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package module defines the contract every LED effect implements.
//
// A module turns its Config into two things: a C++ fragment for the
// generated sketch (GenerateCode) and behaviour against a simulated strip
// (SimulateSetup / SimulateLoop). Both sides must agree: every delay the
// generated code performs is a suspension point in the simulation.
//
// # Dirty state
//
// GenerateCode receives whether the LED buffer holds writes that have not
// been shown yet and returns the same flag for the end of its fragment. The
// code generator folds this flag over the module list, so a module that
// waits must flush first only when the buffer is actually dirty, and a frame
// that ends dirty gets a single FastLED.show() at the very end.
//
// Inlined vs. function-call modules
//
// Most modules inline their code at the call site. A FuncModule instead
// describes a C++ function; AsFunction adapts it to Module so that every
// call site becomes a call expression and the definition is emitted once
// through the injected FunctionSupplier. The choice is made when the module
// is registered, not by the module itself.
package module
