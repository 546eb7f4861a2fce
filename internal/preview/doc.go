// Package preview holds the sim.FrameSink implementations that show a
// simulated strip to a person: a truecolor terminal renderer and a
// socket.io publisher for browser previews.
package preview
