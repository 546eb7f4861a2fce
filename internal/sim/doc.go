// Package sim replays a module list on a software model of the
// microcontroller: a bounded LED buffer, a clock and a sink that receives
// every frame the program would have shown on the strip.
package sim
