// Package cmd wires the cobra-based CLI commands for calcctl.
//
// Each subcommand lives in its own file and is constructed through a
// newXxxCmd function so tests can exercise commands in isolation. The lint
// and formatting infrastructure is exposed through the Makefile targets.
package cmd
