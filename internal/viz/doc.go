// Package viz renders dispersion sweeps for the terminal: a braille
// canvas for the interactive explorer, asciigraph line plots for one-shot
// commands, and lipgloss-styled eigenvalue tables.
package viz
