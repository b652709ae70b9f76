// Package analysis extracts derived quantities from a dispersion sweep:
// bare-mode crossings, anticrossing gaps, and polariton effective masses.
package analysis
