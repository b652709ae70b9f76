// Package physics defines the coupled photon–exciton system: the cavity
// photon dispersion, exciton resonances, and the symmetric Hamiltonian
// built from them at each in-plane momentum.
package physics
