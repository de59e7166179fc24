// Package lab is the physically-named front door of the library: coherent
// and squeezed states, displacement and squeezing gates, lossy channels,
// photon-counting detectors and Gaussian measurements, all parametrized
// the way an optics table is.
//
// A Lab fixes the conventions (hbar, cutoff policy) and owns the shared
// partition cache, so objects made by the same Lab compose without
// re-specifying configuration. State constructors accept a scalar or one
// value per mode for each physical parameter, and act on modes 0..n-1
// unless told otherwise.
package lab
