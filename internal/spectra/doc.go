// Package spectra holds the reading model shared by the acquisition and
// processing stages, along with the linear resampler used to move channel
// data from a native detector axis onto a different x-axis.
package spectra
