// Package hdrio loads and saves floating-point image tensors and computes
// an automatic exposure scale over them.
//
// Images are held in a row-major, channel-interleaved float32 tensor. PFM
// (Portable FloatMap) and binary PPM codecs are built in; the OpenEXR codec
// sits on top of github.com/mrjoshuak/go-openexr. Load and Save dispatch on
// the filename extension.
package hdrio
