// Package preprocess defines the image preprocessing contract consumed by
// the input catalog.
//
// Pixel-level work (alpha bleeding, spritesheet packing) lives behind the
// Preprocessor interface; the pipeline only sees encoded bytes and an
// optional slice rectangle. The default Passthrough implementation
// validates PNG framing and forwards bytes untouched.
package preprocess
