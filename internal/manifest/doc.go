// Package manifest persists the outcome of the previous sync pass.
//
// One TOML record per asset name stores the content hash, the packable
// flag, and the assigned identifier. The file is read at the start of a
// sync to drive change detection and rewritten atomically at the end to
// cover exactly the inputs that succeeded.
package manifest
