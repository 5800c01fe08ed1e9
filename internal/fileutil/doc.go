// Package fileutil provides the small filesystem helpers shared across the
// sync pipeline: content hashing, streamed copies, and atomic writes for
// files that must never be observed half-written (the manifest, generated
// code).
package fileutil
