// Package catalog discovers asset inputs from the filesystem and decides
// which ones changed since the last sync.
//
// Discovery expands the project's input-rule globs, reads and preprocesses
// each file, derives the DPI-stripped canonical path, and computes the
// content hash. Classification then compares each input against the
// previous manifest: an input is unchanged only when both its hash and its
// packable flag match the recorded entry.
package catalog
