// Package syncer orchestrates sync passes: discover inputs, classify them
// against the previous manifest, dispatch changed inputs through the
// selected upload backend, write the manifest atomically, and emit code
// bindings. It also implements the cache-map and asset-list operations
// that read the manifest after a pass.
package syncer
