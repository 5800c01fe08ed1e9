// Package backend defines where changed inputs get uploaded. Four
// implementations share one interface: the remote asset-hosting service,
// a local content directory, an offline debug ledger, and a refusing
// backend for verification passes. A retry decorator adds a bounded
// rate-limit retry budget around any of them.
package backend
