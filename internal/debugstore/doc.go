// Package debugstore is the SQLite ledger behind the debug sync target.
//
// Each debug upload gets a sequential identifier and a row recording its
// name, content hash, and on-disk path, so repeated debug syncs hand out
// stable, ever-increasing IDs without any network dependency.
package debugstore
