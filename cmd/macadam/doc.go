// Command macadam is the CLI for the macadam asset pipeline: sync a
// project's image assets to a hosting target, upload single images,
// build a local download cache, and list synced assets.
package main
