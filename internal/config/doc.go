// Package config loads, normalizes, and validates macadam project
// configuration data.
//
// A project is a directory containing macadam.toml. Loading resolves every
// relative path against that directory, applies environment fallbacks
// (MACADAM_API_KEY, MACADAM_USER_ID), and validates the input rules so the
// rest of the pipeline can assume a coherent view of the project.
package config
