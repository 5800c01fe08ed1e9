// Package codegen turns the synced asset set into source-code bindings.
// Inputs are grouped into a folder/leaf tree keyed by canonical path
// segments, with DPI variants collected per leaf, then rendered through a
// shared statement/expression AST into Luau and TypeScript. Rendering is
// deterministic: sorted keys everywhere, so unchanged input produces
// byte-identical output.
package codegen
