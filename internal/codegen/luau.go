package codegen

// fileHeader opens every generated file so nobody edits them by hand.
const fileHeader = "This file was generated by macadam. Edits will be overwritten by the next sync."

// EmitLuau renders the tree as a Luau module returning a nested table of
// identifier strings. Output is deterministic for a given tree.
func EmitLuau(tree *Tree) string {
	return RenderLuau(List{
		Comment(fileHeader),
		ExportAssignment{Value: tree.expression()},
	})
}
