package codegen

// tsRootName is the ambient constant exposed by the declaration file.
const tsRootName = "Assets"

// EmitTypeScript renders the tree as an ambient TypeScript declaration:
// an interface of literal identifier types, a declared constant, and an
// export assignment. Output is deterministic for a given tree.
func EmitTypeScript(tree *Tree) string {
	return RenderTypeScript(List{
		Comment(fileHeader),
		InterfaceDeclaration{
			Name:    tsRootName,
			Declare: true,
			Members: tree.expression(),
		},
		VariableDeclaration{
			Name:    tsRootName,
			Declare: true,
			Type:    Identifier(tsRootName),
		},
		ExportAssignment{Value: Identifier(tsRootName)},
	})
}
