package codegen

import (
	"strconv"
	"strings"
)

// The generated bindings for both target languages are assembled from one
// small statement/expression AST. Each node knows how to print itself in
// Luau and in TypeScript through the indenting Stream, so the emitters
// only decide structure, never formatting.

// Expression is a value or type position in generated code.
type Expression interface {
	emitLuau(s *Stream)
	emitTS(s *Stream)
}

// Statement is a top-level construct in a generated file.
type Statement interface {
	writeLuau(s *Stream)
	writeTS(s *Stream)
}

// Identifier is a bare name.
type Identifier string

func (e Identifier) emitLuau(s *Stream) { s.WriteString(string(e)) }
func (e Identifier) emitTS(s *Stream)   { s.WriteString(string(e)) }

// String is a quoted string literal.
type String string

func (e String) emitLuau(s *Stream) { s.WriteString(quote(string(e))) }
func (e String) emitTS(s *Stream)   { s.WriteString(quote(string(e))) }

// Number is a numeric literal.
type Number float64

func (e Number) emitLuau(s *Stream) { s.WriteString(formatNumber(float64(e))) }
func (e Number) emitTS(s *Stream)   { s.WriteString(formatNumber(float64(e))) }

// Template is an interpolated string literal. String parts appear
// verbatim; every other expression is wrapped in the language's
// interpolation syntax.
type Template []Expression

func (e Template) emitLuau(s *Stream) {
	s.WriteString("`")
	for _, part := range e {
		if text, ok := part.(String); ok {
			s.WriteString(string(text))
			continue
		}
		s.WriteString("{")
		part.emitLuau(s)
		s.WriteString("}")
	}
	s.WriteString("`")
}

func (e Template) emitTS(s *Stream) {
	s.WriteString("`")
	for _, part := range e {
		if text, ok := part.(String); ok {
			s.WriteString(string(text))
			continue
		}
		s.WriteString("${")
		part.emitTS(s)
		s.WriteString("}")
	}
	s.WriteString("`")
}

// Field is one named member of a Table.
type Field struct {
	Key   string
	Value Expression
}

// Table is an ordered field collection. It prints as a table constructor
// in Luau and as a type literal in TypeScript. Callers are responsible for
// field ordering; the node preserves it.
type Table []Field

func (e Table) emitLuau(s *Stream) {
	s.Line("{")
	s.Indent()
	for _, field := range e {
		s.WriteString(luauKey(field.Key) + " = ")
		field.Value.emitLuau(s)
		s.Line(",")
	}
	s.Unindent()
	s.WriteString("}")
}

func (e Table) emitTS(s *Stream) {
	s.Line("{")
	s.Indent()
	for _, field := range e {
		s.WriteString("readonly " + tsKey(field.Key) + ": ")
		field.Value.emitTS(s)
		s.Line(";")
	}
	s.Unindent()
	s.WriteString("}")
}

// Param is one parameter of a FunctionType.
type Param struct {
	Name string
	Type Expression
}

// FunctionType is a function type annotation.
type FunctionType struct {
	Params []Param
	Return Expression
}

func (e FunctionType) emitLuau(s *Stream) { e.emit(s, "->", Expression.emitLuau) }
func (e FunctionType) emitTS(s *Stream)   { e.emit(s, "=>", Expression.emitTS) }

func (e FunctionType) emit(s *Stream, arrow string, emit func(Expression, *Stream)) {
	s.WriteString("(")
	for i, param := range e.Params {
		if i > 0 {
			s.WriteString(", ")
		}
		s.WriteString(param.Name + ": ")
		emit(param.Type, s)
	}
	s.WriteString(") " + arrow + " ")
	emit(e.Return, s)
}

// Comment is one or more comment lines.
type Comment string

func (c Comment) writeLuau(s *Stream) { c.write(s, "--") }
func (c Comment) writeTS(s *Stream)   { c.write(s, "//") }

func (c Comment) write(s *Stream, prefix string) {
	for _, line := range strings.Split(string(c), "\n") {
		if line == "" {
			s.Line(prefix)
			continue
		}
		s.Line(prefix + " " + line)
	}
}

// VariableDeclaration declares a constant binding. Type and Value are each
// optional; TypeScript ambient declarations set Declare and omit Value.
type VariableDeclaration struct {
	Name    string
	Declare bool
	Type    Expression
	Value   Expression
}

func (d VariableDeclaration) writeLuau(s *Stream) {
	s.WriteString("local " + d.Name)
	if d.Type != nil {
		s.WriteString(": ")
		d.Type.emitLuau(s)
	}
	if d.Value != nil {
		s.WriteString(" = ")
		d.Value.emitLuau(s)
	}
	s.Line("")
}

func (d VariableDeclaration) writeTS(s *Stream) {
	if d.Declare {
		s.WriteString("declare ")
	}
	s.WriteString("const " + d.Name)
	if d.Type != nil {
		s.WriteString(": ")
		d.Type.emitTS(s)
	}
	if d.Value != nil {
		s.WriteString(" = ")
		d.Value.emitTS(s)
	}
	s.Line(";")
}

// InterfaceDeclaration declares a named structural type.
type InterfaceDeclaration struct {
	Name    string
	Declare bool
	Members Table
}

func (d InterfaceDeclaration) writeLuau(s *Stream) {
	s.WriteString("type " + d.Name + " = ")
	typeLiteral(d.Members).emitLuau(s)
	s.Line("")
}

func (d InterfaceDeclaration) writeTS(s *Stream) {
	if d.Declare {
		s.WriteString("declare ")
	}
	s.WriteString("interface " + d.Name + " ")
	d.Members.emitTS(s)
	s.Line("")
}

// typeLiteral renders Table fields with Luau type syntax (colon instead of
// equals).
type typeLiteral Table

func (e typeLiteral) emitLuau(s *Stream) {
	s.Line("{")
	s.Indent()
	for _, field := range e {
		s.WriteString(luauKey(field.Key) + ": ")
		field.Value.emitLuau(s)
		s.Line(",")
	}
	s.Unindent()
	s.WriteString("}")
}

func (e typeLiteral) emitTS(s *Stream) { Table(e).emitTS(s) }

// ExportAssignment makes an expression the file's sole export.
type ExportAssignment struct {
	Value Expression
}

func (d ExportAssignment) writeLuau(s *Stream) {
	s.WriteString("return ")
	d.Value.emitLuau(s)
	s.Line("")
}

func (d ExportAssignment) writeTS(s *Stream) {
	s.WriteString("export = ")
	d.Value.emitTS(s)
	s.Line(";")
}

// List sequences statements.
type List []Statement

func (l List) writeLuau(s *Stream) {
	for _, stmt := range l {
		stmt.writeLuau(s)
	}
}

func (l List) writeTS(s *Stream) {
	for _, stmt := range l {
		stmt.writeTS(s)
	}
}

// RenderLuau prints a statement as Luau source.
func RenderLuau(stmt Statement) string {
	s := NewStream()
	stmt.writeLuau(s)
	return s.String()
}

// RenderTypeScript prints a statement as TypeScript source.
func RenderTypeScript(stmt Statement) string {
	s := NewStream()
	stmt.writeTS(s)
	return s.String()
}

// luauKey formats a table key, bracket-quoting anything that is not a
// valid bare identifier.
func luauKey(key string) string {
	if isIdentifier(key) {
		return key
	}
	return "[" + quote(key) + "]"
}

func tsKey(key string) string {
	if isIdentifier(key) {
		return key
	}
	return "[" + quote(key) + "]"
}

func isIdentifier(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		switch {
		case r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

func quote(value string) string {
	return strconv.Quote(value)
}

func formatNumber(value float64) string {
	return strconv.FormatFloat(value, 'g', -1, 64)
}
