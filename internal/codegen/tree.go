package codegen

import (
	"fmt"
	"path"
	"sort"
	"strings"

	"macadam/internal/catalog"
	"macadam/internal/services"
)

// Tree groups codegen-eligible inputs hierarchically by the segments of
// their canonical paths, with DPI variants of one logical asset collected
// under a single leaf. The tree borrows the inputs; it never outlives the
// sync pass that built it.
type Tree struct {
	root folder
}

type node interface {
	isNode()
}

type folder struct {
	children map[string]node
}

type leaf struct {
	variants map[int]*catalog.Input
}

func (folder) isNode() {}
func (leaf) isNode()   {}

// BuildTree constructs the grouping tree from every input marked for
// codegen. Inputs without the codegen flag are skipped. Construction
// fails on an input whose path is not rooted under its declared base
// path, on a `..` segment with nothing left to pop, on a folder/asset
// name collision, and on two inputs claiming the same (path, DPI) pair.
func BuildTree(inputs []*catalog.Input) (*Tree, error) {
	tree := &Tree{root: folder{children: map[string]node{}}}

	for _, input := range inputs {
		if !input.Rule.Codegen {
			continue
		}
		if input.ID == nil {
			return nil, services.Wrap(services.ErrValidation, "codegen", "build tree",
				fmt.Sprintf("input %s has no identifier", input.Name), nil)
		}

		segments, err := relativeSegments(input)
		if err != nil {
			return nil, err
		}
		if err := tree.insert(segments, input); err != nil {
			return nil, err
		}
	}
	return tree, nil
}

// relativeSegments strips the extension from the input's canonical path,
// makes it relative to the rule's base path, and collapses `.` and `..`
// segments.
func relativeSegments(input *catalog.Input) ([]string, error) {
	withoutExt := strings.TrimSuffix(input.CanonicalPath, path.Ext(input.CanonicalPath))

	rel := withoutExt
	if base := input.Rule.BasePath; base != "" {
		switch {
		case withoutExt == base:
			rel = ""
		case strings.HasPrefix(withoutExt, base+"/"):
			rel = withoutExt[len(base)+1:]
		default:
			return nil, services.Wrap(services.ErrConfiguration, "codegen", "build tree",
				fmt.Sprintf("input %s is not under its base path %s", input.Name, base), nil)
		}
	}

	var segments []string
	for _, segment := range strings.Split(rel, "/") {
		switch segment {
		case "", ".":
		case "..":
			if len(segments) == 0 {
				return nil, services.Wrap(services.ErrConfiguration, "codegen", "build tree",
					fmt.Sprintf("input %s collapses above its base path", input.Name), nil)
			}
			segments = segments[:len(segments)-1]
		default:
			segments = append(segments, segment)
		}
	}
	if len(segments) == 0 {
		return nil, services.Wrap(services.ErrConfiguration, "codegen", "build tree",
			fmt.Sprintf("input %s collapses to an empty name", input.Name), nil)
	}
	return segments, nil
}

func (t *Tree) insert(segments []string, input *catalog.Input) error {
	current := t.root.children
	for _, segment := range segments[:len(segments)-1] {
		child, ok := current[segment]
		if !ok {
			next := folder{children: map[string]node{}}
			current[segment] = next
			current = next.children
			continue
		}
		sub, ok := child.(folder)
		if !ok {
			return services.Wrap(services.ErrConfiguration, "codegen", "build tree",
				fmt.Sprintf("name %s is both an asset and a folder", segment), nil)
		}
		current = sub.children
	}

	last := segments[len(segments)-1]
	child, ok := current[last]
	if !ok {
		child = leaf{variants: map[int]*catalog.Input{}}
		current[last] = child
	}
	group, ok := child.(leaf)
	if !ok {
		return services.Wrap(services.ErrConfiguration, "codegen", "build tree",
			fmt.Sprintf("name %s is both an asset and a folder", last), nil)
	}
	if _, exists := group.variants[input.DPIScale]; exists {
		return services.Wrap(services.ErrConfiguration, "codegen", "build tree",
			fmt.Sprintf("two inputs map to %s at scale %d", strings.Join(segments, "/"), input.DPIScale), nil)
	}
	group.variants[input.DPIScale] = input
	return nil
}

// IsEmpty reports whether no input was grouped.
func (t *Tree) IsEmpty() bool {
	return len(t.root.children) == 0
}

// expression turns the whole tree into a Table with lexicographically
// sorted keys, which both emitters then print in their own syntax.
func (t *Tree) expression() Table {
	return folderExpression(t.root)
}

func folderExpression(f folder) Table {
	names := make([]string, 0, len(f.children))
	for name := range f.children {
		names = append(names, name)
	}
	sort.Strings(names)

	fields := make(Table, 0, len(names))
	for _, name := range names {
		var value Expression
		switch child := f.children[name].(type) {
		case folder:
			value = folderExpression(child)
		case leaf:
			value = leafExpression(child)
		}
		fields = append(fields, Field{Key: name, Value: value})
	}
	return fields
}

// leafExpression renders a single-variant leaf as one binding and a
// multi-variant leaf as a table keyed by DPI scale, in ascending order.
func leafExpression(l leaf) Expression {
	if len(l.variants) == 1 {
		for _, input := range l.variants {
			return inputExpression(input)
		}
	}

	scales := make([]int, 0, len(l.variants))
	for scale := range l.variants {
		scales = append(scales, scale)
	}
	sort.Ints(scales)

	fields := make(Table, 0, len(scales))
	for _, scale := range scales {
		fields = append(fields, Field{
			Key:   fmt.Sprintf("%d", scale),
			Value: inputExpression(l.variants[scale]),
		})
	}
	return fields
}

// inputExpression is the identifier string for a standalone asset, or a
// table carrying the slice rectangle for an asset packed into a shared
// sheet.
func inputExpression(input *catalog.Input) Expression {
	id := String(input.ID.String())
	if input.Slice == nil {
		return id
	}
	return Table{
		{Key: "Image", Value: id},
		{Key: "SliceOffset", Value: Table{
			{Key: "X", Value: Number(input.Slice.MinX)},
			{Key: "Y", Value: Number(input.Slice.MinY)},
		}},
		{Key: "SliceSize", Value: Table{
			{Key: "X", Value: Number(input.Slice.MaxX - input.Slice.MinX)},
			{Key: "Y", Value: Number(input.Slice.MaxY - input.Slice.MinY)},
		}},
	}
}
