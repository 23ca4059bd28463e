// Package locate answers structural questions about a syntax tree around an offset.
package locate

import "github.com/bethropolis/jsrefactor/internal/syntax"

// Category is an abstract grouping of concrete node kinds. Match may also
// look at a node's position in the tree, not just its kind.
type Category struct {
	Name  string
	Match func(n *syntax.Node) bool
}

// Matches reports whether n belongs to the category.
func (c Category) Matches(n *syntax.Node) bool {
	return n != nil && c.Match(n)
}

// Statement matches a complete statement that can be replaced in place:
// a member of a statement list or the body of a control statement.
var Statement = Category{
	Name: "Statement",
	Match: func(n *syntax.Node) bool {
		if !n.Named || !syntax.IsStatementKind(n.Kind) || n.Parent == nil {
			return false
		}
		parent := n.Parent
		if syntax.IsStatementList(parent.Kind) {
			return true
		}
		// A bare block is only a statement when it stands in a list
		if n.Kind == syntax.KindStatementBlock {
			return false
		}
		switch {
		case parent.Kind == "else_clause":
			return true
		case parent.Kind == "export_statement":
			return false
		case parent.Kind == "for_statement" && (n.Field == "initializer" || n.Field == "condition"):
			return false
		}
		return syntax.IsStatementKind(parent.Kind)
	},
}

// FunctionExpression matches function expressions, named or not, including
// generator expressions. Callers that need a plain anonymous one check the
// name field and the "*" token themselves. The anonymous "function" keyword
// token never matches.
var FunctionExpression = Category{
	Name: "FunctionExpression",
	Match: func(n *syntax.Node) bool {
		if !n.Named {
			return false
		}
		switch n.Kind {
		case syntax.KindFunctionExpression, syntax.KindFunction, syntax.KindGeneratorFunction:
			return true
		}
		return false
	},
}

// PropertyContainer matches object literals.
var PropertyContainer = Category{
	Name: "PropertyContainer",
	Match: func(n *syntax.Node) bool {
		return n.Named && n.Kind == syntax.KindObject
	},
}

// isOrderedList reports whether the children of a k node form an ordered
// list of properties or statements.
func isOrderedList(k syntax.Kind) bool {
	return k == syntax.KindObject || syntax.IsStatementList(k)
}
