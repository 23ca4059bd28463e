package refactor

import (
	"strings"

	"github.com/bethropolis/jsrefactor/internal/edit"
	"github.com/bethropolis/jsrefactor/internal/locate"
	"github.com/bethropolis/jsrefactor/internal/syntax"
	"github.com/bethropolis/jsrefactor/internal/template"
	"github.com/bethropolis/jsrefactor/internal/types"
)

// arrowPlan is what the conversion needs to know about one function expression.
type arrowPlan struct {
	fn         *syntax.Node
	body       *syntax.Node
	params     string
	manyParams bool
	// statement is the implicit-return expression, or "" when the body
	// keeps its braces.
	statement string
	async     bool
}

// ConvertToArrowFunction rewrites the anonymous function expression at the
// cursor as an arrow function. A body that is a single expression or
// return-with-value becomes an expression body; any other body keeps its
// block and only the header is rewritten.
func (s *Session) ConvertToArrowFunction() (Result, error) {
	plan, err := s.planArrow()
	if err != nil {
		return Result{}, err
	}

	manyStatements := plan.statement == ""
	variant := template.ArrowVariant(plan.manyParams, manyStatements)
	text, err := s.render(template.KeyArrowFunction, template.Params{
		"params":    plan.params,
		"statement": plan.statement,
	}, template.WithVariant(variant))
	if err != nil {
		return Result{}, err
	}
	if plan.async {
		text = "async " + text
	}

	target := plan.fn.Range()
	if manyStatements {
		target = types.Range{Start: plan.fn.Start, End: plan.body.Start}
	}

	// The cursor goes to the end of the arrow header.
	header := len(text)
	if !manyStatements {
		if i := strings.LastIndex(text, plan.statement); i >= 0 {
			header = i
		}
	}

	b := s.builder().Replace(target, text)
	return s.commit(b, func(res edit.CommitResult) types.Selection {
		return types.Cursor(res.Ranges[0].Start + header)
	})
}

func (s *Session) planArrow() (arrowPlan, error) {
	root, text := s.snapshot.Root, s.snapshot.Text
	cursor := s.selection.Range().Start

	fn, err := locate.FindSurroundingNode(root, cursor, locate.FunctionExpression)
	if err != nil {
		return arrowPlan{}, &Error{Command: CommandConvertToArrowFunction, Offset: cursor, Err: ErrNoEnclosingNode}
	}
	params := fn.ChildByField(syntax.FieldParameters)
	body := fn.ChildByField(syntax.FieldBody)
	if fn.ChildByField(syntax.FieldName) != nil || params == nil || body == nil || fn.ChildOfKind("*") != nil {
		return arrowPlan{}, &Error{Command: CommandConvertToArrowFunction, Offset: cursor, Err: ErrNamedOrMissingFunction}
	}

	plan := arrowPlan{
		fn:     fn,
		body:   body,
		params: parameterText(params, text),
		async:  fn.ChildOfKind("async") != nil,
	}
	list := params.Elements()
	plan.manyParams = len(list) != 1 || list[0].Kind != syntax.KindIdentifier

	if stmts := body.Elements(); len(stmts) == 1 {
		plan.statement = implicitReturn(stmts[0], text)
	}
	return plan, nil
}

// parameterText returns the parameter list without its parentheses.
func parameterText(params *syntax.Node, text []byte) string {
	inner := params.Text(text)
	inner = strings.TrimPrefix(inner, "(")
	inner = strings.TrimSuffix(inner, ")")
	return strings.TrimSpace(inner)
}

// implicitReturn returns the expression an arrow function can use as its
// body in place of stmt, or "" when stmt has no such form. The return
// keyword and the terminator are dropped; object literals and comma
// expressions are parenthesized.
func implicitReturn(stmt *syntax.Node, text []byte) string {
	switch stmt.Kind {
	case syntax.KindExpressionStatement, syntax.KindReturnStatement:
	default:
		return ""
	}

	elems := stmt.Elements()
	if len(elems) != 1 {
		return ""
	}
	expr := elems[0]
	src := expr.Text(text)
	switch expr.Kind {
	case syntax.KindObject, syntax.KindSequenceExpression:
		return "(" + src + ")"
	}
	return src
}
