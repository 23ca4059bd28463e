package refactor

import (
	"github.com/bethropolis/jsrefactor/internal/edit"
	"github.com/bethropolis/jsrefactor/internal/locate"
	"github.com/bethropolis/jsrefactor/internal/selection"
	"github.com/bethropolis/jsrefactor/internal/template"
	"github.com/bethropolis/jsrefactor/internal/types"
)

// Cursor placement after a wrap, relative to the start of the generated code.
const (
	tryCatchCursor       = 5 // after "try {"
	conditionSelectStart = 4 // the "x" in "if (x)"
	conditionSelectEnd   = 5
)

// WrapInTryCatch wraps the selected statements, or the statement at the
// cursor, in a try/catch block and puts the cursor inside the block.
func (s *Session) WrapInTryCatch() (Result, error) {
	return s.wrap(CommandWrapInTryCatch, template.KeyTryCatch, func(start int) types.Selection {
		return types.Cursor(start + tryCatchCursor)
	})
}

// WrapInCondition wraps the selected statements, or the statement at the
// cursor, in an if block and selects the placeholder condition.
func (s *Session) WrapInCondition() (Result, error) {
	return s.wrap(CommandWrapInCondition, template.KeyWrapCondition, func(start int) types.Selection {
		return types.Selection{Anchor: start + conditionSelectStart, Head: start + conditionSelectEnd}
	})
}

func (s *Session) wrap(command, key string, place func(start int) types.Selection) (Result, error) {
	target, err := s.wrapTarget(command)
	if err != nil {
		return Result{}, err
	}

	text, err := s.render(key, template.Params{"body": s.snapshot.Slice(target)})
	if err != nil {
		return Result{}, err
	}

	b := s.builder().Replace(target, text)
	return s.commit(b, func(res edit.CommitResult) types.Selection {
		return place(res.Ranges[0].Start)
	})
}

// wrapTarget resolves the statements a wrap replaces. An empty selection
// means the innermost statement at the cursor; otherwise the normalized
// selection has to cover complete statements. The result includes the last
// statement's terminator.
func (s *Session) wrapTarget(command string) (types.Range, error) {
	root, text := s.snapshot.Root, s.snapshot.Text
	sel := s.selection.Range()

	var candidate types.Range
	if sel.IsEmpty() {
		n, err := locate.FindSurroundingNode(root, sel.Start, locate.Statement)
		if err != nil {
			return types.Range{}, &Error{Command: command, Offset: sel.Start, Err: ErrNoEnclosingNode}
		}
		candidate = n.Range()
	} else {
		candidate = selection.Normalize(s.snapshot.Slice(sel), sel.Start, sel.End).Range()
	}

	target, ok := selection.CompleteStatements(root, text, candidate)
	if !ok {
		return types.Range{}, &Error{Command: command, Offset: sel.Start, Err: ErrInvalidSelection}
	}
	return target, nil
}
