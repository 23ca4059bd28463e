package syntax

// Kind is the grammar's node type name, e.g. "expression_statement".
type Kind string

// JavaScript node kinds the refactorings inspect.
const (
	KindProgram        Kind = "program"
	KindStatementBlock Kind = "statement_block"
	KindSwitchCase     Kind = "switch_case"
	KindSwitchDefault  Kind = "switch_default"
	KindComment        Kind = "comment"

	KindExpressionStatement Kind = "expression_statement"
	KindReturnStatement     Kind = "return_statement"

	// Older grammar releases name anonymous function expressions "function";
	// newer ones use that kind for the unnamed keyword token.
	KindFunction           Kind = "function"
	KindFunctionExpression Kind = "function_expression"
	KindGeneratorFunction  Kind = "generator_function"
	KindFormalParameters   Kind = "formal_parameters"
	KindIdentifier         Kind = "identifier"

	KindObject                      Kind = "object"
	KindPair                        Kind = "pair"
	KindPropertyIdentifier          Kind = "property_identifier"
	KindShorthandPropertyIdentifier Kind = "shorthand_property_identifier"
	KindSequenceExpression          Kind = "sequence_expression"
)

// Field names used with Node.ChildByField.
const (
	FieldName       = "name"
	FieldParameters = "parameters"
	FieldBody       = "body"
	FieldKey        = "key"
	FieldValue      = "value"
)

// statementKinds lists every concrete statement kind of the JavaScript grammar.
var statementKinds = map[Kind]struct{}{
	"expression_statement":           {},
	"variable_declaration":           {},
	"lexical_declaration":            {},
	"function_declaration":           {},
	"generator_function_declaration": {},
	"class_declaration":              {},
	"import_statement":               {},
	"export_statement":               {},
	"statement_block":                {},
	"if_statement":                   {},
	"switch_statement":               {},
	"for_statement":                  {},
	"for_in_statement":               {},
	"while_statement":                {},
	"do_statement":                   {},
	"try_statement":                  {},
	"with_statement":                 {},
	"break_statement":                {},
	"continue_statement":             {},
	"return_statement":               {},
	"throw_statement":                {},
	"empty_statement":                {},
	"labeled_statement":              {},
	"debugger_statement":             {},
}

// IsStatementKind reports whether k is a concrete statement kind.
func IsStatementKind(k Kind) bool {
	_, ok := statementKinds[k]
	return ok
}

// IsStatementList reports whether children of a k node form an ordered statement list.
func IsStatementList(k Kind) bool {
	switch k {
	case KindProgram, KindStatementBlock, KindSwitchCase, KindSwitchDefault:
		return true
	}
	return false
}
