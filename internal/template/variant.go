package template

// Registry keys used by the refactorings.
const (
	KeyTryCatch       = "tryCatch"
	KeyWrapCondition  = "wrapCondition"
	KeyArrowFunction  = "arrowFunction"
	KeyGettersSetters = "gettersSetters"
)

// Arrow function variants.
const (
	VariantOneParamOneStatement   = "oneParamOneStatement"
	VariantManyParamOneStatement  = "manyParamOneStatement"
	VariantOneParamManyStatement  = "oneParamManyStatement"
	VariantManyParamManyStatement = "manyParamManyStatement"
)

// ArrowVariant picks the arrow function body from two facts about the
// function: whether its parameters need parentheses and whether its body
// has to keep its braces.
func ArrowVariant(manyParams, manyStatements bool) string {
	switch {
	case manyParams && manyStatements:
		return VariantManyParamManyStatement
	case manyParams:
		return VariantManyParamOneStatement
	case manyStatements:
		return VariantOneParamManyStatement
	default:
		return VariantOneParamOneStatement
	}
}

// Requirement names a template the refactorings cannot run without.
type Requirement struct {
	Key     string
	Variant string
}

// Required lists every template the built-in refactorings render.
var Required = []Requirement{
	{Key: KeyTryCatch},
	{Key: KeyWrapCondition},
	{Key: KeyArrowFunction, Variant: VariantOneParamOneStatement},
	{Key: KeyArrowFunction, Variant: VariantManyParamOneStatement},
	{Key: KeyArrowFunction, Variant: VariantOneParamManyStatement},
	{Key: KeyArrowFunction, Variant: VariantManyParamManyStatement},
	{Key: KeyGettersSetters},
}

// Check reports the first required template missing from r.
func (r *Registry) Check(reqs []Requirement) error {
	for _, req := range reqs {
		if _, err := r.Lookup(req.Key, req.Variant); err != nil {
			return err
		}
	}
	return nil
}
