package scenario

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
)

// scenarioSchema constrains the shape of a scenario document before
// struct decoding. The CUE SDK is used directly (not a CLI subprocess).
const scenarioSchema = `
#Scenario: {
	name:        string & =~"^[a-z][a-z0-9_]*$"
	description: string & !=""
	query:       string & !=""
	ordered?:    bool
	sql?:        string & !=""
	assertions: [...#Assertion]
}

#Assertion: {
	type: "row_count" | "contains_row" | "all_rows" | "sorted_by" | "field_compare" | "sql_match"
	count?: int & >=0
	row?: {...}
	column?:    string & !=""
	equals?:    _
	direction?: "asc" | "desc"
	where?: {...}
	op?:    ">" | ">=" | "<" | "<=" | "=="
	value?: number
}
`

// ValidateSchema checks a decoded scenario document against the CUE
// schema. Returns a detailed error when the document does not conform.
func ValidateSchema(doc map[string]any) error {
	ctx := cuecontext.New()

	schema := ctx.CompileString(scenarioSchema)
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compile scenario schema: %w", err)
	}

	def := schema.LookupPath(cue.ParsePath("#Scenario"))
	if !def.Exists() {
		return fmt.Errorf("scenario schema: #Scenario definition not found")
	}

	unified := def.Unify(ctx.Encode(doc))
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("schema violation:\n%s", cueerrors.Details(err, nil))
	}

	return nil
}
