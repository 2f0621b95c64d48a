package scenario

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateSchema_ValidDocument(t *testing.T) {
	doc := map[string]any{
		"name":        "salesman_filter",
		"description": "two salesmen",
		"query":       "employees_with_job_salesman",
		"assertions": []any{
			map[string]any{"type": "row_count", "count": 2},
			map[string]any{"type": "contains_row", "row": map[string]any{"ename": "ALLEN"}},
		},
	}

	assert.NoError(t, ValidateSchema(doc))
}

func TestValidateSchema_BadName(t *testing.T) {
	doc := map[string]any{
		"name":        "Bad Name With Spaces",
		"description": "x",
		"query":       "q",
		"assertions":  []any{map[string]any{"type": "row_count", "count": 1}},
	}

	err := ValidateSchema(doc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema violation")
}

func TestValidateSchema_BadAssertionType(t *testing.T) {
	doc := map[string]any{
		"name":        "bad_assertion",
		"description": "x",
		"query":       "q",
		"assertions":  []any{map[string]any{"type": "final_state"}},
	}

	err := ValidateSchema(doc)
	require.Error(t, err)
}

func TestValidateSchema_NegativeCount(t *testing.T) {
	doc := map[string]any{
		"name":        "neg_count",
		"description": "x",
		"query":       "q",
		"assertions":  []any{map[string]any{"type": "row_count", "count": -1}},
	}

	err := ValidateSchema(doc)
	require.Error(t, err)
}

func TestValidateSchema_UnknownAssertionField(t *testing.T) {
	doc := map[string]any{
		"name":        "extra_field",
		"description": "x",
		"query":       "q",
		"assertions":  []any{map[string]any{"type": "row_count", "count": 1, "bogus": true}},
	}

	err := ValidateSchema(doc)
	require.Error(t, err)
}

func TestValidateSchema_BadDirection(t *testing.T) {
	doc := map[string]any{
		"name":        "bad_direction",
		"description": "x",
		"query":       "q",
		"assertions":  []any{map[string]any{"type": "sorted_by", "column": "sal", "direction": "downhill"}},
	}

	err := ValidateSchema(doc)
	require.Error(t, err)
}
