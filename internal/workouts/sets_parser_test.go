package workouts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSetsData(t *testing.T) {
	sets, skipped := ParseSetsData([]string{
		`{"peso": 80, "repeticiones": 5}`,
		`{"peso": "82.5", "repeticiones": "5", "completada": true}`,
		`{"peso": 85, "repeticiones": 3, "completada": false}`,
	})

	assert.Zero(t, skipped)
	require.Len(t, sets, 3)

	assert.Equal(t, Set{SetNumber: 1, Kilos: 80, Reps: 5, Completed: true}, sets[0])
	assert.Equal(t, Set{SetNumber: 2, Kilos: 82.5, Reps: 5, Completed: true}, sets[1])
	assert.Equal(t, Set{SetNumber: 3, Kilos: 85, Reps: 3, Completed: false}, sets[2])
}

func TestParseSetsData_SkipsMalformedPayloads(t *testing.T) {
	sets, skipped := ParseSetsData([]string{
		`{"peso": 80, "repeticiones": 5}`,
		`{"peso": "not-a-number", "repeticiones": 5}`,
		`{"peso": 85, "repeticiones": 3}`,
	})

	assert.Equal(t, 1, skipped)
	require.Len(t, sets, 2)

	// the skipped payload leaves a gap, numbers follow list positions
	assert.Equal(t, 1, sets[0].SetNumber)
	assert.Equal(t, 3, sets[1].SetNumber)
}

func TestParseSetsData_EmptyPayloadLeavesGapToo(t *testing.T) {
	sets, skipped := ParseSetsData([]string{
		``,
		`{"peso": 60, "repeticiones": 8}`,
	})

	// an empty form row is not counted as a parse failure
	assert.Zero(t, skipped)
	require.Len(t, sets, 1)
	assert.Equal(t, 2, sets[0].SetNumber)
}

func TestParseSetsData_RepsTruncation(t *testing.T) {
	// a number-typed repetition count is truncated toward zero,
	// a string-typed one must be a plain integer
	sets, skipped := ParseSetsData([]string{
		`{"peso": 50, "repeticiones": 12.7}`,
		`{"peso": 50, "repeticiones": "12.7"}`,
		`{"peso": 50, "repeticiones": " 12 "}`,
	})

	assert.Equal(t, 1, skipped)
	require.Len(t, sets, 2)
	assert.Equal(t, 12, sets[0].Reps)
	assert.Equal(t, 1, sets[0].SetNumber)
	assert.Equal(t, 12, sets[1].Reps)
	assert.Equal(t, 3, sets[1].SetNumber)
}

func TestParseSetsData_BoolCoercion(t *testing.T) {
	// lenient numeric conversion, a bool counts as 1 or 0
	sets, skipped := ParseSetsData([]string{
		`{"peso": true, "repeticiones": 5}`,
		`{"peso": 50, "repeticiones": false}`,
	})

	assert.Zero(t, skipped)
	require.Len(t, sets, 2)
	assert.Equal(t, Set{SetNumber: 1, Kilos: 1, Reps: 5, Completed: true}, sets[0])
	assert.Equal(t, Set{SetNumber: 2, Kilos: 50, Reps: 0, Completed: true}, sets[1])
}

func TestParseSetsData_SkipCases(t *testing.T) {
	for name, payload := range map[string]string{
		"not json":            `peso=80`,
		"missing peso":        `{"repeticiones": 5}`,
		"missing reps":        `{"peso": 80}`,
		"null peso":           `{"peso": null, "repeticiones": 5}`,
		"null reps":           `{"peso": 80, "repeticiones": null}`,
		"non-bool completada": `{"peso": 80, "repeticiones": 5, "completada": "yes"}`,
	} {
		t.Run(name, func(t *testing.T) {
			sets, skipped := ParseSetsData([]string{payload})
			assert.Empty(t, sets)
			assert.Equal(t, 1, skipped)
		})
	}
}
