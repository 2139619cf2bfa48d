package grading

import (
	"encoding/json"
	"maps"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnswerValue_DecodeSubmission(t *testing.T) {
	var answers map[string]AnswerValue
	err := json.Unmarshal([]byte(`{"q1": 2, "q2": "Paris", "q3": null, "q4": 3.5}`), &answers)
	require.NoError(t, err)

	assert.Equal(t, IndexValue(2), answers["q1"])
	assert.Equal(t, TextValue("Paris"), answers["q2"])
	assert.True(t, answers["q3"].IsZero())
	assert.Equal(t, NumberValue(3.5), answers["q4"])
}

func TestAnswerValue_DecodeRejectsObjects(t *testing.T) {
	var v AnswerValue
	assert.Error(t, json.Unmarshal([]byte(`{"a": 1}`), &v))
	assert.Error(t, json.Unmarshal([]byte(`true`), &v))
}

func TestAnswerValue_Encode(t *testing.T) {
	out, err := json.Marshal([]AnswerValue{IndexValue(1), TextValue("x"), NoAnswer})
	require.NoError(t, err)
	assert.JSONEq(t, `[1, "x", null]`, string(out))
}

func TestAnswerValue_Accessors(t *testing.T) {
	i, ok := NumberValue(2).Index()
	assert.True(t, ok)
	assert.Equal(t, 2, i)

	_, ok = NumberValue(2.5).Index()
	assert.False(t, ok)

	_, ok = TextValue("1").Index()
	assert.False(t, ok)

	for _, huge := range []float64{1e300, -1e300, math.MaxInt32 + 1} {
		_, ok = NumberValue(huge).Index()
		assert.False(t, ok, huge)
	}
	i, ok = NumberValue(math.MaxInt32).Index()
	assert.True(t, ok)
	assert.Equal(t, math.MaxInt32, i)

	f, ok := TextValue(" 1e3 ").Float()
	assert.True(t, ok)
	assert.Equal(t, 1000.0, f)

	_, ok = TextValue("Inf").Float()
	assert.False(t, ok)

	assert.Equal(t, "3.25", NumberValue(3.25).String())
}

func TestAnswerValue_MapsComparable(t *testing.T) {
	a := map[string]AnswerValue{"q1": IndexValue(1), "q2": TextValue("x")}
	b := map[string]AnswerValue{"q2": TextValue("x"), "q1": NumberValue(1)}
	assert.True(t, maps.Equal(a, b))

	b["q2"] = TextValue("y")
	assert.False(t, maps.Equal(a, b))
}
