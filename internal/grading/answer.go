package grading

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ValueKind tells which variant an AnswerValue holds.
type ValueKind uint8

const (
	KindNone ValueKind = iota
	KindNumber
	KindText
)

// AnswerValue is either a number (option index, 0/1 for true-false, or a
// numeric answer) or a string. The zero value means "no answer".
//
// It is comparable with ==, which makes answer maps comparable with
// maps.Equal.
type AnswerValue struct {
	kind   ValueKind
	number float64
	text   string
}

// NoAnswer is the absent value.
var NoAnswer = AnswerValue{}

func NumberValue(v float64) AnswerValue { return AnswerValue{kind: KindNumber, number: v} }

func IndexValue(i int) AnswerValue { return AnswerValue{kind: KindNumber, number: float64(i)} }

func TextValue(s string) AnswerValue { return AnswerValue{kind: KindText, text: s} }

func (v AnswerValue) Kind() ValueKind { return v.kind }

func (v AnswerValue) IsZero() bool { return v.kind == KindNone }

// Index returns the value as an option index. Only integral numbers within
// the int32 range qualify; strings never do, even "1".
func (v AnswerValue) Index() (int, bool) {
	if v.kind != KindNumber || v.number != math.Trunc(v.number) {
		return 0, false
	}
	if v.number > math.MaxInt32 || v.number < math.MinInt32 {
		return 0, false
	}
	return int(v.number), true
}

func (v AnswerValue) Text() (string, bool) {
	if v.kind != KindText {
		return "", false
	}
	return v.text, true
}

// Float parses the value as a finite floating point number. Strings are
// trimmed first.
func (v AnswerValue) Float() (float64, bool) {
	switch v.kind {
	case KindNumber:
		return v.number, true
	case KindText:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.text), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

func (v AnswerValue) String() string {
	switch v.kind {
	case KindNumber:
		return strconv.FormatFloat(v.number, 'f', -1, 64)
	case KindText:
		return v.text
	default:
		return ""
	}
}

func (v AnswerValue) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindNumber:
		return json.Marshal(v.number)
	case KindText:
		return json.Marshal(v.text)
	default:
		return []byte("null"), nil
	}
}

func (v *AnswerValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*v = NoAnswer
		return nil
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = TextValue(s)
	default:
		var f float64
		if err := json.Unmarshal(data, &f); err != nil {
			return fmt.Errorf("answer must be a number or a string: %w", err)
		}
		*v = NumberValue(f)
	}
	return nil
}
