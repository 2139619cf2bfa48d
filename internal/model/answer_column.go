package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/lshigami/testportal/internal/grading"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// AnswerColumn stores a single AnswerValue as JSON. SQLite gives JSON
// columns numeric affinity, so scalar answers come back as int64 or float64
// there and the column is declared TEXT instead.
type AnswerColumn struct {
	grading.AnswerValue
}

func NewAnswerColumn(v grading.AnswerValue) AnswerColumn {
	return AnswerColumn{AnswerValue: v}
}

func (AnswerColumn) GormDataType() string {
	return "json"
}

func (AnswerColumn) GormDBDataType(db *gorm.DB, _ *schema.Field) string {
	switch db.Dialector.Name() {
	case "postgres":
		return "JSONB"
	case "mysql":
		return "JSON"
	default:
		return "TEXT"
	}
}

func (a AnswerColumn) Value() (driver.Value, error) {
	b, err := json.Marshal(a.AnswerValue)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (a *AnswerColumn) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		a.AnswerValue = grading.NoAnswer
	case []byte:
		return json.Unmarshal(v, &a.AnswerValue)
	case string:
		return json.Unmarshal([]byte(v), &a.AnswerValue)
	case int64:
		a.AnswerValue = grading.NumberValue(float64(v))
	case float64:
		a.AnswerValue = grading.NumberValue(v)
	default:
		return fmt.Errorf("answer column: unsupported type %T", src)
	}
	return nil
}
