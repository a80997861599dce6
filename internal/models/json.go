package models

import (
	"database/sql/driver"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// JSONColumn stores a typed value as a JSON document column.
type JSONColumn[T any] struct {
	datatypes.JSONType[T]
}

// NewJSONColumn wraps v for storage.
func NewJSONColumn[T any](v T) JSONColumn[T] {
	return JSONColumn[T]{datatypes.NewJSONType(v)}
}

// Value promotes the embedded JSONType's Value method
func (j JSONColumn[T]) Value() (driver.Value, error) {
	return j.JSONType.Value()
}

// Scan promotes the embedded JSONType's Scan method
func (j *JSONColumn[T]) Scan(value interface{}) error {
	return j.JSONType.Scan(value)
}

// GormDBDataType ensures the correct data type is used for each database driver.
// MSSQL does not support the 'json' data type.
func (JSONColumn[T]) GormDBDataType(db *gorm.DB, field *schema.Field) string {
	switch db.Dialector.Name() {
	case "mysql":
		return "JSON"
	case "postgres":
		return "JSONB"
	case "sqlserver", "mssql":
		return "NVARCHAR(MAX)"
	case "sqlite":
		return "JSON"
	}
	return "TEXT"
}
