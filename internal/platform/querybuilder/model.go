package querybuilder

import (
	"fmt"
	"reflect"
	"slices"
	"strings"
)

// InsertModel builds a single-row insert from the db tags of model.
func InsertModel(table string, model any, suffix string) (string, []any, error) {
	cols, vals, err := columnsAndValuesFromModel(model)
	if err != nil {
		return "", nil, err
	}
	return InsertInto(table).
		Columns(cols...).
		Values(vals...).
		Suffix(suffix).
		ToSQL()
}

// InsertModels builds one multi-row insert from a non-empty slice of same-typed row models.
func InsertModels[T any](table string, models []T, suffix string) (string, []any, error) {
	if len(models) == 0 {
		return "", nil, fmt.Errorf("insert %s: no rows", table)
	}

	builder := InsertInto(table).Suffix(suffix)
	var columns []string
	for i, model := range models {
		cols, vals, err := columnsAndValuesFromModel(model)
		if err != nil {
			return "", nil, fmt.Errorf("row %d: %w", i, err)
		}
		if columns == nil {
			columns = cols
			builder.Columns(cols...)
		} else if !slices.Equal(columns, cols) {
			return "", nil, fmt.Errorf("row %d columns differ from first row", i)
		}
		builder.Values(vals...)
	}
	return builder.ToSQL()
}

// Columns lists the db column names of a row model, in field order.
func Columns(model any) []string {
	cols, _, err := columnsAndValuesFromModel(model)
	if err != nil {
		return nil
	}
	return cols
}

func columnsAndValuesFromModel(model any) ([]string, []any, error) {
	value := reflect.ValueOf(model)
	for value.Kind() == reflect.Pointer {
		if value.IsNil() {
			return nil, nil, fmt.Errorf("model cannot be nil")
		}
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return nil, nil, fmt.Errorf("model must be struct")
	}

	cols := make([]string, 0, value.NumField())
	vals := make([]any, 0, value.NumField())
	cols, vals = appendModelFields(value, cols, vals)

	if len(cols) == 0 {
		return nil, nil, fmt.Errorf("model has no db columns")
	}
	return cols, vals, nil
}

// appendModelFields walks tagged fields in order. Untagged embedded structs are flattened.
func appendModelFields(value reflect.Value, cols []string, vals []any) ([]string, []any) {
	typ := value.Type()
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		tag := strings.TrimSpace(strings.Split(field.Tag.Get("db"), ",")[0])
		if field.Anonymous && tag == "" && field.Type.Kind() == reflect.Struct {
			cols, vals = appendModelFields(value.Field(i), cols, vals)
			continue
		}
		if field.PkgPath != "" || tag == "" || tag == "-" {
			continue
		}
		cols = append(cols, tag)
		vals = append(vals, value.Field(i).Interface())
	}
	return cols, vals
}
