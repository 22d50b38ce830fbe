package record

import (
	"reflect"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// timeFormat is the textual timestamp form used in the store.
const timeFormat = time.RFC3339Nano

// bindArgs turns a parameter bag into positional arguments. The bag is a
// struct (or pointer to one) whose exported fields are bound in declaration
// order, so the field order must match the placeholder order of the statement.
// A nil bag binds no parameters.
func bindArgs(bag any) ([]any, error) {
	if bag == nil {
		return nil, nil
	}

	v := reflect.ValueOf(bag)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return nil, nil
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil, errors.Errorf("parameter bag must be a struct, got %T", bag)
	}

	t := v.Type()
	args := make([]any, 0, t.NumField())
	for i := range t.NumField() {
		if !t.Field(i).IsExported() {
			continue
		}
		args = append(args, bindValue(v.Field(i)))
	}

	return args, nil
}

// bindValue converts one field into the store's primitive form: identities to
// their 36-char text, decimals to text, timestamps to UTC text, booleans to
// 0/1 integer flags, named string types to plain text. Nil pointers bind NULL.
func bindValue(v reflect.Value) any {
	if v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}

	switch value := v.Interface().(type) {
	case uuid.UUID:
		return value.String()
	case decimal.Decimal:
		return value.String()
	case time.Time:
		return value.UTC().Format(timeFormat)
	}

	switch v.Kind() {
	case reflect.Bool:
		if v.Bool() {
			return int64(1)
		}

		return int64(0)
	case reflect.String:
		return v.String()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return int64(v.Uint())
	case reflect.Float32, reflect.Float64:
		return v.Float()
	default:
		return v.Interface()
	}
}
