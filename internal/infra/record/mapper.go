package record

import (
	"log/slog"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// The mapper converts one flat row into a typed value. For scalar targets the
// first column is converted directly; for struct targets each column is
// matched against a field by folded name (case-insensitive, underscores
// dropped, so legacy ORDER_NUMBER binds to OrderNumber). The field plan for a
// struct type is compiled once and cached.
//
// Mapping is deliberately lenient: a column with no matching field, or a value
// that cannot be converted, is logged and skipped rather than failing the
// read. Schema drift therefore degrades silently; the log line is the only
// signal.

var fieldPlans sync.Map // reflect.Type -> map[string]int

func planFor(t reflect.Type) map[string]int {
	if cached, ok := fieldPlans.Load(t); ok {
		return cached.(map[string]int)
	}

	plan := make(map[string]int, t.NumField())
	for i := range t.NumField() {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		plan[foldName(field.Name)] = i
	}
	fieldPlans.Store(t, plan)

	return plan
}

// foldName lowercases and strips underscores so that column and field names
// compare structurally.
func foldName(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), "_", "")
}

var (
	uuidType    = reflect.TypeOf(uuid.UUID{})
	decimalType = reflect.TypeOf(decimal.Decimal{})
	timeType    = reflect.TypeOf(time.Time{})
)

func isScalarTarget(t reflect.Type) bool {
	if t == uuidType || t == decimalType || t == timeType {
		return true
	}
	switch t.Kind() {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}

// mapRow populates dest (a pointer to the target value) from the row's columns
// and raw driver values.
func mapRow(logger *slog.Logger, columns []string, values []any, dest reflect.Value) error {
	target := dest.Elem()

	if isScalarTarget(target.Type()) {
		if len(values) == 0 || values[0] == nil {
			return nil // null maps to the zero value
		}
		converted, err := convertValue(values[0], target.Type())
		if err != nil {
			return errors.Wrapf(err, "convert column %s", columns[0])
		}
		target.Set(converted)

		return nil
	}

	if target.Kind() != reflect.Struct {
		return errors.Errorf("unsupported mapping target %s", target.Type())
	}

	plan := planFor(target.Type())
	for i, column := range columns {
		idx, ok := plan[foldName(column)]
		if !ok {
			logger.Warn("no field for column, skipping",
				slog.String("column", column),
				slog.String("target", target.Type().String()))

			continue
		}
		if values[i] == nil {
			continue
		}

		field := target.Field(idx)
		converted, err := convertValue(values[i], field.Type())
		if err != nil {
			logger.Warn("could not map column, skipping",
				slog.String("column", column),
				slog.String("target", target.Type().String()),
				slog.Any("error", err))

			continue
		}
		field.Set(converted)
	}

	return nil
}

// convertValue coerces one raw driver value into the target type. Identity
// columns arrive as 36-char text, booleans as integer or textual flags,
// decimals and timestamps as text; everything else goes through generic
// numeric coercion.
func convertValue(raw any, target reflect.Type) (reflect.Value, error) {
	if target.Kind() == reflect.Pointer {
		elem, err := convertValue(raw, target.Elem())
		if err != nil {
			return reflect.Value{}, err
		}
		// Empty identity text means the reference was never set.
		if target.Elem() == uuidType && elem.Interface().(uuid.UUID) == uuid.Nil {
			return reflect.Zero(target), nil
		}
		ptr := reflect.New(target.Elem())
		ptr.Elem().Set(elem)

		return ptr, nil
	}

	if b, ok := raw.([]byte); ok {
		raw = string(b)
	}

	switch target {
	case uuidType:
		return convertUUID(raw)
	case decimalType:
		return convertDecimal(raw)
	case timeType:
		return convertTime(raw)
	}

	switch target.Kind() {
	case reflect.Bool:
		flag, err := convertBool(raw)
		if err != nil {
			return reflect.Value{}, err
		}

		return reflect.ValueOf(flag), nil
	case reflect.String:
		s, ok := raw.(string)
		if !ok {
			return reflect.Value{}, errors.Errorf("cannot convert %T to %s", raw, target)
		}
		value := reflect.New(target).Elem()
		value.SetString(s)

		return value, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := convertInt(raw)
		if err != nil {
			return reflect.Value{}, err
		}
		value := reflect.New(target).Elem()
		value.SetInt(n)

		return value, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := convertInt(raw)
		if err != nil {
			return reflect.Value{}, err
		}
		if n < 0 {
			return reflect.Value{}, errors.Errorf("negative value %d for %s", n, target)
		}
		value := reflect.New(target).Elem()
		value.SetUint(uint64(n))

		return value, nil
	case reflect.Float32, reflect.Float64:
		f, err := convertFloat(raw)
		if err != nil {
			return reflect.Value{}, err
		}
		value := reflect.New(target).Elem()
		value.SetFloat(f)

		return value, nil
	default:
		rv := reflect.ValueOf(raw)
		if rv.Type().ConvertibleTo(target) {
			return rv.Convert(target), nil
		}

		return reflect.Value{}, errors.Errorf("cannot convert %T to %s", raw, target)
	}
}

func convertUUID(raw any) (reflect.Value, error) {
	s, ok := raw.(string)
	if !ok {
		return reflect.Value{}, errors.Errorf("cannot convert %T to uuid", raw)
	}
	if s == "" {
		return reflect.ValueOf(uuid.Nil), nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return reflect.Value{}, errors.Wrap(err, "parse identity column")
	}

	return reflect.ValueOf(id), nil
}

func convertDecimal(raw any) (reflect.Value, error) {
	switch v := raw.(type) {
	case string:
		d, err := decimal.NewFromString(v)
		if err != nil {
			return reflect.Value{}, errors.Wrap(err, "parse decimal column")
		}

		return reflect.ValueOf(d), nil
	case int64:
		return reflect.ValueOf(decimal.NewFromInt(v)), nil
	case float64:
		return reflect.ValueOf(decimal.NewFromFloat(v)), nil
	default:
		return reflect.Value{}, errors.Errorf("cannot convert %T to decimal", raw)
	}
}

var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func convertTime(raw any) (reflect.Value, error) {
	switch v := raw.(type) {
	case time.Time:
		return reflect.ValueOf(v), nil
	case string:
		for _, layout := range timeLayouts {
			if t, err := time.Parse(layout, v); err == nil {
				return reflect.ValueOf(t), nil
			}
		}

		return reflect.Value{}, errors.Errorf("unrecognized timestamp %q", v)
	case int64:
		return reflect.ValueOf(time.Unix(v, 0).UTC()), nil
	default:
		return reflect.Value{}, errors.Errorf("cannot convert %T to time", raw)
	}
}

// convertBool accepts integer 0/1 flags and the textual flags the legacy store
// uses: "0", "1", "true", "false", "Y", "N", case-insensitive.
func convertBool(raw any) (bool, error) {
	switch v := raw.(type) {
	case bool:
		return v, nil
	case int64:
		switch v {
		case 0:
			return false, nil
		case 1:
			return true, nil
		default:
			return false, errors.Errorf("integer flag out of range: %d", v)
		}
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "true", "y":
			return true, nil
		case "0", "false", "n":
			return false, nil
		default:
			return false, errors.Errorf("unrecognized flag %q", v)
		}
	default:
		return false, errors.Errorf("cannot convert %T to bool", raw)
	}
}

func convertInt(raw any) (int64, error) {
	switch v := raw.(type) {
	case int64:
		return v, nil
	case float64:
		return int64(v), nil
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return 0, errors.Wrapf(err, "parse integer %q", v)
		}

		return n, nil
	default:
		return 0, errors.Errorf("cannot convert %T to integer", raw)
	}
}

func convertFloat(raw any) (float64, error) {
	switch v := raw.(type) {
	case float64:
		return v, nil
	case int64:
		return float64(v), nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, errors.Wrapf(err, "parse float %q", v)
		}

		return f, nil
	default:
		return 0, errors.Errorf("cannot convert %T to float", raw)
	}
}
