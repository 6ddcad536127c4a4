package config

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
)

// envOverride walks a config struct and replaces every field whose env
// variable is set. Errors name the field by its YAML path so they match what
// an operator sees in config.yaml.
type envOverride struct {
	lookup  func(string) (string, bool)
	applied []string
}

// applyEnv overrides cfg from the process environment and returns the names of
// the variables that took effect, in field order.
func applyEnv(cfg any) ([]string, error) {
	o := &envOverride{lookup: os.LookupEnv}
	if err := o.walk(reflect.ValueOf(cfg), ""); err != nil {
		return nil, err
	}
	return o.applied, nil
}

func (o *envOverride) walk(val reflect.Value, path string) error {
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}
	if val.Kind() != reflect.Struct {
		return nil
	}

	typ := val.Type()
	for i := 0; i < val.NumField(); i++ {
		field, meta := val.Field(i), typ.Field(i)
		fieldPath := joinPath(path, meta)

		if field.Kind() == reflect.Struct {
			if err := o.walk(field.Addr(), fieldPath); err != nil {
				return err
			}
			continue
		}

		name := meta.Tag.Get("env")
		if name == "" {
			continue
		}
		raw, ok := o.lookup(name)
		if !ok {
			continue
		}
		if err := assign(field, raw); err != nil {
			return fmt.Errorf("%s (from %s): %w", fieldPath, name, err)
		}
		o.applied = append(o.applied, name)
	}
	return nil
}

// joinPath extends a dotted YAML path with the field's yaml name.
func joinPath(path string, f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("yaml"), ",")
	if name == "" || name == "-" {
		name = strings.ToLower(f.Name)
	}
	if path == "" {
		return name
	}
	return path + "." + name
}

// assign parses raw into field according to its kind.
func assign(field reflect.Value, raw string) error {
	if !field.CanSet() {
		return fmt.Errorf("field cannot be set")
	}

	switch field.Kind() {
	case reflect.String:
		field.SetString(raw)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, field.Type().Bits())
		if err != nil {
			return fmt.Errorf("invalid integer %q", raw)
		}
		field.SetInt(n)
	case reflect.Bool:
		b, err := strconv.ParseBool(strings.TrimSpace(raw))
		if err != nil {
			return fmt.Errorf("invalid boolean %q", raw)
		}
		field.SetBool(b)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(strings.TrimSpace(raw), field.Type().Bits())
		if err != nil {
			return fmt.Errorf("invalid float %q", raw)
		}
		field.SetFloat(f)
	case reflect.Slice:
		if field.Type().Elem().Kind() != reflect.String {
			return fmt.Errorf("unsupported slice element type %s", field.Type().Elem().Kind())
		}
		field.Set(reflect.ValueOf(splitList(raw)))
	default:
		return fmt.Errorf("unsupported field type %s", field.Kind())
	}
	return nil
}

// splitList reads a comma separated list, dropping blank entries.
func splitList(raw string) []string {
	items := make([]string, 0)
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			items = append(items, part)
		}
	}
	return items
}
