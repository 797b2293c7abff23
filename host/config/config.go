// Package config loads usbled settings with precedence
// CLI flags > environment (USBLED_*) > TOML file > flag defaults.
package config

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"unicode"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// EnvPrefix is prepended to every env tag
const EnvPrefix = "USBLED_"

// BindFlags registers one flag per exported field of opts using the
// `help`, `short` and `default` struct tags. Defaults are written into opts.
func BindFlags(fs *pflag.FlagSet, opts any) error {
	v := reflect.ValueOf(opts).Elem()
	t := v.Type()

	for i := 0; i < v.NumField(); i++ {
		fieldType := t.Field(i)
		if !fieldType.IsExported() {
			continue
		}
		field := v.Field(i)
		name := fieldNameToFlag(fieldType.Name)
		help := fieldType.Tag.Get("help")
		short := fieldType.Tag.Get("short")
		def := fieldType.Tag.Get("default")

		switch field.Kind() {
		case reflect.String:
			fs.StringVarP(field.Addr().Interface().(*string), name, short, def, help)
		case reflect.Bool:
			b := false
			if def != "" {
				parsed, err := strconv.ParseBool(def)
				if err != nil {
					return fmt.Errorf("bad default for %s: %w", fieldType.Name, err)
				}
				b = parsed
			}
			fs.BoolVarP(field.Addr().Interface().(*bool), name, short, b, help)
		case reflect.Int:
			n := 0
			if def != "" {
				parsed, err := strconv.Atoi(def)
				if err != nil {
					return fmt.Errorf("bad default for %s: %w", fieldType.Name, err)
				}
				n = parsed
			}
			fs.IntVarP(field.Addr().Interface().(*int), name, short, n, help)
		case reflect.Slice:
			if field.Type().Elem().Kind() != reflect.String {
				return fmt.Errorf("unsupported slice field %s", fieldType.Name)
			}
			var items []string
			if def != "" {
				items = splitList(def)
			}
			fs.StringSliceVarP(field.Addr().Interface().(*[]string), name, short, items, help)
		default:
			return fmt.Errorf("unsupported field type %s for %s", field.Kind(), fieldType.Name)
		}
	}
	return nil
}

// LoadConfig loads configuration with proper precedence: CLI args > env vars > config file.
// If cmd is provided, flags explicitly set via CLI will not be overwritten.
func LoadConfig(opts any, cmd *cobra.Command) error {
	v := reflect.ValueOf(opts).Elem()
	t := v.Type()

	changedFlags := make(map[string]bool)
	if cmd != nil {
		cmd.Flags().VisitAll(func(f *pflag.Flag) {
			if f.Changed {
				changedFlags[f.Name] = true
			}
		})
	}

	var configPath string
	if f := v.FieldByName("Config"); f.IsValid() && f.Kind() == reflect.String {
		configPath = f.String()
	}

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		switch {
		case err == nil:
			var config map[string]any
			if err := toml.Unmarshal(data, &config); err != nil {
				return fmt.Errorf("failed to parse TOML config %s: %w", configPath, err)
			}
			for i := 0; i < v.NumField(); i++ {
				fieldType := t.Field(i)
				if changedFlags[fieldNameToFlag(fieldType.Name)] {
					continue
				}
				if tomlPath := fieldType.Tag.Get("toml"); tomlPath != "" {
					if value := getNestedValue(config, tomlPath); value != nil {
						if err := setFieldValue(v.Field(i), value); err != nil {
							return fmt.Errorf("%s: %w", tomlPath, err)
						}
					}
				}
			}
		case os.IsNotExist(err):
			// A missing file is fine; flags and env still apply
		default:
			return fmt.Errorf("failed to read config %s: %w", configPath, err)
		}
	}

	for i := 0; i < v.NumField(); i++ {
		fieldType := t.Field(i)
		if changedFlags[fieldNameToFlag(fieldType.Name)] {
			continue
		}
		if envKey := fieldType.Tag.Get("env"); envKey != "" {
			if envValue := os.Getenv(EnvPrefix + envKey); envValue != "" {
				if err := setFieldValueFromString(v.Field(i), envValue); err != nil {
					return fmt.Errorf("%s%s: %w", EnvPrefix, envKey, err)
				}
			}
		}
	}

	return nil
}

// fieldNameToFlag converts a struct field name to a CLI flag name.
// Example: "ProbeTimeout" -> "probe-timeout", "VendorID" -> "vendor-id".
func fieldNameToFlag(fieldName string) string {
	var result []rune
	var prev rune
	for i, r := range fieldName {
		if i > 0 && unicode.IsUpper(r) && !unicode.IsUpper(prev) {
			result = append(result, '-')
		}
		result = append(result, unicode.ToLower(r))
		prev = r
	}
	return string(result)
}

// getNestedValue retrieves a value from nested map using dot notation.
func getNestedValue(data map[string]any, path string) any {
	parts := strings.Split(path, ".")
	current := data

	for i, part := range parts {
		if i == len(parts)-1 {
			return current[part]
		}
		next, ok := current[part].(map[string]any)
		if !ok {
			return nil
		}
		current = next
	}
	return nil
}

// setFieldValue sets a field from a decoded TOML value.
func setFieldValue(field reflect.Value, value any) error {
	if !field.CanSet() {
		return nil
	}

	switch field.Kind() {
	case reflect.String:
		switch s := value.(type) {
		case string:
			field.SetString(s)
		case int64:
			field.SetString(strconv.FormatInt(s, 10))
		default:
			return fmt.Errorf("expected string, got %T", value)
		}
	case reflect.Bool:
		b, ok := value.(bool)
		if !ok {
			return fmt.Errorf("expected bool, got %T", value)
		}
		field.SetBool(b)
	case reflect.Int:
		i, ok := value.(int64)
		if !ok {
			return fmt.Errorf("expected integer, got %T", value)
		}
		field.SetInt(i)
	case reflect.Slice:
		arr, ok := value.([]any)
		if !ok {
			return fmt.Errorf("expected array, got %T", value)
		}
		slice := make([]string, 0, len(arr))
		for _, item := range arr {
			s, ok := item.(string)
			if !ok {
				return fmt.Errorf("expected array of strings, got %T", item)
			}
			slice = append(slice, s)
		}
		field.Set(reflect.ValueOf(slice))
	}
	return nil
}

// setFieldValueFromString sets a field value from string (for env vars).
func setFieldValueFromString(field reflect.Value, value string) error {
	if !field.CanSet() {
		return nil
	}

	switch field.Kind() {
	case reflect.String:
		field.SetString(value)
	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return err
		}
		field.SetBool(b)
	case reflect.Int:
		i, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return err
		}
		field.SetInt(i)
	case reflect.Slice:
		field.Set(reflect.ValueOf(splitList(value)))
	}
	return nil
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			items = append(items, part)
		}
	}
	return items
}
