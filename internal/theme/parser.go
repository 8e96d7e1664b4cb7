package theme

import (
	"bufio"
	"fmt"
	"image/color"
	"io"
	"reflect"
	"strings"

	"github.com/example/drawpad/internal/palette"
)

// Parse reads a theme definition from an io.Reader.
// The format is a simple key-value pair per line: Key: #RRGGBB or #RRGGBBAA
func Parse(r io.Reader) (*Theme, error) {
	t := Default()
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//") {
			continue
		}
		parts := strings.SplitN(line, ":", 2)
		if len(parts) != 2 {
			continue
		}
		if err := t.Set(strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])); err != nil {
			return nil, err
		}
	}
	return t, scanner.Err()
}

var rgbaType = reflect.TypeOf(color.RGBA{})

// Set assigns a field by case-insensitive name. Unknown keys are ignored so
// older binaries accept newer theme files.
func (t *Theme) Set(key, value string) error {
	if strings.EqualFold(key, "Name") {
		t.Name = value
		return nil
	}
	val := reflect.ValueOf(t).Elem()
	field := val.FieldByNameFunc(func(name string) bool { return strings.EqualFold(name, key) })
	if !field.IsValid() || field.Type() != rgbaType {
		return nil
	}
	col, err := palette.ParseHex(value)
	if err != nil {
		return fmt.Errorf("invalid color for key %s: %w", key, err)
	}
	field.Set(reflect.ValueOf(palette.Premultiply(col)))
	return nil
}

// Fields returns the color fields in declaration order, for printing.
func (t *Theme) Fields() []Field {
	val := reflect.ValueOf(t).Elem()
	typ := val.Type()
	var out []Field
	for i := 0; i < typ.NumField(); i++ {
		if typ.Field(i).Type != rgbaType {
			continue
		}
		out = append(out, Field{Name: typ.Field(i).Name, Color: val.Field(i).Interface().(color.RGBA)})
	}
	return out
}

// Field is one named theme color.
type Field struct {
	Name  string
	Color color.RGBA
}
