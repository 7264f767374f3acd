package term

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"contactApp/internal/submit"

	"gopkg.in/yaml.v3"
)

// ParseValues читает YAML-отображение "поле: значение". Порядок ключей
// сохраняется; повторный ключ заменяет значение, позиция остаётся первой.
func ParseValues(r io.Reader) ([]submit.Field, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("parse fields: %w", err)
	}
	if len(doc.Content) == 0 {
		return nil, nil
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("parse fields: line %d: expected a mapping of field: value", root.Line)
	}

	p := submit.NewPayload(nil)
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, val := root.Content[i], root.Content[i+1]
		if val.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("parse fields: line %d: value of %q must be a scalar", val.Line, key.Value)
		}
		p.Set(key.Value, val.Value)
	}
	return payloadFields(p), nil
}

// ParseAssignments разбирает значения флагов вида name=value.
func ParseAssignments(args []string) ([]submit.Field, error) {
	p := submit.NewPayload(nil)
	for _, a := range args {
		name, value, ok := strings.Cut(a, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid field %q, want name=value", a)
		}
		p.Set(name, value)
	}
	return payloadFields(p), nil
}

// MergeValues — значения из later перекрывают earlier.
func MergeValues(earlier, later []submit.Field) map[string]string {
	out := make(map[string]string, len(earlier)+len(later))
	for _, f := range earlier {
		out[f.Name] = f.Value
	}
	for _, f := range later {
		out[f.Name] = f.Value
	}
	return out
}

// SpecsFor — DefaultFields плюс поля из values, которых там нет, в порядке появления.
func SpecsFor(values ...[]submit.Field) []FieldSpec {
	specs := append([]FieldSpec(nil), DefaultFields...)
	seen := make(map[string]bool, len(specs))
	for _, s := range specs {
		seen[s.Name] = true
	}
	for _, fields := range values {
		for _, f := range fields {
			if seen[f.Name] {
				continue
			}
			seen[f.Name] = true
			specs = append(specs, FieldSpec{Name: f.Name, Prompt: f.Name})
		}
	}
	return specs
}

func payloadFields(p submit.FormPayload) []submit.Field {
	out := make([]submit.Field, 0, p.Len())
	for _, k := range p.Keys() {
		v, _ := p.Get(k)
		out = append(out, submit.Field{Name: k, Value: v})
	}
	return out
}
