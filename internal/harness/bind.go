package harness

import (
	"context"
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// tag is a parsed `probe:"..."` struct tag, for example
// `probe:"label=sum,bits=4,recursive"`.
type tag struct {
	ref    Ref
	tunnel bool
	kind   MemoryKind
	hasMem bool
}

func parseTag(field reflect.StructField, raw string) (tag, error) {
	t := tag{ref: Ref{Label: field.Name}}
	if raw == "" {
		return t, nil
	}
	for _, part := range strings.Split(raw, ",") {
		key, value, hasValue := strings.Cut(strings.TrimSpace(part), "=")
		switch key {
		case "label":
			t.ref.Label = value
		case "bits":
			n, err := strconv.Atoi(value)
			if err != nil || n <= 0 {
				return t, fmt.Errorf("field %s: bits must be a positive integer, got %q", field.Name, value)
			}
			t.ref.Bits = n
		case "recursive":
			t.ref.Recursive = true
		case "only":
			t.ref.Only = true
		case "tunnel":
			t.tunnel = true
		case "ram", "rom":
			t.hasMem = true
			t.kind = RAM
			if key == "rom" {
				t.kind = ROM
			}
		default:
			return t, fmt.Errorf("field %s: unknown probe option %q", field.Name, key)
		}
		if hasValue && key != "label" && key != "bits" {
			return t, fmt.Errorf("field %s: probe option %q takes no value", field.Name, key)
		}
	}
	if t.tunnel && t.ref.Bits == 0 {
		return t, fmt.Errorf("field %s: tunnel needs a bits option", field.Name)
	}
	return t, nil
}

var (
	inputPinType     = reflect.TypeOf((*InputPin)(nil))
	outputPinType    = reflect.TypeOf((*OutputPin)(nil))
	registerType     = reflect.TypeOf((*Register)(nil))
	mockRegisterType = reflect.TypeOf((*MockRegister)(nil))
	memoryType       = reflect.TypeOf((*Memory)(nil))
	clockType        = reflect.TypeOf((*Clock)(nil))
	buttonType       = reflect.TypeOf((*Button)(nil))
)

// Bind fills every field of the struct fixture points to that carries a
// probe tag. The label defaults to the field name. Fields are bound in
// declaration order and binding stops at the first failure.
func Bind(ctx context.Context, s *Subcircuit, fixture any) error {
	v := reflect.ValueOf(fixture)
	if v.Kind() != reflect.Pointer || v.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("bind: fixture must be a pointer to a struct, got %T", fixture)
	}
	v = v.Elem()
	typ := v.Type()
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		raw, ok := field.Tag.Lookup("probe")
		if !ok {
			continue
		}
		if !field.IsExported() {
			return fmt.Errorf("bind: field %s is tagged but not exported", field.Name)
		}
		t, err := parseTag(field, raw)
		if err != nil {
			return fmt.Errorf("bind: %w", err)
		}
		bound, err := s.bindField(ctx, field, t)
		if err != nil {
			return fmt.Errorf("bind %s: %w", field.Name, err)
		}
		v.Field(i).Set(reflect.ValueOf(bound))
	}
	return nil
}

func (s *Subcircuit) bindField(ctx context.Context, field reflect.StructField, t tag) (any, error) {
	if t.hasMem && field.Type != memoryType {
		return nil, fmt.Errorf("ram and rom apply only to *Memory fields")
	}
	if t.tunnel && field.Type != outputPinType {
		return nil, fmt.Errorf("tunnel applies only to *OutputPin fields")
	}
	switch field.Type {
	case inputPinType:
		return s.InputPin(ctx, t.ref)
	case outputPinType:
		if t.tunnel {
			return s.SnitchTunnel(ctx, t.ref.Label, t.ref.Bits)
		}
		return s.OutputPin(ctx, t.ref)
	case registerType:
		return s.Register(ctx, t.ref)
	case mockRegisterType:
		return s.MockRegister(ctx, t.ref)
	case memoryType:
		if !t.hasMem {
			return nil, fmt.Errorf("memory fields need a ram or rom option")
		}
		return s.Memory(ctx, t.ref, t.kind)
	case clockType:
		return s.Clock(ctx, t.ref)
	case buttonType:
		return s.Button(ctx, t.ref)
	default:
		return nil, fmt.Errorf("unsupported field type %s", field.Type)
	}
}
