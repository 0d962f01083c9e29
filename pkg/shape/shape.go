// Package shape provides declarative descriptors for checking that a value
// has an expected structure. Checking never coerces or mutates the value.
package shape

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/zeebo/errs"
	"golang.org/x/exp/slices"
)

// ErrMismatch classifies values that do not match their declared shape.
var ErrMismatch = errs.Class("shape mismatch")

// Shape describes the expected structure of a value. Check reports nil when
// v matches.
type Shape interface {
	Check(v any) error
	String() string
}

func at(path string, err error) error {
	return ErrMismatch.Wrap(fmt.Errorf("%s: %w", path, err))
}

type anyShape struct{}

// Any matches every value, including nil.
func Any() Shape { return anyShape{} }

func (anyShape) Check(any) error { return nil }
func (anyShape) String() string  { return "any" }

type kindShape struct {
	name string
	ok   func(reflect.Kind) bool
}

func (s kindShape) Check(v any) error {
	if v == nil {
		return ErrMismatch.New("expected %s, got nil", s.name)
	}
	if !s.ok(reflect.TypeOf(v).Kind()) {
		return ErrMismatch.New("expected %s, got %T", s.name, v)
	}
	return nil
}

func (s kindShape) String() string { return s.name }

func Bool() Shape {
	return kindShape{"bool", func(k reflect.Kind) bool {
		return k == reflect.Bool
	}}
}

// Int matches any Go integer kind, signed or unsigned.
func Int() Shape {
	return kindShape{"int", func(k reflect.Kind) bool {
		return (k >= reflect.Int && k <= reflect.Int64) ||
			(k >= reflect.Uint && k <= reflect.Uint64)
	}}
}

func Float() Shape {
	return kindShape{"float", func(k reflect.Kind) bool {
		return k == reflect.Float32 || k == reflect.Float64
	}}
}

// Number matches any integer or float kind. Decoded JSON carries numbers as
// float64, so document shapes usually want Number rather than Int.
func Number() Shape {
	return kindShape{"number", func(k reflect.Kind) bool {
		return (k >= reflect.Int && k <= reflect.Uint64) ||
			k == reflect.Float32 || k == reflect.Float64
	}}
}

func String() Shape {
	return kindShape{"string", func(k reflect.Kind) bool {
		return k == reflect.String
	}}
}

type sliceShape struct {
	elem Shape
}

// Slice matches slices and arrays whose every element matches elem.
func Slice(elem Shape) Shape { return sliceShape{elem} }

func (s sliceShape) Check(v any) error {
	if v == nil {
		return ErrMismatch.New("expected %s, got nil", s)
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return ErrMismatch.New("expected %s, got %T", s, v)
	}

	for i := 0; i < rv.Len(); i++ {
		if err := s.elem.Check(rv.Index(i).Interface()); err != nil {
			return at(fmt.Sprintf("[%d]", i), err)
		}
	}

	return nil
}

func (s sliceShape) String() string { return "[]" + s.elem.String() }

type mapShape struct {
	val Shape
}

// MapOf matches maps with string keys whose every value matches val.
func MapOf(val Shape) Shape { return mapShape{val} }

func (s mapShape) Check(v any) error {
	rv, err := stringKeyedMap(v, s)
	if err != nil {
		return err
	}

	for _, key := range rv.MapKeys() {
		if err := s.val.Check(rv.MapIndex(key).Interface()); err != nil {
			return at(key.String(), err)
		}
	}

	return nil
}

func (s mapShape) String() string { return "map[string]" + s.val.String() }

type optionalShape struct {
	inner Shape
}

// Optional allows nil in addition to whatever inner accepts. Non-nil
// pointers are dereferenced before the inner check. Inside a Record, an
// Optional field may also be absent.
func Optional(inner Shape) Shape { return optionalShape{inner} }

func (s optionalShape) Check(v any) error {
	if v == nil {
		return nil
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil
		}
		v = rv.Elem().Interface()
	}

	return s.inner.Check(v)
}

func (s optionalShape) String() string { return s.inner.String() + "?" }

type recordShape struct {
	fields map[string]Shape
}

// Record matches string-keyed maps, such as a decoded JSON document. Every
// non-Optional field must be present; unknown keys are ignored.
func Record(fields map[string]Shape) Shape { return recordShape{fields} }

func (s recordShape) Check(v any) error {
	rv, err := stringKeyedMap(v, s)
	if err != nil {
		return err
	}

	var missing []string
	for name, fs := range s.fields {
		fv := rv.MapIndex(reflect.ValueOf(name).Convert(rv.Type().Key()))
		if !fv.IsValid() {
			if _, opt := fs.(optionalShape); !opt {
				missing = append(missing, name)
			}
			continue
		}

		if err := fs.Check(fv.Interface()); err != nil {
			return at(name, err)
		}
	}

	if len(missing) > 0 {
		slices.Sort(missing)
		return ErrMismatch.New("missing required fields: %s", strings.Join(missing, ", "))
	}

	return nil
}

func (s recordShape) String() string { return describeFields("record", s.fields) }

type structShape struct {
	fields map[string]Shape
}

// Struct matches struct values (or pointers to them) whose exported fields,
// looked up by name, match the declared shapes.
func Struct(fields map[string]Shape) Shape { return structShape{fields} }

func (s structShape) Check(v any) error {
	if v == nil {
		return ErrMismatch.New("expected %s, got nil", s)
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return ErrMismatch.New("expected %s, got nil", s)
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return ErrMismatch.New("expected %s, got %T", s, v)
	}

	var missing []string
	for name, fs := range s.fields {
		fv := rv.FieldByName(name)
		if !fv.IsValid() || !fv.CanInterface() {
			missing = append(missing, name)
			continue
		}

		if err := fs.Check(fv.Interface()); err != nil {
			return at(name, err)
		}
	}

	if len(missing) > 0 {
		slices.Sort(missing)
		return ErrMismatch.New("%s is missing fields: %s", rv.Type(), strings.Join(missing, ", "))
	}

	return nil
}

func (s structShape) String() string { return describeFields("struct", s.fields) }

func stringKeyedMap(v any, s Shape) (reflect.Value, error) {
	if v == nil {
		return reflect.Value{}, ErrMismatch.New("expected %s, got nil", s)
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return reflect.Value{}, ErrMismatch.New("expected %s, got %T", s, v)
	}

	return rv, nil
}

func describeFields(prefix string, fields map[string]Shape) string {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	slices.Sort(names)

	var b strings.Builder
	b.WriteString(prefix)
	b.WriteByte('{')
	for i, name := range names {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s: %s", name, fields[name])
	}
	b.WriteByte('}')

	return b.String()
}
