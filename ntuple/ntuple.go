// Package ntuple provides random-access tabular datasets ("ntuples") backed
// either by ROOT files or by in-memory columns.
package ntuple

import (
	"fmt"
	"reflect"
)

// Column describes a column declared by a dataset.
type Column struct {
	Name     string
	Len      int  // number of elements per entry (1 for scalars)
	Variable bool // element count is given by another column
}

// Var names a column and the destination its value is read into.
// Value must be a non-nil pointer.
type Var struct {
	Name  string
	Value interface{}
}

// assign copies src into dst, converting between numeric kinds.
// Arrays and slices are copied element-wise up to the shorter length; a
// scalar written into an array fills its first element.
func assign(dst, src reflect.Value) error {
	for src.Kind() == reflect.Ptr || src.Kind() == reflect.Interface {
		src = src.Elem()
	}

	switch dst.Kind() {
	case reflect.Array, reflect.Slice:
		switch src.Kind() {
		case reflect.Array, reflect.Slice:
		default:
			if dst.Len() == 0 {
				return nil
			}
			return assign(dst.Index(0), src)
		}
		if dst.Kind() == reflect.Slice && dst.Len() < src.Len() && dst.CanSet() {
			dst.Set(reflect.MakeSlice(dst.Type(), src.Len(), src.Len()))
		}
		n := dst.Len()
		if src.Len() < n {
			n = src.Len()
		}
		for i := 0; i < n; i++ {
			if err := assign(dst.Index(i), src.Index(i)); err != nil {
				return err
			}
		}
		return nil
	}

	switch src.Kind() {
	case reflect.Array, reflect.Slice:
		if src.Len() == 0 {
			return nil
		}
		src = src.Index(0)
	}

	if !src.Type().ConvertibleTo(dst.Type()) {
		return fmt.Errorf("ntuple: cannot assign %v to %v", src.Type(), dst.Type())
	}
	dst.Set(src.Convert(dst.Type()))
	return nil
}

func assignVar(v Var, src reflect.Value) error {
	rv := reflect.ValueOf(v.Value)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fmt.Errorf("ntuple: variable %q: destination must be a non-nil pointer", v.Name)
	}
	if err := assign(rv.Elem(), src); err != nil {
		return fmt.Errorf("ntuple: variable %q: %w", v.Name, err)
	}
	return nil
}
