package ctl

import (
	"fmt"
	"reflect"
	"strings"
)

// ----------------------------------------------------------------------------
// AST text dump (SPEC_FULL.md §4, "-a" flag)
//
// Dump renders the Program as an indented tree of node kinds and field
// values, in the same spirit as the Python original's `str(ast)` debugging
// aid. It is not a serialization format: no round-trip guarantee, just a
// human-readable tree naming each node's Go type the way the 06 - Assembler
// project's main.go names instructions with reflect.TypeOf(...).Name().
func Dump(p *Program) string {
	var b strings.Builder
	b.WriteString("Program\n")
	for _, stmt := range p.Statements {
		dumpValue(&b, reflect.ValueOf(stmt), 1)
	}
	return b.String()
}

func dumpValue(b *strings.Builder, v reflect.Value, indent int) {
	for v.Kind() == reflect.Ptr || v.Kind() == reflect.Interface {
		if v.IsNil() {
			fmt.Fprintf(b, "%s<nil>\n", indentStr(indent))
			return
		}
		v = v.Elem()
	}

	switch v.Kind() {
	case reflect.Struct:
		fmt.Fprintf(b, "%s%s\n", indentStr(indent), v.Type().Name())
		t := v.Type()
		for i := 0; i < v.NumField(); i++ {
			field := t.Field(i)
			if !field.IsExported() {
				continue
			}
			fv := v.Field(i)
			if isLeafKind(fv.Kind()) {
				fmt.Fprintf(b, "%s%s: %v\n", indentStr(indent+1), field.Name, fv.Interface())
				continue
			}
			fmt.Fprintf(b, "%s%s:\n", indentStr(indent+1), field.Name)
			dumpValue(b, fv, indent+2)
		}
	case reflect.Slice, reflect.Array:
		if v.Len() == 0 {
			fmt.Fprintf(b, "%s(empty)\n", indentStr(indent))
			return
		}
		for i := 0; i < v.Len(); i++ {
			dumpValue(b, v.Index(i), indent)
		}
	default:
		if v.IsValid() {
			fmt.Fprintf(b, "%s%v\n", indentStr(indent), v.Interface())
		} else {
			fmt.Fprintf(b, "%s<nil>\n", indentStr(indent))
		}
	}
}

func isLeafKind(k reflect.Kind) bool {
	switch k {
	case reflect.String, reflect.Bool, reflect.Int, reflect.Int8, reflect.Int16,
		reflect.Int32, reflect.Int64, reflect.Uint, reflect.Uint8, reflect.Uint16,
		reflect.Uint32, reflect.Uint64, reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}
