// Package gosrc emits a Go rendition of the scanned constants: one integer
// type per prefix group with typed consts, FromCode lookup functions, and an
// EventCode pairing type with typed accessors per event family.
package gosrc

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"text/template"

	"evgen/internal/codegen/common"
	"evgen/internal/codegen/meta"
)

const fileTemplate = `// Code generated by evgen. DO NOT EDIT.

package evcodes
{{range .Enums}}{{$e := .}}
type {{.TypeName}} uint32

const (
{{- range .Variants}}
	{{.Name}} {{$e.TypeName}} = {{.Value}}
{{- end}}
)
{{- if .Aliases}}

const (
{{- range .Aliases}}
	{{.Name}} {{$e.TypeName}} = {{.Canonical}}
{{- end}}
)
{{- end}}

// {{.FnName}} resolves a raw code to a named {{.TypeName}} value.
func {{.FnName}}(code uint32) ({{.TypeName}}, bool) {
	switch {
{{- range .Arms}}
	case {{.Cond}}:
		return {{.Variant}}, true
{{- end}}
	}
	return 0, false
}
{{end}}
{{- with .Tagged}}
// EventCode pairs an event type with its raw code. Codes of families
// without a typed representation stay accessible through the raw fields.
type EventCode struct {
	Type EventType
	Code uint32
}
{{range .Accessors}}
// {{.Method}} returns the typed code when Type is {{.Variant}}.
func (c EventCode) {{.Method}}() ({{.PayloadType}}, bool) {
	if c.Type != {{.Variant}} {
		return 0, false
	}
	return {{.FnName}}(c.Code)
}
{{end}}
{{- end}}`

type enumView struct {
	TypeName string
	FnName   string
	Variants []variantView
	Aliases  []meta.Alias
	Arms     []armView
}

type variantView struct {
	Name  string
	Value string
}

type armView struct {
	Cond    string
	Variant string
}

type accessorView struct {
	Method      string
	Variant     string
	PayloadType string
	FnName      string
}

type taggedView struct {
	Accessors []accessorView
}

type fileView struct {
	Enums  []enumView
	Tagged *taggedView
}

func typeName(neutral string) string {
	if neutral == "EventType" {
		return "EventType"
	}
	return common.ToPascalCase(neutral)
}

// Generate serializes the metadata as Go source.
func Generate(logger *slog.Logger, w io.Writer, md *meta.Metadata) error {
	view := fileView{}
	for _, e := range md.Enums {
		tn := typeName(e.Name)
		ev := enumView{
			TypeName: tn,
			FnName:   tn + "FromCode",
			Aliases:  e.Aliases,
		}
		// The sentinel carries no discriminant in the IR; it takes the
		// value after the preceding variant, like an implicit Rust arm.
		prev := int64(-1)
		for _, v := range e.Variants {
			val := v.Value
			if v.Implicit {
				val = uint64(prev + 1)
			}
			ev.Variants = append(ev.Variants, variantView{
				Name:  v.Name,
				Value: strconv.FormatUint(val, 10),
			})
			prev = int64(val)
		}
		for _, arm := range e.Convert.Arms {
			ev.Arms = append(ev.Arms, armView{Cond: armCond(arm), Variant: arm.Variant})
		}
		view.Enums = append(view.Enums, ev)
	}

	if md.Tagged != nil {
		tv := &taggedView{}
		for _, v := range md.Tagged.Variants {
			if v.Payload == "" {
				continue
			}
			pt := typeName(v.Payload)
			tv.Accessors = append(tv.Accessors, accessorView{
				Method:      common.ToPascalCase(trimEventPrefix(v.Name)),
				Variant:     v.Name,
				PayloadType: pt,
				FnName:      pt + "FromCode",
			})
		}
		view.Tagged = tv
	}

	tmpl := template.Must(template.New("gosrc").Parse(fileTemplate))
	if err := tmpl.Execute(w, view); err != nil {
		return fmt.Errorf("executing template: %w", err)
	}

	logger.Debug("Generated Go bindings", "enums", len(view.Enums))
	return nil
}

func armCond(a meta.Arm) string {
	if a.Range {
		return fmt.Sprintf("code >= %d && code <= %d", a.Lo, a.Hi)
	}
	return fmt.Sprintf("code == %d", a.Lo)
}

func trimEventPrefix(name string) string {
	const p = "EV_"
	if len(name) > len(p) && name[:len(p)] == p {
		return name[len(p):]
	}
	return name
}
