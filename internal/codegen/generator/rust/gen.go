// Package rust emits the Rust rendition of the scanned constants: one enum
// per prefix group, an integer conversion function per enum, and the tagged
// EventCode type.
package rust

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"text/template"

	"evgen/internal/codegen/meta"
)

const fileTemplate = `/* THIS FILE IS GENERATED, DO NOT EDIT */

#[cfg(feature = "with-serde")]
use serde::{Deserialize, Serialize};
{{range .Enums}}
#[allow(non_camel_case_types)]
#[derive(Copy, Clone, PartialEq)]
#[cfg_attr(feature = "with-serde", derive(Serialize, Deserialize))]
pub enum {{.Name}} {
{{- range .Variants}}
    {{.Name}}{{if .Value}} = {{.Value}}{{end}},
{{- end}}
}
{{- range .Aliases}}
pub const {{.Name}}: {{.Enum}} = {{.Enum}}::{{.Canonical}};
{{- end}}

pub fn {{.Fn.Name}}(code: u32) -> Option<{{.Name}}> {
    match code {
{{- $enum := .Name}}
{{- range .Fn.Arms}}
        {{.Pattern}} => Some({{$enum}}::{{.Variant}}),
{{- end}}
        _ => None,
    }
}
{{- with .Tagged}}

#[allow(non_camel_case_types)]
#[derive(Copy, Clone, PartialEq)]
#[cfg_attr(feature = "with-serde", derive(Serialize, Deserialize))]
pub enum {{.Name}} {
{{- range .Variants}}
{{- if .Raw}}
    {{.Name}} { event_type: u32, event_code: u32 },
{{- else if .Payload}}
    {{.Name}}({{.Payload}}),
{{- else}}
    {{.Name}},
{{- end}}
{{- end}}
}
{{- end}}
{{end}}`

type enumView struct {
	Name     string
	Variants []variantView
	Aliases  []aliasView
	Fn       fnView
	Tagged   *taggedView
}

type variantView struct {
	Name  string
	Value string // empty for the implicit sentinel
}

type aliasView struct {
	Name      string
	Enum      string
	Canonical string
}

type fnView struct {
	Name string
	Arms []armView
}

type armView struct {
	Pattern string
	Variant string
}

type taggedView struct {
	Name     string
	Variants []meta.TaggedVariant
}

type fileView struct {
	Enums []enumView
}

// Generate serializes the metadata as Rust source.
func Generate(logger *slog.Logger, w io.Writer, md *meta.Metadata) error {
	view := fileView{}
	for _, e := range md.Enums {
		ev := enumView{
			Name: e.Name,
			Fn:   fnView{Name: e.Convert.Name},
		}
		for _, v := range e.Variants {
			vv := variantView{Name: v.Name}
			if !v.Implicit {
				vv.Value = strconv.FormatUint(v.Value, 10)
			}
			ev.Variants = append(ev.Variants, vv)
		}
		for _, a := range e.Aliases {
			ev.Aliases = append(ev.Aliases, aliasView{Name: a.Name, Enum: e.Name, Canonical: a.Canonical})
		}
		for _, arm := range e.Convert.Arms {
			ev.Fn.Arms = append(ev.Fn.Arms, armView{Pattern: armPattern(arm), Variant: arm.Variant})
		}
		if e.Name == "EventType" && md.Tagged != nil {
			ev.Tagged = &taggedView{Name: md.Tagged.Name, Variants: md.Tagged.Variants}
		}
		view.Enums = append(view.Enums, ev)
	}

	tmpl := template.Must(template.New("rust").Parse(fileTemplate))
	if err := tmpl.Execute(w, view); err != nil {
		return fmt.Errorf("executing template: %w", err)
	}

	logger.Debug("Generated Rust bindings", "enums", len(view.Enums))
	return nil
}

func armPattern(a meta.Arm) string {
	if a.Range {
		return fmt.Sprintf("%d..=%d", a.Lo, a.Hi)
	}
	return strconv.FormatUint(a.Lo, 10)
}
