// Package meta turns scanned constant tables into a backend-neutral list of
// declarations. Backends serialize this representation without re-deriving
// any grouping or sentinel logic.
package meta

import (
	"evgen/internal/codegen/common"
	"evgen/internal/codegen/scanner"
)

// UnknownName is the synthesized event-type variant covering codes between
// the second-highest and the highest recognized event-type values.
const UnknownName = "EV_UNK"

// Metadata is the in-memory representation consumed by every backend.
type Metadata struct {
	Enums []Enum
	// Tagged is the event-code declaration; nil when no event-type
	// constants were scanned.
	Tagged *TaggedEnum
}

// Enum declares one enumeration per prefix group: a variant per distinct
// value, alias constants for every further name sharing a value, and the
// integer conversion function.
type Enum struct {
	Group    scanner.Group
	Name     string
	Variants []Variant
	Aliases  []Alias
	Convert  ConvertFn
}

// Variant is one enum entry. Implicit marks the synthesized unknown variant,
// which carries no explicit discriminant.
type Variant struct {
	Name     string
	Value    uint64
	Implicit bool
}

// Alias is a named constant equal to a canonical variant.
type Alias struct {
	Name      string
	Canonical string
}

// ConvertFn maps an unsigned integer code to an optional enum value.
type ConvertFn struct {
	Name string
	Arms []Arm
}

// Arm matches one exact code, or the inclusive range [Lo, Hi] when Range is
// set. The backends append the absent-result default arm themselves.
type Arm struct {
	Lo, Hi  uint64
	Range   bool
	Variant string
}

// TaggedEnum declares the event-code type: one variant per event-type
// constant, carrying the matching sub-code type where one exists.
type TaggedEnum struct {
	Name     string
	Variants []TaggedVariant
}

// TaggedVariant is one event-code entry. Payload names the sub-code enum, or
// is empty for payload-free variants. Raw marks the unknown variant, which
// carries a raw (event type, event code) pair instead of a typed payload.
type TaggedVariant struct {
	Name    string
	Payload string
	Raw     bool
}

// groupOrder fixes emission order. Button is absent: its constants are
// folded into the key enum because key and button codes share one namespace.
var groupOrder = []scanner.Group{
	scanner.GroupEventType,
	scanner.GroupRelative,
	scanner.GroupAbsolute,
	scanner.GroupKey,
	scanner.GroupLED,
	scanner.GroupSound,
	scanner.GroupMisc,
	scanner.GroupSwitch,
	scanner.GroupForceFeedback,
	scanner.GroupSync,
	scanner.GroupRepeat,
	scanner.GroupInputProp,
	scanner.GroupBusType,
}

// payloadPrefixes are the sub-code families an event-type name (stripped of
// its EV_ prefix) may resolve to in the tagged event-code type.
var payloadPrefixes = map[string]struct{}{
	"REL_": {},
	"ABS_": {},
	"KEY_": {},
	"BTN_": {},
	"LED_": {},
	"SND_": {},
	"MSC_": {},
	"SW_":  {},
	"FF_":  {},
	"SYN_": {},
	"REP_": {},
}

// EnumName returns the target-neutral enum spelling for a group: "EventType"
// for event types, otherwise the prefix without its trailing underscore.
func EnumName(g scanner.Group) string {
	if g == scanner.GroupEventType {
		return "EventType"
	}
	return g.String()
}

// Build assembles the declaration list from scanned tables.
func Build(t *scanner.Tables) *Metadata {
	md := &Metadata{}
	for _, g := range groupOrder {
		if !t.Has(g) {
			continue
		}
		md.Enums = append(md.Enums, buildEnum(t, g))
		if g == scanner.GroupEventType {
			md.Tagged = buildTagged(t)
		}
	}
	return md
}

func buildEnum(t *scanner.Tables, g scanner.Group) Enum {
	buckets := t.Buckets(g)
	if g == scanner.GroupKey {
		buckets = append(append([]*scanner.Bucket{}, buckets...), t.Buckets(scanner.GroupButton)...)
	}

	e := Enum{
		Group: g,
		Name:  EnumName(g),
	}
	e.Convert.Name = common.ToSnakeCase(e.Name)

	sentinelAt, unknownRange := -1, Arm{}
	if g == scanner.GroupEventType {
		sentinelAt, unknownRange = sentinelPlacement(buckets)
	}

	for i, b := range buckets {
		if i == sentinelAt {
			e.Variants = append(e.Variants, Variant{Name: UnknownName, Implicit: true})
			if unknownRange.Range {
				e.Convert.Arms = append(e.Convert.Arms, unknownRange)
			}
		}
		e.Variants = append(e.Variants, Variant{Name: b.Names[0], Value: b.Value})
		e.Convert.Arms = append(e.Convert.Arms, Arm{Lo: b.Value, Hi: b.Value, Variant: b.Names[0]})
		for _, alias := range b.Names[1:] {
			e.Aliases = append(e.Aliases, Alias{Name: alias, Canonical: b.Names[0]})
		}
	}
	return e
}

// sentinelPlacement locates the maximum-value bucket and derives the
// catch-all range (secondHighest, max), both bounds exclusive. The range arm
// is dropped when empty; the unknown variant itself is always inserted.
func sentinelPlacement(buckets []*scanner.Bucket) (int, Arm) {
	maxAt := 0
	for i, b := range buckets {
		if b.Value > buckets[maxAt].Value {
			maxAt = i
		}
	}
	maxVal := buckets[maxAt].Value

	hasSecond := false
	var second uint64
	for i, b := range buckets {
		if i == maxAt {
			continue
		}
		if !hasSecond || b.Value > second {
			hasSecond, second = true, b.Value
		}
	}

	arm := Arm{Variant: UnknownName}
	if hasSecond && second+1 <= maxVal-1 {
		arm = Arm{Lo: second + 1, Hi: maxVal - 1, Range: true, Variant: UnknownName}
	}
	return maxAt, arm
}

func buildTagged(t *scanner.Tables) *TaggedEnum {
	buckets := t.Buckets(scanner.GroupEventType)
	sentinelAt, _ := sentinelPlacement(buckets)

	te := &TaggedEnum{Name: "EventCode"}
	for i, b := range buckets {
		if i == sentinelAt {
			te.Variants = append(te.Variants, TaggedVariant{Name: UnknownName, Raw: true})
		}
		name := b.Names[0]
		v := TaggedVariant{Name: name}
		switch rest := trimEventPrefix(name); {
		case name == "EV_FF_STATUS":
			// Irregular naming in the header: status events carry plain
			// force-feedback codes.
			v.Payload = "FF"
		case isPayloadPrefix(rest):
			v.Payload = rest
		}
		te.Variants = append(te.Variants, v)
	}
	return te
}

func trimEventPrefix(name string) string {
	const p = "EV_"
	if len(name) > len(p) && name[:len(p)] == p {
		return name[len(p):]
	}
	return ""
}

func isPayloadPrefix(rest string) bool {
	if rest == "" {
		return false
	}
	_, ok := payloadPrefixes[rest+"_"]
	return ok
}
