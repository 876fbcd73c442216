// Package scanner extracts input-event constant definitions from C headers.
//
// Only lines of the form `#define NAME VALUE` with an integer-literal VALUE
// are considered; everything else is skipped without being reported.
package scanner

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"
)

// Group identifies one recognized family of input-event constants.
type Group int

const (
	GroupEventType Group = iota
	GroupRelative
	GroupAbsolute
	GroupKey
	GroupButton
	GroupLED
	GroupSound
	GroupMisc
	GroupSwitch
	GroupForceFeedback
	GroupSync
	GroupRepeat
	GroupInputProp
	GroupBusType
	groupCount
)

// prefixTable is tested in sequence and the first match wins, so a more
// specific prefix sharing a leading substring with a later one cannot be
// shadowed by it.
var prefixTable = []struct {
	prefix string
	group  Group
}{
	{"EV_", GroupEventType},
	{"REL_", GroupRelative},
	{"ABS_", GroupAbsolute},
	{"KEY_", GroupKey},
	{"BTN_", GroupButton},
	{"LED_", GroupLED},
	{"SND_", GroupSound},
	{"MSC_", GroupMisc},
	{"SW_", GroupSwitch},
	{"FF_", GroupForceFeedback},
	{"SYN_", GroupSync},
	{"REP_", GroupRepeat},
	{"INPUT_PROP_", GroupInputProp},
	{"BUS_", GroupBusType},
}

// excluded lists version markers and button-category umbrella constants that
// must never become enum entries.
var excluded = map[string]struct{}{
	"EV_VERSION":        {},
	"BTN_MISC":          {},
	"BTN_MOUSE":         {},
	"BTN_JOYSTICK":      {},
	"BTN_GAMEPAD":       {},
	"BTN_DIGI":          {},
	"BTN_WHEEL":         {},
	"BTN_TRIGGER_HAPPY": {},
}

var defineRe = regexp.MustCompile(`^#define\s+(\w+)\s+(\w+)`)

// Prefix returns the macro name prefix of the group.
func (g Group) Prefix() string {
	for _, p := range prefixTable {
		if p.group == g {
			return p.prefix
		}
	}
	return ""
}

func (g Group) String() string {
	return strings.TrimSuffix(g.Prefix(), "_")
}

// Bucket holds every macro name sharing one integer value within a group.
// Names[0] is the canonical name; the rest are aliases in file order.
type Bucket struct {
	Value uint64
	Names []string
}

// Tables accumulates value buckets per group. State is shared across
// ScanFile calls: later files append to the buckets built from earlier ones.
type Tables struct {
	buckets [groupCount][]*Bucket
	index   [groupCount]map[uint64]*Bucket
}

func NewTables() *Tables {
	t := &Tables{}
	for g := range t.index {
		t.index[g] = make(map[uint64]*Bucket)
	}
	return t
}

// ScanFile scans one header file into the tables. An unreadable path is the
// only error this stage can produce.
func (t *Tables) ScanFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open header: %w", err)
	}
	defer f.Close()
	if err := t.Scan(f); err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	return nil
}

// Scan consumes header text line by line.
func (t *Tables) Scan(r io.Reader) error {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := sc.Text()
		if !strings.HasPrefix(line, "#define") {
			continue
		}
		t.scanDefine(line)
	}
	return sc.Err()
}

func (t *Tables) scanDefine(line string) {
	m := defineRe.FindStringSubmatch(line)
	if m == nil {
		return
	}
	name := m[1]
	if _, ok := excluded[name]; ok {
		return
	}
	// Alias macros like `#define KEY_SCREENLOCK KEY_COFFEE` fail the integer
	// parse and are dropped here.
	value, err := strconv.ParseUint(m[2], 0, 64)
	if err != nil {
		return
	}
	for _, p := range prefixTable {
		if strings.HasPrefix(name, p.prefix) {
			t.add(p.group, value, name)
			return
		}
	}
}

func (t *Tables) add(g Group, value uint64, name string) {
	b, ok := t.index[g][value]
	if !ok {
		b = &Bucket{Value: value}
		t.index[g][value] = b
		t.buckets[g] = append(t.buckets[g], b)
	}
	for _, n := range b.Names {
		if n == name {
			return
		}
	}
	b.Names = append(b.Names, name)
}

// Buckets returns the group's buckets in first-occurrence order.
func (t *Tables) Buckets(g Group) []*Bucket {
	return t.buckets[g]
}

// Has reports whether any constant was scanned for the group.
func (t *Tables) Has(g Group) bool {
	return len(t.buckets[g]) > 0
}
