package scanner

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scan(t *testing.T, src string) *Tables {
	t.Helper()
	tables := NewTables()
	require.NoError(t, tables.Scan(strings.NewReader(src)))
	return tables
}

func TestScanRecognizedPrefixes(t *testing.T) {
	tables := scan(t, `
#define EV_SYN 0x00
#define REL_X 0x00
#define ABS_X 0x00
#define KEY_A 30
#define BTN_SOUTH 0x130
#define LED_NUML 0x00
#define SND_CLICK 0x00
#define MSC_SERIAL 0x00
#define SW_LID 0x00
#define FF_RUMBLE 0x50
#define SYN_REPORT 0
#define REP_DELAY 0x00
#define INPUT_PROP_POINTER 0x00
#define BUS_USB 0x03
`)

	for _, g := range []Group{
		GroupEventType, GroupRelative, GroupAbsolute, GroupKey, GroupButton,
		GroupLED, GroupSound, GroupMisc, GroupSwitch, GroupForceFeedback,
		GroupSync, GroupRepeat, GroupInputProp, GroupBusType,
	} {
		assert.True(t, tables.Has(g), "expected constants for group %s", g)
		assert.Len(t, tables.Buckets(g), 1, "group %s", g)
	}
}

func TestScanSkipsUnusableLines(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"not a define", "struct input_event {"},
		{"commented define", "// #define KEY_A 30"},
		{"excluded version marker", "#define EV_VERSION 0x010001"},
		{"excluded button umbrella", "#define BTN_MISC 0x100"},
		{"alias to another macro", "#define KEY_SCREENLOCK KEY_COFFEE"},
		{"expression value", "#define KEY_X (1 << 2)"},
		{"unrecognized prefix", "#define ID_BUS 0"},
		{"bare define", "#define"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tables := scan(t, tt.line+"\n")
			for g := Group(0); g < groupCount; g++ {
				assert.False(t, tables.Has(g), "line %q must not populate group %s", tt.line, g)
			}
		})
	}
}

func TestScanIntegerBases(t *testing.T) {
	tables := scan(t, `
#define KEY_DEC 30
#define KEY_HEX 0x1f
#define KEY_OCT 0755
`)

	buckets := tables.Buckets(GroupKey)
	require.Len(t, buckets, 3)
	assert.Equal(t, uint64(30), buckets[0].Value)
	assert.Equal(t, uint64(0x1f), buckets[1].Value)
	assert.Equal(t, uint64(0o755), buckets[2].Value)
}

func TestScanKeepsAliasesInFileOrder(t *testing.T) {
	tables := scan(t, `
#define KEY_HANGEUL 122
#define KEY_HANGUEL 122
#define KEY_HANGEUL 122
`)

	buckets := tables.Buckets(GroupKey)
	require.Len(t, buckets, 1)
	assert.Equal(t, []string{"KEY_HANGEUL", "KEY_HANGUEL"}, buckets[0].Names)
}

func TestScanAccumulatesAcrossInputs(t *testing.T) {
	tables := NewTables()
	require.NoError(t, tables.Scan(strings.NewReader("#define KEY_A 30\n")))
	require.NoError(t, tables.Scan(strings.NewReader("#define KEY_B 48\n#define KEY_ALPHA 30\n")))

	buckets := tables.Buckets(GroupKey)
	require.Len(t, buckets, 2)
	assert.Equal(t, []string{"KEY_A", "KEY_ALPHA"}, buckets[0].Names)
	assert.Equal(t, []string{"KEY_B"}, buckets[1].Names)
}

func TestPrefixPrecedence(t *testing.T) {
	tables := scan(t, `
#define BTN_SOUTH 0x130
#define BUS_VIRTUAL 0x06
#define FF_STATUS_MAX 0x01
`)

	assert.True(t, tables.Has(GroupButton))
	assert.False(t, tables.Has(GroupKey), "BTN_ must not land in the key group")
	assert.True(t, tables.Has(GroupBusType))
	// FF_STATUS_* has no group of its own and folds into FF_.
	assert.True(t, tables.Has(GroupForceFeedback))
}

func TestScanFileUnreadable(t *testing.T) {
	tables := NewTables()
	err := tables.ScanFile(filepath.Join(t.TempDir(), "missing.h"))
	require.Error(t, err)
}

func TestGroupPrefix(t *testing.T) {
	assert.Equal(t, "EV_", GroupEventType.Prefix())
	assert.Equal(t, "INPUT_PROP_", GroupInputProp.Prefix())
	assert.Equal(t, "BUS", GroupBusType.String())
}
