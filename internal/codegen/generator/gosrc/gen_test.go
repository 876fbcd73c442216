package gosrc_test

import (
	"bytes"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"evgen/internal/codegen/generator/gosrc"
	"evgen/internal/codegen/meta"
	"evgen/internal/codegen/scanner"
)

func render(t *testing.T, src string) string {
	t.Helper()
	tables := scanner.NewTables()
	require.NoError(t, tables.Scan(strings.NewReader(src)))

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	require.NoError(t, gosrc.Generate(logger, &buf, meta.Build(tables)))
	return buf.String()
}

func TestGenerateTypedConstants(t *testing.T) {
	got := render(t, `
#define EV_SYN 0x00
#define EV_KEY 0x01
#define EV_MAX 0x1f
#define KEY_A 30
`)

	assert.Contains(t, got, "// Code generated by evgen. DO NOT EDIT.")
	assert.Contains(t, got, "package evcodes")
	assert.Contains(t, got, "type EventType uint32")
	assert.Contains(t, got, "EV_SYN EventType = 0")
	assert.Contains(t, got, "EV_KEY EventType = 1")
	assert.Contains(t, got, "EV_MAX EventType = 31")
	assert.Contains(t, got, "type Key uint32")
	assert.Contains(t, got, "KEY_A Key = 30")
}

func TestSentinelTakesValueAfterPredecessor(t *testing.T) {
	got := render(t, `
#define EV_SYN 0x00
#define EV_KEY 0x01
#define EV_MAX 0x1f
`)

	assert.Contains(t, got, "EV_UNK EventType = 2")
}

func TestConversionFunction(t *testing.T) {
	got := render(t, `
#define EV_SYN 0x00
#define EV_KEY 0x01
#define EV_MAX 0x1f
`)

	assert.Contains(t, got, "func EventTypeFromCode(code uint32) (EventType, bool) {")
	assert.Contains(t, got, "case code == 0:")
	assert.Contains(t, got, "case code >= 2 && code <= 30:")
	assert.Contains(t, got, "return EV_UNK, true")
	assert.Contains(t, got, "case code == 31:")
	assert.Contains(t, got, "return 0, false")
}

func TestAliasConstants(t *testing.T) {
	got := render(t, `
#define KEY_HANGEUL 122
#define KEY_HANGUEL 122
`)

	assert.Contains(t, got, "KEY_HANGEUL Key = 122")
	assert.Contains(t, got, "KEY_HANGUEL Key = KEY_HANGEUL")
}

func TestEventCodeAccessors(t *testing.T) {
	got := render(t, `
#define EV_KEY 0x01
#define EV_FF_STATUS 0x17
#define EV_PWR 0x16
#define EV_MAX 0x1f
`)

	assert.Contains(t, got, "type EventCode struct {")
	assert.Contains(t, got, "func (c EventCode) Key() (Key, bool) {")
	assert.Contains(t, got, "if c.Type != EV_KEY {")
	assert.Contains(t, got, "return KeyFromCode(c.Code)")
	// Status events resolve through the force-feedback family.
	assert.Contains(t, got, "func (c EventCode) FfStatus() (Ff, bool) {")
	assert.Contains(t, got, "return FfFromCode(c.Code)")
	// Payload-free variants get no accessor.
	assert.NotContains(t, got, "func (c EventCode) Pwr()")
	assert.NotContains(t, got, "func (c EventCode) Max()")
}
