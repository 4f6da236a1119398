package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeKeySingleChar(t *testing.T) {
	lit, n := decodeKey([]byte("q"))
	assert.Equal(t, "q", lit)
	assert.Equal(t, 1, n)
}

func TestDecodeKeyEnter(t *testing.T) {
	lit, n := decodeKey([]byte("\r"))
	assert.Equal(t, "enter", lit)
	assert.Equal(t, 1, n)
}

func TestDecodeKeyArrows(t *testing.T) {
	cases := map[string]string{
		"\x1b[A": "up",
		"\x1b[B": "down",
		"\x1b[C": "right",
		"\x1b[D": "left",
	}
	for seq, want := range cases {
		lit, n := decodeKey([]byte(seq))
		assert.Equal(t, want, lit)
		assert.Equal(t, 3, n)
	}
}

func TestDecodeKeyEsc(t *testing.T) {
	lit, n := decodeKey([]byte{0x1b})
	assert.Equal(t, "esc", lit)
	assert.Equal(t, 1, n)
}

func TestDecodeKeyAltAndCtrl(t *testing.T) {
	lit, n := decodeKey([]byte{0x1b, 'w'})
	assert.Equal(t, "a-w", lit)
	assert.Equal(t, 2, n)

	lit, n = decodeKey([]byte{0x17}) // Ctrl-W
	assert.Equal(t, "c-w", lit)
	assert.Equal(t, 1, n)
}

func TestDecodeKeyBackspace(t *testing.T) {
	lit, n := decodeKey([]byte{0x7f})
	assert.Equal(t, "backspace", lit)
	assert.Equal(t, 1, n)
}

func TestResolverResolvesBoundLiterals(t *testing.T) {
	r := NewResolver(map[Action][]string{
		ActionUp:   {"k", "up"},
		ActionDown: {"j", "down"},
	})
	a, ok := r.Resolve("k")
	assert.True(t, ok)
	assert.Equal(t, ActionUp, a)

	_, ok = r.Resolve("z")
	assert.False(t, ok)
}
