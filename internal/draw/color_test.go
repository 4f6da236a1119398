package draw

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseColorNamed(t *testing.T) {
	c, err := ParseColor("ansiRed")
	require.NoError(t, err)
	assert.Equal(t, lipgloss.Color("1"), c)
}

func TestParseColorRGBTriple(t *testing.T) {
	c, err := ParseColor("255,0,128")
	require.NoError(t, err)
	assert.Equal(t, lipgloss.Color("#ff0080"), c)
}

func TestParseColorInvalid(t *testing.T) {
	_, err := ParseColor("not-a-color")
	assert.Error(t, err)

	_, err = ParseColor("256,0,0")
	assert.Error(t, err)

	_, err = ParseColor("ansiorange")
	assert.Error(t, err)
}

func TestColorOrDefaultFallsBack(t *testing.T) {
	assert.Equal(t, lipgloss.Color("9"), ColorOrDefault("", "9"))
	assert.Equal(t, lipgloss.Color("9"), ColorOrDefault("garbage", "9"))
	assert.Equal(t, lipgloss.Color("2"), ColorOrDefault("ansigreen", "9"))
}
