package format

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStars(t *testing.T) {
	require.Equal(t, "☆☆☆☆☆", Stars(0))
	require.Equal(t, "★★★★☆", Stars(4.2))
	require.Equal(t, "★★★★★", Stars(4.8))
	require.Equal(t, "★★★★★", Stars(5))
	require.Equal(t, "☆☆☆☆☆", Stars(-1))
	require.Equal(t, "★★★★★", Stars(9))
}

func TestSanitizeOutput(t *testing.T) {
	require.Equal(t, "plain", sanitizeOutput("plain"))
	require.Equal(t, "a\nb\tc", sanitizeOutput("a\nb\tc"))
	require.Equal(t, "\\x1b[31mred", sanitizeOutput("\x1b[31mred"))
	require.Equal(t, "\\x00", sanitizeOutput("\x00"))
	require.Equal(t, "\\x7f", sanitizeOutput("\x7f"))
}
