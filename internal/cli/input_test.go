package cli

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/azbs/giftregistry/internal/models"
)

func TestGetText_TrimsAndReturnsLine(t *testing.T) {
	r := bufio.NewReader(strings.NewReader("  hello world  \n"))
	var out bytes.Buffer

	got, err := getText(r, &out, "Say something")
	require.NoError(t, err)
	require.Equal(t, "hello world", got)
	require.Contains(t, out.String(), "Say something")
}

func TestGetText_PartialLineAtEOF(t *testing.T) {
	r := bufio.NewReader(strings.NewReader("no newline"))
	var out bytes.Buffer

	got, err := getText(r, &out, "p")
	require.NoError(t, err)
	require.Equal(t, "no newline", got)
}

func TestGetPassword_UsesTerminalReader(t *testing.T) {
	orig := readPassword
	readPassword = func(fd int) ([]byte, error) { return []byte("hunter22"), nil }
	t.Cleanup(func() { readPassword = orig })

	var out bytes.Buffer
	got, err := getPassword(&out, "Password")
	require.NoError(t, err)
	require.Equal(t, "hunter22", got)
}

func TestGetInt(t *testing.T) {
	r := bufio.NewReader(strings.NewReader("42\nforty\n"))
	var out bytes.Buffer

	n, err := getInt(r, &out, "n")
	require.NoError(t, err)
	require.Equal(t, 42, n)

	_, err = getInt(r, &out, "n")
	require.Error(t, err)
}

func TestGetYesNo(t *testing.T) {
	r := bufio.NewReader(strings.NewReader("Yes\nnope\n\n"))
	var out bytes.Buffer

	for _, want := range []bool{true, false, false} {
		got, err := getYesNo(r, &out, "sure?")
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
}

func TestParseSelections(t *testing.T) {
	items := []models.Item{{Name: "crib"}, {Name: "monitor"}, {Name: "stroller"}}

	sels, err := parseSelections("1 2, 3 1", items)
	require.NoError(t, err)
	require.Equal(t, []models.Selection{
		{ItemName: "crib", Quantity: 2},
		{ItemName: "stroller", Quantity: 1},
	}, sels)

	_, err = parseSelections("9 1", items)
	require.Error(t, err)

	_, err = parseSelections("1", items)
	require.Error(t, err)

	_, err = parseSelections("1 lots", items)
	require.Error(t, err)

	sels, err = parseSelections("  ", items)
	require.NoError(t, err)
	require.Empty(t, sels)
}
