package memimage

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		name      string
		src       string
		want      []uint64
		expectErr bool
	}{
		{name: "empty", src: "", want: nil},
		{name: "plain words", src: "1 a FF", want: []uint64{1, 0xa, 0xff}},
		{name: "run length", src: "3-7", want: []uint64{7, 7, 7}},
		{name: "mixed with newlines", src: "2-0\nbeef\n\n1-1", want: []uint64{0, 0, 0xbeef, 1}},
		{name: "zero length run", src: "0-5 4", want: []uint64{4}},
		{name: "error - not hex", src: "12 zz", expectErr: true},
		{name: "error - dangling dash", src: "3-", expectErr: true},
		{name: "error - run past the limit", src: "50000000-0", expectErr: true},
		{name: "error - words past the limit", src: "17-1 2", expectErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Parse(tc.src, 16)
			if tc.expectErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRead(t *testing.T) {
	got, err := Read(strings.NewReader("4-0 1"), 8)
	require.NoError(t, err)
	assert.Equal(t, []uint64{0, 0, 0, 0, 1}, got)
}

func TestFormat(t *testing.T) {
	words := []uint64{0, 0, 0, 0, 0xab, 1, 1}
	src := Format(words)
	assert.Equal(t, "4-0 ab 1 1", src)

	back, err := Parse(src, len(words))
	require.NoError(t, err)
	assert.Equal(t, words, back)
}

func TestParse_Limit(t *testing.T) {
	got, err := Parse("3-1 2", 4)
	require.NoError(t, err)
	assert.Equal(t, []uint64{1, 1, 1, 2}, got)

	_, err = Parse("3-1 2 3", 4)
	assert.ErrorIs(t, err, ErrTooLarge)

	_, err = Read(strings.NewReader("4294967296-ff"), 1<<24)
	assert.ErrorIs(t, err, ErrTooLarge)
}
