package confirm

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_OnlyWhenApproved(t *testing.T) {
	calls := 0
	fn := func() error { calls++; return nil }

	r := New("reset", "Erase everything?")
	assert.False(t, r.Resolved())
	require.ErrorIs(t, r.Run(fn), ErrPending)

	r.Deny()
	require.ErrorIs(t, r.Run(fn), ErrDenied)
	assert.Equal(t, 0, calls)

	r2 := New("reset", "Erase everything?")
	r2.Approve()
	require.NoError(t, r2.Run(fn))
	assert.Equal(t, 1, calls)
}

func TestFirstAnswerWins(t *testing.T) {
	r := New("reset", "?")
	r.Deny()
	r.Approve()
	assert.True(t, r.Resolved())
	assert.False(t, r.Approved())
}

func TestRunError_NamesAction(t *testing.T) {
	r := New("reset", "?")
	r.Deny()
	assert.EqualError(t, r.Run(func() error { return nil }), "reset: confirmation denied")
}

func TestAsk(t *testing.T) {
	tests := []struct {
		input    string
		approved bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{"  yes  \n", true},
		{"n\n", false},
		{"\n", false},
		{"", false},
		{"yep\n", false},
		{"y", true},
	}
	for _, tt := range tests {
		t.Run(strings.TrimSpace(tt.input), func(t *testing.T) {
			var out bytes.Buffer
			r := New("reset", "Erase everything?")
			require.NoError(t, Ask(r, strings.NewReader(tt.input), &out))
			assert.Equal(t, "Erase everything? [y/N]: ", out.String())
			assert.True(t, r.Resolved())
			assert.Equal(t, tt.approved, r.Approved())
		})
	}
}
