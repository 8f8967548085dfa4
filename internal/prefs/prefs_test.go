package prefs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/researchhub/internal/model"
	"github.com/roach88/researchhub/internal/store"
)

var fixedNow = time.Date(2026, 1, 28, 9, 30, 0, 0, time.UTC)

func newPrefs() (*Prefs, *store.Memory, *store.Memory) {
	durable, volatile := store.NewMemory(), store.NewMemory()
	return New(durable, volatile, func() time.Time { return fixedNow }), durable, volatile
}

func TestTheme_DefaultsToDark(t *testing.T) {
	p, durable, _ := newPrefs()
	ctx := context.Background()

	theme, err := p.Theme(ctx)
	require.NoError(t, err)
	assert.Equal(t, ThemeDark, theme)

	require.NoError(t, durable.Put(ctx, ThemeKey, []byte("sepia")))
	theme, err = p.Theme(ctx)
	require.NoError(t, err)
	assert.Equal(t, ThemeDark, theme)
}

func TestToggleTheme(t *testing.T) {
	p, durable, _ := newPrefs()
	ctx := context.Background()

	theme, err := p.ToggleTheme(ctx)
	require.NoError(t, err)
	assert.Equal(t, ThemeLight, theme)

	raw, _, _ := durable.Get(ctx, ThemeKey)
	assert.Equal(t, "light", string(raw))

	theme, err = p.ToggleTheme(ctx)
	require.NoError(t, err)
	assert.Equal(t, ThemeDark, theme)
}

func TestSetTheme_RejectsUnknown(t *testing.T) {
	p, _, _ := newPrefs()
	assert.True(t, model.IsValidation(p.SetTheme(context.Background(), "neon")))
}

func TestLogin_RememberedGoesToDurableSlot(t *testing.T) {
	p, durable, volatile := newPrefs()
	ctx := context.Background()

	s, err := p.Login(ctx, " ana ", true)
	require.NoError(t, err)
	assert.Equal(t, Session{User: "ana", At: fixedNow.UnixMilli()}, s)

	_, ok, _ := durable.Get(ctx, SessionKey)
	assert.True(t, ok)
	_, ok, _ = volatile.Get(ctx, SessionKey)
	assert.False(t, ok)
}

func TestLogin_NotRememberedGoesToVolatileSlot(t *testing.T) {
	p, durable, volatile := newPrefs()
	ctx := context.Background()

	_, err := p.Login(ctx, "ana", false)
	require.NoError(t, err)

	_, ok, _ := durable.Get(ctx, SessionKey)
	assert.False(t, ok)
	_, ok, _ = volatile.Get(ctx, SessionKey)
	assert.True(t, ok)

	s, ok, err := p.Session(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "ana", s.User)
}

func TestSession_PrefersRemembered(t *testing.T) {
	p, _, _ := newPrefs()
	ctx := context.Background()

	_, err := p.Login(ctx, "temp", false)
	require.NoError(t, err)
	_, err = p.Login(ctx, "kept", true)
	require.NoError(t, err)

	s, ok, err := p.Session(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "kept", s.User)
}

func TestLogout_ClearsBoth(t *testing.T) {
	p, _, _ := newPrefs()
	ctx := context.Background()
	_, _ = p.Login(ctx, "a", false)
	_, _ = p.Login(ctx, "b", true)

	require.NoError(t, p.Logout(ctx))

	_, ok, err := p.Session(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLogin_Rejects(t *testing.T) {
	p, durable, _ := newPrefs()
	ctx := context.Background()

	_, err := p.Login(ctx, "  ", true)
	assert.True(t, model.IsValidation(err))

	durable.FailWith = errors.New("read-only")
	_, err = p.Login(ctx, "ana", true)
	assert.True(t, model.IsStorage(err))
}
