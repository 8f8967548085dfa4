// Package prefs stores the UI theme and the local session marker.
//
// Both live next to the document in the durable slot. A session created
// without "remember" goes to a volatile slot instead and ends with the
// process.
package prefs

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/roach88/researchhub/internal/model"
	"github.com/roach88/researchhub/internal/store"
)

// Slot keys.
const (
	ThemeKey   = "researchhub_theme"
	SessionKey = "researchhub_session"
)

// Theme is the color scheme.
type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

// Session marks a signed-in user. At is milliseconds since the Unix epoch.
type Session struct {
	User string `json:"user"`
	At   int64  `json:"at"`
}

// Prefs reads and writes preferences.
type Prefs struct {
	durable  store.Slot
	volatile store.Slot
	now      func() time.Time
}

// New creates Prefs over a durable and a volatile slot.
func New(durable, volatile store.Slot, now func() time.Time) *Prefs {
	if now == nil {
		now = time.Now
	}
	return &Prefs{durable: durable, volatile: volatile, now: now}
}

// Theme returns the stored theme; dark when unset or unrecognized.
func (p *Prefs) Theme(ctx context.Context) (Theme, error) {
	raw, ok, err := p.durable.Get(ctx, ThemeKey)
	if err != nil {
		return ThemeDark, &model.StorageError{Op: "load theme", Err: err}
	}
	if ok && Theme(raw) == ThemeLight {
		return ThemeLight, nil
	}
	return ThemeDark, nil
}

// SetTheme stores t.
func (p *Prefs) SetTheme(ctx context.Context, t Theme) error {
	if t != ThemeDark && t != ThemeLight {
		return model.NewValidationError("theme", fmt.Sprintf("unknown theme %q (want dark or light)", t))
	}
	if err := p.durable.Put(ctx, ThemeKey, []byte(t)); err != nil {
		return &model.StorageError{Op: "save theme", Err: err}
	}
	return nil
}

// ToggleTheme switches between dark and light and returns the new theme.
func (p *Prefs) ToggleTheme(ctx context.Context) (Theme, error) {
	cur, err := p.Theme(ctx)
	if err != nil {
		return cur, err
	}
	next := ThemeLight
	if cur == ThemeLight {
		next = ThemeDark
	}
	return next, p.SetTheme(ctx, next)
}

// Login records a session for user. remember selects the durable slot.
func (p *Prefs) Login(ctx context.Context, user string, remember bool) (Session, error) {
	user = strings.TrimSpace(user)
	if user == "" {
		return Session{}, model.NewValidationError("user", "user name is required")
	}
	s := Session{User: user, At: p.now().UnixMilli()}
	raw, err := json.Marshal(s)
	if err != nil {
		return Session{}, err
	}

	slot := p.volatile
	if remember {
		slot = p.durable
	}
	if err := slot.Put(ctx, SessionKey, raw); err != nil {
		return Session{}, &model.StorageError{Op: "save session", Err: err}
	}
	return s, nil
}

// Session returns the active session, preferring the remembered one.
func (p *Prefs) Session(ctx context.Context) (Session, bool, error) {
	for _, slot := range []store.Slot{p.durable, p.volatile} {
		raw, ok, err := slot.Get(ctx, SessionKey)
		if err != nil {
			return Session{}, false, &model.StorageError{Op: "load session", Err: err}
		}
		if !ok {
			continue
		}
		var s Session
		if err := json.Unmarshal(raw, &s); err != nil {
			return Session{}, false, &model.StorageError{Op: "load session", Err: err}
		}
		return s, true, nil
	}
	return Session{}, false, nil
}

// Logout clears the session from both slots.
func (p *Prefs) Logout(ctx context.Context) error {
	for _, slot := range []store.Slot{p.durable, p.volatile} {
		if err := slot.Delete(ctx, SessionKey); err != nil {
			return &model.StorageError{Op: "clear session", Err: err}
		}
	}
	return nil
}
