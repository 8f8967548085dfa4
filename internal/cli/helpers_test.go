package cli

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/researchhub/internal/ids"
	"github.com/roach88/researchhub/internal/store"
	"github.com/roach88/researchhub/internal/testutil"
)

// cliEnv runs commands against one temporary database, as if the binary
// were invoked repeatedly.
type cliEnv struct {
	t     *testing.T
	db    string
	clock *testutil.FixedClock
	ids   *ids.SequenceGenerator
	env   map[string]string
	stdin string
}

type result struct {
	stdout string
	stderr string
	err    error
}

func newCLI(t *testing.T) *cliEnv {
	t.Helper()
	// Keep the user's real config file out of the way.
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	return &cliEnv{
		t:     t,
		db:    filepath.Join(t.TempDir(), "hub.db"),
		clock: testutil.NewFixedClock(testutil.DefaultTime),
		ids:   ids.NewSequenceGenerator(),
		env:   map[string]string{},
	}
}

func (e *cliEnv) run(args ...string) result {
	e.t.Helper()
	opts := &RootOptions{
		Now:    e.clock.Now,
		IDs:    e.ids,
		Getenv: func(k string) string { return e.env[k] },
	}
	cmd := newRootCommand(opts)
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(e.stdin))
	cmd.SetArgs(append([]string{"--db", e.db, "--driver", store.DriverPureGo}, args...))

	err := cmd.Execute()
	return result{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

// ok runs a command that must succeed and returns its stdout.
func (e *cliEnv) ok(args ...string) string {
	e.t.Helper()
	r := e.run(args...)
	require.NoError(e.t, r.err, "researchhub %v\nstdout: %s", args, r.stdout)
	return r.stdout
}

// okJSON runs a command with --format json and decodes the data payload.
func (e *cliEnv) okJSON(v any, args ...string) {
	e.t.Helper()
	out := e.ok(append([]string{"--format", "json"}, args...)...)
	var resp struct {
		Status string          `json:"status"`
		Data   json.RawMessage `json:"data"`
	}
	require.NoError(e.t, json.Unmarshal([]byte(out), &resp), out)
	require.Equal(e.t, "ok", resp.Status)
	require.NoError(e.t, json.Unmarshal(resp.Data, v), string(resp.Data))
}
