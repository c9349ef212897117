package cmd

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/bnema/alignment-console/internal/domain"
	"github.com/bnema/alignment-console/internal/version"
	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const statusFixture = `{
	"crew": [
		{"id": "Red", "role": "Crewmate", "status": "Alive", "location": "Reactor", "is_player": false},
		{"id": "Blue", "role": "Imposter", "status": "Dead", "location": null}
	],
	"logs": [
		{"timestamp": "21:00:00", "source": "SYSTEM", "message": "Ship system reboot complete."},
		{"timestamp": "21:00:04", "source": "Red", "message": "Reactor looks fine."},
		{"timestamp": "21:00:09", "source": "SYSTEM", "message": "Blue was found dead in Electrical."}
	],
	"active_alert": "Body reported"
}`

type chatCall struct {
	Body          map[string]string
	CorrelationID string
}

type mainframe struct {
	server *httptest.Server

	mu    sync.Mutex
	chats []chatCall
}

func newMainframe(t *testing.T) *mainframe {
	t.Helper()

	m := &mainframe{}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /status", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(statusFixture))
	})
	mux.HandleFunc("POST /chat", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		m.mu.Lock()
		m.chats = append(m.chats, chatCall{Body: body, CorrelationID: r.Header.Get("X-Correlation-ID")})
		m.mu.Unlock()

		if body["agent_id"] != "Red" {
			http.Error(w, `{"detail":"Agent not found"}`, http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"sent"}`))
	})
	mux.HandleFunc("POST /briefing", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"briefing":"ALIGN THE CREW."}`))
	})

	m.server = httptest.NewServer(mux)
	t.Cleanup(m.server.Close)
	return m
}

func (m *mainframe) chatCalls() []chatCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]chatCall(nil), m.chats...)
}

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

func TestVersionPrintsBuildVersion(t *testing.T) {
	stdout, _, err := executeCLI(t, t.TempDir(), "version")
	require.NoError(t, err)
	assert.Equal(t, version.Version+"\n", stdout)
}

func TestCrewPrintsManifestAndLatestLogs(t *testing.T) {
	server := newMainframe(t)

	stdout, _, err := executeCLI(t, t.TempDir(), "crew", "--base-url", server.server.URL, "--logs", "2")
	require.NoError(t, err)

	assert.Regexp(t, `Red\s+Alive\s+REACTOR`, stdout)
	assert.Regexp(t, `Blue\s+Dead\s+UNKNOWN`, stdout)
	assert.Contains(t, stdout, "TOTAL PERSONNEL: 2 // ACTIVE: 1")
	assert.Contains(t, stdout, "!! ALERT: BODY REPORTED !!")
	assert.NotContains(t, stdout, "Ship system reboot complete.")
	assert.Contains(t, stdout, "[21:00:09] SYSTEM: Blue was found dead in Electrical.")
}

func TestCrewJSONOutput(t *testing.T) {
	server := newMainframe(t)

	stdout, _, err := executeCLI(t, t.TempDir(), "crew", "--base-url", server.server.URL, "--json")
	require.NoError(t, err)
	require.True(t, json.Valid([]byte(stdout)))

	var out crewOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &out))
	assert.Equal(t, []crewMember{
		{ID: "Red", Status: "Alive", Location: "Reactor"},
		{ID: "Blue", Status: "Dead"},
	}, out.Crew)
	assert.Equal(t, "Body reported", out.ActiveAlert)
	assert.Len(t, out.Logs, 3)
}

func TestCrewReportsUnreachableMainframe(t *testing.T) {
	server := newMainframe(t)
	url := server.server.URL
	server.server.Close()

	_, _, err := executeCLI(t, t.TempDir(), "crew", "--base-url", url, "--json")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrRequestFailed)
}

func TestSaySendsCommandWithCorrelationID(t *testing.T) {
	server := newMainframe(t)

	stdout, _, err := executeCLI(t, t.TempDir(), "say", "--base-url", server.server.URL, "@Red", "report", "location")
	require.NoError(t, err)

	assert.Contains(t, stdout, "SYSADMIN: [Private to Red]: report location")

	calls := server.chatCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, map[string]string{"agent_id": "Red", "user_message": "report location"}, calls[0].Body)
	assert.Len(t, calls[0].CorrelationID, 26)
}

func TestSayReportsTransmissionFailure(t *testing.T) {
	server := newMainframe(t)

	stdout, _, err := executeCLI(t, t.TempDir(), "say", "--base-url", server.server.URL, "@Blue status?")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrRequestFailed)

	assert.Contains(t, stdout, "[Private to Blue]: status?")
	assert.Contains(t, stdout, "ERROR: TRANSMISSION FAILED - send chat: unexpected status 404")
}

func TestSayRejectsInvalidSyntaxWithoutSending(t *testing.T) {
	server := newMainframe(t)

	stdout, _, err := executeCLI(t, t.TempDir(), "say", "--base-url", server.server.URL, "no at sign")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidSyntax)

	assert.Contains(t, stdout, "ERROR: INVALID SYNTAX. USE: @[AgentID] [Message]")
	assert.Empty(t, server.chatCalls())
}

func TestConfigInitWritesDefaultsAndRefusesOverwrite(t *testing.T) {
	home := t.TempDir()

	stdout, _, err := executeCLI(t, home, "config", "init")
	require.NoError(t, err)

	path := filepath.Join(home, ".config", "tap", "config.toml")
	assert.Equal(t, "wrote "+path+"\n", stdout)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "base_url = 'http://localhost:8000'")
	assert.Contains(t, string(data), "poll_interval = '2s'")

	_, _, err = executeCLI(t, home, "config", "init")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config file already exists")

	_, _, err = executeCLI(t, home, "config", "init", "--force", "--base-url", "https://mother.example")
	require.NoError(t, err)

	stdout, _, err = executeCLI(t, home, "config", "show")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stdout, "# "+path+"\n"))
	assert.Contains(t, stdout, "base_url = 'https://mother.example'")
}

func TestConfigShowHonoursEnvironment(t *testing.T) {
	t.Setenv("TAP_POLL_INTERVAL", "750ms")

	stdout, _, err := executeCLI(t, t.TempDir(), "config", "show")
	require.NoError(t, err)
	assert.Contains(t, stdout, "poll_interval = '750ms'")
}

func TestInvalidConfigFailsBeforeConnecting(t *testing.T) {
	home := t.TempDir()
	configDir := filepath.Join(home, ".config", "tap")
	require.NoError(t, os.MkdirAll(configDir, 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(configDir, "config.toml"), []byte(`base_url = "ftp://mother"`), 0o600))

	_, _, err := executeCLI(t, home, "crew")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load config")
}

func TestPlainConsoleRunsSessionUntilInputEnds(t *testing.T) {
	server := newMainframe(t)

	stdout, _, err := executeCLIWithInput(t, t.TempDir(), strings.NewReader(""),
		"console", "--plain", "--base-url", server.server.URL)
	require.NoError(t, err)
	assert.Empty(t, stdout)
}

func executeCLI(t *testing.T, home string, args ...string) (string, string, error) {
	t.Helper()
	return executeCLIWithInput(t, home, nil, args...)
}

func executeCLIWithInput(t *testing.T, home string, in io.Reader, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("HOME", home)

	root := newRootCmd()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	root.SetOut(stdout)
	root.SetErr(stderr)
	if in != nil {
		root.SetIn(in)
	}
	root.SetArgs(args)

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}
