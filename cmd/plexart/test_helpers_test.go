package main

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"plexart/internal/config"
	"plexart/internal/testsupport"
)

const fakeImage = "\xff\xd8\xff\xe0fake-jpeg"

const fakeSectionsXML = `<MediaContainer size="2">
  <Directory key="2" type="show" title="TV Shows"/>
  <Directory key="1" type="movie" title="Movies"/>
</MediaContainer>`

const fakeMoviesXML = `<MediaContainer size="1">
  <Video ratingKey="10" title="Alien" thumb="/library/metadata/10/thumb/1" art="/library/metadata/10/art/1">
    <Media><Part file="/data/Movies/Alien (1979)/Alien.mkv"/></Media>
  </Video>
</MediaContainer>`

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
	mediaRoot  string
	server     *httptest.Server

	mu       sync.Mutex
	requests []string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	env := &cliTestEnv{}
	env.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		env.mu.Lock()
		env.requests = append(env.requests, r.URL.Path)
		env.mu.Unlock()
		if r.URL.Query().Get("X-Plex-Token") != "cli-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		switch r.URL.Path {
		case "/library/sections":
			_, _ = w.Write([]byte(fakeSectionsXML))
		case "/library/sections/1/all":
			_, _ = w.Write([]byte(fakeMoviesXML))
		case "/library/sections/2/all":
			_, _ = w.Write([]byte(`<MediaContainer size="0"/>`))
		case "/library/metadata/10/thumb/1", "/library/metadata/10/art/1":
			w.Header().Set("Content-Type", "image/jpeg")
			_, _ = w.Write([]byte(fakeImage))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(env.server.Close)

	base := t.TempDir()
	t.Setenv("HOME", filepath.Join(base, "home"))
	t.Setenv("PLEX_URL", "")
	t.Setenv("PLEX_TOKEN", "")
	t.Setenv("CONTAINER_MEDIA_PREFIX", "")
	t.Setenv("HOST_MEDIA_PREFIX", "")

	env.cfg = testsupport.NewConfig(t,
		testsupport.WithPlexServer(env.server.URL, "cli-token"),
		testsupport.WithPathMapping("/data"),
		testsupport.WithHistory(),
	)
	env.mediaRoot = testsupport.MediaTree(t, env.cfg.Paths.HostMediaPrefix, "Movies/Alien (1979)")
	env.configPath = filepath.Join(base, "plexart.toml")
	writeTestConfig(t, env.configPath, env.cfg)
	return env
}

func (e *cliTestEnv) requested() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.requests...)
}

func (e *cliTestEnv) moviePath(name string) string {
	return filepath.Join(e.mediaRoot, "Movies", "Alien (1979)", name)
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(bytes.NewReader(nil))
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	content := fmt.Sprintf(`[plex]
url = %q
token = %q

[paths]
container_media_prefix = %q
host_media_prefix = %q
state_dir = %q
log_dir = %q

[history]
enabled = %t
path = %q
`,
		cfg.Plex.URL,
		cfg.Plex.Token,
		cfg.Paths.ContainerMediaPrefix,
		cfg.Paths.HostMediaPrefix,
		cfg.Paths.StateDir,
		cfg.Paths.LogDir,
		cfg.History.Enabled,
		cfg.History.Path,
	)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}
