package commands

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"market/internal/config"
)

// withTempConfig переопределяет пользовательские каталоги на время теста,
// чтобы токен и логин создавались в temp.
func withTempConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	if runtime.GOOS == "windows" {
		t.Setenv("APPDATA", dir)
	} else {
		t.Setenv("XDG_CONFIG_HOME", dir)
	}
	return dir
}

// loggedIn сохраняет токен, как будто login уже выполнен.
func loggedIn(t *testing.T, cfg *config.Config, token string) {
	t.Helper()
	if err := sessionStore(cfg).Save(token); err != nil {
		t.Fatalf("save token: %v", err)
	}
}

// envelopeServer отвечает 200-конвертом с data и проверяет путь и токен.
func envelopeServer(t *testing.T, wantPath, wantToken, data string) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != wantPath {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if wantToken != "" && r.Header.Get("Authorization") != "Bearer "+wantToken {
			t.Errorf("missing bearer token, got %q", r.Header.Get("Authorization"))
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"code":200,"status":"OK","message":"OK","data":` + data + `}`))
	}))
	t.Cleanup(ts.Close)
	return ts
}

func storedFile(t *testing.T, name string) string {
	t.Helper()
	dir, err := os.UserConfigDir()
	if err != nil {
		t.Fatalf("config dir: %v", err)
	}
	b, err := os.ReadFile(filepath.Join(dir, "market", name))
	if err != nil {
		return ""
	}
	return string(b)
}

var bg = context.Background()
