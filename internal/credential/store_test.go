package credential

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestFileStore_MissingFileIsAbsent(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "credential.toml"))
	if token, ok := s.Get(); ok || token != "" {
		t.Fatalf("Get = (%q, %v), want absent", token, ok)
	}
}

func TestFileStore_SetGetClear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "credential.toml")
	s := NewFileStore(path)

	if err := s.Set("abc123"); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}
	token, ok := s.Get()
	if !ok || token != "abc123" {
		t.Fatalf("Get = (%q, %v), want (abc123, true)", token, ok)
	}

	if runtime.GOOS != "windows" {
		info, err := os.Stat(path)
		if err != nil {
			t.Fatalf("Stat: %v", err)
		}
		if perm := info.Mode().Perm(); perm != 0o600 {
			t.Fatalf("file mode = %o, want 600", perm)
		}
	}

	if err := s.Clear(); err != nil {
		t.Fatalf("Clear returned error: %v", err)
	}
	if _, ok := s.Get(); ok {
		t.Fatalf("Get after Clear reported a credential")
	}
	if err := s.Clear(); err != nil {
		t.Fatalf("second Clear returned error: %v", err)
	}
}

func TestFileStore_MalformedFileIsAbsent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credential.toml")
	if err := os.WriteFile(path, []byte("token = [\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, ok := NewFileStore(path).Get(); ok {
		t.Fatalf("Get on malformed file reported a credential")
	}

	if err := os.WriteFile(path, []byte("token = \"   \"\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, ok := NewFileStore(path).Get(); ok {
		t.Fatalf("Get on blank token reported a credential")
	}
}

func TestFileStore_SetRejectsEmpty(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "credential.toml"))
	if err := s.Set("  "); err == nil {
		t.Fatalf("Set(blank) returned nil error, want error")
	}
}

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore("")
	if _, ok := s.Get(); ok {
		t.Fatalf("empty MemoryStore reported a credential")
	}
	if err := s.Set("tok"); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}
	if token, ok := s.Get(); !ok || token != "tok" {
		t.Fatalf("Get = (%q, %v), want (tok, true)", token, ok)
	}
	if err := s.Clear(); err != nil {
		t.Fatalf("Clear returned error: %v", err)
	}
	if _, ok := s.Get(); ok {
		t.Fatalf("Get after Clear reported a credential")
	}
}
