package audit

import (
	"os"
	"strings"
	"testing"

	"github.com/lockbox-sh/lockbox/internal/configs"
)

func withTempDataPath(t *testing.T) {
	t.Helper()
	oldPath := configs.UserLockboxSettings.UserDataPath
	configs.UserLockboxSettings.UserDataPath = t.TempDir()
	t.Cleanup(func() {
		configs.UserLockboxSettings.UserDataPath = oldPath
	})
}

func TestLogAndReadEntries(t *testing.T) {
	withTempDataPath(t)

	Log(Entry{Operation: "put", Name: "MyPwd", Overwrite: true})
	Log(Entry{Operation: "get", Name: "MyPwd"})
	Log(Entry{Operation: "rotate", Count: 3})

	entries, err := ReadEntries()
	if err != nil {
		t.Fatalf("ReadEntries failed: %v", err)
	}

	if len(entries) != 3 {
		t.Fatalf("Expected 3 entries, got %d", len(entries))
	}

	if entries[0].Operation != "put" || entries[0].Name != "MyPwd" || !entries[0].Overwrite {
		t.Errorf("Unexpected first entry: %+v", entries[0])
	}
	if entries[2].Count != 3 {
		t.Errorf("Expected rotate count 3, got %d", entries[2].Count)
	}

	for i, entry := range entries {
		if entry.Timestamp == "" {
			t.Errorf("Entry %d has no timestamp", i)
		}
		if entry.User == "" {
			t.Errorf("Entry %d has no user", i)
		}
	}
}

func TestReadEntriesMissingLog(t *testing.T) {
	withTempDataPath(t)

	entries, err := ReadEntries()
	if err != nil {
		t.Fatalf("ReadEntries failed: %v", err)
	}
	if entries != nil {
		t.Errorf("Expected nil entries, got %v", entries)
	}
}

func TestParseEntriesSkipsMalformedLines(t *testing.T) {
	data := strings.Join([]string{
		`{"ts":"2026-01-02T03:04:05.000000Z","user":"alice","op":"put","name":"MyPwd"}`,
		`this line is not JSON`,
		``,
		`{"ts":"2026-01-02T03:04:06.000000Z","user":"alice","op":"get","name":"MyPwd"}`,
	}, "\n")

	entries, err := ParseEntries([]byte(data))
	if err != nil {
		t.Fatalf("ParseEntries failed: %v", err)
	}

	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(entries))
	}
	if entries[1].Operation != "get" {
		t.Errorf("Expected second entry op %q, got %q", "get", entries[1].Operation)
	}
}

func TestLogFilePermissions(t *testing.T) {
	withTempDataPath(t)

	Log(Entry{Operation: "init"})

	info, err := os.Stat(LogPath())
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("Expected 0600 permissions, got %o", perm)
	}
}
