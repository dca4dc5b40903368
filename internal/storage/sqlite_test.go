package storage

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/hoanghai1803/mediatrack/internal/models"
)

// newTestDB creates an in-memory SQLite database with migrations applied.
// The database is automatically closed when the test completes.
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := OpenDatabase(":memory:")
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := RunMigrations(context.Background(), db); err != nil {
		t.Fatalf("running migrations: %v", err)
	}

	return db
}

// newTestStore creates an in-memory Store with migrations applied.
func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(newTestDB(t))
}

// seedUser creates a user and fails the test on error.
func seedUser(t *testing.T, store *Store, name string) int64 {
	t.Helper()
	u, err := store.CreateUser(context.Background(), name)
	if err != nil {
		t.Fatalf("CreateUser(%q) error: %v", name, err)
	}
	return u.ID
}

func TestOpenDatabase_InMemory(t *testing.T) {
	db, err := OpenDatabase(":memory:")
	if err != nil {
		t.Fatalf("OpenDatabase(:memory:) error: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		t.Fatalf("Ping() error: %v", err)
	}
}

func TestOpenDatabase_CreatesDirectoryAndFile(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "nested", "deep", "test.db")

	db, err := OpenDatabase(dbPath)
	if err != nil {
		t.Fatalf("OpenDatabase(%q) error: %v", dbPath, err)
	}
	defer db.Close()

	if _, err := os.Stat(dbPath); err != nil {
		t.Fatalf("database file not created at %q: %v", dbPath, err)
	}
}

func TestOpenDatabase_ForeignKeysEnabled(t *testing.T) {
	db := newTestDB(t)

	var enabled int
	if err := db.QueryRow("PRAGMA foreign_keys").Scan(&enabled); err != nil {
		t.Fatalf("reading foreign_keys pragma: %v", err)
	}
	if enabled != 1 {
		t.Errorf("foreign_keys = %d, want 1", enabled)
	}
}

func TestRunMigrations_AppliesSchema(t *testing.T) {
	db := newTestDB(t)

	for _, table := range []string{"users", "user_preferences", "library_entries", "schema_migrations"} {
		var name string
		err := db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err != nil {
			t.Errorf("table %q not found: %v", table, err)
		}
	}

	var idx string
	if err := db.QueryRow(
		"SELECT name FROM sqlite_master WHERE type='index' AND name='idx_library_user_added'",
	).Scan(&idx); err != nil {
		t.Errorf("index idx_library_user_added not found: %v", err)
	}

	// The additive updated_at column from migration 002 must exist.
	var count int
	if err := db.QueryRow(
		"SELECT COUNT(*) FROM pragma_table_info('library_entries') WHERE name = 'updated_at'",
	).Scan(&count); err != nil {
		t.Fatalf("inspecting library_entries columns: %v", err)
	}
	if count != 1 {
		t.Errorf("updated_at column count = %d, want 1", count)
	}
}

func TestRunMigrations_Idempotent(t *testing.T) {
	db, err := OpenDatabase(":memory:")
	if err != nil {
		t.Fatalf("OpenDatabase error: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	if err := RunMigrations(ctx, db); err != nil {
		t.Fatalf("first RunMigrations error: %v", err)
	}
	if err := RunMigrations(ctx, db); err != nil {
		t.Fatalf("second RunMigrations error: %v", err)
	}

	migrations, err := embeddedMigrations()
	if err != nil {
		t.Fatalf("embeddedMigrations() error: %v", err)
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count); err != nil {
		t.Fatalf("counting migrations: %v", err)
	}
	if count != len(migrations) {
		t.Fatalf("expected %d migration records, got %d", len(migrations), count)
	}
}

func TestRunMigrations_PreservesDataAcrossRestart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.db")
	ctx := context.Background()

	db, err := OpenDatabase(path)
	if err != nil {
		t.Fatalf("OpenDatabase error: %v", err)
	}
	if err := RunMigrations(ctx, db); err != nil {
		t.Fatalf("RunMigrations error: %v", err)
	}
	store := NewStore(db)
	userID := seedUser(t, store, "alice")
	if err := store.AddLibraryEntry(ctx, &models.LibraryEntry{TMDBID: 42, UserID: userID, MediaType: "movie", Status: "to-watch", WatchPreference: "all"}); err != nil {
		t.Fatalf("AddLibraryEntry error: %v", err)
	}
	db.Close()

	db, err = OpenDatabase(path)
	if err != nil {
		t.Fatalf("reopening database: %v", err)
	}
	defer db.Close()
	if err := RunMigrations(ctx, db); err != nil {
		t.Fatalf("RunMigrations after restart error: %v", err)
	}

	entries, err := NewStore(db).ListLibrary(ctx, userID)
	if err != nil {
		t.Fatalf("ListLibrary error: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d entries after restart, want 1", len(entries))
	}
}

func TestStorePing(t *testing.T) {
	store := newTestStore(t)
	if err := store.Ping(context.Background()); err != nil {
		t.Fatalf("Ping() error: %v", err)
	}

	store.Close()
	if err := store.Ping(context.Background()); err == nil {
		t.Fatal("expected error pinging closed store, got nil")
	}
}

func TestParseVersion(t *testing.T) {
	tests := []struct {
		filename string
		want     int
	}{
		{"001_initial_schema.sql", 1},
		{"002_library_updated_at.sql", 2},
		{"010_x.sql", 10},
		{"readme.sql", 0},
		{"abc_def.sql", 0},
	}

	for _, tt := range tests {
		if got := parseVersion(tt.filename); got != tt.want {
			t.Errorf("parseVersion(%q) = %d, want %d", tt.filename, got, tt.want)
		}
	}
}

func TestParseTime(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string // expected in "2006-01-02 15:04:05.000" format, or "zero"
	}{
		{
			name:  "sqlite format",
			input: "2025-01-15 10:30:00",
			want:  "2025-01-15 10:30:00.000",
		},
		{
			name:  "sqlite format with millis",
			input: "2025-01-15 10:30:00.123",
			want:  "2025-01-15 10:30:00.123",
		},
		{
			name:  "RFC3339",
			input: "2025-01-15T10:30:00Z",
			want:  "2025-01-15 10:30:00.000",
		},
		{
			name:  "invalid",
			input: "not-a-date",
			want:  "zero",
		},
		{
			name:  "empty",
			input: "",
			want:  "zero",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseTime(tt.input)
			if tt.want == "zero" {
				if !got.IsZero() {
					t.Errorf("parseTime(%q) = %v, want zero time", tt.input, got)
				}
				return
			}
			gotStr := got.Format("2006-01-02 15:04:05.000")
			if gotStr != tt.want {
				t.Errorf("parseTime(%q) = %q, want %q", tt.input, gotStr, tt.want)
			}
		})
	}
}

func TestParseTimePtr(t *testing.T) {
	if got := parseTimePtr(sql.NullString{}); got != nil {
		t.Errorf("parseTimePtr(NULL) = %v, want nil", got)
	}
	if got := parseTimePtr(sql.NullString{String: "garbage", Valid: true}); got != nil {
		t.Errorf("parseTimePtr(garbage) = %v, want nil", got)
	}
	got := parseTimePtr(sql.NullString{String: "2025-01-15 10:30:00", Valid: true})
	if got == nil {
		t.Fatal("parseTimePtr returned nil for valid input")
	}
	if got.Format("2006-01-02 15:04:05") != "2025-01-15 10:30:00" {
		t.Errorf("parseTimePtr = %v", got)
	}
}
