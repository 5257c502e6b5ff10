package app

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/agentstation/bookmap"
	"github.com/agentstation/bookmap/pkg/catalog"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	t.Setenv("BOOKMAP_STORE", "memory")

	app, err := New("1.0.0", "abc123", "2024-01-01", "test",
		WithClientOptions(bookmap.WithCatalog(catalog.NewMemory(catalog.TestBooks(t, 5, "Fiction")...))),
	)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	t.Cleanup(func() { _ = app.Shutdown(context.Background()) })
	return app
}

// TestApp_New verifies app initialization.
func TestApp_New(t *testing.T) {
	app := newTestApp(t)

	if app.Version() != "1.0.0" {
		t.Errorf("Version() = %s, want 1.0.0", app.Version())
	}
	if app.Commit() != "abc123" {
		t.Errorf("Commit() = %s, want abc123", app.Commit())
	}
	if app.Date() != "2024-01-01" {
		t.Errorf("Date() = %s, want 2024-01-01", app.Date())
	}
	if app.BuiltBy() != "test" {
		t.Errorf("BuiltBy() = %s, want test", app.BuiltBy())
	}
	if app.Logger() == nil {
		t.Error("Logger() returned nil")
	}
	if app.Config() == nil {
		t.Error("Config() returned nil")
	}
}

// TestApp_Bookmap_ThreadSafe verifies concurrent Bookmap() calls share one client.
func TestApp_Bookmap_ThreadSafe(t *testing.T) {
	app := newTestApp(t)

	const goroutines = 50
	var wg sync.WaitGroup
	results := make([]bookmap.Client, goroutines)
	errs := make([]error, goroutines)

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			results[idx], errs[idx] = app.Bookmap()
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Errorf("Goroutine %d: Bookmap() failed: %v", i, err)
		}
	}
	for i, bm := range results[1:] {
		if bm != results[0] {
			t.Errorf("Goroutine %d got a different client", i+1)
		}
	}
}

// TestApp_Shutdown verifies shutdown releases the client.
func TestApp_Shutdown(t *testing.T) {
	app := newTestApp(t)

	first, err := app.Bookmap()
	if err != nil {
		t.Fatalf("Bookmap() failed: %v", err)
	}
	if err := app.Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown() failed: %v", err)
	}
	if err := app.Shutdown(context.Background()); err != nil {
		t.Fatalf("second Shutdown() failed: %v", err)
	}

	second, err := app.Bookmap()
	if err != nil {
		t.Fatalf("Bookmap() after shutdown failed: %v", err)
	}
	if first == second {
		t.Error("expected a new client after shutdown")
	}
}

// TestApp_Execute runs commands through the root command.
func TestApp_Execute(t *testing.T) {
	app := newTestApp(t)
	ctx := context.Background()

	if err := app.Execute(ctx, []string{"wishlist", "add", "3", "-q"}); err != nil {
		t.Fatalf("wishlist add failed: %v", err)
	}

	bm, err := app.Bookmap()
	if err != nil {
		t.Fatal(err)
	}
	ids, err := bm.Favorites(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(ids) != 1 || ids[0] != 3 {
		t.Errorf("Favorites() = %v, want [3]", ids)
	}

	if err := app.Execute(ctx, []string{"book", "nope"}); err == nil {
		t.Error("expected an error for a non-numeric id")
	}
	if err := app.Execute(ctx, []string{"browse", "-o", "xml"}); err == nil {
		t.Error("expected an error for an unknown format")
	}
}

// TestApp_VersionCommand verifies version output.
func TestApp_VersionCommand(t *testing.T) {
	app := newTestApp(t)

	root := app.createRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"version", "--verbose"})
	if err := root.Execute(); err != nil {
		t.Fatalf("version failed: %v", err)
	}

	got := out.String()
	if !strings.HasPrefix(got, "bookmap 1.0.0\n") {
		t.Errorf("unexpected version output %q", got)
	}
	if !strings.Contains(got, "abc123") {
		t.Errorf("verbose version output should include the commit: %q", got)
	}
}

// TestApp_CommandGroups verifies every command is registered.
func TestApp_CommandGroups(t *testing.T) {
	app := newTestApp(t)
	root := app.createRootCommand()

	want := map[string]string{
		"browse":   "core",
		"genres":   "core",
		"book":     "core",
		"wishlist": "core",
		"version":  "management",
	}
	for name, group := range want {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("command %s not registered", name)
			continue
		}
		if cmd.GroupID != group {
			t.Errorf("%s GroupID = %s, want %s", name, cmd.GroupID, group)
		}
	}
}
