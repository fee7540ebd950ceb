package driver

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"lumos/internal/diag"
	"lumos/internal/fix"
	"lumos/internal/format"
	"lumos/internal/validator"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestCollectSchemaFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b.lumos"), "")
	writeFile(t, filepath.Join(dir, "a.lumos"), "")
	writeFile(t, filepath.Join(dir, "notes.txt"), "")
	writeFile(t, filepath.Join(dir, "nested", "c.lumos"), "")
	writeFile(t, filepath.Join(dir, ".hidden", "d.lumos"), "")

	got, err := CollectSchemaFiles([]string{dir, filepath.Join(dir, "a.lumos")})
	if err != nil {
		t.Fatalf("CollectSchemaFiles: %v", err)
	}
	want := []string{
		filepath.Join(dir, "a.lumos"),
		filepath.Join(dir, "b.lumos"),
		filepath.Join(dir, "nested", "c.lumos"),
	}
	if len(got) != len(want) {
		t.Fatalf("files = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("files[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestCollectSchemaFilesMissingPath(t *testing.T) {
	if _, err := CollectSchemaFiles([]string{"/no/such/path.lumos"}); err == nil {
		t.Fatal("expected error for missing path")
	}
}

func TestFormatPathsWritesChangedFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "acct.lumos")
	writeFile(t, path, "struct Account {\nowner: PublicKey;\n}\n")

	results, err := FormatPaths(context.Background(), []string{dir}, FormatOptions{
		Options: format.Options{SortAttributes: true, AlignFields: true},
	})
	if err != nil {
		t.Fatalf("FormatPaths: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	if !results[0].Changed {
		t.Fatal("expected file to be reported as changed")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	want := "struct Account {\n    owner: PublicKey;\n}\n"
	if string(data) != want {
		t.Fatalf("written = %q, want %q", string(data), want)
	}
}

func TestFormatPathsCheckDoesNotWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "acct.lumos")
	original := "struct Account {\nowner: PublicKey;\n}\n"
	writeFile(t, path, original)

	results, err := FormatPaths(context.Background(), []string{path}, FormatOptions{Check: true})
	if err != nil {
		t.Fatalf("FormatPaths: %v", err)
	}
	if !results[0].Changed {
		t.Fatal("check mode should still report the pending change")
	}

	data, _ := os.ReadFile(path)
	if string(data) != original {
		t.Fatal("check mode must not modify the file")
	}
}

func TestFormatPathsCleanFileUnchanged(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ok.lumos")
	writeFile(t, path, "struct Account {\n    owner: PublicKey;\n}\n")

	results, err := FormatPaths(context.Background(), []string{path}, FormatOptions{})
	if err != nil {
		t.Fatalf("FormatPaths: %v", err)
	}
	if results[0].Changed {
		t.Fatal("already formatted file reported as changed")
	}
}

func TestDiskCacheRoundTrip(t *testing.T) {
	cache := NewDiskCacheAt(t.TempDir())
	key := Digest{1, 2, 3}
	in := CheckPayload{
		Schema:        diskCacheSchemaVersion,
		HasDiagnostic: true,
		Code:          uint16(diag.SchemaMissingColon),
		Message:       "missing `:` in field declaration",
		StartLine:     1,
		StartCol:      4,
		EndLine:       1,
		EndCol:        20,
	}
	if err := cache.Put(key, &in); err != nil {
		t.Fatalf("Put: %v", err)
	}

	var out CheckPayload
	hit, err := cache.Get(key, &out)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !hit {
		t.Fatal("expected cache hit")
	}
	if out != in {
		t.Fatalf("payload = %+v, want %+v", out, in)
	}

	var miss CheckPayload
	hit, err = cache.Get(Digest{9}, &miss)
	if err != nil || hit {
		t.Fatalf("unknown key: hit=%v err=%v, want miss", hit, err)
	}
}

func TestDiskCacheSchemaMismatchIsMiss(t *testing.T) {
	cache := NewDiskCacheAt(t.TempDir())
	key := Digest{7}
	stale := CheckPayload{Schema: diskCacheSchemaVersion + 1, HasDiagnostic: true}
	if err := cache.Put(key, &stale); err != nil {
		t.Fatalf("Put: %v", err)
	}
	var out CheckPayload
	hit, err := cache.Get(key, &out)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if hit {
		t.Fatal("stale schema version must read as a miss")
	}
}

func TestDiskCacheDropAll(t *testing.T) {
	cache := NewDiskCacheAt(t.TempDir())
	key := Digest{5}
	payload := CheckPayload{Schema: diskCacheSchemaVersion, HasDiagnostic: true}
	if err := cache.Put(key, &payload); err != nil {
		t.Fatalf("Put: %v", err)
	}

	if err := cache.DropAll(); err != nil {
		t.Fatalf("DropAll: %v", err)
	}
	var out CheckPayload
	hit, err := cache.Get(key, &out)
	if err != nil || hit {
		t.Fatalf("after drop: hit=%v err=%v, want miss", hit, err)
	}

	// Dropping an already-empty cache is not an error.
	if err := cache.DropAll(); err != nil {
		t.Fatalf("DropAll (empty): %v", err)
	}
}

func TestCheckPathsDisplayPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "acct.lumos")
	writeFile(t, path, "struct Account {\n    owner: PublicKey;\n}\n")

	results, err := CheckPaths(context.Background(), []string{path}, CheckOptions{
		RawErrorText: "no markers here",
		BaseDir:      dir,
		PathMode:     "relative",
	})
	if err != nil {
		t.Fatalf("CheckPaths: %v", err)
	}
	want := "nested/acct.lumos"
	if results[0].DisplayPath != want {
		t.Fatalf("DisplayPath = %q, want %q", results[0].DisplayPath, want)
	}
	if results[0].Path != path {
		t.Fatalf("Path = %q, want %q", results[0].Path, path)
	}
}

func TestCheckPathsWithRawErrorText(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "acct.lumos")
	writeFile(t, path, "struct Account {\n    owner PublicKey;\n}\n")

	results, err := CheckPaths(context.Background(), []string{path}, CheckOptions{
		RawErrorText: "Caused by: missing `:` in field declaration",
	})
	if err != nil {
		t.Fatalf("CheckPaths: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}

	items := results[0].Bag.Items()
	if len(items) != 1 {
		t.Fatalf("got %d diagnostics, want 1", len(items))
	}
	d := items[0]
	if d.Code != diag.SchemaMissingColon {
		t.Fatalf("code = %v, want %v", d.Code, diag.SchemaMissingColon)
	}
	if d.Range.Start.Line != 1 {
		t.Fatalf("diagnostic on line %d, want 1", d.Range.Start.Line)
	}
	if len(d.Fixes) == 0 {
		t.Fatal("expected a quick fix to be attached")
	}
}

func TestCheckPathsUsesValidatorAndCache(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "acct.lumos")
	writeFile(t, path, "struct Account {\n    owner PublicKey;\n}\n")

	failing := validator.Config{
		Command: []string{"sh", "-c", "echo 'Error: missing colon in field declaration' >&2; exit 1"},
	}
	cache := NewDiskCacheAt(t.TempDir())

	results, err := CheckPaths(context.Background(), []string{path}, CheckOptions{
		Validator: failing,
		Cache:     cache,
	})
	if err != nil {
		t.Fatalf("CheckPaths: %v", err)
	}
	if results[0].FromCache {
		t.Fatal("first run must not be served from cache")
	}
	if got := results[0].Bag.Len(); got != 1 {
		t.Fatalf("got %d diagnostics, want 1", got)
	}

	// Second run: the compiler now succeeds, but the cached failure for the
	// unchanged content must be served instead of re-invoking it.
	passing := validator.Config{Command: []string{"sh", "-c", "exit 0"}}
	results, err = CheckPaths(context.Background(), []string{path}, CheckOptions{
		Validator: passing,
		Cache:     cache,
	})
	if err != nil {
		t.Fatalf("CheckPaths (cached): %v", err)
	}
	if !results[0].FromCache {
		t.Fatal("second run should be served from cache")
	}
	if got := results[0].Bag.Len(); got != 1 {
		t.Fatalf("cached run: got %d diagnostics, want 1", got)
	}
	if len(results[0].Bag.Items()[0].Fixes) == 0 {
		t.Fatal("cached diagnostic should have fixes re-proposed")
	}
}

func TestFixPathsAppliesAndWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "acct.lumos")
	writeFile(t, path, "struct Account {\n    owner PublicKey;\n}\n")

	results, err := FixPaths(context.Background(), []string{path}, FixOptions{
		Check: CheckOptions{RawErrorText: "Caused by: missing `:` in field declaration"},
		Apply: fix.ApplyOptions{Mode: fix.ApplyModeOnce},
	})
	if err != nil {
		t.Fatalf("FixPaths: %v", err)
	}
	if !results[0].Changed {
		t.Fatal("expected the fix to change the file")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	want := "struct Account {\n    owner: PublicKey;\n}\n"
	if string(data) != want {
		t.Fatalf("fixed = %q, want %q", string(data), want)
	}
}

func TestFixPathsDryRun(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "acct.lumos")
	original := "struct Account {\n    owner PublicKey;\n}\n"
	writeFile(t, path, original)

	results, err := FixPaths(context.Background(), []string{path}, FixOptions{
		Check:  CheckOptions{RawErrorText: "Caused by: missing `:` in field declaration"},
		Apply:  fix.ApplyOptions{Mode: fix.ApplyModeAll},
		DryRun: true,
	})
	if err != nil {
		t.Fatalf("FixPaths: %v", err)
	}
	if !results[0].Changed {
		t.Fatal("dry run should still report the change")
	}
	if results[0].Result == nil || results[0].Result.NewText == original {
		t.Fatal("dry run should carry the rewritten text")
	}

	data, _ := os.ReadFile(path)
	if string(data) != original {
		t.Fatal("dry run must not modify the file")
	}
}

func TestFixPathsNoFixes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ok.lumos")
	writeFile(t, path, "struct Account {\n    owner: PublicKey;\n}\n")

	results, err := FixPaths(context.Background(), []string{path}, FixOptions{
		Apply: fix.ApplyOptions{Mode: fix.ApplyModeAll},
		Check: CheckOptions{
			Validator: validator.Config{Command: []string{"sh", "-c", "exit 0"}},
		},
	})
	if err != nil {
		t.Fatalf("FixPaths: %v", err)
	}
	if results[0].Changed || results[0].Err != nil {
		t.Fatalf("clean file: changed=%v err=%v, want neither", results[0].Changed, results[0].Err)
	}
}
