package staging_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/lexia/lexbrain/internal/staging"
)

func TestDirsEnsure(t *testing.T) {
	dirs := staging.Dirs{Base: t.TempDir()}
	if err := dirs.Ensure(); err != nil {
		t.Fatalf("expected nil error, got '%v'", err)
	}

	for _, dir := range []string{dirs.NormsJSON(), dirs.NormsProcessed(), dirs.Sentences(), dirs.SentencesProcessed()} {
		info, err := os.Stat(dir)
		if err != nil {
			t.Fatalf("expected '%s' to exist: %v", dir, err)
		}
		if !info.IsDir() {
			t.Errorf("expected '%s' to be a directory", dir)
		}
	}
}

func TestListStaged(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.json", "a.json", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("{}"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "sub.json"), 0o755); err != nil {
		t.Fatal(err)
	}

	files, err := staging.ListStaged(dir)
	if err != nil {
		t.Fatalf("expected nil error, got '%v'", err)
	}
	if len(files) != 2 {
		t.Fatalf("expected 2 staged files, got %d", len(files))
	}
	if filepath.Base(files[0]) != "a.json" || filepath.Base(files[1]) != "b.json" {
		t.Errorf("expected sorted json files, got %v", files)
	}
}

func TestListStagedMissingDir(t *testing.T) {
	files, err := staging.ListStaged(filepath.Join(t.TempDir(), "nope"))
	if err != nil {
		t.Fatalf("expected nil error for missing dir, got '%v'", err)
	}
	if files != nil {
		t.Errorf("expected nil file list, got %v", files)
	}
}

func TestStageRecordsSourceURL(t *testing.T) {
	dir := t.TempDir()

	path, err := staging.Stage(dir, "19696.json", []byte("{}"), "https://impo.uy/norma/19696")
	if err != nil {
		t.Fatalf("expected nil error, got '%v'", err)
	}

	if got := staging.SourceURL(path); got != "https://impo.uy/norma/19696" {
		t.Errorf("expected recorded source url, got '%s'", got)
	}

	// sidecars are not staged documents
	files, err := staging.ListStaged(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 1 || filepath.Base(files[0]) != "19696.json" {
		t.Errorf("expected only the document listed, got %v", files)
	}
}

func TestSourceURLWithoutSidecar(t *testing.T) {
	path := filepath.Join(t.TempDir(), "19696.json")
	if err := os.WriteFile(path, []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}

	if got := staging.SourceURL(path); got != "" {
		t.Errorf("expected empty source url, got '%s'", got)
	}
}

func TestMoveToCarriesSidecar(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()

	path, err := staging.Stage(src, "19696.json", []byte("{}"), "https://impo.uy/norma/19696")
	if err != nil {
		t.Fatal(err)
	}

	if err := staging.MoveTo(path, dst); err != nil {
		t.Fatalf("expected nil error, got '%v'", err)
	}

	moved := filepath.Join(dst, "19696.json")
	if got := staging.SourceURL(moved); got != "https://impo.uy/norma/19696" {
		t.Errorf("expected sidecar to travel with the file, got '%s'", got)
	}
	if got := staging.SourceURL(path); got != "" {
		t.Errorf("expected no sidecar left behind, got '%s'", got)
	}
}

func TestMoveTo(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	path := filepath.Join(src, "19696.json")
	if err := os.WriteFile(path, []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := staging.MoveTo(path, dst); err != nil {
		t.Fatalf("expected nil error, got '%v'", err)
	}
	if _, err := os.Stat(filepath.Join(dst, "19696.json")); err != nil {
		t.Errorf("expected file in destination dir: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("expected source file to be gone")
	}
}

func TestPendingListRoundtrip(t *testing.T) {
	list := staging.NewPendingList(filepath.Join(t.TempDir(), "links.txt"))

	urls, err := list.Load()
	if err != nil {
		t.Fatalf("expected nil error on missing file, got '%v'", err)
	}
	if urls != nil {
		t.Fatalf("expected no urls, got %v", urls)
	}

	for _, u := range []string{"https://impo.uy/1", "https://impo.uy/2", "https://impo.uy/3"} {
		if err := list.Append(u); err != nil {
			t.Fatalf("append failed: %v", err)
		}
	}

	urls, err = list.Load()
	if err != nil {
		t.Fatal(err)
	}
	if len(urls) != 3 {
		t.Fatalf("expected 3 urls, got %d", len(urls))
	}

	if err := list.Remove([]string{"https://impo.uy/2"}); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	urls, err = list.Load()
	if err != nil {
		t.Fatal(err)
	}
	if len(urls) != 2 || urls[0] != "https://impo.uy/1" || urls[1] != "https://impo.uy/3" {
		t.Fatalf("unexpected remainder %v", urls)
	}
}

func TestPendingListRemoveAllDeletesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "links.txt")
	list := staging.NewPendingList(path)

	if err := list.Append("https://impo.uy/1"); err != nil {
		t.Fatal(err)
	}
	if err := list.Remove([]string{"https://impo.uy/1"}); err != nil {
		t.Fatalf("remove failed: %v", err)
	}

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("expected empty pending list file to be deleted")
	}
}
