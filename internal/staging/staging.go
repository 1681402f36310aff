// Package staging manages the on-disk layout of scraped documents awaiting
// ingestion, plus the pending-links file used to retry failed URLs.
package staging

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Dirs describes the data directory layout under a single base path.
type Dirs struct {
	Base string
}

func (d Dirs) NormsJSON() string {
	return filepath.Join(d.Base, "norms", "json")
}

func (d Dirs) NormsProcessed() string {
	return filepath.Join(d.Base, "norms", "processed_json")
}

func (d Dirs) Sentences() string {
	return filepath.Join(d.Base, "sentences", "json")
}

func (d Dirs) SentencesProcessed() string {
	return filepath.Join(d.Base, "sentences", "processed_json")
}

func (d Dirs) NormsLinksFile() string {
	return filepath.Join(d.Base, "norms_links.txt")
}

func (d Dirs) Ensure() error {
	for _, dir := range []string{d.NormsJSON(), d.NormsProcessed(), d.Sentences(), d.SentencesProcessed()} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create staging dir '%s': %w", dir, err)
		}
	}
	return nil
}

// ListStaged returns the staged JSON files in dir, sorted by name.
func ListStaged(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	files := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	sort.Strings(files)
	return files, nil
}

// sourceSuffix marks the sidecar holding the URL a staged file was
// fetched from.
const sourceSuffix = ".src"

// Stage writes a scraped document into dir, recording the URL it came from
// in a sidecar so the pending list can be pruned once the document is
// processed.
func Stage(dir string, name string, data []byte, sourceURL string) (string, error) {
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to stage '%s': %w", name, err)
	}
	if sourceURL != "" {
		if err := os.WriteFile(path+sourceSuffix, []byte(sourceURL+"\n"), 0o644); err != nil {
			return "", fmt.Errorf("failed to record source url for '%s': %w", name, err)
		}
	}
	return path, nil
}

// SourceURL returns the URL a staged file was fetched from, or an empty
// string when none was recorded.
func SourceURL(path string) string {
	data, err := os.ReadFile(path + sourceSuffix)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// MoveTo relocates a processed staging file into dir, keeping its name.
// A source URL sidecar travels with the file.
func MoveTo(path string, dir string) error {
	if err := os.Rename(path, filepath.Join(dir, filepath.Base(path))); err != nil {
		return err
	}

	src := path + sourceSuffix
	if _, err := os.Stat(src); err == nil {
		return os.Rename(src, filepath.Join(dir, filepath.Base(src)))
	}
	return nil
}

// PendingList is a newline-delimited file of URLs still awaiting
// successful processing. Processed URLs are removed so a rerun only
// retries what failed.
type PendingList struct {
	path string
}

func NewPendingList(path string) *PendingList {
	return &PendingList{path: path}
}

func (l *PendingList) Load() ([]string, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	urls := make([]string, 0)
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			urls = append(urls, line)
		}
	}
	return urls, nil
}

func (l *PendingList) Append(url string) error {
	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = fmt.Fprintln(f, url)
	return err
}

// Remove rewrites the list without the given processed URLs. An empty
// remainder deletes the file.
func (l *PendingList) Remove(processed []string) error {
	if len(processed) == 0 {
		return nil
	}

	urls, err := l.Load()
	if err != nil {
		return err
	}
	if len(urls) == 0 {
		return nil
	}

	done := make(map[string]bool, len(processed))
	for _, url := range processed {
		done[url] = true
	}

	remaining := make([]string, 0, len(urls))
	for _, url := range urls {
		if !done[url] {
			remaining = append(remaining, url)
		}
	}

	if len(remaining) == 0 {
		err := os.Remove(l.path)
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	return l.Replace(remaining)
}

// Replace atomically rewrites the list with the given URLs.
func (l *PendingList) Replace(urls []string) error {
	tmp := l.path + ".tmp"
	content := strings.Join(urls, "\n") + "\n"
	if err := os.WriteFile(tmp, []byte(content), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, l.path)
}
