// Package publish reconciles the rendered page set with the output
// directory. The build owns a fixed namespace inside the output dir plus
// the listing slug directories it generated; everything else in the
// directory is hand-authored and is never touched.
package publish

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// manifestName records which top-level entries the previous build created,
// so listing directories dropped from the sheet can be removed next run.
const manifestName = ".site-manifest.json"

// fixedManaged are top-level entries that belong to the build regardless of
// what any manifest says.
var fixedManaged = []string{"index.html", "sitemap.xml", "robots.txt", "area", "tag", "price", "k"}

// Document is one file to publish, path relative to the site root.
type Document struct {
	Path string
	Body []byte
}

// Error represents a failure while staging or swapping the output tree.
type Error struct {
	Path    string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("publish error: %s (%s): %v", e.Message, e.Path, e.Cause)
	}
	return fmt.Sprintf("publish error: %s (%s)", e.Message, e.Path)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Publisher writes build output into one site directory.
type Publisher struct {
	outputDir string
}

func New(outputDir string) *Publisher {
	return &Publisher{outputDir: outputDir}
}

// Publish stages the full document set in a temporary directory, deletes
// the managed namespace from the output directory, then moves the staged
// entries in. Nothing is deleted until every document has been staged, so
// a failed build leaves the previous site intact.
func (p *Publisher) Publish(docs []Document) error {
	for _, doc := range docs {
		if !validPath(doc.Path) {
			return &Error{Path: doc.Path, Message: "document path escapes the site root"}
		}
	}

	if err := os.MkdirAll(p.outputDir, 0o755); err != nil {
		return &Error{Path: p.outputDir, Message: "failed to create output directory", Cause: err}
	}

	// Staging inside the parent keeps the final rename on one filesystem.
	stage, err := os.MkdirTemp(filepath.Dir(p.outputDir), ".site-stage-")
	if err != nil {
		return &Error{Path: p.outputDir, Message: "failed to create staging directory", Cause: err}
	}
	defer os.RemoveAll(stage)

	for _, doc := range docs {
		target := filepath.Join(stage, filepath.FromSlash(doc.Path))
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return &Error{Path: doc.Path, Message: "failed to stage directory", Cause: err}
		}
		if err := os.WriteFile(target, doc.Body, 0o644); err != nil {
			return &Error{Path: doc.Path, Message: "failed to stage document", Cause: err}
		}
	}

	current := topLevelEntries(docs)
	if err := writeManifest(filepath.Join(stage, manifestName), current); err != nil {
		return err
	}

	managed := managedSet(current, readManifest(filepath.Join(p.outputDir, manifestName)))
	for _, entry := range managed {
		if err := os.RemoveAll(filepath.Join(p.outputDir, entry)); err != nil {
			return &Error{Path: entry, Message: "failed to remove managed entry", Cause: err}
		}
	}

	staged, err := os.ReadDir(stage)
	if err != nil {
		return &Error{Path: stage, Message: "failed to read staging directory", Cause: err}
	}
	for _, entry := range staged {
		from := filepath.Join(stage, entry.Name())
		to := filepath.Join(p.outputDir, entry.Name())
		if err := os.Rename(from, to); err != nil {
			return &Error{Path: entry.Name(), Message: "failed to move staged entry", Cause: err}
		}
	}
	return nil
}

func validPath(path string) bool {
	if path == "" || strings.HasPrefix(path, "/") {
		return false
	}
	clean := filepath.ToSlash(filepath.Clean(path))
	return clean == path && clean != ".." && !strings.HasPrefix(clean, "../")
}

// topLevelEntries returns the sorted distinct first path segments of the
// document set plus the manifest itself.
func topLevelEntries(docs []Document) []string {
	seen := map[string]struct{}{manifestName: {}}
	for _, doc := range docs {
		top, _, _ := strings.Cut(doc.Path, "/")
		seen[top] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for entry := range seen {
		out = append(out, entry)
	}
	sort.Strings(out)
	return out
}

// managedSet is the union of the fixed namespace, the entries this build
// produces and the entries the previous build recorded.
func managedSet(current, previous []string) []string {
	seen := make(map[string]struct{})
	for _, group := range [][]string{fixedManaged, current, previous} {
		for _, entry := range group {
			seen[entry] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for entry := range seen {
		out = append(out, entry)
	}
	sort.Strings(out)
	return out
}

func writeManifest(path string, entries []string) error {
	raw, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return &Error{Path: path, Message: "failed to encode manifest", Cause: err}
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return &Error{Path: path, Message: "failed to write manifest", Cause: err}
	}
	return nil
}

// readManifest tolerates a missing or corrupt manifest; the fixed namespace
// still gets reconciled either way.
func readManifest(path string) []string {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	var entries []string
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil
	}
	return entries
}
