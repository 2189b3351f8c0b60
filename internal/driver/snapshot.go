package driver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"markxs/internal/diagfmt"
)

// SnapshotStatus classifies the outcome of checking one fixture.
type SnapshotStatus uint8

const (
	SnapshotMatch SnapshotStatus = iota
	SnapshotMismatch
	SnapshotMissing
	SnapshotError
	SnapshotUpdated
)

func (s SnapshotStatus) String() string {
	switch s {
	case SnapshotMatch:
		return "match"
	case SnapshotMismatch:
		return "mismatch"
	case SnapshotMissing:
		return "missing"
	case SnapshotUpdated:
		return "updated"
	}
	return "error"
}

// SnapshotResult is the outcome of checking one fixture against its expected
// snapshot.
type SnapshotResult struct {
	Fixture  string
	Expected string
	Status   SnapshotStatus
	Detail   string // diff summary or error text
	Cached   bool   // rendering was served from the disk cache
}

// SnapshotEvent is emitted once per fixture as checking progresses, for
// progress display.
type SnapshotEvent struct {
	Index  int
	Total  int
	Result SnapshotResult
}

// CheckOptions configures CheckSnapshots.
type CheckOptions struct {
	FixturesDir    string
	ExpectedDir    string // default FixturesDir/expected
	Update         bool   // rewrite expected snapshots instead of comparing
	Jobs           int
	MaxDiagnostics int
	Cache          *DiskCache           // optional
	Events         chan<- SnapshotEvent // optional, closed by CheckSnapshots
}

// CheckSnapshots renders every fixture and compares the result against its
// expected snapshot. Results come back sorted by fixture path. The returned
// error covers infrastructure failures only; per-fixture problems are
// reported through SnapshotResult.
func CheckSnapshots(ctx context.Context, opts CheckOptions) ([]SnapshotResult, error) {
	if opts.Events != nil {
		defer close(opts.Events)
	}

	expectedDir := opts.ExpectedDir
	if expectedDir == "" {
		expectedDir = filepath.Join(opts.FixturesDir, "expected")
	}

	fixtures, err := ListFixtures(opts.FixturesDir)
	if err != nil {
		return nil, err
	}
	if len(fixtures) == 0 {
		return nil, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	results := make([]SnapshotResult, len(fixtures))
	var eventMu sync.Mutex
	emitted := 0

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(fixtures)))

	for i, fixture := range fixtures {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			expected := filepath.Join(expectedDir, stem(fixture)+".json")
			results[i] = checkOne(fixture, expected, opts)

			if opts.Events != nil {
				eventMu.Lock()
				emitted++
				opts.Events <- SnapshotEvent{Index: emitted, Total: len(fixtures), Result: results[i]}
				eventMu.Unlock()
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

// ListFixtures returns the *.xs files directly under dir, sorted. Unlike
// ParseDir this does not recurse: expected snapshots live in a subdirectory
// and fixture sets are flat.
func ListFixtures(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var fixtures []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".xs") {
			fixtures = append(fixtures, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(fixtures)
	return fixtures, nil
}

func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func checkOne(fixture, expected string, opts CheckOptions) SnapshotResult {
	res := SnapshotResult{Fixture: fixture, Expected: expected}

	actual, cached, err := renderSnapshot(fixture, opts)
	if err != nil {
		res.Status = SnapshotError
		res.Detail = err.Error()
		return res
	}
	res.Cached = cached

	if opts.Update {
		if err := writeSnapshot(expected, actual); err != nil {
			res.Status = SnapshotError
			res.Detail = err.Error()
			return res
		}
		res.Status = SnapshotUpdated
		return res
	}

	expectedRaw, err := os.ReadFile(expected)
	if err != nil {
		if os.IsNotExist(err) {
			res.Status = SnapshotMissing
			res.Detail = fmt.Sprintf("expected snapshot missing: %s", expected)
			return res
		}
		res.Status = SnapshotError
		res.Detail = err.Error()
		return res
	}

	equal, err := jsonEqual(actual, expectedRaw)
	if err != nil {
		res.Status = SnapshotError
		res.Detail = fmt.Sprintf("expected snapshot is not valid JSON: %v", err)
		return res
	}
	if !equal {
		res.Status = SnapshotMismatch
		res.Detail = diffSummary(actual, expectedRaw)
		return res
	}
	res.Status = SnapshotMatch
	return res
}

// renderSnapshot produces the JSON snapshot for a fixture, consulting the
// disk cache when one is configured.
func renderSnapshot(fixture string, opts CheckOptions) ([]byte, bool, error) {
	content, err := os.ReadFile(fixture)
	if err != nil {
		return nil, false, err
	}

	result := ParseVirtual(fixture, content, opts.MaxDiagnostics)
	key := result.File.Hash

	if opts.Cache != nil {
		var payload DiskPayload
		if hit, err := opts.Cache.Get(key, &payload); err == nil && hit {
			return payload.Snapshot, true, nil
		}
	}

	var buf bytes.Buffer
	if err := diagfmt.JSON(&buf, result.Doc, result.File); err != nil {
		return nil, false, err
	}
	rendered := buf.Bytes()

	if opts.Cache != nil {
		// Best effort: a failed cache write never fails the check.
		_ = opts.Cache.Put(key, &DiskPayload{
			Schema:   diskCacheSchemaVersion,
			Path:     fixture,
			Snapshot: rendered,
		})
	}
	return rendered, false, nil
}

func writeSnapshot(path string, content []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, content, 0o644)
}

// jsonEqual compares two JSON documents structurally, so formatting and key
// order differences do not count as mismatches.
func jsonEqual(a, b []byte) (bool, error) {
	var av, bv any
	if err := json.Unmarshal(a, &av); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b, &bv); err != nil {
		return false, err
	}
	return equalValues(av, bv), nil
}

func equalValues(a, b any) bool {
	switch av := a.(type) {
	case map[string]any:
		bv, ok := b.(map[string]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for k, v := range av {
			bvk, ok := bv[k]
			if !ok || !equalValues(v, bvk) {
				return false
			}
		}
		return true
	case []any:
		bv, ok := b.([]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !equalValues(av[i], bv[i]) {
				return false
			}
		}
		return true
	default:
		return a == b
	}
}

// diffSummary reports the first diverging line between the canonical forms
// of the two documents.
func diffSummary(actual, expected []byte) string {
	actualLines := strings.Split(canonicalJSON(actual), "\n")
	expectedLines := strings.Split(canonicalJSON(expected), "\n")

	limit := min(len(actualLines), len(expectedLines))
	for i := range limit {
		if actualLines[i] != expectedLines[i] {
			return fmt.Sprintf("first difference at canonical line %d:\n  actual:   %s\n  expected: %s",
				i+1, strings.TrimSpace(actualLines[i]), strings.TrimSpace(expectedLines[i]))
		}
	}
	return fmt.Sprintf("documents differ in length: %d vs %d canonical lines",
		len(actualLines), len(expectedLines))
}

// canonicalJSON reindents a JSON document with sorted keys.
func canonicalJSON(raw []byte) string {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return string(raw)
	}
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return string(raw)
	}
	return string(out)
}
