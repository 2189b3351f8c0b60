package driver_test

import (
	"bytes"
	"crypto/sha256"
	"path/filepath"
	"testing"

	"markxs/internal/driver"
)

func TestDiskCacheRoundTrip(t *testing.T) {
	cache, err := driver.OpenDiskCacheAt(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatalf("OpenDiskCacheAt: %v", err)
	}

	key := sha256.Sum256([]byte("content"))
	in := &driver.DiskPayload{
		Schema:   1,
		Path:     "doc.xs",
		Snapshot: []byte(`{"type":"Document"}`),
	}
	if err := cache.Put(key, in); err != nil {
		t.Fatalf("Put: %v", err)
	}

	var out driver.DiskPayload
	hit, err := cache.Get(key, &out)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !hit {
		t.Fatal("expected a hit")
	}
	if out.Path != in.Path || !bytes.Equal(out.Snapshot, in.Snapshot) {
		t.Fatalf("payload mangled: %+v", out)
	}
}

func TestDiskCacheMiss(t *testing.T) {
	cache, err := driver.OpenDiskCacheAt(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatalf("OpenDiskCacheAt: %v", err)
	}

	var out driver.DiskPayload
	hit, err := cache.Get(sha256.Sum256([]byte("absent")), &out)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if hit {
		t.Fatal("expected a miss")
	}
}

func TestDiskCacheDropAll(t *testing.T) {
	cache, err := driver.OpenDiskCacheAt(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatalf("OpenDiskCacheAt: %v", err)
	}

	key := sha256.Sum256([]byte("content"))
	if err := cache.Put(key, &driver.DiskPayload{Schema: 1}); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := cache.DropAll(); err != nil {
		t.Fatalf("DropAll: %v", err)
	}

	var out driver.DiskPayload
	if hit, _ := cache.Get(key, &out); hit {
		t.Fatal("drained cache must miss")
	}
}
