package storage

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	bolt "go.etcd.io/bbolt"
)

func openTestStore(t *testing.T, opts Options) *boltStore {
	t.Helper()
	storeRaw, err := openBolt(filepath.Join(t.TempDir(), "nested", "lookups.db"), normalizeOptions(opts))
	if err != nil {
		t.Fatalf("openBolt: %v", err)
	}
	store := storeRaw.(*boltStore)
	t.Cleanup(func() { store.Close() })
	return store
}

func entryCount(t *testing.T, b *boltStore) int {
	t.Helper()
	n := 0
	err := b.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(responseBucket))
		if bucket == nil {
			return fmt.Errorf("response bucket missing")
		}
		n = bucket.Stats().KeyN
		return nil
	})
	if err != nil {
		t.Fatalf("count entries: %v", err)
	}
	return n
}

func TestBoltStorePutGet(t *testing.T) {
	store := openTestStore(t, Options{TTL: time.Hour, CleanupInterval: time.Hour})

	if _, ok, err := store.Get("k1"); err != nil || ok {
		t.Fatalf("expected miss, ok=%v err=%v", ok, err)
	}

	body := []byte(`{"version":"v50","results":[]}`)
	if err := store.Put("k1", body); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, ok, err := store.Get("k1")
	if err != nil || !ok {
		t.Fatalf("expected hit, ok=%v err=%v", ok, err)
	}
	if string(got) != string(body) {
		t.Fatalf("body = %s", got)
	}
}

func TestBoltStoreEmptyBodyIsAHit(t *testing.T) {
	store := openTestStore(t, Options{TTL: time.Hour, CleanupInterval: time.Hour})
	if err := store.Put("empty", nil); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if _, ok, err := store.Get("empty"); err != nil || !ok {
		t.Fatalf("expected hit for empty body, ok=%v err=%v", ok, err)
	}
}

func TestBoltStoreExpiresEntries(t *testing.T) {
	store := openTestStore(t, Options{TTL: time.Minute, CleanupInterval: time.Hour})
	base := time.Now()
	store.now = func() time.Time { return base }

	if err := store.Put("k1", []byte("a")); err != nil {
		t.Fatalf("Put: %v", err)
	}

	store.now = func() time.Time { return base.Add(2 * time.Minute) }
	if _, ok, err := store.Get("k1"); err != nil || ok {
		t.Fatalf("expected expired miss, ok=%v err=%v", ok, err)
	}
	if n := entryCount(t, store); n != 0 {
		t.Fatalf("expired entry should be deleted on read, %d left", n)
	}
}

func TestBoltStoreCleanupSweepsExpired(t *testing.T) {
	store := openTestStore(t, Options{TTL: time.Minute, CleanupInterval: 10 * time.Minute})
	base := time.Now()
	store.now = func() time.Time { return base }

	for i := 0; i < 3; i++ {
		if err := store.Put(fmt.Sprintf("k%d", i), []byte("x")); err != nil {
			t.Fatalf("Put: %v", err)
		}
	}

	// Fast-forward past both the TTL and the cleanup cadence.
	store.now = func() time.Time { return base.Add(11 * time.Minute) }
	if err := store.Put("fresh", []byte("y")); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if n := entryCount(t, store); n != 1 {
		t.Fatalf("expected only the fresh entry after cleanup, got %d", n)
	}
}

func TestNewStoreSupportsNoop(t *testing.T) {
	store, err := NewStore("none", "", Options{})
	if err != nil {
		t.Fatalf("NewStore none: %v", err)
	}
	if err := store.Put("x", []byte("y")); err != nil {
		t.Fatalf("noop store Put: %v", err)
	}
	if _, ok, _ := store.Get("x"); ok {
		t.Fatalf("noop store must never hit")
	}
}

func TestNewStoreValidation(t *testing.T) {
	if _, err := NewStore("bbolt", " ", Options{}); err == nil {
		t.Fatalf("expected error for missing path")
	}
	if _, err := NewStore("redis", "x", Options{}); err == nil {
		t.Fatalf("expected error for unsupported type")
	}
}

func TestCacheKeyNormalizesAddress(t *testing.T) {
	a := CacheKey("key", "200 Spectrum Center Dr, Irvine, CA 92618")
	b := CacheKey("key", "  200  spectrum center dr,   IRVINE, ca 92618 ")
	if a != b {
		t.Fatalf("expected equal keys, got %s vs %s", a, b)
	}
	if a == CacheKey("key", "201 Spectrum Center Dr, Irvine, CA 92618") {
		t.Fatalf("different addresses must not collide")
	}
}

func TestCacheKeySeparatesAPIKeys(t *testing.T) {
	addr := "200 Spectrum Center Dr, Irvine, CA 92618"
	if CacheKey("wrong-key", addr) == CacheKey("right-key", addr) {
		t.Fatalf("different api keys must not share a cache entry")
	}
}

func TestNoopStoreNeverHits(t *testing.T) {
	store := NoopStore()
	if err := store.Put("k", []byte("v")); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if _, ok, err := store.Get("k"); ok || err != nil {
		t.Fatalf("Get = %v, %v", ok, err)
	}
}
