package benchmarks

import (
	"path/filepath"
	"testing"

	"github.com/randalmurphal/attrflow/pkg/attrflow/snapshot"
)

// BenchmarkMemoryStore_Save measures in-memory snapshot save.
func BenchmarkMemoryStore_Save(b *testing.B) {
	h, _ := buildTree(10)
	data, _ := h.MarshalJSON()
	store := snapshot.NewMemoryStore()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = store.Save(nodeID(i%100), "", data)
	}
}

// BenchmarkSQLiteStore_Save measures SQLite snapshot save.
func BenchmarkSQLiteStore_Save(b *testing.B) {
	store := createSQLiteStore(b)
	h, _ := buildTree(10)
	data, _ := h.MarshalJSON()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = store.Save(nodeID(i%100), "", data)
	}
}

// BenchmarkSQLiteStore_LoadHost measures loading and decoding a host.
func BenchmarkSQLiteStore_LoadHost(b *testing.B) {
	store := createSQLiteStore(b)
	h, _ := buildTree(10)
	id, err := snapshot.SaveHost(store, h, "bench")
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = snapshot.LoadHost(store, id)
	}
}

func createSQLiteStore(b *testing.B) *snapshot.SQLiteStore {
	b.Helper()
	store, err := snapshot.NewSQLiteStore(filepath.Join(b.TempDir(), "bench.db"))
	if err != nil {
		b.Fatal(err)
	}
	b.Cleanup(func() { _ = store.Close() })
	return store
}
