package parallel

import (
	"sync/atomic"
	"testing"
)

func TestFor(t *testing.T) {
	cfg := DefaultConfig()

	var counter int64
	n := 1000

	For(n, func(_ int) {
		atomic.AddInt64(&counter, 1)
	}, cfg)

	if counter != int64(n) {
		t.Errorf("Expected %d, got %d", n, counter)
	}
}

func TestFor_EachIndexOnce(t *testing.T) {
	cfg := Config{Enabled: true, NumWorkers: 7, MinChunkSize: 3}

	n := 101
	seen := make([]int32, n)
	For(n, func(i int) {
		atomic.AddInt32(&seen[i], 1)
	}, cfg)

	for i, c := range seen {
		if c != 1 {
			t.Errorf("Index %d visited %d times", i, c)
		}
	}
}

func TestForGrid(t *testing.T) {
	cfg := Config{Enabled: true, NumWorkers: 4, MinChunkSize: 1}

	rows, cols := 4, 8
	results := make([][]bool, rows)
	for r := range results {
		results[r] = make([]bool, cols)
	}

	ForGrid(rows, cols, func(r, c int) {
		results[r][c] = true
	}, cfg)

	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if !results[r][c] {
				t.Errorf("Missing result at [%d][%d]", r, c)
			}
		}
	}
}

func TestForGrid_Empty(t *testing.T) {
	called := false
	ForGrid(3, 0, func(_, _ int) { called = true }, DefaultConfig())
	ForGrid(0, 3, func(_, _ int) { called = true }, DefaultConfig())
	if called {
		t.Error("Expected no calls for an empty grid")
	}
}

func TestFor_Sequential(t *testing.T) {
	cfg := Config{Enabled: false}

	var counter int64
	For(100, func(_ int) {
		atomic.AddInt64(&counter, 1)
	}, cfg)

	if counter != 100 {
		t.Errorf("Expected 100, got %d", counter)
	}
}

func TestFor_ZeroWorkers(t *testing.T) {
	cfg := Config{Enabled: true, NumWorkers: 0, MinChunkSize: 1}

	var counter int64
	For(50, func(_ int) {
		atomic.AddInt64(&counter, 1)
	}, cfg)

	if counter != 50 {
		t.Errorf("Expected 50, got %d", counter)
	}
}

func BenchmarkFor(b *testing.B) {
	cfg := DefaultConfig()
	data := make([]float32, 1<<16)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		For(len(data), func(j int) {
			data[j] = data[j]*0.5 + 1
		}, cfg)
	}
}
