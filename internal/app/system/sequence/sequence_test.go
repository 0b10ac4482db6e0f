package sequence_test

import (
	"sync"
	"testing"

	"github.com/mwsociety/memberhub/internal/app/system/sequence"
	"github.com/mwsociety/memberhub/internal/testutil"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		prefix string
		width  int
		n      int64
		want   string
	}{
		{"MWSS-M", 4, 1, "MWSS-M0001"},
		{"MWSS-M", 4, 42, "MWSS-M0042"},
		{"MWSS-M", 4, 9999, "MWSS-M9999"},
		{"MWSS-M", 4, 10000, "MWSS-M10000"}, // widens, never wraps
		{"MWSS-CARD-", 6, 7, "MWSS-CARD-000007"},
		{"MWSS2026", 4, 3, "MWSS20260003"},
	}
	for _, tt := range tests {
		if got := sequence.Format(tt.prefix, tt.width, tt.n); got != tt.want {
			t.Errorf("Format(%q, %d, %d) = %q, want %q", tt.prefix, tt.width, tt.n, got, tt.want)
		}
	}
}

func TestAllocator_Next(t *testing.T) {
	db := testutil.SetupTestDB(t)
	alloc := sequence.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	for i, want := range []string{"MWSS20260001", "MWSS20260002", "MWSS20260003"} {
		got, err := alloc.Next(ctx, "students", "registration_number", "MWSS2026", 4)
		if err != nil {
			t.Fatalf("Next %d failed: %v", i, err)
		}
		if got != want {
			t.Errorf("Next %d: got %q, want %q", i, got, want)
		}
	}
}

func TestAllocator_CountersAreIndependent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	alloc := sequence.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := alloc.Next(ctx, "students", "registration_number", "MWSS2026", 4); err != nil {
		t.Fatalf("Next failed: %v", err)
	}
	if _, err := alloc.Next(ctx, "students", "registration_number", "MWSS2026", 4); err != nil {
		t.Fatalf("Next failed: %v", err)
	}

	// A different prefix and a different collection each start fresh.
	got, err := alloc.Next(ctx, "students", "registration_number", "MWSS2025", 4)
	if err != nil {
		t.Fatalf("Next failed: %v", err)
	}
	if got != "MWSS20250001" {
		t.Errorf("other prefix: got %q, want MWSS20250001", got)
	}
	got, err = alloc.Next(ctx, "members", "membership_number", "MWSS-M", 4)
	if err != nil {
		t.Fatalf("Next failed: %v", err)
	}
	if got != "MWSS-M0001" {
		t.Errorf("other collection: got %q, want MWSS-M0001", got)
	}
}

func TestAllocator_ConcurrentNextIsDistinct(t *testing.T) {
	db := testutil.SetupTestDB(t)
	alloc := sequence.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	const n = 12
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		results = make(map[string]int)
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			code, err := alloc.Next(ctx, "members", "membership_number", "MWSS-M", 4)
			if err != nil {
				t.Errorf("Next failed: %v", err)
				return
			}
			mu.Lock()
			results[code]++
			mu.Unlock()
		}()
	}
	wg.Wait()

	if len(results) != n {
		t.Fatalf("expected %d distinct codes, got %d: %v", n, len(results), results)
	}
	for code, count := range results {
		if count != 1 {
			t.Errorf("code %q issued %d times", code, count)
		}
	}
}
