package collections_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/hasbyte1/go-doctrine-collections/collections"
)

// ─────────────────────────────────────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────────────────────────────────────

// countingPopulate returns a populate function that counts its invocations
// and produces {"a":1, "b":2}.
func countingPopulate(calls *int) collections.Populate[string, int] {
	return func() (collections.Collection[string, int], error) {
		*calls++
		m := collections.NewOrderedMap[string, int]()
		m.Set("a", 1)
		m.Set("b", 2)
		return m, nil
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Initialization protocol
// ─────────────────────────────────────────────────────────────────────────────

func TestPopulateRunsExactlyOnce(t *testing.T) {
	calls := 0
	c := collections.NewLazy(countingPopulate(&calls))

	// A mixed sequence of reads, writes and traversal: one populate total.
	_ = c.Count()
	_, _ = c.Get("a")
	c.Set("c", 3)
	_ = c.Keys()
	_, _ = c.First()
	_, _ = c.Next()
	_ = c.Filter(func(_ string, v int) bool { return v > 1 })
	c.Each(func(string, int) {})

	if calls != 1 {
		t.Fatalf("populate ran %d times; want 1", calls)
	}
}

func TestAnyOperationTriggers(t *testing.T) {
	triggers := []struct {
		name string
		op   func(c *collections.LazyCollection[string, int])
	}{
		{"Count", func(c *collections.LazyCollection[string, int]) { c.Count() }},
		{"IsEmpty", func(c *collections.LazyCollection[string, int]) { c.IsEmpty() }},
		{"Contains", func(c *collections.LazyCollection[string, int]) { c.Contains(1) }},
		{"Has", func(c *collections.LazyCollection[string, int]) { c.Has("a") }},
		{"Get", func(c *collections.LazyCollection[string, int]) { c.Get("a") }},
		{"Set", func(c *collections.LazyCollection[string, int]) { c.Set("z", 9) }},
		{"Remove", func(c *collections.LazyCollection[string, int]) { c.Remove("a") }},
		{"Clear", func(c *collections.LazyCollection[string, int]) { c.Clear() }},
		{"Keys", func(c *collections.LazyCollection[string, int]) { c.Keys() }},
		{"Slice", func(c *collections.LazyCollection[string, int]) { c.Slice(0, -1) }},
		{"First", func(c *collections.LazyCollection[string, int]) { c.First() }},
		{"Entries", func(c *collections.LazyCollection[string, int]) { c.Entries() }},
		{"Reduce", func(c *collections.LazyCollection[string, int]) {
			c.Reduce(func(carry, v int) int { return carry + v }, 0)
		}},
	}
	for _, tc := range triggers {
		t.Run(tc.name, func(t *testing.T) {
			calls := 0
			c := collections.NewLazy(countingPopulate(&calls))
			tc.op(c)
			if calls != 1 {
				t.Fatalf("%s: populate ran %d times; want 1", tc.name, calls)
			}
			if !c.IsInitialized() {
				t.Fatalf("%s should leave the proxy initialized", tc.name)
			}
		})
	}
}

func TestIsInitializedDoesNotTrigger(t *testing.T) {
	calls := 0
	c := collections.NewLazy(countingPopulate(&calls))

	for i := 0; i < 5; i++ {
		if c.IsInitialized() {
			t.Fatal("IsInitialized should report false before first use")
		}
	}
	if calls != 0 {
		t.Fatalf("IsInitialized triggered populate %d times; want 0", calls)
	}

	_ = c.Count()
	if !c.IsInitialized() {
		t.Fatal("IsInitialized should report true after first use")
	}
}

func TestInitializeExplicit(t *testing.T) {
	calls := 0
	c := collections.NewLazy(countingPopulate(&calls))

	if err := c.Initialize(); err != nil {
		t.Fatal(err)
	}
	if err := c.Initialize(); err != nil {
		t.Fatal(err)
	}
	if calls != 1 {
		t.Fatalf("populate ran %d times; want 1", calls)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Failure & retry
// ─────────────────────────────────────────────────────────────────────────────

func TestPopulateFailureRetries(t *testing.T) {
	boom := errors.New("backend down")
	calls := 0
	fail := true
	c := collections.NewLazy(func() (collections.Collection[string, int], error) {
		calls++
		if fail {
			return nil, boom
		}
		m := collections.NewOrderedMap[string, int]()
		m.Set("a", 1)
		return m, nil
	})

	if got := c.Count(); got != 0 {
		t.Fatalf("Count after failed populate = %d; want 0", got)
	}
	if c.IsInitialized() {
		t.Fatal("a failed populate must not mark the proxy initialized")
	}
	if !errors.Is(c.Err(), boom) {
		t.Fatalf("Err = %v; want %v", c.Err(), boom)
	}

	// The populate succeeds on the second attempt.
	fail = false
	if got := c.Count(); got != 1 {
		t.Fatalf("Count after retry = %d; want 1", got)
	}
	if calls != 2 {
		t.Fatalf("populate ran %d times across failure and retry; want 2", calls)
	}
	if !c.IsInitialized() {
		t.Fatal("proxy should be initialized after the retry")
	}
	if c.Err() != nil {
		t.Fatalf("Err after successful retry = %v; want nil", c.Err())
	}
}

func TestInitializeReportsPopulateError(t *testing.T) {
	boom := errors.New("no such table")
	c := collections.NewLazy(func() (collections.Collection[string, int], error) {
		return nil, boom
	})
	if err := c.Initialize(); !errors.Is(err, boom) {
		t.Fatalf("Initialize = %v; want %v", err, boom)
	}
}

func TestNilPopulate(t *testing.T) {
	c := collections.NewLazy[string, int](nil)
	if err := c.Initialize(); !errors.Is(err, collections.ErrNoPopulate) {
		t.Fatalf("Initialize = %v; want ErrNoPopulate", err)
	}
	if c.IsInitialized() {
		t.Fatal("proxy without a populate function must stay uninitialized")
	}
}

func TestNilBacking(t *testing.T) {
	c := collections.NewLazy(func() (collections.Collection[string, int], error) {
		return nil, nil
	})
	if err := c.Initialize(); !errors.Is(err, collections.ErrNilBacking) {
		t.Fatalf("Initialize = %v; want ErrNilBacking", err)
	}
	if c.IsInitialized() {
		t.Fatal("a nil backing collection must not count as initialized")
	}
}

func TestZeroValuesAfterFailure(t *testing.T) {
	c := collections.NewLazy(func() (collections.Collection[string, int], error) {
		return nil, errors.New("nope")
	})

	if _, ok := c.Get("a"); ok {
		t.Fatal("Get after failed populate should report false")
	}
	if !c.IsEmpty() {
		t.Fatal("IsEmpty after failed populate should report true")
	}
	if got := c.Keys(); len(got) != 0 {
		t.Fatalf("Keys after failed populate = %v; want empty", got)
	}
	for range c.Entries() {
		t.Fatal("Entries after failed populate should not yield")
	}
	pass, fail := c.Partition(func(string, int) bool { return true })
	if pass.Count() != 0 || fail.Count() != 0 {
		t.Fatal("Partition after failed populate should return two empty collections")
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Pass-through delegation
// ─────────────────────────────────────────────────────────────────────────────

func TestPassThroughEquivalence(t *testing.T) {
	backing := collections.NewOrderedMap[string, int]()
	backing.Set("a", 1)
	backing.Set("b", 2)
	backing.Set("c", 3)

	proxy := collections.NewLazy(func() (collections.Collection[string, int], error) {
		return backing, nil
	})

	if proxy.Count() != backing.Count() {
		t.Fatal("Count mismatch")
	}
	assertSlice(t, proxy.Keys(), backing.Keys())
	assertSlice(t, proxy.Values(), backing.Values())
	assertPairs(t, proxy.Slice(1, -1), backing.Slice(1, -1))

	// A write through the proxy is a write to the backing collection.
	proxy.Set("d", 4)
	if v, _ := backing.Get("d"); v != 4 {
		t.Fatal("Set through the proxy should reach the backing collection")
	}

	// And a write to the backing collection is visible through the proxy.
	backing.Set("e", 5)
	if !proxy.Has("e") {
		t.Fatal("backing state should be visible through the proxy")
	}

	if v, ok := proxy.Remove("a"); !ok || v != 1 {
		t.Fatalf("Remove = %v, %v; want 1, true", v, ok)
	}
	if backing.Has("a") {
		t.Fatal("Remove through the proxy should reach the backing collection")
	}
}

func TestScenarioCountGetRemove(t *testing.T) {
	calls := 0
	c := collections.NewLazy(countingPopulate(&calls))

	if got := c.Count(); got != 2 {
		t.Fatalf("Count = %d; want 2", got)
	}
	if calls != 1 {
		t.Fatalf("populate count = %d; want 1", calls)
	}

	if v, ok := c.Get("a"); !ok || v != 1 {
		t.Fatalf(`Get("a") = %v, %v; want 1, true`, v, ok)
	}
	if calls != 1 {
		t.Fatalf("populate count after Get = %d; want 1", calls)
	}

	if v, ok := c.Remove("a"); !ok || v != 1 {
		t.Fatalf(`Remove("a") = %v, %v; want 1, true`, v, ok)
	}
	if c.Has("a") {
		t.Fatal(`Has("a") after Remove should report false`)
	}
}

func TestCursorThroughProxy(t *testing.T) {
	calls := 0
	c := collections.NewLazy(countingPopulate(&calls))

	if v, ok := c.First(); !ok || v != 1 {
		t.Fatalf("First = %d, %v; want 1, true", v, ok)
	}
	if k, _ := c.Key(); k != "a" {
		t.Fatalf("Key = %q; want a", k)
	}
	if v, ok := c.Next(); !ok || v != 2 {
		t.Fatalf("Next = %d, %v; want 2, true", v, ok)
	}
	if v, ok := c.Last(); !ok || v != 2 {
		t.Fatalf("Last = %d, %v; want 2, true", v, ok)
	}
	if calls != 1 {
		t.Fatalf("cursor walk ran populate %d times; want 1", calls)
	}
}

func TestClearKeepsInitialized(t *testing.T) {
	calls := 0
	c := collections.NewLazy(countingPopulate(&calls))

	c.Clear()
	if !c.IsInitialized() {
		t.Fatal("Clear must not undo initialization")
	}
	if got := c.Count(); got != 0 {
		t.Fatalf("Count after Clear = %d; want 0", got)
	}
	if calls != 1 {
		t.Fatalf("populate ran %d times; want 1", calls)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Derived collections
// ─────────────────────────────────────────────────────────────────────────────

func TestDerivedCollectionsAreEager(t *testing.T) {
	calls := 0
	c := collections.NewLazy(countingPopulate(&calls))

	filtered := c.Filter(func(_ string, v int) bool { return v > 1 })
	mapped := c.MapValues(func(v int) int { return v * 10 })
	pass, fail := c.Partition(func(_ string, v int) bool { return v == 1 })

	if calls != 1 {
		t.Fatalf("derivations ran populate %d times; want 1", calls)
	}

	// The derived collections are already realized plain collections;
	// touching them must not involve the populate function again.
	if filtered.Count() != 1 || mapped.Count() != 2 || pass.Count() != 1 || fail.Count() != 1 {
		t.Fatal("derived collection contents wrong")
	}
	if calls != 1 {
		t.Fatalf("querying derived collections ran populate %d times; want 1", calls)
	}

	for _, d := range []collections.Collection[string, int]{filtered, mapped, pass, fail} {
		if _, lazy := d.(*collections.LazyCollection[string, int]); lazy {
			t.Fatal("derived collections must not be lazy themselves")
		}
	}
}

func TestEntriesThroughProxyIsLive(t *testing.T) {
	calls := 0
	c := collections.NewLazy(countingPopulate(&calls))

	seq := c.Entries()
	c.Set("c", 3)

	n := 0
	for range seq {
		n++
	}
	if n != 3 {
		t.Fatalf("Entries yielded %d entries; want 3 (live view)", n)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Concurrency
// ─────────────────────────────────────────────────────────────────────────────

func TestConcurrentFirstAccess(t *testing.T) {
	var mu sync.Mutex
	calls := 0
	c := collections.NewLazy(func() (collections.Collection[int, int], error) {
		mu.Lock()
		calls++
		mu.Unlock()
		return collections.NewList(1, 2, 3), nil
	})

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if got := c.Count(); got != 3 {
				t.Errorf("Count = %d; want 3", got)
			}
		}()
	}
	wg.Wait()

	if calls != 1 {
		t.Fatalf("concurrent first access ran populate %d times; want 1", calls)
	}
}
