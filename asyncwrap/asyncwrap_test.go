package asyncwrap

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMapGathersInOrder(t *testing.T) {
	n := 50
	results, errs := Map(context.Background(), n, &Options{Concurrency: 4}, func(_ context.Context, i int) (int, error) {
		return i * i, nil
	})
	for i := 0; i < n; i++ {
		if errs[i] != nil {
			t.Fatalf("task %d: unexpected error %v", i, errs[i])
		}
		if results[i] != i*i {
			t.Errorf("results[%d] = %d, want %d", i, results[i], i*i)
		}
	}
}

func TestMapPropagatesPerTaskErrors(t *testing.T) {
	boom := errors.New("boom")
	results, errs := Map(context.Background(), 5, nil, func(_ context.Context, i int) (int, error) {
		if i == 2 {
			return 0, boom
		}
		return i, nil
	})
	if errs[2] != boom {
		t.Fatalf("errs[2] = %v, want %v", errs[2], boom)
	}
	for i, want := range []int{0, 1, 0, 3, 4} {
		if i == 2 {
			continue
		}
		if results[i] != want {
			t.Errorf("results[%d] = %d, want %d", i, results[i], want)
		}
	}
}

func TestMapRespectsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, errs := Map(ctx, 10, &Options{Concurrency: 1}, func(_ context.Context, i int) (int, error) {
		return i, nil
	})
	for i, err := range errs {
		if err != context.Canceled {
			t.Fatalf("task %d: err = %v, want context.Canceled", i, err)
		}
	}
	for i, r := range results {
		if r != 0 {
			t.Errorf("results[%d] = %d, want 0 (zero value, never published)", i, r)
		}
	}
}

func TestParseFileReturnsResult(t *testing.T) {
	v, err := ParseFile(context.Background(), func() (string, error) {
		return "parsed", nil
	})
	if err != nil || v != "parsed" {
		t.Fatalf("ParseFile = (%q, %v), want (parsed, nil)", v, err)
	}
}

func TestParseFileRespectsDeadline(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := ParseFile(ctx, func() (int, error) {
		time.Sleep(200 * time.Millisecond)
		return 1, nil
	})
	if err != context.DeadlineExceeded {
		t.Fatalf("err = %v, want context.DeadlineExceeded", err)
	}
}
