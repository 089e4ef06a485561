package async

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"
)

func TestBatchRunsEveryItem(t *testing.T) {
	var count atomic.Int32
	items := []int{1, 2, 3, 4, 5, 6, 7, 8}

	errs := Batch(context.Background(), items, 3, "counting", time.Second, nil,
		func(ctx context.Context, n int) error {
			count.Add(int32(n))
			return nil
		})

	if len(errs) != 0 {
		t.Fatalf("expected no errors, got %v", errs)
	}
	if count.Load() != 36 {
		t.Errorf("expected sum 36, got %d", count.Load())
	}
}

func TestBatchCollectsErrors(t *testing.T) {
	items := []int{1, 2, 3, 4}

	errs := Batch(context.Background(), items, 2, "failing", time.Second, nil,
		func(ctx context.Context, n int) error {
			if n%2 == 0 {
				return fmt.Errorf("item %d failed", n)
			}
			return nil
		})

	if len(errs) != 2 {
		t.Errorf("expected 2 errors, got %d: %v", len(errs), errs)
	}
}

func TestBatchRecoversFromPanic(t *testing.T) {
	errs := Batch(context.Background(), []int{1}, 1, "panicking", time.Second, nil,
		func(ctx context.Context, n int) error {
			panic("boom")
		})

	if len(errs) != 1 {
		t.Fatalf("expected the panic surfaced as one error, got %v", errs)
	}
}

func TestSubmitAfterShutdownFails(t *testing.T) {
	pool := NewPool(context.Background(), 1, "idle", time.Second, nil)
	if err := pool.Shutdown(time.Second); err != nil {
		t.Fatalf("shutdown failed: %v", err)
	}
	if err := pool.Submit(func(ctx context.Context) error { return nil }); err == nil {
		t.Error("expected Submit to fail after shutdown")
	}
}
