package pipeline

import (
	"testing"
	"time"
)

func TestContentHashHex_Consistency(t *testing.T) {
	data := []byte("hello world")
	h1 := ContentHashHex(data)
	h2 := ContentHashHex(data)
	if h1 != h2 {
		t.Errorf("expected identical hashes, got %q and %q", h1, h2)
	}
	// SHA-256 of "hello world" is well-known.
	want := "b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9"
	if h1 != want {
		t.Errorf("expected hash %q, got %q", want, h1)
	}
}

func TestContentHashHex_DifferentInputs(t *testing.T) {
	h1 := ContentHashHex([]byte("aaa"))
	h2 := ContentHashHex([]byte("bbb"))
	if h1 == h2 {
		t.Error("expected different hashes for different inputs")
	}
}

func TestContentHashHex_EmptyInput(t *testing.T) {
	h := ContentHashHex([]byte{})
	// SHA-256 of empty input is well-known.
	want := "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"
	if h != want {
		t.Errorf("expected hash %q, got %q", want, h)
	}
}

func TestJob_StateTransitions(t *testing.T) {
	job := &Job{
		ID:        "test-1",
		Status:    StatusQueued,
		Phase:     "queued",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	transitions := []struct {
		status JobStatus
		phase  string
	}{
		{StatusChunking, "splitting into chunks"},
		{StatusEmbedding, "embedding chunks"},
		{StatusStoring, "storing results"},
		{StatusCompleted, "done"},
	}

	for _, tr := range transitions {
		before := job.UpdatedAt
		// Small sleep to ensure time difference is detectable.
		time.Sleep(time.Millisecond)
		job.SetStatus(tr.status, tr.phase)

		if job.Status != tr.status {
			t.Errorf("expected status %q, got %q", tr.status, job.Status)
		}
		if job.Phase != tr.phase {
			t.Errorf("expected phase %q, got %q", tr.phase, job.Phase)
		}
		if !job.UpdatedAt.After(before) {
			t.Errorf("expected UpdatedAt to advance after SetStatus(%q)", tr.status)
		}
	}
}

func TestJob_SetStatusFailed(t *testing.T) {
	job := &Job{
		ID:        "test-fail",
		Status:    StatusEmbedding,
		UpdatedAt: time.Now(),
	}
	job.SetStatus(StatusFailed, "embedding error")
	if job.Status != StatusFailed {
		t.Errorf("expected status %q, got %q", StatusFailed, job.Status)
	}
}

func TestJob_AddError(t *testing.T) {
	job := &Job{ID: "err-test", UpdatedAt: time.Now()}
	job.AddError("chunk 3 failed")
	job.AddError("chunk 7 failed")

	snap := job.Snapshot()
	if len(snap.Progress.Errors) != 2 {
		t.Fatalf("expected 2 errors, got %d", len(snap.Progress.Errors))
	}
	if snap.Progress.Errors[0] != "chunk 3 failed" {
		t.Errorf("expected first error %q, got %q", "chunk 3 failed", snap.Progress.Errors[0])
	}
}

func TestJob_IncrChunksEmbedded(t *testing.T) {
	job := &Job{ID: "incr-test", UpdatedAt: time.Now()}
	job.IncrChunksEmbedded()
	job.IncrChunksEmbedded()
	job.IncrChunksEmbedded()

	snap := job.Snapshot()
	if snap.Progress.ChunksEmbedded != 3 {
		t.Errorf("expected 3 chunks embedded, got %d", snap.Progress.ChunksEmbedded)
	}
}

func TestJob_AddChunksStored(t *testing.T) {
	job := &Job{ID: "stored-test", UpdatedAt: time.Now()}
	job.AddChunksStored(4)
	job.AddChunksStored(3)

	snap := job.Snapshot()
	if snap.Progress.ChunksStored != 7 {
		t.Errorf("expected 7 stored chunks, got %d", snap.Progress.ChunksStored)
	}
}

func TestJob_SetTotalChunks(t *testing.T) {
	job := &Job{ID: "total-test", UpdatedAt: time.Now()}
	job.SetTotalChunks(42)

	snap := job.Snapshot()
	if snap.Progress.TotalChunks != 42 {
		t.Errorf("expected 42 total chunks, got %d", snap.Progress.TotalChunks)
	}
}

func TestJob_SetDocument(t *testing.T) {
	job := &Job{ID: "doc-test", UpdatedAt: time.Now()}
	job.SetDocument("ENG-104", "Software Change Control")

	snap := job.Snapshot()
	if snap.DocumentNumber != "ENG-104" || snap.DocumentTitle != "Software Change Control" {
		t.Errorf("unexpected document metadata: %+v", snap)
	}
}

func TestJob_FileData(t *testing.T) {
	job := &Job{ID: "data-test"}
	data := []byte("file content here")
	job.SetFileData(data)
	got := job.FileData()
	if string(got) != string(data) {
		t.Errorf("expected file data %q, got %q", data, got)
	}
}

func TestJob_SnapshotErrorsNotNil(t *testing.T) {
	// Snapshot should always return non-nil errors slice.
	job := &Job{ID: "snap-test", UpdatedAt: time.Now()}
	snap := job.Snapshot()
	if snap.Progress.Errors == nil {
		t.Error("expected non-nil errors slice in snapshot")
	}
	if len(snap.Progress.Errors) != 0 {
		t.Errorf("expected empty errors, got %d", len(snap.Progress.Errors))
	}
}

func TestJobStore_PutGet(t *testing.T) {
	store := NewJobStore(time.Hour)
	job := &Job{ID: "store-1", UpdatedAt: time.Now()}
	store.Put(job)

	got := store.Get("store-1")
	if got == nil {
		t.Fatal("expected to get job back")
	}
	if got.ID != "store-1" {
		t.Errorf("expected ID %q, got %q", "store-1", got.ID)
	}
}

func TestJobStore_GetMissing(t *testing.T) {
	store := NewJobStore(time.Hour)
	if store.Get("nonexistent") != nil {
		t.Error("expected nil for missing job")
	}
}

func TestJobStore_TTLCleanup(t *testing.T) {
	store := NewJobStore(50 * time.Millisecond)

	expired := &Job{ID: "old", UpdatedAt: time.Now()}
	store.Put(expired)

	// Wait for the TTL to pass.
	time.Sleep(100 * time.Millisecond)

	// Add a fresh job.
	fresh := &Job{ID: "new", UpdatedAt: time.Now()}
	store.Put(fresh)

	store.Cleanup()

	if store.Get("old") != nil {
		t.Error("expected expired job to be cleaned up")
	}
	if store.Get("new") == nil {
		t.Error("expected fresh job to survive cleanup")
	}
}

func TestJobStore_CleanupEmpty(t *testing.T) {
	store := NewJobStore(time.Hour)
	// Should not panic on empty store.
	store.Cleanup()
}

func TestIsRetryable(t *testing.T) {
	if IsRetryable(nil) {
		t.Error("nil error should not be retryable")
	}
	if IsRetryable(errContentMismatch()) {
		t.Error("plain error should not be retryable")
	}
}

func TestBackoff_Bounds(t *testing.T) {
	for attempt := 0; attempt < 6; attempt++ {
		d := Backoff(attempt)
		if d < time.Second {
			t.Errorf("attempt %d: backoff %v below base", attempt, d)
		}
		if d > 45*time.Second {
			t.Errorf("attempt %d: backoff %v above cap with jitter", attempt, d)
		}
	}
}

func errContentMismatch() error {
	return &mismatchErr{}
}

type mismatchErr struct{}

func (e *mismatchErr) Error() string { return "count mismatch" }
