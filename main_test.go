package sipcodec_test

import (
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/goleak"

	"github.com/ghettovoice/sipcodec"
	"github.com/ghettovoice/sipcodec/internal/log"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// syncWriter serializes writes of parallel tests to one writer.
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (w *syncWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.w.Write(p)
}

func newTestLogger(w io.Writer) *slog.Logger {
	return slog.New(log.NewHandler(slog.NewTextHandler(&syncWriter{w: w}, &slog.HandlerOptions{Level: slog.LevelDebug})))
}

func TestParseMessage_Concurrent(t *testing.T) {
	t.Parallel()

	want, err := sipcodec.ParseMessage(inviteMsg)
	if err != nil {
		t.Fatalf("ParseMessage(inviteMsg) error = %v, want nil", err)
	}

	const workers = 16
	var wg sync.WaitGroup
	results := make([]sipcodec.Message, workers)
	errs := make([]error, workers)
	for i := range workers {
		wg.Go(func() {
			results[i], errs[i] = sipcodec.ParseMessage([]byte(inviteMsg))
		})
	}
	wg.Wait()

	for i := range workers {
		if errs[i] != nil {
			t.Errorf("worker %d: ParseMessage() error = %v, want nil", i, errs[i])
			continue
		}
		if diff := cmp.Diff(want, results[i]); diff != "" {
			t.Errorf("worker %d: message mismatch (-want +got):\n%v", i, diff)
		}
	}
}
