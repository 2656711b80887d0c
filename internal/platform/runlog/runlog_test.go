package runlog

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	perr "locbridge/internal/platform/errors"
	"locbridge/internal/platform/logger"
	kit "locbridge/internal/platform/testkit"

	"github.com/google/go-cmp/cmp"
)

func TestLog_AddAndMessages(t *testing.T) {
	l := New(nil)
	l.Add(nil)
	l.Add(errors.New("fr.xliff: parse failed"))
	l.Addf("%s: sheet missing", "de-master.xlsx")
	l.Add(perr.NotFoundf("no MT file for %s", "es"))

	want := []string{"fr.xliff: parse failed", "de-master.xlsx: sheet missing", "no MT file for es"}
	if diff := cmp.Diff(want, l.Messages()); diff != "" {
		t.Fatalf("messages mismatch (-want +got):\n%s", diff)
	}
	if l.Len() != 3 {
		t.Fatalf("Len = %d", l.Len())
	}
}

func TestLog_FlushAppendsBlocks(t *testing.T) {
	kit.Swap(t, &now, func() time.Time { return time.Date(2024, 3, 9, 14, 5, 7, 0, time.UTC) })
	path := filepath.Join(t.TempDir(), "error_log.txt")

	empty := New(nil)
	if err := empty.Flush(path); err != nil {
		t.Fatalf("empty flush: %v", err)
	}

	l := New(nil)
	l.Addf("first")
	l.Addf("second")
	if err := l.Flush(path); err != nil {
		t.Fatalf("flush: %v", err)
	}
	if err := l.Flush(path); err != nil {
		t.Fatalf("flush again: %v", err)
	}

	block := "\n--- Log Entry: 2024-03-09 14:05:07 ---\n- first\n- second\n"
	if got := kit.ReadFile(t, path); got != block+block {
		t.Fatalf("log file = %q", got)
	}
}

func TestLog_FlushBadPath(t *testing.T) {
	l := New(nil)
	l.Addf("x")
	err := l.Flush(filepath.Join(t.TempDir(), "missing", "dir", "log.txt"))
	if !perr.IsCode(err, perr.ErrorCodeIO) {
		t.Fatalf("want IO error, got %v", err)
	}
}

func TestStart_AssignsRunID(t *testing.T) {
	ctx, l := Start(context.Background(), "export")
	id := logger.RunID(ctx)
	if len(id) != 36 {
		t.Fatalf("run id = %q", id)
	}
	if l.Logger() == nil {
		t.Fatalf("nil logger")
	}
	ctx2, _ := Start(context.Background(), "export")
	if logger.RunID(ctx2) == id {
		t.Fatalf("run ids must differ")
	}
}
