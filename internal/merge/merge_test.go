package merge_test

import (
	"testing"
	"ytbatch/internal/merge"
	"ytbatch/internal/testutil"
)

func TestIsInstalled(t *testing.T) {
	ff := testutil.FakeBinary(t, "ffmpeg")

	if !merge.NewTool(ff).IsInstalled() {
		t.Errorf("expected %q to be found", ff)
	}
	if merge.NewTool("ytbatch-no-such-ffmpeg").IsInstalled() {
		t.Error("expected missing tool to be reported as not installed")
	}
}

func TestNewTool_Default(t *testing.T) {
	if got := merge.NewTool("").Name(); got != "ffmpeg" {
		t.Errorf("default tool = %q, want ffmpeg", got)
	}
}
