// Package merge checks for the media tool yt-dlp uses to merge audio and video streams.
package merge

import (
	"os/exec"
	"sync"
	"ytbatch/internal/domain/consts"
)

// Tool is the external merge tool.
type Tool struct {
	Binary string

	once      sync.Once
	installed bool
}

// NewTool returns a Tool for binary, defaulting to ffmpeg.
func NewTool(binary string) *Tool {
	if binary == "" {
		binary = consts.DefaultFFmpeg
	}
	return &Tool{Binary: binary}
}

// Name returns the tool binary name.
func (t *Tool) Name() string {
	return t.Binary
}

// IsInstalled reports whether the tool can be found. The lookup runs once.
func (t *Tool) IsInstalled() bool {
	t.once.Do(func() {
		_, err := exec.LookPath(t.Binary)
		t.installed = err == nil
	})
	return t.installed
}
