// Package testutil holds helpers shared by package tests.
package testutil

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// fakeYtdlpScript mimics the parts of yt-dlp ytbatch relies on.
//
// Behaviour is picked by the URL:
//
//	*unsupported*  permanent URL error
//	*unavailable*  permanent "Video unavailable"
//	*timeout*      transient network error
//	*sleep*        blocks for five seconds
//	*nooutput*     exits 0 without writing a file
//
// Anything else writes "<template with ext>" and prints the path.
const fakeYtdlpScript = `#!/bin/sh
out=""
url=""
merge=""
while [ $# -gt 0 ]; do
  case "$1" in
    -o) shift; out="$1" ;;
    --merge-output-format) shift; merge="$1" ;;
    --) shift; url="$1" ;;
  esac
  shift
done
if [ -n "$FAKE_YTDLP_LOG" ]; then echo "$url" >> "$FAKE_YTDLP_LOG"; fi
case "$url" in
  *unsupported*) echo "ERROR: Unsupported URL: $url" >&2; exit 1 ;;
  *unavailable*) echo "ERROR: [youtube] abc: Video unavailable" >&2; exit 1 ;;
  *timeout*) echo "ERROR: [download] Got error: The read operation timed out" >&2; exit 1 ;;
  *sleep*) exec sleep 5 ;;
  *nooutput*) exit 0 ;;
esac
ext="${merge:-webm}"
f=$(printf '%s' "$out" | sed "s/%(ext)s/$ext/")
printf 'media' > "$f"
echo "$f"
`

// FakeYtdlp writes an executable fake yt-dlp and returns its path.
//
// Every invocation appends the URL to the file named by FAKE_YTDLP_LOG, which
// is set to logPath for the duration of the test.
func FakeYtdlp(t testing.TB) (binPath, logPath string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake yt-dlp is a POSIX shell script")
	}

	dir := t.TempDir()
	binPath = filepath.Join(dir, "yt-dlp")
	if err := os.WriteFile(binPath, []byte(fakeYtdlpScript), 0o755); err != nil {
		t.Fatalf("failed to write fake yt-dlp: %v", err)
	}

	logPath = filepath.Join(dir, "invocations.log")
	t.Setenv("FAKE_YTDLP_LOG", logPath)
	return binPath, logPath
}

// FakeBinary writes an executable no-op script named name and returns its path.
func FakeBinary(t testing.TB, name string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake binaries are POSIX shell scripts")
	}

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte("#!/bin/sh\nexit 0\n"), 0o755); err != nil {
		t.Fatalf("failed to write fake %s: %v", name, err)
	}
	return path
}

// Invocations returns the URLs logged by the fake yt-dlp.
func Invocations(t testing.TB, logPath string) []string {
	t.Helper()
	data, err := os.ReadFile(logPath)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		t.Fatalf("failed to read invocation log: %v", err)
	}

	var urls []string
	start := 0
	for i, b := range data {
		if b == '\n' {
			urls = append(urls, string(data[start:i]))
			start = i + 1
		}
	}
	return urls
}
