package transcript

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTranscript(t *testing.T, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "transcript.jsonl")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0644))
	return path
}

func TestResolveTitle_EnvelopeShape(t *testing.T) {
	path := writeTranscript(t,
		`{"type":"system","subtype":"init"}`,
		`{"type":"user","message":{"role":"user","content":"Fix login bug"}}`,
		`{"type":"user","message":{"role":"user","content":"Second message ignored"}}`,
	)
	assert.Equal(t, "Fix login bug", ResolveTitle(path))
}

func TestResolveTitle_FlatShape(t *testing.T) {
	path := writeTranscript(t,
		`{"role":"assistant","content":"Hello, how can I help?"}`,
		`{"role":"user","content":"Add dark mode support"}`,
	)
	assert.Equal(t, "Add dark mode support", ResolveTitle(path))
}

func TestResolveTitle_MultimodalContent(t *testing.T) {
	path := writeTranscript(t,
		`{"type":"user","message":{"role":"user","content":[{"type":"image","source":"..."},{"type":"text","text":"What is in this screenshot?"}]}}`,
	)
	assert.Equal(t, "What is in this screenshot?", ResolveTitle(path))
}

func TestResolveTitle_ArrayWithoutTextKeepsScanning(t *testing.T) {
	path := writeTranscript(t,
		`{"type":"user","message":{"role":"user","content":[{"type":"tool_result","content":"output"}]}}`,
		`{"type":"user","message":{"role":"user","content":"Real prompt here"}}`,
	)
	assert.Equal(t, "Real prompt here", ResolveTitle(path))
}

func TestResolveTitle_MalformedLinesSkipped(t *testing.T) {
	path := writeTranscript(t,
		`{this is not json`,
		``,
		`{"type":"user","message":{"role":"user","content":"Survived the noise"}}`,
	)
	assert.Equal(t, "Survived the noise", ResolveTitle(path))
}

func TestResolveTitle_WhitespaceTrimmed(t *testing.T) {
	path := writeTranscript(t,
		`{"role":"user","content":"   padded prompt \n"}`,
	)
	assert.Equal(t, "padded prompt", ResolveTitle(path))
}

func TestResolveTitle_NoUserMessage(t *testing.T) {
	path := writeTranscript(t,
		`{"type":"system","subtype":"init"}`,
		`{"role":"assistant","content":"hi"}`,
	)
	assert.Equal(t, DefaultTitle, ResolveTitle(path))
}

func TestResolveTitle_MissingFile(t *testing.T) {
	assert.Equal(t, DefaultTitle, ResolveTitle(filepath.Join(t.TempDir(), "nope.jsonl")))
	assert.Equal(t, DefaultTitle, ResolveTitle(""))
}

func TestResolveTitle_RoleMismatchInsideEnvelope(t *testing.T) {
	// Envelope typed "user" but nested message authored by the assistant:
	// not a user turn.
	path := writeTranscript(t,
		`{"type":"user","message":{"role":"assistant","content":"not a user turn"}}`,
	)
	assert.Equal(t, DefaultTitle, ResolveTitle(path))
}

func TestTruncate(t *testing.T) {
	short := strings.Repeat("a", 80)
	assert.Equal(t, short, Truncate(short))

	exact := strings.Repeat("b", 100)
	assert.Equal(t, exact, Truncate(exact))

	long := strings.Repeat("c", 150)
	got := Truncate(long)
	assert.Len(t, []rune(got), 100)
	assert.True(t, strings.HasSuffix(got, "..."))
	assert.Equal(t, strings.Repeat("c", 97), got[:97])
}

func TestResolveTitle_LongMessageTruncated(t *testing.T) {
	long := strings.Repeat("x", 150)
	path := writeTranscript(t,
		`{"role":"user","content":"`+long+`"}`,
	)
	got := ResolveTitle(path)
	assert.Len(t, []rune(got), 100)
	assert.True(t, strings.HasSuffix(got, "..."))
}
