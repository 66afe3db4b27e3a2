package media

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRunner struct {
	name string
	args []string
	out  []byte
	err  error
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) ([]byte, error) {
	f.name = name
	f.args = args
	return f.out, f.err
}

func TestConvertToWAV(t *testing.T) {
	runner := &fakeRunner{}
	c := NewWithRunner("/tmp/work", runner)

	out, err := c.ConvertToWAV(context.Background(), "/tmp/work/temp_audio.m4a")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/tmp/work", "temp_audio.wav"), out)

	assert.Equal(t, "ffmpeg", runner.name)
	assert.Equal(t, []string{
		"-y",
		"-i", "/tmp/work/temp_audio.m4a",
		"-ar", "16000",
		"-ac", "1",
		"-c:a", "pcm_s16le",
		out,
	}, runner.args)
}

func TestConvertToWAVFailure(t *testing.T) {
	runner := &fakeRunner{err: errors.New("exit status 1"), out: []byte("Invalid data found when processing input")}
	c := NewWithRunner(t.TempDir(), runner)

	_, err := c.ConvertToWAV(context.Background(), "broken.m4a")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid data found")
}

func TestTrim(t *testing.T) {
	runner := &fakeRunner{}
	c := NewWithRunner("/tmp/work", runner)

	out, err := c.Trim(context.Background(), "/media/talk.mp4", 65*time.Second, 2*time.Minute)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/tmp/work", "talk_clip.mp4"), out)
	assert.Contains(t, runner.args, "00:01:05")
	assert.Contains(t, runner.args, "00:02:00")
	assert.Contains(t, runner.args, "libx264", "trim must re-encode for frame-accurate cut points")
	assert.NotContains(t, runner.args, "copy")
}

func TestIsVideoFile(t *testing.T) {
	assert.True(t, IsVideoFile("clip.mp4"))
	assert.True(t, IsVideoFile("CLIP.MKV"))
	assert.True(t, IsVideoFile("/path/to/movie.webm"))
	assert.False(t, IsVideoFile("audio.m4a"))
	assert.False(t, IsVideoFile("audio.wav"))
	assert.False(t, IsVideoFile("notes.txt"))
}
