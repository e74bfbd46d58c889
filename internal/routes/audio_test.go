package routes

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Lekuruu/tunescout/internal/app"
	"github.com/stretchr/testify/assert"
)

func newTestStreamer(server *app.Server, resolve func(ctx context.Context, videoUrl string) (string, error)) *AudioStreamer {
	streamer := NewAudioStreamer("", "", server.State.Logger)
	streamer.ResolveUrl = resolve
	RegisterAudioRoutes(server, streamer)
	return streamer
}

func TestNewAudioStreamerDefaults(t *testing.T) {
	logger := app.NewLogger("tunescout-test", "info")
	logger.Output = io.Discard

	streamer := NewAudioStreamer("", "", logger)
	assert.Equal(t, "bestaudio", streamer.Quality)
	assert.Equal(t, "128k", streamer.Bitrate)
	assert.NotNil(t, streamer.ResolveUrl)

	streamer = NewAudioStreamer("worstaudio", "64k", logger)
	assert.Equal(t, "worstaudio", streamer.Quality)
	assert.Equal(t, "64k", streamer.transcodeArgs()["b:a"])
	assert.Equal(t, "mp3", streamer.transcodeArgs()["f"])
}

func TestHandleStreamUrl(t *testing.T) {
	t.Run("resolves url", func(t *testing.T) {
		server := newTestServer(&fakeProvider{}, &fakeLocator{})
		var requested string
		newTestStreamer(server, func(ctx context.Context, videoUrl string) (string, error) {
			requested = videoUrl
			return "https://media.test/audio.webm", nil
		})

		recorder, body := serve(server, httptest.NewRequest(http.MethodGet, "/api/stream/dQw4w9WgXcQ", nil))
		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, "https://www.youtube.com/watch?v=dQw4w9WgXcQ", requested)
		assert.Equal(t, "https://media.test/audio.webm", body["streamUrl"])
	})

	t.Run("resolver failure", func(t *testing.T) {
		server := newTestServer(&fakeProvider{}, &fakeLocator{})
		newTestStreamer(server, func(ctx context.Context, videoUrl string) (string, error) {
			return "", errors.New("yt-dlp failed: exit status 1")
		})

		recorder, body := serve(server, httptest.NewRequest(http.MethodGet, "/api/stream/dQw4w9WgXcQ", nil))
		assert.Equal(t, http.StatusInternalServerError, recorder.Code)
		assert.Equal(t, "Failed to get stream url", body["error"])
	})
}

func TestInvalidVideoID(t *testing.T) {
	for _, path := range []string{"/api/stream/short", "/api/audio/short", "/api/audio/dQw4w9WgXc!"} {
		t.Run(path, func(t *testing.T) {
			server := newTestServer(&fakeProvider{}, &fakeLocator{})
			called := false
			newTestStreamer(server, func(ctx context.Context, videoUrl string) (string, error) {
				called = true
				return "", nil
			})

			recorder, body := serve(server, httptest.NewRequest(http.MethodGet, path, nil))
			assert.Equal(t, http.StatusBadRequest, recorder.Code)
			assert.Equal(t, "Invalid video ID", body["error"])
			assert.False(t, called)
		})
	}
}

func TestHandleAudioResolverFailure(t *testing.T) {
	server := newTestServer(&fakeProvider{}, &fakeLocator{})
	newTestStreamer(server, func(ctx context.Context, videoUrl string) (string, error) {
		return "", errors.New("no url returned")
	})

	recorder, _ := serve(server, httptest.NewRequest(http.MethodGet, "/api/audio/dQw4w9WgXcQ", nil))
	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.NotEqual(t, "audio/mpeg", recorder.Header().Get("Content-Type"))
}

func TestTranscodeArgsQuietLogging(t *testing.T) {
	logger := app.NewLogger("tunescout-test", "info")
	logger.Output = io.Discard

	args := NewAudioStreamer("", "", logger).transcodeArgs()
	assert.Equal(t, "error", args["loglevel"])
	assert.Equal(t, "libmp3lame", args["c:a"])
}

func TestTailBuffer(t *testing.T) {
	buffer := &tailBuffer{Limit: 8}

	n, err := buffer.Write([]byte("frame=1 "))
	assert.NoError(t, err)
	assert.Equal(t, 8, n)

	n, err = buffer.Write([]byte("frame=2 size=10kB"))
	assert.NoError(t, err)
	assert.Equal(t, 17, n)
	assert.Equal(t, "ize=10kB", buffer.String())

	for i := 0; i < 1000; i++ {
		buffer.Write([]byte("progress line\n"))
	}
	assert.Len(t, buffer.String(), 8)
}

func TestKillOnDone(t *testing.T) {
	t.Run("request cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		killed := make(chan struct{})

		stop := killOnDone(ctx, func() { close(killed) })
		defer stop()
		cancel()

		select {
		case <-killed:
		case <-time.After(time.Second):
			t.Fatal("process was not killed after the request ended")
		}
	})

	t.Run("stopped first", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		var killed atomic.Bool

		stop := killOnDone(ctx, func() { killed.Store(true) })
		stop()
		cancel()

		assert.False(t, killed.Load())
	})
}
