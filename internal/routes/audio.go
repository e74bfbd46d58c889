package routes

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"

	ffmpeg "github.com/Lekuruu/ffmpeg-go"
	"github.com/Lekuruu/tunescout/internal/app"
	"github.com/lrstanley/go-ytdlp"
)

const VideoUrlFormat = "https://www.youtube.com/watch?v=%s"

var videoIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{11}$`)

// AudioStreamer resolves playable audio for search results
type AudioStreamer struct {
	Quality string
	Bitrate string
	Logger  *app.Logger

	// ResolveUrl turns a watch page url into a direct media url
	ResolveUrl func(ctx context.Context, videoUrl string) (string, error)
}

// NewAudioStreamer creates a new audio streamer backed by yt-dlp
func NewAudioStreamer(quality, bitrate string, logger *app.Logger) *AudioStreamer {
	if quality == "" {
		quality = "bestaudio"
	}
	if bitrate == "" {
		bitrate = "128k"
	}

	streamer := &AudioStreamer{
		Quality: quality,
		Bitrate: bitrate,
		Logger:  logger,
	}
	streamer.ResolveUrl = streamer.getAudioUrl
	return streamer
}

func RegisterAudioRoutes(server *app.Server, streamer *AudioStreamer) {
	server.Router.HandleFunc("/api/stream/{video_id}", server.ContextMiddleware(streamer.HandleStreamUrl)).Methods("GET")
	server.Router.HandleFunc("/api/audio/{video_id}", server.ContextMiddleware(streamer.HandleAudio)).Methods("GET")
}

// HandleStreamUrl returns a direct audio url for the video
func (as *AudioStreamer) HandleStreamUrl(ctx *app.Context) {
	videoID := ctx.Vars["video_id"]
	if !videoIDPattern.MatchString(videoID) {
		writeError(ctx.Response, http.StatusBadRequest, "Invalid video ID")
		return
	}

	streamUrl, err := as.ResolveUrl(ctx.Request.Context(), fmt.Sprintf(VideoUrlFormat, videoID))
	if err != nil {
		as.Logger.Errorf("Failed to get stream url for %s: %v", videoID, err)
		writeError(ctx.Response, http.StatusInternalServerError, "Failed to get stream url")
		return
	}

	writeJSON(ctx.Response, http.StatusOK, map[string]string{"streamUrl": streamUrl})
}

// HandleAudio transcodes the video's audio track to mp3 while it is being sent
func (as *AudioStreamer) HandleAudio(ctx *app.Context) {
	videoID := ctx.Vars["video_id"]
	if !videoIDPattern.MatchString(videoID) {
		writeError(ctx.Response, http.StatusBadRequest, "Invalid video ID")
		return
	}

	streamUrl, err := as.ResolveUrl(ctx.Request.Context(), fmt.Sprintf(VideoUrlFormat, videoID))
	if err != nil {
		as.Logger.Errorf("Failed to get stream url for %s: %v", videoID, err)
		writeError(ctx.Response, http.StatusInternalServerError, "Failed to get stream url")
		return
	}

	ctx.Response.Header().Set("Content-Type", "audio/mpeg")
	ctx.Response.Header().Set("Cache-Control", "no-cache")
	as.streamWithFFmpeg(ctx, streamUrl)
}

// getAudioUrl gets a direct audio url using yt-dlp
func (as *AudioStreamer) getAudioUrl(ctx context.Context, videoUrl string) (string, error) {
	dl := ytdlp.New().
		Format(as.Quality).
		NoPlaylist().
		Print("urls")

	result, err := dl.Run(ctx, videoUrl)
	if err != nil {
		return "", fmt.Errorf("yt-dlp failed: %w", err)
	}

	url := strings.TrimSpace(result.Stdout)
	if url == "" {
		return "", fmt.Errorf("no url returned")
	}

	// yt-dlp may return multiple urls, take the first one
	lines := strings.Split(url, "\n")
	return strings.TrimSpace(lines[0]), nil
}

// transcodeArgs are the ffmpeg output arguments for an mp3 stream
func (as *AudioStreamer) transcodeArgs() ffmpeg.KwArgs {
	return ffmpeg.KwArgs{
		"vn":       "",
		"c:a":      "libmp3lame",
		"b:a":      as.Bitrate,
		"f":        "mp3",
		"loglevel": "error",
	}
}

// streamWithFFmpeg streams audio content through FFmpeg transcoding
func (as *AudioStreamer) streamWithFFmpeg(ctx *app.Context, streamUrl string) {
	cmd := ffmpeg.Input(streamUrl).
		Output("pipe:1", as.transcodeArgs()).
		Compile()

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		as.Logger.Errorf("Failed to create FFmpeg stdout pipe: %v", err)
		ctx.Response.WriteHeader(http.StatusInternalServerError)
		return
	}

	// Keep the tail of stderr for debugging
	stderr := &tailBuffer{Limit: stderrLimit}
	cmd.Stderr = stderr

	if err := cmd.Start(); err != nil {
		as.Logger.Errorf("Failed to start FFmpeg: %v", err)
		ctx.Response.WriteHeader(http.StatusInternalServerError)
		return
	}

	stop := killOnDone(ctx.Request.Context(), func() { cmd.Process.Kill() })
	defer stop()

	buf := make([]byte, 32*1024)
	flusher, canFlush := ctx.Response.(http.Flusher)

	var readErr error
	for {
		n, err := stdout.Read(buf)
		if n > 0 {
			if _, writeErr := ctx.Response.Write(buf[:n]); writeErr != nil {
				// Client disconnected
				cmd.Process.Kill()
				break
			}
			if canFlush {
				flusher.Flush()
			}
		}
		if err != nil {
			if err != io.EOF {
				readErr = err
			}
			break
		}
	}

	// stderr is only safe to read once the process has been waited on
	cmd.Wait()
	if readErr != nil {
		as.Logger.Errorf("Error reading FFmpeg output: %v, stderr: %s", readErr, stderr.String())
	}
}

const stderrLimit = 4 * 1024

// tailBuffer keeps the last Limit bytes written to it
type tailBuffer struct {
	Limit int
	data  []byte
}

func (tb *tailBuffer) Write(bs []byte) (int, error) {
	tb.data = append(tb.data, bs...)
	if overflow := len(tb.data) - tb.Limit; overflow > 0 {
		tb.data = append(tb.data[:0], tb.data[overflow:]...)
	}
	return len(bs), nil
}

func (tb *tailBuffer) String() string {
	return string(tb.data)
}

// killOnDone calls kill once ctx is done, unless stop is called first
func killOnDone(ctx context.Context, kill func()) (stop func()) {
	done := make(chan struct{})
	exited := make(chan struct{})
	go func() {
		defer close(exited)
		select {
		case <-ctx.Done():
			kill()
		case <-done:
		}
	}()
	return func() {
		close(done)
		<-exited
	}
}
