package routes

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/Lekuruu/tunescout/internal/app"
)

// DemoUserID owns all history and likes until the API has authentication
const DemoUserID = 1

const DefaultRecentlyPlayedLimit = 20

type videoRequest struct {
	VideoID string `json:"videoId"`
}

type likedResponse struct {
	IsLiked bool `json:"isLiked"`
}

func RegisterLibraryRoutes(server *app.Server) {
	server.Router.HandleFunc("/api/recently-played", server.ContextMiddleware(HandleRecentlyPlayed)).Methods("GET")
	server.Router.HandleFunc("/api/recently-played", server.ContextMiddleware(HandleAddRecentlyPlayed)).Methods("POST")
	server.Router.HandleFunc("/api/liked-songs", server.ContextMiddleware(HandleLikedSongs)).Methods("GET")
	server.Router.HandleFunc("/api/toggle-like", server.ContextMiddleware(HandleToggleLike)).Methods("POST")
	server.Router.HandleFunc("/api/is-liked/{video_id}", server.ContextMiddleware(HandleIsLiked)).Methods("GET")
}

func HandleRecentlyPlayed(ctx *app.Context) {
	limit, err := strconv.Atoi(ctx.Request.URL.Query().Get("limit"))
	if err != nil || limit <= 0 {
		limit = DefaultRecentlyPlayedLimit
	}

	songs := ctx.State.Storage.GetRecentlyPlayed(DemoUserID, limit)
	writeJSON(ctx.Response, http.StatusOK, songsResponse{Songs: songs})
}

func HandleAddRecentlyPlayed(ctx *app.Context) {
	videoID, ok := readVideoID(ctx)
	if !ok {
		return
	}

	if _, found := ctx.State.Storage.GetSong(videoID); !found {
		writeError(ctx.Response, http.StatusNotFound, "Song not found")
		return
	}

	ctx.State.Storage.AddRecentlyPlayed(DemoUserID, videoID)
	writeJSON(ctx.Response, http.StatusOK, map[string]bool{"success": true})
}

func HandleLikedSongs(ctx *app.Context) {
	songs := ctx.State.Storage.GetLikedSongs(DemoUserID)
	writeJSON(ctx.Response, http.StatusOK, songsResponse{Songs: songs})
}

func HandleToggleLike(ctx *app.Context) {
	videoID, ok := readVideoID(ctx)
	if !ok {
		return
	}

	if _, found := ctx.State.Storage.GetSong(videoID); !found {
		writeError(ctx.Response, http.StatusNotFound, "Song not found")
		return
	}

	liked := ctx.State.Storage.ToggleLikedSong(DemoUserID, videoID)
	writeJSON(ctx.Response, http.StatusOK, likedResponse{IsLiked: liked})
}

// HandleIsLiked reports false for songs that were never stored
func HandleIsLiked(ctx *app.Context) {
	liked := ctx.State.Storage.IsLikedSong(DemoUserID, ctx.Vars["video_id"])
	writeJSON(ctx.Response, http.StatusOK, likedResponse{IsLiked: liked})
}

// readVideoID decodes the request body and writes a 400 if it holds no video id
func readVideoID(ctx *app.Context) (string, bool) {
	var body videoRequest
	if err := json.NewDecoder(ctx.Request.Body).Decode(&body); err != nil {
		writeError(ctx.Response, http.StatusBadRequest, "Invalid request body")
		return "", false
	}

	videoID := strings.TrimSpace(body.VideoID)
	if videoID == "" {
		writeError(ctx.Response, http.StatusBadRequest, "Video ID is required")
		return "", false
	}
	return videoID, true
}
