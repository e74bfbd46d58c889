package routes

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/Lekuruu/tunescout/internal/app"
	"github.com/Lekuruu/tunescout/internal/music"
)

type searchRequest struct {
	Query string `json:"query"`
	Limit *int   `json:"limit"`
}

type trendingRequest struct {
	CountryCode string `json:"countryCode"`
	Limit       *int   `json:"limit"`
}

type songsResponse struct {
	Songs []music.Record `json:"songs"`
}

func RegisterMusicRoutes(server *app.Server) {
	server.Router.HandleFunc("/api/search", server.ContextMiddleware(HandleSearch)).Methods("POST")
	server.Router.HandleFunc("/api/location", server.ContextMiddleware(HandleLocation)).Methods("GET")
	server.Router.HandleFunc("/api/trending", server.ContextMiddleware(HandleTrending)).Methods("POST")
}

// HandleSearch searches for videos matching the query in the request body
func HandleSearch(ctx *app.Context) {
	var body searchRequest
	if err := json.NewDecoder(ctx.Request.Body).Decode(&body); err != nil {
		writeError(ctx.Response, http.StatusBadRequest, "Invalid request body")
		return
	}

	query := strings.TrimSpace(body.Query)
	if query == "" {
		writeError(ctx.Response, http.StatusBadRequest, "Search query is required")
		return
	}

	limit := ctx.State.Config.Limits.Search
	if body.Limit != nil && *body.Limit > 0 {
		limit = *body.Limit
	}

	result := ctx.State.Music.Search(ctx.Request.Context(), query, limit)
	if !result.Success {
		writeError(ctx.Response, http.StatusInternalServerError, result.Error)
		return
	}

	songs := ctx.State.Storage.SaveSongs(result.Results)
	writeJSON(ctx.Response, http.StatusOK, songsResponse{Songs: songs})
}

// HandleLocation resolves the location of the requesting client
func HandleLocation(ctx *app.Context) {
	ip := resolveClientIP(ctx.Request)

	result := ctx.State.Music.Locate(ctx.Request.Context(), ip)
	if !result.Success {
		writeError(ctx.Response, http.StatusInternalServerError, result.Error)
		return
	}

	writeJSON(ctx.Response, http.StatusOK, result.Location)
}

// HandleTrending returns popular music for the country in the request body
func HandleTrending(ctx *app.Context) {
	var body trendingRequest
	if err := json.NewDecoder(ctx.Request.Body).Decode(&body); err != nil {
		writeError(ctx.Response, http.StatusBadRequest, "Invalid request body")
		return
	}

	countryCode := strings.TrimSpace(body.CountryCode)
	if countryCode == "" {
		writeError(ctx.Response, http.StatusBadRequest, "Country code is required")
		return
	}

	limit := ctx.State.Config.Limits.Trending
	if body.Limit != nil && *body.Limit > 0 {
		limit = *body.Limit
	}

	result := ctx.State.Music.Trending(ctx.Request.Context(), countryCode, limit)
	if !result.Success {
		writeError(ctx.Response, http.StatusInternalServerError, result.Error)
		return
	}

	songs := ctx.State.Storage.SaveSongs(result.Results)
	writeJSON(ctx.Response, http.StatusOK, songsResponse{Songs: songs})
}
