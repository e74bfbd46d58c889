package routes

import (
	"net/http"

	"github.com/Lekuruu/tunescout/internal/app"
)

func RegisterHealthRoutes(server *app.Server) {
	server.Router.HandleFunc("/health", server.ContextMiddleware(HandleHealth)).Methods("GET")
}

func HandleHealth(ctx *app.Context) {
	writeJSON(ctx.Response, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": ctx.State.Logger.Name,
	})
}
