package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
)

// Context carries a single request through a handler
type Context struct {
	Response http.ResponseWriter
	Request  *http.Request
	Vars     map[string]string
	State    *State
}

type Server struct {
	Host   string
	Port   int
	Name   string
	State  *State
	Router *mux.Router

	http *http.Server
}

func NewServer(host string, port int, name string, state *State) *Server {
	router := mux.NewRouter()
	return &Server{
		Host:   host,
		Port:   port,
		Name:   name,
		State:  state,
		Router: router,
		http: &http.Server{
			Addr:              fmt.Sprintf("%s:%d", host, port),
			Handler:           router,
			ReadTimeout:       10 * time.Second,
			ReadHeaderTimeout: 5 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
	}
}

// ContextMiddleware wraps a context handler into a plain http handler
func (server *Server) ContextMiddleware(handler func(*Context)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		response := &responseWriter{ResponseWriter: w}
		ctx := &Context{
			Response: response,
			Request:  r,
			Vars:     mux.Vars(r),
			State:    server.State,
		}

		defer func() {
			if err := recover(); err != nil {
				server.State.Logger.Errorf("Panic while handling %s %s: %v", r.Method, r.URL.Path, err)
				if !response.wroteHeader {
					response.WriteHeader(http.StatusInternalServerError)
				}
			}
		}()

		handler(ctx)
		server.State.Logger.Debugf("%s %s (%s)", r.Method, r.URL.Path, time.Since(start))
	}
}

// responseWriter remembers whether a status has been sent
type responseWriter struct {
	http.ResponseWriter
	wroteHeader bool
}

func (rw *responseWriter) WriteHeader(status int) {
	rw.wroteHeader = true
	rw.ResponseWriter.WriteHeader(status)
}

func (rw *responseWriter) Write(bs []byte) (int, error) {
	rw.wroteHeader = true
	return rw.ResponseWriter.Write(bs)
}

func (rw *responseWriter) Flush() {
	if flusher, ok := rw.ResponseWriter.(http.Flusher); ok {
		rw.wroteHeader = true
		flusher.Flush()
	}
}

func (rw *responseWriter) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}

// Serve listens until Shutdown is called or the listener fails
func (server *Server) Serve() error {
	server.State.Logger.Logf("%s listening on %s", server.Name, server.http.Addr)
	if err := server.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (server *Server) Shutdown(ctx context.Context) error {
	return server.http.Shutdown(ctx)
}
