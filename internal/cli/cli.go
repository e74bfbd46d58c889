package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/Lekuruu/tunescout/internal/music"
)

// Operations is the set of operations the dispatcher can select from
type Operations interface {
	Search(ctx context.Context, query string, limit int) music.Envelope
	Locate(ctx context.Context, ip string) music.Envelope
	Trending(ctx context.Context, countryCode string, limit int) music.Envelope
}

// UsageError describes invalid command line input
type UsageError struct {
	Message string
}

func (e *UsageError) Error() string {
	return e.Message
}

type command func(ctx context.Context, args []string) (music.Envelope, error)

// Runner dispatches a command line to an operation and prints the resulting envelope
type Runner struct {
	Music                Operations
	Output               io.Writer
	SearchDefaultLimit   int
	TrendingDefaultLimit int
}

func NewRunner(operations Operations, output io.Writer) *Runner {
	return &Runner{
		Music:                operations,
		Output:               output,
		SearchDefaultLimit:   10,
		TrendingDefaultLimit: 20,
	}
}

// Run executes args (without the program name) and returns the process exit code.
// Handled outcomes exit with 0 even when the envelope reports a failure,
// usage errors and panics exit with 1.
func (r *Runner) Run(ctx context.Context, args []string) (code int) {
	defer func() {
		if rec := recover(); rec != nil {
			code = r.fail(fmt.Sprint(rec))
		}
	}()

	if len(args) == 0 {
		return r.fail("No command provided")
	}

	commands := map[string]command{
		"search":   r.search,
		"location": r.location,
		"trending": r.trending,
	}

	name := args[0]
	cmd, ok := commands[name]
	if !ok {
		return r.fail(fmt.Sprintf("Unknown command: %s", name))
	}

	envelope, err := cmd(ctx, args[1:])
	if err != nil {
		return r.fail(err.Error())
	}

	if err := WriteEnvelope(r.Output, envelope); err != nil {
		return 1
	}
	return 0
}

func (r *Runner) search(ctx context.Context, args []string) (music.Envelope, error) {
	if len(args) < 1 {
		return music.Envelope{}, &UsageError{Message: "No search query provided"}
	}

	limit, err := parseLimit(args[1:], r.SearchDefaultLimit)
	if err != nil {
		return music.Envelope{}, err
	}
	return r.Music.Search(ctx, args[0], limit), nil
}

func (r *Runner) location(ctx context.Context, args []string) (music.Envelope, error) {
	ip := ""
	if len(args) > 0 {
		ip = args[0]
	}
	return r.Music.Locate(ctx, ip), nil
}

func (r *Runner) trending(ctx context.Context, args []string) (music.Envelope, error) {
	if len(args) < 1 {
		return music.Envelope{}, &UsageError{Message: "No country code provided"}
	}

	limit, err := parseLimit(args[1:], r.TrendingDefaultLimit)
	if err != nil {
		return music.Envelope{}, err
	}
	return r.Music.Trending(ctx, args[0], limit), nil
}

// parseLimit reads the optional limit argument
func parseLimit(args []string, fallback int) (int, error) {
	if len(args) == 0 {
		return fallback, nil
	}

	limit, err := strconv.Atoi(args[0])
	if err != nil || limit <= 0 {
		return 0, &UsageError{Message: fmt.Sprintf("Invalid limit: %s", args[0])}
	}
	return limit, nil
}

func (r *Runner) fail(message string) int {
	WriteEnvelope(r.Output, music.FailureMessage(message))
	return 1
}

// WriteEnvelope writes envelope as a single JSON object followed by a newline
func WriteEnvelope(w io.Writer, envelope music.Envelope) error {
	return json.NewEncoder(w).Encode(envelope)
}
