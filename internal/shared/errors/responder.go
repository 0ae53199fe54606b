package errors

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ContentTypeProblemJSON is the media type for problem responses.
const ContentTypeProblemJSON = "application/problem+json"

// ErrorMapper translates an application error into a problem. It reports false
// when the error is not one it knows.
type ErrorMapper func(err error) (ProblemDetail, bool)

// Responder writes problem responses. Errors no mapper recognises become a
// generic 500 and are logged, never echoed.
type Responder struct {
	baseURI string
	mappers []ErrorMapper
	logger  *slog.Logger
}

type ResponderOption func(*Responder)

// WithBaseURI makes relative problem types absolute.
func WithBaseURI(uri string) ResponderOption {
	return func(r *Responder) { r.baseURI = uri }
}

func WithMappers(mappers ...ErrorMapper) ResponderOption {
	return func(r *Responder) { r.mappers = append(r.mappers, mappers...) }
}

func WithLogger(logger *slog.Logger) ResponderOption {
	return func(r *Responder) {
		if logger != nil {
			r.logger = logger
		}
	}
}

func NewResponder(opts ...ResponderOption) *Responder {
	r := &Responder{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// DefaultResponder uses relative type URIs and no mappers.
var DefaultResponder = NewResponder()

// Respond writes problem with the problem+json content type.
func (r *Responder) Respond(c *gin.Context, problem ProblemDetail) {
	if r.baseURI != "" && len(problem.Type) > 0 && problem.Type[0] == '/' {
		problem.Type = r.baseURI + problem.Type
	}
	if problem.Instance == "" && c.Request != nil {
		problem.Instance = c.Request.URL.Path
	}
	c.Header("Content-Type", ContentTypeProblemJSON)
	c.Render(problem.Status, problemRender{problem: problem})
}

// RespondError maps err through the configured mappers.
func (r *Responder) RespondError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	var problem ProblemDetail
	if errors.As(err, &problem) {
		r.Respond(c, problem)
		return
	}
	for _, mapper := range r.mappers {
		if problem, ok := mapper(err); ok {
			if problem.Status >= http.StatusInternalServerError {
				r.logInternal(c, err)
			}
			r.Respond(c, problem)
			return
		}
	}
	r.logInternal(c, err)
	r.Respond(c, ErrInternal)
}

func (r *Responder) BadRequest(c *gin.Context, detail string) {
	r.Respond(c, ErrBadRequest.WithDetail(detail))
}

func (r *Responder) logInternal(c *gin.Context, err error) {
	ctx, path := context.Background(), ""
	if c.Request != nil {
		ctx, path = c.Request.Context(), c.Request.URL.Path
	}
	r.logger.LogAttrs(ctx, slog.LevelError, "request failed",
		slog.String("http.path", path),
		slog.String("error", err.Error()))
}

func Respond(c *gin.Context, problem ProblemDetail) {
	DefaultResponder.Respond(c, problem)
}

func RespondError(c *gin.Context, err error) {
	DefaultResponder.RespondError(c, err)
}

// HTTPStatusFromError extracts the status of a ProblemDetail error, defaulting to 500.
func HTTPStatusFromError(err error) int {
	var problem ProblemDetail
	if errors.As(err, &problem) {
		return problem.Status
	}
	return http.StatusInternalServerError
}
