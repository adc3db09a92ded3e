package http

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/goliatone/go-scriptloc/internal/localization"
	"github.com/goliatone/go-scriptloc/internal/logging"
	"github.com/goliatone/go-scriptloc/pkg/interfaces"
)

// Service is the localization surface served over HTTP.
type Service interface {
	TranslatablePaths(ctx context.Context) []string
	ScriptOrCSV(ctx context.Context, path string) (*localization.Value, error)
	SubmitTranslation(ctx context.Context, submission localization.Submission) error
}

// API serves the script localization routes.
type API struct {
	basePath string
	service  Service
	logger   interfaces.Logger
}

// Option mutates the API configuration.
type Option func(*API)

// NewAPI constructs an API over service.
func NewAPI(service Service, opts ...Option) *API {
	api := &API{
		basePath: "/",
		service:  service,
		logger:   logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(api)
		}
	}
	return api
}

// WithBasePath overrides the base path (defaults to "/").
func WithBasePath(path string) Option {
	return func(api *API) {
		if api == nil {
			return
		}
		if trimmed := strings.TrimSpace(path); trimmed != "" {
			api.basePath = trimmed
		}
	}
}

// WithLogger sets the logger used for failed requests.
func WithLogger(logger interfaces.Logger) Option {
	return func(api *API) {
		if api != nil && logger != nil {
			api.logger = logger
		}
	}
}

// Register attaches the routes to the provided mux.
func (api *API) Register(mux *http.ServeMux) error {
	if mux == nil {
		return fmt.Errorf("http: mux is required")
	}
	if api == nil {
		return fmt.Errorf("http: api is nil")
	}

	base := joinPath(api.basePath, "")
	api.registerScriptRoutes(mux, base)
	return nil
}

// Handler returns the routes on a fresh mux wrapped in CORS handling.
func (api *API) Handler() (http.Handler, error) {
	mux := http.NewServeMux()
	if err := api.Register(mux); err != nil {
		return nil, err
	}
	return CORS(mux), nil
}
