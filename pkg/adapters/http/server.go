package http

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aretw0/stagedup"
	"github.com/aretw0/stagedup/internal/logging"
	"github.com/aretw0/stagedup/internal/presentation/graph"
	"github.com/aretw0/stagedup/pkg/domain"
	"github.com/aretw0/stagedup/pkg/workspace"
)

//go:generate go tool oapi-codegen -package http -generate types,chi-server,spec -o api.gen.go ../../../api/openapi.yaml

// maxBodyBytes caps request bodies; stages are small documents.
const maxBodyBytes = 4 << 20

// Server serves stored stages over HTTP.
type Server struct {
	Workspace *workspace.Manager
	Streams   *StreamManager

	gatherer   prometheus.Gatherer
	logger     *slog.Logger
	apiVersion string
}

// Ensure Server implements ServerInterface
var _ ServerInterface = (*Server)(nil)

// Option configures the Server.
type Option func(*Server)

// WithGatherer exposes the given registry on /metrics.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.gatherer = g
	}
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewHandler creates a new HTTP handler over the workspace.
// It fails if the embedded OpenAPI document does not validate.
func NewHandler(ws *workspace.Manager, opts ...Option) (http.Handler, error) {
	swagger, err := GetSwagger()
	if err != nil {
		return nil, fmt.Errorf("error loading OpenAPI document: %w", err)
	}
	if err := swagger.Validate(context.Background()); err != nil {
		return nil, fmt.Errorf("invalid OpenAPI document: %w", err)
	}

	s := &Server{
		Workspace:  ws,
		gatherer:   prometheus.DefaultGatherer,
		logger:     logging.NewNop(),
		apiVersion: swagger.Info.Version,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Streams = NewStreamManager(s.logger)

	r := chi.NewRouter()
	r.Use(enableCORS)

	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		spec, err := rawSpec()
		if err != nil {
			http.Error(w, "Failed to load spec", http.StatusInternalServerError)
			s.logger.Error("Failed to load OpenAPI spec", "err", err)
			return
		}
		_, _ = w.Write(spec)
	})
	r.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(swaggerHTML))
	})
	r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))

	HandlerWithOptions(s, ChiServerOptions{
		BaseRouter: r,
		ErrorHandlerFunc: func(w http.ResponseWriter, r *http.Request, err error) {
			writeError(w, http.StatusBadRequest, err.Error())
		},
	})
	return r, nil
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

const swaggerHTML = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>stagedup API Documentation</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui.css" />
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui-bundle.js" crossorigin></script>
<script>
    window.onload = () => {
    window.ui = SwaggerUIBundle({
        url: '/openapi.yaml',
        dom_id: '#swagger-ui',
    });
    };
</script>
</body>
</html>
`

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"app":         "stagedup-http",
		"version":     strings.TrimSpace(stagedup.Version),
		"api_version": s.apiVersion,
	})
}

// ListStages handles the GET /stages request.
func (s *Server) ListStages(w http.ResponseWriter, r *http.Request) {
	ids, err := s.Workspace.List(r.Context())
	if err != nil {
		s.fail(w, "ListStages", err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	writeJSON(w, http.StatusOK, map[string][]string{"stages": ids})
}

// GetStage handles the GET /stages/{id} request.
func (s *Server) GetStage(w http.ResponseWriter, r *http.Request, id StageID) {
	snap, err := s.Workspace.Load(r.Context(), id)
	if err != nil {
		s.fail(w, "GetStage", err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// PutStage handles the PUT /stages/{id} request.
func (s *Server) PutStage(w http.ResponseWriter, r *http.Request, id StageID) {
	if err := domain.ValidateStageID(id); err != nil {
		s.fail(w, "PutStage", err)
		return
	}

	var body PutStageJSONRequestBody
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		s.logger.Warn("PutStage: Invalid request body", "err", err)
		return
	}

	snap, err := mapStageToDomain(id, body)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.Workspace.Save(r.Context(), id, snap); err != nil {
		s.fail(w, "PutStage", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteStage handles the DELETE /stages/{id} request.
func (s *Server) DeleteStage(w http.ResponseWriter, r *http.Request, id StageID) {
	if err := s.Workspace.Delete(r.Context(), id); err != nil {
		s.fail(w, "DeleteStage", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Duplicate handles the POST /stages/{id}/duplicate request.
// Boundary rejections answer 400 with the status string in the body.
func (s *Server) Duplicate(w http.ResponseWriter, r *http.Request, id StageID) {

	var body DuplicateJSONRequestBody
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		s.logger.Warn("Duplicate: Invalid request body", "err", err)
		return
	}

	out, err := s.Workspace.Duplicate(r.Context(), id, body.Selection, duplicateParams(body))
	if err != nil {
		s.fail(w, "Duplicate", err)
		return
	}

	if out.Diff != nil {
		if payload, err := json.Marshal(out.Diff); err == nil {
			s.Streams.Broadcast(id, string(payload))
		}
	}

	code := http.StatusOK
	if out.Result.Err != nil {
		code = statusFor(out.Result.Err)
	}
	writeJSON(w, code, out)
}

// GetStageGraph handles the GET /stages/{id}/graph request.
func (s *Server) GetStageGraph(w http.ResponseWriter, r *http.Request, id StageID) {
	snap, err := s.Workspace.Load(r.Context(), id)
	if err != nil {
		s.fail(w, "GetStageGraph", err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(graph.GenerateMermaid(snap, nil)))
}

// SubscribeEvents handles the GET /stages/{id}/events request (SSE).
// Every duplicate run that changes the stage is pushed as a JSON diff.
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request, id StageID) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "Streaming not supported")
		return
	}

	ch, cancel := s.Streams.Subscribe(id)
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()
	s.logger.Info("SSE: Subscribed to stage updates", "stage_id", id)

	for {
		select {
		case <-r.Context().Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			fmt.Fprintf(w, "data: %s\n\n", msg)
			flusher.Flush()
		}
	}
}

func (s *Server) fail(w http.ResponseWriter, op string, err error) {
	code := statusFor(err)
	if code >= http.StatusInternalServerError {
		s.logger.Error(op+" failed", "err", err)
	}
	writeError(w, code, err.Error())
}
