package mcp

import (
	"io"
	"net/http"
	"sync"

	"github.com/google/uuid"

	"github.com/glasskite/unrealmcp/internal/logging"
)

// httpJob carries one request body to the worker and a channel for the
// serialized response.
type httpJob struct {
	correlationID string
	body          []byte
	reply         chan []byte
}

// HTTPHandler serves MCP over HTTP POST. Each inbound request is handed off
// to a single worker goroutine that drains a job channel; the HTTP goroutine
// parks until the worker replies. Tool calls are therefore never concurrent
// with each other or with anything else the worker runs, mirroring the
// single-writer host state the handlers touch. A slow handler stalls every
// subsequent request; that is the sequential-bottleneck property the design
// accepts, not a defect.
type HTTPHandler struct {
	server *Server
	jobs   chan httpJob
	quit   chan struct{}
	once   sync.Once
}

// NewHTTPHandler creates the handler and starts its worker goroutine. Callers
// must Close it to stop the worker.
func NewHTTPHandler(server *Server) *HTTPHandler {
	h := &HTTPHandler{
		server: server,
		jobs:   make(chan httpJob),
		quit:   make(chan struct{}),
	}
	go h.run()
	return h
}

func (h *HTTPHandler) run() {
	for {
		select {
		case job := <-h.jobs:
			logging.Logger().Debug("dispatching request", "correlationId", job.correlationID)
			job.reply <- h.server.HandleRequest(job.body)
		case <-h.quit:
			return
		}
	}
}

// Close stops the worker. In-flight requests complete; requests arriving
// afterwards are rejected with 503.
func (h *HTTPHandler) Close() {
	h.once.Do(func() {
		close(h.quit)
	})
}

// ServeHTTP implements http.Handler.
func (h *HTTPHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		logging.Logger().Error("failed to read request body", "err", err)
		http.Error(w, "failed to read request body", http.StatusBadRequest)
		return
	}

	select {
	case <-h.quit:
		http.Error(w, "server shutting down", http.StatusServiceUnavailable)
		return
	default:
	}

	job := httpJob{
		correlationID: uuid.NewString(),
		body:          body,
		reply:         make(chan []byte, 1),
	}
	logging.Logger().Debug("received request", "correlationId", job.correlationID, "bytes", len(body))

	select {
	case h.jobs <- job:
	case <-h.quit:
		http.Error(w, "server shutting down", http.StatusServiceUnavailable)
		return
	}

	resp := <-job.reply
	w.Header().Set("Content-Type", "application/json")
	if _, err := w.Write(resp); err != nil {
		logging.Logger().Error("failed to write response", "correlationId", job.correlationID, "err", err)
	}
}
