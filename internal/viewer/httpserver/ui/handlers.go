package ui

import (
	"net/http"
	"time"

	"github.com/a-h/templ"
	"go.uber.org/zap"

	"finitefield.org/product-viewer/internal/viewer/catalog"
	"finitefield.org/product-viewer/internal/viewer/httpserver/httpx"
	custommw "finitefield.org/product-viewer/internal/viewer/httpserver/middleware"
	"finitefield.org/product-viewer/internal/viewer/requestctx"
	productstpl "finitefield.org/product-viewer/internal/viewer/templates/products"
)

// Dependencies collects the collaborators required by the UI handlers.
type Dependencies struct {
	Session *catalog.Session
	DataDir string
}

// Handlers exposes HTTP handlers for the browser page, its fragments and the JSON view.
type Handlers struct {
	session *catalog.Session
	dataDir string
}

// NewHandlers wires the UI handler set.
func NewHandlers(deps Dependencies) *Handlers {
	session := deps.Session
	if session == nil {
		session = catalog.NewSession(nil)
	}
	dataDir := deps.DataDir
	if dataDir == "" {
		dataDir = "data"
	}
	return &Handlers{
		session: session,
		dataDir: dataDir,
	}
}

// ProductsPage renders the full browser page.
func (h *Handlers) ProductsPage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req := h.browse(r)

	payload := productstpl.BuildPageData(custommw.BasePathFromContext(ctx), req.state, req.view, req.result, h.dataDir)
	templ.Handler(productstpl.Index(payload)).ServeHTTP(w, r)
}

// ProductsTable renders the table fragment for htmx requests.
func (h *Handlers) ProductsTable(w http.ResponseWriter, r *http.Request) {
	req := h.browse(r)

	payload := productstpl.TablePayload(req.state, req.view, req.result, h.dataDir)
	templ.Handler(productstpl.Table(payload)).ServeHTTP(w, r)
}

// ProductsAPI returns the view as JSON. Filters come from the URL only.
func (h *Handlers) ProductsAPI(w http.ResponseWriter, r *http.Request) {
	query, _ := custommw.QueryFromURL(r)
	result := h.session.Load(h.dataDir)
	view := catalog.Browse(result.Products, catalog.Query{Category: query.Category, Search: query.Search})

	resp := productsResponse{View: view}
	if !result.Snapshot.IsZero() {
		snapshot := result.Snapshot
		resp.Snapshot = &snapshot
	}
	switch view.State {
	case catalog.StateNoData:
		resp.Message = productstpl.MessageNoData(h.dataDir)
		if result.Err != nil {
			resp.Error = result.Err.Error()
		}
	case catalog.StateNoMatches:
		resp.Message = productstpl.MessageNoMatches
	}
	httpx.WriteJSON(r.Context(), w, http.StatusOK, resp)
}

// Healthz reports liveness and whether a snapshot is loaded.
func (h *Handlers) Healthz(w http.ResponseWriter, r *http.Request) {
	result := h.session.Load(h.dataDir)
	httpx.WriteJSON(r.Context(), w, http.StatusOK, healthResponse{
		Status:         "ok",
		SnapshotLoaded: !result.Empty(),
		Records:        result.Products.Len(),
		LoadedAt:       result.LoadedAt,
	})
}

type productsResponse struct {
	catalog.View
	Snapshot *catalog.Snapshot `json:"snapshot,omitempty"`
	Message  string            `json:"message,omitempty"`
	Error    string            `json:"error,omitempty"`
}

type healthResponse struct {
	Status         string    `json:"status"`
	SnapshotLoaded bool      `json:"snapshot_loaded"`
	Records        int       `json:"records"`
	LoadedAt       time.Time `json:"loaded_at"`
}

type browseRequest struct {
	state  productstpl.QueryState
	result catalog.Result
	view   catalog.View
}

func (h *Handlers) browse(r *http.Request) browseRequest {
	ctx := r.Context()
	query, ok := requestctx.QueryFrom(ctx)
	if !ok {
		query, _ = custommw.QueryFromURL(r)
	}

	result := h.session.Load(h.dataDir)
	if result.Failed() {
		requestctx.Logger(ctx).Debug("products: snapshot unavailable", zap.Error(result.Err))
	}
	view := catalog.Browse(result.Products, catalog.Query{Category: query.Category, Search: query.Search})

	return browseRequest{
		state: productstpl.QueryState{
			Category: query.Category,
			Search:   query.Search,
			Restored: query.Restored,
		},
		result: result,
		view:   view,
	}
}
