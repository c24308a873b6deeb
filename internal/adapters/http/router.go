package httpadapter

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/bennyclifton-svg/assemble.ai-sub002/internal/core/domain"
	"github.com/bennyclifton-svg/assemble.ai-sub002/internal/core/ports"
	"github.com/bennyclifton-svg/assemble.ai-sub002/internal/observability/metrics"
)

const (
	serviceName = "api"

	// Uploaded plan sets can be large; anything beyond this spills to
	// temp files during multipart parsing.
	maxUploadMemory = 32 << 20

	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// RouterDeps carries the inbound services the router exposes.
type RouterDeps struct {
	Uploader ports.DocumentUploader
	Reader   ports.DocumentReader
	Content  ports.DocumentContentReader
	Remover  ports.DocumentRemover
	Tree     ports.FolderTreeService
	Register ports.TenderRegisterService
	Settings ports.SettingsService
}

// RouterOptions tunes the middleware chain. Zero values disable the
// corresponding gate.
type RouterOptions struct {
	Metrics          *metrics.HTTPServerMetrics
	RateLimitRPS     int
	RateLimitBurst   int
	MaxInFlight      int
	BackpressureWait time.Duration
}

type Router struct {
	deps RouterDeps
	opts RouterOptions
}

func NewRouter(deps RouterDeps, opts RouterOptions) *Router {
	return &Router{deps: deps, opts: opts}
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", rt.healthz)
	if rt.opts.Metrics != nil {
		mux.Handle("/metrics", rt.opts.Metrics.Handler())
	}
	mux.HandleFunc("/v1/projects/", rt.projectRoutes)
	mux.HandleFunc("/v1/documents/", rt.documentRoutes)

	var handler http.Handler = mux
	if rt.opts.Metrics != nil {
		handler = rt.opts.Metrics.Middleware(serviceName, handler)
	}
	wait := rt.opts.BackpressureWait
	if wait <= 0 {
		wait = 2 * time.Second
	}
	handler = backpressureMiddleware(handler, rt.opts.MaxInFlight, wait)
	handler = rateLimitMiddleware(handler, rt.opts.RateLimitRPS, rt.opts.RateLimitBurst)
	handler = accessLogMiddleware(handler)
	return requestIDMiddleware(handler)
}

func (rt *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// projectRoutes dispatches /v1/projects/{project_id}/<resource>.
func (rt *Router) projectRoutes(w http.ResponseWriter, r *http.Request) {
	projectID, resource := splitProjectPath(r.URL.Path)
	if projectID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "project id is required"})
		return
	}

	switch {
	case resource == "documents" && r.Method == http.MethodPost:
		rt.uploadDocument(w, r, projectID)
	case resource == "folders" && r.Method == http.MethodGet:
		rt.folderTree(w, r, projectID)
	case resource == "settings" && r.Method == http.MethodGet:
		rt.getSettings(w, r, projectID)
	case resource == "settings" && r.Method == http.MethodPut:
		rt.putSettings(w, r, projectID)
	case resource == "tender-register" && r.Method == http.MethodGet:
		rt.tenderRegister(w, r, projectID)
	case resource == "documents" || resource == "folders" || resource == "settings" || resource == "tender-register":
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
	default:
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown resource"})
	}
}

func splitProjectPath(path string) (projectID, resource string) {
	rest := strings.TrimPrefix(path, "/v1/projects/")
	rest = strings.Trim(rest, "/")
	if rest == "" {
		return "", ""
	}
	parts := strings.SplitN(rest, "/", 2)
	projectID = parts[0]
	if len(parts) == 2 {
		resource = parts[1]
	}
	return projectID, resource
}

func (rt *Router) uploadDocument(w http.ResponseWriter, r *http.Request, projectID string) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid multipart form"})
		return
	}
	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "multipart field 'file' is required"})
		return
	}
	defer file.Close()

	fctx := domain.FilingContext{
		Location:          domain.UploadLocation(strings.TrimSpace(r.FormValue("upload_location"))),
		DisciplineOrTrade: strings.TrimSpace(r.FormValue("discipline_or_trade")),
		FirmName:          strings.TrimSpace(r.FormValue("firm_name")),
		SectionName:       strings.TrimSpace(r.FormValue("section_name")),
		Invoice:           parseBoolField(r, "invoice", false),
		AddToDocuments:    parseBoolField(r, "add_to_documents", true),
	}
	override := domain.FilingOverride{
		Path:        r.FormValue("override_path"),
		DisplayName: strings.TrimSpace(r.FormValue("override_name")),
	}

	doc, err := rt.deps.Uploader.Upload(r.Context(), ports.UploadRequest{
		ProjectID: projectID,
		Filename:  fileHeader.Filename,
		MimeType:  fileHeader.Header.Get("Content-Type"),
		Size:      fileHeader.Size,
		Context:   fctx,
		Override:  override,
		Body:      file,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	status := http.StatusCreated
	if !fctx.AddToDocuments {
		status = http.StatusOK
	}
	writeJSON(w, status, doc)
}

func (rt *Router) folderTree(w http.ResponseWriter, r *http.Request, projectID string) {
	pruned := false
	if v := r.URL.Query().Get("pruned"); v != "" {
		pruned, _ = strconv.ParseBool(v)
	}

	tree, err := rt.deps.Tree.Tree(r.Context(), projectID, pruned)
	if err != nil {
		writeError(w, err)
		return
	}
	if tree == nil {
		// Pruning an empty project leaves nothing to show.
		writeJSON(w, http.StatusOK, map[string]any{"tree": nil})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"tree": tree})
}

func (rt *Router) getSettings(w http.ResponseWriter, r *http.Request, projectID string) {
	settings, err := rt.deps.Settings.Get(r.Context(), projectID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

func (rt *Router) putSettings(w http.ResponseWriter, r *http.Request, projectID string) {
	var req struct {
		Disciplines []string `json:"disciplines"`
		Trades      []string `json:"trades"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	settings := domain.ProjectSettings{
		ProjectID:   projectID,
		Disciplines: req.Disciplines,
		Trades:      req.Trades,
	}
	if err := rt.deps.Settings.Put(r.Context(), settings); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

func (rt *Router) tenderRegister(w http.ResponseWriter, r *http.Request, projectID string) {
	workbook, err := rt.deps.Register.Export(r.Context(), projectID)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="tender-register.xlsx"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(workbook)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(workbook)
}

// documentRoutes dispatches /v1/documents/{document_id}[/content].
func (rt *Router) documentRoutes(w http.ResponseWriter, r *http.Request) {
	rest := strings.Trim(strings.TrimPrefix(r.URL.Path, "/v1/documents/"), "/")
	if rest == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "document id is required"})
		return
	}

	id, sub := rest, ""
	if i := strings.IndexByte(rest, '/'); i >= 0 {
		id, sub = rest[:i], rest[i+1:]
	}

	switch {
	case sub == "" && r.Method == http.MethodGet:
		rt.getDocument(w, r, id)
	case sub == "" && r.Method == http.MethodDelete:
		rt.deleteDocument(w, r, id)
	case sub == "content" && r.Method == http.MethodGet:
		rt.documentContent(w, r, id)
	case sub == "":
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
	default:
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown resource"})
	}
}

func (rt *Router) getDocument(w http.ResponseWriter, r *http.Request, id string) {
	doc, err := rt.deps.Reader.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (rt *Router) deleteDocument(w http.ResponseWriter, r *http.Request, id string) {
	if err := rt.deps.Remover.Remove(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (rt *Router) documentContent(w http.ResponseWriter, r *http.Request, id string) {
	doc, body, err := rt.deps.Content.Content(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	defer body.Close()

	contentType := doc.MimeType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+doc.DisplayName+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = io.Copy(w, body)
}

func parseBoolField(r *http.Request, field string, fallback bool) bool {
	v := strings.TrimSpace(r.FormValue(field))
	if v == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func writeError(w http.ResponseWriter, err error) {
	status := mapErrorToHTTPStatus(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		// Internal detail stays in the logs.
		msg = "internal error"
	}
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
