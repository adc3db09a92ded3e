package http

import (
	"net/http"
	"strings"

	"github.com/goliatone/go-scriptloc/internal/localization"
)

type translatePayload struct {
	// Path is untyped so a non-string path is rejected as a bad request
	// rather than a decode failure.
	Path  any    `json:"path"`
	Lang  string `json:"lang"`
	Key   string `json:"key"`
	Value string `json:"value"`
}

func (api *API) registerScriptRoutes(mux *http.ServeMux, base string) {
	if mux == nil {
		return
	}
	root := joinPath(base, "sq")
	mux.HandleFunc("GET "+root+"/names", api.handleNames)
	mux.HandleFunc("GET "+root+"/value", api.handleValue)
	mux.HandleFunc("POST "+root+"/translate", api.handleTranslate)
}

func (api *API) handleNames(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.service == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, api.service.TranslatablePaths(r.Context()))
}

func (api *API) handleValue(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.service == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	path := r.URL.Query().Get("path")
	if strings.TrimSpace(path) == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: localization.ErrPathRequired.Error()})
		return
	}
	value, err := api.service.ScriptOrCSV(r.Context(), path)
	if err != nil {
		api.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, value)
}

func (api *API) handleTranslate(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.service == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	var payload translatePayload
	if err := decodeJSON(r, &payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: err.Error()})
		return
	}
	path, ok := payload.Path.(string)
	if !ok || strings.TrimSpace(path) == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: localization.ErrPathRequired.Error()})
		return
	}

	err := api.service.SubmitTranslation(r.Context(), localization.Submission{
		Path:  path,
		Lang:  payload.Lang,
		Key:   payload.Key,
		Value: payload.Value,
	})
	if err != nil {
		api.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, struct{}{})
}
