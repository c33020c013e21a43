package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/khidma-app/khidma-admin/internal/errors"
	"github.com/khidma-app/khidma-admin/internal/logger"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// loadAndValidateRequestBody decodes the JSON body and checks validate
// tags. Failures are reported as 400s without leaking decoder internals.
func loadAndValidateRequestBody(r *http.Request, body any) error {
	if err := json.NewDecoder(r.Body).Decode(body); err != nil {
		logger.Log.Debug("invalid request body", "error", err)
		return &errors.ErrorWithStatusCode{Message: "Body is invalid json", StatusCode: http.StatusBadRequest}
	}
	if err := validate.Struct(body); err != nil {
		logger.Log.Debug("request body failed validation", "error", err)
		return &errors.ErrorWithStatusCode{Message: "Required fields missing", StatusCode: http.StatusBadRequest}
	}
	return nil
}

func writeErrorAndStatusCode(w http.ResponseWriter, err error) {
	if e, ok := err.(*errors.ErrorWithStatusCode); ok {
		http.Error(w, e.Message, e.StatusCode)
		return
	}
	logger.Log.Error("request failed", "error", err)
	http.Error(w, "Internal server error", http.StatusInternalServerError)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Log.Error("failed to encode response", "error", err)
	}
}

// listResponse is the uniform paging envelope for table views.
type listResponse struct {
	Data  interface{} `json:"data"`
	Total int         `json:"total"`
}

// pageParams reads page/limit/search from the query string. Absent or
// malformed values come back as zero and are normalized downstream.
func pageParams(r *http.Request) (page, limit int, search string) {
	page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	search = r.URL.Query().Get("search")
	return
}
