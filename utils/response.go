package utils

import (
	"encoding/json"
	"net/http"
)

type M map[string]interface{}

// Sends a JSON response
func RespondWithJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// RespondWithError writes the uniform failure envelope.
func RespondWithError(w http.ResponseWriter, code int, msg string) {
	RespondWithJSON(w, code, M{"success": false, "error": msg})
}

// SendResponse writes the uniform success envelope.
func SendResponse(w http.ResponseWriter, status int, data any) {
	RespondWithJSON(w, status, M{"success": true, "data": data})
}

// SendPage writes a success envelope with count and pagination links.
func SendPage(w http.ResponseWriter, status int, data any, count int, page, limit int, total int64) {
	pagination := M{}
	if int64(page*limit) < total {
		pagination["next"] = M{"page": page + 1, "limit": limit}
	}
	if page > 1 {
		pagination["prev"] = M{"page": page - 1, "limit": limit}
	}
	RespondWithJSON(w, status, M{
		"success":    true,
		"count":      count,
		"pagination": pagination,
		"data":       data,
	})
}
