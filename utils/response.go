package utils

import (
	"encoding/json"
	"net/http"
)

// Sends a JSON response
func RespondWithJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// RespondWithError wraps a failure in the {success:false, message} envelope.
func RespondWithError(w http.ResponseWriter, code int, msg string) {
	RespondWithJSON(w, code, M{"success": false, "message": msg})
}

// RespondWithData wraps a payload in the {success:true, data} envelope.
func RespondWithData(w http.ResponseWriter, code int, data interface{}) {
	RespondWithJSON(w, code, M{"success": true, "data": data})
}

// RespondWithList adds the count field used by list endpoints.
func RespondWithList[T any](w http.ResponseWriter, code int, items []T) {
	RespondWithJSON(w, code, M{"success": true, "count": len(items), "data": items})
}

// RespondWithMessage is for mutations that return no body.
func RespondWithMessage(w http.ResponseWriter, code int, msg string) {
	RespondWithJSON(w, code, M{"success": true, "message": msg})
}

type M map[string]interface{}
