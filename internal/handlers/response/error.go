package response

import (
	"encoding/json"
	"net/http"
)

type ErrorMessage struct {
	Success    bool   `json:"success"`
	Message    string `json:"error"`
	StatusCode int    `json:"-"`
}

func WriteError(w http.ResponseWriter, err ErrorMessage) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(err.StatusCode)
	_ = json.NewEncoder(w).Encode(err)
}

// Fail writes {"success": false, "error": message} with status code
func Fail(w http.ResponseWriter, code int, message string) {
	WriteError(w, ErrorMessage{
		Message:    message,
		StatusCode: code,
	})
}

func WriteSuccess(w http.ResponseWriter, data interface{}) {
	WriteJSON(w, http.StatusOK, data)
}

func WriteJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}
