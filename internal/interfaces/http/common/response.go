package common

import (
	"encoding/json"
	"log"
	"net/http"
)

// WriteJSON renders payload as the JSON response body. Encode failures occur
// after the status line has been written, so they can only be logged.
func WriteJSON(logger *log.Logger, w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil && logger != nil {
		logger.Printf("レスポンスの JSON エンコードに失敗: %v", err)
	}
}
