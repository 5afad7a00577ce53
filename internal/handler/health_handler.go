package handler

import "net/http"

// @Summary Healthcheck
// @Tags health
// @Success 200
// @Router /api/health [get]
func Health(w http.ResponseWriter, r *http.Request) {
	writeMessage(w, http.StatusOK, "Server is running!")
}
