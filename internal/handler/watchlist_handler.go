package handler

import (
	"net/http"
	"strconv"

	"reelcritic/internal/models"
	"reelcritic/internal/service"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type WatchlistHandler struct {
	svc *service.WatchlistService
}

func NewWatchlistHandler(s *service.WatchlistService) *WatchlistHandler {
	return &WatchlistHandler{svc: s}
}

// @Summary Watchlist del usuario (paginado, filtro por categoría)
// @Tags watchlist
// @Security BearerAuth
// @Produce json
// @Param id path string true "user id (hex)"
// @Param category query string false "want-to-watch|watching|watched|dropped"
// @Param page query int false "página"
// @Param limit query int false "límite (default 10)"
// @Success 200 {array} models.WatchlistEntry
// @Router /api/users/{id}/watchlist [get]
func (h *WatchlistHandler) List(w http.ResponseWriter, r *http.Request) {
	id, ok := parseObjectID(w, r, "id")
	if !ok {
		return
	}
	if !requireSelf(w, r, id) {
		return
	}

	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))

	entries, pag, err := h.svc.List(r.Context(), id, q.Get("category"), page, limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writePage(w, entries, pag)
}

// @Summary Agregar película a la watchlist
// @Tags watchlist
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "user id (hex)"
// @Param body body models.WatchlistAddRequest true "entrada"
// @Success 201 {object} models.WatchlistEntry
// @Failure 409 {object} map[string]any
// @Router /api/users/{id}/watchlist [post]
func (h *WatchlistHandler) Add(w http.ResponseWriter, r *http.Request) {
	id, ok := parseObjectID(w, r, "id")
	if !ok {
		return
	}
	if !requireSelf(w, r, id) {
		return
	}

	var req models.WatchlistAddRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	movieID, err := primitive.ObjectIDFromHex(req.MovieID)
	if err != nil {
		writeFail(w, http.StatusBadRequest, "invalid id format")
		return
	}

	entry, err := h.svc.Add(r.Context(), id, movieID, &req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusCreated, entry)
}

// @Summary Actualizar entrada de watchlist
// @Tags watchlist
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "user id (hex)"
// @Param movieId path string true "movie id (hex)"
// @Param body body models.WatchlistUpdateRequest true "campos a actualizar"
// @Success 200 {object} models.WatchlistEntry
// @Failure 404 {object} map[string]any
// @Router /api/users/{id}/watchlist/{movieId} [put]
func (h *WatchlistHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseObjectID(w, r, "id")
	if !ok {
		return
	}
	if !requireSelf(w, r, id) {
		return
	}
	movieID, ok := parseObjectID(w, r, "movieId")
	if !ok {
		return
	}

	var req models.WatchlistUpdateRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	entry, err := h.svc.Update(r.Context(), id, movieID, &req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, entry)
}

// @Summary Quitar película de la watchlist
// @Tags watchlist
// @Security BearerAuth
// @Produce json
// @Param id path string true "user id (hex)"
// @Param movieId path string true "movie id (hex)"
// @Success 200 {object} map[string]any
// @Failure 404 {object} map[string]any
// @Router /api/users/{id}/watchlist/{movieId} [delete]
func (h *WatchlistHandler) Remove(w http.ResponseWriter, r *http.Request) {
	id, ok := parseObjectID(w, r, "id")
	if !ok {
		return
	}
	if !requireSelf(w, r, id) {
		return
	}
	movieID, ok := parseObjectID(w, r, "movieId")
	if !ok {
		return
	}

	if err := h.svc.Remove(r.Context(), id, movieID); err != nil {
		writeError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "Movie removed from watchlist")
}
