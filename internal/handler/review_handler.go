package handler

import (
	"net/http"
	"strconv"
	"time"

	"reelcritic/internal/models"
	"reelcritic/internal/service"

	"github.com/gorilla/websocket"
)

type ReviewHandler struct {
	svc *service.ReviewService
}

func NewReviewHandler(s *service.ReviewService) *ReviewHandler { return &ReviewHandler{svc: s} }

func listOptionsFromQuery(r *http.Request) service.ListOptions {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))
	return service.ListOptions{
		Page:      page,
		Limit:     limit,
		SortBy:    q.Get("sortBy"),
		SortOrder: q.Get("sortOrder"),
	}
}

// @Summary Reviews de una película (paginado, solo activas)
// @Tags reviews
// @Produce json
// @Param movieId path string true "movie id (hex)"
// @Param page query int false "página"
// @Param limit query int false "límite (default 10, máx 50)"
// @Param sortBy query string false "createdAt|rating|helpful"
// @Param sortOrder query string false "asc|desc"
// @Success 200 {array} models.Review
// @Router /api/reviews/movie/{movieId} [get]
func (h *ReviewHandler) ListForMovie(w http.ResponseWriter, r *http.Request) {
	movieID, ok := parseObjectID(w, r, "movieId")
	if !ok {
		return
	}

	revs, pag, err := h.svc.ListForMovie(r.Context(), movieID, listOptionsFromQuery(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writePage(w, revs, pag)
}

// @Summary Crear review
// @Tags reviews
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param movieId path string true "movie id (hex)"
// @Param body body models.ReviewCreateRequest true "review"
// @Success 201 {object} models.Review
// @Failure 404 {object} map[string]any
// @Failure 409 {object} map[string]any
// @Router /api/reviews/movie/{movieId} [post]
func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	movieID, ok := parseObjectID(w, r, "movieId")
	if !ok {
		return
	}

	var req models.ReviewCreateRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	rev, err := h.svc.Create(r.Context(), UserIDFromContext(r.Context()), movieID, &req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusCreated, rev)
}

// @Summary Obtener una review
// @Tags reviews
// @Produce json
// @Param id path string true "review id (hex)"
// @Success 200 {object} models.Review
// @Failure 404 {object} map[string]any
// @Router /api/reviews/{id} [get]
func (h *ReviewHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseObjectID(w, r, "id")
	if !ok {
		return
	}

	rev, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, rev)
}

// @Summary Actualizar review (solo el dueño)
// @Tags reviews
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "review id (hex)"
// @Param body body models.ReviewUpdateRequest true "campos a actualizar"
// @Success 200 {object} models.Review
// @Failure 403 {object} map[string]any
// @Failure 404 {object} map[string]any
// @Router /api/reviews/{id} [put]
func (h *ReviewHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseObjectID(w, r, "id")
	if !ok {
		return
	}

	var req models.ReviewUpdateRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	rev, err := h.svc.Update(r.Context(), id, UserIDFromContext(r.Context()), &req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, rev)
}

// @Summary Borrar review (dueño o admin)
// @Tags reviews
// @Security BearerAuth
// @Produce json
// @Param id path string true "review id (hex)"
// @Success 200 {object} map[string]any
// @Failure 403 {object} map[string]any
// @Failure 404 {object} map[string]any
// @Router /api/reviews/{id} [delete]
func (h *ReviewHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseObjectID(w, r, "id")
	if !ok {
		return
	}

	ctx := r.Context()
	if err := h.svc.Delete(ctx, id, UserIDFromContext(ctx), IsAdminFromContext(ctx)); err != nil {
		writeError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "Review deleted successfully")
}

// @Summary Votar review como útil / no útil
// @Tags reviews
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "review id (hex)"
// @Param body body models.VoteRequest true "helpful true/false"
// @Success 200 {object} models.VoteCounts
// @Failure 404 {object} map[string]any
// @Router /api/reviews/{id}/helpful [post]
func (h *ReviewHandler) Vote(w http.ResponseWriter, r *http.Request) {
	id, ok := parseObjectID(w, r, "id")
	if !ok {
		return
	}

	var req models.VoteRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	counts, err := h.svc.Vote(r.Context(), id, UserIDFromContext(r.Context()), *req.Helpful)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, counts)
}

// @Summary Reviews de un usuario (paginado, solo activas)
// @Tags reviews
// @Produce json
// @Param id path string true "user id (hex)"
// @Success 200 {array} models.Review
// @Router /api/users/{id}/reviews [get]
func (h *ReviewHandler) ListForUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseObjectID(w, r, "id")
	if !ok {
		return
	}

	revs, pag, err := h.svc.ListForUser(r.Context(), userID, listOptionsFromQuery(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writePage(w, revs, pag)
}

// upgrader global (no afecta a swagger)
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// @Summary Feed en vivo de reviews de una película (WebSocket)
// @Tags reviews
// @Produce json
// @Param id path string true "movie id (hex)"
// @Success 200 {object} map[string]interface{}
// @Router /api/movies/{id}/reviews/live [get]
func (h *ReviewHandler) LiveFeed(w http.ResponseWriter, r *http.Request) {
	movieID, ok := parseObjectID(w, r, "id")
	if !ok {
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		writeFail(w, http.StatusBadRequest, "could not open websocket")
		return
	}
	defer conn.Close()

	send := func(kind string) bool {
		revs, pag, err := h.svc.ListForMovie(r.Context(), movieID, service.ListOptions{})
		if err != nil {
			_ = conn.WriteJSON(map[string]any{"type": "error", "error": "could not load reviews"})
			return false
		}
		return conn.WriteJSON(map[string]any{
			"type":       kind,
			"movieId":    movieID.Hex(),
			"reviews":    revs,
			"pagination": pag,
			"sentAt":     time.Now(),
		}) == nil
	}

	// Snapshot inicial y después un push periódico con la primera
	// página; el loop corta cuando el cliente se va (falla el write)
	// o el request se cancela.
	if !send("snapshot") {
		return
	}

	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-ticker.C:
			if !send("update") {
				return
			}
		}
	}
}
