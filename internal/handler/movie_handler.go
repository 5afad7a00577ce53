// internal/handler/movie_handler.go
package handler

import (
	"net/http"
	"strconv"

	"reelcritic/internal/models"
	"reelcritic/internal/service"
)

type MovieHandler struct {
	svc *service.MovieService
}

func NewMovieHandler(s *service.MovieService) *MovieHandler { return &MovieHandler{svc: s} }

// @Summary Buscar / listar películas (paginado)
// @Tags movies
// @Produce json
// @Param search query string false "búsqueda de texto (título/overview/géneros/director)"
// @Param genre query string false "filtrar por género"
// @Param year query int false "año exacto"
// @Param sortBy query string false "createdAt|title|releaseYear|averageRating|totalReviews"
// @Param sortOrder query string false "asc|desc"
// @Param page query int false "página (default 1)"
// @Param limit query int false "límite (default 12)"
// @Success 200 {array} models.Movie
// @Router /api/movies [get]
func (h *MovieHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	year, _ := strconv.Atoi(q.Get("year"))
	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))

	movies, pag, err := h.svc.List(r.Context(), service.MovieSearchOptions{
		Query: q.Get("search"),
		Genre: q.Get("genre"),
		Year:  year,
		ListOptions: service.ListOptions{
			Page:      page,
			Limit:     limit,
			SortBy:    q.Get("sortBy"),
			SortOrder: q.Get("sortOrder"),
		},
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writePage(w, movies, pag)
}

// @Summary Get movie
// @Tags movies
// @Produce json
// @Param id path string true "movie id (hex)"
// @Success 200 {object} models.Movie
// @Failure 404 {object} map[string]any
// @Router /api/movies/{id} [get]
func (h *MovieHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseObjectID(w, r, "id")
	if !ok {
		return
	}

	m, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, m)
}

// @Summary Películas destacadas (máx 6, por rating)
// @Tags movies
// @Produce json
// @Success 200 {array} models.Movie
// @Router /api/movies/featured [get]
func (h *MovieHandler) Featured(w http.ResponseWriter, r *http.Request) {
	movies, err := h.svc.Featured(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, movies)
}

// @Summary Películas en tendencia (máx 6, por fecha de alta)
// @Tags movies
// @Produce json
// @Success 200 {array} models.Movie
// @Router /api/movies/trending [get]
func (h *MovieHandler) Trending(w http.ResponseWriter, r *http.Request) {
	movies, err := h.svc.Trending(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, movies)
}

// @Summary Crear nueva película (solo admin)
// @Tags movies
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body models.MovieCreateRequest true "datos de la película"
// @Success 201 {object} models.Movie
// @Failure 400 {object} map[string]any
// @Router /api/movies [post]
func (h *MovieHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.MovieCreateRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	m, err := h.svc.Create(r.Context(), &req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusCreated, m)
}
