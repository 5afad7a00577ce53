package handler

import (
	"net/http"

	"reelcritic/internal/models"
	"reelcritic/internal/service"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserHandler struct {
	svc *service.UserService
}

func NewUserHandler(s *service.UserService) *UserHandler { return &UserHandler{svc: s} }

// requireSelf corta con 403 cuando el id del path no es el usuario del
// token. Las operaciones de perfil y watchlist son solo del propio
// usuario; la identidad viaja explícita, nunca estado ambiente.
func requireSelf(w http.ResponseWriter, r *http.Request, pathID primitive.ObjectID) bool {
	if UserIDFromContext(r.Context()) != pathID {
		writeFail(w, http.StatusForbidden, "not authorized for this resource")
		return false
	}
	return true
}

// @Summary Perfil público de un usuario
// @Tags users
// @Produce json
// @Param id path string true "user id (hex)"
// @Success 200 {object} models.UserProfile
// @Failure 404 {object} map[string]any
// @Router /api/users/{id} [get]
func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	id, ok := parseObjectID(w, r, "id")
	if !ok {
		return
	}

	profile, err := h.svc.GetProfile(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, profile)
}

// @Summary Actualizar perfil (solo el propio usuario)
// @Tags users
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "user id (hex)"
// @Param body body models.UserUpdateRequest true "campos a actualizar"
// @Success 200 {object} models.User
// @Failure 403 {object} map[string]any
// @Failure 409 {object} map[string]any
// @Router /api/users/{id} [put]
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	id, ok := parseObjectID(w, r, "id")
	if !ok {
		return
	}
	if !requireSelf(w, r, id) {
		return
	}

	var req models.UserUpdateRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	u, err := h.svc.UpdateProfile(r.Context(), id, &req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, u)
}
