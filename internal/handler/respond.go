package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"reelcritic/internal/models"
	"reelcritic/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var validate = validator.New()

// envelope es la respuesta estándar de toda la API: flag de éxito,
// payload, y en fallo un mensaje más detalles de validación por campo.
type envelope struct {
	Success    bool               `json:"success"`
	Data       any                `json:"data,omitempty"`
	Message    string             `json:"message,omitempty"`
	Errors     map[string]string  `json:"errors,omitempty"`
	Pagination *models.Pagination `json:"pagination,omitempty"`
}

func writeEnvelope(w http.ResponseWriter, status int, env envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(env)
}

func writeData(w http.ResponseWriter, status int, data any) {
	writeEnvelope(w, status, envelope{Success: true, Data: data})
}

func writePage(w http.ResponseWriter, data any, p models.Pagination) {
	writeEnvelope(w, http.StatusOK, envelope{Success: true, Data: data, Pagination: &p})
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeEnvelope(w, status, envelope{Success: true, Message: msg})
}

func writeFail(w http.ResponseWriter, status int, msg string) {
	writeEnvelope(w, status, envelope{Success: false, Message: msg})
}

// writeError mapea la taxonomía de dominio a status HTTP. Lo que no
// esté en la taxonomía se loguea y sale como error interno genérico,
// sin filtrar detalles de infraestructura.
func writeError(w http.ResponseWriter, err error) {
	var vErr *service.ValidationError
	if errors.As(err, &vErr) {
		writeEnvelope(w, http.StatusBadRequest, envelope{
			Success: false,
			Message: "Validation failed",
			Errors:  vErr.Fields,
		})
		return
	}

	switch {
	case errors.Is(err, service.ErrMovieNotFound),
		errors.Is(err, service.ErrReviewNotFound),
		errors.Is(err, service.ErrEntryNotFound),
		errors.Is(err, service.ErrUserNotFound):
		writeFail(w, http.StatusNotFound, err.Error())

	case errors.Is(err, service.ErrNotOwner):
		writeFail(w, http.StatusForbidden, err.Error())

	case errors.Is(err, service.ErrDuplicateReview),
		errors.Is(err, service.ErrDuplicateEntry),
		errors.Is(err, service.ErrUsernameTaken),
		errors.Is(err, service.ErrEmailTaken):
		writeFail(w, http.StatusConflict, err.Error())

	case errors.Is(err, service.ErrInvalidCredentials):
		writeFail(w, http.StatusUnauthorized, err.Error())

	default:
		log.Printf("[http] error interno: %v", err)
		writeFail(w, http.StatusInternalServerError, "internal error")
	}
}

// parseObjectID valida el formato del identificador (hex de 24) antes
// de tocar el store. Un id malformado es 400, nunca 404.
func parseObjectID(w http.ResponseWriter, r *http.Request, param string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, param))
	if err != nil {
		writeFail(w, http.StatusBadRequest, "invalid id format")
		return primitive.NilObjectID, false
	}
	return id, true
}

// decodeAndValidate decodifica el body y corre el validador de structs.
// Responde el 400 por su cuenta; el handler solo corta con el bool.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeFail(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	if err := validate.Struct(dst); err != nil {
		var vErrs validator.ValidationErrors
		if errors.As(err, &vErrs) {
			fields := make(map[string]string, len(vErrs))
			for _, fe := range vErrs {
				fields[fe.Field()] = "failed validation on '" + fe.Tag() + "'"
			}
			writeEnvelope(w, http.StatusBadRequest, envelope{
				Success: false,
				Message: "Validation failed",
				Errors:  fields,
			})
			return false
		}
		writeFail(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}
