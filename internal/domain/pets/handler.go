package pets

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"pets-api/internal/platform/logger"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

const basePath = "/api/v1/pets"

func RegisterRoutes(r chi.Router, svc *Service, log logger.Logger) {
	r.Route(basePath, func(pr chi.Router) {
		pr.Post("/", createPetHandler(svc, log))
		pr.Get("/", listPetsHandler(svc, log))

		// "/species" antes que "/{petID}" para que no se interprete como id.
		pr.Get("/species", countSpeciesHandler(svc, log))

		pr.Get("/{petID}", getPetHandler(svc, log))
		pr.Put("/{petID}", updatePetHandler(svc, log))
		pr.Delete("/{petID}", deletePetHandler(svc, log))
	})
}

// ErrorResponse es el body de todos los errores (4xx/5xx).
type ErrorResponse struct {
	Timestamp   time.Time         `json:"timestamp"`
	Status      int               `json:"status"`
	Error       string            `json:"error"`
	Message     string            `json:"message"`
	FieldErrors map[string]string `json:"fieldErrors,omitempty"`
}

// createPetHandler godoc
// @Summary     Create a new pet
// @Tags        pets
// @Accept      json
// @Produce     json
// @Param       pet body     PetRequest true "Pet"
// @Success     201 {object} PetResponse
// @Failure     400 {object} ErrorResponse
// @Router      /api/v1/pets [post]
func createPetHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, ok := decodePetRequest(w, r)
		if !ok {
			return
		}

		created, err := svc.Create(r.Context(), req)
		if err != nil {
			writeServiceError(w, r, log, err)
			return
		}

		if created.ID != nil {
			w.Header().Set("Location", fmt.Sprintf("%s/%d", basePath, *created.ID))
		}
		writeJSON(w, http.StatusCreated, created)
	}
}

// listPetsHandler godoc
// @Summary     Get all pets
// @Tags        pets
// @Produce     json
// @Success     200 {array} PetResponse
// @Router      /api/v1/pets [get]
func listPetsHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListAll(r.Context())
		if err != nil {
			writeServiceError(w, r, log, err)
			return
		}
		writeJSON(w, http.StatusOK, items)
	}
}

// getPetHandler godoc
// @Summary     Get pet by ID
// @Tags        pets
// @Produce     json
// @Param       id  path     int true "Pet ID"
// @Success     200 {object} PetResponse
// @Failure     404 {object} ErrorResponse
// @Router      /api/v1/pets/{id} [get]
func getPetHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := petIDParam(w, r)
		if !ok {
			return
		}

		p, err := svc.GetByID(r.Context(), id)
		if err != nil {
			writeServiceError(w, r, log, err)
			return
		}
		writeJSON(w, http.StatusOK, p)
	}
}

// updatePetHandler godoc
// @Summary     Update a pet (full replace)
// @Tags        pets
// @Accept      json
// @Produce     json
// @Param       id  path     int        true "Pet ID"
// @Param       pet body     PetRequest true "Pet"
// @Success     200 {object} PetResponse
// @Failure     400 {object} ErrorResponse
// @Failure     404 {object} ErrorResponse
// @Router      /api/v1/pets/{id} [put]
func updatePetHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := petIDParam(w, r)
		if !ok {
			return
		}
		req, ok := decodePetRequest(w, r)
		if !ok {
			return
		}

		updated, err := svc.Update(r.Context(), id, req)
		if err != nil {
			writeServiceError(w, r, log, err)
			return
		}
		writeJSON(w, http.StatusOK, updated)
	}
}

// deletePetHandler godoc
// @Summary     Delete a pet
// @Tags        pets
// @Param       id  path int true "Pet ID"
// @Success     204
// @Failure     404 {object} ErrorResponse
// @Router      /api/v1/pets/{id} [delete]
func deletePetHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := petIDParam(w, r)
		if !ok {
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			writeServiceError(w, r, log, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// countSpeciesHandler godoc
// @Summary     Get number of different species
// @Tags        pets
// @Produce     json
// @Success     200 {integer} int
// @Router      /api/v1/pets/species [get]
func countSpeciesHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		n, err := svc.CountDistinctSpecies(r.Context())
		if err != nil {
			writeServiceError(w, r, log, err)
			return
		}
		writeJSON(w, http.StatusOK, n)
	}
}

func petIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "petID")
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid pet id: "+raw, nil)
		return 0, false
	}
	return id, true
}

// decodePetRequest decodifica y valida. La validación vive acá, el Service asume input válido.
func decodePetRequest(w http.ResponseWriter, r *http.Request) (PetRequest, bool) {
	var req PetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json", nil)
		return PetRequest{}, false
	}

	if fieldErrors := validatePetRequest(req); len(fieldErrors) > 0 {
		writeError(w, http.StatusBadRequest, "validation failed", fieldErrors)
		return PetRequest{}, false
	}
	return req, true
}

func validatePetRequest(req PetRequest) map[string]string {
	errs := map[string]string{}
	if strings.TrimSpace(req.Name) == "" {
		errs["name"] = "Pet name is required"
	}
	if strings.TrimSpace(req.Species) == "" {
		errs["species"] = "Pet species is required"
	}
	if req.Age != nil && *req.Age < 0 {
		errs["age"] = "Pet age must be greater than or equal to 0"
	}
	return errs
}

func writeServiceError(w http.ResponseWriter, r *http.Request, log logger.Logger, err error) {
	if errors.Is(err, ErrNotFound) {
		writeError(w, http.StatusNotFound, err.Error(), nil)
		return
	}

	// Fallas del store: se loguean con request id y al cliente le llega un 500 genérico.
	log.Error("request failed", map[string]any{
		"request_id": chimw.GetReqID(r.Context()),
		"method":     r.Method,
		"path":       r.URL.Path,
		"error":      err,
	})
	writeError(w, http.StatusInternalServerError, "internal error", nil)
}

func writeError(w http.ResponseWriter, status int, msg string, fieldErrors map[string]string) {
	writeJSON(w, status, ErrorResponse{
		Timestamp:   time.Now().UTC(),
		Status:      status,
		Error:       http.StatusText(status),
		Message:     msg,
		FieldErrors: fieldErrors,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
