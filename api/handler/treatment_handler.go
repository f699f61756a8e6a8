package handler

import (
	"errors"
	"net/http"

	"pacho/api/middleware"
	"pacho/internal/dto"
	"pacho/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type TreatmentHandler struct {
	Service  *service.TreatmentService
	Diseases *service.DiseaseService
	Validate *validator.Validate
}

func NewTreatmentHandler(svc *service.TreatmentService, diseases *service.DiseaseService, validate *validator.Validate) *TreatmentHandler {
	return &TreatmentHandler{Service: svc, Diseases: diseases, Validate: validate}
}

// ListMine returns the caller's own treatments alongside the active
// disease catalogue and a small stats block for the workspace header.
func (h *TreatmentHandler) ListMine(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return writeError(c, http.StatusUnauthorized, errors.New("unauthorized"))
	}

	treatments, stats, err := h.Service.ListMine(c.Request().Context(), userID)
	if err != nil {
		return writeServiceError(c, err)
	}
	diseases, err := h.Diseases.ListActive(c.Request().Context())
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"treatments": dto.TreatmentResponsesFromEntities(treatments),
		"diseases":   dto.DiseaseResponsesFromEntities(diseases),
		"stats":      stats,
	})
}

func (h *TreatmentHandler) Create(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return writeError(c, http.StatusUnauthorized, errors.New("unauthorized"))
	}
	input, err := h.decodeTreatment(c)
	if err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}

	treatment, err := h.Service.Create(c.Request().Context(), userID, input)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, dto.TreatmentResponseFromEntity(treatment))
}

func (h *TreatmentHandler) Update(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return writeError(c, http.StatusUnauthorized, errors.New("unauthorized"))
	}
	id, err := parseID(c)
	if err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	input, err := h.decodeTreatment(c)
	if err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}

	treatment, err := h.Service.Update(c.Request().Context(), userID, id, input)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.TreatmentResponseFromEntity(treatment))
}

func (h *TreatmentHandler) Delete(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return writeError(c, http.StatusUnauthorized, errors.New("unauthorized"))
	}
	id, err := parseID(c)
	if err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.Service.Delete(c.Request().Context(), userID, id); err != nil {
		return writeServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *TreatmentHandler) decodeTreatment(c echo.Context) (service.TreatmentInput, error) {
	var req dto.TreatmentRequest
	if err := decodeJSON(c, &req); err != nil {
		return service.TreatmentInput{}, err
	}
	if h.Validate != nil {
		if err := h.Validate.Struct(req); err != nil {
			return service.TreatmentInput{}, err
		}
	}

	diseaseID, err := uuid.Parse(req.DiseaseID)
	if err != nil {
		return service.TreatmentInput{}, errors.New("invalid disease id")
	}
	return service.TreatmentInput{
		DiseaseID:           diseaseID,
		TreatmentType:       req.TreatmentType,
		Description:         req.Description,
		RecommendedProducts: req.RecommendedProducts,
		Frequency:           req.Frequency,
		Precautions:         req.Precautions,
		WeatherConditions:   req.WeatherConditions,
		ImprovementDays:     req.ImprovementDays,
		Environment:         req.Environment,
	}, nil
}
