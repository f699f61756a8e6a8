package handler

import (
	"net/http"

	"pacho/internal/dto"
	"pacho/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type DiseaseHandler struct {
	Service  *service.DiseaseService
	Validate *validator.Validate
}

func NewDiseaseHandler(svc *service.DiseaseService, validate *validator.Validate) *DiseaseHandler {
	return &DiseaseHandler{Service: svc, Validate: validate}
}

func (h *DiseaseHandler) List(c echo.Context) error {
	diseases, err := h.Service.List(c.Request().Context())
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.DiseaseResponsesFromEntities(diseases))
}

func (h *DiseaseHandler) ListActive(c echo.Context) error {
	diseases, err := h.Service.ListActive(c.Request().Context())
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.DiseaseResponsesFromEntities(diseases))
}

func (h *DiseaseHandler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	disease, err := h.Service.Get(c.Request().Context(), id)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.DiseaseResponseFromEntity(disease))
}

func (h *DiseaseHandler) Create(c echo.Context) error {
	req, err := h.decodeDisease(c)
	if err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	disease, err := h.Service.Create(c.Request().Context(), diseaseInputFromRequest(req))
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, dto.DiseaseResponseFromEntity(disease))
}

func (h *DiseaseHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	req, err := h.decodeDisease(c)
	if err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	disease, err := h.Service.Update(c.Request().Context(), id, diseaseInputFromRequest(req))
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.DiseaseResponseFromEntity(disease))
}

func (h *DiseaseHandler) ToggleActive(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	disease, err := h.Service.ToggleActive(c.Request().Context(), id)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.DiseaseResponseFromEntity(disease))
}

func (h *DiseaseHandler) decodeDisease(c echo.Context) (dto.DiseaseRequest, error) {
	var req dto.DiseaseRequest
	if err := decodeJSON(c, &req); err != nil {
		return req, err
	}
	if h.Validate != nil {
		if err := h.Validate.Struct(req); err != nil {
			return req, err
		}
	}
	return req, nil
}

func diseaseInputFromRequest(req dto.DiseaseRequest) service.DiseaseInput {
	return service.DiseaseInput{
		ScientificName: req.ScientificName,
		CommonName:     req.CommonName,
		Description:    req.Description,
		Symptoms:       req.Symptoms,
		Conditions:     req.Conditions,
		ReferenceImage: req.ReferenceImage,
	}
}
