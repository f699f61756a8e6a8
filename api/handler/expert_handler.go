package handler

import (
	"errors"
	"net/http"

	"pacho/internal/dto"
	"pacho/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type ExpertHandler struct {
	Service  *service.ExpertService
	Validate *validator.Validate
}

func NewExpertHandler(svc *service.ExpertService, validate *validator.Validate) *ExpertHandler {
	return &ExpertHandler{Service: svc, Validate: validate}
}

// Register files a new qualification request: a user in pending status
// plus an expert profile in pendiente state.
func (h *ExpertHandler) Register(c echo.Context) error {
	var req dto.RegisterExpertRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.validate(req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	input := service.RegisterExpertInput{
		Email:           req.Email,
		Password:        req.Password,
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Phone:           req.Phone,
		ExperienceType:  req.ExperienceType,
		ExperienceYears: req.ExperienceYears,
	}
	expert, err := h.Service.Register(c.Request().Context(), input)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, dto.ExpertResponseFromEntity(expert))
}

func (h *ExpertHandler) ListPending(c echo.Context) error {
	experts, err := h.Service.ListPending(c.Request().Context())
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.ExpertResponsesFromEntities(experts))
}

func (h *ExpertHandler) ListAll(c echo.Context) error {
	experts, err := h.Service.ListAll(c.Request().Context())
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.ExpertResponsesFromEntities(experts))
}

func (h *ExpertHandler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	expert, err := h.Service.Get(c.Request().Context(), id)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.ExpertResponseFromEntity(expert))
}

func (h *ExpertHandler) EnableTest(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.Service.EnableTest(c.Request().Context(), id); err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "test enabled"})
}

func (h *ExpertHandler) DeleteRequest(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.Service.DeleteRequest(c.Request().Context(), id); err != nil {
		return writeServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *ExpertHandler) ToggleStatus(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	status, err := h.Service.ToggleStatus(c.Request().Context(), id)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]int{"status": int(status)})
}

func (h *ExpertHandler) Answers(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	answers, err := h.Service.Answers(c.Request().Context(), id)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.RecordedAnswerResponsesFromEntities(answers))
}

func (h *ExpertHandler) validate(payload any) error {
	if h.Validate == nil {
		return nil
	}
	return h.Validate.Struct(payload)
}

func parseID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, errors.New("invalid id")
	}
	return id, nil
}
