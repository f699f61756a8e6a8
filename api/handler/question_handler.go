package handler

import (
	"net/http"
	"strconv"

	"pacho/internal/dto"
	"pacho/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type QuestionHandler struct {
	Service  *service.QuestionService
	Validate *validator.Validate
}

func NewQuestionHandler(svc *service.QuestionService, validate *validator.Validate) *QuestionHandler {
	return &QuestionHandler{Service: svc, Validate: validate}
}

func (h *QuestionHandler) List(c echo.Context) error {
	questions, err := h.Service.List(c.Request().Context())
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.QuestionResponsesFromEntities(questions))
}

func (h *QuestionHandler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	question, err := h.Service.Get(c.Request().Context(), id)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.QuestionResponseFromEntity(question))
}

func (h *QuestionHandler) Create(c echo.Context) error {
	req, err := h.decodeQuestion(c)
	if err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	question, err := h.Service.Create(c.Request().Context(), questionInputFromRequest(req))
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, dto.QuestionResponseFromEntity(question))
}

func (h *QuestionHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	req, err := h.decodeQuestion(c)
	if err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.Service.Update(c.Request().Context(), id, questionInputFromRequest(req)); err != nil {
		return writeServiceError(c, err)
	}
	question, err := h.Service.Get(c.Request().Context(), id)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.QuestionResponseFromEntity(question))
}

func (h *QuestionHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.Service.Delete(c.Request().Context(), id); err != nil {
		return writeServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *QuestionHandler) ChangePosition(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	var req dto.ChangePositionRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.validatePayload(req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.Service.ChangePosition(c.Request().Context(), id, req.Position); err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"position": req.Position})
}

func (h *QuestionHandler) Duplicate(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	question, err := h.Service.Duplicate(c.Request().Context(), id)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, dto.QuestionResponseFromEntity(question))
}

func (h *QuestionHandler) Statistics(c echo.Context) error {
	stats, err := h.Service.Statistics(c.Request().Context())
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, stats)
}

func (h *QuestionHandler) Search(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	summaries, err := h.Service.Search(c.Request().Context(), c.QueryParam("q"), limit)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, summaries)
}

func (h *QuestionHandler) decodeQuestion(c echo.Context) (dto.QuestionRequest, error) {
	var req dto.QuestionRequest
	if err := decodeJSON(c, &req); err != nil {
		return req, err
	}
	if err := h.validatePayload(req); err != nil {
		return req, err
	}
	return req, nil
}

func (h *QuestionHandler) validatePayload(payload any) error {
	if h.Validate == nil {
		return nil
	}
	return h.Validate.Struct(payload)
}

func questionInputFromRequest(req dto.QuestionRequest) service.QuestionInput {
	input := service.QuestionInput{
		Text:     req.Text,
		Position: req.Position,
	}
	for _, a := range req.Answers {
		answer := service.AnswerInput{Text: a.Text, IsCorrect: a.IsCorrect}
		if a.ID != "" {
			if id, err := uuid.Parse(a.ID); err == nil {
				answer.ID = id
			}
		}
		input.Answers = append(input.Answers, answer)
	}
	return input
}
