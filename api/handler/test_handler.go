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

type TestHandler struct {
	Service  *service.TestService
	Validate *validator.Validate
}

func NewTestHandler(svc *service.TestService, validate *validator.Validate) *TestHandler {
	return &TestHandler{Service: svc, Validate: validate}
}

func (h *TestHandler) TakeTest(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return writeError(c, http.StatusUnauthorized, errors.New("unauthorized"))
	}
	questions, err := h.Service.LoadEligibleQuestions(c.Request().Context(), userID)
	if err != nil {
		// An empty bank is a content-authoring problem, not a test-taker error.
		if errors.Is(err, service.ErrNoEligibleQuestions) {
			return c.JSON(http.StatusOK, map[string]any{
				"questions": []dto.TestQuestionResponse{},
				"message":   "no valid questions are available yet, please try again later",
			})
		}
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"questions": dto.TestQuestionResponsesFromEntities(questions),
	})
}

func (h *TestHandler) SubmitTest(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return writeError(c, http.StatusUnauthorized, errors.New("unauthorized"))
	}
	var req dto.SubmitTestRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.validate(req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}

	responses := make(map[uuid.UUID]uuid.UUID, len(req.Responses))
	for questionID, answerID := range req.Responses {
		qid, err := uuid.Parse(questionID)
		if err != nil {
			return writeError(c, http.StatusBadRequest, errors.New("invalid question id"))
		}
		aid, err := uuid.Parse(answerID)
		if err != nil {
			return writeError(c, http.StatusBadRequest, errors.New("invalid answer id"))
		}
		responses[qid] = aid
	}

	result, err := h.Service.SubmitTest(c.Request().Context(), userID, responses)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.SubmitTestResponse{
		Grade:   result.Grade,
		Correct: result.Correct,
		Total:   result.Total,
		State:   string(result.State),
	})
}

func (h *TestHandler) Result(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return writeError(c, http.StatusUnauthorized, errors.New("unauthorized"))
	}
	result, err := h.Service.GetResult(c.Request().Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrResultNotReady) {
			return c.JSON(http.StatusConflict, map[string]string{
				"message":  err.Error(),
				"redirect": string(service.DestTakeTest),
			})
		}
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.TestResultResponse{
		State:      string(result.State),
		Grade:      result.Grade,
		ApprovedAt: result.ApprovedAt,
	})
}

func (h *TestHandler) validate(payload any) error {
	if h.Validate == nil {
		return nil
	}
	return h.Validate.Struct(payload)
}
