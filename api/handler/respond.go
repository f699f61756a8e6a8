package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"pacho/internal/service"

	"github.com/labstack/echo/v4"
)

func decodeJSON(c echo.Context, target any) error {
	decoder := json.NewDecoder(c.Request().Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(target)
}

func writeError(c echo.Context, status int, err error) error {
	return c.JSON(status, map[string]string{"message": err.Error()})
}

func writeServiceError(c echo.Context, err error) error {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, service.ErrPasswordMismatch),
		errors.Is(err, service.ErrPasswordTooShort),
		errors.Is(err, service.ErrIncompleteSubmission),
		errors.Is(err, service.ErrQuestionTooLong),
		errors.Is(err, service.ErrAnswerTooLong),
		errors.Is(err, service.ErrTooFewAnswers),
		errors.Is(err, service.ErrNoCorrectAnswer):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrInvalidToken):
		status = http.StatusUnauthorized
	case errors.Is(err, service.ErrTestNotEnabled),
		errors.Is(err, service.ErrNotActiveExpert),
		errors.Is(err, service.ErrNotOwner):
		status = http.StatusForbidden
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrExpertNotFound),
		errors.Is(err, service.ErrQuestionNotFound),
		errors.Is(err, service.ErrDiseaseNotFound),
		errors.Is(err, service.ErrTreatmentNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrEmailAlreadyRegistered),
		errors.Is(err, service.ErrPositionTaken),
		errors.Is(err, service.ErrQuestionInUse),
		errors.Is(err, service.ErrHasRecordedAnswers),
		errors.Is(err, service.ErrInvalidState),
		errors.Is(err, service.ErrNoEligibleQuestions),
		errors.Is(err, service.ErrResultNotReady):
		status = http.StatusConflict
	}
	return writeError(c, status, err)
}

func stringPtr(value string) *string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return &value
}
