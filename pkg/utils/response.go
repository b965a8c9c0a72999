package utils

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "gearguard/pkg/errors"
)

type ErrorBody struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields,omitempty"`
}

// ErrorResponse переводит доменную ошибку в HTTP-ответ.
// Ошибки валидации разворачиваются в пофайловую карту полей (это граница
// фреймворка, доменная логика полями не занимается).
func ErrorResponse(ctx echo.Context, err error, logger *zap.Logger) error {
	var valErrs validator.ValidationErrors
	if errors.As(err, &valErrs) {
		fields := make(map[string]string, len(valErrs))
		for _, fe := range valErrs {
			fields[fe.Field()] = fe.Tag()
		}
		return ctx.JSON(http.StatusBadRequest, ErrorBody{Detail: "ошибка валидации", Fields: fields})
	}

	code := apperrors.StatusCode(err)
	message := err.Error()

	var httpErr *apperrors.HttpError
	if errors.As(err, &httpErr) {
		message = httpErr.Message
		logger.Warn("HTTP ошибка",
			zap.Int("code", httpErr.Code),
			zap.String("message", httpErr.Message),
			zap.Error(httpErr.Err),
			zap.Any("context", httpErr.Context),
		)
	} else if code == http.StatusInternalServerError {
		logger.Error("внутренняя ошибка", zap.Error(err))
		message = "внутренняя ошибка сервера"
	}

	return ctx.JSON(code, ErrorBody{Detail: message})
}
