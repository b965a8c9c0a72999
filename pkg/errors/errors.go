package errors

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// JWT и токены
	ErrInvalidSigningMethod = fmt.Errorf("неверный метод подписи токена")
	ErrInvalidToken         = fmt.Errorf("недопустимый токен")
	ErrTokenExpired         = fmt.Errorf("срок действия токена истёк")

	// Авторизация
	ErrEmptyAuthHeader    = fmt.Errorf("заголовок авторизации отсутствует")
	ErrInvalidAuthHeader  = fmt.Errorf("неверный формат заголовка авторизации")
	ErrInvalidCredentials = fmt.Errorf("неверные учётные данные")
	ErrUserNotFound       = fmt.Errorf("пользователь не найден")

	// Общие
	ErrNotFound   = fmt.Errorf("запись не найдена")
	ErrEmailTaken = fmt.Errorf("email уже зарегистрирован")
	ErrBadRequest = fmt.Errorf("неверный запрос")
)

// HttpError несёт HTTP-статус наружу и внутреннюю ошибку для логов.
type HttpError struct {
	Code    int
	Message string
	Err     error
	Context map[string]interface{}
}

func (e *HttpError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *HttpError) Unwrap() error { return e.Err }

func NewHttpError(code int, message string, err error, context map[string]interface{}) *HttpError {
	return &HttpError{Code: code, Message: message, Err: err, Context: context}
}

// statusByError — соответствие доменных ошибок статусам; незнакомая ошибка даёт 500.
var statusByError = map[error]int{
	ErrNotFound:             http.StatusNotFound,
	ErrEmailTaken:           http.StatusBadRequest,
	ErrBadRequest:           http.StatusBadRequest,
	ErrInvalidCredentials:   http.StatusUnauthorized,
	ErrEmptyAuthHeader:      http.StatusUnauthorized,
	ErrInvalidAuthHeader:    http.StatusUnauthorized,
	ErrInvalidToken:         http.StatusUnauthorized,
	ErrTokenExpired:         http.StatusUnauthorized,
	ErrUserNotFound:         http.StatusUnauthorized,
	ErrInvalidSigningMethod: http.StatusUnauthorized,
}

// StatusCode возвращает HTTP-статус для ошибки.
func StatusCode(err error) int {
	var httpErr *HttpError
	if errors.As(err, &httpErr) {
		return httpErr.Code
	}
	for sentinel, code := range statusByError {
		if errors.Is(err, sentinel) {
			return code
		}
	}
	return http.StatusInternalServerError
}
