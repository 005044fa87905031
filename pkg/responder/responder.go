package responder

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
)

// ErrEmptyBody тело запроса отсутствует
var ErrEmptyBody = errors.New("request body is empty")

// MaxBodyBytes предельный размер тела запроса для Decode
const MaxBodyBytes = 1 << 20

// Responder определяет интерфейс для отправки ответов
type Responder interface {
	Respond(w http.ResponseWriter, status int, data interface{})
	Error(w http.ResponseWriter, status int, message string)
	Message(w http.ResponseWriter, status int, message string)
	Invalid(w http.ResponseWriter, fields map[string][]string)
	Decode(r *http.Request, root string, v interface{}) error
}

// ErrorResponse представляет стандартный ответ об ошибке
type ErrorResponse struct {
	Error string `json:"error" example:"Not authorized"`
}

// MessageResponse ответ с текстовым сообщением
type MessageResponse struct {
	Message string `json:"message" example:"Event was successfully destroyed."`
}

// ValidationResponse ошибки полей: поле -> список сообщений
type ValidationResponse map[string][]string

// JSONResponder реализует Responder для JSON ответов
type JSONResponder struct{}

// NewJSONResponder создает новый JSONResponder
func NewJSONResponder() *JSONResponder {
	return &JSONResponder{}
}

// Respond отправляет успешный JSON ответ
func (j *JSONResponder) Respond(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(data)
}

// Error отправляет JSON ответ с ошибкой
func (j *JSONResponder) Error(w http.ResponseWriter, status int, message string) {
	j.Respond(w, status, ErrorResponse{Error: message})
}

// Message отправляет {"message": ...}
func (j *JSONResponder) Message(w http.ResponseWriter, status int, message string) {
	j.Respond(w, status, MessageResponse{Message: message})
}

// Invalid отправляет 422 с ошибками полей
func (j *JSONResponder) Invalid(w http.ResponseWriter, fields map[string][]string) {
	j.Respond(w, http.StatusUnprocessableEntity, ValidationResponse(fields))
}

// Decode декодирует тело запроса в структуру. Тело может быть как плоским,
// так и обернутым в корневой ключ ресурса: {"user": {...}}.
func (j *JSONResponder) Decode(r *http.Request, root string, v interface{}) error {
	body, err := io.ReadAll(http.MaxBytesReader(nil, r.Body, MaxBodyBytes))
	if err != nil {
		return err
	}
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return ErrEmptyBody
	}

	if root != "" {
		var wrapped map[string]json.RawMessage
		if err := json.Unmarshal(body, &wrapped); err == nil {
			if inner, ok := wrapped[root]; ok && len(wrapped) == 1 && isObject(inner) {
				body = inner
			}
		}
	}

	return json.Unmarshal(body, v)
}

func isObject(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && raw[0] == '{'
}
