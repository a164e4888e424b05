package model

import (
	"strings"
	"time"

	"github.com/goccy/go-json"

	"todo-api/internal/domain/entity"
)

// isoLayout renders timestamps with a numeric offset, e.g. 2026-01-02T03:04:05.123456+00:00
const isoLayout = "2006-01-02T15:04:05.999999-07:00"

// Payload is a leniently decoded JSON object body. Keys absent from the request are absent
// from the map, which is what makes updates partial.
type Payload map[string]json.RawMessage

// DecodePayload parses body as a JSON object. Anything else yields an empty payload.
func DecodePayload(body []byte) Payload {
	var payload Payload
	if err := json.Unmarshal(body, &payload); err != nil || payload == nil {
		return Payload{}
	}
	return payload
}

func (p Payload) Has(key string) bool {
	_, ok := p[key]
	return ok
}

// Text returns the trimmed string under key. Null and non-string values read as "".
func (p Payload) Text(key string) string {
	raw, ok := p[key]
	if !ok {
		return ""
	}
	var value string
	if err := json.Unmarshal(raw, &value); err != nil {
		return ""
	}
	return strings.TrimSpace(value)
}

// Truthy coerces the value under key to a boolean: false, null, 0, "", [] and {} are false,
// every other value is true.
func (p Payload) Truthy(key string) bool {
	raw, ok := p[key]
	if !ok {
		return false
	}
	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		return false
	}

	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case float64:
		return v != 0
	case string:
		return v != ""
	case []any:
		return len(v) > 0
	case map[string]any:
		return len(v) > 0
	default:
		return true
	}
}

type CreateTodoDTO struct {
	Content string `json:"content" validate:"required"`
}

// UpdateTodoDTO carries only the fields present in the request; nil means untouched.
type UpdateTodoDTO struct {
	Content     *string `json:"content,omitempty"`
	IsCompleted *bool   `json:"is_completed,omitempty"`
}

func NewCreateTodoDTO(payload Payload) CreateTodoDTO {
	return CreateTodoDTO{Content: payload.Text("content")}
}

func NewUpdateTodoDTO(payload Payload) UpdateTodoDTO {
	var dto UpdateTodoDTO
	if payload.Has("content") {
		content := payload.Text("content")
		dto.Content = &content
	}
	if payload.Has("is_completed") {
		completed := payload.Truthy("is_completed")
		dto.IsCompleted = &completed
	}
	return dto
}

// TodoResponse is the wire shape of a todo.
type TodoResponse struct {
	ID          uint    `json:"id"`
	Content     string  `json:"content"`
	IsCompleted bool    `json:"is_completed"`
	IsDeleted   bool    `json:"is_deleted"`
	CreatedAt   string  `json:"created_at"`
	CompletedAt *string `json:"completed_at"`
}

func NewTodoResponse(todo entity.Todo) TodoResponse {
	response := TodoResponse{
		ID:          todo.ID,
		Content:     todo.Content,
		IsCompleted: todo.IsCompleted,
		IsDeleted:   todo.IsDeleted,
		CreatedAt:   FormatTimestamp(todo.CreatedAt),
	}
	if todo.CompletedAt != nil {
		completedAt := FormatTimestamp(*todo.CompletedAt)
		response.CompletedAt = &completedAt
	}
	return response
}

func NewTodoResponses(todos []entity.Todo) []TodoResponse {
	responses := make([]TodoResponse, 0, len(todos))
	for _, todo := range todos {
		responses = append(responses, NewTodoResponse(todo))
	}
	return responses
}

func FormatTimestamp(t time.Time) string {
	return t.Format(isoLayout)
}

// ErrorResponse is the body of a 4xx answer produced by the API itself.
type ErrorResponse struct {
	Error string `json:"error"`
}
