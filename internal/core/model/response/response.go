package response

import (
	"encoding/json"
	"time"

	"todoapi/internal/core/domain"
)

const (
	StatusOK      = "ok"
	StatusSuccess = "success"
	StatusFail    = "fail"
	StatusError   = "error"
	StatusHealthy = "healthy"
)

// NaiveTimeLayout renders a timestamp without a zone suffix.
const NaiveTimeLayout = "2006-01-02T15:04:05.999999"

// NaiveTime is a UTC timestamp serialized as a naive datetime.
type NaiveTime time.Time

func (t NaiveTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Time(t).UTC().Format(NaiveTimeLayout))
}

func (t *NaiveTime) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	parsed, err := time.Parse(NaiveTimeLayout, raw)
	if err != nil {
		return err
	}

	*t = NaiveTime(parsed)
	return nil
}

func (t NaiveTime) Time() time.Time {
	return time.Time(t)
}

type TodoResponse struct {
	ID        int64     `json:"id"`
	Body      string    `json:"body"`
	Completed bool      `json:"completed"`
	CreatedAt NaiveTime `json:"created_at"`
	UpdatedAt NaiveTime `json:"updated_at"`
}

func ToTodoResponse(todo domain.Todo) TodoResponse {
	return TodoResponse{
		ID:        todo.ID,
		Body:      todo.Body,
		Completed: todo.Completed,
		CreatedAt: NaiveTime(todo.CreatedAt),
		UpdatedAt: NaiveTime(todo.UpdatedAt),
	}
}

// ListResponse is the body of GET /todos. Notes is never nil.
type ListResponse struct {
	Status string         `json:"status"`
	Count  int            `json:"count"`
	Notes  []TodoResponse `json:"notes"`
}

func NewListResponse(todos []domain.Todo) ListResponse {
	notes := make([]TodoResponse, 0, len(todos))

	for _, todo := range todos {
		notes = append(notes, ToTodoResponse(todo))
	}

	return ListResponse{
		Status: StatusOK,
		Count:  len(notes),
		Notes:  notes,
	}
}

type TodoData struct {
	Todo TodoResponse `json:"todo"`
}

type SuccessResponse struct {
	Status string   `json:"status"`
	Data   TodoData `json:"data"`
}

func NewSuccessResponse(todo domain.Todo) SuccessResponse {
	return SuccessResponse{
		Status: StatusSuccess,
		Data:   TodoData{Todo: ToTodoResponse(todo)},
	}
}

type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type HealthResponse struct {
	Status string `json:"status"`
}
