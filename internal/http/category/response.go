package category

import (
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/fintrack/internal/category"
	"github.com/MrJamesThe3rd/fintrack/internal/operation"
)

type categoryResponse struct {
	ID            uuid.UUID      `json:"category_id"`
	Name          string         `json:"category_name"`
	OperationID   uuid.UUID      `json:"operation_id"`
	OperationName string         `json:"operation_name"`
	OperationType operation.Type `json:"operation_type"`
}

func toResponse(c *category.Category) categoryResponse {
	return categoryResponse{
		ID:            c.ID,
		Name:          c.Name,
		OperationID:   c.Operation.ID,
		OperationName: c.Operation.Name,
		OperationType: c.Operation.Type,
	}
}

func toResponseList(cats []*category.Category) []categoryResponse {
	resp := make([]categoryResponse, len(cats))
	for i, c := range cats {
		resp[i] = toResponse(c)
	}

	return resp
}
