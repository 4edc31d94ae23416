package operation

import (
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/fintrack/internal/operation"
)

type operationResponse struct {
	ID   uuid.UUID      `json:"operation_id"`
	Name string         `json:"operation_name"`
	Type operation.Type `json:"operation_type"`
}

func toResponse(op *operation.Operation) operationResponse {
	return operationResponse{
		ID:   op.ID,
		Name: op.Name,
		Type: op.Type,
	}
}

func toResponseList(ops []*operation.Operation) []operationResponse {
	resp := make([]operationResponse, len(ops))
	for i, op := range ops {
		resp[i] = toResponse(op)
	}

	return resp
}
