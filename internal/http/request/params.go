package request

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// PathID parses the {id} URL parameter. A malformed id cannot name an
// existing row, so it is reported as notFound.
func PathID(r *http.Request, notFound error) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, notFound
	}

	return id, nil
}
