package v1

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/centsible/backend/internal/httputil"
)

type URIID struct {
	ID string `uri:"id" binding:"required" format:"UUID"` // ID of the resource
}

// bindID binds the id path parameter and parses it into a UUID.
func bindID(c *gin.Context) (uuid.UUID, error) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		return uuid.Nil, httputil.ErrInvalidUUID
	}

	return httputil.UUIDFromString(uri.ID)
}

// parseQueryInt parses a numeric query parameter.
func parseQueryInt(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, httputil.ErrInvalidQuery
	}

	return n, nil
}

// Pagination contains information about the pagination for collection endpoints.
type Pagination struct {
	Count  int   `json:"count"`  // The amount of records returned in this response
	Offset int   `json:"offset"` // The offset for the first record returned
	Limit  int   `json:"limit"`  // The maximum amount of resources to return for this request
	Total  int64 `json:"total"`  // The total number of resources matching the query
}
