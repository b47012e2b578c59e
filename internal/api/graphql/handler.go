package graphql

import (
	"net/http"
	"time"

	"github.com/graphql-go/graphql"
	"github.com/labstack/echo/v4"

	"github.com/staffdesk/employee-api/internal/api/metrics"
)

// request is the standard GraphQL-over-HTTP POST body.
type request struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

// Handler serves the GraphQL endpoint. All resolver failures are already
// collapsed into the result's errors list, so the HTTP status is 200 for
// anything that parsed as a request.
func (s *Schema) Handler(c echo.Context) error {
	var req request
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid graphql request")
	}
	if req.Query == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing query")
	}

	operation := req.OperationName
	if operation == "" {
		operation = "unnamed"
	}

	start := time.Now()
	result := graphql.Do(graphql.Params{
		Schema:         s.schema,
		RequestString:  req.Query,
		VariableValues: req.Variables,
		OperationName:  req.OperationName,
		Context:        c.Request().Context(),
	})
	metrics.GraphQLRequestDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	metrics.GraphQLRequestsTotal.WithLabelValues(operation).Inc()

	if len(result.Errors) > 0 {
		metrics.GraphQLErrorsTotal.WithLabelValues(operation).Add(float64(len(result.Errors)))
		s.logger.Debug().
			Str("operation", operation).
			Int("errors", len(result.Errors)).
			Msg("graphql request completed with errors")
	}

	return c.JSON(http.StatusOK, result)
}
