package graphql

import (
	"fmt"

	"github.com/graphql-go/graphql"

	"github.com/staffdesk/employee-api/internal/api/metrics"
	"github.com/staffdesk/employee-api/internal/core/service"
)

func (s *Schema) resolveRegister(p graphql.ResolveParams) (interface{}, error) {
	username, _ := p.Args["username"].(string)
	email, _ := p.Args["email"].(string)
	password, _ := p.Args["password"].(string)
	role, _ := p.Args["role"].(string) // enum already mapped to the stored value

	payload, err := s.auth.Register(p.Context, username, email, password, role)
	if err != nil {
		return nil, fmt.Errorf("registration failed: %v", err)
	}

	metrics.RegistrationsTotal.WithLabelValues(payload.User.Role).Inc()
	return payload, nil
}

func (s *Schema) resolveLogin(p graphql.ResolveParams) (interface{}, error) {
	email, _ := p.Args["email"].(string)
	password, _ := p.Args["password"].(string)

	payload, err := s.auth.Login(p.Context, email, password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return nil, fmt.Errorf("login failed: %v", err)
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return payload, nil
}

// resolveMe returns the caller's own account, or an error for anonymous
// requests.
func (s *Schema) resolveMe(p graphql.ResolveParams) (interface{}, error) {
	user, err := service.RequireAuthenticated(UserFrom(p.Context))
	if err != nil {
		return nil, err
	}
	return user, nil
}
