package graphql

import (
	"github.com/graphql-go/graphql"
	"github.com/rs/zerolog"

	"github.com/staffdesk/employee-api/internal/core/ports"
)

// Schema owns the GraphQL type system and the resolvers that bridge it to
// the core services.
type Schema struct {
	schema    graphql.Schema
	employees ports.EmployeeService
	auth      ports.AuthService
	logger    zerolog.Logger
}

// NewSchema builds the executable schema. It panics on a malformed type
// system, which is a programming error caught at startup.
func NewSchema(employees ports.EmployeeService, auth ports.AuthService, logger zerolog.Logger) *Schema {
	s := &Schema{employees: employees, auth: auth, logger: logger}

	roleEnum := defineRoleEnum()
	sortOrderEnum := defineSortOrderEnum()

	employeeType := defineEmployeeType()
	userType := defineUserType(roleEnum)
	authPayloadType := defineAuthPayloadType(userType)
	pageInfoType := definePageInfoType()
	connectionType := defineEmployeeConnectionType(employeeType, pageInfoType)
	statsType := defineEmployeeStatsType()

	filterInput := defineEmployeeFilterInput()
	sortInput := defineSortInput(sortOrderEnum)
	employeeInput := defineEmployeeInput()
	employeeUpdateInput := defineEmployeeUpdateInput()

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"employees": &graphql.Field{
				Type: graphql.NewNonNull(connectionType),
				Args: graphql.FieldConfigArgument{
					"filter": &graphql.ArgumentConfig{Type: filterInput},
					"sort":   &graphql.ArgumentConfig{Type: sortInput},
					"page":   &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 1},
					"limit":  &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 10},
				},
				Resolve: s.resolveEmployees,
			},
			"employee": &graphql.Field{
				Type: employeeType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: s.resolveEmployee,
			},
			"employeeStats": &graphql.Field{
				Type:    statsType,
				Resolve: s.resolveEmployeeStats,
			},
			"me": &graphql.Field{
				Type:    userType,
				Resolve: s.resolveMe,
			},
		},
	})

	mutationType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"register": &graphql.Field{
				Type: graphql.NewNonNull(authPayloadType),
				Args: graphql.FieldConfigArgument{
					"username": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"email":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"password": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"role":     &graphql.ArgumentConfig{Type: roleEnum},
				},
				Resolve: s.resolveRegister,
			},
			"login": &graphql.Field{
				Type: graphql.NewNonNull(authPayloadType),
				Args: graphql.FieldConfigArgument{
					"email":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"password": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: s.resolveLogin,
			},
			"createEmployee": &graphql.Field{
				Type: graphql.NewNonNull(employeeType),
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(employeeInput)},
				},
				Resolve: s.resolveCreateEmployee,
			},
			"updateEmployee": &graphql.Field{
				Type: graphql.NewNonNull(employeeType),
				Args: graphql.FieldConfigArgument{
					"id":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(employeeUpdateInput)},
				},
				Resolve: s.resolveUpdateEmployee,
			},
			"deleteEmployee": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Boolean),
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: s.resolveDeleteEmployee,
			},
			"deleteMultipleEmployees": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Int),
				Args: graphql.FieldConfigArgument{
					"ids": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(graphql.ID)))},
				},
				Resolve: s.resolveDeleteMultipleEmployees,
			},
		},
	})

	schema, err := graphql.NewSchema(graphql.SchemaConfig{
		Query:    queryType,
		Mutation: mutationType,
	})
	if err != nil {
		panic("graphql: invalid schema: " + err.Error())
	}

	s.schema = schema
	return s
}

// Schema returns the executable schema for the transport handler.
func (s *Schema) Schema() graphql.Schema {
	return s.schema
}
