package graphql

import (
	"time"

	"github.com/graphql-go/graphql"

	"github.com/staffdesk/employee-api/internal/core/domain"
	"github.com/staffdesk/employee-api/internal/core/ports"
)

// dateFormat is the wire format for joinDate, a calendar date with no time
// component.
const dateFormat = "2006-01-02"

// Roles travel upper-case on the wire and lower-case in the store; the enum
// performs the translation in both directions.
func defineRoleEnum() *graphql.Enum {
	return graphql.NewEnum(graphql.EnumConfig{
		Name: "Role",
		Values: graphql.EnumValueConfigMap{
			"ADMIN":    &graphql.EnumValueConfig{Value: domain.RoleAdmin},
			"EMPLOYEE": &graphql.EnumValueConfig{Value: domain.RoleEmployee},
		},
	})
}

func defineSortOrderEnum() *graphql.Enum {
	return graphql.NewEnum(graphql.EnumConfig{
		Name: "SortOrder",
		Values: graphql.EnumValueConfigMap{
			"ASC":  &graphql.EnumValueConfig{Value: "ASC"},
			"DESC": &graphql.EnumValueConfig{Value: "DESC"},
		},
	})
}

// employeeFromSource accepts both value and pointer sources; list resolvers
// yield values while single-record resolvers yield pointers.
func employeeFromSource(source interface{}) *domain.Employee {
	switch e := source.(type) {
	case *domain.Employee:
		return e
	case domain.Employee:
		return &e
	}
	return nil
}

func defineEmployeeType() *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Employee",
		Fields: graphql.Fields{
			"id":         &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"name":       &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"age":        &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"position":   &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"department": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"email":      &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"phone":      &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"salary":     &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
			"subjects":   &graphql.Field{Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(graphql.String)))},
			"attendance": &graphql.Field{Type: graphql.Float},
			"bio":        &graphql.Field{Type: graphql.String},
			"joinDate": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if e := employeeFromSource(p.Source); e != nil {
						return e.JoinDate.UTC().Format(dateFormat), nil
					}
					return nil, nil
				},
			},
			"isActive": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Boolean),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if e := employeeFromSource(p.Source); e != nil {
						return e.IsActive, nil
					}
					return nil, nil
				},
			},
			"createdAt": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if e := employeeFromSource(p.Source); e != nil {
						return e.CreatedAt.UTC().Format(time.RFC3339), nil
					}
					return nil, nil
				},
			},
			"updatedAt": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if e := employeeFromSource(p.Source); e != nil {
						return e.UpdatedAt.UTC().Format(time.RFC3339), nil
					}
					return nil, nil
				},
			},
		},
	})
}

func defineUserType(roleEnum *graphql.Enum) *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "User",
		Fields: graphql.Fields{
			"id":       &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"username": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"email":    &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"role":     &graphql.Field{Type: graphql.NewNonNull(roleEnum)},
			"isActive": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Boolean),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if u, ok := p.Source.(*domain.User); ok {
						return u.IsActive, nil
					}
					return nil, nil
				},
			},
			"createdAt": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if u, ok := p.Source.(*domain.User); ok {
						return u.CreatedAt.UTC().Format(time.RFC3339), nil
					}
					return nil, nil
				},
			},
		},
	})
}

func defineAuthPayloadType(userType *graphql.Object) *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "AuthPayload",
		Fields: graphql.Fields{
			"token": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if a, ok := p.Source.(*ports.AuthPayload); ok {
						return a.Token, nil
					}
					return nil, nil
				},
			},
			"user": &graphql.Field{
				Type: graphql.NewNonNull(userType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if a, ok := p.Source.(*ports.AuthPayload); ok {
						return a.User, nil
					}
					return nil, nil
				},
			},
		},
	})
}

func definePageInfoType() *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "PaginationInfo",
		Fields: graphql.Fields{
			"totalCount":      &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"hasNextPage":     &graphql.Field{Type: graphql.NewNonNull(graphql.Boolean)},
			"hasPreviousPage": &graphql.Field{Type: graphql.NewNonNull(graphql.Boolean)},
			"currentPage":     &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"totalPages":      &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		},
	})
}

func defineEmployeeConnectionType(employeeType, pageInfoType *graphql.Object) *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "EmployeeConnection",
		Fields: graphql.Fields{
			"employees": &graphql.Field{Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(employeeType)))},
			"pageInfo":  &graphql.Field{Type: graphql.NewNonNull(pageInfoType)},
		},
	})
}

func defineEmployeeStatsType() *graphql.Object {
	departmentCountType := graphql.NewObject(graphql.ObjectConfig{
		Name: "DepartmentCount",
		Fields: graphql.Fields{
			"department": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"count":      &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		},
	})

	return graphql.NewObject(graphql.ObjectConfig{
		Name: "EmployeeStats",
		Fields: graphql.Fields{
			"totalEmployees":   &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"departmentCounts": &graphql.Field{Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(departmentCountType)))},
			"averageSalary":    &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
			"averageAge":       &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
		},
	})
}

func defineEmployeeFilterInput() *graphql.InputObject {
	return graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "EmployeeFilterInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"department": &graphql.InputObjectFieldConfig{Type: graphql.String},
			"position":   &graphql.InputObjectFieldConfig{Type: graphql.String},
			"minAge":     &graphql.InputObjectFieldConfig{Type: graphql.Int},
			"maxAge":     &graphql.InputObjectFieldConfig{Type: graphql.Int},
			"minSalary":  &graphql.InputObjectFieldConfig{Type: graphql.Float},
			"maxSalary":  &graphql.InputObjectFieldConfig{Type: graphql.Float},
			"search":     &graphql.InputObjectFieldConfig{Type: graphql.String},
			"isActive":   &graphql.InputObjectFieldConfig{Type: graphql.Boolean},
		},
	})
}

func defineSortInput(sortOrderEnum *graphql.Enum) *graphql.InputObject {
	return graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "SortInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"field": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"order": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(sortOrderEnum)},
		},
	})
}

func defineEmployeeInput() *graphql.InputObject {
	return graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "EmployeeInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"name":       &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"age":        &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.Int)},
			"position":   &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"department": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"email":      &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"phone":      &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"salary":     &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.Float)},
			"joinDate":   &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"subjects":   &graphql.InputObjectFieldConfig{Type: graphql.NewList(graphql.NewNonNull(graphql.String))},
			"attendance": &graphql.InputObjectFieldConfig{Type: graphql.Float},
			"bio":        &graphql.InputObjectFieldConfig{Type: graphql.String},
		},
	})
}

func defineEmployeeUpdateInput() *graphql.InputObject {
	return graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "EmployeeUpdateInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"name":       &graphql.InputObjectFieldConfig{Type: graphql.String},
			"age":        &graphql.InputObjectFieldConfig{Type: graphql.Int},
			"position":   &graphql.InputObjectFieldConfig{Type: graphql.String},
			"department": &graphql.InputObjectFieldConfig{Type: graphql.String},
			"email":      &graphql.InputObjectFieldConfig{Type: graphql.String},
			"phone":      &graphql.InputObjectFieldConfig{Type: graphql.String},
			"salary":     &graphql.InputObjectFieldConfig{Type: graphql.Float},
			"joinDate":   &graphql.InputObjectFieldConfig{Type: graphql.String},
			"subjects":   &graphql.InputObjectFieldConfig{Type: graphql.NewList(graphql.NewNonNull(graphql.String))},
			"attendance": &graphql.InputObjectFieldConfig{Type: graphql.Float},
			"bio":        &graphql.InputObjectFieldConfig{Type: graphql.String},
			"isActive":   &graphql.InputObjectFieldConfig{Type: graphql.Boolean},
		},
	})
}
