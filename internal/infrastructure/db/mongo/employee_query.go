package mongo

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/staffdesk/employee-api/internal/core/ports"
)

// sortFields maps API-level sort field names onto document keys. Unknown
// fields pass through unchanged; Mongo sorts missing keys as nulls rather
// than erroring.
var sortFields = map[string]string{
	"name":       "name",
	"age":        "age",
	"position":   "position",
	"department": "department",
	"email":      "email",
	"salary":     "salary",
	"joinDate":   "join_date",
	"attendance": "attendance",
	"isActive":   "is_active",
	"createdAt":  "created_at",
	"updatedAt":  "updated_at",
}

// buildEmployeeFilter translates the optional filter fields into a Mongo
// predicate. Presence rules are deliberate and observable behaviour:
//   - the default scope is active records only; an explicit IsActive value
//     (including false) replaces it,
//   - empty strings and zero-valued numeric bounds add no predicate, so a
//     minimum of literal 0 is silently dropped,
//   - present range bounds merge into one two-sided inequality per field,
//   - search is a text-index lookup ANDed with everything else.
func buildEmployeeFilter(f ports.EmployeeFilter) bson.M {
	query := bson.M{"is_active": true}

	if f.Department != "" {
		query["department"] = f.Department
	}
	if f.Position != "" {
		query["position"] = f.Position
	}
	if f.MinAge != 0 || f.MaxAge != 0 {
		age := bson.M{}
		if f.MinAge != 0 {
			age["$gte"] = f.MinAge
		}
		if f.MaxAge != 0 {
			age["$lte"] = f.MaxAge
		}
		query["age"] = age
	}
	if f.MinSalary != 0 || f.MaxSalary != 0 {
		salary := bson.M{}
		if f.MinSalary != 0 {
			salary["$gte"] = f.MinSalary
		}
		if f.MaxSalary != 0 {
			salary["$lte"] = f.MaxSalary
		}
		query["salary"] = salary
	}
	if f.Search != "" {
		query["$text"] = bson.M{"$search": f.Search}
	}
	if f.IsActive != nil {
		query["is_active"] = *f.IsActive
	}

	return query
}

// buildEmployeeSort returns the sort document. The default is creation time
// descending; an explicit sort replaces it entirely.
func buildEmployeeSort(s *ports.SortSpec) bson.D {
	if s == nil {
		return bson.D{{Key: "created_at", Value: -1}}
	}

	field, ok := sortFields[s.Field]
	if !ok {
		field = s.Field
	}
	order := -1
	if s.Order == "ASC" {
		order = 1
	}
	return bson.D{{Key: field, Value: order}}
}
