package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/staffdesk/employee-api/internal/core/domain"
	"github.com/staffdesk/employee-api/internal/core/ports"
)

const collectionEmployees = "employees"

type EmployeeRepository struct {
	col *mongo.Collection
}

func NewEmployeeRepository(db *mongo.Database) *EmployeeRepository {
	return &EmployeeRepository{col: db.Collection(collectionEmployees)}
}

type employeeDoc struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	Name       string             `bson:"name"`
	Age        int                `bson:"age"`
	Position   string             `bson:"position"`
	Department string             `bson:"department"`
	Email      string             `bson:"email"`
	Phone      string             `bson:"phone"`
	Salary     float64            `bson:"salary"`
	JoinDate   time.Time          `bson:"join_date"`
	Subjects   []string           `bson:"subjects"`
	Attendance float64            `bson:"attendance"`
	Bio        string             `bson:"bio,omitempty"`
	IsActive   bool               `bson:"is_active"`
	CreatedBy  string             `bson:"created_by"`
	CreatedAt  time.Time          `bson:"created_at"`
	UpdatedAt  time.Time          `bson:"updated_at"`
}

func toEmployeeDoc(e *domain.Employee) employeeDoc {
	return employeeDoc{
		Name:       e.Name,
		Age:        e.Age,
		Position:   e.Position,
		Department: e.Department,
		Email:      e.Email,
		Phone:      e.Phone,
		Salary:     e.Salary,
		JoinDate:   e.JoinDate,
		Subjects:   e.Subjects,
		Attendance: e.Attendance,
		Bio:        e.Bio,
		IsActive:   e.IsActive,
		CreatedBy:  e.CreatedBy,
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  e.UpdatedAt,
	}
}

func (d *employeeDoc) toDomain() domain.Employee {
	subjects := d.Subjects
	if subjects == nil {
		subjects = []string{}
	}
	return domain.Employee{
		ID:         d.ID.Hex(),
		Name:       d.Name,
		Age:        d.Age,
		Position:   d.Position,
		Department: d.Department,
		Email:      d.Email,
		Phone:      d.Phone,
		Salary:     d.Salary,
		JoinDate:   d.JoinDate,
		Subjects:   subjects,
		Attendance: d.Attendance,
		Bio:        d.Bio,
		IsActive:   d.IsActive,
		CreatedBy:  d.CreatedBy,
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  d.UpdatedAt,
	}
}

// Create inserts a new employee document. A unique-index violation on email
// is reported as ErrDuplicateEmail: under concurrent creates the index, not
// the service-level pre-check, is what actually enforces uniqueness.
func (r *EmployeeRepository) Create(ctx context.Context, e *domain.Employee) (*domain.Employee, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, toEmployeeDoc(e))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("insert employee: %w", err)
	}

	created := *e
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *EmployeeRepository) FindByID(ctx context.Context, id string) (*domain.Employee, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrEmployeeNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc employeeDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("find employee: %w", err)
	}

	e := doc.toDomain()
	return &e, nil
}

// FindByEmail matches any record regardless of its active flag, so a
// soft-deleted employee still blocks reuse of its email.
func (r *EmployeeRepository) FindByEmail(ctx context.Context, email string) (*domain.Employee, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc employeeDoc
	if err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("find employee by email: %w", err)
	}

	e := doc.toDomain()
	return &e, nil
}

// Update replaces the mutable fields of the document with the merged record
// and returns the post-update state.
func (r *EmployeeRepository) Update(ctx context.Context, id string, e *domain.Employee) (*domain.Employee, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrEmployeeNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{
		"name":       e.Name,
		"age":        e.Age,
		"position":   e.Position,
		"department": e.Department,
		"email":      e.Email,
		"phone":      e.Phone,
		"salary":     e.Salary,
		"join_date":  e.JoinDate,
		"subjects":   e.Subjects,
		"attendance": e.Attendance,
		"bio":        e.Bio,
		"is_active":  e.IsActive,
		"updated_at": e.UpdatedAt,
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc employeeDoc
	err = r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrEmployeeNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("update employee: %w", err)
	}

	updated := doc.toDomain()
	return &updated, nil
}

// SoftDelete flips the active flag and keeps the document.
func (r *EmployeeRepository) SoftDelete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrEmployeeNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"is_active": false, "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		return fmt.Errorf("soft delete employee: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrEmployeeNotFound
	}
	return nil
}

// SoftDeleteMany deactivates all matching ids in a single batch. Invalid and
// unknown ids are skipped silently; the returned count is the number of
// documents Mongo actually modified, so already-inactive records do not
// contribute.
func (r *EmployeeRepository) SoftDeleteMany(ctx context.Context, ids []string) (int64, error) {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			oids = append(oids, oid)
		}
	}
	if len(oids) == 0 {
		return 0, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateMany(ctx,
		bson.M{"_id": bson.M{"$in": oids}},
		bson.M{"$set": bson.M{"is_active": false, "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		return 0, fmt.Errorf("bulk soft delete: %w", err)
	}
	return res.ModifiedCount, nil
}

// List runs the filter/sort/pagination plan. The total count is taken over
// the full predicate, independent of skip and limit.
func (r *EmployeeRepository) List(ctx context.Context, q ports.ListQuery) ([]domain.Employee, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := buildEmployeeFilter(q.Filter)

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count employees: %w", err)
	}

	opts := options.Find().
		SetSort(buildEmployeeSort(q.Sort)).
		SetSkip(int64((q.Page - 1) * q.Limit)).
		SetLimit(int64(q.Limit))

	cursor, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list employees: %w", err)
	}
	defer cursor.Close(ctx)

	employees := []domain.Employee{}
	for cursor.Next(ctx) {
		var doc employeeDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, 0, fmt.Errorf("decode employee: %w", err)
		}
		employees = append(employees, doc.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, 0, fmt.Errorf("list employees: %w", err)
	}

	return employees, total, nil
}

// Stats aggregates figures over active employees only.
func (r *EmployeeRepository) Stats(ctx context.Context) (*ports.StatsResult, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	activeOnly := bson.M{"is_active": true}

	total, err := r.col.CountDocuments(ctx, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("count active employees: %w", err)
	}

	deptCursor, err := r.col.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$match", Value: activeOnly}},
		{{Key: "$group", Value: bson.M{"_id": "$department", "count": bson.M{"$sum": 1}}}},
	})
	if err != nil {
		return nil, fmt.Errorf("department counts: %w", err)
	}
	defer deptCursor.Close(ctx)

	counts := []ports.DepartmentCount{}
	for deptCursor.Next(ctx) {
		var row struct {
			Department string `bson:"_id"`
			Count      int    `bson:"count"`
		}
		if err := deptCursor.Decode(&row); err != nil {
			return nil, fmt.Errorf("decode department count: %w", err)
		}
		counts = append(counts, ports.DepartmentCount{Department: row.Department, Count: row.Count})
	}
	if err := deptCursor.Err(); err != nil {
		return nil, fmt.Errorf("department counts: %w", err)
	}

	avgCursor, err := r.col.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$match", Value: activeOnly}},
		{{Key: "$group", Value: bson.M{
			"_id":        nil,
			"avg_salary": bson.M{"$avg": "$salary"},
			"avg_age":    bson.M{"$avg": "$age"},
		}}},
	})
	if err != nil {
		return nil, fmt.Errorf("salary stats: %w", err)
	}
	defer avgCursor.Close(ctx)

	var avgSalary, avgAge float64
	if avgCursor.Next(ctx) {
		var row struct {
			AvgSalary float64 `bson:"avg_salary"`
			AvgAge    float64 `bson:"avg_age"`
		}
		if err := avgCursor.Decode(&row); err != nil {
			return nil, fmt.Errorf("decode salary stats: %w", err)
		}
		avgSalary, avgAge = row.AvgSalary, row.AvgAge
	}

	return &ports.StatsResult{
		TotalEmployees:   int(total),
		DepartmentCounts: counts,
		AverageSalary:    avgSalary,
		AverageAge:       avgAge,
	}, nil
}

// EnsureIndexes creates the indexes the query paths depend on. The unique
// email index doubles as the duplicate-create backstop.
func (r *EmployeeRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "department", Value: 1}}},
		{Keys: bson.D{{Key: "position", Value: 1}}},
		{Keys: bson.D{
			{Key: "name", Value: "text"},
			{Key: "position", Value: "text"},
			{Key: "department", Value: "text"},
		}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
