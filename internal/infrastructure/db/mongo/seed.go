package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

// Seed bootstraps a fresh database with two accounts and a small employee
// set so the API is usable out of the box. It is idempotent: when any user
// or employee document already exists, nothing is written.
func Seed(ctx context.Context, db *mongo.Database, log zerolog.Logger) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	users := db.Collection(collectionUsers)
	employees := db.Collection(collectionEmployees)

	userCount, err := users.CountDocuments(ctx, bson.M{})
	if err != nil {
		return fmt.Errorf("seed: count users: %w", err)
	}
	employeeCount, err := employees.CountDocuments(ctx, bson.M{})
	if err != nil {
		return fmt.Errorf("seed: count employees: %w", err)
	}
	if userCount > 0 || employeeCount > 0 {
		log.Info().Msg("database already seeded")
		return nil
	}

	now := time.Now().UTC()

	adminID, err := seedUser(ctx, users, "admin", "admin@company.com", "admin123", "admin", now)
	if err != nil {
		return err
	}
	if _, err := seedUser(ctx, users, "employee", "employee@company.com", "employee123", "employee", now); err != nil {
		return err
	}

	samples := []employeeDoc{
		{
			Name: "John Doe", Age: 28, Position: "Software Engineer", Department: "Engineering",
			Email: "john.doe@company.com", Phone: "+1 (555) 123-4567", Salary: 75000,
			JoinDate: time.Date(2022, 1, 15, 0, 0, 0, 0, time.UTC),
			Subjects: []string{"React", "Node.js", "JavaScript"}, Attendance: 95,
			Bio:      "Experienced software engineer with expertise in full-stack development.",
			IsActive: true, CreatedBy: adminID, CreatedAt: now, UpdatedAt: now,
		},
		{
			Name: "Jane Smith", Age: 32, Position: "Product Manager", Department: "Product",
			Email: "jane.smith@company.com", Phone: "+1 (555) 234-5678", Salary: 95000,
			JoinDate: time.Date(2021, 3, 10, 0, 0, 0, 0, time.UTC),
			Subjects: []string{"Product Strategy", "Agile", "Analytics"}, Attendance: 92,
			Bio:      "Strategic product manager with a focus on user experience.",
			IsActive: true, CreatedBy: adminID, CreatedAt: now, UpdatedAt: now,
		},
		{
			Name: "Carlos Reyes", Age: 41, Position: "Engineering Manager", Department: "Engineering",
			Email: "carlos.reyes@company.com", Phone: "+1 (555) 345-6789", Salary: 120000,
			JoinDate: time.Date(2019, 7, 1, 0, 0, 0, 0, time.UTC),
			Subjects: []string{"Go", "Distributed Systems", "Leadership"}, Attendance: 97,
			IsActive: true, CreatedBy: adminID, CreatedAt: now, UpdatedAt: now,
		},
		{
			Name: "Aisha Khan", Age: 26, Position: "Designer", Department: "Design",
			Email: "aisha.khan@company.com", Phone: "+1 (555) 456-7890", Salary: 68000,
			JoinDate: time.Date(2023, 2, 20, 0, 0, 0, 0, time.UTC),
			Subjects: []string{"Figma", "User Research"}, Attendance: 90,
			IsActive: true, CreatedBy: adminID, CreatedAt: now, UpdatedAt: now,
		},
	}

	docs := make([]interface{}, len(samples))
	for i := range samples {
		docs[i] = samples[i]
	}
	if _, err := employees.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("seed: insert employees: %w", err)
	}

	log.Info().Int("employees", len(samples)).Msg("database seeded")
	return nil
}

func seedUser(ctx context.Context, col *mongo.Collection, username, email, password, role string, now time.Time) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("seed: hash password: %w", err)
	}

	res, err := col.InsertOne(ctx, userDoc{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return "", fmt.Errorf("seed: insert user %s: %w", username, err)
	}
	return res.InsertedID.(primitive.ObjectID).Hex(), nil
}
