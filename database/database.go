package database

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"lms/config"
	"lms/models"
	courseModels "lms/models/course"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// DbInstance struct holds the database connection instance
type DbInstance struct {
	Db *gorm.DB
}

// Database is the global database instance
var Database DbInstance

// ConnectDb establishes a connection to PostgreSQL
func ConnectDb() {
	// Build the PostgreSQL connection string
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)

	// Open database connection
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to PostgreSQL: %v", err)
		os.Exit(2)
	}

	// Set up connection pooling
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get database instance: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(0)

	// Run database migrations and seed baseline data
	runMigrations(db)
	seedSuperAdmin(db)
	seedSampleCatalog(db)

	// Save database instance globally
	Database = DbInstance{Db: db}
}

// ConnectTestDb opens an in-memory SQLite database for package tests.
// It migrates the schema and seeds the super-admin, but not the sample
// catalog, so tests start from a predictable state.
func ConnectTestDb() {
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to open test database: %v", err)
	}

	runMigrations(db)
	seedSuperAdmin(db)

	Database = DbInstance{Db: db}
}

// runMigrations performs database migrations
func runMigrations(db *gorm.DB) {
	log.Println("Running Migrations...")

	err := db.AutoMigrate(
		&models.User{},
		&models.LoginTracking{},
		&models.RevokedToken{},
		&models.Payment{},
		&models.Message{},
		&courseModels.Course{},
		&courseModels.Lesson{},
		&courseModels.LessonCompletion{},
		&courseModels.Test{},
		&courseModels.Question{},
		&courseModels.TestResult{},
		&courseModels.Enrollment{},
		&courseModels.Certificate{},
	)
	if err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	log.Println("Migrations completed successfully.")
}

// seedSuperAdmin ensures the distinguished super-admin account exists.
// It is always approved and exempt from the admin approval gate.
func seedSuperAdmin(db *gorm.DB) {
	email := config.AppConfig.SuperAdminEmail

	var existing models.User
	if err := db.Where("email = ?", email).First(&existing).Error; err == nil {
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(config.AppConfig.SuperAdminPassword), config.AppConfig.SaltRound)
	if err != nil {
		log.Fatalf("Failed to hash super-admin password: %v", err)
	}

	admin := models.User{
		Email:      email,
		Password:   string(hashed),
		FirstName:  "Super",
		LastName:   "Admin",
		Role:       models.RoleSuperAdmin,
		IsApproved: true,
	}

	if err := db.Create(&admin).Error; err != nil {
		log.Fatalf("Failed to seed super-admin: %v", err)
	}

	log.Printf("Seeded super-admin account: %s", email)
}

// seedSampleCatalog populates example courses on first boot so the
// platform is browsable before any admin adds content. Runs only when
// no courses exist at all.
func seedSampleCatalog(db *gorm.DB) {
	var count int64
	db.Model(&courseModels.Course{}).Count(&count)
	if count > 0 {
		return
	}

	log.Println("Seeding sample catalog...")

	react := courseModels.Course{
		Title:       "React Fundamentals",
		Description: "Learn the basics of the React library for building modern web applications",
		Instructor:  "Anna Petrova",
		Price:       25000,
		Duration:    "8 weeks",
		Level:       courseModels.LevelBeginner,
	}
	js := courseModels.Course{
		Title:       "Advanced JavaScript",
		Description: "Deep dive into JavaScript: asynchrony, patterns, optimization",
		Instructor:  "Mikhail Sidorov",
		Price:       35000,
		Duration:    "12 weeks",
		Level:       courseModels.LevelAdvanced,
	}

	if err := db.Create(&react).Error; err != nil {
		log.Printf("Failed to seed courses: %v", err)
		return
	}
	if err := db.Create(&js).Error; err != nil {
		log.Printf("Failed to seed courses: %v", err)
		return
	}

	lessons := []courseModels.Lesson{
		{CourseID: react.ID, Title: "Introduction to React", Description: "What React is and why it exists", VideoURL: "https://www.youtube.com/embed/dGcsHMXbSOA", Duration: "15 min", OrderIndex: 1},
		{CourseID: react.ID, Title: "Components and Props", Description: "Building reusable components", VideoURL: "https://www.youtube.com/embed/Ke90Tje7VS0", Duration: "22 min", OrderIndex: 2},
		{CourseID: react.ID, Title: "State and Events", Description: "Making components interactive", VideoURL: "https://www.youtube.com/embed/O6P86uwfdR0", Duration: "18 min", OrderIndex: 3},
	}
	if err := db.Create(&lessons).Error; err != nil {
		log.Printf("Failed to seed lessons: %v", err)
	}

	test := courseModels.Test{
		CourseID:     react.ID,
		Title:        "React Fundamentals Final Test",
		PassingScore: 70,
		Questions: []courseModels.Question{
			{Prompt: "What is JSX?", Options: mustJSON([]string{"A templating language", "A syntax extension for JavaScript", "A CSS framework", "A build tool"}), CorrectAnswer: 1, OrderIndex: 1},
			{Prompt: "Which hook manages local component state?", Options: mustJSON([]string{"useState", "useEffect", "useContext", "useRef"}), CorrectAnswer: 0, OrderIndex: 2},
			{Prompt: "How are props passed to a component?", Options: mustJSON([]string{"Via global variables", "Via function return values", "As attributes in JSX", "Via CSS classes"}), CorrectAnswer: 2, OrderIndex: 3},
		},
	}
	if err := db.Create(&test).Error; err != nil {
		log.Printf("Failed to seed test: %v", err)
	}

	log.Println("Sample catalog seeded.")
}

func mustJSON(v interface{}) datatypes.JSON {
	b, err := json.Marshal(v)
	if err != nil {
		log.Fatalf("Failed to marshal seed data: %v", err)
	}
	return datatypes.JSON(b)
}
