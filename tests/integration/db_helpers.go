package integration

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/campusportal/backend/internal/database"
	"github.com/campusportal/backend/internal/models"
	"github.com/campusportal/backend/internal/repositories"
	"github.com/campusportal/backend/migrations"
	pkgauth "github.com/campusportal/backend/pkg/auth"
)

// TestDB manages a PostgreSQL testcontainer and database operations
type TestDB struct {
	Container  testcontainers.Container
	ConnString string
	Pool       *pgxpool.Pool
	DB         *database.DB
}

// SetupTestDatabase creates a PostgreSQL testcontainer, runs migrations, returns TestDB
func SetupTestDatabase(ctx context.Context) (*TestDB, error) {
	container, err := postgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:16-alpine"),
		postgres.WithDatabase("college_portal"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to start postgres container: %w", err)
	}

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		container.Terminate(ctx)
		return nil, fmt.Errorf("failed to get connection string: %w", err)
	}

	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		container.Terminate(ctx)
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		container.Terminate(ctx)
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := runMigrations(pool); err != nil {
		pool.Close()
		container.Terminate(ctx)
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	dbWrapper := &database.DB{
		Pool: pool,
	}

	return &TestDB{
		Container:  container,
		ConnString: connStr,
		Pool:       pool,
		DB:         dbWrapper,
	}, nil
}

// runMigrations applies the embedded goose migrations over a stdlib adapter
func runMigrations(pool *pgxpool.Pool) error {
	sqlDB := stdlib.OpenDB(*pool.Config().ConnConfig)
	defer sqlDB.Close()

	return migrations.Migrate(sqlDB)
}

// Teardown stops the container and closes the connection pool
func (db *TestDB) Teardown(ctx context.Context) error {
	if db.Pool != nil {
		db.Pool.Close()
	}
	if db.Container != nil {
		return db.Container.Terminate(ctx)
	}
	return nil
}

// CleanupTables truncates all tables for test isolation
func (db *TestDB) CleanupTables(ctx context.Context) error {
	tables := []string{
		"contacts",
		"users",
	}

	for _, table := range tables {
		if _, err := db.Pool.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table)); err != nil {
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}

	return nil
}

// SeedUser inserts a user with a hashed password directly into the database
func SeedUser(ctx context.Context, pool *pgxpool.Pool, userType, fullName, cid, email, password string, active bool) (*models.User, error) {
	hashedPassword, err := pkgauth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	query := `
		INSERT INTO users (user_type, full_name, cid, email, phone, password_hash, is_active)
		VALUES ($1, $2, $3, $4, '', $5, $6)
		RETURNING id, user_type, full_name, cid, email, phone, password_hash, is_active, created_at
	`

	var user models.User
	err = pool.QueryRow(ctx, query, userType, fullName, cid, email, hashedPassword, active).Scan(
		&user.ID,
		&user.UserType,
		&user.FullName,
		&user.CID,
		&user.Email,
		&user.Phone,
		&user.PasswordHash,
		&user.IsActive,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}

	return &user, nil
}

// SeedAdmin inserts an active admin account
func SeedAdmin(ctx context.Context, pool *pgxpool.Pool, email, password string) (*models.User, error) {
	return SeedUser(ctx, pool, models.RoleAdmin, "Portal Administrator", "ADMIN-"+email, email, password, true)
}

// SeedContact inserts a contact message with the given status
func SeedContact(ctx context.Context, pool *pgxpool.Pool, name, email, subject, message, status string) (*models.Contact, error) {
	query := `
		INSERT INTO contacts (name, email, subject, message, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, name, email, subject, message, status, created_at
	`

	var contact models.Contact
	err := pool.QueryRow(ctx, query, name, email, subject, message, status).Scan(
		&contact.ID,
		&contact.Name,
		&contact.Email,
		&contact.Subject,
		&contact.Message,
		&contact.Status,
		&contact.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert contact: %w", err)
	}

	return &contact, nil
}

// InitializeRepositories creates the repository instances from the database wrapper
func InitializeRepositories(db *database.DB) (*repositories.UserRepository, *repositories.ContactRepository) {
	return repositories.NewUserRepository(db), repositories.NewContactRepository(db)
}
