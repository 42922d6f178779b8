package storage

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/magabrotheeeer/novelamania/internal/migrations"
	"github.com/magabrotheeeer/novelamania/internal/models"
)

// TestDataFactory создаёт тестовые данные напрямую через Storage.
type TestDataFactory struct {
	storage *Storage
}

func NewTestDataFactory(storage *Storage) *TestDataFactory {
	return &TestDataFactory{storage: storage}
}

func (f *TestDataFactory) CreateUser(t *testing.T, contact string, role models.Role) string {
	t.Helper()
	uid, err := f.storage.CreateUser(context.Background(), models.User{
		FirstName:    "Ana",
		LastName:     "Macuácua",
		Gender:       "feminino",
		Contact:      contact,
		PasswordHash: "$2a$10$hash",
		Role:         role,
		Status:       models.StatusActive,
	})
	require.NoError(t, err)
	return uid
}

func (f *TestDataFactory) CreatePackage(t *testing.T, name string, days int) string {
	t.Helper()
	id, err := f.storage.CreatePackage(context.Background(), models.Package{
		Name:           name,
		DurationInDays: days,
		Price:          250,
	})
	require.NoError(t, err)
	return id
}

func (f *TestDataFactory) CreateSession(t *testing.T, userUID, token string, createdAt time.Time) string {
	t.Helper()
	id, err := f.storage.CreateSession(context.Background(), models.Session{
		UserUID:   userUID,
		Token:     token,
		CreatedAt: createdAt,
	})
	require.NoError(t, err)
	return id
}

func setupTestDatabase(t *testing.T) *Storage {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	ctx := context.Background()

	port := nat.Port("5432/tcp")
	req := testcontainers.ContainerRequest{
		Image:        "postgres:15-alpine",
		ExposedPorts: []string{string(port)},
		Env: map[string]string{
			"POSTGRES_DB":       "testdb",
			"POSTGRES_USER":     "testuser",
			"POSTGRES_PASSWORD": "testpass",
		},
		WaitingFor: wait.ForAll(
			wait.ForListeningPort(port),
			wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
		).WithDeadline(3 * time.Minute),
	}

	postgresContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err, "failed to start container")
	t.Cleanup(func() {
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	})

	host, err := postgresContainer.Host(ctx)
	require.NoError(t, err)
	mapped, err := postgresContainer.MappedPort(ctx, port)
	require.NoError(t, err, "Failed to get port")

	connStr := fmt.Sprintf("postgres://testuser:testpass@%s:%s/testdb?sslmode=disable", host, mapped.Port())

	// Пробуем подключиться несколько раз с ретраями
	var storage *Storage
	for range 10 {
		storage, err = New(connStr)
		if err == nil {
			break
		}
		time.Sleep(time.Second)
	}
	require.NoError(t, err, "Failed to create storage after retries")
	t.Cleanup(func() { _ = storage.Close() })

	migrationsPath, err := filepath.Abs("../../migrations")
	require.NoError(t, err)
	require.NoError(t, migrations.Run(storage.DB, migrationsPath))

	return storage
}
