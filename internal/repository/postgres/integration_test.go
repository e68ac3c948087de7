//go:build integration

package postgres_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/dtroode/otp-signup/internal/model"
	repo "github.com/dtroode/otp-signup/internal/repository/postgres"
)

var dsn string

func TestMain(m *testing.M) {
	ctx := context.Background()
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "postgres:15-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "postgres",
				"POSTGRES_PASSWORD": "password",
				"POSTGRES_DB":       "signup_test",
			},
			WaitingFor: wait.ForListeningPort("5432/tcp").WithStartupTimeout(2 * time.Minute),
		},
		Started: true,
	})
	if err != nil {
		panic(err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		panic(err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		panic(err)
	}
	dsn = fmt.Sprintf("postgres://postgres:password@%s:%s/signup_test?sslmode=disable", host, port.Port())

	code := m.Run()
	_ = container.Terminate(ctx)
	os.Exit(code)
}

func TestUserRepository_Integration(t *testing.T) {
	ctx := context.Background()
	conn, err := repo.NewConnection(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	require.NoError(t, conn.Ping(ctx))

	ur := repo.NewUserRepository(conn.DB)
	u := model.User{
		ID:           uuid.New(),
		Name:         "Ada",
		Email:        "ada@example.com",
		Mobile:       "+15550100",
		PasswordHash: "$2a$10$hash",
		City:         "London",
		Age:          36,
		FileName:     "profilePic-1-0a1b2c3d.jpg",
		OrgName:      "me.jpg",
		FilePath:     "/srv/uploads/profilePic-1-0a1b2c3d.jpg",
		Role:         "user",
		Token:        "auth.token.value",
	}

	saved, err := ur.Create(ctx, u)
	require.NoError(t, err)
	require.Equal(t, u.ID, saved.ID)
	require.False(t, saved.CreatedAt.IsZero())

	t.Run("same email twice", func(t *testing.T) {
		dup := u
		dup.ID = uuid.New()
		_, err := ur.Create(ctx, dup)
		require.NoError(t, err)

		var n int
		require.NoError(t, conn.DB.QueryRowContext(ctx, `SELECT count(*) FROM users WHERE email = $1`, u.Email).Scan(&n))
		require.Equal(t, 2, n)
	})

	t.Run("migrations are idempotent", func(t *testing.T) {
		again, err := repo.NewConnection(ctx, dsn)
		require.NoError(t, err)
		require.NoError(t, again.Close())
	})
}
