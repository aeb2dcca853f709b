package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/taskmanager/taskmanager/config"
	"github.com/taskmanager/taskmanager/database"
	"github.com/taskmanager/taskmanager/database/model"
)

func setup(t *testing.T) context.Context {
	t.Helper()
	cfg := config.NewSQLiteConfig(filepath.Join(t.TempDir(), "service.db"))
	require.NoError(t, database.InitDB(cfg))
	t.Cleanup(func() { _ = database.CloseDB() })
	return context.Background()
}

func createUser(t *testing.T, ctx context.Context, s *UserService, name, email string, role model.Role) *model.User {
	t.Helper()
	u, err := s.InsertUser(ctx, UserCreate{Name: name, Email: email, Password: "Password123!", Role: role})
	require.NoError(t, err)
	// created_at orders the users list
	time.Sleep(2 * time.Millisecond)
	return u
}
