package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskmanager/taskmanager/database/model"
	"github.com/taskmanager/taskmanager/web/table"
)

func TestListUsersPaging(t *testing.T) {
	ctx := setup(t)
	s := &UserService{}
	for i := 0; i < 5; i++ {
		createUser(t, ctx, s, fmt.Sprintf("user%d", i), fmt.Sprintf("user%d@sample.com", i), model.RoleUser)
	}

	page, err := s.ListUsers(ctx, table.PageState{Page: 1, PageSize: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 5, page.Total)
	require.Len(t, page.Users, 2)
	assert.Equal(t, "user2", page.Users[0].Name)
	assert.Equal(t, "user3", page.Users[1].Name)

	page, err = s.ListUsers(ctx, table.PageState{Page: 2, PageSize: 2})
	require.NoError(t, err)
	require.Len(t, page.Users, 1)
	assert.Equal(t, "user4", page.Users[0].Name)

	page, err = s.ListUsers(ctx, table.PageState{Page: 9, PageSize: 2})
	require.NoError(t, err)
	assert.Empty(t, page.Users)
	assert.NotNil(t, page.Users)
	assert.EqualValues(t, 5, page.Total)

	page, err = s.ListUsers(ctx, table.PageState{Page: -1})
	require.NoError(t, err)
	assert.Len(t, page.Users, 5, "invalid paging falls back to the defaults")
}

func TestInsertUser(t *testing.T) {
	ctx := setup(t)
	s := &UserService{}

	u, err := s.InsertUser(ctx, UserCreate{Name: " Hanako ", Email: "Hanako@Sample.com", Password: "Password123!"})
	require.NoError(t, err)
	assert.Equal(t, "Hanako", u.Name)
	assert.Equal(t, "hanako@sample.com", u.Email)
	assert.Equal(t, model.RoleUser, u.Role)
	assert.NotEmpty(t, u.Id)

	_, err = s.InsertUser(ctx, UserCreate{Name: "dup", Email: "hanako@sample.com", Password: "Password123!"})
	assert.ErrorIs(t, err, ErrEmailTaken)

	_, err = s.InsertUser(ctx, UserCreate{Name: "bad", Email: "bad@sample.com", Password: "Password123!", Role: "ROOT"})
	assert.ErrorIs(t, err, ErrInvalidRole)

	_, err = s.InsertUser(ctx, UserCreate{Name: "short", Email: "short@sample.com", Password: "short"})
	assert.Error(t, err)
	_, err = s.GetUser(ctx, "missing")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUpdateUser(t *testing.T) {
	ctx := setup(t)
	auth := NewAuthServiceWithAges(time.Hour, time.Hour)
	s := &UserService{Auth: auth}
	u := createUser(t, ctx, s, "taro", "taro@sample.com", model.RoleUser)
	other := createUser(t, ctx, s, "jiro", "jiro@sample.com", model.RoleUser)

	sess, err := auth.SignIn(ctx, "taro@sample.com", "Password123!", "", "")
	require.NoError(t, err)

	require.NoError(t, s.UpdateUser(ctx, UserUpdate{Id: u.Id, Name: "Taro", Email: "taro2@sample.com", Role: model.RoleAdmin}))
	got, err := s.GetUser(ctx, u.Id)
	require.NoError(t, err)
	assert.Equal(t, "Taro", got.Name)
	assert.Equal(t, "taro2@sample.com", got.Email)
	assert.Equal(t, model.RoleAdmin, got.Role)
	assert.True(t, got.UpdatedAt.After(u.UpdatedAt) || got.UpdatedAt.Equal(u.UpdatedAt))

	resolved, err := auth.GetSession(ctx, sess.Session.Token)
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, resolved.User.Role, "cached session sees the new role")

	assert.NoError(t, s.UpdateUser(ctx, UserUpdate{Name: "nobody", Email: "x@sample.com", Role: model.RoleUser}), "missing id is a no-op")
	assert.ErrorIs(t, s.UpdateUser(ctx, UserUpdate{Id: "missing", Name: "x", Email: "x@sample.com", Role: model.RoleUser}), ErrUserNotFound)
	assert.ErrorIs(t, s.UpdateUser(ctx, UserUpdate{Id: u.Id, Name: "x", Email: "x@sample.com", Role: "ROOT"}), ErrInvalidRole)
	assert.ErrorIs(t, s.UpdateUser(ctx, UserUpdate{Id: other.Id, Name: "jiro", Email: "taro2@sample.com", Role: model.RoleUser}), ErrEmailTaken)
}

func TestDeleteUser(t *testing.T) {
	ctx := setup(t)
	auth := NewAuthServiceWithAges(time.Hour, time.Hour)
	s := &UserService{Auth: auth}
	admin := createUser(t, ctx, s, "admin", "admin@sample.com", model.RoleAdmin)
	plain := createUser(t, ctx, s, "plain", "plain@sample.com", model.RoleUser)

	sess, err := auth.SignIn(ctx, "plain@sample.com", "Password123!", "", "")
	require.NoError(t, err)

	assert.ErrorIs(t, s.DeleteUser(ctx, plain, admin.Id), ErrAdminRequired)
	assert.ErrorIs(t, s.DeleteUser(ctx, nil, admin.Id), ErrAdminRequired)
	assert.ErrorIs(t, s.DeleteUser(ctx, admin, admin.Id), ErrDeleteSelf)

	require.NoError(t, s.DeleteUser(ctx, admin, plain.Id))
	_, err = s.GetUser(ctx, plain.Id)
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = auth.GetSession(ctx, sess.Session.Token)
	assert.ErrorIs(t, err, ErrSessionNotFound, "sessions go with the user")

	assert.ErrorIs(t, s.DeleteUser(ctx, admin, plain.Id), ErrUserNotFound)
}

func TestGetSelfIntroduction(t *testing.T) {
	ctx := setup(t)
	s := &UserService{}

	intro, err := s.GetSelfIntroduction(ctx)
	require.NoError(t, err)
	require.NotNil(t, intro)
	assert.NotEmpty(t, intro.Content)
}
