package service

import (
	"context"
	"testing"

	"fraisreels/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeUserRepo struct {
	users []model.User
}

func (f *fakeUserRepo) Create(ctx context.Context, user *model.User) error {
	user.ID = uuid.New()
	f.users = append(f.users, *user)
	return nil
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	for i := range f.users {
		if f.users[i].ID == id {
			return &f.users[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	for i := range f.users {
		if f.users[i].Username == username {
			return &f.users[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(f.users)), nil
}

func TestUserService_Register(t *testing.T) {
	repo := &fakeUserRepo{}
	svc := NewUserService(repo)
	ctx := context.Background()

	first, err := svc.Register(ctx, RegisterUserRequest{Username: "alice", Email: "alice@example.com", Password: "s3cret!"})
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, first.Role, "first account bootstraps as admin")

	second, err := svc.Register(ctx, RegisterUserRequest{Username: "bob", Email: "bob@example.com", Password: "s3cret!"})
	require.NoError(t, err)
	assert.Equal(t, model.RoleMember, second.Role)

	_, err = svc.Register(ctx, RegisterUserRequest{Username: "alice", Email: "other@example.com", Password: "s3cret!"})
	assert.Error(t, err, "duplicate username rejected")

	stored, err := repo.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret!", stored.Password, "password is stored hashed")
}

func TestUserService_Login(t *testing.T) {
	repo := &fakeUserRepo{}
	svc := NewUserService(repo)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterUserRequest{Username: "alice", Email: "alice@example.com", Password: "s3cret!"})
	require.NoError(t, err)

	token, err := svc.Login(ctx, LoginUserRequest{Username: "alice", Password: "s3cret!"})
	require.NoError(t, err)
	assert.NotEmpty(t, token.Token)

	_, err = svc.Login(ctx, LoginUserRequest{Username: "alice", Password: "wrong"})
	assert.Error(t, err)

	_, err = svc.Login(ctx, LoginUserRequest{Username: "nobody", Password: "s3cret!"})
	assert.Error(t, err)
}
