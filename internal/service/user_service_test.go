package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"wtwr-api/internal/apperr"
	"wtwr-api/internal/domain"
)

// fakeUserRepo implements repository.UserRepository in memory for testing.
type fakeUserRepo struct {
	byID    map[string]domain.User
	byEmail map[string]string
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byID:    make(map[string]domain.User),
		byEmail: make(map[string]string),
	}
}

func (f *fakeUserRepo) Init(ctx context.Context) error { return nil }

func (f *fakeUserRepo) Create(ctx context.Context, user *domain.User) error {
	if _, exists := f.byEmail[user.Email]; exists {
		return apperr.Duplicate("email")
	}
	f.byID[user.ID] = *user
	f.byEmail[user.Email] = user.ID
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	user, ok := f.byID[id]
	if !ok {
		return nil, apperr.NotFound("User not found")
	}
	return &user, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	id, ok := f.byEmail[email]
	if !ok {
		return nil, apperr.NotFound("User not found")
	}
	return f.GetByID(ctx, id)
}

func (f *fakeUserRepo) Update(ctx context.Context, user *domain.User) error {
	if _, ok := f.byID[user.ID]; !ok {
		return apperr.NotFound("User not found")
	}
	f.byID[user.ID] = *user
	return nil
}

func validRegisterInput() RegisterInput {
	return RegisterInput{
		Name:     "Ann",
		Avatar:   "http://x.com/a.png",
		Email:    "a@b.com",
		Password: "secret1",
	}
}

func TestUserService_RegisterStripsHash(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo)

	user, err := svc.Register(context.Background(), validRegisterInput())
	require.NoError(t, err)
	require.Empty(t, user.PasswordHash)
	require.Equal(t, "Ann", user.Name)

	stored := repo.byID[user.ID]
	require.NotEmpty(t, stored.PasswordHash)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secret1")))
}

func TestUserService_RegisterMissingFields(t *testing.T) {
	svc := NewUserService(newFakeUserRepo())

	_, err := svc.Register(context.Background(), RegisterInput{Name: "Ann", Password: "secret1"})
	requireKind(t, err, apperr.KindBadRequest)
	var appErr *apperr.Error
	require.True(t, errors.As(err, &appErr))
	require.Equal(t, "Missing required fields: avatar, email", appErr.Message)
}

func TestUserService_RegisterInvalidData(t *testing.T) {
	svc := NewUserService(newFakeUserRepo())

	in := validRegisterInput()
	in.Avatar = "not a url"
	_, err := svc.Register(context.Background(), in)
	requireKind(t, err, apperr.KindBadRequest)

	in = validRegisterInput()
	in.Name = "A"
	_, err = svc.Register(context.Background(), in)
	requireKind(t, err, apperr.KindBadRequest)

	in = validRegisterInput()
	in.About = strings.Repeat("x", 201)
	_, err = svc.Register(context.Background(), in)
	requireKind(t, err, apperr.KindBadRequest)
}

func TestUserService_RegisterDuplicateEmail(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo)

	first, err := svc.Register(context.Background(), validRegisterInput())
	require.NoError(t, err)

	in := validRegisterInput()
	in.Name = "Other Ann"
	_, err = svc.Register(context.Background(), in)
	requireKind(t, err, apperr.KindConflict)

	// the first account must be left unmodified
	stored, err := svc.GetByID(context.Background(), first.ID)
	require.NoError(t, err)
	require.Equal(t, "Ann", stored.Name)
}

func TestUserService_Authenticate(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo)

	registered, err := svc.Register(context.Background(), validRegisterInput())
	require.NoError(t, err)

	user, err := svc.Authenticate(context.Background(), "a@b.com", "secret1")
	require.NoError(t, err)
	require.Equal(t, registered.ID, user.ID)
	require.Empty(t, user.PasswordHash)

	_, err = svc.Authenticate(context.Background(), "a@b.com", "wrong")
	requireKind(t, err, apperr.KindUnauthenticated)

	// unknown email must be indistinguishable from a wrong password
	_, err = svc.Authenticate(context.Background(), "nobody@b.com", "secret1")
	requireKind(t, err, apperr.KindUnauthenticated)
	var appErr *apperr.Error
	require.True(t, errors.As(err, &appErr))
	require.Equal(t, "Incorrect email or password", appErr.Message)

	_, err = svc.Authenticate(context.Background(), "", "")
	requireKind(t, err, apperr.KindBadRequest)
}

func TestUserService_UpdateProfile(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo)

	registered, err := svc.Register(context.Background(), validRegisterInput())
	require.NoError(t, err)

	newName := "Annie"
	updated, err := svc.UpdateProfile(context.Background(), registered.ID, ProfileUpdate{Name: &newName})
	require.NoError(t, err)
	require.Equal(t, "Annie", updated.Name)
	require.Equal(t, "http://x.com/a.png", updated.Avatar)

	badAvatar := "nope"
	_, err = svc.UpdateProfile(context.Background(), registered.ID, ProfileUpdate{Avatar: &badAvatar})
	requireKind(t, err, apperr.KindBadRequest)

	_, err = svc.UpdateProfile(context.Background(), "missing-user", ProfileUpdate{Name: &newName})
	requireKind(t, err, apperr.KindNotFound)
}
