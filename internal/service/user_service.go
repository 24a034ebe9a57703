package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"wtwr-api/internal/apperr"
	"wtwr-api/internal/domain"
	"wtwr-api/internal/repository"
)

// UserService describes account lifecycle operations.
type UserService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID string, upd ProfileUpdate) (*domain.User, error)
}

// RegisterInput carries the fields accepted at signup.
type RegisterInput struct {
	Name     string
	About    string
	Avatar   string
	Email    string
	Password string
}

// ProfileUpdate carries the profile fields a holder may change. Nil means
// leave the field as is.
type ProfileUpdate struct {
	Name   *string
	Avatar *string
}

type userService struct {
	users repository.UserRepository
}

func NewUserService(users repository.UserRepository) UserService {
	return &userService{users: users}
}

func (s *userService) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Avatar = strings.TrimSpace(in.Avatar)
	in.Email = strings.TrimSpace(in.Email)

	var missing []string
	if in.Name == "" {
		missing = append(missing, "name")
	}
	if in.Avatar == "" {
		missing = append(missing, "avatar")
	}
	if in.Email == "" {
		missing = append(missing, "email")
	}
	if in.Password == "" {
		missing = append(missing, "password")
	}
	if len(missing) > 0 {
		return nil, apperr.MissingFields(missing...)
	}

	if !validNameLength(in.Name) || len(in.About) > 200 || !isURL(in.Avatar) {
		return nil, apperr.BadRequest("Invalid data")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		Name:         in.Name,
		About:        in.About,
		Avatar:       in.Avatar,
		Email:        in.Email,
		PasswordHash: string(hash),
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	return sanitizeUser(user), nil
}

func (s *userService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	email = strings.TrimSpace(email)

	var missing []string
	if email == "" {
		missing = append(missing, "email")
	}
	if password == "" {
		missing = append(missing, "password")
	}
	if len(missing) > 0 {
		return nil, apperr.MissingFields(missing...)
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		var appErr *apperr.Error
		if errors.As(err, &appErr) && appErr.Kind == apperr.KindNotFound {
			return nil, apperr.Unauthenticated("Incorrect email or password")
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperr.Unauthenticated("Incorrect email or password")
	}

	return sanitizeUser(user), nil
}

func (s *userService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return sanitizeUser(user), nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID string, upd ProfileUpdate) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if upd.Name != nil {
		name := strings.TrimSpace(*upd.Name)
		if !validNameLength(name) {
			return nil, apperr.BadRequest("Invalid data")
		}
		user.Name = name
	}
	if upd.Avatar != nil {
		avatar := strings.TrimSpace(*upd.Avatar)
		if !isURL(avatar) {
			return nil, apperr.BadRequest("Invalid data")
		}
		user.Avatar = avatar
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	return sanitizeUser(user), nil
}

// sanitizeUser strips the password hash; it must never reach a response.
func sanitizeUser(user *domain.User) *domain.User {
	if user == nil {
		return nil
	}
	return &domain.User{
		ID:     user.ID,
		Name:   user.Name,
		About:  user.About,
		Avatar: user.Avatar,
		Email:  user.Email,
	}
}
