package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Davidayo16/HOD-app/internal/model"
	"github.com/Davidayo16/HOD-app/internal/repository"
	"github.com/Davidayo16/HOD-app/internal/schedule"
)

const minPasswordLen = 6

// IdentityService is the authenticator: it registers accounts, verifies
// credentials and turns bearer tokens into a schedule.Caller. The appointment
// core trusts the Caller it produces without re-validation.
type IdentityService struct {
	users    repository.UserRepository
	secret   []byte
	tokenTTL time.Duration
}

func NewIdentityService(users repository.UserRepository, secret []byte, tokenTTL time.Duration) *IdentityService {
	return &IdentityService{
		users:    users,
		secret:   secret,
		tokenTTL: tokenTTL,
	}
}

// Claims carried by issued tokens.
type Claims struct {
	Role      string `json:"role"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	StudentID string `json:"student_id,omitempty"`
	jwt.RegisteredClaims
}

type RegisterInput struct {
	Name      string
	Email     string
	Password  string
	StudentID string
	Role      model.UserRole
}

// Register creates a new account. Only one HOD account may exist.
func (s *IdentityService) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.TrimSpace(in.Email)

	if name == "" {
		return nil, schedule.E(schedule.KindValidation, "name is required")
	}
	if email == "" || !strings.Contains(email, "@") {
		return nil, schedule.E(schedule.KindValidation, "a valid email is required")
	}
	if len(in.Password) < minPasswordLen {
		return nil, schedule.E(schedule.KindValidation, "password must be at least 6 characters")
	}

	role := in.Role
	if role == "" {
		role = model.UserRoleStudent
	}
	if role != model.UserRoleStudent && role != model.UserRoleHOD {
		return nil, schedule.E(schedule.KindValidation, "role must be student or hod")
	}
	if role == model.UserRoleHOD {
		n, err := s.users.CountByRole(ctx, model.UserRoleHOD)
		if err != nil {
			return nil, schedule.WrapStore("count hod accounts", err)
		}
		if n > 0 {
			return nil, schedule.E(schedule.KindValidation, "an HOD account already exists")
		}
	}

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, schedule.E(schedule.KindValidation, "email is already registered")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, schedule.WrapStore("look up email", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, schedule.WrapStore("hash password", err)
	}

	u := &model.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		StudentID:    strings.TrimSpace(in.StudentID),
		Role:         role,
	}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, schedule.E(schedule.KindValidation, "email is already registered")
		}
		return nil, schedule.WrapStore("create user", err)
	}
	return u, nil
}

// Login verifies credentials and issues a signed token.
func (s *IdentityService) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, schedule.E(schedule.KindAuthentication, "invalid email or password")
		}
		return "", nil, schedule.WrapStore("look up user", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return "", nil, schedule.E(schedule.KindAuthentication, "invalid email or password")
	}

	token, err := s.IssueToken(u)
	if err != nil {
		return "", nil, err
	}
	return token, u, nil
}

// IssueToken signs a token for the given account.
func (s *IdentityService) IssueToken(u *model.User) (string, error) {
	now := time.Now()
	claims := Claims{
		Role:      string(u.Role),
		Name:      u.Name,
		Email:     u.Email,
		StudentID: u.StudentID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", schedule.WrapStore("sign token", err)
	}
	return signed, nil
}

// Authenticate parses and verifies a bearer token and returns the caller
// identity it asserts.
func (s *IdentityService) Authenticate(_ context.Context, tokenString string) (schedule.Caller, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return schedule.Caller{}, schedule.E(schedule.KindAuthentication, "invalid or expired token")
	}

	claims, ok := token.Claims.(*Claims)
	if !ok {
		return schedule.Caller{}, schedule.E(schedule.KindAuthentication, "invalid token claims")
	}

	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return schedule.Caller{}, schedule.E(schedule.KindAuthentication, "invalid token subject")
	}

	return schedule.Caller{
		ID:        id,
		Role:      schedule.Role(claims.Role),
		Name:      claims.Name,
		Email:     claims.Email,
		StudentID: claims.StudentID,
	}, nil
}

// Profile returns the stored account for a caller.
func (s *IdentityService) Profile(ctx context.Context, caller schedule.Caller) (*model.User, error) {
	u, err := s.users.FindByID(ctx, caller.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, schedule.E(schedule.KindNotFound, "user not found")
		}
		return nil, schedule.WrapStore("load user", err)
	}
	return u, nil
}
