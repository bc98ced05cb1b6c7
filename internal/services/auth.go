package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/thetarnished/academy-backend/internal/apierr"
	"github.com/thetarnished/academy-backend/internal/logger"
	"github.com/thetarnished/academy-backend/internal/repos"
	"github.com/thetarnished/academy-backend/internal/requestdata"
	"github.com/thetarnished/academy-backend/internal/types"
)

type RegisterInput struct {
	Email          string
	Password       string
	FirstName      string
	LastName       string
	Role           string
	Bio            string
	Specialization string
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*types.User, error)
	Login(ctx context.Context, email, password string) (*types.User, string, error)
	SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
	GetAccessTTL() time.Duration
}

type authService struct {
	db            *gorm.DB
	log           *logger.Logger
	userRepo      repos.UserRepo
	professorRepo repos.ProfessorRepo
	jwtSecretKey  string
	accessTTL     time.Duration
}

func NewAuthService(
	db *gorm.DB,
	log *logger.Logger,
	userRepo repos.UserRepo,
	professorRepo repos.ProfessorRepo,
	jwtSecretKey string,
	accessTTL time.Duration,
) AuthService {
	return &authService{
		db:            db,
		log:           log.With("service", "AuthService"),
		userRepo:      userRepo,
		professorRepo: professorRepo,
		jwtSecretKey:  jwtSecretKey,
		accessTTL:     accessTTL,
	}
}

func (as *authService) Register(ctx context.Context, in RegisterInput) (*types.User, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || in.Password == "" {
		return nil, apierr.Invalid("missing_credentials", errors.New("email and password are required"))
	}
	role := in.Role
	if role == "" {
		role = types.RoleStudent
	}
	if !types.ValidRole(role) {
		return nil, apierr.Invalid("invalid_role", fmt.Errorf("unknown role %q", role))
	}

	// Early exit for the common case; the unique constraint on email stays
	// the authoritative check at insert time.
	exists, err := as.userRepo.EmailExists(ctx, nil, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, apierr.Conflict("email_taken", fmt.Errorf("email %s already registered", email))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &types.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
	}

	err = as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, cErr := as.userRepo.Create(ctx, tx, user); cErr != nil {
			if errors.Is(cErr, gorm.ErrDuplicatedKey) {
				return apierr.Conflict("email_taken", fmt.Errorf("email %s already registered", email))
			}
			return fmt.Errorf("failed to create user: %w", cErr)
		}
		if role == types.RoleProfessor {
			professor := &types.Professor{
				ID:             uuid.New(),
				UserID:         user.ID,
				Bio:            strings.TrimSpace(in.Bio),
				Specialization: strings.TrimSpace(in.Specialization),
			}
			if _, pErr := as.professorRepo.Create(ctx, tx, professor); pErr != nil {
				return fmt.Errorf("failed to create professor profile: %w", pErr)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	as.log.Info("user registered", "user_id", user.ID, "role", user.Role)
	return user, nil
}

// Login verifies the password before the ban flag, so a banned caller with
// the wrong password still sees the generic 401.
func (as *authService) Login(ctx context.Context, email, password string) (*types.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := as.userRepo.GetByEmail(ctx, nil, email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return nil, "", apierr.Unauthorized("invalid_credentials", errors.New("invalid email or password"))
	}
	if cErr := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); cErr != nil {
		return nil, "", apierr.Unauthorized("invalid_credentials", errors.New("invalid email or password"))
	}
	if user.Banned {
		reason := "account banned"
		if user.BannedReason != nil && *user.BannedReason != "" {
			reason = *user.BannedReason
		}
		return nil, "", apierr.Forbidden("banned", errors.New(reason))
	}

	token, err := as.generateAccessToken(user)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate access token: %w", err)
	}
	return user, token, nil
}

func (as *authService) generateAccessToken(user *types.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  user.ID.String(),
		"role": user.Role,
		"iat":  now.Unix(),
		"exp":  now.Add(as.accessTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(as.jwtSecretKey))
}

// SetContextFromToken validates the bearer token and attaches the caller's
// identity to the context for the rest of the request.
func (as *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(as.jwtSecretKey), nil
	})
	if err != nil || !token.Valid {
		return ctx, apierr.Unauthorized("invalid_token", errors.New("invalid or expired token"))
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return ctx, apierr.Unauthorized("invalid_token", errors.New("malformed token claims"))
	}
	sub, _ := claims["sub"].(string)
	userID, parseErr := uuid.Parse(sub)
	if parseErr != nil {
		return ctx, apierr.Unauthorized("invalid_token", errors.New("malformed token subject"))
	}
	user, uErr := as.userRepo.GetByID(ctx, nil, userID)
	if uErr != nil {
		return ctx, fmt.Errorf("failed to load token user: %w", uErr)
	}
	if user == nil {
		return ctx, apierr.Unauthorized("invalid_token", errors.New("token user no longer exists"))
	}
	if user.Banned {
		return ctx, apierr.Forbidden("banned", errors.New("account banned"))
	}
	// Role comes from the stored row, not the claim, so a stale token cannot
	// keep a revoked role alive.
	return requestdata.WithRequestData(ctx, &requestdata.RequestData{
		UserID: user.ID,
		Role:   user.Role,
	}), nil
}

func (as *authService) GetAccessTTL() time.Duration {
	return as.accessTTL
}
