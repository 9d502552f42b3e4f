package auth

import (
	"context"
	"database/sql"
	"time"

	"github.com/andersbekkevard/librarium-app-sub001/pkg/errcodes"
	"github.com/andersbekkevard/librarium-app-sub001/pkg/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"
	"golang.org/x/crypto/bcrypt"
)

const (
	// BcryptCost is the cost factor for bcrypt hashing.
	BcryptCost = 12
	// TokenExpiry is how long JWT tokens are valid.
	TokenExpiry = 7 * 24 * time.Hour // 7 days
)

// JWTClaims represents the claims in a JWT token.
type JWTClaims struct {
	UserID   int    `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Service handles authentication operations.
type Service struct {
	db        *bun.DB
	jwtSecret []byte
}

// NewService creates a new auth service.
func NewService(db *bun.DB, jwtSecret string) *Service {
	return &Service{
		db:        db,
		jwtSecret: []byte(jwtSecret),
	}
}

// CountUsers returns the total number of users.
func (s *Service) CountUsers(ctx context.Context) (int, error) {
	count, err := s.db.NewSelect().Model((*models.User)(nil)).Count(ctx)
	if err != nil {
		return 0, errors.WithStack(err)
	}
	return count, nil
}

// Authenticate validates credentials and returns the user if valid. A
// successful sign-in ensures the user's profile row exists and stamps
// last_signed_in_at.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user := &models.User{}
	err := s.db.NewSelect().
		Model(user).
		Relation("Profile").
		Where("u.username = ? COLLATE NOCASE", username).
		Where("u.is_active = ?", true).
		Scan(ctx)
	if err != nil {
		return nil, errcodes.Unauthorized("Invalid username or password")
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password))
	if err != nil {
		return nil, errcodes.Unauthorized("Invalid username or password")
	}

	if err := s.recordSignIn(ctx, user); err != nil {
		return nil, errors.WithStack(err)
	}

	return user, nil
}

// recordSignIn creates the user's profile on first sign-in, and updates
// last_signed_in_at on every subsequent one.
func (s *Service) recordSignIn(ctx context.Context, user *models.User) error {
	now := time.Now()

	if user.Profile == nil {
		profile := &models.UserProfile{
			UserID:         user.ID,
			DisplayName:    user.Username,
			CreatedAt:      now,
			UpdatedAt:      now,
			LastSignedInAt: now,
		}
		_, err := s.db.NewInsert().Model(profile).Returning("*").Exec(ctx)
		if err != nil {
			return errors.WithStack(err)
		}
		user.Profile = profile
		return nil
	}

	user.Profile.LastSignedInAt = now
	_, err := s.db.NewUpdate().
		Model(user.Profile).
		Column("last_signed_in_at").
		WherePK().
		Exec(ctx)
	return errors.WithStack(err)
}

// GenerateToken creates a new JWT token for the user.
func (s *Service) GenerateToken(user *models.User) (string, error) {
	now := time.Now()
	claims := JWTClaims{
		UserID:   user.ID,
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenExpiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", errors.WithStack(err)
	}

	return signedToken, nil
}

// ValidateToken validates a JWT token and returns the claims.
func (s *Service) ValidateToken(tokenString string) (*JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	claims, ok := token.Claims.(*JWTClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}

// GetUserByID retrieves an active user by ID with their profile.
func (s *Service) GetUserByID(ctx context.Context, id int) (*models.User, error) {
	user := &models.User{}
	err := s.db.NewSelect().
		Model(user).
		Relation("Profile").
		Where("u.id = ?", id).
		Where("u.is_active = ?", true).
		Scan(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return user, nil
}

// CreateFirstUser creates the initial account during setup. Setup is only
// available while no users exist.
func (s *Service) CreateFirstUser(ctx context.Context, username string, email *string, password string) (*models.User, error) {
	count, err := s.CountUsers(ctx)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, errcodes.Forbidden("Setup has already been completed")
	}

	hashedPassword, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	err = s.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		user := &models.User{
			Username:     username,
			Email:        email,
			PasswordHash: hashedPassword,
			IsActive:     true,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		_, err := tx.NewInsert().Model(user).Returning("*").Exec(ctx)
		if err != nil {
			return errors.WithStack(err)
		}

		// First sign-in happens implicitly during setup.
		profile := &models.UserProfile{
			UserID:         user.ID,
			DisplayName:    username,
			CreatedAt:      now,
			UpdatedAt:      now,
			LastSignedInAt: now,
		}
		_, err = tx.NewInsert().Model(profile).Exec(ctx)
		return errors.WithStack(err)
	})
	if err != nil {
		return nil, err
	}

	// Reload with relations.
	user := &models.User{}
	err = s.db.NewSelect().
		Model(user).
		Relation("Profile").
		Where("u.username = ? COLLATE NOCASE", username).
		Scan(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return user, nil
}

// HashPassword hashes a password using bcrypt.
func HashPassword(password string) (string, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", errors.WithStack(err)
	}
	return string(hashedPassword), nil
}

// CheckPassword compares a password with a hash.
func CheckPassword(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
