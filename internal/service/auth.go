package service

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/onboardhq/manuald/internal/config"
	"github.com/onboardhq/manuald/internal/domain"
	"github.com/onboardhq/manuald/internal/domain/user"
	"github.com/onboardhq/manuald/internal/port/database"
)

// TokenClaims is the payload of a signed bearer token.
type TokenClaims struct {
	UserID   string    `json:"uid"`
	Email    string    `json:"email"`
	Name     string    `json:"name"`
	Role     user.Role `json:"role"`
	IssuedAt int64     `json:"iat"`
	Expiry   int64     `json:"exp"`
}

// AuthService handles login, bearer tokens and the admin bootstrap.
type AuthService struct {
	store  database.Store
	cfg    *config.Auth
	secret []byte
}

// NewAuthService creates a new authentication service.
func NewAuthService(store database.Store, cfg *config.Auth) *AuthService {
	return &AuthService{
		store:  store,
		cfg:    cfg,
		secret: []byte(cfg.Secret),
	}
}

// Register creates a new user with a bcrypt-hashed password.
func (s *AuthService) Register(ctx context.Context, req *user.CreateRequest) (*user.User, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrValidation, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cfg.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &user.User{
		ID:           uuid.NewString(),
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: string(hash),
		Role:         req.Role,
		Enabled:      true,
	}
	if err := s.store.CreateUser(ctx, u); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

// Login checks credentials and returns the user with a signed bearer token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*user.User, string, error) {
	u, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, "", domain.ErrUnauthorized
		}
		return nil, "", fmt.Errorf("lookup user: %w", err)
	}
	if !u.Enabled {
		return nil, "", domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, "", domain.ErrUnauthorized
	}

	token, err := s.signToken(u)
	if err != nil {
		return nil, "", fmt.Errorf("sign token: %w", err)
	}
	return u, token, nil
}

// ValidateToken verifies a bearer token and returns its claims.
func (s *AuthService) ValidateToken(tokenStr string) (*TokenClaims, error) {
	parts := strings.SplitN(tokenStr, ".", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("%w: malformed token", domain.ErrUnauthorized)
	}

	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(parts[0]))
	expectedSig := base64URLEncode(mac.Sum(nil))

	if !hmac.Equal([]byte(parts[1]), []byte(expectedSig)) {
		return nil, fmt.Errorf("%w: invalid signature", domain.ErrUnauthorized)
	}

	payload, err := base64URLDecode(parts[0])
	if err != nil {
		return nil, fmt.Errorf("%w: bad payload encoding", domain.ErrUnauthorized)
	}

	var claims TokenClaims
	if err := json.Unmarshal(payload, &claims); err != nil {
		return nil, fmt.Errorf("%w: bad payload", domain.ErrUnauthorized)
	}

	if time.Now().Unix() > claims.Expiry {
		return nil, fmt.Errorf("%w: token expired", domain.ErrUnauthorized)
	}

	return &claims, nil
}

// EnsureAdmin seeds the configured admin user when it does not exist. This
// is the service-startup equivalent of granting the manage capability to
// the administrator role on activation.
func (s *AuthService) EnsureAdmin(ctx context.Context) error {
	if s.cfg.AdminEmail == "" || s.cfg.AdminPassword == "" {
		return nil
	}

	if _, err := s.store.GetUserByEmail(ctx, s.cfg.AdminEmail); err == nil {
		return nil
	} else if !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("lookup admin: %w", err)
	}

	u, err := s.Register(ctx, &user.CreateRequest{
		Email:    s.cfg.AdminEmail,
		Name:     s.cfg.AdminName,
		Password: s.cfg.AdminPassword,
		Role:     user.RoleAdmin,
	})
	if err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}

	slog.Info("admin user created", "email", u.Email)
	return nil
}

func (s *AuthService) signToken(u *user.User) (string, error) {
	now := time.Now()
	claims := TokenClaims{
		UserID:   u.ID,
		Email:    u.Email,
		Name:     u.Name,
		Role:     u.Role,
		IssuedAt: now.Unix(),
		Expiry:   now.Add(s.cfg.TokenTTL).Unix(),
	}

	payload, err := json.Marshal(claims)
	if err != nil {
		return "", fmt.Errorf("marshal claims: %w", err)
	}

	payloadB64 := base64URLEncode(payload)
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(payloadB64))
	sig := base64URLEncode(mac.Sum(nil))

	return payloadB64 + "." + sig, nil
}

func base64URLEncode(b []byte) string {
	return base64.RawURLEncoding.EncodeToString(b)
}

func base64URLDecode(s string) ([]byte, error) {
	return base64.RawURLEncoding.DecodeString(s)
}
