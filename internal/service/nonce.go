package service

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/onboardhq/manuald/internal/config"
	"github.com/onboardhq/manuald/internal/domain"
	"github.com/onboardhq/manuald/internal/port/cache"
)

// Actions the nonce service issues tokens for. A token is bound to exactly
// one action and is rejected everywhere else.
const (
	ActionReorderSections = "reorder_sections"
	ActionImportSections  = "import_sections"
)

// noncePayload is the signed body of a verification token.
type noncePayload struct {
	Action string `json:"action"`
	UserID string `json:"uid"`
	Nonce  string `json:"nonce"`
	Expiry int64  `json:"exp"`
}

// NonceService issues and verifies single-use, action-scoped verification
// tokens. Tokens are HMAC-signed; consumption is tracked in the cache so a
// token cannot be replayed within its lifetime.
type NonceService struct {
	cache  cache.Cache
	secret []byte
	ttl    time.Duration
}

// NewNonceService creates a nonce service from the auth config.
func NewNonceService(c cache.Cache, cfg *config.Auth) *NonceService {
	return &NonceService{
		cache:  c,
		secret: []byte(cfg.Secret),
		ttl:    cfg.NonceTTL,
	}
}

// Issue creates a token bound to the given action and user.
func (s *NonceService) Issue(action, userID string) (string, error) {
	payload := noncePayload{
		Action: action,
		UserID: userID,
		Nonce:  uuid.NewString(),
		Expiry: time.Now().Add(s.ttl).Unix(),
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal nonce: %w", err)
	}

	body := base64URLEncode(data)
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(body))
	sig := base64URLEncode(mac.Sum(nil))

	return body + "." + sig, nil
}

// Consume verifies a token for the given action and user and marks it used.
// A second Consume of the same token fails even when the signature is valid.
func (s *NonceService) Consume(ctx context.Context, token, action, userID string) error {
	body, sig, ok := splitToken(token)
	if !ok {
		return fmt.Errorf("%w: malformed verification token", domain.ErrUnauthorized)
	}

	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(body))
	expectedSig := base64URLEncode(mac.Sum(nil))
	if !hmac.Equal([]byte(sig), []byte(expectedSig)) {
		return fmt.Errorf("%w: invalid verification token", domain.ErrUnauthorized)
	}

	data, err := base64URLDecode(body)
	if err != nil {
		return fmt.Errorf("%w: invalid verification token", domain.ErrUnauthorized)
	}

	var payload noncePayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return fmt.Errorf("%w: invalid verification token", domain.ErrUnauthorized)
	}

	now := time.Now()
	if now.Unix() > payload.Expiry {
		return fmt.Errorf("%w: verification token expired", domain.ErrUnauthorized)
	}
	if payload.Action != action {
		return fmt.Errorf("%w: verification token scoped to another action", domain.ErrUnauthorized)
	}
	if payload.UserID != userID {
		return fmt.Errorf("%w: verification token issued to another user", domain.ErrUnauthorized)
	}

	usedKey := "nonce_used:" + payload.Nonce
	if _, found, err := s.cache.Get(ctx, usedKey); err != nil {
		return fmt.Errorf("check nonce: %w", err)
	} else if found {
		return fmt.Errorf("%w: verification token already used", domain.ErrUnauthorized)
	}

	remaining := time.Until(time.Unix(payload.Expiry, 0))
	if err := s.cache.Set(ctx, usedKey, []byte{1}, remaining); err != nil {
		return fmt.Errorf("record nonce: %w", err)
	}
	return nil
}

func splitToken(token string) (body, sig string, ok bool) {
	parts := strings.SplitN(token, ".", 2)
	if len(parts) != 2 {
		return "", "", false
	}
	return parts[0], parts[1], true
}
