package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/onboardhq/manuald/internal/domain/flash"
	"github.com/onboardhq/manuald/internal/port/cache"
)

// flashKey is the fixed slot the import flow writes its one-shot message to.
// There is deliberately a single slot, not one per user: simultaneous admin
// imports race on it last-writer-wins.
const flashKey = "import_message"

// FlashService stores the post-import notification in a TTL'd cache slot.
type FlashService struct {
	cache cache.Cache
	ttl   time.Duration
}

// NewFlashService creates a flash service with the given message TTL.
func NewFlashService(c cache.Cache, ttl time.Duration) *FlashService {
	return &FlashService{cache: c, ttl: ttl}
}

// Set writes the message, replacing any previous one. The message expires
// after the configured TTL if never read.
func (s *FlashService) Set(ctx context.Context, kind flash.Kind, text string) error {
	data, err := json.Marshal(flash.Message{Kind: kind, Text: text})
	if err != nil {
		return fmt.Errorf("marshal flash message: %w", err)
	}
	if err := s.cache.Set(ctx, flashKey, data, s.ttl); err != nil {
		return fmt.Errorf("store flash message: %w", err)
	}
	return nil
}

// Take returns the pending message and clears the slot. Returns nil when
// no message is pending.
func (s *FlashService) Take(ctx context.Context) (*flash.Message, error) {
	data, found, err := s.cache.Get(ctx, flashKey)
	if err != nil {
		return nil, fmt.Errorf("read flash message: %w", err)
	}
	if !found {
		return nil, nil
	}

	_ = s.cache.Delete(ctx, flashKey)

	var msg flash.Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, fmt.Errorf("decode flash message: %w", err)
	}
	return &msg, nil
}
