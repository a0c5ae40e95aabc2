package cache

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/artisanhub/internal/constants"
	"github.com/artisanhub/internal/models"
)

const sessionTTL = 10 * time.Minute

// Session the slice of a user row that bearer-token checks need.
// Cached so most authenticated requests never reach the users table.
type Session struct {
	UserID        uint   `json:"user_id"`
	Role          string `json:"role"`
	Status        string `json:"status"`
	TokenVersion  uint64 `json:"token_version"`
	RevokedBefore int64  `json:"revoked_before,omitempty"` // unix seconds
}

func sessionKey(userID uint) string {
	return "session:" + strconv.FormatUint(uint64(userID), 10)
}

// SessionOf snapshot of a user row
func SessionOf(user *models.User) *Session {
	if user == nil {
		return nil
	}
	s := &Session{
		UserID:       user.ID,
		Role:         user.Role,
		Status:       user.Status,
		TokenVersion: user.TokenVersion,
	}
	if user.TokenInvalidBefore != nil {
		s.RevokedBefore = user.TokenInvalidBefore.Unix()
	}
	return s
}

// Active account has not been disabled
func (s *Session) Active() bool {
	return s != nil && strings.EqualFold(s.Status, constants.UserStatusActive)
}

// Accepts reports whether a token minted with version at issuedAt is still good.
// A zero issuedAt skips the cut-off check.
func (s *Session) Accepts(version uint64, issuedAt time.Time) bool {
	if s == nil || version != s.TokenVersion {
		return false
	}
	if s.RevokedBefore > 0 && !issuedAt.IsZero() && issuedAt.Unix() < s.RevokedBefore {
		return false
	}
	return true
}

// LoadSession ok is false on a miss or when redis is off
func LoadSession(ctx context.Context, userID uint) (*Session, bool, error) {
	if userID == 0 {
		return nil, false, nil
	}
	var s Session
	hit, err := GetJSON(ctx, sessionKey(userID), &s)
	if err != nil || !hit {
		return nil, false, err
	}
	return &s, true, nil
}

func StoreSession(ctx context.Context, s *Session) error {
	if s == nil || s.UserID == 0 {
		return nil
	}
	return SetJSON(ctx, sessionKey(s.UserID), s, sessionTTL)
}

// ForgetSession after a password, status or role change
func ForgetSession(ctx context.Context, userID uint) error {
	if userID == 0 {
		return nil
	}
	return Del(ctx, sessionKey(userID))
}
