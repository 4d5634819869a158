/*
Package identity derives the names a caller chats under.

The global room is anonymous: each session gets one generated username that
stays stable until the session ends. Private rooms use the caller's chat
display name from the profile service.
*/
package identity

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"

	"github.com/naveenspark/parley/internal/logx"
	"github.com/naveenspark/parley/pkg/domain"
)

// SessionUsernameKey is the fixed store key of the anonymous username.
const SessionUsernameKey = "chat_session_username"

const (
	usernamePrefix    = "Anon"
	usernameSuffixMin = 1000
	usernameSuffixMax = 9999
)

// Store is durable storage scoped to one session.
type Store interface {
	Get(key string) (value string, ok bool, err error)
	Put(key, value string) error
	Delete(key string) error
}

// Session holds the session-scoped anonymous identity.
type Session struct {
	store Store

	mu       sync.Mutex
	username string
}

// NewSession starts a session backed by store.
func NewSession(store Store) *Session {
	return &Session{store: store}
}

// Username returns the anonymous session username, generating and persisting it on first use.
// Storage failures are logged; the name is still cached so it stays stable for this session.
func (s *Session) Username() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.username != "" {
		return s.username
	}

	if s.store != nil {
		stored, ok, err := s.store.Get(SessionUsernameKey)
		if err != nil {
			logx.Warn("read session username failed", "error", err.Error())
		} else if ok && stored != "" {
			s.username = stored
			return s.username
		}
	}

	name := generateUsername()
	if s.store != nil {
		if err := s.store.Put(SessionUsernameKey, name); err != nil {
			logx.Warn("persist session username failed", "error", err.Error())
		}
	}
	s.username = name
	logx.Debug("generated session username", "username", name)
	return s.username
}

// End clears the stored username; the next Username call starts a new identity.
func (s *Session) End() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.username = ""
	if s.store == nil {
		return nil
	}
	if err := s.store.Delete(SessionUsernameKey); err != nil {
		return fmt.Errorf("identity.End: %w", err)
	}
	return nil
}

func generateUsername() string {
	n := usernameSuffixMin + rand.IntN(usernameSuffixMax-usernameSuffixMin+1)
	return fmt.Sprintf("%s%d", usernamePrefix, n)
}

// ProfileService fetches the caller's chat profile.
type ProfileService interface {
	GetChatProfile(ctx context.Context) (*domain.ChatProfile, error)
}

// ResolveChatDisplayName returns the profile's chat display name, falling back to the
// caller's display name and then to domain.DefaultDisplayName. Errors never surface.
func ResolveChatDisplayName(ctx context.Context, profiles ProfileService, caller domain.Caller) string {
	fallback := strings.TrimSpace(caller.DisplayName)
	if fallback == "" {
		fallback = domain.DefaultDisplayName
	}
	if profiles == nil {
		return fallback
	}

	p, err := profiles.GetChatProfile(ctx)
	if err != nil {
		logx.Debug("chat profile unavailable, using fallback name", "error", err.Error())
		return fallback
	}
	if p == nil {
		return fallback
	}
	if name := strings.TrimSpace(p.ChatDisplayName); name != "" {
		return name
	}
	return fallback
}
