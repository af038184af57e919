// Package session keeps one PostDetails view per browser.
package session

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"commentboard/app/components"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"golang.org/x/crypto/sha3"
)

// CookieName is the name of the session cookie.
const CookieName = "commentboard_session"

// Session is the per-browser state.
type Session struct {
	ID      string
	Details *components.PostDetails
}

// Factory builds the view of a new session.
type Factory func() *components.PostDetails

// Manager issues session cookies and keeps sessions in a TTL cache. Every
// access extends the session's lifetime.
type Manager struct {
	sessions *cache.Cache
	secret   []byte
	ttl      time.Duration
	secure   bool
	factory  Factory
	logger   *slog.Logger
}

// NewManager creates a manager. An empty secret is replaced by a random
// one, which invalidates cookies across restarts; sessions live in memory
// anyway.
func NewManager(secret string, ttl time.Duration, factory Factory, logger *slog.Logger) (*Manager, error) {
	key := []byte(secret)
	if len(key) == 0 {
		key = make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			return nil, fmt.Errorf("failed to generate session secret: %w", err)
		}
		logger.Warn("no session secret configured, using a random one")
	}

	m := &Manager{
		sessions: cache.New(ttl, ttl/2+time.Second),
		secret:   key,
		ttl:      ttl,
		factory:  factory,
		logger:   logger,
	}
	m.sessions.OnEvicted(func(id string, v interface{}) {
		if s, ok := v.(*Session); ok {
			s.Details.Close()
		}
		logger.Debug("session evicted", "session_id", id)
	})
	return m, nil
}

// SetSecure marks issued cookies Secure.
func (m *Manager) SetSecure(secure bool) { m.secure = secure }

// Get returns the session of the request, starting a new one and setting
// its cookie when the request has none, a tampered one or an expired one.
func (m *Manager) Get(w http.ResponseWriter, r *http.Request) *Session {
	if c, err := r.Cookie(CookieName); err == nil {
		if id, ok := m.verify(c.Value); ok {
			if v, found := m.sessions.Get(id); found {
				s := v.(*Session)
				m.sessions.SetDefault(id, s)
				return s
			}
		} else {
			m.logger.Warn("rejected session cookie", "remote_addr", r.RemoteAddr)
		}
	}

	s := &Session{ID: uuid.NewString(), Details: m.factory()}
	m.sessions.SetDefault(s.ID, s)
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    m.sign(s.ID),
		Path:     "/",
		MaxAge:   int(m.ttl.Seconds()),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
	m.logger.Debug("session started", "session_id", s.ID)
	return s
}

// Destroy drops a session.
func (m *Manager) Destroy(id string) {
	m.sessions.Delete(id)
}

// Count returns the number of live sessions.
func (m *Manager) Count() int {
	return m.sessions.ItemCount()
}

func (m *Manager) mac(id string) string {
	sum := sha3.Sum256(append(append([]byte{}, m.secret...), id...))
	return hex.EncodeToString(sum[:])
}

func (m *Manager) sign(id string) string {
	return id + "." + m.mac(id)
}

func (m *Manager) verify(value string) (string, bool) {
	id, mac, ok := strings.Cut(value, ".")
	if !ok {
		return "", false
	}
	if _, err := uuid.Parse(id); err != nil {
		return "", false
	}
	if subtle.ConstantTimeCompare([]byte(mac), []byte(m.mac(id))) != 1 {
		return "", false
	}
	return id, true
}
