// Package session maps browser sessions to their live report store.
package session

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/goliatone/go-socreport/pkg/store"
)

const (
	DefaultCookieName  = "socreport_session"
	DefaultMaxSessions = 256
	DefaultTTL         = 12 * time.Hour
)

// Session is one editor tab: its report plus a pending flash message.
type Session struct {
	ID    string
	Store *store.Store

	mu    sync.Mutex
	flash []Flash
}

// Flash is a one-shot message shown on the next page render.
type Flash struct {
	Level   string
	Message string
}

// AddFlash queues a message for the next page render.
func (s *Session) AddFlash(level, message string) {
	message = strings.TrimSpace(message)
	if s == nil || message == "" {
		return
	}
	s.mu.Lock()
	s.flash = append(s.flash, Flash{Level: level, Message: message})
	s.mu.Unlock()
}

// TakeFlashes returns and clears the queued messages.
func (s *Session) TakeFlashes() []Flash {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.flash
	s.flash = nil
	return out
}

// Options configures a Manager.
type Options struct {
	CookieName  string
	MaxSessions int
	TTL         time.Duration
	Secure      bool
	// OnCreate runs for every new session before it is handed out.
	OnCreate func(*Session)
}

// Manager keeps sessions in an expiring LRU. Evicted sessions are gone; the
// report is never persisted.
type Manager struct {
	opts  Options
	cache *expirable.LRU[string, *Session]
}

// NewManager builds a Manager, applying defaults for zero values.
func NewManager(opts Options) *Manager {
	if opts.CookieName == "" {
		opts.CookieName = DefaultCookieName
	}
	if opts.MaxSessions <= 0 {
		opts.MaxSessions = DefaultMaxSessions
	}
	if opts.TTL <= 0 {
		opts.TTL = DefaultTTL
	}
	return &Manager{
		opts:  opts,
		cache: expirable.NewLRU[string, *Session](opts.MaxSessions, nil, opts.TTL),
	}
}

// Resolve returns the session bound to the request cookie, creating one when
// it is missing or expired. The cookie is written on every call so its MaxAge
// follows the idle timeout.
func (m *Manager) Resolve(w http.ResponseWriter, r *http.Request) *Session {
	var sess *Session
	if cookie, err := r.Cookie(m.opts.CookieName); err == nil {
		sess, _ = m.Get(cookie.Value)
	}
	if sess == nil {
		sess = m.create()
	}
	http.SetCookie(w, &http.Cookie{
		Name:     m.opts.CookieName,
		Value:    sess.ID,
		Path:     "/",
		HttpOnly: true,
		Secure:   m.opts.Secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(m.opts.TTL / time.Second),
	})
	return sess
}

// Get looks up a live session by id. A hit re-adds the entry, which restarts
// its TTL, so the TTL only runs out on idle sessions.
func (m *Manager) Get(id string) (*Session, bool) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, false
	}
	sess, ok := m.cache.Get(id)
	if !ok {
		return nil, false
	}
	m.cache.Add(id, sess)
	return sess, true
}

// Len reports the number of live sessions.
func (m *Manager) Len() int {
	return m.cache.Len()
}

func (m *Manager) create() *Session {
	sess := &Session{ID: uuid.NewString(), Store: store.New()}
	if m.opts.OnCreate != nil {
		m.opts.OnCreate(sess)
	}
	m.cache.Add(sess.ID, sess)
	return sess
}
