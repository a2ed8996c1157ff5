package service

import (
	"strings"
	"sync"
)

const maxSessionIDLength = 64

// SessionLocks 按会话串行化对会话态的读改写
type SessionLocks struct {
	mu    sync.Mutex
	locks map[string]*sessionLock
}

type sessionLock struct {
	mu   sync.Mutex
	refs int
}

// NewSessionLocks 创建会话锁表
func NewSessionLocks() *SessionLocks {
	return &SessionLocks{locks: make(map[string]*sessionLock)}
}

// Lock 阻塞获取会话锁，返回解锁函数
func (l *SessionLocks) Lock(sessionID string) func() {
	entry := l.acquire(sessionID)
	entry.mu.Lock()
	return func() {
		entry.mu.Unlock()
		l.release(sessionID, entry)
	}
}

// TryLock 非阻塞获取会话锁，已被占用时返回 false
func (l *SessionLocks) TryLock(sessionID string) (func(), bool) {
	entry := l.acquire(sessionID)
	if !entry.mu.TryLock() {
		l.release(sessionID, entry)
		return nil, false
	}
	return func() {
		entry.mu.Unlock()
		l.release(sessionID, entry)
	}, true
}

func (l *SessionLocks) acquire(sessionID string) *sessionLock {
	l.mu.Lock()
	defer l.mu.Unlock()
	entry, ok := l.locks[sessionID]
	if !ok {
		entry = &sessionLock{}
		l.locks[sessionID] = entry
	}
	entry.refs++
	return entry
}

func (l *SessionLocks) release(sessionID string, entry *sessionLock) {
	l.mu.Lock()
	defer l.mu.Unlock()
	entry.refs--
	if entry.refs <= 0 {
		delete(l.locks, sessionID)
	}
}

func (l *SessionLocks) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}

func normalizeSessionID(sessionID string) (string, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" || len(sessionID) > maxSessionIDLength {
		return "", ErrInvalidSession
	}
	return sessionID, nil
}

func sessionKey(sessionID, name string) string {
	return "session:" + sessionID + ":" + name
}
