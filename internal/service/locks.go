package service

import "sync"

// teamLocks serializes schedule writes per team. Reads never take a lock.
type teamLocks struct {
	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

func newTeamLocks() *teamLocks {
	return &teamLocks{locks: make(map[int64]*sync.Mutex)}
}

// lock acquires the team's mutex and returns its unlock func
func (l *teamLocks) lock(teamID int64) func() {
	l.mu.Lock()
	m, ok := l.locks[teamID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[teamID] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
