package users

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

var _ loginSessions = (*sessionsMock)(nil)

type sessionsMock struct {
	Sessions map[string]int
	counter  int
	mutex    sync.Mutex
}

func newSessionsMock() *sessionsMock {
	return &sessionsMock{
		Sessions: make(map[string]int),
	}
}

func (s *sessionsMock) NewSession(_ context.Context, userID int, _ time.Time) (string, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.counter++
	token := fmt.Sprintf("test-token-%d", s.counter)
	s.Sessions[token] = userID
	return token, nil
}

func (s *sessionsMock) Logout(_ context.Context, token string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if _, ok := s.Sessions[token]; !ok {
		return errors.New("session not found")
	}
	delete(s.Sessions, token)
	return nil
}
