package credstore

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/legacyvault/internal/client/models"
)

// Memory is a process-local Store. Nothing survives a restart.
type Memory struct {
	mu    sync.RWMutex
	token string
	user  *models.User
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) SetToken(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	return nil
}

func (m *Memory) GetToken(context.Context) string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token
}

func (m *Memory) SetUserData(_ context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.user = copyUser(user)
	return nil
}

func (m *Memory) GetUserData(context.Context) *models.User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return copyUser(m.user)
}

func (m *Memory) SetSession(_ context.Context, user *models.User, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	m.user = copyUser(user)
	return nil
}

func (m *Memory) ClearAuth(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	m.user = nil
	return nil
}

func (m *Memory) IsAuthenticated(ctx context.Context) bool {
	return m.GetToken(ctx) != ""
}

func copyUser(u *models.User) *models.User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}
