package handlers

import (
	"context"
	"net/http"
	"sync"

	"kasa_bridge/internal/models"
	"kasa_bridge/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	mu sync.Mutex

	genTokenToken string
	genTokenErr   error
	parseAdmin    string
	parseErr      error

	lastGenUsername string
	lastGenPassword string
	lastParseToken  string
}

func (m *mockAuth) GenerateToken(username, password string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastGenUsername = username
	m.lastGenPassword = password
	return m.genTokenToken, m.genTokenErr
}
func (m *mockAuth) ParseToken(token string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastParseToken = token
	return m.parseAdmin, m.parseErr
}

func (m *mockAuth) parsedToken() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastParseToken
}

func (m *mockAuth) rejectTokens(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.parseErr = err
}

type mockLight struct {
	mu sync.Mutex

	onErr, offErr, timedErr, autoOffErr error

	onCalls, offCalls int
	timedMinutes      []int
	autoOffEnabled    []bool
	autoOffMinutes    []*int
	triggers          []models.Trigger
}

func (m *mockLight) TurnOff(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.offCalls++
	m.triggers = append(m.triggers, service.TriggerFrom(ctx))
	return m.offErr
}
func (m *mockLight) TurnOnPlain(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onCalls++
	m.triggers = append(m.triggers, service.TriggerFrom(ctx))
	return m.onErr
}
func (m *mockLight) TurnOnTimed(ctx context.Context, minutes int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.timedMinutes = append(m.timedMinutes, minutes)
	m.triggers = append(m.triggers, service.TriggerFrom(ctx))
	if minutes <= 0 {
		return service.ErrInvalidMinutes
	}
	return m.timedErr
}
func (m *mockLight) SetAutoOff(ctx context.Context, enabled bool, minutes *int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.autoOffEnabled = append(m.autoOffEnabled, enabled)
	m.autoOffMinutes = append(m.autoOffMinutes, minutes)
	m.triggers = append(m.triggers, service.TriggerFrom(ctx))
	return m.autoOffErr
}

type mockEventLog struct {
	mu   sync.Mutex
	resp []models.CommandEvent
	err  error
	last service.LogFilter
}

func (m *mockEventLog) List(ctx context.Context, f service.LogFilter) ([]models.CommandEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.last = f
	return m.resp, m.err
}

func (m *mockEventLog) lastFilter() service.LogFilter {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.last
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}
