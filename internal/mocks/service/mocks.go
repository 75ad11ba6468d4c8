// Package mockservice provides hand-maintained testify mocks for the domain
// service interfaces used in usecase tests.
package mockservice

import (
	"context"
	"io"
	"testing"
	"time"

	"campuseats/internal/domain/entity"
	"campuseats/internal/domain/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockPasswordHasher mocks service.PasswordHasher.
type MockPasswordHasher struct {
	mock.Mock
}

// NewMockPasswordHasher creates a mock wired to the test's lifecycle.
func NewMockPasswordHasher(t *testing.T) *MockPasswordHasher {
	m := &MockPasswordHasher{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockPasswordHasher) Hash(password string) (string, error) {
	args := m.Called(password)

	return args.String(0), args.Error(1)
}

func (m *MockPasswordHasher) Check(password, hash string) bool {
	return m.Called(password, hash).Bool(0)
}

// MockTokenService mocks service.TokenService.
type MockTokenService struct {
	mock.Mock
}

// NewMockTokenService creates a mock wired to the test's lifecycle.
func NewMockTokenService(t *testing.T) *MockTokenService {
	m := &MockTokenService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockTokenService) GenerateTokens(accountID uuid.UUID, role entity.Role) (string, string, error) {
	args := m.Called(accountID, role)

	return args.String(0), args.String(1), args.Error(2)
}

func (m *MockTokenService) ValidateAccessToken(tokenString string) (*service.TokenClaims, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*service.TokenClaims), args.Error(1)
}

func (m *MockTokenService) ValidateRefreshToken(tokenString string) (*service.TokenClaims, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*service.TokenClaims), args.Error(1)
}

func (m *MockTokenService) HashToken(tokenString string) string {
	return m.Called(tokenString).String(0)
}

func (m *MockTokenService) RefreshTokenDuration() time.Duration {
	return m.Called().Get(0).(time.Duration)
}

// MockMailer mocks service.Mailer.
type MockMailer struct {
	mock.Mock
}

// NewMockMailer creates a mock wired to the test's lifecycle.
func NewMockMailer(t *testing.T) *MockMailer {
	m := &MockMailer{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockMailer) SendWelcome(ctx context.Context, to, name, campusID string) error {
	return m.Called(ctx, to, name, campusID).Error(0)
}

func (m *MockMailer) SendCredentials(ctx context.Context, to, name, campusID, password string) error {
	return m.Called(ctx, to, name, campusID, password).Error(0)
}

// MockImageStore mocks service.ImageStore.
type MockImageStore struct {
	mock.Mock
}

// NewMockImageStore creates a mock wired to the test's lifecycle.
func NewMockImageStore(t *testing.T) *MockImageStore {
	m := &MockImageStore{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockImageStore) Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	args := m.Called(ctx, key, contentType, body)

	return args.String(0), args.Error(1)
}

func (m *MockImageStore) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

// MockEventPublisher mocks service.EventPublisher.
type MockEventPublisher struct {
	mock.Mock
}

// NewMockEventPublisher creates a mock wired to the test's lifecycle.
func NewMockEventPublisher(t *testing.T) *MockEventPublisher {
	m := &MockEventPublisher{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockEventPublisher) PublishOrderStatus(ctx context.Context, event *service.OrderStatusEvent) error {
	return m.Called(ctx, event).Error(0)
}

func (m *MockEventPublisher) PublishDeliveryLocation(ctx context.Context, event *service.DeliveryLocationEvent) error {
	return m.Called(ctx, event).Error(0)
}

func (m *MockEventPublisher) Close() error {
	return m.Called().Error(0)
}
