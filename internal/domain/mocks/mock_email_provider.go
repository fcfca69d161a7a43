package mocks

import (
	"context"
	"reflect"

	"github.com/golang/mock/gomock"

	"github.com/borls/collection-email-worker/internal/domain"
)

// MockEmailProvider is a mock of EmailProvider interface
type MockEmailProvider struct {
	ctrl     *gomock.Controller
	recorder *MockEmailProviderMockRecorder
}

// MockEmailProviderMockRecorder is the mock recorder for MockEmailProvider
type MockEmailProviderMockRecorder struct {
	mock *MockEmailProvider
}

// NewMockEmailProvider creates a new mock instance
func NewMockEmailProvider(ctrl *gomock.Controller) *MockEmailProvider {
	mock := &MockEmailProvider{ctrl: ctrl}
	mock.recorder = &MockEmailProviderMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use
func (m *MockEmailProvider) EXPECT() *MockEmailProviderMockRecorder {
	return m.recorder
}

// SendEmail mocks base method
func (m *MockEmailProvider) SendEmail(ctx context.Context, message domain.EmailMessage) (*domain.SendResult, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "SendEmail", ctx, message)
	ret0, _ := ret[0].(*domain.SendResult)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// SendEmail indicates an expected call of SendEmail
func (mr *MockEmailProviderMockRecorder) SendEmail(ctx, message interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SendEmail", reflect.TypeOf((*MockEmailProvider)(nil).SendEmail), ctx, message)
}

// ProviderName mocks base method
func (m *MockEmailProvider) ProviderName() string {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ProviderName")
	ret0, _ := ret[0].(string)
	return ret0
}

// ProviderName indicates an expected call of ProviderName
func (mr *MockEmailProviderMockRecorder) ProviderName() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ProviderName", reflect.TypeOf((*MockEmailProvider)(nil).ProviderName))
}
