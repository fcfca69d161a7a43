package mocks

import (
	"context"
	"reflect"

	"github.com/golang/mock/gomock"

	"github.com/borls/collection-email-worker/internal/domain"
)

// MockQueueGateway is a mock of QueueGateway interface
type MockQueueGateway struct {
	ctrl     *gomock.Controller
	recorder *MockQueueGatewayMockRecorder
}

// MockQueueGatewayMockRecorder is the mock recorder for MockQueueGateway
type MockQueueGatewayMockRecorder struct {
	mock *MockQueueGateway
}

// NewMockQueueGateway creates a new mock instance
func NewMockQueueGateway(ctrl *gomock.Controller) *MockQueueGateway {
	mock := &MockQueueGateway{ctrl: ctrl}
	mock.recorder = &MockQueueGatewayMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use
func (m *MockQueueGateway) EXPECT() *MockQueueGatewayMockRecorder {
	return m.recorder
}

// ReceiveBatchMessages mocks base method
func (m *MockQueueGateway) ReceiveBatchMessages(ctx context.Context) ([]domain.QueueMessage, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ReceiveBatchMessages", ctx)
	ret0, _ := ret[0].([]domain.QueueMessage)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ReceiveBatchMessages indicates an expected call of ReceiveBatchMessages
func (mr *MockQueueGatewayMockRecorder) ReceiveBatchMessages(ctx interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ReceiveBatchMessages", reflect.TypeOf((*MockQueueGateway)(nil).ReceiveBatchMessages), ctx)
}

// DeleteMessage mocks base method
func (m *MockQueueGateway) DeleteMessage(ctx context.Context, receiptHandle string) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "DeleteMessage", ctx, receiptHandle)
	ret0, _ := ret[0].(error)
	return ret0
}

// DeleteMessage indicates an expected call of DeleteMessage
func (mr *MockQueueGatewayMockRecorder) DeleteMessage(ctx, receiptHandle interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "DeleteMessage", reflect.TypeOf((*MockQueueGateway)(nil).DeleteMessage), ctx, receiptHandle)
}

// ExtendVisibility mocks base method
func (m *MockQueueGateway) ExtendVisibility(ctx context.Context, receiptHandle string, seconds int) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ExtendVisibility", ctx, receiptHandle, seconds)
	ret0, _ := ret[0].(error)
	return ret0
}

// ExtendVisibility indicates an expected call of ExtendVisibility
func (mr *MockQueueGatewayMockRecorder) ExtendVisibility(ctx, receiptHandle, seconds interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ExtendVisibility", reflect.TypeOf((*MockQueueGateway)(nil).ExtendVisibility), ctx, receiptHandle, seconds)
}
