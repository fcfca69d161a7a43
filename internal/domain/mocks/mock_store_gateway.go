package mocks

import (
	"context"
	"reflect"
	"time"

	"github.com/golang/mock/gomock"

	"github.com/borls/collection-email-worker/internal/domain"
)

// MockStoreGateway is a mock of StoreGateway interface
type MockStoreGateway struct {
	ctrl     *gomock.Controller
	recorder *MockStoreGatewayMockRecorder
}

// MockStoreGatewayMockRecorder is the mock recorder for MockStoreGateway
type MockStoreGatewayMockRecorder struct {
	mock *MockStoreGateway
}

// NewMockStoreGateway creates a new mock instance
func NewMockStoreGateway(ctrl *gomock.Controller) *MockStoreGateway {
	mock := &MockStoreGateway{ctrl: ctrl}
	mock.recorder = &MockStoreGatewayMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use
func (m *MockStoreGateway) EXPECT() *MockStoreGatewayMockRecorder {
	return m.recorder
}

// GetExecution mocks base method
func (m *MockStoreGateway) GetExecution(ctx context.Context, executionID string) (*domain.Execution, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetExecution", ctx, executionID)
	ret0, _ := ret[0].(*domain.Execution)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetExecution indicates an expected call of GetExecution
func (mr *MockStoreGatewayMockRecorder) GetExecution(ctx, executionID interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetExecution", reflect.TypeOf((*MockStoreGateway)(nil).GetExecution), ctx, executionID)
}

// GetClientsByIDs mocks base method
func (m *MockStoreGateway) GetClientsByIDs(ctx context.Context, clientIDs []string) ([]*domain.Client, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetClientsByIDs", ctx, clientIDs)
	ret0, _ := ret[0].([]*domain.Client)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetClientsByIDs indicates an expected call of GetClientsByIDs
func (mr *MockStoreGatewayMockRecorder) GetClientsByIDs(ctx, clientIDs interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetClientsByIDs", reflect.TypeOf((*MockStoreGateway)(nil).GetClientsByIDs), ctx, clientIDs)
}

// GetPendingClients mocks base method
func (m *MockStoreGateway) GetPendingClients(ctx context.Context, executionID string) ([]*domain.Client, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetPendingClients", ctx, executionID)
	ret0, _ := ret[0].([]*domain.Client)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetPendingClients indicates an expected call of GetPendingClients
func (mr *MockStoreGatewayMockRecorder) GetPendingClients(ctx, executionID interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetPendingClients", reflect.TypeOf((*MockStoreGateway)(nil).GetPendingClients), ctx, executionID)
}

// GetAttachments mocks base method
func (m *MockStoreGateway) GetAttachments(ctx context.Context, ids []string) ([]domain.Attachment, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetAttachments", ctx, ids)
	ret0, _ := ret[0].([]domain.Attachment)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetAttachments indicates an expected call of GetAttachments
func (mr *MockStoreGatewayMockRecorder) GetAttachments(ctx, ids interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetAttachments", reflect.TypeOf((*MockStoreGateway)(nil).GetAttachments), ctx, ids)
}

// GetTemplate mocks base method
func (m *MockStoreGateway) GetTemplate(ctx context.Context, templateID string) (*domain.EmailTemplate, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetTemplate", ctx, templateID)
	ret0, _ := ret[0].(*domain.EmailTemplate)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetTemplate indicates an expected call of GetTemplate
func (mr *MockStoreGatewayMockRecorder) GetTemplate(ctx, templateID interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetTemplate", reflect.TypeOf((*MockStoreGateway)(nil).GetTemplate), ctx, templateID)
}

// GetBlacklistedEmails mocks base method
func (m *MockStoreGateway) GetBlacklistedEmails(ctx context.Context, businessID string) (map[string]struct{}, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetBlacklistedEmails", ctx, businessID)
	ret0, _ := ret[0].(map[string]struct{})
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetBlacklistedEmails indicates an expected call of GetBlacklistedEmails
func (mr *MockStoreGatewayMockRecorder) GetBlacklistedEmails(ctx, businessID interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetBlacklistedEmails", reflect.TypeOf((*MockStoreGateway)(nil).GetBlacklistedEmails), ctx, businessID)
}

// GetCustomerEmail mocks base method
func (m *MockStoreGateway) GetCustomerEmail(ctx context.Context, customerID string) (string, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetCustomerEmail", ctx, customerID)
	ret0, _ := ret[0].(string)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetCustomerEmail indicates an expected call of GetCustomerEmail
func (mr *MockStoreGatewayMockRecorder) GetCustomerEmail(ctx, customerID interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetCustomerEmail", reflect.TypeOf((*MockStoreGateway)(nil).GetCustomerEmail), ctx, customerID)
}

// GetBusinessName mocks base method
func (m *MockStoreGateway) GetBusinessName(ctx context.Context, businessID string) string {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetBusinessName", ctx, businessID)
	ret0, _ := ret[0].(string)
	return ret0
}

// GetBusinessName indicates an expected call of GetBusinessName
func (mr *MockStoreGatewayMockRecorder) GetBusinessName(ctx, businessID interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetBusinessName", reflect.TypeOf((*MockStoreGateway)(nil).GetBusinessName), ctx, businessID)
}

// UpdateClientStatus mocks base method
func (m *MockStoreGateway) UpdateClientStatus(ctx context.Context, clientID, status string, customData map[string]interface{}) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "UpdateClientStatus", ctx, clientID, status, customData)
	ret0, _ := ret[0].(error)
	return ret0
}

// UpdateClientStatus indicates an expected call of UpdateClientStatus
func (mr *MockStoreGatewayMockRecorder) UpdateClientStatus(ctx, clientID, status, customData interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "UpdateClientStatus", reflect.TypeOf((*MockStoreGateway)(nil).UpdateClientStatus), ctx, clientID, status, customData)
}

// UpdateBatchStatus mocks base method
func (m *MockStoreGateway) UpdateBatchStatus(ctx context.Context, batchID, status string) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "UpdateBatchStatus", ctx, batchID, status)
	ret0, _ := ret[0].(error)
	return ret0
}

// UpdateBatchStatus indicates an expected call of UpdateBatchStatus
func (mr *MockStoreGatewayMockRecorder) UpdateBatchStatus(ctx, batchID, status interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "UpdateBatchStatus", reflect.TypeOf((*MockStoreGateway)(nil).UpdateBatchStatus), ctx, batchID, status)
}

// GetExecutionBatches mocks base method
func (m *MockStoreGateway) GetExecutionBatches(ctx context.Context, executionID string) ([]*domain.Batch, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetExecutionBatches", ctx, executionID)
	ret0, _ := ret[0].([]*domain.Batch)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetExecutionBatches indicates an expected call of GetExecutionBatches
func (mr *MockStoreGatewayMockRecorder) GetExecutionBatches(ctx, executionID interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetExecutionBatches", reflect.TypeOf((*MockStoreGateway)(nil).GetExecutionBatches), ctx, executionID)
}

// UpdateExecutionStatus mocks base method
func (m *MockStoreGateway) UpdateExecutionStatus(ctx context.Context, executionID, status string) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "UpdateExecutionStatus", ctx, executionID, status)
	ret0, _ := ret[0].(error)
	return ret0
}

// UpdateExecutionStatus indicates an expected call of UpdateExecutionStatus
func (mr *MockStoreGatewayMockRecorder) UpdateExecutionStatus(ctx, executionID, status interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "UpdateExecutionStatus", reflect.TypeOf((*MockStoreGateway)(nil).UpdateExecutionStatus), ctx, executionID, status)
}

// GetBatchRetryCount mocks base method
func (m *MockStoreGateway) GetBatchRetryCount(ctx context.Context, batchID string) (int, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetBatchRetryCount", ctx, batchID)
	ret0, _ := ret[0].(int)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetBatchRetryCount indicates an expected call of GetBatchRetryCount
func (mr *MockStoreGatewayMockRecorder) GetBatchRetryCount(ctx, batchID interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetBatchRetryCount", reflect.TypeOf((*MockStoreGateway)(nil).GetBatchRetryCount), ctx, batchID)
}

// IncrementBatchRetryCount mocks base method
func (m *MockStoreGateway) IncrementBatchRetryCount(ctx context.Context, batchID string) (int, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "IncrementBatchRetryCount", ctx, batchID)
	ret0, _ := ret[0].(int)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// IncrementBatchRetryCount indicates an expected call of IncrementBatchRetryCount
func (mr *MockStoreGatewayMockRecorder) IncrementBatchRetryCount(ctx, batchID interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "IncrementBatchRetryCount", reflect.TypeOf((*MockStoreGateway)(nil).IncrementBatchRetryCount), ctx, batchID)
}

// MarkBatchAsDLQ mocks base method
func (m *MockStoreGateway) MarkBatchAsDLQ(ctx context.Context, batchID, errorMessage string) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "MarkBatchAsDLQ", ctx, batchID, errorMessage)
	ret0, _ := ret[0].(error)
	return ret0
}

// MarkBatchAsDLQ indicates an expected call of MarkBatchAsDLQ
func (mr *MockStoreGatewayMockRecorder) MarkBatchAsDLQ(ctx, batchID, errorMessage interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "MarkBatchAsDLQ", reflect.TypeOf((*MockStoreGateway)(nil).MarkBatchAsDLQ), ctx, batchID, errorMessage)
}

// GetEarliestPendingBatchTime mocks base method
func (m *MockStoreGateway) GetEarliestPendingBatchTime(ctx context.Context) (*time.Time, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetEarliestPendingBatchTime", ctx)
	ret0, _ := ret[0].(*time.Time)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetEarliestPendingBatchTime indicates an expected call of GetEarliestPendingBatchTime
func (mr *MockStoreGatewayMockRecorder) GetEarliestPendingBatchTime(ctx interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetEarliestPendingBatchTime", reflect.TypeOf((*MockStoreGateway)(nil).GetEarliestPendingBatchTime), ctx)
}
