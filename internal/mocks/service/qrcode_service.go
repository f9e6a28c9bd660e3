package service

import (
	"marketplace/internal/domain/service"

	"github.com/stretchr/testify/mock"
)

// MockQRCodeService is a mock of service.QRCodeService.
type MockQRCodeService struct {
	mock.Mock
}

// MockQRCodeService_Expecter records expectations on MockQRCodeService.
type MockQRCodeService_Expecter struct {
	mock *mock.Mock
}

// NewMockQRCodeService creates a mock that asserts its expectations on test cleanup.
func NewMockQRCodeService(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockQRCodeService {
	m := &MockQRCodeService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockQRCodeService) EXPECT() *MockQRCodeService_Expecter {
	return &MockQRCodeService_Expecter{mock: &m.Mock}
}

func (m *MockQRCodeService) GenerateReceiptQR(data service.ReceiptData) ([]byte, error) {
	ret := m.Called(data)
	png, _ := ret.Get(0).([]byte)

	return png, ret.Error(1)
}

func (e *MockQRCodeService_Expecter) GenerateReceiptQR(data any) *mock.Call {
	return e.mock.On("GenerateReceiptQR", data)
}

func (m *MockQRCodeService) ParseReceiptQR(content string) (*service.ReceiptData, error) {
	ret := m.Called(content)
	data, _ := ret.Get(0).(*service.ReceiptData)

	return data, ret.Error(1)
}

func (e *MockQRCodeService_Expecter) ParseReceiptQR(content any) *mock.Call {
	return e.mock.On("ParseReceiptQR", content)
}
