package events

import (
	"context"
	"reflect"

	"github.com/golang/mock/gomock"
	amqp "github.com/rabbitmq/amqp091-go"
)

// MockChannelInterface мок для ChannelInterface
type MockChannelInterface struct {
	ctrl     *gomock.Controller
	recorder *MockChannelInterfaceMockRecorder
}

func NewMockChannelInterface(ctrl *gomock.Controller) *MockChannelInterface {
	mock := &MockChannelInterface{ctrl: ctrl}
	mock.recorder = &MockChannelInterfaceMockRecorder{mock}
	return mock
}

func (m *MockChannelInterface) EXPECT() *MockChannelInterfaceMockRecorder {
	return m.recorder
}

func (m *MockChannelInterface) PublishWithContext(
	ctx context.Context,
	exchange, key string,
	mandatory, immediate bool,
	msg amqp.Publishing,
) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "PublishWithContext", ctx, exchange, key, mandatory, immediate, msg)
	ret0, _ := ret[0].(error)
	return ret0
}

func (m *MockChannelInterface) Close() error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Close")
	ret0, _ := ret[0].(error)
	return ret0
}

type MockChannelInterfaceMockRecorder struct {
	mock *MockChannelInterface
}

func (mr *MockChannelInterfaceMockRecorder) PublishWithContext(
	ctx, exchange, key, mandatory, immediate, msg interface{},
) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(
		mr.mock,
		"PublishWithContext",
		reflect.TypeOf((*MockChannelInterface)(nil).PublishWithContext),
		ctx, exchange, key, mandatory, immediate, msg,
	)
}

func (mr *MockChannelInterfaceMockRecorder) Close() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(
		mr.mock,
		"Close",
		reflect.TypeOf((*MockChannelInterface)(nil).Close),
	)
}

// MockEventProducer мок для EventProducer
type MockEventProducer struct {
	ctrl     *gomock.Controller
	recorder *MockEventProducerMockRecorder
}

func NewMockEventProducer(ctrl *gomock.Controller) *MockEventProducer {
	mock := &MockEventProducer{ctrl: ctrl}
	mock.recorder = &MockEventProducerMockRecorder{mock}
	return mock
}

func (m *MockEventProducer) EXPECT() *MockEventProducerMockRecorder {
	return m.recorder
}

func (m *MockEventProducer) SendEvent(ctx context.Context, event Event) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "SendEvent", ctx, event)
	ret0, _ := ret[0].(error)
	return ret0
}

func (m *MockEventProducer) Close() error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Close")
	ret0, _ := ret[0].(error)
	return ret0
}

type MockEventProducerMockRecorder struct {
	mock *MockEventProducer
}

func (mr *MockEventProducerMockRecorder) SendEvent(ctx, event interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(
		mr.mock,
		"SendEvent",
		reflect.TypeOf((*MockEventProducer)(nil).SendEvent),
		ctx, event,
	)
}

func (mr *MockEventProducerMockRecorder) Close() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(
		mr.mock,
		"Close",
		reflect.TypeOf((*MockEventProducer)(nil).Close),
	)
}
