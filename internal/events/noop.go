package events

import "context"

// NopProducer используется, когда брокер не настроен
type NopProducer struct{}

func (NopProducer) SendEvent(context.Context, Event) error { return nil }

func (NopProducer) Close() error { return nil }
