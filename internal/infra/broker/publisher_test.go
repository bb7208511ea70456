package broker

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StudioBooking/pkg/logger"
)

type published struct {
	exchange string
	key      string
	msg      amqp.Publishing
}

type fakeChannel struct {
	closed     bool
	declareErr error
	publishErr error
	kinds      []string
	sent       []published
}

func (f *fakeChannel) ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error {
	f.kinds = append(f.kinds, kind)
	return f.declareErr
}

func (f *fakeChannel) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp.Publishing) error {
	if f.publishErr != nil {
		return f.publishErr
	}
	f.sent = append(f.sent, published{exchange: exchange, key: key, msg: msg})
	return nil
}

func (f *fakeChannel) IsClosed() bool { return f.closed }

func (f *fakeChannel) Close() error {
	f.closed = true
	return nil
}

func dialerFor(channels ...*fakeChannel) (Dialer, *int) {
	calls := 0
	return func(string) (Channel, func() error, error) {
		if calls >= len(channels) {
			return nil, nil, errors.New("connection refused")
		}
		ch := channels[calls]
		calls++
		return ch, func() error { return nil }, nil
	}, &calls
}

func testLogger() Logger {
	return logger.NewWithWriter(io.Discard, "info")
}

func TestPublisher_Publish(t *testing.T) {
	ch := &fakeChannel{}
	dial, _ := dialerFor(ch)

	p, err := newPublisher("amqp://test", "studio.bookings", dial, testLogger())
	require.NoError(t, err)
	assert.Equal(t, []string{amqp.ExchangeTopic}, ch.kinds)

	err = p.Publish(context.Background(), "booking.confirmed", map[string]string{"bookingId": "b1"})
	require.NoError(t, err)

	require.Len(t, ch.sent, 1)
	sent := ch.sent[0]
	assert.Equal(t, "studio.bookings", sent.exchange)
	assert.Equal(t, "booking.confirmed", sent.key)
	assert.Equal(t, amqp.Persistent, sent.msg.DeliveryMode)
	assert.Equal(t, "application/json", sent.msg.ContentType)

	var body map[string]string
	require.NoError(t, json.Unmarshal(sent.msg.Body, &body))
	assert.Equal(t, "b1", body["bookingId"])
}

func TestPublisher_ReconnectsClosedChannel(t *testing.T) {
	first := &fakeChannel{}
	second := &fakeChannel{}
	dial, calls := dialerFor(first, second)

	p, err := newPublisher("amqp://test", "studio.bookings", dial, testLogger())
	require.NoError(t, err)

	first.closed = true
	require.NoError(t, p.Publish(context.Background(), "booking.status_changed", struct{}{}))

	assert.Equal(t, 2, *calls)
	assert.Empty(t, first.sent)
	assert.Len(t, second.sent, 1)
}

func TestPublisher_Errors(t *testing.T) {
	t.Run("dial failure", func(t *testing.T) {
		dial, _ := dialerFor()
		_, err := newPublisher("amqp://test", "x", dial, testLogger())
		require.ErrorIs(t, err, ErrConnect)
	})

	t.Run("exchange declare failure", func(t *testing.T) {
		ch := &fakeChannel{declareErr: errors.New("access refused")}
		dial, _ := dialerFor(ch)
		_, err := newPublisher("amqp://test", "x", dial, testLogger())
		require.ErrorIs(t, err, ErrConnect)
		assert.True(t, ch.closed)
	})

	t.Run("publish failure", func(t *testing.T) {
		ch := &fakeChannel{publishErr: errors.New("channel/connection is not open")}
		dial, _ := dialerFor(ch)
		p, err := newPublisher("amqp://test", "x", dial, testLogger())
		require.NoError(t, err)
		require.ErrorIs(t, p.Publish(context.Background(), "k", 1), ErrPublish)
	})

	t.Run("unencodable payload", func(t *testing.T) {
		dial, _ := dialerFor(&fakeChannel{})
		p, err := newPublisher("amqp://test", "x", dial, testLogger())
		require.NoError(t, err)
		require.ErrorIs(t, p.Publish(context.Background(), "k", make(chan int)), ErrEncode)
	})
}
