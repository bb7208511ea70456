package broker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

var (
	// ErrConnect возвращается, когда не удалось подключиться к RabbitMQ
	ErrConnect = errors.New("broker: failed to connect")

	// ErrPublish возвращается при ошибке публикации сообщения
	ErrPublish = errors.New("broker: failed to publish")

	// ErrEncode возвращается при ошибке сериализации сообщения
	ErrEncode = errors.New("broker: failed to encode message")
)

// Channel часть amqp.Channel, нужная издателю
type Channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	IsClosed() bool
	Close() error
}

// Dialer открывает соединение и канал
type Dialer func(url string) (Channel, func() error, error)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
}

// Publisher публикует JSON-события в topic exchange.
// Соединение восстанавливается лениво при следующей публикации.
type Publisher struct {
	url      string
	exchange string
	dial     Dialer
	log      Logger

	mu        sync.Mutex
	channel   Channel
	closeConn func() error
}

// NewPublisher создает издателя и объявляет durable topic exchange
func NewPublisher(url, exchange string, log Logger) (*Publisher, error) {
	return newPublisher(url, exchange, dialAMQP, log)
}

func newPublisher(url, exchange string, dial Dialer, log Logger) (*Publisher, error) {
	p := &Publisher{
		url:      url,
		exchange: exchange,
		dial:     dial,
		log:      log,
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.connect(); err != nil {
		return nil, err
	}
	return p, nil
}

// Publish отправляет событие с ключом маршрутизации routingKey
func (p *Publisher) Publish(ctx context.Context, routingKey string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrEncode, err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.channel == nil || p.channel.IsClosed() {
		p.log.Warn("Broker: channel closed, reconnecting")
		if err := p.connect(); err != nil {
			return err
		}
	}

	err = p.channel.PublishWithContext(ctx,
		p.exchange,
		routingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now().UTC(),
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrPublish, routingKey, err)
	}

	return nil
}

// Close закрывает канал и соединение
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var errs []error
	if p.channel != nil {
		errs = append(errs, p.channel.Close())
		p.channel = nil
	}
	if p.closeConn != nil {
		errs = append(errs, p.closeConn())
		p.closeConn = nil
	}
	return errors.Join(errs...)
}

// connect вызывается под p.mu
func (p *Publisher) connect() error {
	if p.closeConn != nil {
		_ = p.closeConn()
	}

	ch, closeConn, err := p.dial(p.url)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConnect, err)
	}

	err = ch.ExchangeDeclare(
		p.exchange,
		amqp.ExchangeTopic,
		true,  // durable
		false, // autoDelete
		false, // internal
		false, // noWait
		nil,
	)
	if err != nil {
		_ = ch.Close()
		_ = closeConn()
		return fmt.Errorf("%w: declare exchange %s: %v", ErrConnect, p.exchange, err)
	}

	p.channel = ch
	p.closeConn = closeConn
	p.log.Info("Broker: connected, exchange=%s", p.exchange)
	return nil
}

func dialAMQP(url string) (Channel, func() error, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, nil, err
	}

	return ch, conn.Close, nil
}
