// Package mq 封装RabbitMQ（amqp091-go）的发布与消费
//
// 使用Topic Exchange：
//   - 发布者按routing key发布（如order.created、order.cancelled）
//   - 消费者把队列绑定到一个或多个routing key模式（如order.*）
//   - 消息持久化 + 手动确认：处理失败时重新入队，ErrPermanent类错误直接丢弃
package mq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/xiebiao/mall/pkg/metrics"
)

// ErrPermanent 处理器返回包装了该错误的error时，消息不再重新入队
var ErrPermanent = errors.New("mq: permanent failure")

// Publisher 消息发布者
type Publisher struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
	logger   *zap.Logger
}

// NewPublisher 创建消息发布者并声明Exchange
func NewPublisher(url, exchange, exchangeType string, logger *zap.Logger) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("连接RabbitMQ失败: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("创建Channel失败: %w", err)
	}

	if err := declareExchange(channel, exchange, exchangeType); err != nil {
		channel.Close()
		conn.Close()
		return nil, err
	}

	logger.Info("消息发布者已创建", zap.String("exchange", exchange), zap.String("type", exchangeType))

	return &Publisher{
		conn:     conn,
		channel:  channel,
		exchange: exchange,
		logger:   logger,
	}, nil
}

// Publish 以JSON格式发布持久化消息
func (p *Publisher) Publish(ctx context.Context, routingKey string, message interface{}) error {
	body, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("消息序列化失败: %w", err)
	}

	err = p.channel.PublishWithContext(
		ctx,
		p.exchange,
		routingKey,
		false, // Mandatory
		false, // Immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
		},
	)

	result := "success"
	if err != nil {
		result = "failure"
	}
	metrics.IncCounterVec(metrics.MessagesPublishedTotal, map[string]string{
		"exchange":    p.exchange,
		"routing_key": routingKey,
		"result":      result,
	})

	if err != nil {
		return fmt.Errorf("发布消息失败: %w", err)
	}

	p.logger.Debug("消息已发布", zap.String("routing_key", routingKey), zap.ByteString("body", body))
	return nil
}

// Close 关闭Channel和连接
func (p *Publisher) Close() error {
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

// Handler 消息处理函数
type Handler func(ctx context.Context, routingKey string, body []byte) error

// Consumer 消息消费者
type Consumer struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   string
	logger  *zap.Logger
}

// NewConsumer 创建消费者：声明Exchange、Queue并按routingKeys绑定
func NewConsumer(url, exchange, exchangeType, queue string, routingKeys []string, logger *zap.Logger) (*Consumer, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("连接RabbitMQ失败: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("创建Channel失败: %w", err)
	}

	closeAll := func() {
		channel.Close()
		conn.Close()
	}

	if err := declareExchange(channel, exchange, exchangeType); err != nil {
		closeAll()
		return nil, err
	}

	q, err := channel.QueueDeclare(
		queue,
		true,  // Durable
		false, // AutoDelete
		false, // Exclusive
		false, // NoWait
		nil,
	)
	if err != nil {
		closeAll()
		return nil, fmt.Errorf("声明Queue失败: %w", err)
	}

	for _, routingKey := range routingKeys {
		if err := channel.QueueBind(q.Name, routingKey, exchange, false, nil); err != nil {
			closeAll()
			return nil, fmt.Errorf("绑定Queue失败: %w", err)
		}
	}

	logger.Info("消息消费者已创建", zap.String("queue", q.Name), zap.Strings("routing_keys", routingKeys))

	return &Consumer{
		conn:    conn,
		channel: channel,
		queue:   q.Name,
		logger:  logger,
	}, nil
}

// Consume 阻塞消费，直到ctx取消或Channel关闭
func (c *Consumer) Consume(ctx context.Context, handler Handler) error {
	// 每次只投递一条未确认消息
	if err := c.channel.Qos(1, 0, false); err != nil {
		return fmt.Errorf("设置Qos失败: %w", err)
	}

	msgs, err := c.channel.Consume(
		c.queue,
		"",    // Consumer标签（自动生成）
		false, // AutoAck
		false, // Exclusive
		false, // NoLocal
		false, // NoWait
		nil,
	)
	if err != nil {
		return fmt.Errorf("开始消费失败: %w", err)
	}

	c.logger.Info("开始消费消息", zap.String("queue", c.queue))

	for {
		select {
		case <-ctx.Done():
			c.logger.Info("消费者退出", zap.String("queue", c.queue))
			return nil

		case msg, ok := <-msgs:
			if !ok {
				return fmt.Errorf("消息Channel已关闭")
			}
			c.dispatch(ctx, msg, handler)
		}
	}
}

func (c *Consumer) dispatch(ctx context.Context, msg amqp.Delivery, handler Handler) {
	start := time.Now()
	err := handler(ctx, msg.RoutingKey, msg.Body)
	metrics.ObserveHistogram(metrics.MessageProcessingDuration, time.Since(start).Seconds())

	result := "success"
	switch {
	case err == nil:
		msg.Ack(false)
	case errors.Is(err, ErrPermanent):
		result = "dropped"
		c.logger.Warn("消息无法处理，已丢弃", zap.String("routing_key", msg.RoutingKey), zap.Error(err))
		msg.Nack(false, false)
	default:
		result = "failure"
		c.logger.Error("消息处理失败，将重新入队", zap.String("routing_key", msg.RoutingKey), zap.Error(err))
		msg.Nack(false, true)
	}

	metrics.IncCounterVec(metrics.MessagesConsumedTotal, map[string]string{
		"queue":  c.queue,
		"result": result,
	})
}

// Close 关闭Channel和连接
func (c *Consumer) Close() error {
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

func declareExchange(channel *amqp.Channel, exchange, exchangeType string) error {
	err := channel.ExchangeDeclare(
		exchange,
		exchangeType,
		true,  // Durable
		false, // AutoDelete
		false, // Internal
		false, // NoWait
		nil,
	)
	if err != nil {
		return fmt.Errorf("声明Exchange失败: %w", err)
	}
	return nil
}
