// Package messaging 订单事件的发布与消费
package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/xiebiao/mall/internal/domain/order"
	"github.com/xiebiao/mall/pkg/circuitbreaker"
	"github.com/xiebiao/mall/pkg/mq"
)

// EventHandler 订单事件处理器（通知服务实现）
type EventHandler interface {
	Handle(ctx context.Context, evt order.Event) error
}

// Broker 消息发布接口，由*mq.Publisher实现
type Broker interface {
	Publish(ctx context.Context, routingKey string, message interface{}) error
}

// LocalPublisher 进程内直接调用处理器（mq.enabled=false时使用）
type LocalPublisher struct {
	handler EventHandler
	log     *zap.Logger
}

// NewLocalPublisher 创建进程内发布者
func NewLocalPublisher(handler EventHandler, log *zap.Logger) *LocalPublisher {
	return &LocalPublisher{handler: handler, log: log}
}

// Publish 同步处理事件，处理失败只记录日志
func (p *LocalPublisher) Publish(ctx context.Context, evt order.Event) error {
	if err := p.handler.Handle(ctx, evt); err != nil {
		p.log.Error("处理订单事件失败",
			zap.String("type", evt.Type), zap.Uint("order_id", evt.OrderID), zap.Error(err))
		return err
	}
	return nil
}

// MQPublisher 发布到RabbitMQ，经过熔断器保护
// 发布失败或熔断打开时降级为进程内处理
type MQPublisher struct {
	broker   Broker
	breaker  *circuitbreaker.CircuitBreaker
	fallback *LocalPublisher
	timeout  time.Duration
	log      *zap.Logger
}

// NewMQPublisher 创建RabbitMQ事件发布者
func NewMQPublisher(broker Broker, fallback *LocalPublisher, log *zap.Logger) *MQPublisher {
	return &MQPublisher{
		broker: broker,
		breaker: circuitbreaker.New("mq", circuitbreaker.Config{
			FailureThreshold: 3,
			OpenTimeout:      30 * time.Second,
			OnStateChange: func(name string, from, to circuitbreaker.State) {
				log.Warn("熔断器状态变化", zap.String("name", name),
					zap.String("from", from.String()), zap.String("to", to.String()))
			},
		}),
		fallback: fallback,
		timeout:  3 * time.Second,
		log:      log,
	}
}

// Publish 以事件类型作为routing key发布
func (p *MQPublisher) Publish(ctx context.Context, evt order.Event) error {
	err := p.breaker.Execute(func() error {
		pubCtx, cancel := context.WithTimeout(ctx, p.timeout)
		defer cancel()
		return p.broker.Publish(pubCtx, evt.Type, evt)
	})
	if err == nil {
		return nil
	}

	p.log.Warn("发布订单事件失败，降级为进程内处理",
		zap.String("type", evt.Type), zap.Uint("order_id", evt.OrderID), zap.Error(err))
	return p.fallback.Publish(ctx, evt)
}

// ConsumeHandler 把RabbitMQ消息解码为订单事件后交给handler
// 消息格式错误时返回mq.ErrPermanent，消息不再重新入队
func ConsumeHandler(handler EventHandler) mq.Handler {
	return func(ctx context.Context, routingKey string, body []byte) error {
		var evt order.Event
		if err := json.Unmarshal(body, &evt); err != nil {
			return fmt.Errorf("%w: 解析订单事件失败: %v", mq.ErrPermanent, err)
		}
		if evt.Type == "" {
			evt.Type = routingKey
		}
		return handler.Handle(ctx, evt)
	}
}
