// Package circuitbreaker 熔断器
//
// 用于保护对外部依赖（消息队列、对象存储）的调用：
// 连续失败达到阈值后进入OPEN状态直接拒绝，超时后进入HALF_OPEN放行少量探测请求，
// 探测成功则恢复CLOSED，失败则重新OPEN。
package circuitbreaker

import (
	"errors"
	"sync"
	"time"
)

// State 熔断器状态
type State int

const (
	StateClosed State = iota
	StateOpen
	StateHalfOpen
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "CLOSED"
	case StateOpen:
		return "OPEN"
	case StateHalfOpen:
		return "HALF_OPEN"
	default:
		return "UNKNOWN"
	}
}

var (
	// ErrOpenState 熔断器打开，请求被拒绝
	ErrOpenState = errors.New("circuit breaker is open")
	// ErrTooManyRequests 半开状态下探测请求已满
	ErrTooManyRequests = errors.New("circuit breaker: too many requests in half-open state")
)

// Config 熔断器配置
type Config struct {
	FailureThreshold    uint32        // 连续失败多少次后打开，默认5
	OpenTimeout         time.Duration // OPEN持续多久后转为HALF_OPEN，默认30s
	HalfOpenMaxRequests uint32        // HALF_OPEN允许的并发探测数，默认1
	OnStateChange       func(name string, from, to State)
}

// CircuitBreaker 熔断器
type CircuitBreaker struct {
	name string
	cfg  Config
	now  func() time.Time

	mu                  sync.Mutex
	state               State
	consecutiveFailures uint32
	halfOpenInFlight    uint32
	openedAt            time.Time
}

// New 创建熔断器
func New(name string, cfg Config) *CircuitBreaker {
	if cfg.FailureThreshold == 0 {
		cfg.FailureThreshold = 5
	}
	if cfg.OpenTimeout <= 0 {
		cfg.OpenTimeout = 30 * time.Second
	}
	if cfg.HalfOpenMaxRequests == 0 {
		cfg.HalfOpenMaxRequests = 1
	}
	return &CircuitBreaker{name: name, cfg: cfg, now: time.Now}
}

// Execute 在熔断器保护下执行fn
func (cb *CircuitBreaker) Execute(fn func() error) error {
	if err := cb.before(); err != nil {
		return err
	}
	err := fn()
	cb.after(err == nil)
	return err
}

// State 当前状态
func (cb *CircuitBreaker) State() State {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.refresh()
	return cb.state
}

func (cb *CircuitBreaker) before() error {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.refresh()
	switch cb.state {
	case StateOpen:
		return ErrOpenState
	case StateHalfOpen:
		if cb.halfOpenInFlight >= cb.cfg.HalfOpenMaxRequests {
			return ErrTooManyRequests
		}
		cb.halfOpenInFlight++
	}
	return nil
}

func (cb *CircuitBreaker) after(success bool) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if cb.state == StateHalfOpen && cb.halfOpenInFlight > 0 {
		cb.halfOpenInFlight--
	}

	if success {
		cb.consecutiveFailures = 0
		if cb.state == StateHalfOpen {
			cb.setState(StateClosed)
		}
		return
	}

	cb.consecutiveFailures++
	if cb.state == StateHalfOpen || cb.consecutiveFailures >= cb.cfg.FailureThreshold {
		cb.setState(StateOpen)
	}
}

// refresh OPEN超时后转为HALF_OPEN（调用方持有锁）
func (cb *CircuitBreaker) refresh() {
	if cb.state == StateOpen && cb.now().Sub(cb.openedAt) >= cb.cfg.OpenTimeout {
		cb.setState(StateHalfOpen)
	}
}

func (cb *CircuitBreaker) setState(to State) {
	from := cb.state
	if from == to {
		return
	}
	cb.state = to
	cb.halfOpenInFlight = 0
	if to == StateOpen {
		cb.openedAt = cb.now()
	}
	if to == StateClosed {
		cb.consecutiveFailures = 0
	}
	if cb.cfg.OnStateChange != nil {
		cb.cfg.OnStateChange(cb.name, from, to)
	}
}
