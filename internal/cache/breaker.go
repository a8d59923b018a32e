package cache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"VendorHub/pkg/logger"
)

var ErrBreakerOpen = errors.New("circuit breaker is open")

// State 熔断器状态
type State int

const (
	StateClosed   State = iota // 正常
	StateOpen                  // 熔断中
	StateHalfOpen              // 尝试恢复
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// CircuitBreaker 缓存熔断器，Redis 不可用时让调用方直接回源数据库
type CircuitBreaker struct {
	lastFailTime     time.Time
	now              func() time.Time
	name             string
	resetTimeout     time.Duration
	maxFailures      int
	halfOpenMaxCalls int

	mu            sync.Mutex
	state         State
	failures      int
	halfOpenCalls int
}

func NewCircuitBreaker(name string, maxFailures int, resetTimeout time.Duration) *CircuitBreaker {
	return &CircuitBreaker{
		name:             name,
		maxFailures:      maxFailures,
		resetTimeout:     resetTimeout,
		halfOpenMaxCalls: 3,
		state:            StateClosed,
		now:              time.Now,
	}
}

// Call 熔断打开时返回 ErrBreakerOpen，不执行 operation
func (cb *CircuitBreaker) Call(ctx context.Context, operation func() error) error {
	if !cb.allowRequest() {
		return fmt.Errorf("%w: %s", ErrBreakerOpen, cb.name)
	}

	err := operation()
	// 调用方取消不算 Redis 故障
	if ctx.Err() != nil && errors.Is(err, ctx.Err()) {
		cb.release()
		return err
	}
	cb.recordResult(err)
	return err
}

func (cb *CircuitBreaker) allowRequest() bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if cb.state == StateOpen && cb.now().Sub(cb.lastFailTime) >= cb.resetTimeout {
		cb.transitionTo(StateHalfOpen)
	}

	switch cb.state {
	case StateClosed:
		return true
	case StateHalfOpen:
		if cb.halfOpenCalls >= cb.halfOpenMaxCalls {
			return false
		}
		cb.halfOpenCalls++
		return true
	default:
		return false
	}
}

func (cb *CircuitBreaker) release() {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	if cb.state == StateHalfOpen && cb.halfOpenCalls > 0 {
		cb.halfOpenCalls--
	}
}

func (cb *CircuitBreaker) recordResult(err error) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if err == nil {
		if cb.state == StateHalfOpen {
			cb.transitionTo(StateClosed)
		}
		cb.failures = 0
		return
	}

	cb.failures++
	cb.lastFailTime = cb.now()
	logger.Logger.Warn("Cache operation failed",
		zap.String("breaker", cb.name),
		zap.Int("failures", cb.failures),
		zap.Stringer("state", cb.state),
		zap.Error(err),
	)

	if cb.state == StateHalfOpen || cb.failures >= cb.maxFailures {
		cb.transitionTo(StateOpen)
	}
}

func (cb *CircuitBreaker) transitionTo(state State) {
	cb.state = state
	cb.halfOpenCalls = 0
	if state == StateClosed {
		cb.failures = 0
	}

	logger.Logger.Info("Circuit breaker state changed",
		zap.String("breaker", cb.name),
		zap.Stringer("state", state),
		zap.Duration("reset_timeout", cb.resetTimeout),
	)
}

func (cb *CircuitBreaker) GetState() State {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}

// 全局熔断器
var (
	// 资料缓存：连续失败 5 次熔断，30 秒后尝试恢复
	ProfileBreaker = NewCircuitBreaker("vendor_profile_cache", 5, 30*time.Second)
)
