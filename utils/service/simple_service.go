package service

import (
	"context"
	"errors"
	"sync"
)

var (
	ErrServiceAlreadyStarted = errors.New("service already started")
	ErrServiceAlreadyStopped = errors.New("service already stopped")
)

// SimpleService implements the Service lifecycle around a start/stop
// callback. Stop is idempotent; Serve blocks until the service has been
// stopped, whether by Stop, by OnStart failure never occurring, or by
// cancellation of the context passed to Start.
type SimpleService struct {
	mu          sync.Mutex
	started     bool
	done        chan struct{}
	stopOnce    sync.Once
	cancel      context.CancelFunc
	startStopCb StartStopCallback
}

func NewSimpleService(startStopCb StartStopCallback) *SimpleService {
	return &SimpleService{
		done:        make(chan struct{}),
		startStopCb: startStopCb,
	}
}

func (s *SimpleService) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	select {
	case <-s.done:
		return ErrServiceAlreadyStopped
	default:
	}
	if s.started {
		return ErrServiceAlreadyStarted
	}
	wrappedCtx, cancel := context.WithCancel(ctx)
	if err := s.startStopCb.OnStart(wrappedCtx); err != nil {
		cancel()
		return err
	}
	s.started = true
	s.cancel = cancel
	go func() {
		select {
		case <-wrappedCtx.Done():
			s.Stop()
		case <-s.done:
		}
	}()
	return nil
}

func (s *SimpleService) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return false
	}
	select {
	case <-s.done:
		return false
	default:
		return true
	}
}

func (s *SimpleService) Serve() {
	<-s.done
}

func (s *SimpleService) Stop() {
	s.stopOnce.Do(func() {
		s.mu.Lock()
		cancel := s.cancel
		s.mu.Unlock()
		s.startStopCb.OnStop()
		if cancel != nil {
			cancel()
		}
		close(s.done)
	})
}
