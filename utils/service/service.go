package service

import (
	"context"
)

// Service is a start/serve/stop lifecycle. Start launches the service and
// returns; Serve blocks the caller until the service stops.
type Service interface {
	Start(ctx context.Context) error
	IsRunning() bool
	Serve()
	Stop()
}

type StartStopCallback interface {
	OnStart(ctx context.Context) error
	OnStop()
}
