package postgresadapter

import (
	"time"

	"galavote/contexts/event-catalog/event-service/ports"
)

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now().UTC() }

var _ ports.Clock = SystemClock{}
