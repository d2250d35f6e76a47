package worker

import (
	"context"
)

// Worker - фоновый потребитель событий. Start блокирует до отмены
// контекста или вызова Stop; Stop идемпотентен.
type Worker interface {
	Start(ctx context.Context) error
	Stop() error
	Name() string
}
