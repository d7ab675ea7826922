package callback

import (
	"context"
	"docbridge-svc/src/internal/models"
	"sync"

	"github.com/sirupsen/logrus"
)

// HandlerFunc reacts to one document lifecycle status. The team and
// user ids were already extracted and validated from the callback key.
type HandlerFunc func(ctx context.Context, teamID, userID string, cb *models.Callback) error

// Registrar is implemented by every status handler so the dependency
// manager can register them all at startup.
type Registrar interface {
	Status() models.CallbackStatus
	Handler() HandlerFunc
}

// Registry maps callback statuses to handlers. The first registration
// for a status wins and later ones are silently ignored; this mirrors
// the historical contract callers rely on. See DESIGN.md for the
// review flag on silent shadowing.
type Registry interface {
	Register(registrar Registrar)
	Find(status models.CallbackStatus) (HandlerFunc, bool)
}

type registry struct {
	mu       sync.RWMutex
	handlers map[models.CallbackStatus]HandlerFunc
}

func NewRegistry() Registry {
	return &registry{handlers: make(map[models.CallbackStatus]HandlerFunc)}
}

func (r *registry) Register(registrar Registrar) {
	r.mu.Lock()
	defer r.mu.Unlock()

	status := registrar.Status()
	if _, exists := r.handlers[status]; exists {
		logrus.WithField("status", status.String()).Debug("Callback handler already registered, keeping first")
		return
	}

	r.handlers[status] = registrar.Handler()
}

func (r *registry) Find(status models.CallbackStatus) (HandlerFunc, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	handler, ok := r.handlers[status]
	return handler, ok
}
