package mail

import (
	"context"
	"sync"
	"time"

	"github.com/auxesia/auxesia-server/internal/logger"
	"github.com/auxesia/auxesia-server/internal/model"
)

var _ model.MailDispatcher = (*Dispatcher)(nil)

const sendTimeout = 30 * time.Second

// Dispatcher queues mail for background delivery. Signup responds to the
// caller without waiting; delivery failures are logged here and never
// surfaced to the request that queued the message.
type Dispatcher struct {
	mailer model.Mailer
	logger *logger.Logger
	wg     sync.WaitGroup
}

// NewDispatcher creates a Dispatcher delivering through mailer.
func NewDispatcher(mailer model.Mailer, logger *logger.Logger) *Dispatcher {
	return &Dispatcher{
		mailer: mailer,
		logger: logger,
	}
}

// DispatchVerification sends the verification mail on a background
// goroutine and returns immediately.
func (d *Dispatcher) DispatchVerification(email, token string) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		defer cancel()

		if err := d.mailer.SendVerification(ctx, email, token); err != nil {
			d.logger.Error("Mail dispatcher: verification mail failed",
				"email", email,
				"error", err.Error())
			return
		}

		d.logger.Info("Mail dispatcher: verification mail sent",
			"email", email)
	}()
}

// Wait blocks until all queued deliveries have finished. Used during
// shutdown.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}
