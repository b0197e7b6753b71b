package poller

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/DoyleJ11/lol-gold-dashboard/internal/hub"
	"github.com/DoyleJ11/lol-gold-dashboard/internal/session"
)

type Session interface {
	Poll(ctx context.Context) session.Result
}

// Poller drives the session on a ticker and publishes every result to the
// hub, so websocket clients see updates without refreshing the page.
type Poller struct {
	session  Session
	inbox    chan<- hub.Msg
	interval time.Duration
	refresh  chan struct{}
	log      *zap.Logger
}

func New(s Session, inbox chan<- hub.Msg, interval time.Duration, log *zap.Logger) *Poller {
	return &Poller{
		session:  s,
		inbox:    inbox,
		interval: interval,
		refresh:  make(chan struct{}, 1),
		log:      log,
	}
}

// Refresh asks for a poll as soon as possible. Requests made while one is
// already pending are merged.
func (p *Poller) Refresh() {
	select {
	case p.refresh <- struct{}{}:
	default:
	}
}

// Run polls until ctx is cancelled.
func (p *Poller) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.log.Info("poller started", zap.Duration("interval", p.interval))
	var last session.State
	p.poll(ctx, &last)

	for {
		select {
		case <-ctx.Done():
			p.log.Info("poller stopped")
			return
		case <-ticker.C:
			p.poll(ctx, &last)
		case <-p.refresh:
			p.poll(ctx, &last)
		}
	}
}

func (p *Poller) poll(ctx context.Context, last *session.State) {
	res := p.session.Poll(ctx)
	if res.State != *last {
		p.log.Info("dashboard state changed", zap.String("from", string(*last)), zap.String("to", string(res.State)))
		*last = res.State
	}

	select {
	case p.inbox <- hub.Publish{Result: res}:
	case <-ctx.Done():
	}
}
