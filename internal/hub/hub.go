package hub

import (
	"context"

	"github.com/DoyleJ11/lol-gold-dashboard/internal/session"
	"github.com/DoyleJ11/lol-gold-dashboard/internal/types"
)

type Msg interface{ isHubMsg() }

type Join struct {
	ClientID string
	Outbox   chan types.ServerMessage // where this client wants to receive updates
}

type Leave struct{ ClientID string }

type Publish struct {
	Result session.Result
}

type GetState struct {
	Reply chan View
}

type Shutdown struct{}

func (Join) isHubMsg()     {}
func (Leave) isHubMsg()    {}
func (Publish) isHubMsg()  {}
func (GetState) isHubMsg() {}
func (Shutdown) isHubMsg() {}

type View struct {
	Version    int
	NumClients int
}

// Hub fans poll results out to websocket subscribers. All state lives in the
// loop goroutine.
type Hub struct {
	inbox   chan Msg
	latest  *types.ServerMessage
	version int
	clients map[string]chan types.ServerMessage
	ctx     context.Context
	cancel  context.CancelFunc
}

func NewHub(parent context.Context) *Hub {
	ctx, cancel := context.WithCancel(parent)
	h := &Hub{
		inbox:   make(chan Msg, 64),
		clients: make(map[string]chan types.ServerMessage),
		ctx:     ctx,
		cancel:  cancel,
	}
	go h.loop()
	return h
}

func (h *Hub) Inbox() chan<- Msg { return h.inbox }

// Done is closed once the hub has shut down.
func (h *Hub) Done() <-chan struct{} { return h.ctx.Done() }

func (h *Hub) loop() {
	for {
		select {
		case <-h.ctx.Done():
			h.shutdown()
			return

		case m := <-h.inbox:
			switch msg := m.(type) {
			case Join:
				h.clients[msg.ClientID] = msg.Outbox
				// new subscribers get the latest state straight away
				if h.latest != nil {
					h.send(msg.ClientID, msg.Outbox, *h.latest)
				}

			case Leave:
				delete(h.clients, msg.ClientID)

			case Publish:
				h.version++
				out := types.ServerMessage{
					Type:    types.MsgDashboard,
					Version: h.version,
					State:   msg.Result.State,
					View:    msg.Result.View,
				}
				h.latest = &out
				h.broadcast(out)

			case GetState:
				msg.Reply <- View{Version: h.version, NumClients: len(h.clients)}

			case Shutdown:
				h.shutdown()
				return
			}
		}
	}
}

func (h *Hub) shutdown() {
	for id, ch := range h.clients {
		close(ch) // no more updates
		delete(h.clients, id)
	}
	h.cancel()
}

func (h *Hub) broadcast(out types.ServerMessage) {
	for id, ch := range h.clients {
		h.send(id, ch, out)
	}
}

func (h *Hub) send(id string, ch chan types.ServerMessage, out types.ServerMessage) {
	select {
	case ch <- out:
	default:
		// Client is slow/full - drop them.
		close(ch)
		delete(h.clients, id)
	}
}
