package types

import "github.com/DoyleJ11/lol-gold-dashboard/internal/session"

// Client -> Server
// Refresh: {} (ask for an immediate poll)

// Server -> Client
// Dashboard:
//   version: number
//   state: "live" | "stale" | "not_connected" | "loading"
//   view: session.View (omitted unless live or stale)
//
// Error:
//   error: string

type ClientMessage struct {
	Type string `json:"type"`
}

const (
	MsgRefresh   = "Refresh"
	MsgDashboard = "Dashboard"
	MsgError     = "Error"
)

type ServerMessage struct {
	Type    string        `json:"type"`
	Version int           `json:"version,omitempty"`
	State   session.State `json:"state,omitempty"`
	View    *session.View `json:"view,omitempty"`
	Error   string        `json:"error,omitempty"`
}
