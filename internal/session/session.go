package session

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/DoyleJ11/lol-gold-dashboard/internal/ddragon"
	"github.com/DoyleJ11/lol-gold-dashboard/internal/engine"
	"github.com/DoyleJ11/lol-gold-dashboard/internal/history"
	"github.com/DoyleJ11/lol-gold-dashboard/internal/liveclient"
)

type State string

const (
	StateLive         State = "live"
	StateStale        State = "stale"
	StateNotConnected State = "not_connected"
	StateLoading      State = "loading"
)

const highlightColor = "gold"

type TeamColors struct {
	Left  string `json:"left"`
	Right string `json:"right"`
}

func colorsFor(inverted bool) TeamColors {
	if inverted {
		return TeamColors{Left: "red", Right: "blue"}
	}
	return TeamColors{Left: "blue", Right: "red"}
}

type LeaderboardRow struct {
	engine.LeaderboardEntry
	Color string `json:"color"`
}

// View is everything the templates and the websocket need for one poll.
type View struct {
	Rows           []engine.Row      `json:"rows"`
	Totals         engine.TeamTotals `json:"totals"`
	Colors         TeamColors        `json:"colors"`
	Leaderboard    []LeaderboardRow  `json:"leaderboard"`
	GameMode       string            `json:"game_mode"`
	ElapsedMinutes float64           `json:"elapsed_minutes"`
	Patch          string            `json:"patch"`
	Inverted       bool              `json:"inverted"`
	PositionSorted bool              `json:"position_sorted"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

type Result struct {
	State State `json:"state"`
	View  *View `json:"view,omitempty"`
}

// Recorder receives every raw document fetched from the game client.
type Recorder interface {
	Save(data []byte) error
}

type Options struct {
	Perspective engine.Perspective
	Highlight   string
	Recorder    Recorder
	Logger      *zap.Logger
}

// Session owns the state that outlives a single poll: the differential
// history and the last good view. Poll calls are serialized.
type Session struct {
	mu       sync.Mutex
	source   liveclient.Source
	ref      *ddragon.Reference
	history  *history.Track
	opts     Options
	log      *zap.Logger
	last     *View
	inverted atomic.Bool
	now      func() time.Time
}

func New(source liveclient.Source, ref *ddragon.Reference, opts Options) *Session {
	if opts.Perspective == "" {
		opts.Perspective = engine.PerspectiveFixed
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Session{
		source:  source,
		ref:     ref,
		history: history.NewTrack(),
		opts:    opts,
		log:     log,
		now:     time.Now,
	}
}

func (s *Session) History() *history.Track { return s.history }

// Inverted reports whether CHAOS was drawn on the left in the last good poll.
func (s *Session) Inverted() bool { return s.inverted.Load() }

func (s *Session) Patch() string { return s.ref.Patch }

// Poll runs one fetch-build-aggregate pass. It never returns an error; the
// outcome is reported through Result.State.
func (s *Session) Poll(ctx context.Context) Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.source.Fetch(ctx)
	if err != nil {
		return s.fail(err)
	}
	if s.opts.Recorder != nil {
		if err := s.opts.Recorder.Save(data); err != nil {
			s.log.Warn("failed to record snapshot", zap.Error(err))
		}
	}

	view, err := s.build(data)
	if err != nil {
		return s.fail(err)
	}

	if s.history.Record(view.ElapsedMinutes, view.Totals.Differential) {
		s.log.Debug("differential changed",
			zap.Float64("minute", view.ElapsedMinutes),
			zap.Int("differential", view.Totals.Differential),
		)
	}
	s.last = view
	s.inverted.Store(view.Inverted)
	return Result{State: StateLive, View: view}
}

func (s *Session) fail(err error) Result {
	if errors.Is(err, liveclient.ErrUpstreamUnreachable) {
		if s.last != nil {
			s.log.Debug("live client unreachable, serving last view", zap.Error(err))
			return Result{State: StateStale, View: s.last}
		}
		s.log.Debug("live client unreachable", zap.Error(err))
		return Result{State: StateNotConnected}
	}

	// Anything else means the client answered without a usable game: treat it
	// as a new match loading.
	if s.history.Tracking() || s.last != nil {
		s.log.Info("match unavailable, resetting session", zap.Error(err))
	}
	s.history.Reset()
	s.last = nil
	return Result{State: StateLoading}
}

func (s *Session) build(data []byte) (*View, error) {
	m, err := liveclient.Decode(data)
	if err != nil {
		return nil, err
	}

	players, err := engine.BuildPlayers(m.Players, s.ref.Items, s.ref.Champions)
	if err != nil {
		return nil, err
	}
	if n := lo.SumBy(players, func(p engine.PlayerRecord) int { return p.UnpricedItems }); n > 0 {
		s.log.Debug("items without a price counted as zero", zap.Int("items", n))
	}

	order := engine.ResolveTeamOrder(s.opts.Perspective, m)
	arranged, sorted := engine.ArrangeByPosition(players, order)

	rows, totals := engine.Aggregate(arranged, order)

	inverted := engine.Inverted(order)
	colors := colorsFor(inverted)
	board := lo.Map(engine.Leaderboard(players, s.opts.Highlight), func(e engine.LeaderboardEntry, _ int) LeaderboardRow {
		row := LeaderboardRow{LeaderboardEntry: e, Color: colors.Right}
		switch {
		case e.Highlight:
			row.Color = highlightColor
		case e.Team == order[0]:
			row.Color = colors.Left
		}
		return row
	})

	return &View{
		Rows:           rows,
		Totals:         totals,
		Colors:         colors,
		Leaderboard:    board,
		GameMode:       m.GameMode,
		ElapsedMinutes: m.ElapsedMinutes(),
		Patch:          s.ref.Patch,
		Inverted:       inverted,
		PositionSorted: sorted,
		UpdatedAt:      s.now(),
	}, nil
}
