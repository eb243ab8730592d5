package server

import (
	"errors"
	"net/http"

	"github.com/gorilla/websocket"

	"faultmap/pkg/heightmap/export"
	"faultmap/pkg/heightmap/faultfractal"
)

// Session operations sent by clients.
const (
	OpLoad = "load"
	OpSet  = "set"
	OpNew  = "new"
)

// Request is a client message on the websocket.
type Request struct {
	Op         string               `json:"op"`
	Iterations *int                 `json:"iterations,omitempty"`
	MinDelta   *int                 `json:"min,omitempty"`
	MaxDelta   *int                 `json:"max,omitempty"`
	Filter     *float64             `json:"filter,omitempty"`
	Config     *faultfractal.Config `json:"config,omitempty"`
}

// Response is a server message on the websocket. Loads counts the grids the
// session's generator has produced, the first being number 1.
type Response struct {
	Type   string              `json:"type"`
	Error  string              `json:"error,omitempty"`
	Loads  int                 `json:"loads,omitempty"`
	Config faultfractal.Config `json:"config"`
	Grid   *export.Document    `json:"grid,omitempty"`
}

type session struct {
	s     *Server
	conn  *websocket.Conn
	gen   *faultfractal.Generator
	loads int
}

func (s *Server) handleSession(w http.ResponseWriter, req *http.Request) {
	conn, err := s.upgrader.Upgrade(w, req, nil)
	if err != nil {
		s.log.Error("websocket upgrade", "error", err)
		return
	}
	defer conn.Close()

	gen, err := faultfractal.NewWithLogger(s.cfg.Generation(), s.log)
	if err != nil {
		s.log.Error("session generator", "error", err)
		return
	}
	ss := &session{s: s, conn: conn, gen: gen, loads: 1}
	if err := ss.sendGrid(); err != nil {
		return
	}

	// The generator is only touched from this loop.
	for {
		var msg Request
		if err := conn.ReadJSON(&msg); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.log.Debug("websocket read", "error", err)
			}
			return
		}
		if err := ss.handle(msg); err != nil {
			s.log.Error("websocket write", "error", err)
			return
		}
	}
}

func (ss *session) handle(msg Request) error {
	switch msg.Op {
	case OpLoad:
		ss.gen.Load()
		ss.loads++
		return ss.sendGrid()
	case OpSet:
		if err := ss.apply(msg); err != nil {
			return ss.sendError(err)
		}
		return ss.conn.WriteJSON(Response{Type: "config", Loads: ss.loads, Config: ss.gen.Config()})
	case OpNew:
		if msg.Config == nil {
			return ss.sendError(errors.New("new requires a config"))
		}
		if err := ss.s.checkLimits(*msg.Config); err != nil {
			return ss.sendError(err)
		}
		gen, err := faultfractal.NewWithLogger(*msg.Config, ss.s.log)
		if err != nil {
			return ss.sendError(err)
		}
		ss.gen, ss.loads = gen, 1
		return ss.sendGrid()
	}
	return ss.sendError(errors.New("unknown op " + msg.Op))
}

// apply validates every requested change against the current parameters
// before running any mutator, so a rejected request changes nothing.
func (ss *session) apply(msg Request) error {
	next := ss.gen.Config()
	if msg.Iterations != nil {
		next.Iterations = *msg.Iterations
	}
	if msg.MinDelta != nil {
		next.MinDelta = *msg.MinDelta
	}
	if msg.MaxDelta != nil {
		next.MaxDelta = *msg.MaxDelta
	}
	if msg.Filter != nil {
		next.Filter = *msg.Filter
	}
	if err := ss.s.checkLimits(next); err != nil {
		return err
	}

	cur := ss.gen.Config()
	if err := ss.gen.SetIterations(next.Iterations); err != nil {
		return err
	}
	if err := ss.gen.SetFilter(next.Filter); err != nil {
		return err
	}
	// Raise max before min when the new min is above the old max.
	if next.MinDelta > cur.MaxDelta {
		if err := ss.gen.SetMaxDelta(next.MaxDelta); err != nil {
			return err
		}
		return ss.gen.SetMinDelta(next.MinDelta)
	}
	if err := ss.gen.SetMinDelta(next.MinDelta); err != nil {
		return err
	}
	return ss.gen.SetMaxDelta(next.MaxDelta)
}

func (ss *session) sendGrid() error {
	cfg := ss.gen.Config()
	doc := export.NewDocument(ss.gen.Heights(), cfg.Seed)
	return ss.conn.WriteJSON(Response{Type: "grid", Loads: ss.loads, Config: cfg, Grid: &doc})
}

func (ss *session) sendError(err error) error {
	return ss.conn.WriteJSON(Response{Type: "error", Error: err.Error(), Loads: ss.loads, Config: ss.gen.Config()})
}
