package session

import (
	"encoding/json"
	"runtime/debug"
	"sync"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/tickdeck/go-tickdeck/internal/countdown"
	"github.com/tickdeck/go-tickdeck/pkg/logger"
	"github.com/tickdeck/go-tickdeck/pkg/scheduler"
)

// sessionServer handles all the processing of messages from one browser
// session and its timer registry. It implements the engine's Presenter and
// Notifier collaborator interfaces by pushing messages down the websocket.
type sessionServer struct {
	id            string
	engine        *countdown.Engine
	scheduler     scheduler.Scheduler
	chimeInterval time.Duration
	createdAt     time.Time
	updatedAt     time.Time
	join          chan *client
	leave         chan *client
	process       chan *message
	stop          chan interface{}
	adapters      []EventAdapter

	clientMu sync.Mutex
	client   *client // nil while the browser is disconnected

	chimeMu sync.Mutex
	chimes  map[string]scheduler.Handle // repeating chime per completed timer
}

func newSessionServer(id string, options SessionNetworkOptions, sched scheduler.Scheduler, adapters []EventAdapter) *sessionServer {
	s := &sessionServer{
		id:            id,
		scheduler:     sched,
		chimeInterval: options.ChimeInterval,
		createdAt:     time.Now().UTC(),
		updatedAt:     time.Now().UTC(),
		join:          make(chan *client),
		leave:         make(chan *client),
		process:       make(chan *message),
		stop:          make(chan interface{}),
		adapters:      adapters,
		chimes:        make(map[string]scheduler.Handle),
	}
	s.engine = countdown.NewEngine(countdown.EngineOptions{
		MaxTimers:    options.MaxTimers,
		TickInterval: options.TickInterval,
		Scheduler:    sched,
		Presenter:    s,
		Notifier:     s,
	}, logger.Log)
	return s
}

func (s *sessionServer) Start(cleanup chan string) {
	// catch any panics and close the session out gracefully
	// prevents the server from crashing due to bugs in action handling
	defer func() {
		if r := recover(); r != nil {
			logger.Log.Error().Caller().Msgf("%v from session '%s' with stack trace %s", r, s.id, string(debug.Stack()))
			cleanup <- s.id
			s.loop() // restart the loop to allow for graceful closure
		}
	}()

	s.loop()
}

func (s *sessionServer) loop() {
	for {
		select {
		case c := <-s.join:
			s.clientMu.Lock()
			old := s.client
			s.client = c
			s.clientMu.Unlock()
			if old != nil {
				// Close hands the old client back through the leave
				// channel, so it cannot run on the loop goroutine
				go func() { _ = old.Close() }()
			}
			s.sendSessionState()
		case c := <-s.leave:
			s.clientMu.Lock()
			if s.client == c {
				s.client = nil
			}
			s.clientMu.Unlock()
		case m := <-s.process:
			s.updatedAt = time.Now().UTC()
			s.handleAction(m)
		case <-s.stop:
			return
		}
	}
}

func (s *sessionServer) handleAction(m *message) {
	var action Action
	if err := json.Unmarshal(m.payload, &action); err != nil {
		s.sendError(err)
		return
	}
	switch action.ActionType {
	case ActionAdd:
		if _, err := s.engine.Add(); err != nil {
			s.sendError(err)
		}
	case ActionConfigure:
		var details ConfigureDetails
		if err := mapstructure.WeakDecode(action.MoreDetails, &details); err != nil {
			s.sendError(err)
			return
		}
		s.engine.Configure(details.TimerID,
			clampComponent(details.Hours, 99),
			clampComponent(details.Minutes, 59),
			clampComponent(details.Seconds, 59))
	case ActionStart:
		var details TimerDetails
		if err := mapstructure.Decode(action.MoreDetails, &details); err != nil {
			s.sendError(err)
			return
		}
		s.engine.Start(details.TimerID)
	case ActionReset:
		var details TimerDetails
		if err := mapstructure.Decode(action.MoreDetails, &details); err != nil {
			s.sendError(err)
			return
		}
		s.engine.Reset(details.TimerID)
	case ActionRemove:
		var details TimerDetails
		if err := mapstructure.Decode(action.MoreDetails, &details); err != nil {
			s.sendError(err)
			return
		}
		s.engine.Remove(details.TimerID)
	case ActionDismiss:
		var details TimerDetails
		if err := mapstructure.Decode(action.MoreDetails, &details); err != nil {
			s.sendError(err)
			return
		}
		s.engine.Dismiss(details.TimerID)
	default:
		s.sendError(ErrUnknownAction(action.ActionType))
	}
}

// Join attaches a browser connection to the session, replacing any prior one
func (s *sessionServer) Join(options OpenSessionOptions) error {
	c := newClient(options.Conn, s)
	wg := new(sync.WaitGroup)
	wg.Add(2)
	go c.ReadPump(wg)
	go c.WritePump(wg)
	wg.Wait()
	s.join <- c
	return nil
}

func (s *sessionServer) Close() {
	logger.Log.Debug().Caller().Msgf("closing session server with id %s", s.id)
	s.engine.Close()
	s.chimeMu.Lock()
	for id, h := range s.chimes {
		h.Stop()
		delete(s.chimes, id)
	}
	s.chimeMu.Unlock()
	s.clientMu.Lock()
	c := s.client
	s.clientMu.Unlock()
	if c != nil {
		_ = c.Close()
	}
	s.stop <- true
}

// Presenter implementation

func (s *sessionServer) OnRecordCreated(id string) {
	s.send(OutboundMessage{Type: "Created", Payload: createdPayload{TimerID: id}})
}

func (s *sessionServer) OnTick(id string, display string, progressDegrees float64, severity countdown.Severity) {
	s.send(OutboundMessage{Type: "Tick", Payload: tickPayload{
		TimerID:         id,
		Display:         display,
		ProgressDegrees: progressDegrees,
		Severity:        severity,
	}})
}

func (s *sessionServer) OnStateChanged(id string, state countdown.State) {
	s.send(OutboundMessage{Type: "State", Payload: statePayload{TimerID: id, State: state}})
	if state == countdown.Completed {
		for _, adapter := range s.adapters {
			adapter.OnTimerCompleted(s.id, id)
		}
	}
}

func (s *sessionServer) OnRecordRemoved(id string) {
	s.send(OutboundMessage{Type: "Removed", Payload: removedPayload{TimerID: id}})
}

func (s *sessionServer) OnCapacityChanged(full bool) {
	s.send(OutboundMessage{Type: "Capacity", Payload: capacityPayload{Full: full}})
}

// Notifier implementation. The engine signals start and stop only; the 2s
// repetition cadence lives here.

func (s *sessionServer) PlayAlarm(id string) {
	s.chimeMu.Lock()
	defer s.chimeMu.Unlock()
	if _, ok := s.chimes[id]; ok {
		return
	}
	s.send(OutboundMessage{Type: "Alarm", Payload: alarmPayload{TimerID: id, Ring: true}})
	s.chimes[id] = s.scheduler.Every(s.chimeInterval, func() {
		s.send(OutboundMessage{Type: "Alarm", Payload: alarmPayload{TimerID: id, Ring: true}})
	})
}

func (s *sessionServer) StopAlarm(id string) {
	s.chimeMu.Lock()
	defer s.chimeMu.Unlock()
	h, ok := s.chimes[id]
	if !ok {
		return
	}
	h.Stop()
	delete(s.chimes, id)
	s.send(OutboundMessage{Type: "Alarm", Payload: alarmPayload{TimerID: id, Ring: false}})
}

// sendSessionState replays the registry to a freshly joined connection so a
// rejoining browser can rebuild its widgets
func (s *sessionServer) sendSessionState() {
	for _, rec := range s.engine.List() {
		s.OnRecordCreated(rec.ID)
		s.OnStateChanged(rec.ID, rec.State)
		if rec.State == countdown.Idle {
			// full ring showing the configured duration
			s.OnTick(rec.ID, countdown.FormatTime(rec.TotalSeconds), 360, countdown.SeverityNormal)
			continue
		}
		s.OnTick(rec.ID, countdown.FormatTime(rec.RemainingSeconds),
			countdown.ProgressDegrees(rec.RemainingSeconds, rec.TotalSeconds),
			countdown.SeverityFor(rec.RemainingSeconds, rec.TotalSeconds))
	}
	s.send(OutboundMessage{Type: "Capacity", Payload: capacityPayload{Full: s.engine.Full()}})
}

func (s *sessionServer) sendError(err error) {
	s.send(OutboundMessage{Type: "Error", Payload: err.Error()})
}

func (s *sessionServer) send(msg OutboundMessage) {
	payload, _ := json.Marshal(msg)
	s.clientMu.Lock()
	c := s.client
	s.clientMu.Unlock()
	if c == nil {
		return
	}
	select {
	case c.send <- payload:
	default:
		// slow or dead consumer; close it off the loop goroutine since
		// Close hands the client back through the leave channel
		go func() { _ = c.Close() }()
	}
}
