// Package world is the small fire-keeping loop the game launches once its
// assets are ready.
package world

const (
	TicksPerSecond = 60

	MaxLogs       = 3
	StokeWarmth   = 0.35
	StartWarmth   = 0.5
	secondsToCold = 20
)

type Event int

const (
	EventNone Event = iota
	EventChop
	EventStoke
	EventFizzle
)

func (e Event) Sound() string {
	switch e {
	case EventChop:
		return "chop"
	case EventStoke:
		return "stoke"
	case EventFizzle:
		return "fizzle"
	default:
		return ""
	}
}

type Input struct {
	Chop  bool
	Stoke bool
}

// World tracks the fire's warmth and the logs the player carries. Warmth
// drains every tick; the run ends when it reaches zero.
type World struct {
	warmth float64
	logs   int
	ticks  int
	over   bool
}

func New() *World {
	return &World{warmth: StartWarmth}
}

// Update advances one tick and returns the events it produced.
func (w *World) Update(in Input) []Event {
	if w.over {
		return nil
	}
	var events []Event
	w.ticks++

	if in.Chop && w.logs < MaxLogs {
		w.logs++
		events = append(events, EventChop)
	}
	if in.Stoke && w.logs > 0 {
		w.logs--
		w.warmth += StokeWarmth
		if w.warmth > 1 {
			w.warmth = 1
		}
		events = append(events, EventStoke)
	}

	w.warmth -= 1.0 / (secondsToCold * TicksPerSecond)
	if w.warmth <= 0 {
		w.warmth = 0
		w.over = true
		events = append(events, EventFizzle)
	}
	return events
}

func (w *World) Warmth() float64 {
	return w.warmth
}

func (w *World) Logs() int {
	return w.logs
}

func (w *World) Over() bool {
	return w.over
}

// Seconds is the whole number of seconds the fire has survived.
func (w *World) Seconds() int {
	return w.ticks / TicksPerSecond
}
