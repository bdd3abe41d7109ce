package scheduler

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/harrison/fseq/internal/models"
)

// TempPrefix is prepended to a destination's base name to form the temporary
// used when breaking a cycle.
const TempPrefix = "_"

var (
	// ErrDuplicateSource means two moves were requested for one file.
	ErrDuplicateSource = errors.New("more than one move from the same source")
	// ErrDuplicateDestination means two files were requested to land on one path.
	ErrDuplicateDestination = errors.New("more than one move to the same destination")
)

type edge struct {
	src  string
	dest string
	done bool
}

type scheduler struct {
	bySource map[string]*edge
	byDest   map[string]*edge
	known    map[string]bool
	plan     models.Plan
	temps    int
}

// Result is a schedule plus how many temporaries it needed.
type Result struct {
	Plan        models.Plan
	Temporaries int
}

// Schedule orders raw into a plan in which every destination is vacant when
// its action runs. Moves of a file onto itself are dropped as no-ops; every
// other action appears in the plan, possibly split in two around a
// temporary.
func Schedule(raw []models.RenameAction) (models.Plan, error) {
	res, err := ScheduleWithStats(raw)
	if err != nil {
		return nil, err
	}
	return res.Plan, nil
}

// ScheduleWithStats is Schedule that also reports the temporaries used.
func ScheduleWithStats(raw []models.RenameAction) (*Result, error) {
	s := &scheduler{
		bySource: make(map[string]*edge, len(raw)),
		byDest:   make(map[string]*edge, len(raw)),
		known:    make(map[string]bool, 2*len(raw)),
		plan:     make(models.Plan, 0, len(raw)),
	}

	order := make([]*edge, 0, len(raw))
	for _, a := range raw {
		if a.IsNoop() {
			continue
		}
		if _, dup := s.bySource[a.Src]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateSource, a.Src)
		}
		if _, dup := s.byDest[a.Dest]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateDestination, a.Dest)
		}

		e := &edge{src: a.Src, dest: a.Dest}
		s.bySource[e.src] = e
		s.byDest[e.dest] = e
		s.known[e.src] = true
		s.known[e.dest] = true
		order = append(order, e)
	}

	for _, e := range order {
		if !e.done {
			s.place(e)
		}
	}

	return &Result{Plan: s.plan, Temporaries: s.temps}, nil
}

// place emits e together with the rest of its chain or cycle.
func (s *scheduler) place(e *edge) {
	tail := e.dest
	for steps := 0; steps <= len(s.bySource); steps++ {
		next, occupied := s.bySource[tail]
		if !occupied {
			// tail is vacant: unwind the chain from its far end.
			s.drain(tail)
			return
		}
		if next == e {
			s.breakCycle(e)
			return
		}
		tail = next.dest
	}
	// Unreachable with unique sources and destinations.
	panic(fmt.Sprintf("scheduler: no chain end found from %s", e.src))
}

// breakCycle parks e's file on a temporary, which vacates e.src, and queues
// the temporary for its real destination.
func (s *scheduler) breakCycle(e *edge) {
	tmp := s.tempFor(e.dest)

	s.remove(e)
	s.plan = append(s.plan, models.RenameAction{Src: e.src, Dest: tmp})
	s.temps++

	parked := &edge{src: tmp, dest: e.dest}
	s.bySource[parked.src] = parked
	s.byDest[parked.dest] = parked

	s.drain(e.src)
}

// drain repeatedly emits the pending move into the vacant path, which in
// turn vacates that move's source.
func (s *scheduler) drain(vacant string) {
	for {
		e, ok := s.byDest[vacant]
		if !ok {
			return
		}
		s.remove(e)
		s.plan = append(s.plan, models.RenameAction{Src: e.src, Dest: e.dest})
		vacant = e.src
	}
}

func (s *scheduler) remove(e *edge) {
	e.done = true
	delete(s.bySource, e.src)
	delete(s.byDest, e.dest)
}

// tempFor derives a temporary name from dest that no pending or scheduled
// action refers to.
func (s *scheduler) tempFor(dest string) string {
	dir, base := filepath.Split(dest)
	candidate := dir + TempPrefix + base
	for s.known[candidate] {
		base = TempPrefix + base
		candidate = dir + TempPrefix + base
	}
	s.known[candidate] = true
	return candidate
}
