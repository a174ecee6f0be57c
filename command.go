package bubble

import (
	"fmt"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// Command is one of the operations a [Session] can apply: [DrawCommand],
// [FlipCommand], [CollapseCommand], [SplitCommand], [RemoveCommand],
// [ResetCommand] and [StepCommand].
type Command interface {
	fmt.Stringer
	command()
}

// DrawCommand extends the polyline being drawn by Point. A nil Point
// finishes the polyline and grafts it into the cluster.
type DrawCommand struct {
	Point *Point
}

// FlipCommand flips the chain with the given id.
type FlipCommand struct {
	Chain int
}

// CollapseCommand collapses the chain with the given id.
type CollapseCommand struct {
	Chain int
}

// SplitCommand splits the node with the given id.
type SplitCommand struct {
	Node int
}

// RemoveCommand removes the chain with the given id and one of its regions.
// A zero Region picks the chain's first region.
type RemoveCommand struct {
	Chain  int
	Region int
}

// ResetCommand replaces the cluster by an empty one with the same options.
type ResetCommand struct{}

// StepCommand evolves the cluster N times.
type StepCommand struct {
	N int
}

func (DrawCommand) command()     {}
func (FlipCommand) command()     {}
func (CollapseCommand) command() {}
func (SplitCommand) command()    {}
func (RemoveCommand) command()   {}
func (ResetCommand) command()    {}
func (StepCommand) command()     {}

func (cmd DrawCommand) String() string {
	if cmd.Point == nil {
		return "draw(end)"
	}
	return fmt.Sprintf("draw%v", *cmd.Point)
}

func (cmd FlipCommand) String() string     { return fmt.Sprintf("flip(%d)", cmd.Chain) }
func (cmd CollapseCommand) String() string { return fmt.Sprintf("collapse(%d)", cmd.Chain) }
func (cmd SplitCommand) String() string    { return fmt.Sprintf("split(%d)", cmd.Node) }
func (cmd RemoveCommand) String() string   { return fmt.Sprintf("remove(%d, %d)", cmd.Chain, cmd.Region) }
func (ResetCommand) String() string        { return "reset()" }
func (cmd StepCommand) String() string     { return fmt.Sprintf("step(%d)", cmd.N) }

// Session applies commands, referring to entities by id, to a cluster.
type Session struct {
	opts    Options
	cluster *Cluster
	pen     []Point
}

// NewSession returns a session with an empty cluster.
func NewSession(opts Options) *Session {
	return &Session{
		opts:    opts,
		cluster: New(opts),
	}
}

// Cluster returns the cluster the session operates on. It changes on
// [ResetCommand].
func (s *Session) Cluster() *Cluster { return s.cluster }

// Pen returns the points of the polyline being drawn.
func (s *Session) Pen() []Point { return append([]Point(nil), s.pen...) }

// Apply executes cmd. A command that fails returns an error and leaves the
// cluster unchanged.
func (s *Session) Apply(cmd Command) error {
	c := s.cluster
	switch cmd := cmd.(type) {
	case DrawCommand:
		return s.draw(cmd.Point)
	case FlipCommand:
		ch, err := s.chain(cmd.Chain)
		if err != nil {
			return err
		}
		return c.FlipChain(ch)
	case CollapseCommand:
		ch, err := s.chain(cmd.Chain)
		if err != nil {
			return err
		}
		return c.CollapseChain(ch)
	case SplitCommand:
		v, ok := c.Node(cmd.Node)
		if !ok {
			return fmt.Errorf("node %d: %w", cmd.Node, ErrNotFound)
		}
		return c.SplitVertex(v)
	case RemoveCommand:
		ch, err := s.chain(cmd.Chain)
		if err != nil {
			return err
		}
		var r *Region
		if cmd.Region != 0 {
			var ok bool
			if r, ok = c.Region(cmd.Region); !ok {
				return fmt.Errorf("region %d: %w", cmd.Region, ErrNotFound)
			}
		}
		return c.RemoveChainAndRegion(ch, r)
	case ResetCommand:
		s.opts = c.Options()
		s.cluster = New(s.opts)
		s.pen = nil
		return nil
	case StepCommand:
		for range cmd.N {
			if err := c.Evolve(); err != nil {
				return err
			}
		}
		return nil
	default:
		panic(fmt.Sprintf("unhandled command %T", cmd))
	}
}

func (s *Session) chain(id int) (*Chain, error) {
	ch, ok := s.cluster.Chain(id)
	if !ok {
		return nil, fmt.Errorf("chain %d: %w", id, ErrNotFound)
	}
	return ch, nil
}

// draw records pt if it is farther than ds from the last recorded point,
// and grafts the recorded polyline when pt is nil.
func (s *Session) draw(pt *Point) error {
	if pt != nil {
		if n := len(s.pen); n == 0 || s.pen[n-1].Distance(*pt) > s.cluster.DS() {
			s.pen = append(s.pen, *pt)
		}
		return nil
	}
	pen := s.pen
	s.pen = nil
	if len(pen) < 2 {
		return nil
	}
	_, err := s.cluster.Graft(pen)
	return err
}

// Check compares the snapshot of the cluster with want and returns an error
// describing the differences, if any.
func (s *Session) Check(want Snapshot) error {
	if diff := cmp.Diff(want, s.cluster.Snapshot(), cmpopts.EquateEmpty()); diff != "" {
		return fmt.Errorf("snapshot mismatch (-want +got):\n%s", diff)
	}
	return nil
}
