package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/bubblecluster/bubble"
	"go.uber.org/zap"
)

// Runner applies the steps of a scenario to a session.
type Runner struct {
	session *bubble.Session
	strict  bool
	log     *zap.Logger
}

func NewRunner(sc *Scenario, log *zap.Logger) *Runner {
	return &Runner{
		session: bubble.NewSession(sc.Options()),
		strict:  sc.Strict,
		log:     log,
	}
}

func (r *Runner) Cluster() *bubble.Cluster { return r.session.Cluster() }

// Run applies steps in order. Rejected commands are logged and skipped
// unless the runner is strict. Run fails if the resulting cluster violates
// its topology invariants.
func (r *Runner) Run(steps []Step) error {
	for i, st := range steps {
		if err := r.step(i, st); err != nil {
			return err
		}
	}
	if err := r.Cluster().CheckTopology(); err != nil {
		return fmt.Errorf("inconsistent cluster after %d steps: %w", len(steps), err)
	}
	return nil
}

func (r *Runner) step(i int, st Step) error {
	log := r.log.With(zap.Int("step", i), zap.String("name", st.Name))
	if b := st.Bubble; b != nil {
		region, err := r.Cluster().AddBubble(bubble.Pt(b.X, b.Y), b.Radius, b.Segments)
		if err != nil {
			return r.reject(log, err)
		}
		log.Debug("added bubble", zap.Int("region", region.ID()), zap.Float64("target", region.AreaTarget()))
	}
	if t := st.Transform; t != nil {
		if err := r.Cluster().Transform(t.Affine()); err != nil {
			return r.reject(log, err)
		}
		log.Debug("transformed", zap.Float64("rotate", t.Rotate), zap.Float64("scale", t.Scale))
	}
	for _, cmd := range st.Commands {
		if err := r.session.Apply(cmd); err != nil {
			if err := r.reject(log.With(zap.Stringer("command", cmd)), err); err != nil {
				return err
			}
			continue
		}
		if _, ok := cmd.(bubble.DrawCommand); !ok {
			log.Debug("applied", zap.Stringer("command", cmd))
		}
	}
	c := r.Cluster()
	log.Info("step done",
		zap.Int("regions", len(c.Regions())),
		zap.Int("chains", len(c.Chains())),
		zap.Int("nodes", len(c.Nodes())),
	)
	return nil
}

func (r *Runner) reject(log *zap.Logger, err error) error {
	rejected := errors.Is(err, bubble.ErrInvalidTopology) ||
		errors.Is(err, bubble.ErrDegenerateGeometry) ||
		errors.Is(err, bubble.ErrNotFound)
	if r.strict || !rejected {
		return err
	}
	log.Warn("command rejected", zap.Error(err))
	return nil
}

// Check compares the final state with the JSON snapshot at path.
func (r *Runner) Check(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var want bubble.Snapshot
	if err := json.Unmarshal(data, &want); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return r.session.Check(want)
}

// WriteSnapshot writes the JSON snapshot of the cluster to path.
func (r *Runner) WriteSnapshot(path string) error {
	data, err := json.MarshalIndent(r.Cluster().Snapshot(), "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
