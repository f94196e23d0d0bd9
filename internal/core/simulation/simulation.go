package simulation

import (
	"context"
	"fmt"
	"slices"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/zeusync/asteroids/internal/core/geometry"
	"github.com/zeusync/asteroids/internal/core/models/asteroid"
	"github.com/zeusync/asteroids/internal/core/observability/log"
	"github.com/zeusync/asteroids/internal/core/render"
	"github.com/zeusync/asteroids/internal/core/systems/physics"
)

// FrameSink receives every rendered frame from Run.
type FrameSink interface {
	Consume(ctx context.Context, index uint64, frame render.Frame) error
}

type FrameSinkFunc func(ctx context.Context, index uint64, frame render.Frame) error

func (f FrameSinkFunc) Consume(ctx context.Context, index uint64, frame render.Frame) error {
	return f(ctx, index, frame)
}

type Stats struct {
	Frames    uint64
	Skipped   uint64
	Bodies    int
	Simulated time.Duration
}

// Simulation owns one engine and the bodies spawned into it. Everything but
// Stats must be called from a single goroutine.
type Simulation struct {
	cfg      Config
	engine   physics.Engine
	renderer *render.Renderer
	logger   log.Log

	ground *asteroid.Body
	bodies []*asteroid.Body

	frames    atomic.Uint64
	skipped   atomic.Uint64
	live      atomic.Int64
	simulated atomic.Int64
}

// NewEngine builds the engine backend named in cfg with its gravity applied.
func NewEngine(cfg Config) (physics.Engine, error) {
	return physics.New(cfg.Engine, physics.WithGravity(cfg.Gravity))
}

// New spawns the configured ground and asteroids into engine. Asteroid shapes
// come from a generator seeded with cfg.Seed, so a config always produces the
// same scene.
func New(cfg Config, engine physics.Engine, logger log.Log) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Simulation{
		cfg:    cfg,
		engine: engine,
		logger: logger,
		renderer: render.NewRenderer(engine,
			render.WithStrict(cfg.StrictHandles),
			render.WithWorkers(cfg.RenderWorkers),
			render.WithLogger(logger),
		),
	}

	if g := cfg.Ground; g != nil {
		shape, err := geometry.Rectangle(g.HalfWidth, g.HalfHeight)
		if err != nil {
			return nil, fmt.Errorf("ground shape: %w", err)
		}
		s.ground, err = asteroid.New(g.Position, shape, engine,
			asteroid.WithStatic(),
			asteroid.WithAngle(g.Angle),
			asteroid.WithLogger(logger),
		)
		if err != nil {
			return nil, fmt.Errorf("spawn ground: %w", err)
		}
		s.live.Add(1)
	}

	gen := geometry.NewSeededGenerator(cfg.Seed)
	for groupIdx, group := range cfg.Asteroids {
		for i := range group.Count {
			shape, err := gen.Generate(group.Vertices, group.Extent)
			if err != nil {
				return nil, fmt.Errorf("asteroids[%d] #%d: %w", groupIdx, i, err)
			}
			position := group.Position.Add(group.Offset.Scale(float64(i)))
			if _, err = s.Spawn(position, shape, asteroid.WithDensity(group.Density)); err != nil {
				return nil, fmt.Errorf("asteroids[%d] #%d: %w", groupIdx, i, err)
			}
		}
	}

	logger.Info("simulation ready",
		log.String("engine", string(engine.Kind())),
		log.Uint64("seed", cfg.Seed),
		log.Int("asteroids", len(s.bodies)),
		log.Bool("ground", s.ground != nil),
	)

	return s, nil
}

// Spawn adds one asteroid at position.
func (s *Simulation) Spawn(position geometry.Point2, shape geometry.Polygon, opts ...asteroid.Option) (*asteroid.Body, error) {
	opts = append([]asteroid.Option{asteroid.WithLogger(s.logger)}, opts...)
	b, err := asteroid.New(position, shape, s.engine, opts...)
	if err != nil {
		return nil, err
	}
	s.bodies = append(s.bodies, b)
	s.live.Add(1)
	s.logger.Debug("asteroid spawned",
		log.String("id", b.ID()),
		log.Uint64("fingerprint", b.Fingerprint()),
		log.Float64("x", position.X),
		log.Float64("y", position.Y),
	)
	return b, nil
}

// Despawn removes b from the engine and from the scene.
func (s *Simulation) Despawn(b *asteroid.Body) error {
	idx := slices.Index(s.bodies, b)
	if idx < 0 {
		return fmt.Errorf("%w: asteroid %s is not part of this simulation", physics.ErrStaleHandle, b.ID())
	}
	if err := b.Remove(s.engine); err != nil {
		return err
	}
	s.bodies = slices.Delete(s.bodies, idx, idx+1)
	s.live.Add(-1)
	return nil
}

// Bodies returns the spawned asteroids, ground excluded.
func (s *Simulation) Bodies() []*asteroid.Body {
	return slices.Clone(s.bodies)
}

func (s *Simulation) Ground() *asteroid.Body {
	return s.ground
}

func (s *Simulation) Engine() physics.Engine {
	return s.engine
}

// Stats is safe to call from any goroutine.
func (s *Simulation) Stats() Stats {
	return Stats{
		Frames:    s.frames.Load(),
		Skipped:   s.skipped.Load(),
		Bodies:    int(s.live.Load()),
		Simulated: time.Duration(s.simulated.Load()),
	}
}

// Tick advances the engine by dt and renders every body, ground first.
func (s *Simulation) Tick(dt time.Duration) (render.Frame, error) {
	s.engine.Step(dt.Seconds())
	s.simulated.Add(int64(dt))

	drawables := make([]render.Drawable, 0, len(s.bodies)+1)
	if s.ground != nil {
		drawables = append(drawables, s.ground)
	}
	for _, b := range s.bodies {
		drawables = append(drawables, b)
	}

	frame, err := s.renderer.Frame(drawables)
	if err != nil {
		return render.Frame{}, err
	}
	s.frames.Add(1)
	s.skipped.Add(uint64(frame.Skipped))
	return frame, nil
}

// Run ticks at the configured timestep until ctx is cancelled or the
// configured number of frames has been produced, handing each frame to sink.
// A stats reporter logs progress every StatsInterval alongside the loop.
func (s *Simulation) Run(ctx context.Context, sink FrameSink) error {
	g, ctx := errgroup.WithContext(ctx)
	loopCtx, stop := context.WithCancel(ctx)
	defer stop()

	g.Go(func() error {
		defer stop()
		return s.loop(loopCtx, sink)
	})
	if interval := s.cfg.StatsInterval.Std(); interval > 0 {
		g.Go(func() error {
			s.report(loopCtx, interval)
			return nil
		})
	}

	err := g.Wait()
	stats := s.Stats()
	s.logger.Info("simulation stopped",
		log.Uint64("frames", stats.Frames),
		log.Uint64("skipped", stats.Skipped),
		log.Duration("simulated", stats.Simulated),
	)
	return err
}

func (s *Simulation) loop(ctx context.Context, sink FrameSink) error {
	step := s.cfg.Timestep.Std()
	ticker := time.NewTicker(step)
	defer ticker.Stop()

	limit := uint64(s.cfg.Frames)
	for index := uint64(0); limit == 0 || index < limit; index++ {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}

		frame, err := s.Tick(step)
		if err != nil {
			return fmt.Errorf("frame %d: %w", index, err)
		}
		if sink != nil {
			if err = sink.Consume(ctx, index, frame); err != nil {
				return fmt.Errorf("frame %d sink: %w", index, err)
			}
		}
	}
	return nil
}

func (s *Simulation) report(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last := s.frames.Load()
	lastAt := time.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			stats := s.Stats()
			fps := float64(stats.Frames-last) / now.Sub(lastAt).Seconds()
			last, lastAt = stats.Frames, now
			s.logger.Info("simulation stats",
				log.Uint64("frames", stats.Frames),
				log.Uint64("skipped", stats.Skipped),
				log.Int("bodies", stats.Bodies),
				log.Float64("fps", fps),
			)
		}
	}
}
