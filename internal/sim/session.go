package sim

import (
	"sort"

	"github.com/vovakirdan/tiltcart/internal/config"
	"github.com/vovakirdan/tiltcart/internal/core"
	"github.com/vovakirdan/tiltcart/internal/course"
	"github.com/vovakirdan/tiltcart/internal/physics"
)

// collectibleState is one placed pickup and its sensor body.
type collectibleState struct {
	def       course.Collectible
	body      *physics.Body
	collected bool
}

// Session is one run of one course: the physics world, the cart, every
// mechanism and sensor, and the survival state machines, advanced by
// exactly one Step per logical tick. Sessions are not safe for concurrent
// use; the platform layer owns the tick loop.
type Session struct {
	cfg config.Config
	rt  core.RuntimeConfig
	cr  *course.Course

	world      *physics.World
	surfaces   *SurfaceTable
	cart       *Cart
	classifier *Classifier
	lives      *LivesMachine
	checks     *Checkpoints
	areas      *AreaTracker
	mechs      []*Mechanism
	pickups    map[string]*collectibleState

	queue core.EventQueue

	tick     uint64
	score    int
	paused   bool
	complete bool

	prevPause   bool
	prevRestart bool
}

// NewSession builds a run of the course. All areas are instantiated into
// one world up front; course areas are regions of a shared coordinate
// space, so teardown between areas would only churn the solver.
func NewSession(cr *course.Course, cfg config.Config, rt core.RuntimeConfig) *Session {
	s := &Session{cfg: cfg, rt: rt, cr: cr}
	s.build()
	return s
}

func (s *Session) build() {
	s.surfaces = NewSurfaceTable(s.cfg.Surfaces)
	s.world = physics.NewWorld(core.Vec2{Y: s.cfg.Physics.GravityY}, s.rt.TickRate, s.cfg.Physics.Substeps)
	s.classifier = NewClassifier(s.cfg.Crash, s.surfaces)
	s.lives = NewLivesMachine(s.cfg.Lives, s.cfg.Score)
	s.checks = NewCheckpoints(s.cr)
	s.areas = NewAreaTracker(s.cr, s.cfg.Camera)
	s.pickups = make(map[string]*collectibleState)
	s.mechs = nil
	s.tick = 0
	s.score = 0
	s.paused = false
	s.complete = false

	for ai := range s.cr.Areas {
		area := &s.cr.Areas[ai]

		for _, ob := range area.Obstacles {
			s.addObstacle(ob)
		}
		for _, pl := range area.Mechanisms {
			s.mechs = append(s.mechs, newMechanism(pl, s.cfg.Mechanisms, s.surfaces, s.world))
		}
		for _, col := range area.Collectibles {
			body := s.world.AddSensorBox(col.Pos, 16, 16)
			for _, sh := range body.Shapes() {
				sh.Tag = &sensorTag{Checkpoint: -1, Collectible: col.ID}
			}
			s.pickups[col.ID] = &collectibleState{def: col, body: body}
		}

		ck := area.Checkpoint
		body := s.world.AddSensorBox(ck.Pos, ck.W, ck.H)
		for _, sh := range body.Shapes() {
			sh.Tag = &sensorTag{Checkpoint: ai}
		}
	}

	s.cart = NewCart(s.world, s.surfaces, s.cfg.Cart, s.cfg.Grip, s.cr.Start)
}

func (s *Session) addObstacle(ob course.Obstacle) {
	surface := SurfaceFromName(ob.Surface)
	mat := s.surfaces.Material(surface)
	kind := physics.KindTerrain
	tag := &terrainTag{Surface: surface}

	switch ob.Kind {
	case course.ObstacleSpike:
		kind = physics.KindHazard
		tag.Fatal = true
	case course.ObstacleBumper:
		kind = physics.KindBumper
		tag.Bumper = true
		if ob.Surface == "" {
			surface = SurfaceBouncy
			tag.Surface = surface
			mat = s.surfaces.Material(surface)
		}
	}
	if ob.Fatal {
		tag.Fatal = true
	}

	body := s.world.AddStaticBox(ob.Pos, ob.W, ob.H, core.DegToRad(ob.Angle), mat, kind)
	for _, sh := range body.Shapes() {
		sh.Tag = tag
	}
}

// Step advances the session by one tick: mechanisms, cart drive, the
// physics solve, then classification, survival, and camera, in that fixed
// order. Events raised during the tick are returned with the state.
func (s *Session) Step(in core.InputSnapshot) core.StepResult {
	// Meta controls act on press edges.
	if in.Pause && !s.prevPause {
		s.paused = !s.paused
	}
	if in.Restart && !s.prevRestart {
		s.Reset()
		s.prevPause = in.Pause
		s.prevRestart = true
		return s.result()
	}
	s.prevPause = in.Pause
	s.prevRestart = in.Restart

	if s.paused || s.lives.State().GameOver || s.complete {
		return s.result()
	}

	dt := s.world.TickDt()
	driving := !s.lives.State().Crashed

	for _, m := range s.mechs {
		var target *Cart
		if driving {
			target = s.cart
		}
		m.Step(s.tick, in, target, dt)
	}

	if driving {
		s.cart.ApplyTilt(in.Tilt)
	}

	s.world.Step()

	impacts := s.routeContacts(s.world.Drain())
	if pos, ok := s.cart.TouchingHazard(); ok {
		impacts = append(impacts, Impact{Fatal: true, Pos: pos})
	}
	s.cart.UpdateState(dt)
	cartState := s.cart.State()

	wasFlipped := s.lives.State().Flipped
	verdict, bounces := s.classifier.Evaluate(s.tick, impacts, cartState, s.lives.State(), s.areas.FloorY())
	for _, pos := range bounces {
		s.queue.Emit(core.Event{Kind: core.EventBounce, Tick: s.tick, Pos: pos})
	}
	if flipped := s.lives.State().Flipped; flipped != wasFlipped {
		kind := core.EventCartRecovered
		if flipped {
			kind = core.EventCartFlipped
		}
		s.queue.Emit(core.Event{Kind: kind, Tick: s.tick, Pos: cartState.Pos})
	}
	s.lives.TriggerCrash(s.tick, verdict, &s.queue)

	s.lives.Step(s.tick, s.checks.Anchor(), func(sp course.Spawn) {
		s.cart.ResetPosition(sp.Pos.X, sp.Pos.Y, sp.Angle)
	}, &s.queue)

	s.areas.Update(s.tick, cartState.Pos, &s.queue)
	s.lives.CheckScore(s.tick, s.score, &s.queue)

	s.tick++
	return s.result()
}

// routeContacts splits the drained physics events into cart bookkeeping,
// sensor hits, and classifier impacts.
func (s *Session) routeContacts(events []physics.ContactEvent) []Impact {
	var impacts []Impact

	for _, ev := range events {
		if !s.cart.Owns(ev.A) {
			if !s.cart.Owns(ev.B) {
				continue
			}
			ev.A, ev.B = ev.B, ev.A
			ev.Normal = ev.Normal.Scale(-1)
		}

		if tag, ok := ev.B.Tag.(*sensorTag); ok {
			if ev.Begin {
				s.sensorHit(tag)
			}
			continue
		}

		s.cart.HandleContact(ev)

		if !ev.Begin {
			continue
		}
		im := Impact{
			Speed:  ev.RelSpeed,
			Normal: ev.Normal,
			Pos:    ev.A.Body().Position(),
		}
		if tag, ok := ev.B.Tag.(*terrainTag); ok {
			im.Surface = tag.Surface
			im.Fatal = tag.Fatal
			im.Bumper = tag.Bumper
		}
		impacts = append(impacts, im)
	}
	return impacts
}

// sensorHit handles a cart-enters-sensor event: checkpoint activation or
// collectible pickup. Sensor effects are suppressed while respawning so a
// fade teleport cannot sweep up pickups in passing.
func (s *Session) sensorHit(tag *sensorTag) {
	if s.lives.State().Respawning() {
		return
	}

	if tag.Checkpoint >= 0 {
		if s.checks.Activate(tag.Checkpoint, s.tick, &s.queue) && tag.Checkpoint == s.cr.FinalArea() {
			s.complete = true
			s.queue.Emit(core.Event{Kind: core.EventCourseComplete, Tick: s.tick, Index: tag.Checkpoint})
		}
		return
	}

	if tag.Collectible == "" {
		return
	}
	p, ok := s.pickups[tag.Collectible]
	if !ok || p.collected {
		return
	}
	p.collected = true
	s.queue.Emit(core.Event{Kind: core.EventCollect, Tick: s.tick, Pos: p.def.Pos, Item: p.def.Kind, ID: p.def.ID})

	switch p.def.Kind {
	case "coin":
		s.score += s.cfg.Score.Coin
	case "gem":
		s.score += s.cfg.Score.Gem
	case "life":
		s.lives.AwardLife(s.tick, "pickup", &s.queue)
	}

	for _, sh := range p.body.Shapes() {
		s.cart.ForgetShape(sh)
	}
	s.world.Remove(p.body)
	p.body = nil
}

func (s *Session) result() core.StepResult {
	ls := s.lives.State()
	return core.StepResult{
		State: core.SessionState{
			Score:    s.score,
			Lives:    ls.Current,
			GameOver: ls.GameOver,
			Complete: s.complete,
			Paused:   s.paused,
		},
		Events: s.queue.Drain(),
	}
}

// Reset rebuilds the session from scratch for the same course and config.
func (s *Session) Reset() {
	s.world.Close()
	s.queue.Drain()
	s.build()
}

// Close releases the physics world.
func (s *Session) Close() {
	s.world.Close()
}

// Accessors for the platform layer.

// Tick returns the current tick counter.
func (s *Session) Tick() uint64 { return s.tick }

// Score returns the accumulated score.
func (s *Session) Score() int { return s.score }

// Cart returns the cart's derived state.
func (s *Session) Cart() *CartState { return s.cart.State() }

// Lives returns the survival state.
func (s *Session) Lives() *LivesState { return s.lives.State() }

// Camera returns the current camera framing.
func (s *Session) Camera() CameraState { return s.areas.Camera() }

// CurrentArea returns the index of the area containing the cart.
func (s *Session) CurrentArea() int { return s.areas.Current() }

// EdgeProximity reports nearby edges of the current area.
func (s *Session) EdgeProximity() EdgeProximity {
	return s.areas.NearEdge(s.cart.State().Pos)
}

// Course returns the course this session runs.
func (s *Session) Course() *course.Course { return s.cr }

// Mechanisms returns the live mechanism list for rendering.
func (s *Session) Mechanisms() []*Mechanism { return s.mechs }

// Collectibles returns the uncollected pickups for rendering.
func (s *Session) Collectibles() []course.Collectible {
	var out []course.Collectible
	for _, p := range s.pickups {
		if !p.collected {
			out = append(out, p.def)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Checkpoints returns the checkpoint tracker.
func (s *Session) Checkpoints() *Checkpoints { return s.checks }

// Complete reports whether the final checkpoint has been reached.
func (s *Session) Complete() bool { return s.complete }

// Paused reports whether the session is paused.
func (s *Session) Paused() bool { return s.paused }
