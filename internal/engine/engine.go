// Package engine implements the turn-based combat simulation: roster
// assembly, initiative ordering, per-turn action resolution, log emission,
// termination detection and reward computation. An Engine instance is
// exclusively owned by one battle and must not be shared across battles.
package engine

import (
	"errors"
	"math/rand"
	"sort"
	"strconv"
	"time"

	"github.com/kelcyazef/ImmunoWarriors2-sub000/internal/game"
)

// State is the engine lifecycle: Idle until StartCombat, Active while turns
// resolve, Ended once a side is eliminated or the turn cap fires.
type State string

const (
	StateIdle   State = "idle"
	StateActive State = "active"
	StateEnded  State = "ended"
)

// Tuning parameters for unit specials and outcome scoring. Values follow
// the game's balance sheet; per-unit overrides come from the catalog.
const (
	// DefaultTurnCap bounds battle length; hitting it is a recoverable
	// termination that still yields a full result.
	DefaultTurnCap = 30

	salvoMultiplier = 2.0
	salvoCooldown   = 3

	repairAmount   = 15
	repairCooldown = 2

	markMultiplier     = 1.5
	markerAttackFactor = 1.5
	markerCooldown     = 1

	mutationChance = 0.20

	shieldChance           = 0.30
	shieldBreakChance      = 0.30
	defaultShieldReduction = 0.45

	sporeChance       = 0.25
	defaultSporeBonus = 6

	// Pathogens focus the weakest enemy 60% of the time, otherwise pick
	// uniformly at random.
	pathogenFocusChance = 0.60

	significantDamageThreshold = 20
	maxSignificantEvents       = 10
)

// ErrEmptyRoster is returned by StartCombat when either side has no units;
// an empty side is a caller bug, not a runtime combat condition.
var ErrEmptyRoster = errors.New("combat requires at least one unit per side")

// MemoryView is the read side of the immune-memory ledger consumed during
// attack resolution. Writes happen only at battle end, outside the engine.
type MemoryView interface {
	DamageBonus(species string) float64
}

type unitSide int

const (
	sideAntibody unitSide = iota
	sidePathogen
)

// actorRef addresses a unit in the initiative order without holding a
// pointer that could dangle across roster copies.
type actorRef struct {
	side unitSide
	idx  int
}

// Engine owns all unit state for one battle. Callers receive value-copy
// snapshots and log entries only; nothing outside the engine can mutate
// combat state.
type Engine struct {
	antibodies []*game.Antibody
	pathogens  []*game.Pathogen
	order      []actorRef

	state    State
	turn     int
	turnCap  int
	timedOut bool

	rng    *rand.Rand
	memory MemoryView

	log    []game.LogEntry
	result *game.CombatResult
}

// Option configures an Engine at construction.
type Option func(*Engine)

// WithRand injects the random source used for every coin flip (target
// selection, mutation/shield/spore triggers) so battles replay
// deterministically under a fixed seed.
func WithRand(r *rand.Rand) Option {
	return func(e *Engine) { e.rng = r }
}

// WithSeed is shorthand for WithRand over a seeded source.
func WithSeed(seed int64) Option {
	return func(e *Engine) { e.rng = rand.New(rand.NewSource(seed)) }
}

// WithTurnCap overrides the maximum-turn safety valve.
func WithTurnCap(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.turnCap = n
		}
	}
}

// WithMemory wires the immune-memory read view used for antibody damage
// bonuses against previously recorded species.
func WithMemory(m MemoryView) Option {
	return func(e *Engine) { e.memory = m }
}

// New builds an engine over value copies of the provided rosters. The
// engine is sole owner of the copies; caller slices stay untouched.
func New(antibodies []game.Antibody, pathogens []game.Pathogen, opts ...Option) *Engine {
	e := &Engine{
		state:   StateIdle,
		turnCap: DefaultTurnCap,
	}
	e.antibodies = make([]*game.Antibody, 0, len(antibodies))
	for i := range antibodies {
		a := antibodies[i]
		e.antibodies = append(e.antibodies, &a)
	}
	e.pathogens = make([]*game.Pathogen, 0, len(pathogens))
	for i := range pathogens {
		p := pathogens[i]
		if p.Resistances != nil {
			// private copy so the engine never aliases caller maps
			r := make(map[game.AttackType]float64, len(p.Resistances))
			for k, v := range p.Resistances {
				r[k] = v
			}
			p.Resistances = r
		}
		e.pathogens = append(e.pathogens, &p)
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return e
}

// StartCombat transitions Idle→Active: validates rosters, assigns unit IDs,
// fills variant defaults and sorts the initiative order (descending, ties
// broken by stable input order with antibodies first).
func (e *Engine) StartCombat() error {
	if e.state != StateIdle {
		return nil
	}
	if len(e.antibodies) == 0 || len(e.pathogens) == 0 {
		return ErrEmptyRoster
	}

	// Auto-assigned IDs skip any preset ones so a mixed roster never ends
	// up with two units sharing an ID.
	used := make(map[uint]bool, len(e.antibodies)+len(e.pathogens))
	for _, a := range e.antibodies {
		if a.ID != 0 {
			used[a.ID] = true
		}
	}
	for _, p := range e.pathogens {
		if p.ID != 0 {
			used[p.ID] = true
		}
	}
	var nextID uint = 1
	nextFreeID := func() uint {
		for used[nextID] {
			nextID++
		}
		used[nextID] = true
		return nextID
	}
	for _, a := range e.antibodies {
		if a.ID == 0 {
			a.ID = nextFreeID()
		}
		if a.CurrentHealth == 0 {
			a.CurrentHealth = a.MaxHealth
		}
	}
	for _, p := range e.pathogens {
		if p.ID == 0 {
			p.ID = nextFreeID()
		}
		if p.CurrentHealth == 0 {
			p.CurrentHealth = p.MaxHealth
		}
		if p.Kind == game.PathogenBacteria && p.BiofilmReduction == 0 {
			p.BiofilmReduction = defaultShieldReduction
		}
		if p.Kind == game.PathogenFungus && p.SporeBonus == 0 {
			p.SporeBonus = defaultSporeBonus
		}
	}

	e.order = make([]actorRef, 0, len(e.antibodies)+len(e.pathogens))
	for i := range e.antibodies {
		e.order = append(e.order, actorRef{side: sideAntibody, idx: i})
	}
	for i := range e.pathogens {
		e.order = append(e.order, actorRef{side: sidePathogen, idx: i})
	}
	// Initiative is fixed per unit for the whole battle; one stable sort
	// up front, no re-sort per turn.
	sort.SliceStable(e.order, func(i, j int) bool {
		return e.initiativeOf(e.order[i]) > e.initiativeOf(e.order[j])
	})

	e.state = StateActive
	e.addEntry(game.LogEntry{
		Message: "Combat begins: " + strconv.Itoa(len(e.antibodies)) + " antibodies vs " + strconv.Itoa(len(e.pathogens)) + " pathogens",
		Kind:    game.ActionStart,
	})
	return nil
}

func (e *Engine) initiativeOf(ref actorRef) int {
	if ref.side == sideAntibody {
		return e.antibodies[ref.idx].Initiative
	}
	return e.pathogens[ref.idx].Initiative
}

// State returns the current lifecycle state.
func (e *Engine) State() State { return e.state }

// Turn returns the number of completed turn sweeps.
func (e *Engine) Turn() int { return e.turn }

// Log returns a copy of the full combat log so far.
func (e *Engine) Log() []game.LogEntry {
	out := make([]game.LogEntry, len(e.log))
	copy(out, e.log)
	return out
}

// Snapshot returns immutable value copies of every unit for the
// presentation boundary.
func (e *Engine) Snapshot() []game.UnitSnapshot {
	out := make([]game.UnitSnapshot, 0, len(e.antibodies)+len(e.pathogens))
	for _, a := range e.antibodies {
		out = append(out, game.UnitSnapshot{
			ID:            a.ID,
			Name:          a.Name,
			Side:          "antibody",
			Kind:          string(a.Kind),
			CurrentHealth: a.CurrentHealth,
			MaxHealth:     a.MaxHealth,
			Defeated:      a.IsDefeated(),
		})
	}
	for _, p := range e.pathogens {
		out = append(out, game.UnitSnapshot{
			ID:            p.ID,
			Name:          p.Name,
			Side:          "pathogen",
			Kind:          string(p.Kind),
			CurrentHealth: p.CurrentHealth,
			MaxHealth:     p.MaxHealth,
			Defeated:      p.IsDefeated(),
		})
	}
	return out
}

func (e *Engine) addEntry(entry game.LogEntry) {
	entry.Timestamp = time.Now().UTC()
	e.log = append(e.log, entry)
}

func (e *Engine) livingAntibodies() []*game.Antibody {
	out := make([]*game.Antibody, 0, len(e.antibodies))
	for _, a := range e.antibodies {
		if !a.IsDefeated() {
			out = append(out, a)
		}
	}
	return out
}

func (e *Engine) livingPathogens() []*game.Pathogen {
	out := make([]*game.Pathogen, 0, len(e.pathogens))
	for _, p := range e.pathogens {
		if !p.IsDefeated() {
			out = append(out, p)
		}
	}
	return out
}

// checkTerminal flips Active→Ended as soon as either side is eliminated.
func (e *Engine) checkTerminal() {
	if e.state != StateActive {
		return
	}
	if len(e.livingPathogens()) == 0 {
		e.state = StateEnded
		e.addEntry(game.LogEntry{Message: "All pathogens eliminated: the infection is cleared", Kind: game.ActionEnd})
		return
	}
	if len(e.livingAntibodies()) == 0 {
		e.state = StateEnded
		e.addEntry(game.LogEntry{Message: "All antibodies destroyed: the infection spreads", Kind: game.ActionEnd})
	}
}
