package spin

import (
	"errors"
	"time"

	"prize-wheel/internal/domain/reward"
	"prize-wheel/internal/domain/wonreward"

	"github.com/google/uuid"
)

var ErrInvalidTransition = errors.New("invalid spin session transition")

type State string

const (
	StateIdle     State = "idle"
	StateSpinning State = "spinning"
	StateResolved State = "resolved"
)

func (s State) String() string {
	return string(s)
}

// Session is one spin: Idle -> Spinning -> Resolved. It is a value; every
// transition returns a new Session and leaves the receiver untouched.
type Session struct {
	id          uuid.UUID
	state       State
	cost        int
	drawn       bool
	rewardIndex int
	reward      reward.Definition
	startedAt   time.Time
	revealAt    time.Time
	resolvedAt  time.Time
	won         *wonreward.WonReward
	failure     string
}

func NewSession(cost int) Session {
	return Session{id: uuid.New(), state: StateIdle, cost: cost}
}

// Begin commits the spin. Called once the debit is durable.
func (s Session) Begin(now time.Time) (Session, error) {
	if s.state != StateIdle {
		return s, ErrInvalidTransition
	}
	s.state = StateSpinning
	s.startedAt = now
	return s, nil
}

// Draw records the selected catalog entry and when it will be revealed.
func (s Session) Draw(index int, def reward.Definition, revealAt time.Time) (Session, error) {
	if s.state != StateSpinning || s.drawn {
		return s, ErrInvalidTransition
	}
	s.drawn = true
	s.rewardIndex = index
	s.reward = def
	s.revealAt = revealAt
	return s, nil
}

// Resolve ends the spin. won is nil for physical rewards.
func (s Session) Resolve(now time.Time, won *wonreward.WonReward) (Session, error) {
	if s.state != StateSpinning || !s.drawn {
		return s, ErrInvalidTransition
	}
	s.state = StateResolved
	s.resolvedAt = now
	s.won = won
	return s, nil
}

// Fail resolves the spin without a minted reward. The debit stays spent.
func (s Session) Fail(now time.Time, cause error) (Session, error) {
	if s.state != StateSpinning {
		return s, ErrInvalidTransition
	}
	s.state = StateResolved
	s.resolvedAt = now
	if cause != nil {
		s.failure = cause.Error()
	}
	return s, nil
}

func (s Session) IsSpinning() bool { return s.state == StateSpinning }
func (s Session) IsResolved() bool { return s.state == StateResolved }
func (s Session) IsZero() bool     { return s.id == uuid.Nil }

func (s Session) ID() uuid.UUID             { return s.id }
func (s Session) State() State              { return s.state }
func (s Session) Cost() int                 { return s.cost }
func (s Session) Drawn() bool               { return s.drawn }
func (s Session) RewardIndex() int          { return s.rewardIndex }
func (s Session) Reward() reward.Definition { return s.reward }
func (s Session) StartedAt() time.Time      { return s.startedAt }
func (s Session) RevealAt() time.Time       { return s.revealAt }
func (s Session) ResolvedAt() time.Time     { return s.resolvedAt }
func (s Session) Won() *wonreward.WonReward { return s.won }
func (s Session) Failure() string           { return s.failure }
