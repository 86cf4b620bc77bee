package engine

import (
	"github.com/lox/holdem-engine/poker"
)

// Phase represents the betting phase of a hand
type Phase int

const (
	Preflop Phase = iota
	Flop
	Turn
	River
	Showdown
)

func (p Phase) String() string {
	return [...]string{"preflop", "flop", "turn", "river", "showdown"}[p]
}

// PlayerAction represents an action a player can take
type PlayerAction int

const (
	Fold PlayerAction = iota
	Check
	Call
	Raise
)

func (a PlayerAction) String() string {
	return [...]string{"fold", "check", "call", "raise"}[a]
}

// Player represents a seat in the hand. IsActive flips to false exactly once
// when the player folds and never reverts within the hand. An all-in player
// stays active (showdown-eligible) but is no longer bettable.
type Player struct {
	ID         string
	Name       string
	Position   int
	Chips      int
	HoleCards  []poker.Card
	CurrentBet int  // chips committed in this betting round
	TotalBet   int  // chips committed across the whole hand
	IsActive   bool // false once folded
	IsAllIn    bool
	IsBot      bool
	HasActed   bool // acted since the last raise in this round
}

// CanBet reports whether the player can still take betting actions
func (p *Player) CanBet() bool {
	return p.IsActive && !p.IsAllIn
}

func (p *Player) clone() *Player {
	cp := *p
	cp.HoleCards = append([]poker.Card(nil), p.HoleCards...)
	return &cp
}

// Winner records a pot payout at hand completion
type Winner struct {
	PlayerID    string
	Amount      int
	Description string
}

// GameState is the complete state of a single hand. It has exactly one
// owner, the Engine; everything else reads clones.
type GameState struct {
	ID                string
	HandNumber        int
	Phase             Phase
	Players           []*Player
	CommunityCards    []poker.Card
	Pot               int
	CurrentBet        int
	MinRaise          int
	ActivePlayerIndex int
	Button            int
	SmallBlind        int
	BigBlind          int
	Complete          bool
	Winners           []Winner
}

// Clone returns a deep copy suitable for handing to readers
func (s *GameState) Clone() *GameState {
	cp := *s
	cp.Players = make([]*Player, len(s.Players))
	for i, p := range s.Players {
		cp.Players[i] = p.clone()
	}
	cp.CommunityCards = append([]poker.Card(nil), s.CommunityCards...)
	cp.Winners = append([]Winner(nil), s.Winners...)
	return &cp
}

// CurrentPlayer returns the player due to act, or nil once the hand is over
func (s *GameState) CurrentPlayer() *Player {
	if s.Complete || s.ActivePlayerIndex < 0 || s.ActivePlayerIndex >= len(s.Players) {
		return nil
	}
	return s.Players[s.ActivePlayerIndex]
}

// PlayerByID returns the player with the given id, or nil
func (s *GameState) PlayerByID(id string) *Player {
	for _, p := range s.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// ActiveCount returns the number of players still in the hand
func (s *GameState) ActiveCount() int {
	n := 0
	for _, p := range s.Players {
		if p.IsActive {
			n++
		}
	}
	return n
}

func (s *GameState) bettableCount() int {
	n := 0
	for _, p := range s.Players {
		if p.CanBet() {
			n++
		}
	}
	return n
}

// nextBettable returns the first seat at or after from (wrapping) that can
// still bet, or -1 if none remain
func (s *GameState) nextBettable(from int) int {
	n := len(s.Players)
	for i := 0; i < n; i++ {
		seat := ((from + i) % n + n) % n
		if s.Players[seat].CanBet() {
			return seat
		}
	}
	return -1
}

// AvailableActionsFor returns the legal actions for the given seat. The set
// is empty unless the hand is live and it is that seat's turn.
func AvailableActionsFor(s *GameState, seat int) []PlayerAction {
	if s == nil || s.Complete || seat != s.ActivePlayerIndex {
		return nil
	}
	p := s.Players[seat]
	if !p.CanBet() {
		return nil
	}

	actions := []PlayerAction{Fold}
	toCall := s.CurrentBet - p.CurrentBet

	if toCall == 0 {
		actions = append(actions, Check)
	} else if p.Chips > 0 {
		actions = append(actions, Call)
	}
	if p.Chips > toCall {
		actions = append(actions, Raise)
	}

	return actions
}

// MinimumRaiseTo returns the smallest legal raise-to amount for the state
func MinimumRaiseTo(s *GameState) int {
	min := s.CurrentBet * 2
	if s.CurrentBet+s.MinRaise > min {
		min = s.CurrentBet + s.MinRaise
	}
	return min
}
