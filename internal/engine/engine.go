// Package engine owns the per-hand Texas Hold'em state machine. Each call to
// ProcessPlayerAction fully resolves, including any automatic phase
// transitions, before returning a snapshot; bot decisions and probability
// estimates are pure reads of that snapshot.
package engine

import (
	"fmt"
	rand "math/rand/v2"

	"github.com/google/uuid"
	"github.com/thoas/go-funk"

	"github.com/lox/holdem-engine/poker"
)

// PlayerConfig describes one seat at the table
type PlayerConfig struct {
	ID    string
	Name  string
	IsBot bool
}

// Config describes the table a sequence of hands is played at
type Config struct {
	Players       []PlayerConfig
	SmallBlind    int
	BigBlind      int
	StartingChips int
}

// WinEstimator produces an equity-like win probability in [0,1] for a hand
// against the given number of opponents
type WinEstimator interface {
	WinProbability(hole, board []poker.Card, opponents int) float64
}

// DecisionMaker produces a bot action from a read-only state snapshot
type DecisionMaker interface {
	Decide(state *GameState, seat int) (BotDecision, error)
}

// BotDecision is the outcome of a bot deliberation, with the scores that
// produced it
type BotDecision struct {
	Action        PlayerAction
	Amount        int
	Confidence    float64
	HandStrength  float64
	PotOdds       float64
	ExpectedValue float64
	Reasoning     string
}

// Engine drives hands at a single table. It is not safe for concurrent use;
// the caller sequences all mutation.
type Engine struct {
	cfg       Config
	rng       *rand.Rand
	deck      *poker.Deck
	state     *GameState
	chips     []int // carried across hands
	button    int
	handNum   int
	estimator WinEstimator
	decider   DecisionMaker
}

// Option configures an Engine during creation
type Option func(*Engine)

// WithEstimator sets the win-probability estimator
func WithEstimator(e WinEstimator) Option {
	return func(eng *Engine) { eng.estimator = e }
}

// WithDecider sets the bot decision maker
func WithDecider(d DecisionMaker) Option {
	return func(eng *Engine) { eng.decider = d }
}

// WithDeck sets a specific pre-shuffled deck, overriding the RNG-built one.
// For deterministic tests.
func WithDeck(d *poker.Deck) Option {
	return func(eng *Engine) { eng.deck = d }
}

// New creates an engine for the given table. The RNG is required so that
// shuffles are reproducible under a fixed seed.
func New(rng *rand.Rand, cfg Config, opts ...Option) (*Engine, error) {
	if rng == nil {
		return nil, fmt.Errorf("rng is required")
	}
	if len(cfg.Players) < 2 {
		return nil, ErrNotEnoughPlayers
	}
	if cfg.SmallBlind <= 0 || cfg.BigBlind < cfg.SmallBlind {
		return nil, fmt.Errorf("invalid blinds %d/%d", cfg.SmallBlind, cfg.BigBlind)
	}
	if cfg.StartingChips < cfg.BigBlind {
		return nil, fmt.Errorf("starting chips %d below big blind", cfg.StartingChips)
	}

	e := &Engine{
		cfg:    cfg,
		rng:    rng,
		chips:  make([]int, len(cfg.Players)),
		button: -1,
	}
	for i := range e.chips {
		e.chips[i] = cfg.StartingChips
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.deck == nil {
		e.deck = poker.NewDeck(rng)
	}
	return e, nil
}

// StartNewHand discards any previous hand wholesale, rotates the button,
// shuffles, posts blinds, deals hole cards and returns the opening snapshot.
func (e *Engine) StartNewHand() (*GameState, error) {
	// Carry chips forward from the completed hand
	if e.state != nil {
		for i, p := range e.state.Players {
			e.chips[i] = p.Chips
		}
	}

	funded := 0
	for _, c := range e.chips {
		if c > 0 {
			funded++
		}
	}
	if funded < 2 {
		return nil, ErrNotEnoughPlayers
	}

	e.handNum++
	e.button = e.nextFundedSeat(e.button + 1)
	e.deck.Reset()

	players := make([]*Player, len(e.cfg.Players))
	for i, pc := range e.cfg.Players {
		players[i] = &Player{
			ID:       pc.ID,
			Name:     pc.Name,
			Position: i,
			Chips:    e.chips[i],
			IsActive: e.chips[i] > 0,
			IsBot:    pc.IsBot,
		}
	}

	s := &GameState{
		ID:         uuid.NewString(),
		HandNumber: e.handNum,
		Phase:      Preflop,
		Players:    players,
		Button:     e.button,
		SmallBlind: e.cfg.SmallBlind,
		BigBlind:   e.cfg.BigBlind,
		MinRaise:   e.cfg.BigBlind,
	}
	e.state = s

	sb, bb, first := e.blindSeats(s)
	e.postBlind(s.Players[sb], e.cfg.SmallBlind, s)
	e.postBlind(s.Players[bb], e.cfg.BigBlind, s)
	s.CurrentBet = e.cfg.BigBlind

	for _, p := range players {
		if p.IsActive {
			p.HoleCards = e.deck.Deal(2)
		}
	}

	s.ActivePlayerIndex = s.nextBettable(first)
	if s.ActivePlayerIndex == -1 {
		// Blinds put everyone all-in; run the board out immediately
		e.advancePhase()
	}

	return s.Clone(), nil
}

// blindSeats returns the small blind, big blind and first-to-act seats. With
// two live players the button posts the small blind and acts first.
func (e *Engine) blindSeats(s *GameState) (sb, bb, first int) {
	if e.liveSeatCount(s) == 2 {
		sb = e.nextLiveSeat(s, s.Button)
		bb = e.nextLiveSeat(s, sb+1)
		return sb, bb, sb
	}
	sb = e.nextLiveSeat(s, s.Button+1)
	bb = e.nextLiveSeat(s, sb+1)
	first = e.nextLiveSeat(s, bb+1)
	return sb, bb, first
}

func (e *Engine) postBlind(p *Player, blind int, s *GameState) {
	bet := blind
	if bet > p.Chips {
		bet = p.Chips
	}
	p.Chips -= bet
	p.CurrentBet = bet
	p.TotalBet = bet
	s.Pot += bet
	if p.Chips == 0 {
		p.IsAllIn = true
	}
}

func (e *Engine) liveSeatCount(s *GameState) int {
	n := 0
	for _, p := range s.Players {
		if p.IsActive {
			n++
		}
	}
	return n
}

func (e *Engine) nextLiveSeat(s *GameState, from int) int {
	n := len(s.Players)
	for i := 0; i < n; i++ {
		seat := ((from + i) % n + n) % n
		if s.Players[seat].IsActive {
			return seat
		}
	}
	return 0
}

func (e *Engine) nextFundedSeat(from int) int {
	n := len(e.chips)
	for i := 0; i < n; i++ {
		seat := ((from + i) % n + n) % n
		if e.chips[seat] > 0 {
			return seat
		}
	}
	return 0
}

// Snapshot returns a read-only copy of the current hand state
func (e *Engine) Snapshot() *GameState {
	if e.state == nil {
		return nil
	}
	return e.state.Clone()
}

// HandComplete reports whether betting has resolved to a single player or
// the showdown has been scored
func (e *Engine) HandComplete() bool {
	return e.state == nil || e.state.Complete
}

// AvailableActions returns the legal actions for the player due to act
func (e *Engine) AvailableActions() []PlayerAction {
	if e.state == nil {
		return nil
	}
	return AvailableActionsFor(e.state, e.state.ActivePlayerIndex)
}

// ProcessPlayerAction applies one action for the player due to act. The
// amount is the raise-to total and is ignored for other actions. On error
// the state is unchanged.
func (e *Engine) ProcessPlayerAction(action PlayerAction, amount int) (*GameState, error) {
	s := e.state
	if s == nil {
		return nil, fmt.Errorf("%w: no hand in progress", ErrInvalidAction)
	}
	if s.Complete {
		return nil, fmt.Errorf("%w: %w", ErrInvalidAction, ErrHandComplete)
	}

	seat := s.ActivePlayerIndex
	p := s.Players[seat]

	legal := AvailableActionsFor(s, seat)
	if !funk.Contains(legal, action) {
		return nil, fmt.Errorf("%w: %s (legal: %v)", ErrInvalidAction, action, legal)
	}

	// Validate before mutating anything
	if action == Raise {
		if amount < MinimumRaiseTo(s) {
			return nil, fmt.Errorf("%w: raise to %d below minimum %d", ErrInvalidAction, amount, MinimumRaiseTo(s))
		}
		if amount-p.CurrentBet > p.Chips {
			return nil, fmt.Errorf("%w: raise to %d needs %d chips, have %d",
				ErrInsufficientFunds, amount, amount-p.CurrentBet, p.Chips)
		}
	}

	switch action {
	case Fold:
		p.IsActive = false
		p.HasActed = true
		if s.ActiveCount() == 1 {
			e.awardUncontested()
			return s.Clone(), nil
		}

	case Check:
		p.HasActed = true

	case Call:
		toCall := s.CurrentBet - p.CurrentBet
		if toCall > p.Chips {
			toCall = p.Chips
		}
		e.commit(p, toCall)
		p.HasActed = true

	case Raise:
		e.commit(p, amount-p.CurrentBet)
		s.MinRaise = amount - s.CurrentBet
		s.CurrentBet = amount
		// Everyone else must act again
		for _, other := range s.Players {
			other.HasActed = false
		}
		p.HasActed = true
	}

	e.advanceTurn(seat)
	return s.Clone(), nil
}

// commit moves chips from the player to the pot
func (e *Engine) commit(p *Player, chips int) {
	p.Chips -= chips
	p.CurrentBet += chips
	p.TotalBet += chips
	e.state.Pot += chips
	if p.Chips == 0 {
		p.IsAllIn = true
	}
}

// advanceTurn moves to the next bettable seat, closing the round (and
// possibly the hand) when betting is complete
func (e *Engine) advanceTurn(from int) {
	s := e.state
	next := s.nextBettable(from + 1)
	if next == -1 || e.roundComplete() {
		e.advancePhase()
		return
	}
	s.ActivePlayerIndex = next
}

// roundComplete reports whether every bettable player has matched the
// current bet and acted since the last raise. Blind posts do not count as
// acting, which gives the big blind its preflop option.
func (e *Engine) roundComplete() bool {
	s := e.state
	for _, p := range s.Players {
		if !p.CanBet() {
			continue
		}
		if !p.HasActed || p.CurrentBet != s.CurrentBet {
			return false
		}
	}
	return true
}

// advancePhase closes the betting round, reveals the next tranche of
// community cards and repeats while no one is left to bet
func (e *Engine) advancePhase() {
	s := e.state
	for {
		s.CurrentBet = 0
		s.MinRaise = s.BigBlind
		for _, p := range s.Players {
			p.CurrentBet = 0
			p.HasActed = false
		}

		switch s.Phase {
		case Preflop:
			s.Phase = Flop
			s.CommunityCards = append(s.CommunityCards, e.deck.Deal(3)...)
		case Flop:
			s.Phase = Turn
			s.CommunityCards = append(s.CommunityCards, e.deck.Deal(1)...)
		case Turn:
			s.Phase = River
			s.CommunityCards = append(s.CommunityCards, e.deck.Deal(1)...)
		case River:
			e.resolveShowdown()
			return
		case Showdown:
			return
		}

		if next := s.nextBettable(s.Button + 1); next != -1 && s.bettableCount() >= 2 {
			s.ActivePlayerIndex = next
			return
		}
		// Everyone remaining is all-in; keep dealing to showdown
	}
}

// WinProbability returns an equity-like win estimate in [0,1] for a player.
// With an estimator configured this is sampled equity over unseen cards;
// otherwise it degrades to the evaluator's normalized strength.
func (e *Engine) WinProbability(playerID string) (float64, error) {
	s := e.state
	if s == nil {
		return 0, fmt.Errorf("%w: no hand in progress", ErrInvalidAction)
	}
	p := s.PlayerByID(playerID)
	if p == nil {
		return 0, fmt.Errorf("%w: unknown player %q", ErrInvalidAction, playerID)
	}
	if !p.IsActive || len(p.HoleCards) != 2 {
		return 0, nil
	}

	opponents := s.ActiveCount() - 1
	if opponents < 1 {
		opponents = 1
	}
	if e.estimator != nil {
		return e.estimator.WinProbability(p.HoleCards, s.CommunityCards, opponents), nil
	}
	return HeuristicStrength(p.HoleCards, s.CommunityCards), nil
}

// BotDecision asks the configured decision maker for the given player's
// move. Legal only for a bot whose turn it is.
func (e *Engine) BotDecision(playerID string) (BotDecision, error) {
	s := e.state
	if s == nil || s.Complete {
		return BotDecision{}, fmt.Errorf("%w: no hand in progress", ErrInvalidAction)
	}
	p := s.PlayerByID(playerID)
	if p == nil {
		return BotDecision{}, fmt.Errorf("%w: unknown player %q", ErrInvalidAction, playerID)
	}
	if !p.IsBot || p.Position != s.ActivePlayerIndex {
		return BotDecision{}, fmt.Errorf("%w: %s", ErrNotPlayersTurn, p.Name)
	}
	if e.decider == nil {
		return BotDecision{}, fmt.Errorf("no decision maker configured")
	}
	return e.decider.Decide(s.Clone(), p.Position)
}
