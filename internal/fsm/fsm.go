// Package fsm provides a small table-driven finite state machine used to
// validate token sequences against line grammars.
package fsm

import "github.com/mweber/serialtest/internal/token"

// Reject is the sink state. A transition function returns Reject when no
// transition exists for the current state and token.
const Reject = 0

// TransitionFunc maps the current state and the next token to the follow-up
// state, or Reject when the token is not allowed in that state.
type TransitionFunc func(state int, tok token.Token) int

// Machine validates token sequences. States are plain ints chosen by the
// grammar; the machine only distinguishes the start state, accepting states
// and Reject.
type Machine struct {
	start      int
	accepting  map[int]bool
	transition TransitionFunc
}

// New creates a Machine with the given start state, accepting states and
// transition function.
func New(start int, accepting []int, transition TransitionFunc) *Machine {
	acc := make(map[int]bool, len(accepting))
	for _, s := range accepting {
		acc[s] = true
	}
	return &Machine{start: start, accepting: acc, transition: transition}
}

// Run feeds tokens through the machine. It returns the state the machine
// ended in, the token it ended on, and whether the sequence was accepted.
//
// On a rejected token the returned state is the one the machine was in
// before that token, and the returned token is the offending one, so callers
// can map the pair to a diagnostic. When the sequence ends in a
// non-accepting state the final state and the last token are returned.
func (m *Machine) Run(tokens []token.Token) (int, token.Token, bool) {
	state := m.start
	var last token.Token

	for _, tok := range tokens {
		next := m.transition(state, tok)
		if next == Reject {
			return state, tok, false
		}
		state = next
		last = tok
	}

	return state, last, m.accepting[state]
}
