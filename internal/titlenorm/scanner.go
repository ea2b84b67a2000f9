package titlenorm

import (
	"fmt"
	"strings"
)

// scanState is the boundary scanner position. Text before Cursor is final and
// never rescanned; Committed ends the scan.
type scanState struct {
	Cursor    int
	Committed bool
}

// transition is the result of one scanner step. Song may be shorter than the
// input when a noise span was removed.
type transition struct {
	State scanState
	Song  string
	Event string
}

// noiseCutSeparators are absorbed when they directly precede a noise keyword
// in unbracketed text.
const noiseCutSeparators = "-_*^#@:;,."

// scan walks song from the start and returns the preserved part together with
// a description of each transition taken.
func (e *Engine) scan(song string) (string, []string, error) {
	state := scanState{}
	var events []string
	for !state.Committed {
		next, err := e.scanStep(state, song)
		if err != nil {
			return "", events, err
		}
		if !next.State.Committed && next.State.Cursor <= state.Cursor && len(next.Song) >= len(song) {
			next = transition{State: scanState{Cursor: len(song), Committed: true}, Song: song, Event: "stalled"}
		}
		events = append(events, next.Event)
		state, song = next.State, next.Song
	}
	return trimSeparators(song[:state.Cursor]), events, nil
}

// scanStep is a pure transition from state over song.
func (e *Engine) scanStep(state scanState, song string) (transition, error) {
	if span, ok := firstSpanFrom(mustSpans(song), state.Cursor); ok {
		text := song[span.Start:span.End]
		if e.rules.hasRole(span.Content, RoleNoise) {
			shrunk, err := deleteSpan(song, span, state.Cursor)
			if err != nil {
				return transition{}, err
			}
			return transition{State: state, Song: shrunk, Event: "drop " + text}, nil
		}
		return transition{State: scanState{Cursor: span.End}, Song: song, Event: "keep " + text}, nil
	}

	if m, ok := e.rules.findRole(song, state.Cursor, RolePrefix, RoleSuffix); ok {
		end := m.end
		if m.rule.Role == RolePrefix {
			end = e.clauseStop(song, m.end, false)
			if end > m.end && song[end-1] == ' ' {
				end--
			}
		} else if end < len(song) && isCloseBracket(song[end]) {
			end++
		}
		event := fmt.Sprintf("%s %q", m.rule.Role, song[m.start:end])
		return transition{State: scanState{Cursor: end}, Song: song, Event: event}, nil
	}

	if m, ok := e.rules.findRole(song, state.Cursor, RoleNoise); ok {
		cut := m.start
		if m.rule.Text != "@" && cut > state.Cursor && strings.IndexByte(noiseCutSeparators, song[cut-1]) >= 0 {
			cut--
		}
		event := fmt.Sprintf("cut %q", song[cut:])
		return transition{State: scanState{Cursor: cut, Committed: true}, Song: song, Event: event}, nil
	}

	return transition{State: scanState{Cursor: len(song), Committed: true}, Song: song, Event: "commit"}, nil
}

// clauseStop returns where a prefix clause starting before from ends: the
// next bracket open or pipe, the next noise keyword, or the end of s. When
// atPrefix is set, the next prefix keyword also stops the clause.
func (e *Engine) clauseStop(s string, from int, atPrefix bool) int {
	stop := len(s)
	if i := strings.IndexAny(s[from:], "([{|"); i >= 0 {
		stop = from + i
	}
	roles := []Role{RoleNoise}
	if atPrefix {
		roles = append(roles, RolePrefix)
	}
	if m, ok := e.rules.findRole(s, from, roles...); ok && m.start < stop {
		stop = m.start
	}
	return stop
}

// cutSpan removes span and one adjacent space. The left space is taken when
// it lies after floor, otherwise the right one.
func cutSpan(s string, span BracketSpan, floor int) string {
	start, end := span.Start, span.End
	switch {
	case start > floor && s[start-1] == ' ':
		start--
	case end < len(s) && s[end] == ' ':
		end++
	}
	return s[:start] + s[end:]
}

func deleteSpan(s string, span BracketSpan, floor int) (string, error) {
	out := cutSpan(s, span, floor)
	if strings.TrimSpace(out) == "" {
		return "", newError(ErrAmbiguousSegment, "scan", span.Start, "song segment is only noise")
	}
	return out, nil
}
