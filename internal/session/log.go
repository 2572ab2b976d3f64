package session

import "github.com/smartsight-ai/sightchat/internal/domain"

// Log is the append-only ordered sequence of turns. Past entries are never
// edited; the only mutation besides Append is the full Clear used by reset.
//
// Log is not safe for concurrent use on its own; the Controller's lock is the
// serialization point.
type Log struct {
	turns []domain.Turn
}

func (l *Log) Append(turn domain.Turn) {
	l.turns = append(l.turns, turn)
}

func (l *Log) Len() int {
	return len(l.turns)
}

// Turns returns a copy of the log in insertion order.
func (l *Log) Turns() []domain.Turn {
	out := make([]domain.Turn, len(l.turns))
	copy(out, l.turns)
	return out
}

func (l *Log) Clear() {
	l.turns = nil
}
