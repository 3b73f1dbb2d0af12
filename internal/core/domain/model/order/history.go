package order

import "time"

// HistoryEntry records one status transition. Entries are append-only: they have no
// setters and the repository only ever inserts them.
type HistoryEntry struct {
	sequence int
	from     Status
	to       Status
	reason   string
	actor    string
	at       time.Time
}

// RestoreHistoryEntry rebuilds a persisted entry.
func RestoreHistoryEntry(sequence int, from, to Status, reason, actor string, at time.Time) HistoryEntry {
	return HistoryEntry{sequence: sequence, from: from, to: to, reason: reason, actor: actor, at: at}
}

func (h HistoryEntry) Sequence() int { return h.sequence }
func (h HistoryEntry) From() Status { return h.from }
func (h HistoryEntry) To() Status { return h.to }
func (h HistoryEntry) Reason() string { return h.reason }
func (h HistoryEntry) Actor() string { return h.actor }
func (h HistoryEntry) At() time.Time { return h.at }
