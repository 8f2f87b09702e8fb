package navigation

// appendBounded appends entry, first evicting from the front so the result
// never exceeds limit entries.
func appendBounded(history []HistoryEntry, entry HistoryEntry, limit int) []HistoryEntry {
	if limit < 1 {
		limit = 1
	}
	if over := len(history) + 1 - limit; over > 0 {
		// Copy down; reslicing would keep the evicted prefix alive.
		n := copy(history, history[over:])
		history = history[:n]
	}
	return append(history, entry)
}
