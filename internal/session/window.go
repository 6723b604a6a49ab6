package session

// MaxRecentQuestions bounds the recent-question window.
const MaxRecentQuestions = 40

// PushRecent appends id to the recent window and returns a new slice. A
// repeated id moves to the newest position. The window drops its oldest
// entries beyond MaxRecentQuestions and empties once it covers every id in
// pool, so the next cycle starts fresh.
func PushRecent(recent []string, id string, pool []string) []string {
	out := make([]string, 0, len(recent)+1)
	for _, r := range recent {
		if r != id {
			out = append(out, r)
		}
	}
	if id != "" {
		out = append(out, id)
	}
	if len(out) > MaxRecentQuestions {
		out = out[len(out)-MaxRecentQuestions:]
	}
	if coversPool(out, pool) {
		return []string{}
	}
	return out
}

func coversPool(recent, pool []string) bool {
	if len(pool) == 0 {
		return false
	}
	seen := make(map[string]bool, len(recent))
	for _, r := range recent {
		seen[r] = true
	}
	for _, id := range pool {
		if !seen[id] {
			return false
		}
	}
	return true
}
