package telemetry

import (
	"encoding/json"
	"sync"
)

// Repository stores emitted notices.
type Repository interface {
	Record(kind Kind, day int, message string, metadata map[string]any) Notice
	Since(day int, kinds []Kind) []Notice
	Clear()
}

// MemoryRepository keeps a bounded in-memory feed, trimming the oldest
// entries past its cap.
type MemoryRepository struct {
	mu      sync.RWMutex
	notices []Notice
	nextID  int
	cap     int
}

func NewMemoryRepository(cap int) *MemoryRepository {
	if cap <= 0 {
		cap = 256
	}
	return &MemoryRepository{nextID: 1, cap: cap}
}

func (r *MemoryRepository) Record(kind Kind, day int, message string, metadata map[string]any) Notice {
	r.mu.Lock()
	defer r.mu.Unlock()

	meta := ""
	if len(metadata) > 0 {
		if b, err := json.Marshal(metadata); err == nil {
			meta = string(b)
		}
	}

	n := Notice{
		ID:       r.nextID,
		Kind:     kind,
		Day:      day,
		Message:  message,
		Metadata: meta,
	}
	r.nextID++
	r.notices = append(r.notices, n)
	if len(r.notices) > r.cap {
		r.notices = r.notices[len(r.notices)-r.cap:]
	}
	return n
}

func (r *MemoryRepository) Since(day int, kinds []Kind) []Notice {
	r.mu.RLock()
	defer r.mu.RUnlock()

	filter := make(map[Kind]bool, len(kinds))
	for _, k := range kinds {
		filter[k] = true
	}

	out := make([]Notice, 0)
	for _, n := range r.notices {
		if n.Day < day {
			continue
		}
		if len(kinds) > 0 && !filter[n.Kind] {
			continue
		}
		out = append(out, n)
	}
	return out
}

func (r *MemoryRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = nil
	r.nextID = 1
}

// Stats aggregates the feed by kind, for balance inspection.
func Stats(notices []Notice) map[Kind]int {
	counts := map[Kind]int{}
	for _, n := range notices {
		counts[n.Kind]++
	}
	return counts
}
