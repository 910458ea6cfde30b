package prebundler

import (
	"sync"

	"go.trai.ch/prebundle/internal/core/domain"
)

// changeLog collects the files that change while an entry is being bundled.
// Only one bundle per entry runs at a time, so pending is keyed by entry id.
type changeLog struct {
	mu      sync.Mutex
	pending map[string][]string
}

func (l *changeLog) begin(id string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.pending == nil {
		l.pending = make(map[string][]string)
	}
	l.pending[id] = nil
}

func (l *changeLog) record(file string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for id, files := range l.pending {
		l.pending[id] = append(files, file)
	}
}

func (l *changeLog) abort(id string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	delete(l.pending, id)
}

// commit stops tracking entry and stores cache on it, unless a file the bundle read
// changed in the meantime. It returns that file when the cache was rejected.
// Storing under the lock orders it against record: a change either lands in the log
// or happens after the store, where HandleFileChange sees the new cache.
func (l *changeLog) commit(entry *domain.ResolvedEntry, cache *domain.Cache) (string, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	changed := l.pending[entry.ResolvedFilepath]
	delete(l.pending, entry.ResolvedFilepath)

	for _, file := range changed {
		if cache.BundledFiles.Contains(file) {
			return file, false
		}
	}
	entry.StoreCache(cache)
	return "", true
}
