// Package devserver is a minimal development host that serves project modules over HTTP
// and asks the prebundler for registered entries.
package devserver

import (
	"slices"
	"sync"
	"time"

	"go.trai.ch/prebundle/internal/core/domain"
	"go.trai.ch/prebundle/internal/core/ports"
)

var _ ports.ModuleGraph = (*ModuleGraph)(nil)

// ModuleGraph records which modules were served and the files backing them.
type ModuleGraph struct {
	mu     sync.RWMutex
	byURL  map[string]*domain.ModuleNode
	byFile map[string][]*domain.ModuleNode
	now    func() time.Time
}

// NewModuleGraph creates an empty module graph.
func NewModuleGraph() *ModuleGraph {
	return &ModuleGraph{
		byURL:  make(map[string]*domain.ModuleNode),
		byFile: make(map[string][]*domain.ModuleNode),
		now:    time.Now,
	}
}

// Ensure returns the node served under url, creating it for file if needed.
func (g *ModuleGraph) Ensure(url, file string) *domain.ModuleNode {
	g.mu.Lock()
	defer g.mu.Unlock()

	if node, ok := g.byURL[url]; ok {
		return node
	}
	node := &domain.ModuleNode{URL: url, File: file}
	g.byURL[url] = node
	g.byFile[file] = append(g.byFile[file], node)
	return node
}

// GetModulesByFile returns every node backed by file.
func (g *ModuleGraph) GetModulesByFile(file string) []*domain.ModuleNode {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return slices.Clone(g.byFile[file])
}

// Invalidate bumps the node's version.
func (g *ModuleGraph) Invalidate(node *domain.ModuleNode) {
	g.mu.Lock()
	defer g.mu.Unlock()
	node.Version++
	node.LastInvalidated = g.now()
}

// Version returns the current version of the node served under url.
func (g *ModuleGraph) Version(url string) (uint64, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	node, ok := g.byURL[url]
	if !ok {
		return 0, false
	}
	return node.Version, true
}
