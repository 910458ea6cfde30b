package ports

import "go.trai.ch/prebundle/internal/core/domain"

// ModuleGraph is the host's view of served modules.
//
//go:generate mockgen -source=module_graph.go -destination=mocks/mock_module_graph.go -package=mocks
type ModuleGraph interface {
	// GetModulesByFile returns every module record backed by the given file.
	GetModulesByFile(file string) []*domain.ModuleNode
}
