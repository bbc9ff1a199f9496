package directory

import "github.com/poiesic/launchkit/core"

// Monitor provides hooks to observe how VisibleApps builds its result.
type Monitor interface {
	Start(query string, showHidden bool)
	AfterMatch(matched []core.Application)
	AfterRank(ranked []core.Application)
	HiddenDropped(app core.Application)
	Finish(visible []core.Application)
}

// noopMonitor is a no-op implementation of Monitor
type noopMonitor struct{}

var _ Monitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string, _ bool)           {}
func (n *noopMonitor) AfterMatch(_ []core.Application)  {}
func (n *noopMonitor) AfterRank(_ []core.Application)   {}
func (n *noopMonitor) HiddenDropped(_ core.Application) {}
func (n *noopMonitor) Finish(_ []core.Application)      {}
