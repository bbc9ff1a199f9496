// Package launchkit is the directory-and-ranking core of an application
// launcher.
//
// A Launcher opens the unified preference store, merges legacy preference
// namespaces into it once, and owns the favorites, hidden and challenged
// sets. Sessions created from it answer which applications to show for a
// query:
//
//	l, err := launchkit.Open(ctx, dataDir)
//	session, err := l.NewSession(registry.Static(apps))
//	showHidden, err := l.ShowHiddenOverride(ctx, query)
//	visible, err := session.VisibleApps(ctx, query, showHidden)
package launchkit
