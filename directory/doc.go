// Package directory answers what the launcher's application list should
// look like right now.
//
// A Session holds an alphabetical snapshot of the host registry and combines
// it with the search package and the launcher's membership sets:
//
//	session, err := directory.NewSession(reg, sets,
//	    directory.WithSelfIdentifier("org.example.launcher"))
//	apps, err := session.VisibleApps(ctx, "gm", false)
//
// An empty or failed registry enumeration yields an empty list rather than
// an error from VisibleApps; Refresh reports the enumeration failure to
// callers that want it.
package directory
