package core

// Application is a launchable entry reported by the host's registry.
// Values are immutable once enumerated; Identifier is the primary key
// everywhere in launchkit, DisplayName is not guaranteed unique.
type Application struct {
	DisplayName string
	Identifier  string
	Target      string // Opaque launch handle, passed back to the host untouched
}

// String returns the display name followed by the identifier.
func (a Application) String() string {
	return a.DisplayName + " (" + a.Identifier + ")"
}

// Identifiers returns the identifiers of apps in order.
func Identifiers(apps []Application) []string {
	ids := make([]string, len(apps))
	for i, app := range apps {
		ids[i] = app.Identifier
	}
	return ids
}

// Entry is an Application annotated with its membership in the
// favorites, hidden and challenged sets.
type Entry struct {
	App        Application
	Favorite   bool
	Hidden     bool
	Challenged bool
}
