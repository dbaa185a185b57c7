package routes

// NotFoundPolicy controls what the shell renders for a location that matches
// no route.
type NotFoundPolicy string

const (
	// NotFoundEmpty renders the layout chrome with an empty content area.
	NotFoundEmpty NotFoundPolicy = "empty"
	// NotFoundPage renders an explicit not-found page inside the chrome.
	NotFoundPage NotFoundPolicy = "page"
)

// Normalize maps unknown or empty values to NotFoundEmpty.
func (p NotFoundPolicy) Normalize() NotFoundPolicy {
	switch p {
	case NotFoundPage:
		return NotFoundPage
	default:
		return NotFoundEmpty
	}
}

// Valid reports whether p is one of the declared policies (or empty).
func (p NotFoundPolicy) Valid() bool {
	return p == "" || p == NotFoundEmpty || p == NotFoundPage
}

func (p NotFoundPolicy) String() string {
	return string(p.Normalize())
}
