package model

// LookupResult is the answer of an export-table query.
type LookupResult int

const (
	// NotFound means the root does not declare the path.
	NotFound LookupResult = iota
	// PrivatePath means the path exists but some segment is not public.
	PrivatePath
	// PublicPath means every segment from the crate root down is public.
	PublicPath
)

func (l LookupResult) String() string {
	switch l {
	case PrivatePath:
		return "private"
	case PublicPath:
		return "public"
	default:
		return "not found"
	}
}

// ExportEntry describes one declared path of one root.
type ExportEntry struct {
	Path    Path
	Root    Root
	Kind    Kind
	Visible bool
}

// Collision is a path exported by both roots. It is a diagnostic, not an error.
type Collision struct {
	Path  Path
	Roots []Root
}
