package discovery

import "errors"

var (
	// ErrProjectNotFound is returned when an identifier names no discovered project.
	ErrProjectNotFound = errors.New("project not found")

	// ErrNotVersioned is returned when a project exists but has no version marker.
	ErrNotVersioned = errors.New("project has no version marker")
)

// Project is one directory under the project root.
type Project struct {
	// Name is the directory name, used as the project identifier.
	Name string

	// Dir is the project directory path.
	Dir string

	// MarkerPath is the path of the version marker, whether or not it exists.
	MarkerPath string

	// Versioned is true when the marker exists.
	Versioned bool

	// Version is the raw first line of the marker, empty when unversioned.
	Version string
}

// PackageVersionKey returns the build variable carrying this project's
// version, e.g. "Zenith.Providers.SqlServer" -> "Zenith_Providers_SqlServer_PACKAGE_VERSION".
func (p Project) PackageVersionKey() string {
	return sanitizeKey(p.Name) + "_PACKAGE_VERSION"
}

func sanitizeKey(name string) string {
	b := []byte(name)
	for i, c := range b {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '_':
		default:
			b[i] = '_'
		}
	}
	return string(b)
}
