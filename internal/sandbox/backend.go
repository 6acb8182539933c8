package sandbox

// Backend names accepted by BackendFor.
const (
	NameProot = "proot"
	NameBwrap = "bwrap"
)

// Backend builds the launch argument vector for one containment tool.
// Implementations append discrete argv tokens; nothing is ever joined
// into a single string and re-split.
type Backend interface {
	Name() string

	// Args produces the backend-specific option tokens for cfg,
	// consulting host for optional path exposure.
	Args(cfg *Config, host Host) []string
}

// BackendFor returns the builder for the named backend.
func BackendFor(name string) (Backend, error) {
	switch name {
	case NameProot:
		return prootBackend{}, nil
	case NameBwrap:
		return bwrapBackend{}, nil
	default:
		return nil, &UnsupportedBackendError{Name: name}
	}
}
