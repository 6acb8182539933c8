package sandbox

import "fmt"

// RootfsNotFoundError reports a missing guest root filesystem. Callers
// match it with errors.As to render setup instructions.
type RootfsNotFoundError struct {
	Path string
}

func (e *RootfsNotFoundError) Error() string {
	return fmt.Sprintf("rootfs directory not found at: %s", e.Path)
}

// UnsupportedBackendError reports a backend name with no builder.
type UnsupportedBackendError struct {
	Name string
}

func (e *UnsupportedBackendError) Error() string {
	return fmt.Sprintf("unsupported sandbox backend: %q", e.Name)
}
