// Package sandbox translates a declarative session configuration into
// the argument vector of one of two containment backends (proot or
// bwrap) and launches it with inherited stdio.
package sandbox

// MinimalPath is the PATH exported inside every guest session.
const MinimalPath = "/bin:/sbin:/usr/bin:/usr/sbin:/usr/libexec"

// Config describes a single containment session. It is read, never
// mutated, by the argument builders.
type Config struct {
	// Rootfs is the guest root filesystem directory. It must exist and
	// be a directory at launch time.
	Rootfs string

	// RunCmd is an optional shell command to run inside the guest.
	// Empty means an interactive shell.
	RunCmd string

	// Backend selects the containment backend, NameProot or NameBwrap.
	Backend string

	// BackendPath is the resolved absolute path to the backend binary.
	BackendPath string

	// Home is the host home directory bound into the guest by the bwrap
	// backend. The launcher resolves it when empty.
	Home string

	// ExtraBinds is a user-supplied escape hatch appended into the
	// backend argument list. It is split on whitespace, so individual
	// bind paths must not contain spaces.
	ExtraBinds string

	// UseRoot makes the guest session present as uid/gid 0 regardless
	// of the host identity.
	UseRoot bool

	// IgnoreExtraBind skips exposing the host desktop-integration paths
	// (fonts, themes, cursors, audio config).
	IgnoreExtraBind bool

	// NoGroup controls identity-file exposure. The two backends read it
	// with opposite polarity: proot pins the guest's own passwd/group
	// when it is true, bwrap exposes the host's when it is false.
	NoGroup bool
}
