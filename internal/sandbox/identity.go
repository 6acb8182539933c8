package sandbox

import "os"

// Identity is the host identity captured at launch time. It is read
// fresh for every launch; a new session may run under a different user.
type Identity struct {
	UID  int
	EUID int
}

// CurrentIdentity reads the real and effective user IDs of the calling
// process.
func CurrentIdentity() Identity {
	return Identity{UID: os.Getuid(), EUID: os.Geteuid()}
}
