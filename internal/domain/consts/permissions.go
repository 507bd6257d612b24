package consts

// Permissions for files and directories ytbatch creates.
const (
	// Media output - world readable
	PermsGenericDir = 0o755
	PermsVideoDir   = 0o755
	PermsLogFile    = 0o644

	// Private
	PermsHomeProgDir = 0o700
	PermsCookieDir   = 0o750
	PermsCookieFile  = 0o600
)
