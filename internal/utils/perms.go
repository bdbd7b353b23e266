package utils

// DefaultDirPerms is the mode for directories scv creates.
const DefaultDirPerms = 0o750
