package main

// Exit codes used by all sg commands.
const (
	ExitSuccess     = 0 // Success
	ExitError       = 1 // General error (invalid arguments, runtime failure)
	ExitConfigError = 2 // Configuration error (not in a repository, invalid paths)
	ExitDataError   = 3 // Data error (malformed export, validation failure)
)
