package main

// Exit codes reported by the extractor.
const (
	ExitSuccess     = 0 // Success
	ExitError       = 1 // General error (runtime failure)
	ExitConfigError = 2 // Configuration error (missing input folder, bad options)
	ExitDataError   = 3 // Data error (format assumptions violated by the input)
)
