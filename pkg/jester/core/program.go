package core

// ProgramContext is what the launcher commands see of a program.
type ProgramContext interface {
	Named
	LoggerProvider

	// Returns the registered suites in registration order.
	Suites() []RegisteredSuite
}
