package regexvm

// Config tunes the convenience Regexp facade. It has no effect on the
// underlying vm.Engine, which takes no configuration beyond the program
// itself — Config only toggles facade-level conveniences layered on
// top.
type Config struct {
	// EnablePrefilter toggles the literal-prefix skip-ahead optimization
	// (package prefilter): when the compiled pattern has a required
	// literal prefix, Regexp first checks whether that prefix occurs at
	// all before running the VM. This can never change which matches
	// are found — a required prefix that doesn't occur means the VM
	// could not have matched either — it only changes how much work a
	// guaranteed-empty search does.
	EnablePrefilter bool
}

// DefaultConfig returns the default facade configuration: the literal
// prefilter is enabled.
func DefaultConfig() Config {
	return Config{EnablePrefilter: true}
}
