package pagescmd

// FeatureGates exposes runtime toggles for page command handlers.
type FeatureGates struct {
	// CommandsEnabled should return true when page mutations through
	// commands are allowed.
	CommandsEnabled func() bool
}

func (g FeatureGates) commandsEnabled() bool {
	if g.CommandsEnabled == nil {
		return true
	}
	return g.CommandsEnabled()
}
