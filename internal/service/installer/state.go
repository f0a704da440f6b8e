package installer

// InstallState collects the answers of the wizard as environment variables.
type InstallState struct {
	EnvVars map[string]string
}

func NewInstallState() *InstallState {
	return &InstallState{
		EnvVars: make(map[string]string),
	}
}

func (s *InstallState) enabled(key string) bool {
	return s.EnvVars[key] == "true"
}
