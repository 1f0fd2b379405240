package installer

import "github.com/sandevgo/bioprep/internal/config"

type InstallState struct {
	Metis   config.MetisConfig
	EnvPath string
}

func NewInstallState() *InstallState {
	return &InstallState{}
}
