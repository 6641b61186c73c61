package tilde

const (
	AppName = "tilde"

	// config
	EnvPrefix      = "TILDE"
	ConfigFileName = "config.yaml"

	// logging
	LogFileName = "tilde.log"
)
