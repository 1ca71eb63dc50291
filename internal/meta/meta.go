// Where: internal/meta/meta.go
// What: Project identity constants.
// Why: Keep names, file names, and default endpoints in one place.
package meta

const (
	// Project Identity
	AppName   = "portid"
	EnvPrefix = "PORTID"

	// Storage Layout
	DataDirName    = "portid"
	DBFileName     = "portid.json"
	ConfigFileName = "config.yaml"

	// Remote Snapshots
	DefaultUpdateURL = "https://raw.githubusercontent.com/antipatico/portid/master/portid.json"
	UpstreamPortsURL = "https://raw.githubusercontent.com/silverwind/port-numbers/master/ports.json"
)
