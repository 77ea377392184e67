package app

import (
	"github.com/kart-io/version"
)

// GetVersion returns the version string.
func GetVersion() string {
	return version.Get().GitVersion
}

// UserAgent returns "<name>/<version>".
func UserAgent(name string) string {
	v := GetVersion()
	if v == "" {
		v = "dev"
	}
	return name + "/" + v
}
