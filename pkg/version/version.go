// Package version holds build metadata, overridden at link time:
//
//	go build -ldflags "-X github.com/NeuralTrust/TrustMask/pkg/version.Version=1.2.0 -X github.com/NeuralTrust/TrustMask/pkg/version.Commit=$(git rev-parse --short HEAD)"
package version

import (
	"fmt"
	"runtime"
)

var (
	Version   = "0.1.0"
	AppName   = "TrustMask"
	Commit    = "dev"
	BuildDate = "unknown"
)

type Info struct {
	AppName   string `json:"app_name"`
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

func GetInfo() Info {
	return Info{
		AppName:   AppName,
		Version:   Version,
		Commit:    Commit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}
}

// UserAgent identifies outbound calls, e.g. to the entity recognizer.
func UserAgent() string {
	return AppName + "/" + Version
}
