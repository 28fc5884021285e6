// Package buildinfo carries release metadata stamped in at link time, e.g.
//
//	go build -ldflags "-X github.com/aidanlsb/lsq2obs/internal/buildinfo.Version=v0.3.0"
//
// Local builds leave every value empty and fall back to debug.ReadBuildInfo.
package buildinfo

var (
	Version = ""
	Commit  = ""
	Date    = ""
)
