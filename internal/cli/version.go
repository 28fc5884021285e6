package cli

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/lsq2obs/internal/buildinfo"
)

const defaultModulePath = "github.com/aidanlsb/lsq2obs"

type versionInfo struct {
	Version    string `json:"version"`
	ModulePath string `json:"module_path"`
	Commit     string `json:"commit,omitempty"`
	CommitTime string `json:"commit_time,omitempty"`
	Modified   bool   `json:"modified"`
	GoVersion  string `json:"go_version"`
	GOOS       string `json:"goos"`
	GOARCH     string `json:"goarch"`
}

var readBuildInfo = debug.ReadBuildInfo

func newVersionCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show lsq2obs version and build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := currentVersionInfo()
			out := cmd.OutOrStdout()

			if o.jsonOutput {
				outputSuccess(out, info)
				return nil
			}

			fmt.Fprintf(out, "lsq2obs %s\n", info.Version)
			fmt.Fprintf(out, "module: %s\n", info.ModulePath)
			if info.Commit != "" {
				fmt.Fprintf(out, "commit: %s\n", info.Commit)
			}
			if info.CommitTime != "" {
				fmt.Fprintf(out, "commit_time: %s\n", info.CommitTime)
			}
			fmt.Fprintf(out, "go: %s\n", info.GoVersion)
			fmt.Fprintf(out, "platform: %s/%s\n", info.GOOS, info.GOARCH)
			fmt.Fprintf(out, "modified: %t\n", info.Modified)

			return nil
		},
	}
}

func currentVersionInfo() versionInfo {
	info := versionInfo{
		Version:    "devel",
		ModulePath: defaultModulePath,
		GoVersion:  runtime.Version(),
		GOOS:       runtime.GOOS,
		GOARCH:     runtime.GOARCH,
	}

	buildInfo, ok := readBuildInfo()
	if !ok || buildInfo == nil {
		applyLdflagsFallback(&info)
		return info
	}

	if buildInfo.Main.Path != "" {
		info.ModulePath = buildInfo.Main.Path
	}
	info.Version = normalizeVersion(buildInfo.Main.Version)

	if buildInfo.GoVersion != "" {
		info.GoVersion = buildInfo.GoVersion
	}

	if val := buildSetting(buildInfo, "GOOS"); val != "" {
		info.GOOS = val
	}
	if val := buildSetting(buildInfo, "GOARCH"); val != "" {
		info.GOARCH = val
	}

	info.Commit = buildSetting(buildInfo, "vcs.revision")
	info.CommitTime = buildSetting(buildInfo, "vcs.time")
	info.Modified = strings.EqualFold(buildSetting(buildInfo, "vcs.modified"), "true")
	applyLdflagsFallback(&info)

	return info
}

func normalizeVersion(version string) string {
	if version == "" || version == "(devel)" {
		return "devel"
	}
	return version
}

func buildSetting(info *debug.BuildInfo, key string) string {
	if info == nil {
		return ""
	}
	for _, setting := range info.Settings {
		if setting.Key == key {
			return setting.Value
		}
	}
	return ""
}

func applyLdflagsFallback(info *versionInfo) {
	if info == nil {
		return
	}

	if info.Version == "devel" && buildinfo.Version != "" {
		info.Version = normalizeVersion(buildinfo.Version)
	}
	if info.Commit == "" && buildinfo.Commit != "" {
		info.Commit = buildinfo.Commit
	}
	if info.CommitTime == "" && buildinfo.Date != "" {
		info.CommitTime = buildinfo.Date
	}
}
