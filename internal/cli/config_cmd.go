package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/lsq2obs/internal/config"
	"github.com/aidanlsb/lsq2obs/internal/ui"
)

func newConfigCmd(o *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the lsq2obs config file",
	}

	resolvedPath := func() string {
		if o.configPath != "" {
			return o.configPath
		}
		return config.DefaultPath()
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the config file location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := resolvedPath()
			if o.jsonOutput {
				outputSuccess(cmd.OutOrStdout(), map[string]string{"path": path})
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Write a commented default config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			path := resolvedPath()
			created, err := config.CreateDefault(path)
			if err != nil {
				return handleError(out, o.jsonOutput, ErrFileWriteError, err, "")
			}
			if o.jsonOutput {
				outputSuccess(out, map[string]interface{}{"path": path, "created": created})
				return nil
			}
			if created {
				fmt.Fprintln(out, ui.Successf("Created %s", ui.FilePath(path)))
			} else {
				fmt.Fprintln(out, ui.Warningf("Config already exists at %s, left unchanged", ui.FilePath(path)))
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			cfg, err := config.Load(o.configPath)
			if err != nil {
				return handleError(out, o.jsonOutput, ErrConfigInvalid, err, "")
			}
			if o.jsonOutput {
				outputSuccess(out, cfg)
				return nil
			}
			data, err := config.Encode(cfg)
			if err != nil {
				return err
			}
			_, err = out.Write(data)
			return err
		},
	})

	return cmd
}
