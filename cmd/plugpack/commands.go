package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/smarty/plugpack/archive"
	"github.com/smarty/plugpack/contracts"
	"github.com/smarty/plugpack/core"
)

func (this *application) createCommand() *cobra.Command {
	command := &cobra.Command{
		Use:   "create <source> <package>",
		Short: "Package a plugin file, or a directory bundled as tar.gz",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			level, _ := cmd.Flags().GetInt("compression-level")
			builder := core.NewPackageBuilder(this.fileSystem, archive.NewTarGzBundler(level))
			return builder.Create(args[0], args[1])
		},
	}
	command.Flags().Int("compression-level", 0, "gzip level used when bundling a directory (0 selects the default)")
	return command
}

func (this *application) verifyCommand() *cobra.Command {
	command := &cobra.Command{
		Use:   "verify <package>...",
		Short: "Check the stored checksum of each package against its payload",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			verifier := this.verifier()
			reports := make([]contracts.Report, 0, len(args))
			for _, path := range args {
				report, err := verifier.Inspect(path)
				if err != nil {
					return err
				}
				reports = append(reports, report)
			}
			return printReports(cmd, reports)
		},
	}
	command.Flags().Bool("json", false, "print reports as JSON")
	return command
}

func (this *application) installCommand() *cobra.Command {
	command := &cobra.Command{
		Use:   "install <package>",
		Short: "Install a package's payload without verifying it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return this.installer().Install(this.request(cmd, args[0]))
		},
	}
	command.Flags().String("dir", "", "exact install directory (default <install-dir>/<plugin name>)")
	command.Flags().Bool("extract", false, "also unpack a bundled payload into the install directory")
	return command
}

func (this *application) verifyInstallCommand() *cobra.Command {
	command := &cobra.Command{
		Use:   "verify-install <package>",
		Short: "Install a package only when its checksum verifies",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			orchestrator := core.NewVerifiedInstaller(this.verifier(), this.installer(), this.config.Strict)
			return orchestrator.VerifyAndInstall(this.request(cmd, args[0]))
		},
	}
	command.Flags().String("dir", "", "exact install directory (default <install-dir>/<plugin name>)")
	command.Flags().Bool("extract", false, "also unpack a bundled payload into the install directory")
	command.Flags().Bool("strict", true, "fail when verification fails instead of only logging it")
	return command
}

func (this *application) uninstallCommand() *cobra.Command {
	command := &cobra.Command{
		Use:   "uninstall [plugin name]",
		Short: "Remove an installed plugin payload",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")
			if len(args) == 0 && dir == "" {
				return errUninstallTarget
			}
			name := ""
			if len(args) > 0 {
				name = args[0]
			}
			return core.Uninstall(this.fileSystem, this.installDirectory(cmd, name))
		},
	}
	command.Flags().String("dir", "", "exact install directory (default <install-dir>/<plugin name>)")
	return command
}

func (this *application) scanCommand() *cobra.Command {
	command := &cobra.Command{
		Use:   "scan [directory]",
		Short: "Verify every package file below a directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			directory := this.config.PluginsDirectory
			if len(args) > 0 {
				directory = args[0]
			}
			scanner := core.NewPackageScanner(
				this.fileSystem, this.verifier(), this.config.PackageExtension, this.config.ScanConcurrency)
			reports, err := scanner.Scan(cmd.Context(), directory)
			if err != nil {
				return err
			}
			only, _ := cmd.Flags().GetStringSlice("only")
			return printReports(cmd, core.Filter(reports, only))
		},
	}
	command.Flags().StringSlice("only", nil, "restrict output to these plugin names")
	command.Flags().Int("concurrency", 4, "number of packages inspected at once")
	command.Flags().Bool("json", false, "print reports as JSON")
	return command
}

func versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:               "version",
		Short:             "Print the plugpack version",
		Args:              cobra.NoArgs,
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(cmd *cobra.Command, _ []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "plugpack [%s]\n", ldflagsSoftwareVersion)
		},
	}
}

func (this *application) request(cmd *cobra.Command, packagePath string) contracts.InstallationRequest {
	name := contracts.Report{Path: packagePath}.Name()
	return contracts.InstallationRequest{
		PackagePath:      packagePath,
		InstallDirectory: this.installDirectory(cmd, name),
	}
}

// printReports returns errRejected when any report is unverified.
func printReports(cmd *cobra.Command, reports []contracts.Report) error {
	asJSON, _ := cmd.Flags().GetBool("json")
	if err := writeReports(cmd.OutOrStdout(), reports, asJSON); err != nil {
		return err
	}
	for _, report := range reports {
		if !report.Verified {
			return errRejected
		}
	}
	return nil
}

func writeReports(writer io.Writer, reports []contracts.Report, asJSON bool) error {
	if asJSON {
		encoder := json.NewEncoder(writer)
		encoder.SetIndent("", "    ")
		return encoder.Encode(reports)
	}
	for _, report := range reports {
		if _, err := fmt.Fprintf(writer, "%s\t%s\n", report.Path, report.Status()); err != nil {
			return err
		}
	}
	return nil
}

var errUninstallTarget = errors.New("uninstall requires a plugin name or --dir")
