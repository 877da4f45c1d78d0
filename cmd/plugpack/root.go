package main

import (
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/smarty/plugpack/archive"
	"github.com/smarty/plugpack/contracts"
	"github.com/smarty/plugpack/core"
	"github.com/smarty/plugpack/logger"
)

// errRejected signals exit status 1 after the rejection has already been reported.
var errRejected = errors.New("one or more packages were rejected")

type application struct {
	fileSystem afero.Fs
	home       string
	configPath string
	config     contracts.Config
}

func newRootCommand(fileSystem afero.Fs, home string) *cobra.Command {
	app := &application{fileSystem: fileSystem, home: home}

	root := &cobra.Command{
		Use:               "plugpack",
		Short:             "Create, verify, and install PLUG plugin packages",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: app.configure,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&app.configPath, "config", "", "config file (default $HOME/.plugpack/config.json)")
	flags.String("install-dir", "", "root directory under which plugins are installed, one subdirectory per plugin")
	flags.String("plugins-dir", "", "directory searched by scan")
	flags.String("extension", contracts.DefaultPackageExtension, "package file extension")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.String("log-format", "text", "log format (text or json)")

	root.AddCommand(
		app.createCommand(),
		app.verifyCommand(),
		app.installCommand(),
		app.verifyInstallCommand(),
		app.uninstallCommand(),
		app.scanCommand(),
		versionCommand(),
	)
	return root
}

func (this *application) configure(cmd *cobra.Command, _ []string) error {
	loader := core.NewConfigLoader(this.fileSystem, this.home)
	config, err := loader.LoadConfig(this.configPath, cmd.Flags())
	if err != nil {
		return err
	}
	if err = logger.SetLogLevel(config.LogLevel); err != nil {
		return err
	}
	logger.SetLogFormat(config.LogFormat)
	this.config = config
	return nil
}

// installDirectory honors an explicit --dir, otherwise each plugin gets its
// own directory, named after the package file, under the install root.
func (this *application) installDirectory(cmd *cobra.Command, name string) string {
	if dir, _ := cmd.Flags().GetString("dir"); dir != "" {
		return dir
	}
	return filepath.Join(this.config.InstallDirectory, name)
}

func (this *application) installer() *core.PackageInstaller {
	if this.config.Extract {
		return core.NewPackageInstaller(this.fileSystem, archive.NewTarGzBundler(0))
	}
	return core.NewPackageInstaller(this.fileSystem, nil)
}

func (this *application) verifier() *core.PackageVerifier {
	return core.NewPackageVerifier(this.fileSystem)
}
