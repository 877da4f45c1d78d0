package core

import (
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/smarty/plugpack/contracts"
)

// ConfigLoader layers command-line flags over an optional config file over defaults.
// Environment variables are not consulted.
type ConfigLoader struct {
	fileSystem afero.Fs
	home       string
}

func NewConfigLoader(fileSystem afero.Fs, home string) *ConfigLoader {
	return &ConfigLoader{fileSystem: fileSystem, home: home}
}

// DefaultConfigPath is read when it exists and no explicit path is given.
func (this *ConfigLoader) DefaultConfigPath() string {
	return filepath.Join(this.home, ".plugpack", "config.json")
}

// LoadConfig reads the file at path (which must exist when non-empty), then
// applies any flags in flags that were set on the command line.
func (this *ConfigLoader) LoadConfig(path string, flags *pflag.FlagSet) (config contracts.Config, err error) {
	v := viper.New()
	v.SetFs(this.fileSystem)
	this.setDefaults(v)

	if err = this.readConfigFile(v, path); err != nil {
		return contracts.Config{}, err
	}
	if err = bindFlags(v, flags); err != nil {
		return contracts.Config{}, err
	}
	if err = v.Unmarshal(&config); err != nil {
		return contracts.Config{}, errors.Wrap(err, "decode config")
	}
	if err = config.Validate(); err != nil {
		return contracts.Config{}, err
	}
	return config, nil
}

func (this *ConfigLoader) setDefaults(v *viper.Viper) {
	v.SetDefault("install_directory", filepath.Join(this.home, ".plugpack", "plugins"))
	v.SetDefault("plugins_directory", filepath.Join(this.home, ".plugpack", "packages"))
	v.SetDefault("package_extension", contracts.DefaultPackageExtension)
	v.SetDefault("strict", true)
	v.SetDefault("extract", false)
	v.SetDefault("scan_concurrency", 4)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")
}

func (this *ConfigLoader) readConfigFile(v *viper.Viper, path string) error {
	if path == "" {
		path = this.DefaultConfigPath()
		if found, _ := afero.Exists(this.fileSystem, path); !found {
			return nil
		}
	}
	v.SetConfigFile(path)
	return errors.Wrapf(v.ReadInConfig(), "read config file %s", path)
}

// flagKeys maps command-line flag names to config keys.
var flagKeys = map[string]string{
	"install-dir": "install_directory",
	"plugins-dir": "plugins_directory",
	"extension":   "package_extension",
	"strict":      "strict",
	"extract":     "extract",
	"concurrency": "scan_concurrency",
	"log-level":   "log_level",
	"log-format":  "log_format",
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	if flags == nil {
		return nil
	}
	for name, key := range flagKeys {
		flag := flags.Lookup(name)
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return errors.Wrapf(err, "bind --%s", name)
		}
	}
	return nil
}
