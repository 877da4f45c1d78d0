package contracts

import (
	"errors"
	"strings"
)

type Config struct {
	InstallDirectory string `json:"install_directory" mapstructure:"install_directory"`
	PluginsDirectory string `json:"plugins_directory" mapstructure:"plugins_directory"`
	PackageExtension string `json:"package_extension" mapstructure:"package_extension"`
	Strict           bool   `json:"strict"            mapstructure:"strict"`
	Extract          bool   `json:"extract"           mapstructure:"extract"`
	ScanConcurrency  int    `json:"scan_concurrency"  mapstructure:"scan_concurrency"`
	LogLevel         string `json:"log_level"         mapstructure:"log_level"`
	LogFormat        string `json:"log_format"        mapstructure:"log_format"`
}

func (this Config) Validate() error {
	if strings.TrimSpace(this.InstallDirectory) == "" {
		return blankInstallDirectoryErr
	}
	if !strings.HasPrefix(this.PackageExtension, ".") || len(this.PackageExtension) < 2 {
		return packageExtensionErr
	}
	if this.ScanConcurrency < 1 {
		return scanConcurrencyErr
	}
	return nil
}

var (
	blankInstallDirectoryErr = errors.New("install directory should not be blank")
	packageExtensionErr      = errors.New("package extension must start with a dot, e.g. \".plug\"")
	scanConcurrencyErr       = errors.New("scan concurrency must be positive")
)
