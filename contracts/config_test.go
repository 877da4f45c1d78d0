package contracts

import (
	"testing"

	"github.com/smartystreets/assertions/should"
	"github.com/smartystreets/gunit"
)

func TestConfigFixture(t *testing.T) {
	gunit.Run(new(ConfigFixture), t)
}

type ConfigFixture struct {
	*gunit.Fixture

	config Config
}

func (this *ConfigFixture) Setup() {
	this.config = Config{
		InstallDirectory: "/plugins/installed",
		PackageExtension: ".plug",
		ScanConcurrency:  4,
	}
}

func (this *ConfigFixture) TestPopulatedConfigIsValid() {
	this.So(this.config.Validate(), should.BeNil)
}

func (this *ConfigFixture) TestInstallDirectoryIsRequired() {
	this.config.InstallDirectory = "  "

	this.So(this.config.Validate(), should.Equal, blankInstallDirectoryErr)
}

func (this *ConfigFixture) TestExtensionMustStartWithDot() {
	this.config.PackageExtension = "plug"

	this.So(this.config.Validate(), should.Equal, packageExtensionErr)
}

func (this *ConfigFixture) TestExtensionMustNotBeABareDot() {
	this.config.PackageExtension = "."

	this.So(this.config.Validate(), should.Equal, packageExtensionErr)
}

func (this *ConfigFixture) TestScanConcurrencyMustBePositive() {
	this.config.ScanConcurrency = 0

	this.So(this.config.Validate(), should.Equal, scanConcurrencyErr)
}
