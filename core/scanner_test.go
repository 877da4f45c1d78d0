package core

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/smartystreets/assertions/should"
	"github.com/smartystreets/gunit"
	"github.com/spf13/afero"

	"github.com/smarty/plugpack/contracts"
)

func TestPackageScannerFixture(t *testing.T) {
	gunit.Run(new(PackageScannerFixture), t)
}

type PackageScannerFixture struct {
	*gunit.Fixture

	fileSystem afero.Fs
	verifier   *PackageVerifier
	scanner    *PackageScanner
}

func (this *PackageScannerFixture) Setup() {
	this.fileSystem = afero.NewMemMapFs()
	this.verifier = NewPackageVerifier(this.fileSystem)
	this.verifier.logger, _ = test.NewNullLogger()
	this.scanner = this.build(this.verifier, "", 3)
}

func (this *PackageScannerFixture) build(inspector contracts.Inspector, extension string, concurrency int) *PackageScanner {
	scanner := NewPackageScanner(this.fileSystem, inspector, extension, concurrency)
	scanner.logger, _ = test.NewNullLogger()
	return scanner
}

func (this *PackageScannerFixture) TestEveryPackageIsReportedInPathOrder() {
	writePackageFile(this.fileSystem, "/plugins/zeta.plug", []byte("zeta"))
	writePackageFile(this.fileSystem, "/plugins/alpha.plug", []byte("alpha"))
	writePackageFile(this.fileSystem, "/plugins/nested/deeper/calc.plug", []byte("calc"))
	_ = afero.WriteFile(this.fileSystem, "/plugins/README.md", []byte("docs"), 0644)

	reports, err := this.scanner.Scan(context.Background(), "/plugins")

	this.So(err, should.BeNil)
	this.So(paths(reports), should.Resemble, []string{
		"/plugins/alpha.plug",
		"/plugins/nested/deeper/calc.plug",
		"/plugins/zeta.plug",
	})
	for _, report := range reports {
		this.So(report.Verified, should.BeTrue)
	}
}

func (this *PackageScannerFixture) TestTamperedAndForeignPackagesAreRejected() {
	raw := writePackageFile(this.fileSystem, "/plugins/tampered.plug", []byte("hello plugin"))
	raw[len(raw)-1] = '!'
	_ = afero.WriteFile(this.fileSystem, "/plugins/tampered.plug", raw, 0644)
	_ = afero.WriteFile(this.fileSystem, "/plugins/foreign.plug", []byte("MZ not a plugin"), 0644)

	reports, err := this.scanner.Scan(context.Background(), "/plugins")

	this.So(err, should.BeNil)
	this.So(len(reports), should.Equal, 2)
	this.So(errors.Is(reports[0].Problem, contracts.ErrBadMagic), should.BeTrue)
	this.So(reports[1].Problem, should.Equal, contracts.ErrChecksumMismatch)
}

func (this *PackageScannerFixture) TestCustomExtension() {
	writePackageFile(this.fileSystem, "/plugins/calc.vtp", []byte("calc"))
	writePackageFile(this.fileSystem, "/plugins/clock.plug", []byte("clock"))

	reports, err := this.build(this.verifier, ".vtp", 1).Scan(context.Background(), "/plugins")

	this.So(err, should.BeNil)
	this.So(paths(reports), should.Resemble, []string{"/plugins/calc.vtp"})
}

func (this *PackageScannerFixture) TestEmptyDirectoryHasNoReports() {
	_ = this.fileSystem.MkdirAll("/plugins", 0755)

	reports, err := this.scanner.Scan(context.Background(), "/plugins")

	this.So(err, should.BeNil)
	this.So(reports, should.BeEmpty)
}

func (this *PackageScannerFixture) TestMissingDirectoryIsAnError() {
	reports, err := this.scanner.Scan(context.Background(), "/plugins")

	this.So(err, should.NotBeNil)
	this.So(reports, should.BeNil)
}

func (this *PackageScannerFixture) TestFileInsteadOfDirectoryIsAnError() {
	writePackageFile(this.fileSystem, "/plugins", []byte("calc"))

	_, err := this.scanner.Scan(context.Background(), "/plugins")

	this.So(err, should.NotBeNil)
}

func (this *PackageScannerFixture) TestInspectionErrorAbortsScan() {
	writePackageFile(this.fileSystem, "/plugins/a.plug", []byte("a"))
	writePackageFile(this.fileSystem, "/plugins/b.plug", []byte("b"))
	inspector := &FakeInspector{errs: map[string]error{"/plugins/b.plug": inspectErr}}

	reports, err := this.build(inspector, "", 2).Scan(context.Background(), "/plugins")

	this.So(errors.Is(err, inspectErr), should.BeTrue)
	this.So(reports, should.BeNil)
}

func (this *PackageScannerFixture) TestCancelledContextStopsScan() {
	writePackageFile(this.fileSystem, "/plugins/a.plug", []byte("a"))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	inspector := &FakeInspector{}

	_, err := this.build(inspector, "", 1).Scan(ctx, "/plugins")

	this.So(errors.Is(err, context.Canceled), should.BeTrue)
	this.So(inspector.inspected, should.BeEmpty)
}

func paths(reports []contracts.Report) (all []string) {
	for _, report := range reports {
		all = append(all, report.Path)
	}
	return all
}

//////////////////////////////////////////////////////////////////////

type FakeInspector struct {
	mutex     sync.Mutex
	inspected []string
	errs      map[string]error
}

func (this *FakeInspector) Inspect(path string) (contracts.Report, error) {
	this.mutex.Lock()
	defer this.mutex.Unlock()
	this.inspected = append(this.inspected, path)
	return contracts.Report{Path: path, Verified: true}, this.errs[path]
}

var inspectErr = errors.New("inspect error")
