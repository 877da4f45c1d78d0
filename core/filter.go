package core

import (
	"slices"

	"github.com/smarty/plugpack/contracts"
)

// Filter keeps the reports whose plugin name, the package file name without
// extension, is listed. No names means no filtering.
func Filter(reports []contracts.Report, names []string) []contracts.Report {
	if len(names) == 0 {
		return reports
	}
	return slices.DeleteFunc(slices.Clone(reports), func(report contracts.Report) bool {
		return !slices.Contains(names, report.Name())
	})
}
