package contracts

import (
	"path/filepath"
	"strings"
)

type Report struct {
	Path             string `json:"path"`
	StoredChecksum   string `json:"stored_checksum,omitempty"`
	ComputedChecksum string `json:"computed_checksum,omitempty"`
	PayloadSize      int    `json:"payload_size"`
	Verified         bool   `json:"verified"`
	Problem          error  `json:"-"`
}

// Name is the package file name without its directory and extension.
func (this Report) Name() string {
	base := filepath.Base(this.Path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func (this Report) Status() string {
	if this.Verified {
		return "verified"
	}
	if this.Problem != nil {
		return "rejected: " + this.Problem.Error()
	}
	return "rejected"
}
