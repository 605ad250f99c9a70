// internal/checks/toolchain/tectonic-binary/models.go
package tectonicbinary

import "context"

const (
	CheckID  = "tectonic-binary"
	Category = "toolchain"
)

// Locator resolves binaries on PATH and captures their version output.
// installer.ExecRunner satisfies it.
type Locator interface {
	LookPath(name string) (string, error)
	Output(ctx context.Context, name string, args ...string) (string, error)
}
