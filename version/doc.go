// Package version holds build metadata injected with -ldflags:
//
//	go build -ldflags "\
//	  -X github.com/ncobase/qeonaru/version.Version=1.2.0 \
//	  -X github.com/ncobase/qeonaru/version.Revision=$(git rev-parse --short HEAD) \
//	  -X github.com/ncobase/qeonaru/version.BuiltAt=$(date -u +%Y-%m-%dT%H:%M:%SZ)" \
//	  ./cmd/qeonaru
//
// Values left unset are filled from the VCS stamp the Go toolchain embeds
// in the binary, when present.
package version
