package manifest

import "github.com/nikeokoronkwo/swift-devenv/pkg/platform"

// Kind discriminates source variants.
type Kind string

// Recognized source kinds. Only KindURL is fetchable; the rest are
// declared-but-unsupported and fail an attempt with UNSUPPORTED_SOURCE.
const (
	KindURL    Kind = "url"
	KindGit    Kind = "git"
	KindBrew   Kind = "brew"
	KindApt    Kind = "apt"
	KindWinget Kind = "winget"
	KindChoco  Kind = "choco"
)

var recognizedKinds = map[Kind]bool{
	KindURL:    true,
	KindGit:    true,
	KindBrew:   true,
	KindApt:    true,
	KindWinget: true,
	KindChoco:  true,
}

// Source is one fetchable definition of a dependency. Implementations form
// a closed tagged union; fetchers dispatch on the concrete type and treat
// unknown variants as unsupported.
type Source interface {
	// Kind returns the discriminator this source was declared with.
	Kind() Kind

	// Platforms returns the ordered set of identifiers this source applies
	// to. An empty slice means universally applicable, ranked least specific.
	Platforms() []platform.Identifier

	// Artifacts returns the declared artifact-name to relative-path mapping,
	// or nil meaning "discover all top-level entries after fetch".
	Artifacts() map[string]string
}

// URLSource is a direct download with optional integrity checksum.
type URLSource struct {
	URL           string
	SHA256        string // lowercase hex sha256 of file contents; empty skips verification
	ArtifactPaths map[string]string
	On            []platform.Identifier
}

func (s *URLSource) Kind() Kind                       { return KindURL }
func (s *URLSource) Platforms() []platform.Identifier { return s.On }
func (s *URLSource) Artifacts() map[string]string     { return s.ArtifactPaths }

// UnsupportedSource is a source whose kind is recognized by the schema but
// cannot be fetched. It carries enough structure to participate in
// selection so the failure surfaces in ranked order, not at load time.
type UnsupportedSource struct {
	SourceKind    Kind
	ArtifactPaths map[string]string
	On            []platform.Identifier
}

func (s *UnsupportedSource) Kind() Kind                       { return s.SourceKind }
func (s *UnsupportedSource) Platforms() []platform.Identifier { return s.On }
func (s *UnsupportedSource) Artifacts() map[string]string     { return s.ArtifactPaths }

// Declaration is a named dependency with its declared sources, in file order.
type Declaration struct {
	Name    string
	Sources []Source
}
