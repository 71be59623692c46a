package cache

// Keyer builds cache keys.
type Keyer interface {
	// HTTPKey identifies a fetched resource within a namespace.
	HTTPKey(namespace, key string) string
	// LogoKey identifies a logo rendered from an HMM.
	LogoKey(hmmHash string, opts LogoKeyOpts) string
	// ArtifactKey identifies a diagram rendered from a document.
	ArtifactKey(docHash string, opts ArtifactKeyOpts) string
}

// LogoKeyOpts are the logo settings that change the fetched bytes.
type LogoKeyOpts struct {
	Format     string `json:"format"`
	Processing string `json:"processing"`
	Colors     string `json:"colors,omitempty"`
}

// ArtifactKeyOpts are the build settings that change a rendered diagram.
// Options holds the merged drawing options in serialized form.
type ArtifactKeyOpts struct {
	Format         string  `json:"format"`
	Name           string  `json:"name,omitempty"`
	Width          float64 `json:"width"`
	HeightOrAspect float64 `json:"height_or_aspect"`
	Scale          float64 `json:"scale,omitempty"`
	Strand         int     `json:"strand"`
	Options        string  `json:"options,omitempty"`
}

// DefaultKeyer produces keys of the form "kind:hash".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default key scheme.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

func (DefaultKeyer) HTTPKey(namespace, key string) string {
	return "http:" + namespace + ":" + key
}

func (DefaultKeyer) LogoKey(hmmHash string, opts LogoKeyOpts) string {
	return hashKey("logo", hmmHash, opts)
}

func (DefaultKeyer) ArtifactKey(docHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", docHash, opts)
}

var _ Keyer = DefaultKeyer{}
