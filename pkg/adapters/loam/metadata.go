package loam

// PrimMetadata is the frontmatter of one prim document.
// It uses "mapstructure" tags to match standard Frontmatter/YAML keys.
type PrimMetadata struct {
	// Path overrides the prim path derived from the document location.
	Path         string   `json:"path" mapstructure:"path"`
	Type         string   `json:"type" mapstructure:"type"`
	Instanceable bool     `json:"instanceable" mapstructure:"instanceable"`
	References   []string `json:"references" mapstructure:"references"`

	// Translate is [x, y, z]. Kept loose so YAML ints, floats and strict
	// json.Number values all decode.
	Translate []any `json:"translate" mapstructure:"translate"`
}
