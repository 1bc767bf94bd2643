package models

import "strings"

// GroceryItem is one entry of the item catalog.
//
// Image holds either an opaque local resource token (for example "onion") or a
// remote URL. Category is matched by name against the category store but is
// not required to exist there.
type GroceryItem struct {
	ID       int    `json:"id" yaml:"id" csv:"ID"`
	Name     string `json:"name" yaml:"name" csv:"Name"`
	Image    string `json:"image" yaml:"image" csv:"Image"`
	Category string `json:"category" yaml:"category" csv:"Category"`
}

// IsRemoteImage reports whether Image is a URL rather than a local token.
func (i GroceryItem) IsRemoteImage() bool {
	lower := strings.ToLower(i.Image)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// ItemsEnvelope is the response body of the remote item listing endpoint and
// the layout of a YAML seed file.
type ItemsEnvelope struct {
	Success bool          `json:"success" yaml:"success"`
	Items   []GroceryItem `json:"items" yaml:"items"`
}
