// Package patterns provides the embedded default gazetteer of Turkish
// neighbourhood, street and city names used for location detection.
package patterns

import _ "embed"

//go:embed gazetteer_tr.yaml
var gazetteerTRYAML []byte

// GazetteerTRYAML returns the embedded default gazetteer definition.
func GazetteerTRYAML() []byte { return gazetteerTRYAML }
