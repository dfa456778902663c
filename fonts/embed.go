// Package fonts provides the embedded TrueType font used to render exported
// PDFs. DejaVu Sans covers the Turkish alphabet.
package fonts

import _ "embed"

//go:embed DejaVuSansCondensed.ttf
var dejaVuSansCondensed []byte

// DejaVuSansCondensed returns the embedded regular DejaVu Sans Condensed face.
func DejaVuSansCondensed() []byte { return dejaVuSansCondensed }
