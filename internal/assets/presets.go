package assets

import _ "embed"

// PresetsData holds the raw JSON catalogue of landscaping style presets.
//
//go:embed presets.json
var PresetsData []byte
