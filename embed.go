package vizboard

import _ "embed"

// defaultInsightsYAML holds the captions for the figures the dashboard ships with.
//
//go:embed insights.yaml
var defaultInsightsYAML []byte
