package html

import _ "embed"

var (
	//go:embed assets/deck.css
	deckCSS string

	//go:embed assets/nav.js
	navScript string

	//go:embed assets/analytics.js
	analyticsScript string
)
