// Package web embeds the static dashboard assets.
package web

import _ "embed"

//go:embed index.html
var IndexHTML []byte
