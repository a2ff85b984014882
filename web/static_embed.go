// ABOUTME: Embeds web/static/ CSS files for serving under /static/.
// ABOUTME: Uses an explicit subdirectory glob because //go:embed static/* does not recurse.
package web

import "embed"

//go:embed static/css/*.css
var StaticFS embed.FS
