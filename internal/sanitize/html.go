// Package sanitize filters section markup down to a safe HTML subset.
package sanitize

import (
	"regexp"

	"github.com/microcosm-cc/bluemonday"
)

// embedSrcPattern limits iframe embeds to the video hosts the manual
// detail view is expected to render.
var embedSrcPattern = regexp.MustCompile(`^https://(www\.)?(youtube\.com|youtube-nocookie\.com|player\.vimeo\.com)/`)

var contentPolicy = newContentPolicy()

func newContentPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("class").Globally()
	p.AllowAttrs("src").Matching(embedSrcPattern).OnElements("iframe")
	p.AllowAttrs("width", "height", "frameborder", "allowfullscreen", "allow", "title").OnElements("iframe")
	return p
}

// HTML reduces markup to the allowed subset: standard formatting tags,
// links, images, lists, tables, and whitelisted video embeds. Script tags,
// event handlers and unknown attributes are stripped.
func HTML(s string) string {
	return contentPolicy.Sanitize(s)
}
