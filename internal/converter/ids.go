package converter

import (
	"fmt"
	"net/url"
	"strings"

	"hltv-parser/internal/dom"
	"hltv-parser/internal/normalize"
)

// pathID returns the number that follows kind in a site link:
// pathID("/team/6665/astralis", "team") == 6665. Absolute URLs work too.
func pathID(href, kind string) (uint32, error) {
	u, err := url.Parse(normalize.URL(href))
	if err != nil {
		return 0, badValue(kind+" link", err)
	}

	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	for i := 0; i+1 < len(segments); i++ {
		if segments[i] != kind {
			continue
		}
		id, err := dom.Uint32(segments[i+1])
		if err != nil {
			return 0, badValue(fmt.Sprintf("%s id in %q", kind, href), err)
		}
		return id, nil
	}
	return 0, fmt.Errorf("%w: no /%s/{id} segment in %q", ErrValueParse, kind, href)
}

// linkID reads the href of the first <a> at or under r and extracts the kind ID.
func linkID(r dom.Rich, kind, what string) (uint32, error) {
	a := r.FindWhere(dom.TagIs("a"))
	if !a.Exists() {
		return 0, notFound(what + " link")
	}
	href, ok := a.Attr("href")
	if !ok {
		return 0, missingAttr("href", what+" link")
	}
	return pathID(href, kind)
}

// canonicalID finds the <link> whose href points at a kind page and returns its ID.
func canonicalID(doc *dom.Document, kind string) (uint32, error) {
	marker := "/" + kind + "/"
	for _, l := range doc.ElementsByTag("link") {
		href, ok := l.Attr("href")
		if !ok || !strings.Contains(href, marker) {
			continue
		}
		return pathID(href, kind)
	}
	return 0, notFound("canonical " + kind + " link")
}
