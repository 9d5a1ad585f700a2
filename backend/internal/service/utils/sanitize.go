// Package utils holds content helpers shared by the services: HTML
// sanitising and size checks.
package utils

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"html"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/url"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	_ "golang.org/x/image/webp"

	"github.com/aicom-dev/aicom/shared/errors"
)

// MaxImagePixels bounds embedded images. Larger ones are dropped from the post.
const MaxImagePixels = 4096 * 4096

var (
	dataImagePrefix = regexp.MustCompile(`^image/(png|jpeg|gif|webp);base64,`)
	imageSrc        = regexp.MustCompile(`^data:image/(png|jpeg|gif|webp);base64,`)
	linkHref        = regexp.MustCompile(`^(?i)(https?:|mailto:)`)
	cssClass        = regexp.MustCompile(`^[A-Za-z0-9_\- ]{1,200}$`)
	dimension       = regexp.MustCompile(`^[0-9]{1,4}$`)
	linkTarget      = regexp.MustCompile(`^_(blank|self)$`)
	linkRel         = regexp.MustCompile(`^[a-z ]{1,64}$`)
)

// Sanitizer applies the two content profiles. Policies are built once and are
// safe for concurrent use.
type Sanitizer struct {
	rich  *bluemonday.Policy
	plain *bluemonday.Policy
}

func NewSanitizer() *Sanitizer {
	return &Sanitizer{rich: richPolicy(), plain: bluemonday.StrictPolicy()}
}

// richPolicy is the rich-text editor allow-list for post bodies.
func richPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements("p", "br", "strong", "em", "u", "s", "ul", "ol", "li",
		"blockquote", "pre", "code", "h1", "h2", "h3", "h4", "h5", "h6", "span", "div")

	p.AllowAttrs("href").Matching(linkHref).OnElements("a")
	p.AllowAttrs("title").OnElements("a")
	p.AllowAttrs("target").Matching(linkTarget).OnElements("a")
	p.AllowAttrs("rel").Matching(linkRel).OnElements("a")

	p.AllowAttrs("src").Matching(imageSrc).OnElements("img")
	p.AllowAttrs("alt").OnElements("img")
	p.AllowAttrs("width", "height").Matching(dimension).OnElements("img")

	p.AllowAttrs("class").Matching(cssClass).OnElements("span", "div", "pre", "code")

	p.AllowURLSchemes("http", "https", "mailto")
	p.AllowURLSchemeWithCustomPolicy("data", embeddedImage)
	p.RequireParseableURLs(true)
	p.RequireNoFollowOnFullyQualifiedLinks(true)
	return p
}

// embeddedImage accepts inline base64 images that actually decode as one of
// the allowed formats and stay under MaxImagePixels.
func embeddedImage(u *url.URL) bool {
	if u.RawQuery != "" || u.Fragment != "" {
		return false
	}
	prefix := dataImagePrefix.FindString(u.Opaque)
	if prefix == "" {
		return false
	}
	data, err := base64.StdEncoding.DecodeString(u.Opaque[len(prefix):])
	if err != nil {
		return false
	}
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return false
	}
	declared := strings.TrimPrefix(strings.SplitN(prefix, ";", 2)[0], "image/")
	if format != declared {
		return false
	}
	return int64(cfg.Width)*int64(cfg.Height) <= MaxImagePixels
}

// Rich sanitises a post body. Anything outside the allow-list is removed,
// including scripts, event handlers, inline styles and iframes.
func (s *Sanitizer) Rich(content string) string {
	return strings.TrimSpace(s.rich.Sanitize(content))
}

// Plain strips all markup and returns literal text.
func (s *Sanitizer) Plain(text string) string {
	return strings.TrimSpace(html.UnescapeString(s.plain.Sanitize(text)))
}

// CheckPostSize rejects a post whose raw title and content together exceed
// limit bytes. Runs on the submitted record, before sanitising.
func CheckPostSize(title, content string, limit int) error {
	if len(title)+len(content) > limit {
		return errors.NewValidation("content", fmt.Sprintf("post exceeds %d bytes", limit))
	}
	return nil
}
