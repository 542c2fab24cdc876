// Package preview fetches Open Graph / Twitter Card metadata for URLs found
// in message content, the same way server.GetMetadata does for its Metadata
// type, generalized to chatd's model.MessagePreview and triggered from a
// Controller.MessageHook instead of being called inline from the HTTP
// handler.
package preview

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/asim/chatd/internal/logging"
	"github.com/asim/chatd/internal/model"
)

// Fetcher scans new messages for a URL and, if one is found, fetches its
// Open Graph/Twitter Card metadata and stores it on the Model.
type Fetcher struct {
	m   *model.Model
	log *logging.Logger
}

// New wires a Fetcher around m.
func New(m *model.Model) *Fetcher {
	return &Fetcher{m: m, log: logging.Default("preview")}
}

// Hook returns a function with the shape of controller.MessageHook (this
// package doesn't import internal/controller, so the caller registers it
// through Controller.OnNewMessage; cmd/chatd wraps it in a Timeline task)
// that scans msg's content for the first URL and fetches+stores its preview.
func (f *Fetcher) Hook() func(msg *model.Message) {
	return func(msg *model.Message) {
		u := firstURL(msg.Content)
		if u == "" {
			return
		}
		p := Fetch(u)
		if p == nil {
			return
		}
		f.m.SetPreview(msg.ID, p)
	}
}

func firstURL(text string) string {
	for _, field := range strings.Fields(text) {
		if strings.HasPrefix(field, "http://") || strings.HasPrefix(field, "https://") {
			return field
		}
	}
	return ""
}

// Fetch mirrors server.GetMetadata's meta-tag scan: walk every <meta> tag,
// keep the og:/twitter: prefixed ones, and require a title and an image
// before keeping the result. Returns nil if uri is unreachable or lacks
// those fields.
func Fetch(uri string) *model.MessagePreview {
	u, err := url.Parse(uri)
	if err != nil {
		return nil
	}

	doc, err := goquery.NewDocument(u.String())
	if err != nil {
		return nil
	}

	p := &model.MessagePreview{}
	doc.Find("meta").Each(func(_ int, s *goquery.Selection) {
		prop, _ := s.Attr("property")
		if prop == "" {
			prop, _ = s.Attr("name")
		}
		parts := strings.Split(prop, ":")
		if len(parts) < 2 || (parts[0] != "twitter" && parts[0] != "og") {
			return
		}
		content, _ := s.Attr("content")

		switch parts[1] {
		case "site_name", "site":
			if p.Site == "" {
				p.Site = content
			}
		case "title":
			p.Title = content
		case "description":
			p.Description = content
		case "image":
			if p.Image == "" {
				p.Image = content
			}
		}
	})

	if p.Title == "" || p.Image == "" {
		return nil
	}
	return p
}
