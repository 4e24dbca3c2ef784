// Package scraper fetches a page and pulls out its title and Open Graph
// image. Callers treat the whole thing as best-effort: an unreachable or
// unparseable page simply yields empty metadata.
package scraper

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"linkveo/internal/config"

	"github.com/go-resty/resty/v2"
	"golang.org/x/net/html"
)

type Metadata struct {
	Title string
	Image string
}

type Scraper struct {
	client *resty.Client
}

func New(cfg config.Scraper) *Scraper {
	client := resty.New().
		SetTimeout(cfg.Timeout).
		SetHeader("User-Agent", cfg.UserAgent)

	return &Scraper{client: client}
}

// Fetch downloads the page at rawURL and extracts its metadata. A non-2xx
// status is an error; a page without a title or og:image is not.
func (s *Scraper) Fetch(ctx context.Context, rawURL string) (Metadata, error) {
	const op = "scraper.Fetch"

	res, err := s.client.R().SetContext(ctx).Get(rawURL)
	if err != nil {
		return Metadata{}, fmt.Errorf("%s: %w", op, err)
	}

	if res.IsError() {
		return Metadata{}, fmt.Errorf("%s: unexpected status %d", op, res.StatusCode())
	}

	return parse(res.Body()), nil
}

func parse(body []byte) Metadata {
	var md Metadata

	z := html.NewTokenizer(bytes.NewReader(body))

	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			return md
		}

		if tt != html.StartTagToken && tt != html.SelfClosingTagToken {
			continue
		}

		t := z.Token()

		switch t.Data {
		case "title":
			if md.Title == "" && z.Next() == html.TextToken {
				md.Title = strings.TrimSpace(z.Token().Data)
			}
		case "meta":
			var property, content string

			for _, attr := range t.Attr {
				switch attr.Key {
				case "property":
					property = attr.Val
				case "content":
					content = attr.Val
				}
			}

			if property == "og:image" && md.Image == "" {
				md.Image = content
			}
		}

		if md.Title != "" && md.Image != "" {
			return md
		}
	}
}
