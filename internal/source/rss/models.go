package rss

import (
	"strings"
	"time"
)

// feed covers both RSS 2.0 (<rss><channel><item>) and Atom
// (<feed><entry>) documents in one decode.
type feed struct {
	Channel channel `xml:"channel"`
	Title   string  `xml:"title"`
	Entries []entry `xml:"entry"`
}

type channel struct {
	Title string  `xml:"title"`
	Items []entry `xml:"item"`
}

type entry struct {
	Title     string `xml:"title"`
	GUID      string `xml:"guid"`
	AtomID    string `xml:"id"`
	Links     []link `xml:"link"`
	PubDate   string `xml:"pubDate"`
	Published string `xml:"published"`
	Updated   string `xml:"updated"`
}

// link holds either an RSS link (element text) or an Atom link (href
// attribute).
type link struct {
	Href string `xml:"href,attr"`
	Rel  string `xml:"rel,attr"`
	Text string `xml:",chardata"`
}

func (e entry) link() string {
	for _, l := range e.Links {
		if text := strings.TrimSpace(l.Text); text != "" {
			return text
		}
	}
	for _, l := range e.Links {
		if l.Href != "" && (l.Rel == "" || l.Rel == "alternate") {
			return l.Href
		}
	}
	for _, l := range e.Links {
		if l.Href != "" {
			return l.Href
		}
	}
	return ""
}

var dateLayouts = []string{
	time.RFC1123Z,
	time.RFC1123,
	time.RFC3339,
	"Mon, 2 Jan 2006 15:04:05 -0700",
	"2006-01-02T15:04:05Z",
}

func (e entry) publishedAt() (time.Time, bool) {
	for _, raw := range []string{e.PubDate, e.Published, e.Updated} {
		if raw == "" {
			continue
		}
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, raw); err == nil {
				return t, true
			}
		}
	}
	return time.Time{}, false
}
