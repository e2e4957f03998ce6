package strategy

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/showreel"
)

var videoHosts = []string{"youtube", "youtu.be", "vimeo", "notube", "player", "/video"}

// extractMedia collects embedded videos and hero images from a parsed
// document. Videos come from iframes, video elements and provider links;
// images come from the og:image tag and common hero containers.
func extractMedia(doc *goquery.Document) []showreel.Media {
	var media []showreel.Media
	seen := map[string]bool{}

	add := func(kind showreel.MediaType, url string) {
		url = strings.TrimSpace(url)
		if url == "" || seen[url] {
			return
		}
		seen[url] = true
		media = append(media, showreel.Media{Type: kind, URL: url})
	}

	doc.Find("iframe[src]").Each(func(_ int, s *goquery.Selection) {
		src, _ := s.Attr("src")
		if containsAnyHost(src) {
			add(showreel.MediaVideo, src)
		}
	})

	doc.Find("video[src], video source[src]").Each(func(_ int, s *goquery.Selection) {
		src, _ := s.Attr("src")
		add(showreel.MediaVideo, src)
	})

	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		if containsAnyHost(href) {
			add(showreel.MediaVideo, href)
		}
	})

	doc.Find("meta[property='og:image']").Each(func(_ int, s *goquery.Selection) {
		content, _ := s.Attr("content")
		add(showreel.MediaImage, content)
	})

	doc.Find(".hero img, .main-image img, figure img").Each(func(_ int, s *goquery.Selection) {
		src, _ := s.Attr("src")
		add(showreel.MediaImage, src)
	})

	return media
}

func containsAnyHost(url string) bool {
	url = strings.ToLower(url)
	for _, host := range videoHosts {
		if strings.Contains(url, host) {
			return true
		}
	}
	return false
}
