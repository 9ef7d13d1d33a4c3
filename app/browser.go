package app

import (
	"fmt"
	"net/url"

	"github.com/pkg/browser"
)

// OpenUrlInBrowser opens rawURL with the desktop's default browser.
// Only http and https URLs are accepted.
func OpenUrlInBrowser(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("parse url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("refusing to open %q: unsupported scheme", rawURL)
	}
	return browser.OpenURL(u.String())
}
