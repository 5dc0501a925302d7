// Package share builds the social sharing actions for the app page.
package share

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/bft-labs/tiltapp/internal/domain"
)

// Supported platforms.
const (
	PlatformTwitter   = "twitter"
	PlatformInstagram = "instagram"
	PlatformCopy      = "copy"
)

// Text is the promotional line attached to shared links.
const Text = "Check out TiltApp - Emotion management for poker players!"

const (
	instagramHint = "To share on Instagram, take a screenshot and post it to your story or feed! 📱"
	instagramLink = "instagram://"
	copiedMessage = "Link copied to clipboard! 📋"
	twitterIntent = "https://twitter.com/intent/tweet"
)

// Action is what the caller should do for a share request. URL is opened or
// copied; Message is shown to the user. Either may be empty.
type Action struct {
	Platform string
	URL      string
	Message  string
}

// Build returns the action for platform.
func Build(platform, pageURL string) (Action, error) {
	p := strings.ToLower(strings.TrimSpace(platform))
	switch p {
	case PlatformTwitter:
		return Action{
			Platform: p,
			URL:      twitterIntent + "?url=" + encodeComponent(pageURL) + "&text=" + encodeComponent(Text),
		}, nil
	case PlatformInstagram:
		return Action{Platform: p, URL: instagramLink, Message: instagramHint}, nil
	case PlatformCopy:
		return Action{Platform: p, URL: pageURL, Message: copiedMessage}, nil
	default:
		return Action{}, fmt.Errorf("%w: %q", domain.ErrUnknownPlatform, platform)
	}
}

// Platforms lists the supported platforms.
func Platforms() []string {
	return []string{PlatformTwitter, PlatformInstagram, PlatformCopy}
}

// encodeComponent percent-encodes s for a query value, spaces as %20.
func encodeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
