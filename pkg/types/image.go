package types

import (
	"regexp"
	"strings"
)

// PlaceholderImage is the inline SVG used whenever a product image URL cannot
// be resolved to something renderable.
const PlaceholderImage = "data:image/svg+xml,%3Csvg xmlns='http://www.w3.org/2000/svg' viewBox='0 0 160 160'%3E%3Crect width='160' height='160' fill='%23f1f1f1'/%3E%3Ctext x='50%25' y='50%25' fill='%23777' font-size='14' text-anchor='middle' dominant-baseline='middle'%3ENo Image%3C/text%3E%3C/svg%3E"

var (
	absoluteURLPattern = regexp.MustCompile(`(?i)^https?://`)
	bareImagePattern   = regexp.MustCompile(`(?i)^[^/]+\.(jpg|jpeg|png|webp|gif|bmp|svg|avif)$`)
)

func isPlaceholderCloudinaryURL(value string) bool {
	normalized := strings.ToLower(value)
	return strings.Contains(normalized, "<cloud_name>") || strings.Contains(normalized, "%3ccloud_name%3e")
}

// NormalizeImageURL maps the assorted image representations the backend emits
// (absolute URLs, bare media paths, unconfigured Cloudinary templates) onto a
// usable URL, falling back to PlaceholderImage.
func NormalizeImageURL(raw string) string {
	cleaned := strings.ReplaceAll(strings.TrimSpace(raw), `\`, "/")
	if cleaned == "" {
		return PlaceholderImage
	}
	if isPlaceholderCloudinaryURL(cleaned) {
		return PlaceholderImage
	}
	if absoluteURLPattern.MatchString(cleaned) || strings.HasPrefix(cleaned, "data:") {
		return cleaned
	}
	if strings.HasPrefix(cleaned, "res.cloudinary.com/") {
		return "https://" + cleaned
	}
	if strings.HasPrefix(cleaned, "/") {
		return cleaned
	}
	if strings.HasPrefix(cleaned, "media/") {
		return "/" + cleaned
	}
	if strings.HasPrefix(cleaned, "products/") {
		return "/media/" + cleaned
	}
	if bareImagePattern.MatchString(cleaned) {
		return "/media/products/" + cleaned
	}
	return PlaceholderImage
}
