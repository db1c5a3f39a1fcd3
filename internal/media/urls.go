package media

import (
	"net/url"
	"strings"
)

// DefaultTransformation is applied when requesting display-optimized
// renditions of stored images.
const DefaultTransformation = "w_800,h_600,c_limit,q_auto,f_auto"

// ExtractPublicID derives the provider's asset name from a stored URL: the
// last path segment with its file extension dropped. Returns "" when the
// URL cannot be parsed.
func ExtractPublicID(imageURL string) string {
	parsed, err := url.Parse(imageURL)
	if err != nil {
		return ""
	}
	segments := strings.Split(parsed.Path, "/")
	fileName := segments[len(segments)-1]
	if fileName == "" {
		return ""
	}
	return strings.SplitN(fileName, ".", 2)[0]
}

// FullPublicID prefixes the extracted asset name with the folder namespace,
// producing the identifier the provider expects for destroy calls.
func FullPublicID(imageURL, folder string) string {
	publicID := ExtractPublicID(imageURL)
	if publicID == "" {
		return ""
	}
	return folder + "/" + publicID
}

// IsCloudinaryURL reports whether the URL points at the image host.
func IsCloudinaryURL(rawURL string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return strings.Contains(parsed.Hostname(), "cloudinary.com")
}

// OptimizedURL inserts the transformation segment immediately after the
// "upload" path component. Non-Cloudinary URLs are returned unchanged.
func OptimizedURL(originalURL, transformation string) string {
	if !IsCloudinaryURL(originalURL) {
		return originalURL
	}
	if transformation == "" {
		transformation = DefaultTransformation
	}

	parsed, err := url.Parse(originalURL)
	if err != nil {
		return originalURL
	}

	segments := strings.Split(parsed.Path, "/")
	for i, segment := range segments {
		if segment == "upload" {
			segments = append(segments[:i+1], append([]string{transformation}, segments[i+1:]...)...)
			parsed.Path = strings.Join(segments, "/")
			return parsed.String()
		}
	}
	return originalURL
}
