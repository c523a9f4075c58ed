package model

import "strings"

// Upload is a new binary asset attached by the editor, not yet committed.
type Upload struct {
	Filename string
	Data     []byte
}

// ResolveAssetURL returns an absolute URL for a stored asset reference.
// Records hold either site-relative paths ("/images/x.png") or already
// absolute raw-content URLs; relative ones are resolved against the public
// site origin, because an asset committed moments ago is not served by the
// relative path until the site redeploys.
func ResolveAssetURL(ref, publicBase string) string {
	if ref == "" {
		return ""
	}
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return ref
	}
	if publicBase == "" {
		return ref
	}
	return strings.TrimSuffix(publicBase, "/") + "/" + strings.TrimPrefix(ref, "/")
}
