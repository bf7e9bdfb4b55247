package utils

import "github.com/microcosm-cc/bluemonday"

// Rich-text fields keep formatting, links and inline base64 images but lose
// scripts, event handlers and javascript: URLs.
var richTextPolicy = func() *bluemonday.Policy {
	policy := bluemonday.UGCPolicy()
	policy.AllowDataURIImages()
	policy.AllowAttrs("style").Globally()
	return policy
}()

func SanitizeRichText(html string) string {
	return richTextPolicy.Sanitize(html)
}

// SanitizeRichTextPtr leaves nil untouched so cleared fields stay null.
func SanitizeRichTextPtr(html *string) *string {
	if html == nil {
		return nil
	}
	clean := SanitizeRichText(*html)
	return &clean
}
