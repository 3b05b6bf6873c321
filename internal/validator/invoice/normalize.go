package invoice

// Normalize canonicalizes null-like cells across all three collections:
// any cell whose raw value is an empty string or a case-insensitive match
// to "nan", "null", or "none" becomes absent. No other value is altered.
func Normalize(doc *Document) {
	for i := range doc.Header {
		for _, f := range doc.Header[i].fields() {
			f.normalize()
		}
	}
	for i := range doc.Items {
		for _, f := range doc.Items[i].fields() {
			f.normalize()
		}
	}
	for i := range doc.Summary {
		for _, f := range doc.Summary[i].fields() {
			f.normalize()
		}
	}
}
