package catalog

import "strings"

// iconKeywords maps substrings of an item name to a display icon key.
// Matching is case-insensitive and ordered so that more specific keywords
// win over generic ones (e.g. "peanut butter" before "butter").
var iconKeywords = []struct {
	keyword string
	iconKey string
}{
	{"peanut butter", "nut"},
	{"olive oil", "droplet"},
	{"sunflower oil", "droplet"},
	{"toilet paper", "scroll-text"},
	{"paper towel", "scroll-text"},
	{"ice cream", "ice-cream-cone"},
	{"cream cheese", "milk"},
	{"sour cream", "milk"},

	{"apple", "apple"},
	{"banana", "banana"},
	{"orange", "citrus"},
	{"lemon", "citrus"},
	{"lime", "citrus"},
	{"grape", "grape"},
	{"berr", "cherry"},
	{"cherry", "cherry"},
	{"carrot", "carrot"},
	{"potato", "leafy-green"},
	{"onion", "leafy-green"},
	{"garlic", "leafy-green"},
	{"salad", "salad"},
	{"lettuce", "salad"},
	{"spinach", "salad"},
	{"kale", "salad"},
	{"tomato", "apple"},
	{"pepper", "flame"},
	{"chili", "flame"},

	{"milk", "milk"},
	{"cheese", "milk"},
	{"yogurt", "milk"},
	{"butter", "milk"},
	{"egg", "egg"},
	{"cream", "milk"},

	{"chicken", "drumstick"},
	{"turkey", "drumstick"},
	{"beef", "beef"},
	{"steak", "beef"},
	{"pork", "ham"},
	{"bacon", "ham"},
	{"ham", "ham"},
	{"sausage", "ham"},
	{"fish", "fish"},
	{"salmon", "fish"},
	{"tuna", "fish"},
	{"shrimp", "fish"},

	{"bread", "wheat"},
	{"flour", "wheat"},
	{"pasta", "wheat"},
	{"noodle", "wheat"},
	{"rice", "wheat"},
	{"cereal", "wheat"},
	{"croissant", "croissant"},
	{"baguette", "croissant"},
	{"pizza", "pizza"},
	{"cake", "cake"},
	{"cookie", "cookie"},

	{"coffee", "coffee"},
	{"tea", "coffee"},
	{"juice", "cup-soda"},
	{"soda", "cup-soda"},
	{"water", "glass-water"},
	{"beer", "beer"},
	{"wine", "wine"},

	{"salt", "utensils"},
	{"sugar", "candy"},
	{"honey", "candy"},
	{"chocolate", "candy"},
	{"oil", "droplet"},
	{"vinegar", "droplet"},
	{"sauce", "droplet"},

	{"soap", "sparkles"},
	{"detergent", "sparkles"},
	{"shampoo", "sparkles"},
}

// GuessIconKey picks a display icon for an item name by keyword match.
// Returns the empty string when nothing matches; callers store NULL and the
// client falls back to an initial-letter glyph.
func GuessIconKey(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" {
		return ""
	}
	for _, e := range iconKeywords {
		if strings.Contains(n, e.keyword) {
			return e.iconKey
		}
	}
	return ""
}

var knownIconKeys = func() map[string]struct{} {
	keys := make(map[string]struct{}, len(iconKeywords))
	for _, e := range iconKeywords {
		keys[e.iconKey] = struct{}{}
	}
	return keys
}()

// ValidIconKey reports whether key names an icon in the catalog. Unknown
// keys are not an error anywhere; this exists so clients can fall back to
// the default glyph instead of rendering a broken icon.
func ValidIconKey(key string) bool {
	_, ok := knownIconKeys[key]
	return ok
}
