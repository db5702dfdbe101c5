package service

import "fmt"

// ensureUniqueSlug appends -1, -2, ... to the candidate until the exists
// check comes back free. Deterministic; bounded only by existing rows.
func ensureUniqueSlug(candidate string, exists func(slug string) (bool, error)) (string, error) {
	slug := candidate
	for counter := 1; ; counter++ {
		taken, err := exists(slug)
		if err != nil {
			return "", err
		}
		if !taken {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", candidate, counter)
	}
}
