package dicomtag

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/suyashkumar/dicom/pkg/tag"
)

// Reference describes a single entry of the DICOM data dictionary in the
// "GGGG,EEEE" form used throughout the rule editor.
type Reference struct {
	Tag     string `json:"tag"`
	Name    string `json:"name"`
	Keyword string `json:"keyword"`
	VR      string `json:"vr"`
}

// maxSearchResults caps Search output so a one-character query cannot return
// the whole dictionary.
const maxSearchResults = 10

// Lookup resolves a "GGGG,EEEE" tag string to its dictionary entry. The
// curated table is consulted first; any other standard tag falls back to the
// full dictionary shipped with the dicom package.
func Lookup(t string) (Reference, bool) {
	key := strings.ToUpper(strings.TrimSpace(t))
	if ref, ok := curatedByTag[key]; ok {
		return ref, true
	}

	group, element, err := splitTag(key)
	if err != nil {
		return Reference{}, false
	}

	info, err := tag.Find(tag.Tag{Group: group, Element: element})
	if err != nil {
		return Reference{}, false
	}

	return Reference{
		Tag:     key,
		Name:    info.Name,
		Keyword: info.Name,
		VR:      info.VR,
	}, true
}

// Search returns at most maxSearchResults dictionary entries whose name,
// keyword or tag contains the query, case-insensitively. A blank query
// returns nil; there is no browse-all mode.
func Search(query string) []Reference {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}

	var results []Reference
	for _, ref := range curated {
		if strings.Contains(strings.ToLower(ref.Name), q) ||
			strings.Contains(strings.ToLower(ref.Keyword), q) ||
			strings.Contains(strings.ToLower(ref.Tag), q) {
			results = append(results, ref)
			if len(results) == maxSearchResults {
				break
			}
		}
	}
	return results
}

// splitTag parses "GGGG,EEEE" into its group and element parts.
func splitTag(t string) (uint16, uint16, error) {
	parts := strings.Split(t, ",")
	if len(parts) != 2 || len(parts[0]) != 4 || len(parts[1]) != 4 {
		return 0, 0, fmt.Errorf("malformed tag %q", t)
	}
	group, err := strconv.ParseUint(parts[0], 16, 16)
	if err != nil {
		return 0, 0, fmt.Errorf("malformed tag group %q: %w", parts[0], err)
	}
	element, err := strconv.ParseUint(parts[1], 16, 16)
	if err != nil {
		return 0, 0, fmt.Errorf("malformed tag element %q: %w", parts[1], err)
	}
	return uint16(group), uint16(element), nil
}

var curatedByTag = func() map[string]Reference {
	m := make(map[string]Reference, len(curated))
	for _, ref := range curated {
		m[ref.Tag] = ref
	}
	return m
}()
