// Package catalog describes every activity in the arcade. It is pure data
// plus lookups and must not import other internal packages, so the offline
// cache tooling can consume it standalone.
package catalog

// Activity describes one learning activity page.
type Activity struct {
	ID            string
	Title         string
	Page          string
	Icon          string
	Badge         string
	Kind          string
	Desc          string
	Tag           string
	StorageKey    string // best-score storage key, empty for untimed activities
	QuestionCount int    // 0 when the activity has no fixed question count
	Section       string
	Order         int
}

// Section groups activities for display.
type Section struct {
	Name  string
	Items []Activity
}

// DefaultSections is the full arcade catalog in display order.
var DefaultSections = []Section{
	{
		Name: "FOUNDATIONS",
		Items: []Activity{
			{ID: "fractions_primer", Title: "Fractions Primer", Page: "fractions_primer.html", Icon: "🍕", Badge: "📗", Kind: "practice", Desc: "Build a fraction by splitting a whole into equal parts.", Tag: "Learn"},
			{ID: "fractions_primer_distance", Title: "Fractions on a Number Line", Page: "fractions_primer_distance.html", Icon: "📏", Badge: "📗", Kind: "practice", Desc: "See fractions as distances from 0 to 1.", Tag: "Learn"},
			{ID: "fractions_lab", Title: "Fractions Lab", Page: "fractions_lab.html", Icon: "🧪", Badge: "🎯", Kind: "practice", Desc: "Practice building and recognizing fractions.", Tag: "Practice"},
		},
	},
	{
		Name: "COMMON DENOMINATOR",
		Items: []Activity{
			{ID: "common_multiples", Title: "Common Multiples", Page: "common_multiples.html", Icon: "🔁", Badge: "⏱️", Kind: "game", Desc: "Find the smallest number that is a multiple of both.", Tag: "Timed", StorageKey: "common_multiples_best_v1", QuestionCount: 5},
			{ID: "fractions_equivalents", Title: "Equivalent Fractions", Page: "fractions_equivalents.html", Icon: "♻️", Badge: "⏱️", Kind: "game", Desc: "Find fractions that represent the same amount.", Tag: "Timed", StorageKey: "fractions_equivalents_best_v1", QuestionCount: 5},
			{ID: "fractions_units_remainder", Title: "Units + Remainder", Page: "fractions_units_remainder.html", Icon: "🧩", Badge: "⏱️", Kind: "game", Desc: "Switch between improper fractions and mixed numbers.", Tag: "Timed", StorageKey: "fractions_units_remainder_best_v1", QuestionCount: 5},
		},
	},
	{
		Name: "COMPARE AND PLACE",
		Items: []Activity{
			{ID: "fractions_compare", Title: "Compare Fractions", Page: "fractions_compare.html", Icon: "⚖️", Badge: "⏱️", Kind: "game", Desc: "Choose <, =, or > between two fractions.", Tag: "Timed", StorageKey: "fractions_compare_best_v1", QuestionCount: 5},
			{ID: "fractions_numberline_place", Title: "Split + Place", Page: "fractions_numberline_place.html", Icon: "📍", Badge: "⏱️", Kind: "game", Desc: "Choose the split, then place the fraction on a line.", Tag: "Timed", StorageKey: "fractions_numberline_place_best_v1", QuestionCount: 5},
		},
	},
	{
		Name: "OPERATIONS",
		Items: []Activity{
			{ID: "fractions_addition", Title: "Add Fractions", Page: "fractions_addition.html", Icon: "➕", Badge: "📘", Kind: "practice", Desc: "Step-by-step addition with a common denominator.", Tag: "Tutor"},
			{ID: "fractions_subtraction", Title: "Subtract Fractions", Page: "fractions_subtraction.html", Icon: "➖", Badge: "📘", Kind: "practice", Desc: "Step-by-step subtraction with a common denominator.", Tag: "Tutor"},
		},
	},
	{
		Name: "APPLICATIONS",
		Items: []Activity{
			{ID: "decimals_primer", Title: "Decimals Primer", Page: "decimals_primer.html", Icon: "🔢", Badge: "📗", Kind: "practice", Desc: "Connect fractions and decimals on a number line.", Tag: "Learn"},
			{ID: "fractions_coins_equal", Title: "Coins + Fractions: Equal?", Page: "fractions_coins_equal.html", Icon: "🪙", Badge: "⏱️", Kind: "game", Desc: "Decide if two money amounts match.", Tag: "Timed", StorageKey: "fractions_coins_equal_best_v1", QuestionCount: 5},
		},
	},
}

// Registry provides lookups over a set of sections.
type Registry struct {
	sections     []Section
	activities   []Activity
	byID         map[string]Activity
	byStorageKey map[string]Activity
	byPage       map[string]Activity
}

// New builds a registry from sections, assigning display order the same way
// for every caller: sectionIndex*100 + itemIndex + 1.
func New(sections []Section) *Registry {
	r := &Registry{
		sections:     sections,
		byID:         make(map[string]Activity),
		byStorageKey: make(map[string]Activity),
		byPage:       make(map[string]Activity),
	}

	for si, section := range sections {
		for ii, item := range section.Items {
			item.Section = section.Name
			item.Order = si*100 + ii + 1

			r.activities = append(r.activities, item)
			r.byID[item.ID] = item
			if item.StorageKey != "" {
				r.byStorageKey[item.StorageKey] = item
			}
			if item.Page != "" {
				r.byPage[item.Page] = item
			}
		}
	}

	return r
}

// Default builds a registry over DefaultSections.
func Default() *Registry {
	return New(DefaultSections)
}

// Sections returns the sections in display order.
func (r *Registry) Sections() []Section {
	return r.sections
}

// Activities returns every activity in display order.
func (r *Registry) Activities() []Activity {
	return r.activities
}

// ByID looks up an activity by its id.
func (r *Registry) ByID(id string) (Activity, bool) {
	a, ok := r.byID[id]
	return a, ok
}

// ByStorageKey looks up the activity that owns a best-score storage key.
func (r *Registry) ByStorageKey(key string) (Activity, bool) {
	a, ok := r.byStorageKey[key]
	return a, ok
}

// ByPage looks up an activity by its page file name.
func (r *Registry) ByPage(page string) (Activity, bool) {
	a, ok := r.byPage[page]
	return a, ok
}

// QuestionCount returns the question count registered for a storage key,
// or 0 when the key is unknown or the activity has no fixed count.
func (r *Registry) QuestionCount(storageKey string) int {
	if a, ok := r.byStorageKey[storageKey]; ok {
		return a.QuestionCount
	}
	return 0
}

// OrderedIDs returns activity ids in display order.
func (r *Registry) OrderedIDs() []string {
	ids := make([]string, len(r.activities))
	for i, a := range r.activities {
		ids[i] = a.ID
	}
	return ids
}

// Pages returns every activity page file name in display order.
func (r *Registry) Pages() []string {
	pages := make([]string, 0, len(r.activities))
	for _, a := range r.activities {
		if a.Page != "" {
			pages = append(pages, a.Page)
		}
	}
	return pages
}
