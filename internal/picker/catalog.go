package picker

// PackID identifies a pack in the catalog
type PackID string

const (
	PackDopamine PackID = "dopamine"
	PackFood     PackID = "food"
	PackDo       PackID = "do"
)

// Bucket is a titled group of suggestions
type Bucket struct {
	Title string   `json:"title"`
	Items []string `json:"items"`
}

// Pack is a titled group of buckets
type Pack struct {
	ID      PackID   `json:"id"`
	Title   string   `json:"title"`
	Buckets []Bucket `json:"buckets"`
}

// Catalog maps pack ids to packs
type Catalog map[PackID]Pack

// DefaultCatalog returns the built-in suggestion catalog
func DefaultCatalog() Catalog {
	return Catalog{
		PackDopamine: {
			ID:    PackDopamine,
			Title: "Dopamine Menu",
			Buckets: []Bucket{
				{
					Title: "Quick (≤5 min)",
					Items: []string{"Stretch your arms", "Drink something warm", "Step outside", "Wash your face", "Put on a comfort song"},
				},
				{
					Title: "Medium (10–20 min)",
					Items: []string{"Tidy one surface", "Make a snack", "Journal one page", "Go for a short walk", "Watch one cozy video"},
				},
				{
					Title: "Big (30–60 min)",
					Items: []string{"Shower + reset", "Creative time", "Clean a small area", "Self-care routine", "Low-pressure productivity block"},
				},
			},
		},
		PackFood: {
			ID:    PackFood,
			Title: "Food Picker",
			Buckets: []Bucket{
				{
					Title: "Pick",
					Items: []string{"Ramen", "Sandwich", "Something frozen", "Takeout you love", "Smoothie", "Whatever’s easiest"},
				},
			},
		},
		PackDo: {
			ID:    PackDo,
			Title: "What Should I Do?",
			Buckets: []Bucket{
				{
					Title: "Pick",
					Items: []string{"Rest without guilt", "Do one tiny task", "Text someone you like", "Go outside for 5 minutes", "Watch something cozy", "Do nothing (intentionally)"},
				},
			},
		},
	}
}

// Items returns every suggestion in the catalog
func (c Catalog) Items() []string {
	var items []string
	for _, id := range []PackID{PackDopamine, PackFood, PackDo} {
		for _, b := range c[id].Buckets {
			items = append(items, b.Items...)
		}
	}
	return items
}

// Contains reports whether text is a catalog item
func (c Catalog) Contains(text string) bool {
	for _, pack := range c {
		for _, b := range pack.Buckets {
			for _, item := range b.Items {
				if item == text {
					return true
				}
			}
		}
	}
	return false
}

// Packs returns the packs in display order
func (c Catalog) Packs() []Pack {
	packs := make([]Pack, 0, len(c))
	for _, id := range []PackID{PackDopamine, PackFood, PackDo} {
		if p, ok := c[id]; ok {
			packs = append(packs, p)
		}
	}
	return packs
}
