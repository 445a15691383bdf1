package core

// Category is a fixed spending classification. Icon and Color are
// presentation hints the ledger never interprets.
type Category struct {
	ID    string
	Name  string
	Icon  string
	Color string
}

// FallbackCategoryID identifies the category used for unknown ids.
const FallbackCategoryID = "other"

var defaultCategories = []Category{
	{ID: "food", Name: "Food", Icon: "ph-hamburger", Color: "#ff7675"},
	{ID: "transport", Name: "Transport", Icon: "ph-car", Color: "#0984e3"},
	{ID: "shopping", Name: "Shopping", Icon: "ph-shopping-bag", Color: "#e17055"},
	{ID: "utilities", Name: "Utilities", Icon: "ph-lightbulb", Color: "#fdcb6e"},
	{ID: "entertainment", Name: "Entertainment", Icon: "ph-film-strip", Color: "#a29bfe"},
	{ID: "health", Name: "Health", Icon: "ph-heart", Color: "#00b894"},
	{ID: FallbackCategoryID, Name: "Other", Icon: "ph-dots-three-circle", Color: "#636e72"},
}

// CategoryRegistry is a read-only lookup over the built-in categories.
// The last entry is the fallback.
type CategoryRegistry struct {
	categories []Category
	byID       map[string]int
}

// NewCategoryRegistry returns the built-in registry.
func NewCategoryRegistry() *CategoryRegistry {
	r := &CategoryRegistry{
		categories: defaultCategories,
		byID:       make(map[string]int, len(defaultCategories)),
	}
	for i, c := range r.categories {
		r.byID[c.ID] = i
	}
	return r
}

// Lookup resolves id, falling back to the fallback category when the id is
// unknown. It never fails.
func (r *CategoryRegistry) Lookup(id string) Category {
	if i, ok := r.byID[id]; ok {
		return r.categories[i]
	}
	return r.Fallback()
}

// Has reports whether id names a registered category.
func (r *CategoryRegistry) Has(id string) bool {
	_, ok := r.byID[id]
	return ok
}

// All returns the categories in display order.
func (r *CategoryRegistry) All() []Category {
	return append([]Category(nil), r.categories...)
}

// Default is the pre-selected category for new expenses.
func (r *CategoryRegistry) Default() Category {
	return r.categories[0]
}

func (r *CategoryRegistry) Fallback() Category {
	return r.categories[len(r.categories)-1]
}
