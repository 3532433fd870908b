// Package recommend ranks similar products, preferring the external ML service
// and falling back to a local weighted nearest-neighbour scorer.
package recommend

import (
	"math"
	"sort"
	"strings"

	"craftedbyher/models"
)

const (
	DefaultRating = 4.3
	DefaultCount  = 5
	// minCategoryPool is the smallest same-category pool used before widening to all products.
	minCategoryPool = 3
)

const (
	weightCategory   = 0.4
	weightIngredient = 0.3
	weightPrice      = 0.2
	weightRating     = 0.1
)

type Item struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Category       string  `json:"category"`
	Price          float64 `json:"price"`
	Rating         float64 `json:"rating"`
	MainIngredient string  `json:"mainIngredient"`
	Image          string  `json:"image,omitempty"`
	Description    string  `json:"description"`
	Similarity     float64 `json:"similarity"`
}

var ingredientKeywords = []string{
	"turmeric", "cumin", "coriander", "chili", "garam", "rice", "wheat", "moong", "toor", "chana",
	"almond", "cashew", "walnut", "tea", "coffee", "honey", "jaggery", "coconut", "olive",
}

// InferIngredient guesses the main ingredient from a product title.
func InferIngredient(title string) string {
	t := strings.ToLower(title)
	for _, k := range ingredientKeywords {
		if strings.Contains(t, k) {
			return k
		}
	}
	if fields := strings.Fields(t); len(fields) > 0 {
		return fields[0]
	}
	return "mixed"
}

func FromProduct(p models.Product) Item {
	it := Item{
		ID:             p.ID.Hex(),
		Name:           p.Title,
		Category:       p.Category,
		Price:          p.BasePrice(),
		Rating:         p.Rating,
		MainIngredient: p.MainIngredient,
		Image:          p.Image,
		Description:    p.Description,
	}
	if it.Name == "" {
		it.Name = "Product"
	}
	if it.Category == "" {
		it.Category = "unknown"
	}
	if it.Rating == 0 {
		it.Rating = DefaultRating
	}
	if it.MainIngredient == "" {
		it.MainIngredient = InferIngredient(p.Title)
	}
	return it
}

// Similarity scores b against a in [0, 1].
func Similarity(a, b Item) float64 {
	var s float64
	if strings.EqualFold(a.Category, b.Category) {
		s += weightCategory
	}
	if strings.EqualFold(a.MainIngredient, b.MainIngredient) {
		s += weightIngredient
	}
	if maxPrice := math.Max(a.Price, b.Price); maxPrice > 0 {
		s += weightPrice * (1 - math.Abs(a.Price-b.Price)/maxPrice)
	} else {
		s += weightPrice
	}
	s += weightRating * (1 - math.Abs(a.Rating-b.Rating)/5)
	return s
}

// Recommend returns the n candidates most similar to target, excluding target itself.
func Recommend(target Item, candidates []Item, n int) []Item {
	if n <= 0 {
		n = DefaultCount
	}
	var same, others []Item
	for _, c := range candidates {
		if c.ID == target.ID {
			continue
		}
		others = append(others, c)
		if strings.EqualFold(c.Category, target.Category) {
			same = append(same, c)
		}
	}
	pool := others
	if len(same) >= minCategoryPool {
		pool = same
	}

	scored := make([]Item, len(pool))
	for i, c := range pool {
		c.Similarity = Similarity(target, c)
		scored[i] = c
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Similarity > scored[j].Similarity
	})
	if len(scored) > n {
		scored = scored[:n]
	}
	for i := range scored {
		scored[i].Similarity = math.Round(scored[i].Similarity*100) / 100
	}
	return scored
}
