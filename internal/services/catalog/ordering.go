package catalog

import (
	"strings"

	"github.com/yiltek/catalog-backend/internal/models"
	"github.com/yiltek/catalog-backend/utils"
)

// PrioritizeByCategory moves products whose category name matches one of the
// priority names to the front, grouped in priority order. Matching ignores
// case and diacritics. The relative order inside each group is kept.
func PrioritizeByCategory(products []models.ProductView, priority []string) []models.ProductView {
	if len(priority) == 0 || len(products) < 2 {
		return products
	}

	keys := make([]string, 0, len(priority))
	for _, name := range priority {
		if key := utils.Slugify(name); key != "" {
			keys = append(keys, key)
		}
	}

	buckets := make([][]models.ProductView, len(keys)+1)
	for _, p := range products {
		bucket := len(keys)
		name := utils.Slugify(p.CategoryName())
		for i, key := range keys {
			if name != "" && strings.Contains(name, key) {
				bucket = i
				break
			}
		}
		buckets[bucket] = append(buckets[bucket], p)
	}

	ordered := make([]models.ProductView, 0, len(products))
	for _, b := range buckets {
		ordered = append(ordered, b...)
	}
	return ordered
}
