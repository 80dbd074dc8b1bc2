package catalog

import (
	"context"
	"math"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/yiltek/catalog-backend/internal/adapters/repository"
	"github.com/yiltek/catalog-backend/internal/models"
)

const (
	PublicPageSize   = 12
	AdminPageSize    = 20
	FeaturedLimit    = 8
	maxAdminPageSize = 100
	maxPage          = 1 << 20
)

type ListQuery struct {
	Page         int
	Category     *primitive.ObjectID
	FeaturedOnly bool
}

type AdminQuery struct {
	Page   int
	Limit  int
	Search string
}

type ProductPage struct {
	Products []models.ProductView `json:"products"`
	Page     int                  `json:"page"`
	Pages    int                  `json:"pages"`
	Total    int64                `json:"total"`
}

// Service assembles product listings: filtering, paging, category
// population and priority ordering.
type Service interface {
	ListProducts(ctx context.Context, q ListQuery) (ProductPage, error)
	AdminProducts(ctx context.Context, q AdminQuery) (ProductPage, error)
	FeaturedProducts(ctx context.Context) ([]models.ProductView, error)
	Populate(ctx context.Context, products []models.Product) ([]models.ProductView, error)
	PopulateContacts(ctx context.Context, contacts []models.Contact) ([]models.ContactView, error)
}

type service struct {
	products   repository.ProductRepository
	categories repository.CategoryRepository
	priority   []string
}

func NewService(products repository.ProductRepository, categories repository.CategoryRepository, priority []string) Service {
	return &service{products: products, categories: categories, priority: priority}
}

func (s *service) ListProducts(ctx context.Context, q ListQuery) (ProductPage, error) {
	page := normalizePage(q.Page)
	filter := repository.ProductFilter{
		Category:     q.Category,
		ActiveOnly:   true,
		FeaturedOnly: q.FeaturedOnly,
	}
	products, total, err := s.products.FindProducts(ctx, filter, repository.Page{
		Skip:  int64((page - 1) * PublicPageSize),
		Limit: PublicPageSize,
	})
	if err != nil {
		return ProductPage{}, err
	}

	views, err := s.Populate(ctx, products)
	if err != nil {
		return ProductPage{}, err
	}
	if q.Category == nil {
		views = PrioritizeByCategory(views, s.priority)
	}
	return ProductPage{Products: views, Page: page, Pages: pageCount(total, PublicPageSize), Total: total}, nil
}

func (s *service) AdminProducts(ctx context.Context, q AdminQuery) (ProductPage, error) {
	page := normalizePage(q.Page)
	limit := q.Limit
	if limit <= 0 {
		limit = AdminPageSize
	}
	if limit > maxAdminPageSize {
		limit = maxAdminPageSize
	}

	products, total, err := s.products.FindProducts(ctx, repository.ProductFilter{Search: q.Search}, repository.Page{
		Skip:  int64((page - 1) * limit),
		Limit: int64(limit),
	})
	if err != nil {
		return ProductPage{}, err
	}
	views, err := s.Populate(ctx, products)
	if err != nil {
		return ProductPage{}, err
	}
	return ProductPage{Products: views, Page: page, Pages: pageCount(total, limit), Total: total}, nil
}

// FeaturedProducts returns the featured active products by order, or the
// newest active products when nothing is featured.
func (s *service) FeaturedProducts(ctx context.Context) ([]models.ProductView, error) {
	page := repository.Page{Limit: FeaturedLimit}
	products, _, err := s.products.FindProducts(ctx, repository.ProductFilter{ActiveOnly: true, FeaturedOnly: true}, page)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		products, _, err = s.products.FindProducts(ctx, repository.ProductFilter{ActiveOnly: true, Sort: repository.SortNewest}, page)
		if err != nil {
			return nil, err
		}
	}
	return s.Populate(ctx, products)
}

func (s *service) Populate(ctx context.Context, products []models.Product) ([]models.ProductView, error) {
	ids := make([]primitive.ObjectID, 0, len(products))
	seen := make(map[primitive.ObjectID]bool, len(products))
	for _, p := range products {
		if !p.Category.IsZero() && !seen[p.Category] {
			seen[p.Category] = true
			ids = append(ids, p.Category)
		}
	}
	refs, err := s.categories.CategoryRefs(ctx, ids)
	if err != nil {
		return nil, err
	}

	views := make([]models.ProductView, 0, len(products))
	for _, p := range products {
		var ref *models.CategoryRef
		if r, ok := refs[p.Category]; ok {
			ref = &r
		}
		views = append(views, models.NewProductView(p, ref))
	}
	return views, nil
}

func (s *service) PopulateContacts(ctx context.Context, contacts []models.Contact) ([]models.ContactView, error) {
	var ids []primitive.ObjectID
	for _, c := range contacts {
		if c.Product != nil {
			ids = append(ids, *c.Product)
		}
	}
	refs, err := s.products.ProductRefs(ctx, ids)
	if err != nil {
		return nil, err
	}

	views := make([]models.ContactView, 0, len(contacts))
	for _, c := range contacts {
		var ref *models.ProductRef
		if c.Product != nil {
			if r, ok := refs[*c.Product]; ok {
				ref = &r
			}
		}
		views = append(views, models.NewContactView(c, ref))
	}
	return views, nil
}

func normalizePage(page int) int {
	return max(1, min(page, maxPage))
}

func pageCount(total int64, size int) int {
	return int(math.Ceil(float64(total) / float64(size)))
}
