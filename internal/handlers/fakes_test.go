package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/yiltek/catalog-backend/internal/adapters/repository"
	"github.com/yiltek/catalog-backend/internal/config"
	"github.com/yiltek/catalog-backend/internal/models"
	"github.com/yiltek/catalog-backend/internal/notify"
	"github.com/yiltek/catalog-backend/utils"
)

const testSecret = "handler-test-secret"

// memoryStore backs every repository interface with in-process maps.
type memoryStore struct {
	mu         sync.Mutex
	products   []models.Product
	categories []models.Category
	systems    []models.System
	gallery    []models.GalleryItem
	contacts   []models.Contact
	users      []models.User
	failWith   error
}

type productRepo struct{ *memoryStore }
type categoryRepo struct{ *memoryStore }
type systemRepo struct{ *memoryStore }
type galleryRepo struct{ *memoryStore }
type contactRepo struct{ *memoryStore }
type userRepo struct{ *memoryStore }

func (r productRepo) FindProducts(_ context.Context, f repository.ProductFilter, page repository.Page) ([]models.Product, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return nil, 0, r.failWith
	}
	out := []models.Product{}
	for _, p := range r.products {
		if f.ActiveOnly && !p.IsActive || f.FeaturedOnly && !p.IsFeatured {
			continue
		}
		if f.Category != nil && p.Category != *f.Category {
			continue
		}
		if f.Search != "" && !strings.Contains(strings.ToLower(p.Name+" "+p.Slug+" "+p.Description), strings.ToLower(f.Search)) {
			continue
		}
		out = append(out, p)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if f.Sort == repository.SortNewest {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].Order < out[j].Order
	})
	total := int64(len(out))
	if int(page.Skip) >= len(out) {
		return []models.Product{}, total, nil
	}
	out = out[page.Skip:]
	if page.Limit > 0 && int(page.Limit) < len(out) {
		out = out[:page.Limit]
	}
	return out, total, nil
}

func (r productRepo) GetProduct(_ context.Context, id primitive.ObjectID) (models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.products {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Product{}, repository.ErrNotFound
}

func (r productRepo) GetProductBySlug(_ context.Context, slug string) (models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.products {
		if p.Slug == slug {
			return p, nil
		}
	}
	return models.Product{}, repository.ErrNotFound
}

func (r productRepo) SlugTaken(_ context.Context, slug string, excludeID primitive.ObjectID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.products {
		if p.Slug == slug && p.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r productRepo) CreateProduct(_ context.Context, p models.Product) (models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p.ID = primitive.NewObjectID()
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	p.ApplyDefaults()
	r.products = append(r.products, p)
	return p, nil
}

func (r productRepo) UpdateProduct(_ context.Context, p models.Product) (models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.products {
		if r.products[i].ID == p.ID {
			p.UpdatedAt = time.Now()
			r.products[i] = p
			return p, nil
		}
	}
	return models.Product{}, repository.ErrNotFound
}

func (r productRepo) DeleteProduct(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.products {
		if r.products[i].ID == id {
			r.products = append(r.products[:i], r.products[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r productRepo) ProductRefs(_ context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.ProductRef, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	refs := map[primitive.ObjectID]models.ProductRef{}
	for _, id := range ids {
		for _, p := range r.products {
			if p.ID == id {
				refs[id] = models.ProductRef{ID: p.ID, Name: p.Name, Slug: p.Slug}
			}
		}
	}
	return refs, nil
}

func (r categoryRepo) ListCategories(context.Context) ([]models.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := append([]models.Category{}, r.categories...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out, nil
}

func (r categoryRepo) GetCategory(_ context.Context, id primitive.ObjectID) (models.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.categories {
		if c.ID == id {
			return c, nil
		}
	}
	return models.Category{}, repository.ErrNotFound
}

func (r categoryRepo) SlugTaken(_ context.Context, slug string, excludeID primitive.ObjectID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.categories {
		if c.Slug == slug && c.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r categoryRepo) CreateCategory(_ context.Context, c models.Category) (models.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c.ID = primitive.NewObjectID()
	r.categories = append(r.categories, c)
	return c, nil
}

func (r categoryRepo) UpdateCategory(_ context.Context, c models.Category) (models.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.categories {
		if r.categories[i].ID == c.ID {
			r.categories[i] = c
			return c, nil
		}
	}
	return models.Category{}, repository.ErrNotFound
}

func (r categoryRepo) DeleteCategory(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.categories {
		if r.categories[i].ID == id {
			r.categories = append(r.categories[:i], r.categories[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r categoryRepo) CategoryRefs(_ context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.CategoryRef, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	refs := map[primitive.ObjectID]models.CategoryRef{}
	for _, id := range ids {
		for _, c := range r.categories {
			if c.ID == id {
				refs[id] = models.CategoryRef{ID: c.ID, Name: c.Name, Slug: c.Slug}
			}
		}
	}
	return refs, nil
}

func (r systemRepo) ListSystems(context.Context) ([]models.System, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.System{}, r.systems...), nil
}

func (r systemRepo) GetSystem(_ context.Context, id primitive.ObjectID) (models.System, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.systems {
		if s.ID == id {
			return s, nil
		}
	}
	return models.System{}, repository.ErrNotFound
}

func (r systemRepo) CreateSystem(_ context.Context, s models.System) (models.System, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s.ID = primitive.NewObjectID()
	r.systems = append(r.systems, s)
	return s, nil
}

func (r systemRepo) UpdateSystem(_ context.Context, s models.System) (models.System, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.systems {
		if r.systems[i].ID == s.ID {
			r.systems[i] = s
			return s, nil
		}
	}
	return models.System{}, repository.ErrNotFound
}

func (r systemRepo) DeleteSystem(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.systems {
		if r.systems[i].ID == id {
			r.systems = append(r.systems[:i], r.systems[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r galleryRepo) ListGallery(context.Context) ([]models.GalleryItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.GalleryItem{}, r.gallery...), nil
}

func (r galleryRepo) GetGalleryItem(_ context.Context, id primitive.ObjectID) (models.GalleryItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, g := range r.gallery {
		if g.ID == id {
			return g, nil
		}
	}
	return models.GalleryItem{}, repository.ErrNotFound
}

func (r galleryRepo) CreateGalleryItem(_ context.Context, g models.GalleryItem) (models.GalleryItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	g.ID = primitive.NewObjectID()
	r.gallery = append(r.gallery, g)
	return g, nil
}

func (r galleryRepo) UpdateGalleryItem(_ context.Context, g models.GalleryItem) (models.GalleryItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.gallery {
		if r.gallery[i].ID == g.ID {
			r.gallery[i] = g
			return g, nil
		}
	}
	return models.GalleryItem{}, repository.ErrNotFound
}

func (r galleryRepo) DeleteGalleryItem(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.gallery {
		if r.gallery[i].ID == id {
			r.gallery = append(r.gallery[:i], r.gallery[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r contactRepo) FindContacts(_ context.Context, f repository.ContactFilter, page repository.Page) ([]models.Contact, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Contact{}
	for _, c := range r.contacts {
		if f.QuoteOnly && !c.IsQuote || f.Read != nil && c.IsRead != *f.Read {
			continue
		}
		out = append(out, c)
	}
	total := int64(len(out))
	if int(page.Skip) >= len(out) {
		return []models.Contact{}, total, nil
	}
	out = out[page.Skip:]
	if page.Limit > 0 && int(page.Limit) < len(out) {
		out = out[:page.Limit]
	}
	return out, total, nil
}

func (r contactRepo) GetContact(_ context.Context, id primitive.ObjectID) (models.Contact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.contacts {
		if c.ID == id {
			return c, nil
		}
	}
	return models.Contact{}, repository.ErrNotFound
}

func (r contactRepo) CreateContact(_ context.Context, c models.Contact) (models.Contact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return models.Contact{}, r.failWith
	}
	c.ID = primitive.NewObjectID()
	r.contacts = append(r.contacts, c)
	return c, nil
}

func (r contactRepo) MarkRead(_ context.Context, id primitive.ObjectID, read bool) (models.Contact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.contacts {
		if r.contacts[i].ID == id {
			r.contacts[i].IsRead = read
			return r.contacts[i], nil
		}
	}
	return models.Contact{}, repository.ErrNotFound
}

func (r contactRepo) DeleteContact(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.contacts {
		if r.contacts[i].ID == id {
			r.contacts = append(r.contacts[:i], r.contacts[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r userRepo) GetUser(_ context.Context, id primitive.ObjectID) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return models.User{}, repository.ErrNotFound
}

func (r userRepo) FindByLogin(_ context.Context, login string) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == strings.ToLower(login) || u.Name == login {
			return u, nil
		}
	}
	return models.User{}, repository.ErrNotFound
}

func (r userRepo) CreateUser(_ context.Context, u models.User) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u.ID = primitive.NewObjectID()
	r.users = append(r.users, u)
	return u, nil
}

func (r userRepo) UpdatePassword(_ context.Context, id primitive.ObjectID, hash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.users {
		if r.users[i].ID == id {
			r.users[i].Password = hash
			return nil
		}
	}
	return repository.ErrNotFound
}

// memoryStorage records saved files under /uploads/.
type memoryStorage struct {
	mu      sync.Mutex
	files   map[string][]byte
	deleted []string
}

func newMemoryStorage() *memoryStorage {
	return &memoryStorage{files: map[string][]byte{}}
}

func (s *memoryStorage) Save(_ context.Context, r io.Reader, name string) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	p := "/uploads/" + name
	s.files[p] = data
	return p, nil
}

func (s *memoryStorage) Owns(p string) bool {
	return strings.HasPrefix(p, "/uploads/")
}

func (s *memoryStorage) Delete(_ context.Context, p string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.files, p)
	s.deleted = append(s.deleted, p)
	return nil
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []notify.ContactEmail
	err  error
}

func (n *recordingNotifier) NotifyContact(_ context.Context, email notify.ContactEmail) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, email)
	return n.err
}

type testEnv struct {
	store    *memoryStore
	storage  *memoryStorage
	notifier *recordingNotifier
	router   *gin.Engine
	admin    models.User
	editor   models.User
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hash, err := bcrypt.GenerateFromPassword([]byte("admin-pass-123"), bcrypt.MinCost)
	require.NoError(t, err)

	env := &testEnv{
		store:    &memoryStore{},
		storage:  newMemoryStorage(),
		notifier: &recordingNotifier{},
		admin:    models.User{ID: primitive.NewObjectID(), Name: "admin", Email: "admin@yiltek.com", Password: string(hash), Role: models.RoleAdmin},
		editor:   models.User{ID: primitive.NewObjectID(), Name: "editor", Email: "editor@yiltek.com", Password: string(hash), Role: models.RoleUser},
	}
	env.store.users = []models.User{env.admin, env.editor}

	deps := &Dependencies{
		Products:   productRepo{env.store},
		Categories: categoryRepo{env.store},
		Systems:    systemRepo{env.store},
		Gallery:    galleryRepo{env.store},
		Contacts:   contactRepo{env.store},
		Users:      userRepo{env.store},
		Storage:    env.storage,
		Notifier:   env.notifier,
	}
	cfg := config.Config{
		JWTSecret:          testSecret,
		TokenTTL:           time.Hour,
		UploadMaxBytes:     1 << 20,
		GalleryMaxBytes:    2 << 20,
		PriorityCategories: []string{"Işık Kulesi", "Teleskopik Direk"},
	}
	env.router = gin.New()
	SetupRoutes(env.router, cfg, deps)
	return env
}

func (e *testEnv) token(t *testing.T, u models.User) string {
	t.Helper()
	token, err := utils.GenerateToken(testSecret, u.ID.Hex(), u.Role, time.Hour)
	require.NoError(t, err)
	return token
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

type formFile struct {
	field, name string
	content     []byte
}

func (e *testEnv) doMultipart(t *testing.T, method, path, token string, fields map[string]string, files ...formFile) *httptest.ResponseRecorder {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	for _, f := range files {
		part, err := w.CreateFormFile(f.field, f.name)
		require.NoError(t, err)
		_, err = part.Write(f.content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out), w.Body.String())
}

var (
	pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")
	pdfBytes = []byte("%PDF-1.4\n%\xe2\xe3\xcf\xd3\n1 0 obj\n<<>>\nendobj\n")
	mp4Bytes = []byte("\x00\x00\x00\x18ftypmp42\x00\x00\x00\x00mp42isom")
)


func (e *testEnv) addCategory(name string) models.Category {
	e.store.mu.Lock()
	defer e.store.mu.Unlock()
	c := models.Category{ID: primitive.NewObjectID(), Name: name, Slug: utils.Slugify(name), IsActive: true}
	e.store.categories = append(e.store.categories, c)
	return c
}

func (e *testEnv) addProduct(p models.Product) models.Product {
	e.store.mu.Lock()
	defer e.store.mu.Unlock()
	p.ID = primitive.NewObjectID()
	if p.Slug == "" {
		p.Slug = utils.Slugify(p.Name)
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	p.ApplyDefaults()
	e.store.products = append(e.store.products, p)
	return p
}
