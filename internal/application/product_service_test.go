package application

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/khalilbouhlel1/threadly-api/internal/domain/entity"
	"github.com/khalilbouhlel1/threadly-api/internal/domain/repository"
)

type fakeProductRepo struct {
	mu       sync.Mutex
	products map[string]*entity.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[string]*entity.Product)}
}

func (r *fakeProductRepo) Create(_ context.Context, p *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p.ID = primitive.NewObjectID()
	cp := *p
	r.products[p.ID.Hex()] = &cp
	return nil
}

func (r *fakeProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return nil, repository.ErrInvalidID
	}
	p, ok := r.products[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) List(_ context.Context) ([]*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.Product, 0, len(r.products))
	for _, p := range r.products {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeProductRepo) Update(_ context.Context, p *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[p.ID.Hex()]; !ok {
		return repository.ErrNotFound
	}
	cp := *p
	r.products[p.ID.Hex()] = &cp
	return nil
}

func (r *fakeProductRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.products, id)
	return nil
}

var _ repository.ProductRepository = (*fakeProductRepo)(nil)

func seedProduct(t *testing.T, repo *fakeProductRepo) *entity.Product {
	t.Helper()
	p := &entity.Product{
		Name:        "Classic Crew Tee",
		Description: "Heavyweight cotton tee.",
		Price:       24.90,
		Category:    "Men",
		Subcategory: "Topwear",
		Sizes:       []string{"S", "M", "L"},
		Images:      []string{"https://storage.googleapis.com/shop/products/tee.jpg"},
		Stock:       map[string]int{"S": 5, "M": 10, "L": 2},
	}
	require.NoError(t, repo.Create(context.Background(), p))
	return p
}

func TestCreateRequiresImage(t *testing.T) {
	svc := NewProductService(newFakeProductRepo(), nil, "", nil)
	_, err := svc.Create(context.Background(), ProductInput{Name: "Tee", Price: 10}, nil)
	require.ErrorIs(t, err, ErrNoImage)
}

func TestCreateRejectsInvalidStockBeforeUpload(t *testing.T) {
	svc := NewProductService(newFakeProductRepo(), nil, "", nil)
	in := ProductInput{
		Name:  "Tee",
		Price: 10,
		Sizes: []string{"S"},
		Stock: []StockEntry{{Size: "XL", Quantity: 3}},
	}
	image := &ImageUpload{Reader: strings.NewReader("fake"), Filename: "tee.jpg"}

	_, err := svc.Create(context.Background(), in, image)
	var se *StockError
	require.ErrorAs(t, err, &se, "stock validation runs before any upload attempt")
}

func TestCreateWithoutHostingConfigured(t *testing.T) {
	svc := NewProductService(newFakeProductRepo(), nil, "", nil)
	in := ProductInput{Name: "Tee", Price: 10, Sizes: []string{"S"}, Stock: []StockEntry{{Size: "S", Quantity: 1}}}
	image := &ImageUpload{Reader: strings.NewReader("fake"), Filename: "tee.jpg"}

	_, err := svc.Create(context.Background(), in, image)
	require.ErrorIs(t, err, ErrImageHosting)
}

func TestGetUnknownAndMalformedID(t *testing.T) {
	svc := NewProductService(newFakeProductRepo(), nil, "", nil)

	_, err := svc.Get(context.Background(), primitive.NewObjectID().Hex())
	require.ErrorIs(t, err, ErrProductNotFound)

	_, err = svc.Get(context.Background(), "not-an-object-id")
	require.ErrorIs(t, err, ErrProductNotFound)
}

func TestUpdateReplacesStockWholesale(t *testing.T) {
	ctx := context.Background()
	repo := newFakeProductRepo()
	svc := NewProductService(repo, nil, "", nil)
	p := seedProduct(t, repo)

	in := ProductInput{Stock: []StockEntry{{Size: "S", Quantity: 7}, {Size: "M", Quantity: 1}}}
	updated, err := svc.Update(ctx, p.ID.Hex(), in, nil)
	require.NoError(t, err)

	require.Equal(t, map[string]int{"S": 7, "M": 1}, updated.Stock)
	_, ok := updated.Stock["L"]
	require.False(t, ok, "omitted size drops out of the stock map")
}

func TestUpdatePartialFieldsKeepOthers(t *testing.T) {
	ctx := context.Background()
	repo := newFakeProductRepo()
	svc := NewProductService(repo, nil, "", nil)
	p := seedProduct(t, repo)

	updated, err := svc.Update(ctx, p.ID.Hex(), ProductInput{Name: "Renamed Tee"}, nil)
	require.NoError(t, err)

	require.Equal(t, "Renamed Tee", updated.Name)
	require.Equal(t, p.Price, updated.Price)
	require.Equal(t, p.Stock, updated.Stock)
	require.Equal(t, p.Images, updated.Images)
}

func TestUpdateRejectsStockOutsideDeclaredSizes(t *testing.T) {
	ctx := context.Background()
	repo := newFakeProductRepo()
	svc := NewProductService(repo, nil, "", nil)
	p := seedProduct(t, repo)

	in := ProductInput{Stock: []StockEntry{{Size: "XXL", Quantity: 3}}}
	_, err := svc.Update(ctx, p.ID.Hex(), in, nil)
	var se *StockError
	require.ErrorAs(t, err, &se)
}

func TestDeleteRemovesRecordDespiteHostingAbsence(t *testing.T) {
	ctx := context.Background()
	repo := newFakeProductRepo()
	svc := NewProductService(repo, nil, "", nil)
	p := seedProduct(t, repo)

	require.NoError(t, svc.Delete(ctx, p.ID.Hex()))

	_, err := svc.Get(ctx, p.ID.Hex())
	require.ErrorIs(t, err, ErrProductNotFound)
}

func TestDeleteUnknownProduct(t *testing.T) {
	svc := NewProductService(newFakeProductRepo(), nil, "", nil)
	err := svc.Delete(context.Background(), primitive.NewObjectID().Hex())
	require.ErrorIs(t, err, ErrProductNotFound)
}
