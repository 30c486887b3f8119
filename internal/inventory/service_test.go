package inventory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/Old-ch1ld/so-sach-happy-monkey/internal/inventory"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// fakeRepo is an in-memory Repository with the same find-or-create-and-upsert
// semantics as the Postgres store.
type fakeRepo struct {
	items map[string]*inventory.Item // keyed by name
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{items: make(map[string]*inventory.Item)}
}

func (f *fakeRepo) ApplyDelta(_ context.Context, userID, name, unit string, cost, delta decimal.Decimal) (*inventory.Item, error) {
	if item, ok := f.items[name]; ok {
		item.Quantity = item.Quantity.Add(delta)
		item.Unit = unit
		item.Cost = cost

		return item, nil
	}

	item := &inventory.Item{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      name,
		Quantity:  delta,
		Unit:      unit,
		Cost:      cost,
		Threshold: inventory.DefaultThreshold,
	}
	f.items[name] = item

	return item, nil
}

func (f *fakeRepo) CreateItem(_ context.Context, item *inventory.Item) error {
	if _, ok := f.items[item.Name]; ok {
		return inventory.ErrDuplicateName
	}

	item.ID = uuid.New()
	f.items[item.Name] = item

	return nil
}

func (f *fakeRepo) GetItem(_ context.Context, _ string, id uuid.UUID) (*inventory.Item, error) {
	for _, item := range f.items {
		if item.ID == id {
			return item, nil
		}
	}

	return nil, inventory.ErrNotFound
}

func (f *fakeRepo) GetItemByName(_ context.Context, _ string, name string) (*inventory.Item, error) {
	if item, ok := f.items[name]; ok {
		return item, nil
	}

	return nil, inventory.ErrNotFound
}

func (f *fakeRepo) UpdateItem(_ context.Context, item *inventory.Item) error {
	f.items[item.Name] = item
	return nil
}

func (f *fakeRepo) DeleteItem(_ context.Context, _ string, id uuid.UUID) error {
	for name, item := range f.items {
		if item.ID == id {
			delete(f.items, name)
			return nil
		}
	}

	return inventory.ErrNotFound
}

func (f *fakeRepo) ListItems(_ context.Context, _ string) ([]*inventory.Item, error) {
	var items []*inventory.Item
	for _, item := range f.items {
		items = append(items, item)
	}

	return items, nil
}

func TestService_Reconcile_CreatesOnFirstUse(t *testing.T) {
	repo := newFakeRepo()
	svc := inventory.NewService(repo, nil)

	err := svc.Reconcile(context.Background(), "user-1", "Bò viên", "kg", dec("50000"), dec("10"))
	require.NoError(t, err)

	item, err := repo.GetItemByName(context.Background(), "user-1", "Bò viên")
	require.NoError(t, err)
	assert.True(t, item.Quantity.Equal(dec("10")))
	assert.Equal(t, "kg", item.Unit)
	assert.True(t, item.Cost.Equal(dec("50000")))
	assert.True(t, item.Threshold.Equal(dec("1")), "implicitly created items default to threshold 1")
}

func TestService_Reconcile_AppliesDeltaLastWriteWins(t *testing.T) {
	repo := newFakeRepo()
	svc := inventory.NewService(repo, nil)
	ctx := context.Background()

	require.NoError(t, svc.Reconcile(ctx, "user-1", "Bò viên", "kg", dec("50000"), dec("10")))
	require.NoError(t, svc.Reconcile(ctx, "user-1", "Bò viên", "kg", dec("55000"), dec("-3")))

	item, err := repo.GetItemByName(ctx, "user-1", "Bò viên")
	require.NoError(t, err)
	assert.True(t, item.Quantity.Equal(dec("7")), "got %s", item.Quantity)
	assert.True(t, item.Cost.Equal(dec("55000")), "cost is last-write-wins")
}

func TestService_Reconcile_QuantityMayGoNegative(t *testing.T) {
	repo := newFakeRepo()
	svc := inventory.NewService(repo, nil)

	// First-ever transaction is an "out": oversell is recorded, not clamped.
	err := svc.Reconcile(context.Background(), "user-1", "Phô mai lát", "gói", dec("30000"), dec("-5"))
	require.NoError(t, err)

	item, _ := repo.GetItemByName(context.Background(), "user-1", "Phô mai lát")
	assert.True(t, item.Quantity.Equal(dec("-5")))
}

func TestService_Reconcile_EmptyName(t *testing.T) {
	svc := inventory.NewService(newFakeRepo(), nil)

	err := svc.Reconcile(context.Background(), "user-1", "", "kg", dec("1"), dec("1"))
	assert.ErrorIs(t, err, inventory.ErrMissingField)
}

func TestService_UpsertDefinition_Create(t *testing.T) {
	repo := newFakeRepo()
	svc := inventory.NewService(repo, nil)

	item, err := svc.UpsertDefinition(context.Background(), "user-1", inventory.DefinitionParams{
		Name:      "Bánh mì burger",
		Unit:      "cái",
		Cost:      dec("4000"),
		Threshold: dec("20"),
	}, nil)
	require.NoError(t, err)
	assert.True(t, item.Quantity.IsZero(), "defined items start at quantity 0")
	assert.True(t, item.Threshold.Equal(dec("20")))
}

func TestService_UpsertDefinition_DuplicateName(t *testing.T) {
	repo := newFakeRepo()
	svc := inventory.NewService(repo, nil)
	ctx := context.Background()

	params := inventory.DefinitionParams{Name: "Bánh mì burger", Unit: "cái", Cost: dec("4000"), Threshold: dec("20")}

	_, err := svc.UpsertDefinition(ctx, "user-1", params, nil)
	require.NoError(t, err)

	_, err = svc.UpsertDefinition(ctx, "user-1", params, nil)
	assert.ErrorIs(t, err, inventory.ErrDuplicateName)
	assert.Len(t, repo.items, 1, "failed upsert must not write")
}

func TestService_UpsertDefinition_UpdateInPlace(t *testing.T) {
	repo := newFakeRepo()
	svc := inventory.NewService(repo, nil)
	ctx := context.Background()

	created, err := svc.UpsertDefinition(ctx, "user-1", inventory.DefinitionParams{
		Name: "Bánh mì burger", Unit: "cái", Cost: dec("4000"), Threshold: dec("20"),
	}, nil)
	require.NoError(t, err)

	updated, err := svc.UpsertDefinition(ctx, "user-1", inventory.DefinitionParams{
		Name: "Bánh mì burger", Unit: "cái", Cost: dec("4500"), Threshold: dec("30"),
	}, &created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.True(t, updated.Cost.Equal(dec("4500")))
	assert.True(t, updated.Threshold.Equal(dec("30")))
}

func TestService_UpsertDefinition_UpdateMissingID(t *testing.T) {
	svc := inventory.NewService(newFakeRepo(), nil)
	id := uuid.New()

	_, err := svc.UpsertDefinition(context.Background(), "user-1", inventory.DefinitionParams{
		Name: "Bánh mì burger", Unit: "cái",
	}, &id)
	assert.ErrorIs(t, err, inventory.ErrNotFound)
}

func TestService_Delete(t *testing.T) {
	repo := newFakeRepo()
	svc := inventory.NewService(repo, nil)
	ctx := context.Background()

	item, err := svc.UpsertDefinition(ctx, "user-1", inventory.DefinitionParams{
		Name: "Bánh mì burger", Unit: "cái",
	}, nil)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, "user-1", item.ID))

	// Deleting a missing id is an error, not a no-op.
	err = svc.Delete(ctx, "user-1", item.ID)
	assert.ErrorIs(t, err, inventory.ErrNotFound)
}

func TestService_List_RepoError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := inventory.NewMockRepository(ctrl)
	repo.EXPECT().ListItems(gomock.Any(), "user-1").Return(nil, errors.New("db error"))

	svc := inventory.NewService(repo, nil)

	_, err := svc.List(context.Background(), "user-1")
	assert.Error(t, err)
}

func TestItem_LowStock(t *testing.T) {
	tests := []struct {
		name      string
		quantity  string
		threshold string
		want      bool
	}{
		{"below threshold", "3", "5", true},
		{"at threshold", "5", "5", true}, // boundary: non-strict comparison
		{"above threshold", "6", "5", false},
		{"negative quantity", "-2", "0", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := &inventory.Item{Quantity: dec(tt.quantity), Threshold: dec(tt.threshold)}
			assert.Equal(t, tt.want, item.LowStock())
		})
	}
}
