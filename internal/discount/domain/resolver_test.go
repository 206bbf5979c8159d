package domain

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/tair/pos-engine/pkg/apperror"
)

type fakeRepo struct {
	discounts map[uint]*Discount
}

func (f *fakeRepo) WithTx(*gorm.DB) DiscountRepository { return f }

func (f *fakeRepo) Create(_ context.Context, d *Discount) error {
	d.ID = uint(len(f.discounts) + 1)
	f.discounts[d.ID] = d
	return nil
}

func (f *fakeRepo) FindByID(_ context.Context, id uint) (*Discount, error) {
	d, ok := f.discounts[id]
	if !ok {
		return nil, apperror.NotFound("discount", id)
	}
	return d, nil
}

func (f *fakeRepo) FindActive(context.Context) ([]Discount, error) { return nil, nil }

func (f *fakeRepo) Update(context.Context, uint, DiscountUpdate) (*Discount, error) { return nil, nil }

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newResolver() *Resolver {
	return NewResolver(&fakeRepo{discounts: map[uint]*Discount{
		1: {ID: 1, Name: "Happy hour", Type: TypePercentage, Value: dec("20"), Active: true},
		2: {ID: 2, Name: "Big order", Type: TypeFixed, Value: dec("5"), MinAmount: dec("50"), Active: true},
		3: {ID: 3, Name: "Retired", Type: TypePercentage, Value: dec("50"), Active: false},
	}})
}

func uintPtr(v uint) *uint { return &v }

func TestResolve_NoDiscount(t *testing.T) {
	res, err := newResolver().Resolve(context.Background(), Selection{}, dec("30"), 3)
	require.NoError(t, err)

	assert.True(t, res.Amount.IsZero())
	assert.True(t, res.Total.Equal(dec("30")))
	assert.Equal(t, TypeNone, res.Snapshot.Type)
	assert.Nil(t, res.Snapshot.DiscountID)
}

func TestResolve_StoredPercentage(t *testing.T) {
	res, err := newResolver().Resolve(context.Background(), Selection{DiscountID: uintPtr(1)}, dec("30"), 3)
	require.NoError(t, err)

	assert.True(t, res.Subtotal.Equal(dec("30")))
	assert.True(t, res.Amount.Equal(dec("6")))
	assert.True(t, res.Total.Equal(dec("24")))
	require.NotNil(t, res.Snapshot.DiscountID)
	assert.Equal(t, uint(1), *res.Snapshot.DiscountID)
	assert.Equal(t, "Happy hour", res.Snapshot.Name)
}

func TestResolve_AdHocFixedScalesWithQuantity(t *testing.T) {
	sel := Selection{AdHoc: &AdHoc{Type: TypeFixed, Value: dec("5")}}
	res, err := newResolver().Resolve(context.Background(), sel, dec("30"), 3)
	require.NoError(t, err)

	assert.True(t, res.Amount.Equal(dec("15")))
	assert.True(t, res.Total.Equal(dec("15")))
	assert.Equal(t, TypeFixed, res.Snapshot.Type)
}

func TestResolve_TotalNeverNegative(t *testing.T) {
	sel := Selection{AdHoc: &AdHoc{Type: TypeFixed, Value: dec("15")}}
	res, err := newResolver().Resolve(context.Background(), sel, dec("30"), 3)
	require.NoError(t, err)

	assert.True(t, res.Amount.Equal(dec("45")))
	assert.True(t, res.Total.IsZero())
}

func TestResolve_PercentageRoundsToCents(t *testing.T) {
	sel := Selection{AdHoc: &AdHoc{Type: TypePercentage, Value: dec("15")}}
	res, err := newResolver().Resolve(context.Background(), sel, dec("3.33"), 1)
	require.NoError(t, err)

	// 3.33 * 15% = 0.4995
	assert.Equal(t, "0.5", res.Amount.String())
	assert.Equal(t, "2.83", res.Total.String())
}

func TestResolve_Errors(t *testing.T) {
	r := newResolver()
	ctx := context.Background()

	tests := []struct {
		name string
		sel  Selection
		kind apperror.Kind
	}{
		{"both selected", Selection{DiscountID: uintPtr(1), AdHoc: &AdHoc{Type: TypeFixed, Value: dec("1")}}, apperror.KindValidation},
		{"unknown discount", Selection{DiscountID: uintPtr(99)}, apperror.KindNotFound},
		{"inactive discount", Selection{DiscountID: uintPtr(3)}, apperror.KindNotFound},
		{"minimum not met", Selection{DiscountID: uintPtr(2)}, apperror.KindValidation},
		{"percentage over 100", Selection{AdHoc: &AdHoc{Type: TypePercentage, Value: dec("120")}}, apperror.KindValidation},
		{"negative value", Selection{AdHoc: &AdHoc{Type: TypeFixed, Value: dec("-1")}}, apperror.KindValidation},
		{"unknown type", Selection{AdHoc: &AdHoc{Type: "bogo", Value: dec("1")}}, apperror.KindValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.Resolve(ctx, tt.sel, dec("30"), 3)
			require.Error(t, err)
			assert.Equal(t, tt.kind, apperror.KindOf(err))
		})
	}
}

func TestResolve_MinimumMetExactly(t *testing.T) {
	res, err := newResolver().Resolve(context.Background(), Selection{DiscountID: uintPtr(2)}, dec("50"), 10)
	require.NoError(t, err)
	assert.True(t, res.Amount.Equal(dec("50")))
	assert.True(t, res.Total.IsZero())
}
