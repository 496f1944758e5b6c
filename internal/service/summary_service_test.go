package service

import (
	"context"
	"testing"

	"fraisreels/internal/deduction"
	"fraisreels/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// In-memory stand-ins for the postgres repositories. Methods the summary
// path never touches return gorm.ErrRecordNotFound or no-op.

type fakePersonRepo struct {
	persons []model.Person
}

func (f *fakePersonRepo) Create(ctx context.Context, person *model.Person) error { return nil }
func (f *fakePersonRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Person, error) {
	for i := range f.persons {
		if f.persons[i].ID == id {
			return &f.persons[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}
func (f *fakePersonRepo) List(ctx context.Context, page, limit int) ([]model.Person, int64, error) {
	return f.persons, int64(len(f.persons)), nil
}
func (f *fakePersonRepo) ListAll(ctx context.Context) ([]model.Person, error) {
	return f.persons, nil
}
func (f *fakePersonRepo) Update(ctx context.Context, person *model.Person) error { return nil }
func (f *fakePersonRepo) Delete(ctx context.Context, id uuid.UUID) error         { return nil }

type fakeVehicleRepo struct {
	vehicles []model.Vehicle
}

func (f *fakeVehicleRepo) Create(ctx context.Context, vehicle *model.Vehicle) error { return nil }
func (f *fakeVehicleRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Vehicle, error) {
	for i := range f.vehicles {
		if f.vehicles[i].ID == id {
			return &f.vehicles[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeVehicleRepo) List(ctx context.Context) ([]model.Vehicle, error) {
	return f.vehicles, nil
}
func (f *fakeVehicleRepo) ListByPerson(ctx context.Context, personID uuid.UUID) ([]model.Vehicle, error) {
	var out []model.Vehicle
	for _, v := range f.vehicles {
		if v.PersonID == personID {
			out = append(out, v)
		}
	}
	return out, nil
}
func (f *fakeVehicleRepo) Update(ctx context.Context, vehicle *model.Vehicle) error { return nil }
func (f *fakeVehicleRepo) Delete(ctx context.Context, id uuid.UUID) error           { return nil }

type fakeMileageRepo struct {
	entries []model.MileageEntry
}

func (f *fakeMileageRepo) Create(ctx context.Context, entry *model.MileageEntry) error { return nil }
func (f *fakeMileageRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.MileageEntry, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeMileageRepo) ListByPersonYear(ctx context.Context, personID uuid.UUID, year int) ([]model.MileageEntry, error) {
	var out []model.MileageEntry
	for _, e := range f.entries {
		if e.PersonID == personID && e.Year == year {
			out = append(out, e)
		}
	}
	return out, nil
}
func (f *fakeMileageRepo) Update(ctx context.Context, entry *model.MileageEntry) error { return nil }
func (f *fakeMileageRepo) Delete(ctx context.Context, id uuid.UUID) error              { return nil }

type fakeMealRepo struct {
	expenses []model.MealExpense
}

func (f *fakeMealRepo) Create(ctx context.Context, expense *model.MealExpense) error { return nil }
func (f *fakeMealRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.MealExpense, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeMealRepo) ListByPersonYear(ctx context.Context, personID uuid.UUID, year int) ([]model.MealExpense, error) {
	var out []model.MealExpense
	for _, e := range f.expenses {
		if e.PersonID == personID && e.Year == year {
			out = append(out, e)
		}
	}
	return out, nil
}
func (f *fakeMealRepo) Update(ctx context.Context, expense *model.MealExpense) error { return nil }
func (f *fakeMealRepo) Delete(ctx context.Context, id uuid.UUID) error               { return nil }

type fakeOtherRepo struct {
	expenses []model.OtherExpense
}

func (f *fakeOtherRepo) Create(ctx context.Context, expense *model.OtherExpense) error { return nil }
func (f *fakeOtherRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.OtherExpense, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeOtherRepo) ListByPersonYear(ctx context.Context, personID uuid.UUID, year int) ([]model.OtherExpense, error) {
	var out []model.OtherExpense
	for _, e := range f.expenses {
		if e.PersonID == personID && e.Year == year {
			out = append(out, e)
		}
	}
	return out, nil
}
func (f *fakeOtherRepo) Update(ctx context.Context, expense *model.OtherExpense) error { return nil }
func (f *fakeOtherRepo) Delete(ctx context.Context, id uuid.UUID) error                { return nil }

// fakeTxManager runs the callback directly; the fakes have no transactions.
type fakeTxManager struct{}

func (f *fakeTxManager) RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error {
	return fn(ctx)
}

// fakeScaleService serves the published scale without a database.
type fakeScaleService struct{}

func (f *fakeScaleService) GetScale(ctx context.Context) ([]ScaleTierResponse, error) {
	return nil, nil
}
func (f *fakeScaleService) Snapshot(ctx context.Context) (deduction.Scale, error) {
	return deduction.DefaultScale(), nil
}
func (f *fakeScaleService) UpdateTier(ctx context.Context, userID string, powerCV int, req UpdateScaleTierRequest) (ScaleTierResponse, error) {
	return ScaleTierResponse{}, nil
}

type summaryFixture struct {
	household model.Household
	alice     model.Person
	bob       model.Person
	clio      model.Vehicle
	svc       SummaryService
}

func newSummaryFixture() *summaryFixture {
	f := &summaryFixture{}
	f.household = model.Household{ID: uuid.New(), Name: "Foyer Martin"}
	f.alice = model.Person{ID: uuid.New(), HouseholdID: f.household.ID, Household: f.household, FirstName: "Alice", LastName: "Martin"}
	f.bob = model.Person{ID: uuid.New(), HouseholdID: f.household.ID, Household: f.household, FirstName: "Bob", LastName: "Martin"}
	f.clio = model.Vehicle{ID: uuid.New(), PersonID: f.alice.ID, Name: "Clio", PowerCV: 5}

	personRepo := &fakePersonRepo{persons: []model.Person{f.alice, f.bob}}
	vehicleRepo := &fakeVehicleRepo{vehicles: []model.Vehicle{f.clio}}
	mileageRepo := &fakeMileageRepo{entries: []model.MileageEntry{
		{ID: uuid.New(), PersonID: f.alice.ID, VehicleID: f.clio.ID, Year: 2024, Month: 1, KM: decimal.RequireFromString("800")},
		{ID: uuid.New(), PersonID: f.alice.ID, VehicleID: f.clio.ID, Year: 2024, Month: 2, KM: decimal.RequireFromString("700.50")},
		// different year, must not bleed in
		{ID: uuid.New(), PersonID: f.alice.ID, VehicleID: f.clio.ID, Year: 2023, Month: 12, KM: decimal.RequireFromString("9999")},
	}}
	mealRepo := &fakeMealRepo{expenses: []model.MealExpense{
		{ID: uuid.New(), PersonID: f.alice.ID, Year: 2024, Month: 1, MealCost: decimal.RequireFromString("10.00")},
		{ID: uuid.New(), PersonID: f.alice.ID, Year: 2024, Month: 1, MealCost: decimal.RequireFromString("25.00")},
		{ID: uuid.New(), PersonID: f.alice.ID, Year: 2024, Month: 2, MealCost: decimal.RequireFromString("4.00")},
	}}
	otherRepo := &fakeOtherRepo{expenses: []model.OtherExpense{
		{ID: uuid.New(), PersonID: f.alice.ID, Year: 2024, Description: "union dues", Amount: decimal.RequireFromString("120.00")},
		{ID: uuid.New(), PersonID: f.alice.ID, Year: 2024, Description: "work boots", Amount: decimal.RequireFromString("35.55")},
	}}

	f.svc = NewSummaryService(
		personRepo, vehicleRepo, mileageRepo, mealRepo, otherRepo,
		&fakeScaleService{}, &fakeTxManager{}, deduction.DefaultMealCap(),
	)
	return f
}

func TestGetPersonSummary(t *testing.T) {
	f := newSummaryFixture()

	summary, err := f.svc.GetPersonSummary(context.Background(), f.alice.ID.String(), 2024)
	require.NoError(t, err)

	assert.Equal(t, f.alice.ID.String(), summary.PersonID)
	assert.Equal(t, 2024, summary.Year)
	require.Len(t, summary.VehicleSummaries, 1)
	assert.Equal(t, "Clio", summary.VehicleSummaries[0].VehicleName)
	assert.Equal(t, "1500.50", summary.VehicleSummaries[0].TotalKM)
	assert.Equal(t, "954.32", summary.MileageDeductionTotal)
	assert.Equal(t, "29.40", summary.MealsDeductionTotal)
	assert.Equal(t, "155.55", summary.OtherExpensesTotal)
	assert.Equal(t, "1139.27", summary.TotalDeduction)
}

func TestGetPersonSummary_NoEntries(t *testing.T) {
	f := newSummaryFixture()

	summary, err := f.svc.GetPersonSummary(context.Background(), f.bob.ID.String(), 2024)
	require.NoError(t, err)

	assert.Empty(t, summary.VehicleSummaries)
	assert.Equal(t, "0.00", summary.MileageDeductionTotal)
	assert.Equal(t, "0.00", summary.MealsDeductionTotal)
	assert.Equal(t, "0.00", summary.OtherExpensesTotal)
	assert.Equal(t, "0.00", summary.TotalDeduction)
}

func TestGetPersonSummary_Errors(t *testing.T) {
	f := newSummaryFixture()

	_, err := f.svc.GetPersonSummary(context.Background(), uuid.NewString(), 2024)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	_, err = f.svc.GetPersonSummary(context.Background(), "not-a-uuid", 2024)
	assert.Error(t, err)

	_, err = f.svc.GetPersonSummary(context.Background(), f.alice.ID.String(), 1999)
	assert.ErrorIs(t, err, deduction.ErrInvalidPeriod)
}

func TestGetPersonDetail(t *testing.T) {
	f := newSummaryFixture()

	detail, err := f.svc.GetPersonDetail(context.Background(), f.alice.ID.String(), 2024)
	require.NoError(t, err)

	assert.Equal(t, 2024, detail.Year)
	require.Len(t, detail.MileageEntries, 2, "only the requested year's entries appear")
	assert.Equal(t, "Clio", detail.MileageEntries[0].VehicleName)
	assert.Equal(t, "800.00", detail.MileageEntries[0].KM)

	require.Len(t, detail.MealExpenses, 3)
	assert.Equal(t, "10.00", detail.MealExpenses[0].DeductibleAmount)
	assert.Equal(t, "19.40", detail.MealExpenses[1].DeductibleAmount, "capped at the daily ceiling")
	assert.Equal(t, "0.00", detail.MealExpenses[2].DeductibleAmount, "below the daily floor")

	require.Len(t, detail.OtherExpenses, 2)
	assert.Equal(t, "union dues", detail.OtherExpenses[0].Description)

	assert.Equal(t, "1500.50", detail.MileageTotalKM)
	assert.Equal(t, "954.32", detail.MileageDeductionTotal)
	assert.Equal(t, "29.40", detail.MealsDeductionTotal)
	assert.Equal(t, "155.55", detail.OtherExpensesTotal)
	assert.Equal(t, "1139.27", detail.TotalDeduction)
}

func TestGetDashboard(t *testing.T) {
	f := newSummaryFixture()

	dashboard, err := f.svc.GetDashboard(context.Background(), 2024)
	require.NoError(t, err)

	assert.Equal(t, 2024, dashboard.Year)
	require.Len(t, dashboard.People, 2)
	assert.Equal(t, "Alice", dashboard.People[0].FirstName)
	assert.Equal(t, "Foyer Martin", dashboard.People[0].HouseholdName)
	assert.Equal(t, "1139.27", dashboard.People[0].TotalDeduction)
	assert.Equal(t, "0.00", dashboard.People[1].TotalDeduction)
	assert.Equal(t, "1139.27", dashboard.TotalDeduction)
}

func TestGetDashboard_InvalidYear(t *testing.T) {
	f := newSummaryFixture()

	_, err := f.svc.GetDashboard(context.Background(), 2101)
	assert.ErrorIs(t, err, deduction.ErrInvalidPeriod)
}
