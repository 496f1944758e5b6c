package service

import (
	"context"
	"fmt"

	"fraisreels/internal/deduction"
	"fraisreels/internal/model"
	"fraisreels/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// --- DTOs ---

// Field names below are part of the API contract: the presentation layer
// renders them directly.

type VehicleSummaryResponse struct {
	VehicleID   string `json:"vehicle_id"`
	VehicleName string `json:"vehicle_name"`
	PowerCV     int    `json:"power_cv"`
	TotalKM     string `json:"total_km"`
	Deduction   string `json:"deduction"`
}

type PersonYearSummaryResponse struct {
	PersonID              string                   `json:"person_id"`
	Year                  int                      `json:"year"`
	VehicleSummaries      []VehicleSummaryResponse `json:"vehicle_summaries"`
	MileageDeductionTotal string                   `json:"mileage_deduction_total"`
	MealsDeductionTotal   string                   `json:"meals_deduction_total"`
	OtherExpensesTotal    string                   `json:"other_expenses_total"`
	TotalDeduction        string                   `json:"total_deduction"`
}

type MileageEntryDetail struct {
	ID          string `json:"id"`
	PersonID    string `json:"person_id"`
	VehicleID   string `json:"vehicle_id"`
	VehicleName string `json:"vehicle_name"`
	Year        int    `json:"year"`
	Month       int    `json:"month"`
	KM          string `json:"km"`
}

type MealExpenseDetail struct {
	ID               string `json:"id"`
	PersonID         string `json:"person_id"`
	Year             int    `json:"year"`
	Month            int    `json:"month"`
	MealCost         string `json:"meal_cost"`
	DeductibleAmount string `json:"deductible_amount"`
}

type OtherExpenseDetail struct {
	ID             string  `json:"id"`
	PersonID       string  `json:"person_id"`
	Year           int     `json:"year"`
	Description    string  `json:"description"`
	Amount         string  `json:"amount"`
	AttachmentPath *string `json:"attachment_path"`
}

type PersonYearDetailResponse struct {
	PersonID              string                   `json:"person_id"`
	Year                  int                      `json:"year"`
	MileageEntries        []MileageEntryDetail     `json:"mileage_entries"`
	MealExpenses          []MealExpenseDetail      `json:"meal_expenses"`
	OtherExpenses         []OtherExpenseDetail     `json:"other_expenses"`
	VehicleSummaries      []VehicleSummaryResponse `json:"vehicle_summaries"`
	MileageTotalKM        string                   `json:"mileage_total_km"`
	MileageDeductionTotal string                   `json:"mileage_deduction_total"`
	MealsDeductionTotal   string                   `json:"meals_deduction_total"`
	OtherExpensesTotal    string                   `json:"other_expenses_total"`
	TotalDeduction        string                   `json:"total_deduction"`
}

type DashboardPersonResponse struct {
	PersonID              string                   `json:"person_id"`
	HouseholdName         string                   `json:"household_name"`
	FirstName             string                   `json:"first_name"`
	LastName              string                   `json:"last_name"`
	VehicleSummaries      []VehicleSummaryResponse `json:"vehicle_summaries"`
	MileageDeductionTotal string                   `json:"mileage_deduction_total"`
	MealsDeductionTotal   string                   `json:"meals_deduction_total"`
	OtherExpensesTotal    string                   `json:"other_expenses_total"`
	TotalDeduction        string                   `json:"total_deduction"`
}

type DashboardResponse struct {
	Year           int                       `json:"year"`
	People         []DashboardPersonResponse `json:"people"`
	TotalDeduction string                    `json:"total_deduction"`
}

// --- Interface ---

type SummaryService interface {
	GetPersonSummary(ctx context.Context, personID string, year int) (PersonYearSummaryResponse, error)
	GetPersonDetail(ctx context.Context, personID string, year int) (PersonYearDetailResponse, error)
	GetDashboard(ctx context.Context, year int) (DashboardResponse, error)
}

type summaryService struct {
	personRepo   repository.PersonRepository
	vehicleRepo  repository.VehicleRepository
	mileageRepo  repository.MileageRepository
	mealRepo     repository.MealRepository
	otherRepo    repository.OtherExpenseRepository
	scaleService ScaleService
	txManager    repository.TransactionManager
	mealCap      deduction.MealCap
}

func NewSummaryService(
	personRepo repository.PersonRepository,
	vehicleRepo repository.VehicleRepository,
	mileageRepo repository.MileageRepository,
	mealRepo repository.MealRepository,
	otherRepo repository.OtherExpenseRepository,
	scaleService ScaleService,
	txManager repository.TransactionManager,
	mealCap deduction.MealCap,
) SummaryService {
	return &summaryService{
		personRepo:   personRepo,
		vehicleRepo:  vehicleRepo,
		mileageRepo:  mileageRepo,
		mealRepo:     mealRepo,
		otherRepo:    otherRepo,
		scaleService: scaleService,
		txManager:    txManager,
		mealCap:      mealCap,
	}
}

// personYearData is one person's rows plus the derived detail, fetched in a
// single transaction so the computation never sees a half-applied edit.
type personYearData struct {
	mileage []model.MileageEntry
	meals   []model.MealExpense
	others  []model.OtherExpense
	detail  deduction.AnnualDetail
}

func (s *summaryService) computePersonYear(ctx context.Context, personID uuid.UUID, year int) (personYearData, error) {
	var data personYearData

	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		scale, err := s.scaleService.Snapshot(txCtx)
		if err != nil {
			return err
		}

		vehicles, err := s.vehicleRepo.ListByPerson(txCtx, personID)
		if err != nil {
			return fmt.Errorf("failed to fetch vehicles: %w", err)
		}
		data.mileage, err = s.mileageRepo.ListByPersonYear(txCtx, personID, year)
		if err != nil {
			return fmt.Errorf("failed to fetch mileage entries: %w", err)
		}
		data.meals, err = s.mealRepo.ListByPersonYear(txCtx, personID, year)
		if err != nil {
			return fmt.Errorf("failed to fetch meal expenses: %w", err)
		}
		data.others, err = s.otherRepo.ListByPersonYear(txCtx, personID, year)
		if err != nil {
			return fmt.Errorf("failed to fetch other expenses: %w", err)
		}

		vehicleInfos := make([]deduction.VehicleInfo, 0, len(vehicles))
		for _, v := range vehicles {
			vehicleInfos = append(vehicleInfos, deduction.VehicleInfo{ID: v.ID, Name: v.Name, PowerCV: v.PowerCV})
		}
		mileageRows := make([]deduction.MileageRow, 0, len(data.mileage))
		for _, e := range data.mileage {
			mileageRows = append(mileageRows, deduction.MileageRow{VehicleID: e.VehicleID, Year: e.Year, Month: e.Month, KM: e.KM})
		}
		mealRows := make([]deduction.MealRow, 0, len(data.meals))
		for _, e := range data.meals {
			mealRows = append(mealRows, deduction.MealRow{Year: e.Year, Month: e.Month, Cost: e.MealCost})
		}
		otherRows := make([]deduction.OtherRow, 0, len(data.others))
		for _, e := range data.others {
			otherRows = append(otherRows, deduction.OtherRow{Description: e.Description, Amount: e.Amount})
		}

		data.detail, err = deduction.ComputeAnnualDetail(year, vehicleInfos, mileageRows, mealRows, otherRows, scale, s.mealCap)
		if err != nil {
			return fmt.Errorf("failed to compute annual detail: %w", err)
		}
		return nil
	})
	if err != nil {
		return personYearData{}, err
	}
	return data, nil
}

// --- Implementation ---

func (s *summaryService) GetPersonSummary(ctx context.Context, personID string, year int) (PersonYearSummaryResponse, error) {
	id, err := uuid.Parse(personID)
	if err != nil {
		return PersonYearSummaryResponse{}, fmt.Errorf("invalid person id: %w", err)
	}
	if err := deduction.ValidatePeriod(year, 1); err != nil {
		return PersonYearSummaryResponse{}, err
	}
	if _, err := s.personRepo.FindByID(ctx, id); err != nil {
		return PersonYearSummaryResponse{}, fmt.Errorf("person not found: %w", err)
	}

	data, err := s.computePersonYear(ctx, id, year)
	if err != nil {
		return PersonYearSummaryResponse{}, err
	}

	return PersonYearSummaryResponse{
		PersonID:              personID,
		Year:                  year,
		VehicleSummaries:      toVehicleSummaries(data.detail),
		MileageDeductionTotal: data.detail.MileageDeductionTotal.StringFixed(2),
		MealsDeductionTotal:   data.detail.MealsDeductionTotal.StringFixed(2),
		OtherExpensesTotal:    data.detail.OtherExpensesTotal.StringFixed(2),
		TotalDeduction:        data.detail.TotalDeduction.StringFixed(2),
	}, nil
}

func (s *summaryService) GetPersonDetail(ctx context.Context, personID string, year int) (PersonYearDetailResponse, error) {
	id, err := uuid.Parse(personID)
	if err != nil {
		return PersonYearDetailResponse{}, fmt.Errorf("invalid person id: %w", err)
	}
	if err := deduction.ValidatePeriod(year, 1); err != nil {
		return PersonYearDetailResponse{}, err
	}
	if _, err := s.personRepo.FindByID(ctx, id); err != nil {
		return PersonYearDetailResponse{}, fmt.Errorf("person not found: %w", err)
	}

	data, err := s.computePersonYear(ctx, id, year)
	if err != nil {
		return PersonYearDetailResponse{}, err
	}

	vehicleNames := make(map[uuid.UUID]string, len(data.detail.VehicleDeductions))
	for _, v := range data.detail.VehicleDeductions {
		vehicleNames[v.VehicleID] = v.VehicleName
	}

	mileageEntries := make([]MileageEntryDetail, 0, len(data.mileage))
	for _, e := range data.mileage {
		mileageEntries = append(mileageEntries, MileageEntryDetail{
			ID:          e.ID.String(),
			PersonID:    e.PersonID.String(),
			VehicleID:   e.VehicleID.String(),
			VehicleName: vehicleNames[e.VehicleID],
			Year:        e.Year,
			Month:       e.Month,
			KM:          e.KM.StringFixed(2),
		})
	}

	mealExpenses := make([]MealExpenseDetail, 0, len(data.meals))
	for _, e := range data.meals {
		deductible, mealErr := deduction.ResolveMeal(e.MealCost, s.mealCap)
		if mealErr != nil {
			return PersonYearDetailResponse{}, fmt.Errorf("meal expense %s: %w", e.ID, mealErr)
		}
		mealExpenses = append(mealExpenses, MealExpenseDetail{
			ID:               e.ID.String(),
			PersonID:         e.PersonID.String(),
			Year:             e.Year,
			Month:            e.Month,
			MealCost:         e.MealCost.StringFixed(2),
			DeductibleAmount: deductible.StringFixed(2),
		})
	}

	otherExpenses := make([]OtherExpenseDetail, 0, len(data.others))
	for _, e := range data.others {
		otherExpenses = append(otherExpenses, OtherExpenseDetail{
			ID:             e.ID.String(),
			PersonID:       e.PersonID.String(),
			Year:           e.Year,
			Description:    e.Description,
			Amount:         e.Amount.StringFixed(2),
			AttachmentPath: e.AttachmentPath,
		})
	}

	return PersonYearDetailResponse{
		PersonID:              personID,
		Year:                  year,
		MileageEntries:        mileageEntries,
		MealExpenses:          mealExpenses,
		OtherExpenses:         otherExpenses,
		VehicleSummaries:      toVehicleSummaries(data.detail),
		MileageTotalKM:        data.detail.MileageTotalKM.StringFixed(2),
		MileageDeductionTotal: data.detail.MileageDeductionTotal.StringFixed(2),
		MealsDeductionTotal:   data.detail.MealsDeductionTotal.StringFixed(2),
		OtherExpensesTotal:    data.detail.OtherExpensesTotal.StringFixed(2),
		TotalDeduction:        data.detail.TotalDeduction.StringFixed(2),
	}, nil
}

func (s *summaryService) GetDashboard(ctx context.Context, year int) (DashboardResponse, error) {
	if err := deduction.ValidatePeriod(year, 1); err != nil {
		return DashboardResponse{}, err
	}

	people, err := s.personRepo.ListAll(ctx)
	if err != nil {
		return DashboardResponse{}, fmt.Errorf("failed to fetch persons: %w", err)
	}

	dashboard := DashboardResponse{Year: year, People: make([]DashboardPersonResponse, 0, len(people))}
	grandTotal := decimal.Zero
	for _, person := range people {
		data, computeErr := s.computePersonYear(ctx, person.ID, year)
		if computeErr != nil {
			return DashboardResponse{}, fmt.Errorf("person %s: %w", person.ID, computeErr)
		}

		grandTotal = grandTotal.Add(data.detail.TotalDeduction)
		dashboard.People = append(dashboard.People, DashboardPersonResponse{
			PersonID:              person.ID.String(),
			HouseholdName:         person.Household.Name,
			FirstName:             person.FirstName,
			LastName:              person.LastName,
			VehicleSummaries:      toVehicleSummaries(data.detail),
			MileageDeductionTotal: data.detail.MileageDeductionTotal.StringFixed(2),
			MealsDeductionTotal:   data.detail.MealsDeductionTotal.StringFixed(2),
			OtherExpensesTotal:    data.detail.OtherExpensesTotal.StringFixed(2),
			TotalDeduction:        data.detail.TotalDeduction.StringFixed(2),
		})
	}

	dashboard.TotalDeduction = grandTotal.Round(2).StringFixed(2)
	return dashboard, nil
}

// --- Helpers ---

func toVehicleSummaries(detail deduction.AnnualDetail) []VehicleSummaryResponse {
	summaries := make([]VehicleSummaryResponse, 0, len(detail.VehicleDeductions))
	for _, v := range detail.VehicleDeductions {
		summaries = append(summaries, VehicleSummaryResponse{
			VehicleID:   v.VehicleID.String(),
			VehicleName: v.VehicleName,
			PowerCV:     v.PowerCV,
			TotalKM:     v.TotalKM.StringFixed(2),
			Deduction:   v.Deduction.StringFixed(2),
		})
	}
	return summaries
}
