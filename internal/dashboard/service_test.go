package dashboard

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/advisory-cli/internal/model"
)

// fakeStore is an in-memory Store for service tests.
type fakeStore struct {
	clients map[string]model.Client
	records map[string]map[model.ModuleKey]model.FormRecord
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		clients: make(map[string]model.Client),
		records: make(map[string]map[model.ModuleKey]model.FormRecord),
	}
}

func (f *fakeStore) addClient(id, name string) {
	f.clients[id] = model.Client{ID: id, Name: name, CreatedAt: time.Now().UTC()}
}

func (f *fakeStore) addRecord(clientID string, module model.ModuleKey, data string) {
	if f.records[clientID] == nil {
		f.records[clientID] = make(map[model.ModuleKey]model.FormRecord)
	}
	f.records[clientID][module] = model.FormRecord{
		ID: "rec-" + string(module), ClientID: clientID, Module: module,
		Data: json.RawMessage(data), IsCompleted: true,
	}
}

func (f *fakeStore) CreateClient(_ context.Context, name, email string) (*model.Client, error) {
	c := model.Client{ID: name, Name: name, Email: email}
	f.clients[c.ID] = c
	return &c, nil
}

func (f *fakeStore) GetClient(_ context.Context, clientID string) (*model.Client, error) {
	c, ok := f.clients[clientID]
	if !ok {
		return nil, eris.Errorf("client %s not found", clientID)
	}
	return &c, nil
}

func (f *fakeStore) ListClients(_ context.Context) ([]model.Client, error) {
	var out []model.Client
	for _, c := range f.clients {
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeStore) UpsertRecord(_ context.Context, clientID string, module model.ModuleKey, data json.RawMessage, completed bool) (*model.FormRecord, error) {
	f.addRecord(clientID, module, string(data))
	rec := f.records[clientID][module]
	rec.IsCompleted = completed
	return &rec, nil
}

func (f *fakeStore) GetRecord(_ context.Context, clientID string, module model.ModuleKey) (*model.FormRecord, error) {
	rec, ok := f.records[clientID][module]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (f *fakeStore) ListRecords(_ context.Context, clientID string) ([]model.FormRecord, error) {
	var out []model.FormRecord
	for _, r := range f.records[clientID] {
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeStore) ModuleFlags(_ context.Context, clientID string) (model.ModuleFlags, error) {
	flags := make(model.ModuleFlags)
	for module := range f.records[clientID] {
		flags[module] = true
	}
	return flags, nil
}

func (f *fakeStore) Migrate(context.Context) error { return nil }
func (f *fakeStore) Close() error                  { return nil }

func TestService_Summary(t *testing.T) {
	t.Parallel()

	st := newFakeStore()
	st.addClient("c1", "Asha Verma")
	st.addRecord("c1", "questionnaire", `{"riskProfile": "moderate"}`)
	st.addRecord("c1", "financialGoals", `{"goals": []}`)
	st.addRecord("c1", "netWorth", `{
		"assets": {
			"demand_deposits": {"savings": {"SBI": "1,00,000"}},
			"liquid_assets": {"funds": {"Liquid Fund": "2,00,000"}},
			"large_cap_equity": {"direct": {"Index Fund": {"value": "5,00,000", "percent": "60"}}}
		},
		"liabilities": {
			"current_liabilities": {"cards": {"Credit Card Dues": "50,000"}}
		}
	}`)
	st.addRecord("c1", "cashFlow", `{
		"income": {"employment_income": {"salary": {"Take-Home Salary": "1,00,000"}}},
		"expenses": {
			"housing": {"rent": {"Rent": "30,000"}},
			"loan_payments": {"emi": {"Car EMI": "20,000"}}
		}
	}`)
	st.addRecord("c1", "medicalInsurance", `{
		"accidentDetails": [{"existingCover": "5,00,000"}],
		"healthDetails": [{"existingHealthCover": "3,00,000"}]
	}`)

	svc := NewService(st, nil)
	summary, err := svc.Summary(context.Background(), "c1")
	require.NoError(t, err)

	assert.Equal(t, 800000.0, summary.NetWorth.TotalAssets)
	assert.Equal(t, 50000.0, summary.NetWorth.TotalLiabilities)
	assert.Equal(t, 750000.0, summary.NetWorth.NetWorth)

	assert.Equal(t, 100000.0, summary.CashFlow.MonthlyIncome)
	assert.Equal(t, 50000.0, summary.CashFlow.MonthlyExpenses)
	assert.Equal(t, 50000.0, summary.CashFlow.NetCashFlow)

	assert.Equal(t, 800000.0, summary.InsuranceCover)

	// questionnaire, financialGoals, netWorth, cashFlow, medicalInsurance done.
	assert.Equal(t, 33, summary.Progress.Percent)
	assert.Equal(t, model.ModuleKey("mutualFunds"), summary.Progress.Next)

	require.Len(t, summary.AssetSections, 9)
	assert.Equal(t, "Demand Deposits", summary.AssetSections[0].Label)
	assert.Equal(t, 100000.0, summary.AssetSections[0].Total)

	byKind := make(map[model.KpiKind]Metric)
	for _, m := range summary.Metrics {
		byKind[m.Kind] = m
	}

	// Savings rate 50000/100000 = 0.5: gauge 50, good.
	assert.InDelta(t, 50, byKind[model.KindSavingsRate].Gauge.Value, 1e-9)
	assert.Equal(t, model.TierGood, byKind[model.KindSavingsRate].Gauge.Tier)

	// Debt to income 20000/100000 = 0.2: boundary good.
	assert.InDelta(t, 20, byKind[model.KindDebtToIncome].Gauge.Value, 1e-9)
	assert.Equal(t, model.TierGood, byKind[model.KindDebtToIncome].Gauge.Tier)

	// Runway: 300000 liquid / 50000 monthly = 6 months: good.
	assert.InDelta(t, 50, byKind[model.KindEmergencyRunway].Gauge.Value, 1e-9)
	assert.Equal(t, model.TierGood, byKind[model.KindEmergencyRunway].Gauge.Tier)

	assert.Equal(t, model.TierNone, byKind[model.KindNetWorth].Gauge.Tier)
	assert.Equal(t, 750000.0, byKind[model.KindNetWorth].Raw)
}

func TestService_Summary_BrandNewClient(t *testing.T) {
	t.Parallel()

	st := newFakeStore()
	st.addClient("c1", "New Client")

	summary, err := NewService(st, nil).Summary(context.Background(), "c1")
	require.NoError(t, err)

	assert.Equal(t, model.NetWorth{}, summary.NetWorth)
	assert.Equal(t, model.CashFlow{}, summary.CashFlow)
	assert.Zero(t, summary.InsuranceCover)
	assert.Zero(t, summary.Progress.Percent)
	assert.Equal(t, model.ModuleKey("questionnaire"), summary.Progress.Next)
	assert.Nil(t, summary.AssetSections)

	// Ratios degrade to zero with no income, never divide-by-zero.
	for _, m := range summary.Metrics {
		assert.GreaterOrEqual(t, m.Gauge.Value, 0.0)
		assert.LessOrEqual(t, m.Gauge.Value, 100.0)
	}
}

func TestService_Summary_MalformedRecordRendersZeros(t *testing.T) {
	t.Parallel()

	st := newFakeStore()
	st.addClient("c1", "Asha Verma")
	// assets as an array cannot decode into a Statement.
	st.addRecord("c1", "netWorth", `{"assets": ["not", "a", "statement"]}`)

	summary, err := NewService(st, nil).Summary(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, model.NetWorth{}, summary.NetWorth)

	// The record still exists, so progress counts it.
	assert.Equal(t, 1, summary.Progress.Completed)
}

func TestService_Summary_UnknownClient(t *testing.T) {
	t.Parallel()

	_, err := NewService(newFakeStore(), nil).Summary(context.Background(), "ghost")
	require.Error(t, err)
}

func TestService_Progress(t *testing.T) {
	t.Parallel()

	st := newFakeStore()
	st.addClient("c1", "Asha Verma")
	st.addRecord("c1", "questionnaire", `{}`)
	st.addRecord("c1", "financialGoals", `{}`)

	p, err := NewService(st, nil).Progress(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, 13, p.Percent)
	assert.Equal(t, model.ModuleKey("netWorth"), p.Next)
}
