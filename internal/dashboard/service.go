// Package dashboard assembles the client-facing summary: it fetches a
// client's form documents from the store, runs the aggregation engine over
// them, and returns the derived figures, progress, and KPI gauges.
package dashboard

import (
	"context"
	"encoding/json"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/advisory-cli/internal/engine"
	"github.com/sells-group/advisory-cli/internal/kpi"
	"github.com/sells-group/advisory-cli/internal/model"
	"github.com/sells-group/advisory-cli/internal/progress"
	"github.com/sells-group/advisory-cli/internal/store"
)

// Service computes dashboard summaries from stored form documents.
type Service struct {
	store store.Store
	cat   *model.Catalog
}

// NewService creates a Service. A nil catalogue falls back to the built-in one.
func NewService(st store.Store, cat *model.Catalog) *Service {
	if cat == nil {
		cat = model.DefaultCatalog()
	}
	return &Service{store: st, cat: cat}
}

// Metric is one KPI with its normalized gauge reading.
type Metric struct {
	model.KPI
	Gauge kpi.Gauge `json:"gauge"`
}

// Summary is the full dashboard payload for one client.
type Summary struct {
	Client            model.Client           `json:"client"`
	NetWorth          model.NetWorth         `json:"net_worth"`
	CashFlow          model.CashFlow         `json:"cash_flow"`
	InsuranceCover    float64                `json:"insurance_cover"`
	AssetSections     []engine.SectionFigure `json:"asset_sections"`
	LiabilitySections []engine.SectionFigure `json:"liability_sections"`
	Progress          progress.Progress      `json:"progress"`
	Metrics           []Metric               `json:"metrics"`
}

// Summary builds the dashboard payload for clientID. Missing or malformed
// form documents degrade to zero figures; only store access and unknown
// KPI kinds can fail.
func (s *Service) Summary(ctx context.Context, clientID string) (*Summary, error) {
	client, err := s.store.GetClient(ctx, clientID)
	if err != nil {
		return nil, err
	}

	nwDoc := decodeRecord[model.NetWorthDoc](ctx, s.store, clientID, "netWorth")
	cfDoc := decodeRecord[model.CashFlowDoc](ctx, s.store, clientID, "cashFlow")
	insDoc := decodeRecord[model.InsuranceDoc](ctx, s.store, clientID, "medicalInsurance")

	flags, err := s.store.ModuleFlags(ctx, clientID)
	if err != nil {
		return nil, err
	}

	netWorth := engine.DeriveNetWorth(nwDoc, s.cat)
	cashFlow := engine.DeriveCashFlow(cfDoc, s.cat)

	out := &Summary{
		Client:         *client,
		NetWorth:       netWorth,
		CashFlow:       cashFlow,
		InsuranceCover: engine.DeriveInsuranceCover(insDoc),
		Progress:       progress.Compute(flags, s.cat),
	}
	if nwDoc != nil {
		out.AssetSections = engine.SectionTotals(nwDoc.Assets, s.cat.AssetSections)
		out.LiabilitySections = engine.SectionTotals(nwDoc.Liabilities, s.cat.LiabilitySections)
	}

	metrics, err := s.metrics(netWorth, cashFlow, nwDoc, cfDoc)
	if err != nil {
		return nil, err
	}
	out.Metrics = metrics

	zap.L().Debug("dashboard: summary computed",
		zap.String("client_id", clientID),
		zap.Float64("net_worth", netWorth.NetWorth),
		zap.Float64("net_cash_flow", cashFlow.NetCashFlow),
		zap.Int("progress_percent", out.Progress.Percent),
	)
	return out, nil
}

// Progress computes just the completion state, for the wizard endpoint.
func (s *Service) Progress(ctx context.Context, clientID string) (progress.Progress, error) {
	flags, err := s.store.ModuleFlags(ctx, clientID)
	if err != nil {
		return progress.Progress{}, err
	}
	return progress.Compute(flags, s.cat), nil
}

// metrics derives the raw KPI values the dashboard can compute from
// statement figures and normalizes each onto its gauge.
func (s *Service) metrics(nw model.NetWorth, cf model.CashFlow, nwDoc *model.NetWorthDoc, cfDoc *model.CashFlowDoc) ([]Metric, error) {
	kpis := []model.KPI{
		{Kind: model.KindNetWorth, Label: "Net Worth", Raw: nw.NetWorth},
		{Kind: model.KindCashflow, Label: "Monthly Cash Flow", Raw: cf.NetCashFlow},
		{Kind: model.KindSavingsRate, Label: "Savings Rate", Raw: ratio(cf.NetCashFlow, cf.MonthlyIncome)},
		{Kind: model.KindDebtToIncome, Label: "Debt to Income", Raw: ratio(monthlyLoanPayments(cfDoc), cf.MonthlyIncome)},
		{Kind: model.KindEmergencyRunway, Label: "Emergency Runway", Raw: ratio(s.liquidAssets(nwDoc), cf.MonthlyExpenses)},
	}

	metrics := make([]Metric, len(kpis))
	for i, k := range kpis {
		gauge, err := kpi.Normalize(k.Kind, k.Raw)
		if err != nil {
			return nil, eris.Wrap(err, "dashboard: normalize metric")
		}
		metrics[i] = Metric{KPI: k, Gauge: gauge}
	}
	return metrics, nil
}

// liquidAssets totals the readily available asset sections: demand
// deposits plus highly liquid assets.
func (s *Service) liquidAssets(doc *model.NetWorthDoc) float64 {
	if doc == nil {
		return 0
	}
	return engine.GrandTotal(doc.Assets, []string{"demand_deposits", "liquid_assets"})
}

// monthlyLoanPayments reads the loan-payment expense section, the monthly
// debt-service figure behind the debt-to-income ratio.
func monthlyLoanPayments(doc *model.CashFlowDoc) float64 {
	if doc == nil {
		return 0
	}
	return engine.SectionTotal(doc.Expenses["loan_payments"])
}

// ratio divides num by den, yielding 0 for an empty denominator so a
// client with no income yet still renders.
func ratio(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}

// decodeRecord fetches one form document and decodes it into T. A missing
// record, store error, or malformed document yields nil: the engine treats
// nil documents as all-zero, and the dashboard must always render.
func decodeRecord[T any](ctx context.Context, st store.Store, clientID string, module model.ModuleKey) *T {
	rec, err := st.GetRecord(ctx, clientID, module)
	if err != nil {
		zap.L().Warn("dashboard: fetch record failed",
			zap.String("client_id", clientID),
			zap.String("module", string(module)),
			zap.Error(err),
		)
		return nil
	}
	if rec == nil {
		return nil
	}
	var doc T
	if err := json.Unmarshal(rec.Data, &doc); err != nil {
		zap.L().Warn("dashboard: malformed record, rendering zeros",
			zap.String("client_id", clientID),
			zap.String("module", string(module)),
			zap.Error(err),
		)
		return nil
	}
	return &doc
}
