package prediction

import (
	"fmt"
	"sort"
	"sync"

	"github.com/earlysignal/earlysignal/core"
	metricsvc "github.com/earlysignal/earlysignal/services/metrics"
)

// Source tells which path produced a probability estimate.
type Source string

const (
	SourceModel    Source = "model"
	SourceFallback Source = "fallback"
)

type (
	// Estimate is the outcome of a probability estimation attempt. Callers
	// can tell a model-derived probability from a rule-based one instead of
	// relying on silently swallowed errors.
	Estimate struct {
		Probability float64 `json:"probability"`
		Source      Source  `json:"source"`
	}

	// Result is the full scoring output persisted and returned per student.
	Result struct {
		DropoutProbability float64    `json:"dropout_probability"`
		RiskLevel          RiskLevel  `json:"risk_level"`
		Prediction         int        `json:"prediction"`
		RiskFactors        []string   `json:"risk_factors"`
		Confidence         Confidence `json:"confidence"`
		Recommendations    []string   `json:"recommendations"`
		Source             Source     `json:"probability_source"`
	}

	// Engine scores students through the trained classifier, falling back to
	// the deterministic rules when the model path fails. Artifacts are loaded
	// once on first use and cached for the process lifetime; construct one
	// Engine at startup and inject it everywhere.
	Engine struct {
		modelDir string
		logger   core.Logger

		once    sync.Once
		model   Model
		scaler  *StandardScaler
		order   []string
		loadErr error
	}
)

func NewEngine(modelDir string, logger core.Logger) *Engine {
	return &Engine{modelDir: modelDir, logger: logger}
}

// NewEngineFromArtifacts bypasses the artifact store; tests and tooling
// inject models directly.
func NewEngineFromArtifacts(model Model, scaler *StandardScaler, order []string, logger core.Logger) *Engine {
	e := &Engine{logger: logger, model: model, scaler: scaler, order: order}
	e.once.Do(func() {}) // artifacts provided, nothing to load
	return e
}

func (e *Engine) load() {
	e.order = loadFeatureOrder(e.modelDir)

	model, err := loadModel(e.modelDir)
	if err != nil {
		e.loadErr = err
		e.logger.Warn(fmt.Sprintf("classifier unavailable, using rule-based estimates: %v", err))
		return
	}
	e.model = model

	scaler, err := loadScaler(e.modelDir)
	if err != nil {
		e.loadErr = err
		e.logger.Warn(fmt.Sprintf("scaler unreadable, using rule-based estimates: %v", err))
		return
	}
	e.scaler = scaler
}

// FeatureOrder returns the schema the loaded model expects.
func (e *Engine) FeatureOrder() []string {
	e.once.Do(e.load)
	return e.order
}

// Estimate returns the dropout probability for the given features, rounded
// to 4 decimals. It never fails: any error on the model path degrades to the
// rule-based estimate.
func (e *Engine) Estimate(f StudentFeatures) Estimate {
	p, err := e.modelProbability(f)
	if err != nil {
		if e.logger != nil {
			e.logger.Warn(fmt.Sprintf("model prediction failed, falling back to rules: %v", err))
		}
		metricsvc.PredictionServed(string(SourceFallback))
		return Estimate{Probability: core.Round4(FallbackProbability(f)), Source: SourceFallback}
	}
	metricsvc.PredictionServed(string(SourceModel))
	return Estimate{Probability: core.Round4(p), Source: SourceModel}
}

func (e *Engine) modelProbability(f StudentFeatures) (float64, error) {
	e.once.Do(e.load)
	if e.loadErr != nil {
		return 0, e.loadErr
	}

	vec, err := Vectorize(f.values(), e.order)
	if err != nil {
		return 0, err
	}
	if e.scaler != nil {
		if vec, err = e.scaler.Transform(vec); err != nil {
			return 0, err
		}
	}

	if pm, ok := e.model.(ProbabilityModel); ok {
		return pm.PredictProba(vec)
	}
	// no probability interface; use the binary decision as a 0/1 probability
	decision, err := e.model.Predict(vec)
	if err != nil {
		return 0, err
	}
	return float64(decision), nil
}

// Predict runs the whole scoring pipeline: probability, risk level, factors,
// confidence and recommendations. The error return is always nil; it is kept
// so fakes can exercise failure paths in batch callers.
func (e *Engine) Predict(f StudentFeatures) (Result, error) {
	est := e.Estimate(f)
	level := RiskLevelFor(est.Probability, f)

	var decision int
	if est.Probability > 0.5 {
		decision = 1
	}

	return Result{
		DropoutProbability: est.Probability,
		RiskLevel:          level,
		Prediction:         decision,
		RiskFactors:        IdentifyRiskFactors(f),
		Confidence:         ConfidenceFor(est.Probability),
		Recommendations:    GenerateRecommendations(f, level),
		Source:             est.Source,
	}, nil
}

// Importance is a feature's share of the model's total absolute weight.
type Importance struct {
	Feature string  `json:"feature"`
	Weight  float64 `json:"weight"`
}

// FeatureImportance ranks schema features by normalized absolute weight,
// descending. Models without exposed weights are reported as unsupported.
func (e *Engine) FeatureImportance() ([]Importance, error) {
	e.once.Do(e.load)
	if e.loadErr != nil {
		return nil, e.loadErr
	}

	wm, ok := e.model.(WeightedModel)
	if !ok {
		return nil, fmt.Errorf("model does not expose feature weights")
	}
	weights := wm.FeatureWeights()
	if len(weights) != len(e.order) {
		return nil, fmt.Errorf("model has %d weights, schema has %d features", len(weights), len(e.order))
	}

	var total float64
	for _, w := range weights {
		if w < 0 {
			w = -w
		}
		total += w
	}

	importances := make([]Importance, len(weights))
	for i, w := range weights {
		if w < 0 {
			w = -w
		}
		if total > 0 {
			w /= total
		}
		importances[i] = Importance{Feature: e.order[i], Weight: core.Round4(w)}
	}
	sort.SliceStable(importances, func(i, j int) bool { return importances[i].Weight > importances[j].Weight })
	return importances, nil
}
