package student

import (
	"fmt"
	"io"
	"time"

	"github.com/pkg/errors"

	"github.com/earlysignal/earlysignal/core"
	"github.com/earlysignal/earlysignal/core/prediction"
	metricsvc "github.com/earlysignal/earlysignal/services/metrics"
)

var ErrNotFound = errors.New("student not found")

type (
	Repository interface {
		QueryAllStudents() ([]Student, error)
		// FilterStudents applies AND operation on available QueryFilter fields.
		FilterStudents(filter QueryFilter) ([]Student, error)
		GetStudentByStudentID(studentID string) (Student, error)
		// UpsertStudent writes the full attribute set keyed by student_id.
		UpsertStudent(s Student) (Student, error)
		// UpdateStudentRisk writes back only the scoring triple.
		UpdateStudentRisk(studentID string, upd RiskUpdate) error
		AverageDropoutProbability() (float64, error)
		CountStudents(filter QueryFilter) (int64, error)
	}

	// Estimator is the scoring pipeline the service drives; *prediction.Engine
	// satisfies it and tests inject fakes.
	Estimator interface {
		Predict(f prediction.StudentFeatures) (prediction.Result, error)
	}

	Service struct {
		repo      Repository
		estimator Estimator
		alerter   *Alerter
		logger    core.Logger
	}
)

func NewService(repo Repository, estimator Estimator, alerter *Alerter, logger core.Logger) *Service {
	return &Service{repo: repo, estimator: estimator, alerter: alerter, logger: logger}
}

func (svc *Service) QueryAll() ([]Student, error) {
	return svc.repo.QueryAllStudents()
}

func (svc *Service) Filter(filter QueryFilter) ([]Student, error) {
	if filter.IsZero() {
		return svc.repo.QueryAllStudents()
	}
	return svc.repo.FilterStudents(filter)
}

func (svc *Service) GetByStudentID(studentID string) (Student, error) {
	return svc.repo.GetStudentByStudentID(core.CleanString(studentID))
}

// Predict scores one set of features without touching the store. When
// studentID is non-empty the scoring triple is also persisted for that
// record; a persistence failure surfaces to the caller.
func (svc *Service) Predict(f prediction.StudentFeatures, studentID string) (prediction.Result, error) {
	res, err := svc.estimator.Predict(f)
	if err != nil {
		return prediction.Result{}, errors.Wrap(err, "scoring student")
	}
	if studentID != "" {
		upd := RiskUpdate{
			DropoutProbability: res.DropoutProbability,
			RiskLevel:          res.RiskLevel,
			RiskFactors:        res.RiskFactors,
			AnalyzedAt:         time.Now().UTC(),
		}
		if err := svc.repo.UpdateStudentRisk(studentID, upd); err != nil {
			return prediction.Result{}, errors.Wrapf(err, "persisting risk for student %s", studentID)
		}
	}
	return res, nil
}

// AnalysisReport is the partial-success summary every batch operation
// returns; batches never fail all-or-nothing.
type AnalysisReport struct {
	Total    int `json:"total"`
	Analyzed int `json:"analyzed"`
	Failed   int `json:"failed"`
}

// AnalyzeAll scores every student in the store and writes the risk triple
// back per record. A failure on one record is logged and skipped; it never
// aborts the batch.
func (svc *Service) AnalyzeAll() (AnalysisReport, error) {
	students, err := svc.repo.QueryAllStudents()
	if err != nil {
		return AnalysisReport{}, errors.Wrap(err, "querying students for analysis")
	}

	report := AnalysisReport{Total: len(students)}
	for _, s := range students {
		if err := svc.analyzeOne(s); err != nil {
			report.Failed++
			metricsvc.StudentAnalyzed("failed")
			svc.logger.Error(fmt.Sprintf("analyzing student %s: %v", s.StudentID, err), err)
			continue
		}
		report.Analyzed++
		metricsvc.StudentAnalyzed("analyzed")
	}
	return report, nil
}

func (svc *Service) analyzeOne(s Student) error {
	res, err := svc.estimator.Predict(s.Features())
	if err != nil {
		return err
	}
	upd := RiskUpdate{
		DropoutProbability: res.DropoutProbability,
		RiskLevel:          res.RiskLevel,
		RiskFactors:        res.RiskFactors,
		AnalyzedAt:         time.Now().UTC(),
	}
	return svc.repo.UpdateStudentRisk(s.StudentID, upd)
}

// UploadReport summarizes a CSV ingestion run.
type UploadReport struct {
	Total    int `json:"total"`
	Ingested int `json:"ingested"`
	Skipped  int `json:"skipped"` // rows without a student_id
	Failed   int `json:"failed"`
}

// IngestCSV parses an uploaded CSV stream, applies column defaults and
// clamps, upserts each row keyed by student_id and scores it. Per-row
// persistence failures are isolated like any other batch.
func (svc *Service) IngestCSV(r io.Reader) (UploadReport, error) {
	students, skipped, err := ParseCSV(r)
	if err != nil {
		return UploadReport{}, err
	}

	report := UploadReport{Total: len(students) + skipped, Skipped: skipped}
	for _, s := range students {
		saved, err := svc.repo.UpsertStudent(s)
		if err != nil {
			report.Failed++
			svc.logger.Error(fmt.Sprintf("upserting student %s: %v", s.StudentID, err), err)
			continue
		}
		if err := svc.analyzeOne(saved); err != nil {
			report.Failed++
			svc.logger.Error(fmt.Sprintf("analyzing student %s: %v", s.StudentID, err), err)
			continue
		}
		report.Ingested++
	}
	return report, nil
}

// RiskStats is the aggregate risk picture across the store.
type RiskStats struct {
	Total              int64   `json:"total_students"`
	High               int64   `json:"high_risk"`
	Medium             int64   `json:"medium_risk"`
	Low                int64   `json:"low_risk"`
	AverageProbability float64 `json:"average_dropout_probability"`
}

func (svc *Service) Stats() (RiskStats, error) {
	var stats RiskStats
	var err error

	if stats.Total, err = svc.repo.CountStudents(QueryFilter{}); err != nil {
		return RiskStats{}, errors.Wrap(err, "counting students")
	}
	if stats.High, err = svc.repo.CountStudents(QueryFilter{RiskLevel: prediction.RiskHigh}); err != nil {
		return RiskStats{}, errors.Wrap(err, "counting high risk students")
	}
	if stats.Medium, err = svc.repo.CountStudents(QueryFilter{RiskLevel: prediction.RiskMedium}); err != nil {
		return RiskStats{}, errors.Wrap(err, "counting medium risk students")
	}
	if stats.Low, err = svc.repo.CountStudents(QueryFilter{RiskLevel: prediction.RiskLow}); err != nil {
		return RiskStats{}, errors.Wrap(err, "counting low risk students")
	}
	if stats.AverageProbability, err = svc.repo.AverageDropoutProbability(); err != nil {
		return RiskStats{}, errors.Wrap(err, "averaging dropout probability")
	}
	stats.AverageProbability = core.Round4(stats.AverageProbability)
	return stats, nil
}

// SendAlerts dispatches a risk notification for every student at the given
// tier. An empty recipient falls back to the configured mentor inbox. One
// recipient's failure never aborts the batch.
func (svc *Service) SendAlerts(level prediction.RiskLevel, recipient string) ([]AlertResult, error) {
	students, err := svc.repo.FilterStudents(QueryFilter{RiskLevel: level})
	if err != nil {
		return nil, errors.Wrap(err, "querying students for alerts")
	}

	results := make([]AlertResult, 0, len(students))
	for _, s := range students {
		res := svc.alerter.SendRiskAlert(s, recipient)
		metricsvc.AlertDispatched(string(res.Status))
		if res.Status == AlertFailed {
			svc.logger.Warn(fmt.Sprintf("alert for student %s failed: %s", s.StudentID, res.Detail))
		}
		results = append(results, res)
	}
	return results, nil
}
