package tests

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"

	echoapi "github.com/earlysignal/earlysignal/apps/api/echo"
	"github.com/earlysignal/earlysignal/core"
	"github.com/earlysignal/earlysignal/core/prediction"
	"github.com/earlysignal/earlysignal/core/student"
)

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Fatal(string, ...interface{}) {}

func newTestServer(conf *core.Config, svc *student.Service, engine *prediction.Engine) *echoapi.Server {
	validate := validator.New()
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	core.InitValidators(validate, translator)

	return echoapi.NewServer(
		echoapi.ServerDeps{
			Conf:       conf,
			Logger:     nopLogger{},
			StudentSvc: svc,
			Engine:     engine,
			Validate:   validate,
			Translator: translator,
		},
	)
}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	wantCode int
	wantData []byte
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	return req, rec
}

func newUploadRequest(t *testing.T, path, field, filename, contents string) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	fw, err := w.CreateFormFile(field, filename)
	if err != nil {
		t.Fatalf("newUploadRequest() failed: %v", err)
	}
	if _, err = fw.Write([]byte(contents)); err != nil {
		t.Fatalf("newUploadRequest() failed: %v", err)
	}
	if err = w.Close(); err != nil {
		t.Fatalf("newUploadRequest() failed: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	rec := httptest.NewRecorder()
	return req, rec
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj() failed: %v", err)
	}
	return data
}

func marchallList(t *testing.T, objs ...interface{}) []byte {
	data, err := json.Marshal(objs)
	if err != nil {
		t.Fatalf("marchallList() failed: %v", err)
	}
	return data
}

func jsonBytesEqual(t *testing.T, b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	if reflect.DeepEqual(j1, j2) {
		return true, nil
	}
	if j1 == nil || j2 == nil {
		return false, nil
	}
	return assert.ElementsMatch(t, j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	ok, err := jsonBytesEqual(t, rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}

func resetDB(t *testing.T) {
	t.Helper()
	db.Reset()
}

func seedStudent(t *testing.T, id, dept string, semester int, attendance, marks float64, backlogs int) student.Student {
	t.Helper()
	s, err := stuRepo.UpsertStudent(student.Student{
		StudentID:     id,
		Name:          "Student " + id,
		Department:    dept,
		Semester:      semester,
		Attendance:    attendance,
		InternalMarks: marks,
		Backlogs:      backlogs,
		StudyHours:    4,
	})
	if err != nil {
		t.Fatalf("seedStudent() failed: %v", err)
	}
	return s
}

func getStudent(t *testing.T, id string) student.Student {
	t.Helper()
	s, err := stuRepo.GetStudentByStudentID(id)
	if err != nil {
		t.Fatalf("getStudent() failed: %v", err)
	}
	return s
}

func analyzeAll(t *testing.T) {
	t.Helper()
	if _, err := stuSvc.AnalyzeAll(); err != nil {
		t.Fatalf("analyzeAll() failed: %v", err)
	}
}

// wantResult mirrors the rule-based scoring path the test server runs on (no
// model artifacts are installed).
func wantResult(f prediction.StudentFeatures) prediction.Result {
	p := core.Round4(prediction.FallbackProbability(f))
	level := prediction.RiskLevelFor(p, f)
	var decision int
	if p > 0.5 {
		decision = 1
	}
	return prediction.Result{
		DropoutProbability: p,
		RiskLevel:          level,
		Prediction:         decision,
		RiskFactors:        prediction.IdentifyRiskFactors(f),
		Confidence:         prediction.ConfidenceFor(p),
		Recommendations:    prediction.GenerateRecommendations(f, level),
		Source:             prediction.SourceFallback,
	}
}
