package prediction

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// Artifact filenames within the configured model directory.
const (
	modelFile        = "dropout_model.json"
	scalerFile       = "scaler.json"
	featureOrderFile = "feature_order.json"
)

func loadModel(dir string) (Model, error) {
	path := filepath.Join(dir, modelFile)
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading model artifact %s", path)
	}
	model := new(logisticModel)
	if err := json.Unmarshal(data, model); err != nil {
		return nil, errors.Wrapf(err, "parsing model artifact %s", path)
	}
	if len(model.Weights) == 0 {
		return nil, errors.Errorf("model artifact %s has no weights", path)
	}
	return model, nil
}

// loadScaler returns (nil, nil) when the artifact is absent: predictions then
// run on raw features.
func loadScaler(dir string) (*StandardScaler, error) {
	path := filepath.Join(dir, scalerFile)
	data, err := ioutil.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "reading scaler artifact %s", path)
	}
	scaler := new(StandardScaler)
	if err := json.Unmarshal(data, scaler); err != nil {
		return nil, errors.Wrapf(err, "parsing scaler artifact %s", path)
	}
	return scaler, nil
}

// loadFeatureOrder falls back to DefaultFeatureOrder when the artifact is
// absent or unreadable; the schema must always resolve.
func loadFeatureOrder(dir string) []string {
	data, err := ioutil.ReadFile(filepath.Join(dir, featureOrderFile))
	if err != nil {
		return DefaultFeatureOrder
	}
	var order []string
	if err := json.Unmarshal(data, &order); err != nil || len(order) == 0 {
		return DefaultFeatureOrder
	}
	return order
}
