package module

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reviewsense/internal/core/labels"
	modkit "reviewsense/internal/modkit"
	"reviewsense/internal/platform/config"
	kit "reviewsense/internal/platform/testkit"
	labelsdom "reviewsense/internal/services/api/labels/domain"
	"reviewsense/internal/services/api/labels/labelstest"
)

func TestNew_RequiresModelPorts(t *testing.T) {
	v := kit.MustPanic(t, func() { New(modkit.Deps{Cfg: config.New()}) })
	assert.Equal(t, "labels module requires Classifier and Batcher ports", v)
}

func TestNew_PublishesPredictor(t *testing.T) {
	t.Setenv("LABELS_OUTPUT_PATH", filepath.Join(t.TempDir(), "predictions.csv"))
	clf := &labelstest.Classifier{Logits: labelstest.LogitsFor(labels.Negative)}
	m := New(modkit.Deps{Cfg: config.New()}, modkit.WithPorts(Ports{
		Classifier: clf,
		Batcher:    labelstest.Batcher(),
	}))
	assert.Equal(t, "labels", m.Name())

	p := modkit.MustPortsOf[Predictor](m)
	got, err := p.Predict(context.Background(), labelsdom.SourceGroup, []string{"Broke in a week", "Late"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, labels.Negative, got[0].Label)
	assert.Equal(t, "Late", got[1].Raw)
	assert.Equal(t, 2, clf.Rows)
}
