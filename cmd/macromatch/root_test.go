package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"macromatch-go-api/internal/models"
)

func run(t *testing.T, args ...string) ([]byte, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(append(args, "--log-level", "error"))
	err := root.Execute()
	return out.Bytes(), err
}

func TestIndicatorsOffline(t *testing.T) {
	out, err := run(t, "indicators")
	require.NoError(t, err)

	var snap models.IndicatorSnapshot
	require.NoError(t, json.Unmarshal(out, &snap))
	assert.Equal(t, models.SourceFallback, snap.Source)
	assert.Len(t, snap.Indicators, 5)
}

func TestRecommendOffline(t *testing.T) {
	out, err := run(t, "recommend", "qqq")
	require.NoError(t, err)

	var rec models.RecommendationResult
	require.NoError(t, json.Unmarshal(out, &rec))
	assert.Equal(t, "QQQ", rec.Symbol)
	assert.Contains(t, []models.Recommendation{models.RecommendBuy, models.RecommendHold, models.RecommendSell}, rec.Recommendation)
}

func TestRecommendUnknownSymbolOffline(t *testing.T) {
	_, err := run(t, "recommend", "NOPE")
	assert.Error(t, err)
}

func TestAnalyzeOffline(t *testing.T) {
	out, err := run(t, "analyze", "GLD")
	require.NoError(t, err)

	var res models.ETFAnalysis
	require.NoError(t, json.Unmarshal(out, &res))
	assert.Equal(t, "SPDR Gold Shares", res.ETF.Name)
}

func TestPredictIsReproducible(t *testing.T) {
	args := []string{"predict", "--etf", "SPY,TLT,GLD", "--investment", "5000", "--seed", "9"}
	first, err := run(t, args...)
	require.NoError(t, err)
	second, err := run(t, args...)
	require.NoError(t, err)

	var a, b models.PredictionResult
	require.NoError(t, json.Unmarshal(first, &a))
	require.NoError(t, json.Unmarshal(second, &b))
	assert.Equal(t, a.Confidence, b.Confidence)
	assert.Equal(t, a.Scenarios, b.Scenarios)
	assert.Equal(t, "custom-strategy-prediction", a.StrategyID)
}

func TestPredictRejectsBadWeights(t *testing.T) {
	_, err := run(t, "predict", "--etf", "SPY,TLT", "--weight", "SPY=70,TLT=20")
	assert.Error(t, err)

	_, err = run(t, "predict", "--etf", "SPY", "--weight", "SPY=abc")
	assert.Error(t, err)
}

func TestParseAllocationEqualWeights(t *testing.T) {
	got, err := parseAllocation([]string{"spy", "tlt", "gld", "bnd"}, nil)
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"SPY": 25, "TLT": 25, "GLD": 25, "BND": 25}, got)
}
