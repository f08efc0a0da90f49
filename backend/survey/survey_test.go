package survey

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func uniformAnswers(v int) []int {
	answers := make([]int, len(Questions))
	for i := range answers {
		answers[i] = v
	}
	return answers
}

func TestScoreAllMinimum(t *testing.T) {
	res, err := Score(uniformAnswers(1))
	assert.NoError(t, err)
	assert.Equal(t, 0, res.Overall)
	assert.Equal(t, "low", res.Level)
	for area, score := range res.AreaScores {
		assert.Equal(t, 0, score, area)
	}
}

func TestScoreAllMaximum(t *testing.T) {
	res, err := Score(uniformAnswers(5))
	assert.NoError(t, err)
	assert.Equal(t, 100, res.Overall)
	assert.Equal(t, "high", res.Level)
}

func TestScoreMidpointIsModerate(t *testing.T) {
	res, err := Score(uniformAnswers(3))
	assert.NoError(t, err)
	assert.Equal(t, 50, res.Overall)
	assert.Equal(t, "moderate", res.Level)
}

func TestScoreAreaAveraging(t *testing.T) {
	answers := uniformAnswers(1)
	// Max out the three perfectionism questions only.
	answers[0], answers[1], answers[2] = 5, 5, 5

	res, err := Score(answers)
	assert.NoError(t, err)
	assert.Equal(t, 100, res.AreaScores[AreaPerfectionism])
	assert.Equal(t, 0, res.AreaScores[AreaAvoidance])
	assert.Equal(t, 25, res.Overall)
}

func TestScoreBounds(t *testing.T) {
	for v := 1; v <= 5; v++ {
		res, err := Score(uniformAnswers(v))
		assert.NoError(t, err)
		assert.GreaterOrEqual(t, res.Overall, 0)
		assert.LessOrEqual(t, res.Overall, 100)
	}
}

func TestScoreRejectsWrongCount(t *testing.T) {
	_, err := Score([]int{1, 2, 3})
	assert.Error(t, err)
}

func TestScoreRejectsOutOfRange(t *testing.T) {
	answers := uniformAnswers(3)
	answers[4] = 6
	_, err := Score(answers)
	assert.Error(t, err)

	answers[4] = 0
	_, err = Score(answers)
	assert.Error(t, err)
}
