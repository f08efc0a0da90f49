// Package survey holds the self-diagnosis question set and scoring. Scoring is
// pure so results can be recomputed and tested without persistence.
package survey

import (
	"fmt"
	"math"
)

// Question is one item of the fixed diagnosis questionnaire. Answers are on a
// 1..5 scale where 5 means "strongly agree".
type Question struct {
	ID   int    `json:"id"`
	Area string `json:"area"`
	Text string `json:"text"`
}

const (
	AreaPerfectionism = "perfectionism"
	AreaAvoidance     = "avoidance"
	AreaRumination    = "rumination"
	AreaSelfCriticism = "self_criticism"
)

// Questions is the fixed question set served to clients. Order matters:
// submitted answers are matched by position.
var Questions = []Question{
	{1, AreaPerfectionism, "I feel my work is worthless unless it is flawless"},
	{2, AreaPerfectionism, "I postpone finishing things until they feel perfect"},
	{3, AreaPerfectionism, "I judge myself harshly over small mistakes"},
	{4, AreaAvoidance, "I put off tasks that feel uncomfortable"},
	{5, AreaAvoidance, "I distract myself instead of facing hard problems"},
	{6, AreaAvoidance, "I avoid situations where I might fail"},
	{7, AreaRumination, "I replay past mistakes over and over"},
	{8, AreaRumination, "I find it hard to stop worrying about what went wrong"},
	{9, AreaRumination, "Negative thoughts keep me awake at night"},
	{10, AreaSelfCriticism, "My inner voice is harsher to me than to anyone else"},
	{11, AreaSelfCriticism, "I rarely give myself credit for what went well"},
	{12, AreaSelfCriticism, "I compare myself unfavourably to others"},
}

const (
	minAnswer = 1
	maxAnswer = 5
)

// Result is the derived diagnosis: per-area scores and an overall score, all
// on a 0..100 scale, plus a coarse level label.
type Result struct {
	AreaScores map[string]int `json:"area_scores"`
	Overall    int            `json:"overall"`
	Level      string         `json:"level"`
}

// Score validates the submitted answers against the question set and computes
// the result. Answer i corresponds to Questions[i].
func Score(answers []int) (Result, error) {
	if len(answers) != len(Questions) {
		return Result{}, fmt.Errorf("expected %d answers, got %d", len(Questions), len(answers))
	}

	sums := map[string]int{}
	counts := map[string]int{}
	for i, a := range answers {
		if a < minAnswer || a > maxAnswer {
			return Result{}, fmt.Errorf("answer %d out of range [%d, %d]", i+1, minAnswer, maxAnswer)
		}
		area := Questions[i].Area
		sums[area] += a
		counts[area]++
	}

	areaScores := make(map[string]int, len(sums))
	total := 0
	for area, sum := range sums {
		avg := float64(sum) / float64(counts[area])
		// Map the 1..5 average onto 0..100.
		score := int(math.Round((avg - minAnswer) / (maxAnswer - minAnswer) * 100))
		areaScores[area] = score
		total += score
	}

	overall := int(math.Round(float64(total) / float64(len(areaScores))))

	return Result{
		AreaScores: areaScores,
		Overall:    overall,
		Level:      levelFor(overall),
	}, nil
}

func levelFor(overall int) string {
	switch {
	case overall < 40:
		return "low"
	case overall < 70:
		return "moderate"
	default:
		return "high"
	}
}
