package analytics

import (
	"math"

	"github.com/example/studytrack/pkg/models"
)

// QuizPerformance groups quiz results by topic (default "General") in
// first-seen order and computes per-topic accuracy. Accuracy is 0 when a
// group has no questions at all.
func QuizPerformance(results []models.QuizResult) []models.QuizTopicPerformance {
	byTopic := map[string]*models.QuizTopicPerformance{}
	order := []string{}

	for _, r := range results {
		topic := r.Topic
		if topic == "" {
			topic = "General"
		}
		perf, ok := byTopic[topic]
		if !ok {
			perf = &models.QuizTopicPerformance{Topic: topic}
			byTopic[topic] = perf
			order = append(order, topic)
		}
		perf.Attempts++
		perf.SumScore += r.Score
		perf.SumTotalQuestions += r.TotalQuestions
	}

	out := make([]models.QuizTopicPerformance, 0, len(order))
	for _, topic := range order {
		perf := byTopic[topic]
		perf.AccuracyPercent = roundPercent(float64(perf.SumScore), float64(perf.SumTotalQuestions))
		out = append(out, *perf)
	}
	return out
}

// AverageAccuracy is the mean of each result's own accuracy percentage,
// 0 when there are no results. Results without questions contribute 0.
func AverageAccuracy(results []models.QuizResult) int {
	if len(results) == 0 {
		return 0
	}
	sum := 0.0
	for _, r := range results {
		if r.TotalQuestions > 0 {
			sum += float64(r.Score) / float64(r.TotalQuestions) * 100
		}
	}
	return int(math.Round(sum / float64(len(results))))
}
