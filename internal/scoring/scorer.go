package scoring

import "math"

// Per-exercise point caps. Every exercise can earn up to 100 points split
// between sets, rep consistency, load, and volume.
const (
	maxSetPoints     = 30.0
	maxRepPoints     = 30.0
	loadedPoints     = 20.0
	bodyweightPoints = 10.0
	maxVolumePoints  = 20.0
)

// Score rates a session from 0 to 100.
//
// Each exercise earns points for sets performed, rep consistency across
// sets, training with load, and total volume. Sessions close to the ideal
// duration of ten minutes per exercise get a small bonus, far off a small
// penalty. When the raw point total beats the average of recentScores, the
// athlete's latest scored sessions, it earns another bonus. A session with
// no exercises scores a neutral 50.
func Score(exercises []ExerciseResult, durationMinutes *int, recentScores []int) int {
	var score, maxScore float64

	for _, exercise := range exercises {
		maxScore += 100

		setPoints := math.Min(maxSetPoints, float64(exercise.SetsPerformed)*10)

		meanReps := mean(exercise.Reps)
		repPoints := math.Max(0, maxRepPoints-meanAbsoluteDeviation(exercise.Reps, meanReps)*3)

		meanLoad := meanFloat(exercise.LoadsKg)
		loadPoints := bodyweightPoints
		if meanLoad > 0 {
			loadPoints = loadedPoints
		}

		volume := float64(exercise.SetsPerformed) * meanReps * meanLoad
		volumePoints := math.Min(maxVolumePoints, volume/100)

		score += setPoints + repPoints + loadPoints + volumePoints
	}

	if durationMinutes != nil && *durationMinutes > 0 {
		idealMinutes := len(exercises) * 10
		delta := math.Abs(float64(*durationMinutes - idealMinutes))
		switch {
		case delta < 15:
			score *= 1.05
		case delta > 30:
			score *= 0.95
		}
	}

	// The raw point total is compared against the 0-100 history mean on
	// purpose. Multi-exercise sessions accumulate points per exercise, so
	// they clear the bar more easily than single-exercise ones.
	if len(recentScores) > 0 && score > mean(recentScores) {
		score *= 1.1
	}

	final := 50
	if maxScore > 0 {
		final = int(math.Round(score / maxScore * 100))
	}
	return min(100, max(0, final))
}

func mean(values []int) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += float64(v)
	}
	return sum / float64(len(values))
}

func meanFloat(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func meanAbsoluteDeviation(values []int, mean float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += math.Abs(float64(v) - mean)
	}
	return sum / float64(len(values))
}
