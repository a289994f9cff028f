package scoring

import (
	"fmt"
	"strings"

	"github.com/saulgabriel7/athlete-core/internal/catalog"
)

// coreGroups are the muscle groups every routine should touch. Missing ones
// trigger a balance recommendation.
var coreGroups = []catalog.MuscleGroup{
	catalog.MuscleGroupChest,
	catalog.MuscleGroupBack,
	catalog.MuscleGroupLegs,
	catalog.MuscleGroupShoulders,
}

// Recommendations derives training advice from recent sessions, newest
// first. muscleGroups maps exercise IDs to the muscle group they train.
func Recommendations(sessions []Session, muscleGroups map[int]catalog.MuscleGroup) []string {
	if len(sessions) == 0 {
		return []string{"Log your first training session to start receiving personalized recommendations!"}
	}

	var recommendations []string

	if len(sessions) < 3 {
		recommendations = append(recommendations,
			"Keep training regularly! Consistency is the key to progress.")
	}

	var scores []int
	for _, session := range sessions {
		if session.Score != nil {
			scores = append(scores, *session.Score)
		}
	}

	if len(scores) >= 3 {
		recent := mean(scores[:3])
		older := sumInts(scores[3:]) / float64(max(1, len(scores)-3))
		switch {
		case recent > older*1.1:
			recommendations = append(recommendations,
				"Great work! Your performance is improving. Keep it up!")
		case recent < older*0.9:
			recommendations = append(recommendations,
				"Your performance has dipped recently. Consider more rest or reviewing your nutrition.")
		}
	}

	if missing := missingGroups(sessions, muscleGroups); len(missing) > 0 {
		names := make([]string, 0, len(missing))
		for _, group := range missing {
			names = append(names, string(group))
		}
		recommendations = append(recommendations, fmt.Sprintf(
			"Consider adding %s exercises to your routine for more balanced development.",
			strings.Join(names, ", ")))
	}

	if len(recommendations) == 0 {
		recommendations = append(recommendations,
			"You are on the right track! Keep up the consistent training.")
	}

	return recommendations
}

// missingGroups returns the core muscle groups none of the sessions trained.
func missingGroups(sessions []Session, muscleGroups map[int]catalog.MuscleGroup) []catalog.MuscleGroup {
	trained := map[catalog.MuscleGroup]bool{}
	for _, session := range sessions {
		for _, exercise := range session.Exercises {
			if group, ok := muscleGroups[exercise.ExerciseID]; ok {
				trained[group] = true
			}
		}
	}

	var missing []catalog.MuscleGroup
	for _, group := range coreGroups {
		if !trained[group] {
			missing = append(missing, group)
		}
	}
	return missing
}

func sumInts(values []int) float64 {
	var sum float64
	for _, v := range values {
		sum += float64(v)
	}
	return sum
}
