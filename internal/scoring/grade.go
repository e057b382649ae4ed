package scoring

import (
	"math"

	"github.com/dtroode/scorepredictor-server/internal/model"
)

const passMark = 60.0

type band struct {
	min   float64
	grade string
	title string
	tips  []model.Tip
}

var foundationTips = []model.Tip{
	{Title: "Study Plan", Content: "Create a structured daily study routine with specific time blocks."},
	{Title: "Review Basics", Content: "Go back to fundamentals and build a strong foundation."},
	{Title: "Seek Help", Content: "Ask teachers, tutors, or classmates for assistance."},
}

// Bands are ordered by descending lower bound; the last one catches all.
var bands = []band{
	{min: 90, grade: "A+", title: "Outstanding!", tips: []model.Tip{
		{Title: "Maintain Excellence", Content: "Keep up your excellent study habits and help others succeed too!"},
		{Title: "Leadership", Content: "Consider tutoring classmates or joining study groups as a leader."},
		{Title: "Challenge Yourself", Content: "Take on advanced courses or extracurricular academic activities."},
	}},
	{min: 80, grade: "A", title: "Excellent!", tips: []model.Tip{
		{Title: "Boost Performance", Content: "You're doing great! Focus on weak areas to reach the next level."},
		{Title: "Time Management", Content: "Optimize your study schedule to maximize productivity."},
		{Title: "Peer Learning", Content: "Form study groups with high-performing classmates."},
	}},
	{min: 70, grade: "B", title: "Good Job!", tips: []model.Tip{
		{Title: "Active Learning", Content: "Use active recall and spaced repetition techniques."},
		{Title: "Rest & Recovery", Content: "Ensure 7-8 hours of sleep for optimal brain function."},
		{Title: "Goal Setting", Content: "Set specific, measurable study goals for each subject."},
	}},
	{min: 60, grade: "C", title: "Keep Going!", tips: foundationTips},
	{min: math.Inf(-1), grade: "D", title: "You Can Do Better!", tips: foundationTips},
}

var generalTips = []model.Tip{
	{Title: "Pomodoro Technique", Content: "Study for 25 minutes, then take a 5-minute break."},
	{Title: "Active Note-Taking", Content: "Use the Cornell method for better retention."},
	{Title: "Spaced Repetition", Content: "Review material at increasing intervals."},
	{Title: "Sleep Schedule", Content: "Maintain 7-8 hours of sleep daily."},
	{Title: "Exercise", Content: "Regular physical activity improves cognitive function."},
	{Title: "Healthy Diet", Content: "Eat brain foods and stay hydrated."},
}

func bandFor(score float64) band {
	for _, b := range bands {
		if score >= b.min {
			return b
		}
	}
	return bands[len(bands)-1]
}

// GradeFor returns the letter grade for a clamped score.
func GradeFor(score float64) string {
	return bandFor(score).grade
}

// TitleFor returns the headline shown with a score.
func TitleFor(score float64) string {
	return bandFor(score).title
}

// PercentileFor returns the score rounded and clamped to [1, 99]. It is a
// display value, not a statistical percentile.
func PercentileFor(score float64) int {
	return int(Clamp(math.Round(score), 1, 99))
}

// StatusFor returns "Pass" for scores of at least 60 and "Fail" otherwise.
func StatusFor(score float64) string {
	if score >= passMark {
		return "Pass"
	}
	return "Fail"
}

// TipsFor returns advice for the score's band.
func TipsFor(score float64) []model.Tip {
	return append([]model.Tip(nil), bandFor(score).tips...)
}

// GeneralTips returns study tips that apply to every score.
func GeneralTips() []model.Tip {
	return append([]model.Tip(nil), generalTips...)
}

// Assess derives everything the presentation layer shows for score.
func Assess(score float64) model.Assessment {
	b := bandFor(score)
	return model.Assessment{
		Grade:      b.grade,
		Title:      b.title,
		Percentile: PercentileFor(score),
		Status:     StatusFor(score),
		Tips:       append([]model.Tip(nil), b.tips...),
	}
}
