package domain

import "slices"

// Catalogs offered by the public booking forms.
var (
	Services = []string{
		"Bridal Makeup",
		"Event Makeup",
		"Photoshoot Makeup",
		"Everyday Glam",
	}

	TimeSlots = []string{
		"9:00 AM",
		"11:00 AM",
		"1:00 PM",
		"3:00 PM",
		"5:00 PM",
	}

	ClassTypes = []string{
		"Beginner Basics",
		"Advanced Techniques",
		"Bridal Specialist",
		"Business Training",
	}

	// ExperienceLevels is ordered from least to most experienced.
	ExperienceLevels = []string{
		"Complete Beginner",
		"Some Experience",
		"Intermediate",
		"Advanced",
	}

	Schedules = []string{
		"Weekdays",
		"Weekends",
		"Evening Classes",
		"Flexible",
	}
)

func IsKnownService(s string) bool    { return slices.Contains(Services, s) }
func IsKnownTimeSlot(s string) bool   { return slices.Contains(TimeSlots, s) }
func IsKnownClassType(s string) bool  { return slices.Contains(ClassTypes, s) }
func IsKnownSchedule(s string) bool   { return slices.Contains(Schedules, s) }
func IsKnownExperience(s string) bool { return ExperienceRank(s) >= 0 }

// ExperienceRank returns the position of level in ExperienceLevels, or -1.
func ExperienceRank(level string) int {
	return slices.Index(ExperienceLevels, level)
}
