package engine

import (
	"regexp"
	"strings"

	"election-service/pkg/apperrors"
)

// minElectionWindow is the shortest allowed voting window, in seconds.
const minElectionWindow = 3600

var studentIDPattern = regexp.MustCompile(`^\d{4}/\d{3}$`)

func validateElectionData(title, description string) error {
	if strings.TrimSpace(title) == "" {
		return apperrors.Validation("title", "Election title is required")
	}
	if len(title) < 5 {
		return apperrors.Validation("title", "Election title must be at least 5 characters")
	}
	if strings.TrimSpace(description) == "" {
		return apperrors.Validation("description", "Election description is required")
	}
	if len(description) < 20 {
		return apperrors.Validation("description", "Election description must be at least 20 characters")
	}
	return nil
}

func validateElectionTimes(startTime, endTime, now int64) error {
	if startTime <= now {
		return apperrors.Validation("startTime", "Start time must be in the future")
	}
	if endTime <= startTime {
		return apperrors.Validation("endTime", "End time must be after start time")
	}
	if endTime-startTime < minElectionWindow {
		return apperrors.Validation("endTime", "Election must run for at least 1 hour")
	}
	return nil
}

func validateCandidateData(name, position, manifesto string) error {
	if strings.TrimSpace(name) == "" {
		return apperrors.Validation("name", "Candidate name is required")
	}
	if len(name) < 2 {
		return apperrors.Validation("name", "Candidate name must be at least 2 characters")
	}
	if strings.TrimSpace(position) == "" {
		return apperrors.Validation("position", "Position is required")
	}
	if strings.TrimSpace(manifesto) == "" {
		return apperrors.Validation("manifesto", "Manifesto is required")
	}
	if len(manifesto) < 50 {
		return apperrors.Validation("manifesto", "Manifesto must be at least 50 characters")
	}
	return nil
}

func validateStudentID(studentID string) error {
	if !studentIDPattern.MatchString(studentID) {
		return apperrors.Validation("studentId", "Invalid student ID format. Use format: YYYY/XXX")
	}
	return nil
}
