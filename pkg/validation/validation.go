package validation

import (
	"errors"
	"regexp"
	"strings"
	"unicode"

	"github.com/OldStager01/host-sentinel/pkg/models"
)

var (
	// ErrInvalidInput indicates the input failed validation
	ErrInvalidInput = errors.New("invalid input")

	// Target names are hostnames or short labels
	targetNameRegex = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9._-]{0,252}$`)
)

var historyMetrics = map[string]bool{
	models.MetricCPU:     true,
	models.MetricRAM:     true,
	models.MetricDisk:    true,
	models.MetricNetwork: true,
}

// SanitizeString removes control characters and trims whitespace
func SanitizeString(input string) string {
	input = strings.TrimSpace(input)
	input = strings.ReplaceAll(input, "\x00", "")

	var builder strings.Builder
	for _, r := range input {
		if !unicode.IsControl(r) || r == '\n' || r == '\t' {
			builder.WriteRune(r)
		}
	}

	return builder.String()
}

// ValidateTargetName checks a monitored target name taken from a request
func ValidateTargetName(name string) error {
	name = SanitizeString(name)

	if name == "" {
		return errors.New("target name cannot be empty")
	}

	if !targetNameRegex.MatchString(name) {
		return errors.New("target name must start with alphanumeric and contain only letters, numbers, dots, hyphens, and underscores")
	}

	return nil
}

// ValidateMetricName accepts only the metrics kept in the history buffer
func ValidateMetricName(metric string) error {
	if !historyMetrics[strings.ToLower(SanitizeString(metric))] {
		return errors.New("metric must be one of cpu, ram, disk, network")
	}
	return nil
}

// ValidateUsername checks if a username is valid
func ValidateUsername(username string) error {
	username = SanitizeString(username)

	if username == "" {
		return errors.New("username cannot be empty")
	}

	if len(username) > 50 {
		return errors.New("username must not exceed 50 characters")
	}

	return nil
}

// ValidatePassword checks if a password meets security requirements
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return errors.New("password must be at least 8 characters")
	}

	if len(password) > 72 {
		return errors.New("password must not exceed 72 characters")
	}

	var (
		hasUpper   bool
		hasLower   bool
		hasNumber  bool
		hasSpecial bool
	)

	for _, char := range password {
		switch {
		case unicode.IsUpper(char):
			hasUpper = true
		case unicode.IsLower(char):
			hasLower = true
		case unicode.IsDigit(char):
			hasNumber = true
		case unicode.IsPunct(char) || unicode.IsSymbol(char):
			hasSpecial = true
		}
	}

	if !hasUpper {
		return errors.New("password must contain at least one uppercase letter")
	}
	if !hasLower {
		return errors.New("password must contain at least one lowercase letter")
	}
	if !hasNumber {
		return errors.New("password must contain at least one number")
	}
	if !hasSpecial {
		return errors.New("password must contain at least one special character")
	}

	return nil
}
