package models

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	ErrInvalidDate = errors.New("date must be YYYY-MM-DD")
	ErrInvalidTime = errors.New("time must be 24-hour HH:MM")
)

var (
	dateRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	timeRegex = regexp.MustCompile(`^([01]?[0-9]|2[0-3]):[0-5][0-9]$`)
)

// ValidDate reports whether s is a YYYY-MM-DD string naming a real calendar day.
func ValidDate(s string) bool {
	if !dateRegex.MatchString(s) {
		return false
	}
	_, err := time.Parse(time.DateOnly, s)
	return err == nil
}

// NormalizeTime validates a 24-hour H:MM or HH:MM string and zero-pads it to HH:MM.
func NormalizeTime(s string) (string, bool) {
	if !timeRegex.MatchString(s) {
		return "", false
	}
	hours, minutes, _ := strings.Cut(s, ":")
	h, err := strconv.Atoi(hours)
	if err != nil {
		return "", false
	}
	return fmt.Sprintf("%02d:%s", h, minutes), true
}
