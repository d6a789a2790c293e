package integration

import (
	"fmt"
	"time"
)

// UniqueStudent generates unique registration details using a timestamp
func UniqueStudent(suffix string) map[string]string {
	ts := time.Now().UnixNano()
	return map[string]string{
		"userType":        "Student",
		"fullName":        "Test Student " + suffix,
		"cid":             fmt.Sprintf("C%d-%s", ts, suffix),
		"email":           fmt.Sprintf("student-%d-%s@college.edu", ts, suffix),
		"phone":           "5550001111",
		"password":        "secret1",
		"confirmPassword": "secret1",
	}
}

// ContactFormBody returns a valid contact form payload
func ContactFormBody(suffix string) map[string]string {
	return map[string]string{
		"contactName":    "Visitor " + suffix,
		"contactEmail":   fmt.Sprintf("visitor-%s@example.com", suffix),
		"contactSubject": "Question about admissions",
		"contactMessage": "When does enrollment open for the fall semester?",
	}
}
