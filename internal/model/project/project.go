// Package project contains the persisted records the incubator keeps
// outside of conversation state.
package project

import "time"

// Project is a student submission stored once and listed by recency.
type Project struct {
	ID           int64     `json:"id"`
	StudentName  string    `json:"studentName"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Phone        string    `json:"phone"`
	LogoPath     string    `json:"logoPath,omitempty"`
	DocumentPath string    `json:"documentPath,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Design is a saved design artifact produced with the design assistant.
type Design struct {
	ID         int64     `json:"id"`
	StudentID  string    `json:"studentId"`
	DesignType string    `json:"designType"`
	DesignData string    `json:"designData"`
	CreatedAt  time.Time `json:"createdAt"`
}
