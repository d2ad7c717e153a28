package models

import "time"

// AccessDecisionRecord is the audit trail entry persisted for every
// evaluated request.
type AccessDecisionRecord struct {
	ID           string    `bson:"_id,omitempty" json:"id,omitempty"`
	RequestID    string    `bson:"requestId" json:"requestId"`
	SubjectID    string    `bson:"subjectId" json:"subjectId"`
	Role         string    `bson:"role" json:"role"`
	ResourceType string    `bson:"resourceType,omitempty" json:"resourceType,omitempty"`
	ResourceID   string    `bson:"resourceId,omitempty" json:"resourceId,omitempty"`
	Action       string    `bson:"action,omitempty" json:"action,omitempty"`
	Allowed      bool      `bson:"allowed" json:"allowed"`
	Reason       string    `bson:"reason" json:"reason"`
	EvaluatedAt  time.Time `bson:"evaluatedAt" json:"evaluatedAt"`
}

// DenialAlert is published to the security alert queue when a request is
// denied.
type DenialAlert struct {
	RequestID    string    `json:"request_id"`
	SubjectID    string    `json:"subject_id"`
	Role         string    `json:"role"`
	ResourceType string    `json:"resource_type,omitempty"`
	ResourceID   string    `json:"resource_id,omitempty"`
	Action       string    `json:"action,omitempty"`
	Reason       string    `json:"reason"`
	DeniedAt     time.Time `json:"denied_at"`
}
