package models

import "time"

// DeletionRequest is a manually processed account-deletion request submitted
// through the public compliance form.
type DeletionRequest struct {
	RequestID string    `bson:"request_id" json:"request_id"`
	Email     string    `bson:"email" json:"email"`
	Reason    string    `bson:"reason,omitempty" json:"reason,omitempty"`
	ClientIP  string    `bson:"client_ip,omitempty" json:"-"`
	Status    string    `bson:"status" json:"status"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
