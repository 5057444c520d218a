package entities

import "time"

// APIKey authenticates remote clients. Only the bcrypt hash of the secret is stored;
// Prefix is the public part used to find the row.
type APIKey struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	Name       string     `gorm:"size:100" json:"name"`
	Prefix     string     `gorm:"uniqueIndex;size:16" json:"prefix"`
	Hash       string     `gorm:"size:100" json:"-"`
	LastUsedAt *time.Time `json:"lastUsedAt,omitempty"`
	RevokedAt  *time.Time `gorm:"index" json:"revokedAt,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
}

func (APIKey) TableName() string {
	return "api_keys"
}

// IsActive reports whether the key can still authenticate requests.
func (k APIKey) IsActive() bool {
	return k.RevokedAt == nil
}
