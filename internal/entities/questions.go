package entities

import (
	"time"
)

// Seriousness levels are opaque to clients; the backend only enforces the range.
const (
	MinSeriousnessLevel = 1
	MaxSeriousnessLevel = 5
)

type Category struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Name  string `gorm:"uniqueIndex;size:100;not null" json:"name"`
	Color string `gorm:"size:16" json:"color"`
}

type Question struct {
	ID               uint       `gorm:"primaryKey" json:"id"`
	Text             string     `gorm:"type:text;not null" json:"text"`
	TextNorm         string     `gorm:"index;type:text" json:"textNorm,omitempty"` // normalize.Text(Text), used for duplicate detection
	SeriousnessLevel int        `gorm:"index;not null;default:1" json:"seriousnessLevel"`
	Categories       []Category `gorm:"many2many:question_categories;" json:"categories"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

// CategoryNames returns the names of the question's categories in stored order.
func (q Question) CategoryNames() []string {
	names := make([]string, 0, len(q.Categories))
	for _, c := range q.Categories {
		names = append(names, c.Name)
	}
	return names
}

type CategoryWithCount struct {
	Category
	QuestionCount int64 `json:"questionCount"`
}

type LevelCount struct {
	SeriousnessLevel int   `json:"seriousnessLevel"`
	Count            int64 `json:"count"`
}

type CategoryCount struct {
	Name  string `json:"name"`
	Color string `json:"color"`
	Count int64  `json:"count"`
}

// Stats is a read-only aggregate computed on every request.
type Stats struct {
	Total      int64           `json:"total"`
	ByLevel    []LevelCount    `json:"byLevel"`
	ByCategory []CategoryCount `json:"byCategory"`
}
