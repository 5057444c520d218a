package entities

import "time"

// DayLayout is the format of DailyPick.Day.
const DayLayout = "2006-01-02"

// DailyPick records which question was chosen as the question of a given day.
type DailyPick struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Day        string    `gorm:"uniqueIndex;size:10" json:"day"`
	QuestionID uint      `gorm:"index" json:"questionId"`
	Question   Question  `gorm:"foreignKey:QuestionID" json:"question"`
	CreatedAt  time.Time `json:"createdAt"`
}

// DayOf formats t as a DailyPick day key in t's location.
func DayOf(t time.Time) string {
	return t.Format(DayLayout)
}
