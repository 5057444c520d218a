package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/qotd/internal/dailypick"
)

type DailyController struct {
	picker DailyPicker
	now    func() time.Time
}

func NewDailyController(picker DailyPicker) *DailyController {
	return &DailyController{picker: picker, now: time.Now}
}

// Today handles GET /api/qotd
func (dc *DailyController) Today(c *gin.Context) {
	pick, err := dc.picker.Today(c.Request.Context())
	if errors.Is(err, dailypick.ErrNoQuestions) {
		respondNotFound(c, "question of the day")
		return
	}
	if err != nil {
		respondInternalError(c, err, "question of the day")
		return
	}
	c.JSON(http.StatusOK, pick)
}

// Repick handles POST /api/qotd/repick
// Replaces today's question with a freshly drawn one.
func (dc *DailyController) Repick(c *gin.Context) {
	pick, err := dc.picker.Repick(c.Request.Context(), dc.now())
	if errors.Is(err, dailypick.ErrNoQuestions) {
		respondNotFound(c, "question of the day")
		return
	}
	if err != nil {
		respondInternalError(c, err, "repick question of the day")
		return
	}
	c.JSON(http.StatusOK, pick)
}
