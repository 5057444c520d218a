package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/qotd/internal/dataclient"
)

type CategoriesController struct {
	client dataclient.DataClient
}

func NewCategoriesController(client dataclient.DataClient) *CategoriesController {
	return &CategoriesController{client: client}
}

// List handles GET /api/categories[?withCount=true]
func (cc *CategoriesController) List(c *gin.Context) {
	withCount, _ := strconv.ParseBool(c.Query("withCount"))

	if withCount {
		cats, err := cc.client.ListCategoriesWithCount(c.Request.Context())
		if err != nil {
			respondInternalError(c, err, "list categories with count")
			return
		}
		c.JSON(http.StatusOK, cats)
		return
	}

	cats, err := cc.client.ListCategories(c.Request.Context())
	if err != nil {
		respondInternalError(c, err, "list categories")
		return
	}
	c.JSON(http.StatusOK, cats)
}

type StatsController struct {
	client dataclient.DataClient
}

func NewStatsController(client dataclient.DataClient) *StatsController {
	return &StatsController{client: client}
}

// Get handles GET /api/stats
func (sc *StatsController) Get(c *gin.Context) {
	stats, err := sc.client.GetStats(c.Request.Context())
	if err != nil {
		respondInternalError(c, err, "stats")
		return
	}
	c.JSON(http.StatusOK, stats)
}
