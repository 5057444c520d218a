package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/qotd/internal/dataclient"
)

// MaxBulkQuestions caps a single bulk create request.
const MaxBulkQuestions = 1000

type QuestionsController struct {
	client dataclient.DataClient
}

func NewQuestionsController(client dataclient.DataClient) *QuestionsController {
	return &QuestionsController{client: client}
}

// List handles GET /api/questions?category=&level=&search=&limit=
func (qc *QuestionsController) List(c *gin.Context) {
	level, ok := parseQueryInt(c, "level")
	if !ok {
		return
	}
	limit, ok := parseQueryInt(c, "limit")
	if !ok {
		return
	}

	qs, err := qc.client.ListQuestions(c.Request.Context(), dataclient.ListQuestionsFilter{
		Category:         strings.TrimSpace(c.Query("category")),
		SeriousnessLevel: level,
		Search:           strings.TrimSpace(c.Query("search")),
		Limit:            limit,
	})
	if err != nil {
		respondClientError(c, err, "list questions")
		return
	}
	c.JSON(http.StatusOK, qs)
}

// Create handles POST /api/questions
func (qc *QuestionsController) Create(c *gin.Context) {
	var input dataclient.CreateQuestionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	q, err := qc.client.CreateQuestion(c.Request.Context(), input)
	if err != nil {
		respondClientError(c, err, "create question")
		return
	}
	respondCreated(c, q)
}

// CreateBulk handles POST /api/questions/bulk
// Items fail individually; the response lists what was created and what was not.
func (qc *QuestionsController) CreateBulk(c *gin.Context) {
	var req struct {
		Questions []dataclient.CreateQuestionInput `json:"questions"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}
	if len(req.Questions) > MaxBulkQuestions {
		respondBadRequest(c, "too many questions in one request")
		return
	}

	result, err := qc.client.CreateQuestionsBulk(c.Request.Context(), req.Questions)
	if err != nil {
		respondClientError(c, err, "bulk create questions")
		return
	}
	c.JSON(http.StatusOK, result)
}

// Count handles GET /api/questions/count
func (qc *QuestionsController) Count(c *gin.Context) {
	count, err := qc.client.GetQuestionCount(c.Request.Context())
	if err != nil {
		respondInternalError(c, err, "count questions")
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}

// Texts handles GET /api/questions/texts
func (qc *QuestionsController) Texts(c *gin.Context) {
	texts, err := qc.client.GetAllQuestionTexts(c.Request.Context())
	if err != nil {
		respondInternalError(c, err, "question texts")
		return
	}
	c.JSON(http.StatusOK, gin.H{"texts": texts})
}

// CheckDuplicate handles POST /api/questions/check-duplicate
func (qc *QuestionsController) CheckDuplicate(c *gin.Context) {
	var req struct {
		Text string `json:"text"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	result, err := qc.client.CheckDuplicate(c.Request.Context(), req.Text)
	if err != nil {
		respondClientError(c, err, "check duplicate")
		return
	}
	c.JSON(http.StatusOK, result)
}

// Get handles GET /api/questions/:id
func (qc *QuestionsController) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	q, err := qc.client.GetQuestion(c.Request.Context(), id)
	if err != nil {
		respondInternalError(c, err, "get question")
		return
	}
	if q == nil {
		respondNotFound(c, "question")
		return
	}
	c.JSON(http.StatusOK, q)
}

// Update handles PATCH /api/questions/:id
func (qc *QuestionsController) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input dataclient.UpdateQuestionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	q, err := qc.client.UpdateQuestion(c.Request.Context(), id, input)
	if err != nil {
		respondClientError(c, err, "update question")
		return
	}
	c.JSON(http.StatusOK, q)
}

// Delete handles DELETE /api/questions/:id
func (qc *QuestionsController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := qc.client.DeleteQuestion(c.Request.Context(), id); err != nil {
		respondClientError(c, err, "delete question")
		return
	}
	c.Status(http.StatusNoContent)
}

// DeleteMany handles POST /api/questions/delete
// {"ids":[...]} deletes those questions; a body without ids deletes all of them.
func (qc *QuestionsController) DeleteMany(c *gin.Context) {
	var req struct {
		IDs *[]uint `json:"ids"`
	}
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBadRequest(c, "invalid request body")
			return
		}
	}

	var ids []uint
	if req.IDs != nil {
		ids = *req.IDs
		if ids == nil {
			ids = []uint{}
		}
	}

	deleted, err := qc.client.DeleteQuestions(c.Request.Context(), ids)
	if err != nil {
		respondClientError(c, err, "delete questions")
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}
