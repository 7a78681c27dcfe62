package controllers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/vedantlonkar23/loopspacenew/models"
	"github.com/vedantlonkar23/loopspacenew/utils"
	"gorm.io/gorm"
)

const (
	defaultSearchLimit = 10
	maxSearchLimit     = 50
)

var (
	userSearchColumns  = []string{"name", "bio", "location", "organization_name"}
	eventSearchColumns = []string{"name", "description", "location"}
	postSearchColumns  = []string{"title", "description"}
)

// SearchController serves relevance-ranked text search over one entity type
// at a time. On MySQL the ranking comes from the fulltext index created at
// migration; on other dialects a weighted LIKE score keeps the behavior
// portable (and testable against sqlite).
type SearchController struct {
	db *gorm.DB
}

func NewSearchController(db *gorm.DB) *SearchController {
	return &SearchController{db: db}
}

// textSearch carries the dialect-specific filter and ranking clauses for one
// query.
type textSearch struct {
	where      string
	whereArgs  []interface{}
	selectExpr string
	selectArgs []interface{}
}

func buildTextSearch(dialect string, columns []string, query string) textSearch {
	if dialect == "mysql" {
		match := fmt.Sprintf("MATCH(%s) AGAINST (? IN NATURAL LANGUAGE MODE)", strings.Join(columns, ", "))
		return textSearch{
			where:      match,
			whereArgs:  []interface{}{query},
			selectExpr: "*, " + match + " AS score",
			selectArgs: []interface{}{query},
		}
	}

	// Weighted LIKE fallback: earlier columns score higher, so a name hit
	// outranks a bio hit.
	pattern := "%" + strings.ToLower(query) + "%"
	scoreParts := make([]string, 0, len(columns))
	whereParts := make([]string, 0, len(columns))
	args := make([]interface{}, 0, len(columns))
	for i, col := range columns {
		weight := len(columns) - i
		scoreParts = append(scoreParts, fmt.Sprintf("(CASE WHEN LOWER(%s) LIKE ? THEN %d ELSE 0 END)", col, weight))
		whereParts = append(whereParts, fmt.Sprintf("LOWER(%s) LIKE ?", col))
		args = append(args, pattern)
	}

	return textSearch{
		where:      strings.Join(whereParts, " OR "),
		whereArgs:  args,
		selectExpr: "*, (" + strings.Join(scoreParts, " + ") + ") AS score",
		selectArgs: args,
	}
}

// searchParams validates the shared query parameters. An empty query is a
// client error, not an empty result set.
func searchParams(c *gin.Context) (query string, page, limit int, ok bool) {
	query = strings.TrimSpace(c.Query("query"))
	if query == "" {
		utils.SendError(c, http.StatusBadRequest, "Query is required")
		return "", 0, 0, false
	}

	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}

	limit, _ = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultSearchLimit)))
	if limit < 1 {
		limit = defaultSearchLimit
	}
	if limit > maxSearchLimit {
		limit = maxSearchLimit
	}

	return query, page, limit, true
}

func (sc *SearchController) SearchUsers(c *gin.Context) {
	query, page, limit, ok := searchParams(c)
	if !ok {
		return
	}

	ts := buildTextSearch(sc.db.Dialector.Name(), userSearchColumns, query)

	var total int64
	if err := sc.db.Model(&models.User{}).Where(ts.where, ts.whereArgs...).Count(&total).Error; err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Search failed")
		return
	}

	var users []models.User
	err := sc.db.Model(&models.User{}).
		Select(ts.selectExpr, ts.selectArgs...).
		Where(ts.where, ts.whereArgs...).
		Order("score DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&users).Error
	if err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Search failed")
		return
	}

	for i := range users {
		users[i].Sanitize()
	}

	utils.SendPaginated(c, users, page, limit, total)
}

func (sc *SearchController) SearchEvents(c *gin.Context) {
	query, page, limit, ok := searchParams(c)
	if !ok {
		return
	}

	ts := buildTextSearch(sc.db.Dialector.Name(), eventSearchColumns, query)

	var total int64
	if err := sc.db.Model(&models.Event{}).Where(ts.where, ts.whereArgs...).Count(&total).Error; err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Search failed")
		return
	}

	var events []models.Event
	err := sc.db.Model(&models.Event{}).
		Select(ts.selectExpr, ts.selectArgs...).
		Where(ts.where, ts.whereArgs...).
		Order("score DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&events).Error
	if err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Search failed")
		return
	}

	utils.SendPaginated(c, events, page, limit, total)
}

func (sc *SearchController) SearchPosts(c *gin.Context) {
	query, page, limit, ok := searchParams(c)
	if !ok {
		return
	}

	ts := buildTextSearch(sc.db.Dialector.Name(), postSearchColumns, query)

	var total int64
	if err := sc.db.Model(&models.Post{}).Where(ts.where, ts.whereArgs...).Count(&total).Error; err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Search failed")
		return
	}

	var posts []models.Post
	err := sc.db.Model(&models.Post{}).
		Preload("User").
		Select(ts.selectExpr, ts.selectArgs...).
		Where(ts.where, ts.whereArgs...).
		Order("score DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Search failed")
		return
	}

	for i := range posts {
		posts[i].User.Sanitize()
	}

	utils.SendPaginated(c, posts, page, limit, total)
}
