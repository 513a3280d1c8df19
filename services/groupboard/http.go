package groupboard

import (
	"net/http"
	"strconv"

	"albumboard/lib/albumtable"

	"github.com/gin-gonic/gin"
)

// NewRouter exposes a session as a read-only JSON API. Filters default
// to the full observed range of the loaded table, so a bare request
// returns everything.
func NewRouter(session *Session) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	api := engine.Group("/api/v1")
	api.GET("/status", handleStatus(session))
	api.GET("/albums", handleAlbums(session))
	api.GET("/stats", handleStats(session))
	api.GET("/artists", handleArtists(session))
	api.GET("/search", handleSearch(session))
	api.POST("/refresh", handleRefresh(session))

	return engine
}

func floatQuery(c *gin.Context, name string, fallback float64) float64 {
	raw, ok := c.GetQuery(name)
	if !ok {
		return fallback
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fallback
	}
	return value
}

func filterFromQuery(c *gin.Context, table albumtable.Table) albumtable.Filter {
	f := albumtable.DefaultFilter(table)
	f.Rating.Lo = floatQuery(c, "min_rating", f.Rating.Lo)
	f.Rating.Hi = floatQuery(c, "max_rating", f.Rating.Hi)
	f.Votes.Lo = floatQuery(c, "min_votes", f.Votes.Lo)
	f.Votes.Hi = floatQuery(c, "max_votes", f.Votes.Hi)
	f.Controversy.Lo = floatQuery(c, "min_controversy", f.Controversy.Lo)
	f.Controversy.Hi = floatQuery(c, "max_controversy", f.Controversy.Hi)
	return f
}

func sortSpecFromQuery(c *gin.Context, columnParam, orderParam string) (*albumtable.SortSpec, error) {
	raw, ok := c.GetQuery(columnParam)
	if !ok {
		return nil, nil
	}
	column, err := albumtable.ParseColumn(raw)
	if err != nil {
		return nil, err
	}
	return &albumtable.SortSpec{
		Column:     column,
		Descending: c.Query(orderParam) == "desc",
	}, nil
}

func filteredFromQuery(c *gin.Context, session *Session) (albumtable.Table, bool) {
	table := session.Table()
	filtered := table.Apply(filterFromQuery(c, table))

	primary, err := sortSpecFromQuery(c, "sort", "order")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return albumtable.Table{}, false
	}
	secondary, err := sortSpecFromQuery(c, "sort2", "order2")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return albumtable.Table{}, false
	}
	if primary != nil {
		filtered = filtered.SortBy(*primary, secondary)
	}
	return filtered, true
}

func handleStatus(session *Session) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"group_url":    session.GroupURL(),
			"records":      session.Table().Len(),
			"last_updated": session.LastUpdated(),
		})
	}
}

func handleAlbums(session *Session) gin.HandlerFunc {
	return func(c *gin.Context) {
		filtered, ok := filteredFromQuery(c, session)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"count":        filtered.Len(),
			"last_updated": session.LastUpdated(),
			"rows":         filtered.Rows,
		})
	}
}

func handleStats(session *Session) gin.HandlerFunc {
	return func(c *gin.Context) {
		filtered, ok := filteredFromQuery(c, session)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, albumtable.Summarize(filtered))
	}
}

func handleArtists(session *Session) gin.HandlerFunc {
	return func(c *gin.Context) {
		filtered, ok := filteredFromQuery(c, session)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"artists": albumtable.ByArtist(filtered),
		})
	}
}

func handleSearch(session *Session) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := c.Query("q")
		if query == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing query parameter q"})
			return
		}
		limit := int(floatQuery(c, "limit", 10))
		c.JSON(http.StatusOK, gin.H{
			"matches": albumtable.Search(session.Table(), query, limit),
		})
	}
}

func handleRefresh(session *Session) gin.HandlerFunc {
	return func(c *gin.Context) {
		warnings, err := session.Refresh(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}

		warningText := make([]string, 0, len(warnings))
		for _, w := range warnings {
			warningText = append(warningText, w.String())
		}
		c.JSON(http.StatusOK, gin.H{
			"records":      session.Table().Len(),
			"warnings":     warningText,
			"last_updated": session.LastUpdated(),
		})
	}
}
