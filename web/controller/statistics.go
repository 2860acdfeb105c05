package controller

import (
	"html/template"
	"net/http"

	"regstats/logger"
	"regstats/web/service"

	"github.com/gin-gonic/gin"
)

// StatsController serves the role statistics view: total count, user list
// and the inline bar chart.
type StatsController struct {
	statsService service.StatsService
}

func NewStatsController(g *gin.RouterGroup) *StatsController {
	a := &StatsController{}
	a.initRouter(g)
	return a
}

func (a *StatsController) initRouter(g *gin.RouterGroup) {
	g.GET("/statistics", a.statistics)
}

func (a *StatsController) statistics(c *gin.Context) {
	stats, err := a.statsService.Compute()
	if err != nil {
		logger.Error("compute statistics err:", err)
		c.String(http.StatusInternalServerError, "Something went wrong.")
		return
	}

	// html/template rewrites data: URLs to #ZgotmplZ unless they are
	// marked safe explicitly.
	chartSrc := template.URL("data:image/png;base64," + stats.ChartBase64)

	html(c, "statistics.html", "Statistics", gin.H{
		"total": stats.Total,
		"users": stats.Users,
		"roles": stats.Roles,
		"chart": chartSrc,
	})
}
