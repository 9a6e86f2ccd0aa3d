package controllers

import (
	"net/http"

	"github.com/alex-pricope/eurovision-scoreboard/api/models"
	"github.com/alex-pricope/eurovision-scoreboard/scoreboard"
	"github.com/gin-gonic/gin"
)

type VotingSystemController struct{}

func NewVotingSystemController() *VotingSystemController {
	return &VotingSystemController{}
}

func (c *VotingSystemController) RegisterRoutes(engine *gin.Engine) {
	group := engine.Group("/api")

	group.GET("/voting-systems", c.list)
	group.GET("/voting-systems/:id", c.get)
}

// list godoc
// @Summary List the supported voting systems
// @Tags voting-systems
// @Produce json
// @Success 200 {array} models.VotingSystemResponse
// @Router /api/voting-systems [get]
func (c *VotingSystemController) list(g *gin.Context) {
	systems := scoreboard.VotingSystems()
	res := make([]models.VotingSystemResponse, 0, len(systems))
	for _, s := range systems {
		res = append(res, models.TransformVotingSystem(s))
	}
	g.JSON(http.StatusOK, res)
}

// get godoc
// @Summary Get a voting system
// @Description Unknown ids resolve to the modern system.
// @Tags voting-systems
// @Produce json
// @Param id path string true "Voting system id"
// @Success 200 {object} models.VotingSystemResponse
// @Router /api/voting-systems/{id} [get]
func (c *VotingSystemController) get(g *gin.Context) {
	g.JSON(http.StatusOK, models.TransformVotingSystem(scoreboard.VotingSystemByID(g.Param("id"))))
}
