package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"folio-be/internal/apperr"
	"folio-be/internal/models"
	"folio-be/internal/service"
)

type PortfolioController struct {
	portfolioService service.PortfolioService
	production       bool
}

func NewPortfolioController(portfolioService service.PortfolioService, production bool) *PortfolioController {
	return &PortfolioController{
		portfolioService: portfolioService,
		production:       production,
	}
}

// Handle serves every method on the portfolio route. OPTIONS never reaches
// here; the CORS middleware answers preflight directly.
func (pc *PortfolioController) Handle(c *gin.Context) {
	switch c.Request.Method {
	case http.MethodGet:
		pc.fetch(c)
	case http.MethodPost:
		pc.replace(c)
	default:
		respondError(c, apperr.MethodNotAllowed("Method not allowed. Use GET or POST."), pc.production)
	}
}

// fetch handles GET /api/portfolio?userId=...
func (pc *PortfolioController) fetch(c *gin.Context) {
	userID := c.Query("userId")

	holdings, err := pc.portfolioService.Fetch(userID)
	if err != nil {
		respondError(c, err, pc.production)
		return
	}

	c.JSON(http.StatusOK, holdings)
}

// replace handles POST /api/portfolio with a full holdings set
func (pc *PortfolioController) replace(c *gin.Context) {
	var req models.ReplacePortfolioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.Validation("Invalid request body"), pc.production)
		return
	}

	if err := pc.portfolioService.Replace(&req); err != nil {
		respondError(c, err, pc.production)
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{Success: true})
}
