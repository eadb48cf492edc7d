package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"folio-be/internal/apperr"
	"folio-be/internal/models"
	"folio-be/internal/service"
)

// HealthCheck proves the store connection is usable. Injected from main so
// the controller never holds the database handle itself.
type HealthCheck func() (time.Time, error)

type AuthController struct {
	authService service.AuthService
	healthCheck HealthCheck
	hasDBURL    bool
	hasSecret   bool
	production  bool
}

func NewAuthController(authService service.AuthService, healthCheck HealthCheck, hasDBURL, hasSecret, production bool) *AuthController {
	return &AuthController{
		authService: authService,
		healthCheck: healthCheck,
		hasDBURL:    hasDBURL,
		hasSecret:   hasSecret,
		production:  production,
	}
}

// Handle serves every method on the auth route. OPTIONS never reaches here;
// the CORS middleware answers preflight directly.
func (ac *AuthController) Handle(c *gin.Context) {
	switch c.Request.Method {
	case http.MethodGet:
		ac.health(c)
	case http.MethodPost:
		ac.dispatch(c)
	default:
		respondError(c, apperr.MethodNotAllowed("Method not allowed. Use POST."), ac.production)
	}
}

// health answers the liveness probe with the capability description and a
// live store round-trip.
func (ac *AuthController) health(c *gin.Context) {
	endpoints := []string{"register", "login", "getUserData", "updateBalance"}
	env := models.HealthEnv{
		HasDatabaseURL: ac.hasDBURL,
		HasJWTSecret:   ac.hasSecret,
	}

	dbTime, err := ac.healthCheck()
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.HealthResponse{
			Success:   false,
			Message:   "API running but database connection failed",
			Database:  "disconnected",
			Endpoints: endpoints,
			Env:       env,
		})
		return
	}

	c.JSON(http.StatusOK, models.HealthResponse{
		Success:   true,
		Message:   "Auth API is running",
		Database:  "connected",
		DBTime:    dbTime.Format(time.RFC3339),
		Endpoints: endpoints,
		Env:       env,
	})
}

// dispatch routes a POST body to one operation based on its action field
func (ac *AuthController) dispatch(c *gin.Context) {
	var req models.AuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.Validation("Invalid request body"), ac.production)
		return
	}

	action, ok := models.ParseAction(req.Action)
	if !ok {
		respondError(c, apperr.Validation("Invalid action! Action must be one of: register, login, getUserData, updateBalance."), ac.production)
		return
	}

	switch action {
	case models.ActionRegister:
		response, err := ac.authService.Register(&req)
		if err != nil {
			respondError(c, err, ac.production)
			return
		}
		c.JSON(http.StatusOK, response)

	case models.ActionLogin:
		response, err := ac.authService.Login(&req)
		if err != nil {
			respondError(c, err, ac.production)
			return
		}
		c.JSON(http.StatusOK, response)

	case models.ActionGetUserData:
		response, err := ac.authService.GetUserData(req.UserID)
		if err != nil {
			respondError(c, err, ac.production)
			return
		}
		c.JSON(http.StatusOK, response)

	case models.ActionUpdateBalance:
		if err := ac.authService.UpdateBalance(req.UserID, req.Balance); err != nil {
			respondError(c, err, ac.production)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse{Success: true})
	}
}

// respondError converts a taxonomy error into the shared failure body.
// Internal errors carry their detail only outside production.
func respondError(c *gin.Context, err error, production bool) {
	body := models.ErrorResponse{
		Success: false,
		Message: apperr.Message(err),
	}

	if !production {
		var appErr *apperr.Error
		if errors.As(err, &appErr) {
			if appErr.Kind == apperr.KindInternal && appErr.Err != nil {
				body.Error = appErr.Err.Error()
			}
		} else {
			body.Error = err.Error()
		}
	}

	c.JSON(apperr.Status(err), body)
}
