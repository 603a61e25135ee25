package api

import (
	"net/http"

	callHandler "receptionist-server/internal/calls/handler"

	"github.com/gin-gonic/gin"
)

type API struct {
	router      *gin.RouterGroup
	callHandler callHandler.Handler
}

func New(router *gin.RouterGroup, callHandler callHandler.Handler) API {
	return API{
		router:      router,
		callHandler: callHandler,
	}
}

func (a *API) RegisterRoutes() {
	a.Health()
	a.router.POST(callHandler.EntryPath, a.callHandler.HandleVoiceEntry)
	a.router.POST(callHandler.TurnCallbackPath, a.callHandler.HandleTurnCallback)
}

func (a *API) Health() {
	a.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})
}
