package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/mannager/pos-system/internal/core/domain"
)

// ctxActor extracts the verified identity claim injected by the Auth
// middleware. An empty claim means the middleware did not run — treat the
// request as unauthenticated rather than trusting a zero actor.
func ctxActor(c echo.Context) (domain.Actor, error) {
	actor, ok := c.Get("actor").(domain.Actor)
	if !ok || actor.ID == 0 {
		return domain.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return actor, nil
}

// pathID parses the numeric :id path parameter.
func pathID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return id, nil
}
