package handler // handler contains the HTTP handlers

import (
    "net/http"

    "github.com/labstack/echo/v4"
)

// Health is the liveness endpoint used by load balancers and monitoring to
// verify the service is up.  Plain "ok" with a 200 status.
func Health(c echo.Context) error {
    return c.String(http.StatusOK, "ok")
}
