package httpapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

const swaggerUIPage = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <title>Packs REST API</title>
  <link rel="stylesheet" href="https://cdn.jsdelivr.net/npm/swagger-ui-dist/swagger-ui.css">
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://cdn.jsdelivr.net/npm/swagger-ui-dist/swagger-ui-bundle.js"></script>
  <script>
    window.ui = SwaggerUIBundle({ url: "/openapi.json", dom_id: "#swagger-ui" });
  </script>
</body>
</html>
`

func (s *Server) index(c echo.Context) error {
	return c.Redirect(http.StatusFound, "/swagger-ui")
}

func (s *Server) openAPIDocJSON(c echo.Context) error {
	return c.Blob(http.StatusOK, echo.MIMEApplicationJSON, s.openAPIJSON)
}

func (s *Server) openAPIDocYAML(c echo.Context) error {
	return c.Blob(http.StatusOK, "application/yaml", s.openAPIYAML)
}

func (s *Server) swaggerUI(c echo.Context) error {
	return c.HTML(http.StatusOK, swaggerUIPage)
}

func (s *Server) health(c echo.Context) error {
	if err := s.store.Ping(c.Request().Context()); err != nil {
		return &APIError{
			Status:  http.StatusServiceUnavailable,
			Code:    "store_unavailable",
			Message: "The datastore is unreachable.",
			Err:     err,
		}
	}
	return c.JSON(http.StatusOK, healthResponse{Status: "ok"})
}
