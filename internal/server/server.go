package server

import (
	"fmt"
	"net/http"
	"sort"

	"github.com/acrennan/daybook/internal/database"
	"github.com/acrennan/daybook/internal/server/middlewares"
	"github.com/acrennan/daybook/internal/server/service"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// A Controller is an Inversion Of Control pattern used to init the server package.
type Controller struct {
	Version  string
	Database database.Client
	// JWT params
	SigningKey []byte
}

// EchoEngine instantiates the wep server.
func EchoEngine(ctrl Controller) *echo.Echo {
	engine := echo.New()
	engine.Use(middleware.Recover())
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(middleware.DefaultCORSConfig))
	engine.Use(middleware.Gzip())

	engine.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "[${status}] ${method} ${uri} (${bytes_in}) ${latency_human}\n",
	}))
	engine.Binder = middlewares.NewBinder()
	// Error handler
	engine.HTTPErrorHandler = middlewares.HTTPErrorHandler

	engine.Pre(middleware.Rewrite(map[string]string{
		"/": "/version",
	}))

	////////////
	// Router //
	////////////

	router := engine.Group("")
	restricted := router.Group("")
	restricted.Use(middlewares.Authenticate(ctrl.SigningKey))

	//
	// generic handlers
	//
	router.GET("/version", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{
			"version": ctrl.Version,
		})
	})

	restricted.GET("/me", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{
			"owner": currentOwner(c),
		})
	})

	//
	// record handlers
	//
	record := &record{
		records: service.NewRecords(ctrl.Database),
	}
	restricted.POST("/records/:collection", record.Create)
	restricted.GET("/records/:collection", record.List)
	restricted.PUT("/records/:collection", record.Upsert)
	restricted.GET("/records/:collection/random", record.Random)
	restricted.GET("/records/:collection/day/:key", record.ListByDay)
	restricted.GET("/records/:collection/:id", record.Detail)
	restricted.DELETE("/records/:collection/:id", record.Delete)

	return engine
}

// PrintRoutes prints the Echo engin exposed routes.
func PrintRoutes(e *echo.Echo) {
	ignored := map[string]bool{
		"":   true,
		".":  true,
		"/*": true,
	}

	routes := e.Routes()
	sort.Slice(routes, func(i int, j int) bool {
		return routes[i].Path < routes[j].Path
	})

	fmt.Println("Routes:")
	for _, route := range routes {
		if ignored[route.Path] {
			continue
		}
		fmt.Printf("%6s %s\n", route.Method, route.Path)
	}
}

func currentOwner(c echo.Context) string {
	owner, ok := c.Get(middlewares.CurrentOwnerContextKey).(string)
	if ok {
		return owner
	}
	return ""
}
