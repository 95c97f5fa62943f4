package server

import (
	"net/http"
	"strconv"

	"github.com/acrennan/daybook/internal/server/service"
	"github.com/labstack/echo/v4"
)

// record contains all record handlers.
//
// Every handler answers HTTP 200 with the service result envelope,
// success and failure alike. The envelope code is the contract;
// HTTP status codes only cover auth and malformed requests.
type record struct {
	records *service.Records
}

///// Create
////
//

// Create stores a new record for the current owner.
func (h *record) Create(c echo.Context) error {
	var params service.RecordParams
	if err := c.Bind(&params); err != nil {
		return err
	}

	res := h.records.Create(c.Param("collection"), currentOwner(c), params)
	return c.JSON(http.StatusOK, res)
}

///// List
////
//

// List returns one page of the current owner's records, newest first.
func (h *record) List(c echo.Context) error {
	page := intQueryParam(c, "page", 1)
	limit := intQueryParam(c, "limit", service.DefaultLimit)

	res := h.records.List(c.Param("collection"), currentOwner(c), page, limit)
	return c.JSON(http.StatusOK, res)
}

///// Detail
////
//

// Detail returns a single record of the current owner.
func (h *record) Detail(c echo.Context) error {
	res := h.records.Detail(c.Param("collection"), currentOwner(c), c.Param("id"))
	return c.JSON(http.StatusOK, res)
}

///// Delete
////
//

// Delete removes a record of the current owner.
func (h *record) Delete(c echo.Context) error {
	res := h.records.Delete(c.Param("collection"), currentOwner(c), c.Param("id"))
	return c.JSON(http.StatusOK, res)
}

///// Random
////
//

// Random returns one of the current owner's records picked at random.
func (h *record) Random(c echo.Context) error {
	res := h.records.Random(c.Param("collection"), currentOwner(c))
	return c.JSON(http.StatusOK, res)
}

///// ListByDay
////
//

// ListByDay returns all the current owner's records of one calendar day.
func (h *record) ListByDay(c echo.Context) error {
	res := h.records.ListByDay(c.Param("collection"), currentOwner(c), c.Param("key"))
	return c.JSON(http.StatusOK, res)
}

///// Upsert
////
//

// Upsert saves a record by id, by day slot, or as a new entry.
func (h *record) Upsert(c echo.Context) error {
	var params service.RecordParams
	if err := c.Bind(&params); err != nil {
		return err
	}

	res := h.records.Upsert(c.Param("collection"), currentOwner(c), params)
	return c.JSON(http.StatusOK, res)
}

// intQueryParam parses an integer query parameter, falling back to def
// when absent or malformed. Bounds are enforced by the service layer.
func intQueryParam(c echo.Context, name string, def int) int {
	raw := c.QueryParam(name)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}
