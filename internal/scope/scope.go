// Package scope decides location-level visibility: whether a caller may
// touch a specific location, and how list queries must be narrowed so a
// store manager or site engineer only ever sees rows for their assigned
// location. Deny-by-default: an unknown role or a scoped role without an
// assignment gets nothing, never everything.
package scope

import (
	"bytes"
	"encoding/json"
	"io"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/consite/inventory-service/internal/auth"
	"github.com/consite/inventory-service/internal/errs"
)

// CanAccessLocation reports whether the actor may read or write data
// belonging to the target location. Super admins always may; scoped roles
// only for their own assignment.
func CanAccessLocation(actor auth.Actor, targetLocationID int64) bool {
	if actor.IsSuperAdmin() {
		return true
	}
	if actor.Role.LocationScoped() {
		if actor.LocationID == nil {
			return false
		}
		return *actor.LocationID == targetLocationID
	}
	return false
}

// QueryScope is the location restriction merged into list-query filters.
type QueryScope struct {
	// LocationID pins every row to a single location when non-nil.
	LocationID *int64
	// MatchNone forces the query to return zero rows. Fail-closed: a
	// scoped user without a location assignment must not see unscoped
	// data because the restriction could not be derived.
	MatchNone bool
}

// ScopedFilter rewrites a base restriction for the actor. Super admins
// pass through unchanged; scoped roles are pinned to their assigned
// location, overriding whatever the base requested.
func ScopedFilter(actor auth.Actor, base QueryScope) QueryScope {
	if actor.IsSuperAdmin() {
		return base
	}
	if actor.Role.LocationScoped() {
		if actor.LocationID == nil {
			return QueryScope{MatchNone: true}
		}
		loc := *actor.LocationID
		return QueryScope{LocationID: &loc}
	}
	return QueryScope{MatchNone: true}
}

// AccessibleLocationIDs returns the locations the actor may see, or
// (nil, true) for unrestricted access.
func AccessibleLocationIDs(actor auth.Actor) (ids []int64, unrestricted bool) {
	if actor.IsSuperAdmin() {
		return nil, true
	}
	if actor.Role.LocationScoped() && actor.LocationID != nil {
		return []int64{*actor.LocationID}, false
	}
	return []int64{}, false
}

// ExtractTargetLocationID resolves the single candidate location id of a
// request, checking the locationId path parameter first, then query and
// body locationId, then the storeId/siteId aliases. First match wins.
// Routes whose path id names a location declare the param as
// :locationId; generic :id params name a record, and the owning use
// case resolves its location itself. found is false when the request
// names no location at all (typically a list endpoint, which scopes in
// the query instead). A named value that is unparseable or non-positive
// is a validation error, reported before any access decision so a bad
// id is never mistaken for a foreign one.
func ExtractTargetLocationID(c *gin.Context) (id int64, found bool, err error) {
	if raw := c.Param("locationId"); raw != "" {
		return parseLocationID(raw)
	}

	for _, key := range []string{"locationId", "storeId", "siteId"} {
		if raw := c.Query(key); raw != "" {
			return parseLocationID(raw)
		}
	}

	if body := peekJSONBody(c); body != nil {
		for _, key := range []string{"locationId", "storeId", "siteId"} {
			if v, present := body[key]; present && v != nil {
				return parseLocationValue(v)
			}
		}
	}

	return 0, false, nil
}

func parseLocationID(raw string) (int64, bool, error) {
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v <= 0 {
		return 0, true, errs.Validation("invalid location id")
	}
	return v, true, nil
}

func parseLocationValue(v any) (int64, bool, error) {
	switch t := v.(type) {
	case float64:
		if t <= 0 {
			return 0, true, errs.Validation("invalid location id")
		}
		return int64(t), true, nil
	case string:
		return parseLocationID(t)
	}
	return 0, true, errs.Validation("invalid location id")
}

// peekJSONBody reads the request body without consuming it, so the
// handler's own binding still sees the full payload.
func peekJSONBody(c *gin.Context) map[string]any {
	if c.Request == nil || c.Request.Body == nil {
		return nil
	}
	raw, err := io.ReadAll(c.Request.Body)
	c.Request.Body = io.NopCloser(bytes.NewBuffer(raw))
	if err != nil || len(raw) == 0 {
		return nil
	}
	var body map[string]any
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil
	}
	return body
}
