package scope

import (
	"bytes"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/consite/inventory-service/internal/auth"
	"github.com/consite/inventory-service/internal/errs"
	"github.com/consite/inventory-service/internal/model"
)

func ptr(v int64) *int64 { return &v }

func TestCanAccessLocation(t *testing.T) {
	admin := auth.Actor{ID: 1, Role: model.RoleSuperAdmin}
	manager := auth.Actor{ID: 2, Role: model.RoleStoreManager, LocationID: ptr(10)}
	unassigned := auth.Actor{ID: 3, Role: model.RoleSiteEngineer}
	unknown := auth.Actor{ID: 4, Role: model.UserRole("AUDITOR")}

	assert.True(t, CanAccessLocation(admin, 10))
	assert.True(t, CanAccessLocation(admin, 99))

	assert.True(t, CanAccessLocation(manager, 10))
	assert.False(t, CanAccessLocation(manager, 11))

	// fail closed: no assignment, no access
	assert.False(t, CanAccessLocation(unassigned, 10))
	// fail closed: unknown role
	assert.False(t, CanAccessLocation(unknown, 10))
}

func TestScopedFilter(t *testing.T) {
	base := QueryScope{LocationID: ptr(42)}

	t.Run("super admin passes through", func(t *testing.T) {
		got := ScopedFilter(auth.Actor{Role: model.RoleSuperAdmin}, base)
		require.NotNil(t, got.LocationID)
		assert.Equal(t, int64(42), *got.LocationID)
		assert.False(t, got.MatchNone)
	})

	t.Run("scoped role overrides the base", func(t *testing.T) {
		got := ScopedFilter(auth.Actor{Role: model.RoleSiteEngineer, LocationID: ptr(7)}, base)
		require.NotNil(t, got.LocationID)
		assert.Equal(t, int64(7), *got.LocationID)
	})

	t.Run("unassigned scoped role matches nothing", func(t *testing.T) {
		got := ScopedFilter(auth.Actor{Role: model.RoleStoreManager}, base)
		assert.True(t, got.MatchNone)
	})

	t.Run("unknown role matches nothing", func(t *testing.T) {
		got := ScopedFilter(auth.Actor{Role: model.UserRole("AUDITOR")}, base)
		assert.True(t, got.MatchNone)
	})
}

func TestAccessibleLocationIDs(t *testing.T) {
	_, unrestricted := AccessibleLocationIDs(auth.Actor{Role: model.RoleSuperAdmin})
	assert.True(t, unrestricted)

	ids, unrestricted := AccessibleLocationIDs(auth.Actor{Role: model.RoleStoreManager, LocationID: ptr(3)})
	assert.False(t, unrestricted)
	assert.Equal(t, []int64{3}, ids)

	ids, unrestricted = AccessibleLocationIDs(auth.Actor{Role: model.RoleSiteEngineer})
	assert.False(t, unrestricted)
	assert.Empty(t, ids)
}

func newTestContext(method, target string, body []byte) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	var reader *bytes.Reader
	if body != nil {
		reader = bytes.NewReader(body)
		c.Request = httptest.NewRequest(method, target, reader)
	} else {
		c.Request = httptest.NewRequest(method, target, nil)
	}
	return c
}

func TestExtractTargetLocationID(t *testing.T) {
	t.Run("path param", func(t *testing.T) {
		c := newTestContext("GET", "/locations/5", nil)
		c.Params = gin.Params{{Key: "locationId", Value: "5"}}
		id, found, err := ExtractTargetLocationID(c)
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, int64(5), id)
	})

	t.Run("generic id param is not a location", func(t *testing.T) {
		c := newTestContext("GET", "/inventory/8", nil)
		c.Params = gin.Params{{Key: "id", Value: "8"}}
		_, found, err := ExtractTargetLocationID(c)
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("query string", func(t *testing.T) {
		c := newTestContext("GET", "/inventory?locationId=12", nil)
		id, found, err := ExtractTargetLocationID(c)
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, int64(12), id)
	})

	t.Run("json body with alias key", func(t *testing.T) {
		c := newTestContext("POST", "/requests", []byte(`{"siteId": 9, "quantity": 3}`))
		id, found, err := ExtractTargetLocationID(c)
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, int64(9), id)
	})

	t.Run("body is restored for later binding", func(t *testing.T) {
		raw := []byte(`{"locationId": 4}`)
		c := newTestContext("POST", "/requests", raw)
		_, found, err := ExtractTargetLocationID(c)
		require.NoError(t, err)
		require.True(t, found)

		var parsed struct {
			LocationID int64 `json:"locationId"`
		}
		require.NoError(t, c.ShouldBindJSON(&parsed))
		assert.Equal(t, int64(4), parsed.LocationID)
	})

	t.Run("no location named", func(t *testing.T) {
		c := newTestContext("GET", "/products", nil)
		_, found, err := ExtractTargetLocationID(c)
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("non-positive id is a validation error", func(t *testing.T) {
		c := newTestContext("GET", "/inventory?locationId=0", nil)
		_, found, err := ExtractTargetLocationID(c)
		assert.True(t, found)
		assert.True(t, errs.Is(err, errs.CodeValidation))

		c = newTestContext("GET", "/inventory?locationId=-3", nil)
		_, _, err = ExtractTargetLocationID(c)
		assert.True(t, errs.Is(err, errs.CodeValidation))
	})

	t.Run("unparseable id is a validation error", func(t *testing.T) {
		c := newTestContext("GET", "/inventory?locationId=abc", nil)
		_, found, err := ExtractTargetLocationID(c)
		assert.True(t, found)
		assert.True(t, errs.Is(err, errs.CodeValidation))
	})

	t.Run("malformed path param is a validation error", func(t *testing.T) {
		c := newTestContext("GET", "/locations/abc", nil)
		c.Params = gin.Params{{Key: "locationId", Value: "abc"}}
		_, _, err := ExtractTargetLocationID(c)
		assert.True(t, errs.Is(err, errs.CodeValidation))
	})

	t.Run("non-numeric body value is a validation error", func(t *testing.T) {
		c := newTestContext("POST", "/requests", []byte(`{"locationId": "zero"}`))
		_, _, err := ExtractTargetLocationID(c)
		assert.True(t, errs.Is(err, errs.CodeValidation))
	})
}
