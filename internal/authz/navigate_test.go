package authz_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/floramart/storefront/internal/authz"
	"github.com/floramart/storefront/internal/model"
)

func TestLandingPath(t *testing.T) {
	assert.Equal(t, authz.PathAdminHome, authz.LandingPath(model.RoleAdmin))
	assert.Equal(t, authz.PathAccount, authz.LandingPath(model.RoleCustomer))
	// Unknown or empty roles land on the least privileged page.
	assert.Equal(t, authz.PathAccount, authz.LandingPath(""))
	assert.Equal(t, authz.PathAccount, authz.LandingPath("moderator"))
}
