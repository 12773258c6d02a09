package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"kage_vpn_store/constants"
	"kage_vpn_store/helper"
	"kage_vpn_store/model"
)

// userDirectory stands in for the account store so the auth chain can be
// driven without a database.
type userDirectory struct {
	users map[uint]*model.User
}

func (d userDirectory) FindById(id uint) (*model.User, error) {
	user, ok := d.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *user
	return &copied, nil
}

func adminApp(t *testing.T) *fiber.App {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")

	helper.Users = userDirectory{users: map[uint]*model.User{
		1: {DTO: model.DTO{ID: 1}, Name: "Aung Aung", Email: "aung@example.com", Role: constants.ROLE_CUSTOMER, IsActive: true},
		2: {DTO: model.DTO{ID: 2}, Name: "Admin", Email: "admin@kagevpn.com", Role: constants.ROLE_ADMIN, IsActive: true},
		3: {DTO: model.DTO{ID: 3}, Name: "Former Admin", Email: "old@kagevpn.com", Role: constants.ROLE_ADMIN, IsActive: false},
	}}
	t.Cleanup(func() { helper.Users = nil })

	app := fiber.New()
	app.Post("/api/admin/verify-payment", Protected(), AdminOnly(), func(c *fiber.Ctx) error {
		claim, ok := c.Locals("claim").(model.TokenClaim)
		if !ok || claim.UserId == 0 {
			t.Error("admin claim not stashed in locals")
		}
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func token(t *testing.T, userId uint, email, role string) string {
	t.Helper()
	signed, err := helper.GenerateAccessToken(model.TokenClaim{UserId: userId, Email: email, Role: role})
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}
	return signed
}

func adminRequest(t *testing.T, app *fiber.App, bearer string) int {
	t.Helper()
	req := httptest.NewRequest("POST", "/api/admin/verify-payment", nil)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	resp.Body.Close()
	return resp.StatusCode
}

func TestAdminRoutesRequireAuthentication(t *testing.T) {
	app := adminApp(t)

	if status := adminRequest(t, app, ""); status != fiber.StatusUnauthorized {
		t.Errorf("no token: status = %d, want 401", status)
	}
	if status := adminRequest(t, app, "not-a-jwt"); status != fiber.StatusUnauthorized {
		t.Errorf("malformed token: status = %d, want 401", status)
	}

	// A well-formed token signed with the wrong secret is just as invalid.
	t.Setenv("JWT_SECRET", "other-secret")
	foreign := token(t, 2, "admin@kagevpn.com", constants.ROLE_ADMIN)
	t.Setenv("JWT_SECRET", "test-secret")
	if status := adminRequest(t, app, foreign); status != fiber.StatusUnauthorized {
		t.Errorf("foreign signature: status = %d, want 401", status)
	}
}

func TestAdminRoutesRejectCustomers(t *testing.T) {
	app := adminApp(t)

	customer := token(t, 1, "aung@example.com", constants.ROLE_CUSTOMER)
	if status := adminRequest(t, app, customer); status != fiber.StatusForbidden {
		t.Errorf("customer token: status = %d, want 403", status)
	}

	// Role comes from the stored account, not the token. A forged admin claim
	// for a customer account must still be refused.
	forged := token(t, 1, "aung@example.com", constants.ROLE_ADMIN)
	if status := adminRequest(t, app, forged); status != fiber.StatusForbidden {
		t.Errorf("forged role claim: status = %d, want 403", status)
	}

	// A deactivated admin account no longer resolves to a user at all.
	disabled := token(t, 3, "old@kagevpn.com", constants.ROLE_ADMIN)
	if status := adminRequest(t, app, disabled); status != fiber.StatusUnauthorized {
		t.Errorf("disabled admin: status = %d, want 401", status)
	}

	// Token for an account that was deleted since issue.
	gone := token(t, 42, "ghost@example.com", constants.ROLE_ADMIN)
	if status := adminRequest(t, app, gone); status != fiber.StatusUnauthorized {
		t.Errorf("deleted account: status = %d, want 401", status)
	}
}

func TestAdminRoutesAdmitAdmins(t *testing.T) {
	app := adminApp(t)

	admin := token(t, 2, "admin@kagevpn.com", constants.ROLE_ADMIN)
	if status := adminRequest(t, app, admin); status != fiber.StatusOK {
		t.Errorf("admin token: status = %d, want 200", status)
	}
}

func TestProtectedAcceptsCookieToken(t *testing.T) {
	app := adminApp(t)

	req := httptest.NewRequest("POST", "/api/admin/verify-payment", nil)
	req.Header.Set("Cookie", "access_token="+token(t, 2, "admin@kagevpn.com", constants.ROLE_ADMIN))
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != fiber.StatusOK {
		t.Errorf("cookie token: status = %d, want 200", resp.StatusCode)
	}
}
